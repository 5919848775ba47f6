package templates

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"turn2law_web/middleware"
	"turn2law_web/services/i18n"

	"github.com/a-h/templ"
)

//go:embed html/*.html
var files embed.FS

// base is parsed once and never executed; every render works on a clone
// whose funcs are bound to the request context.
var base = template.Must(template.New("").Funcs(funcs(context.Background())).ParseFS(files, "html/*.html"))

func funcs(ctx context.Context) template.FuncMap {
	return template.FuncMap{
		"t": func(key string) string {
			return i18n.T(ctx, key)
		},
		"lang": func() string {
			return i18n.GetLocale(ctx)
		},
		"nonce": func() string {
			return middleware.GetNonce(ctx)
		},
		"asset": func(path string) string {
			return middleware.AssetURL(ctx, path)
		},
		"fieldID": func(field string) string {
			return "waitlist-" + strings.ReplaceAll(field, "_", "-")
		},
		"errorID": func(field string) string {
			return "waitlist-error-" + strings.ReplaceAll(field, "_", "-")
		},
		"add": func(a, b int) int {
			return a + b
		},
		"fieldErrors": func(errs map[string][]string, field string) map[string]interface{} {
			return map[string]interface{}{"Field": field, "Messages": errs[field]}
		},
		"notice": func(msg string) map[string]interface{} {
			return map[string]interface{}{"Message": msg}
		},
	}
}

// Render returns a templ component executing the named template with data
func Render(name string, data interface{}) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t, err := base.Clone()
		if err != nil {
			return fmt.Errorf("clone templates: %w", err)
		}
		t.Funcs(funcs(ctx))
		if err := t.ExecuteTemplate(w, name, data); err != nil {
			return fmt.Errorf("render %s: %w", name, err)
		}
		return nil
	})
}
