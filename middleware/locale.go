package middleware

import (
	"net/http"
	"time"

	"turn2law_web/config"
	"turn2law_web/services/i18n"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
)

// LangCookie holds the visitor's chosen language
const LangCookie = "lang"

// Locale middleware handles language detection and persistence.
// Priority:
// 1. Query param "lang" (sets cookie)
// 2. Cookie "lang"
// 3. Accept-Language header
// 4. Default ("en")
func Locale(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := c.QueryParam("lang")
			if lang != "" {
				if !i18n.IsSupported(lang) {
					lang = i18n.DefaultLang
				}
				setLangCookie(c, lang, cfg != nil && cfg.IsProduction())
			} else if cookie, err := c.Cookie(LangCookie); err == nil && i18n.IsSupported(cookie.Value) {
				lang = cookie.Value
			}

			if lang == "" {
				lang = MatchLanguage(c.Request().Header.Get("Accept-Language"))
			}

			// Echo context for handlers, request context for templ components
			c.Set("locale", lang)
			c.SetRequest(c.Request().WithContext(i18n.WithLocale(c.Request().Context(), lang)))

			return next(c)
		}
	}
}

// MatchLanguage picks the best supported catalog for an Accept-Language header
func MatchLanguage(acceptLanguage string) string {
	supported := i18n.Languages()
	if acceptLanguage == "" || len(supported) == 0 {
		return i18n.DefaultLang
	}

	// The default goes first so the matcher falls back to it
	tags := []language.Tag{language.Make(i18n.DefaultLang)}
	names := []string{i18n.DefaultLang}
	for _, lang := range supported {
		if lang == i18n.DefaultLang {
			continue
		}
		tags = append(tags, language.Make(lang))
		names = append(names, lang)
	}

	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return i18n.DefaultLang
	}
	_, index, confidence := language.NewMatcher(tags).Match(desired...)
	if confidence == language.No {
		return i18n.DefaultLang
	}
	return names[index]
}

// SetLanguageCookie sets the language cookie
func SetLanguageCookie(c echo.Context, lang string) {
	cfg, ok := c.Get("config").(*config.Config)
	setLangCookie(c, lang, ok && cfg.IsProduction())
}

func setLangCookie(c echo.Context, lang string, secure bool) {
	cookie := new(http.Cookie)
	cookie.Name = LangCookie
	cookie.Value = lang
	cookie.Expires = time.Now().Add(24 * 365 * time.Hour) // 1 year
	cookie.Path = "/"
	cookie.HttpOnly = true
	cookie.SameSite = http.SameSiteLaxMode
	cookie.Secure = secure
	c.SetCookie(cookie)
}

// GetLocale returns the current locale from context
func GetLocale(c echo.Context) string {
	val := c.Get("locale")
	if lang, ok := val.(string); ok {
		return lang
	}
	return i18n.DefaultLang
}
