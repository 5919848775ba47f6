package handlers

import (
	"net/http"

	"turn2law_web/config"
	"turn2law_web/middleware"
	"turn2law_web/services/i18n"
	"turn2law_web/services/waitlist"
	"turn2law_web/templates/pages"
	"turn2law_web/templates/partials"

	"github.com/labstack/echo/v4"
)

// LandingHandler renders the landing page. A form_id query parameter shows
// that form instance (used after a non-htmx post); otherwise a new one is opened.
func LandingHandler(c echo.Context) error {
	reg := getRegistry(c)

	var id string
	var form *waitlist.Form
	if raw := c.QueryParam(formIDField); raw != "" {
		id, form = reg.Get(raw)
	} else {
		id, form = reg.Open()
	}

	return renderLanding(c, http.StatusOK, formView(c, id, form.Snapshot()))
}

func renderLanding(c echo.Context, status int, view partials.WaitlistFormView) error {
	cfg := c.Get("config").(*config.Config)
	seo := GetSEO("landing", cfg.AppURL, i18n.GetLocale(c.Request().Context()))
	component := pages.Landing(pages.NewLandingViewModel(seo, cfg.AppURL, view))
	return renderHTML(c, status, component)
}

// formView collects the per-request data the waitlist partials need
func formView(c echo.Context, id string, snap waitlist.Snapshot) partials.WaitlistFormView {
	cfg := c.Get("config").(*config.Config)
	siteKey := ""
	if cfg.TurnstileEnabled() {
		siteKey = cfg.TurnstileSiteKey
	}
	return partials.NewWaitlistFormView(id, snap, middleware.GetCSRFToken(c), middleware.CSRFFormField, siteKey)
}
