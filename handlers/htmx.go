package handlers

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// isHTMX reports whether the request was issued by htmx
func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// retarget makes htmx swap the response into selector instead of the
// element that issued the request
func retarget(c echo.Context, selector, swap string) {
	c.Response().Header().Set("HX-Retarget", selector)
	c.Response().Header().Set("HX-Reswap", swap)
}

// renderHTML renders component into a buffer first so a template error
// still produces a clean 500 instead of a half-written page
func renderHTML(c echo.Context, status int, component templ.Component) error {
	var buf bytes.Buffer
	if err := component.Render(c.Request().Context(), &buf); err != nil {
		c.Logger().Errorf("Failed to render template: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to render page")
	}
	return c.HTMLBlob(status, buf.Bytes())
}
