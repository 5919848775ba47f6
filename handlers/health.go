package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports liveness and the number of open form instances
func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
		"forms":  getRegistry(c).Len(),
	})
}
