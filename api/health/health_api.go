// Package health exposes the public liveness endpoint.
package health

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jyagua/EasyPromo/api"
)

func init() {
	api.RegisterRoute(RegisterHealthRoutes)
}

func RegisterHealthRoutes(e *echo.Echo, deps *api.Deps) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":         "ok",
			"known_products": deps.Products.KnownProducts(),
		})
	})
}
