// Package prefsapi exposes the persisted user state: favorites, cart,
// settings toggles and the manual price-drop trigger.
package prefsapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jyagua/EasyPromo/api"
)

func init() {
	api.RegisterModule(RegisterPrefsRoutes)
}

func RegisterPrefsRoutes(apiGroup *echo.Group, deps *api.Deps) {
	apiGroup.GET("/favorites", func(c echo.Context) error {
		favs, err := deps.Products.Favorites(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"products": favs})
	})

	apiGroup.POST("/favorites/:id/toggle", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		added, err := deps.Products.ToggleFavorite(c.Request().Context(), id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"id": id, "favorite": added})
	})

	apiGroup.DELETE("/favorites", func(c echo.Context) error {
		if err := deps.Prefs.ClearFavorites(c.Request().Context()); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	})

	apiGroup.GET("/cart", func(c echo.Context) error {
		items, err := deps.Products.CartItems(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"products": items})
	})

	apiGroup.POST("/cart/:id/toggle", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		added, err := deps.Products.ToggleCart(c.Request().Context(), id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"id": id, "in_cart": added})
	})

	apiGroup.DELETE("/cart", func(c echo.Context) error {
		if err := deps.Prefs.ClearCart(c.Request().Context()); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	})

	apiGroup.GET("/settings", func(c echo.Context) error {
		ctx := c.Request().Context()
		drop, err := deps.Prefs.PriceDropEnabled(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		dark, err := deps.Prefs.DarkThemeEnabled(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"price_drop_notifications": drop,
			"dark_theme":               dark,
		})
	})

	apiGroup.PUT("/settings", func(c echo.Context) error {
		var body struct {
			PriceDropNotifications *bool `json:"price_drop_notifications"`
			DarkTheme              *bool `json:"dark_theme"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		ctx := c.Request().Context()
		if body.PriceDropNotifications != nil {
			if err := deps.Prefs.SetPriceDropEnabled(ctx, *body.PriceDropNotifications); err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
			}
		}
		if body.DarkTheme != nil {
			if err := deps.Prefs.SetDarkThemeEnabled(ctx, *body.DarkTheme); err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
			}
		}
		return c.NoContent(http.StatusNoContent)
	})

	// POST /api/pricedrop/check runs the evaluation now instead of
	// waiting for the scheduled job.
	apiGroup.POST("/pricedrop/check", func(c echo.Context) error {
		ctx := c.Request().Context()
		favorites, err := deps.Products.Favorites(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		fired, err := deps.PriceDrop.Run(ctx, favorites)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"checked": len(favorites), "notified": fired})
	})
}
