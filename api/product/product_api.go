package product

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jyagua/EasyPromo/api"
	"github.com/jyagua/EasyPromo/model/entity"
)

func init() {
	api.RegisterModule(RegisterProductRoutes)
}

func RegisterProductRoutes(apiGroup *echo.Group, deps *api.Deps) {
	g := apiGroup.Group("/products")

	// GET /api/products?source=amazon|aliexpress&keywords=&sort=&refresh=
	// amazon serves the local catalog, aliexpress pages through the
	// remote feed via the search controller.
	g.GET("", func(c echo.Context) error {
		source := strings.ToLower(c.QueryParam("source"))
		keywords := c.QueryParam("keywords")

		if source == "" || source == "amazon" {
			found, err := deps.Products.LoadCatalog(c.Request().Context(), entity.StoreAmazon, keywords)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
			}
			return c.JSON(http.StatusOK, echo.Map{
				"source":   "amazon",
				"products": found,
				"total":    len(found),
			})
		}

		if source != "aliexpress" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown source: " + source})
		}

		refresh := c.QueryParam("refresh") == "true"
		err := deps.Search.Fetch(c.Request().Context(), keywords, c.QueryParam("sort"), refresh)
		resp := echo.Map{
			"source":   "aliexpress",
			"products": deps.Search.Results(),
			"total":    deps.Search.Total(),
			"page":     deps.Search.Page(),
			"phase":    deps.Search.Phase(),
		}
		if err != nil {
			resp["error"] = deps.Search.LastError()
			// Load-more failures keep what is already on screen.
			if len(deps.Search.Results()) > 0 {
				return c.JSON(http.StatusOK, resp)
			}
			return c.JSON(http.StatusBadGateway, resp)
		}
		return c.JSON(http.StatusOK, resp)
	})

	// GET /api/products/:id resolves from the registry
	g.GET("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		p, ok := deps.Products.Product(id)
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not known"})
		}
		return c.JSON(http.StatusOK, p)
	})

	// GET /api/products/:id/recommendations is smart-match cross-sell,
	// best effort: failures come back as an empty list.
	g.GET("/:id/recommendations", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		recommended := deps.Products.Recommendations(c.Request().Context(), id)
		if recommended == nil {
			recommended = []entity.Product{}
		}
		return c.JSON(http.StatusOK, echo.Map{"products": recommended})
	})
}
