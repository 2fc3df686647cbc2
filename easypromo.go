package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/jyagua/EasyPromo/api"
	_ "github.com/jyagua/EasyPromo/api/health"
	_ "github.com/jyagua/EasyPromo/api/prefsapi"
	_ "github.com/jyagua/EasyPromo/api/product"
	"github.com/jyagua/EasyPromo/config"
	"github.com/jyagua/EasyPromo/model/registry"
	"github.com/jyagua/EasyPromo/model/repository/catalog"
	"github.com/jyagua/EasyPromo/notify"
	"github.com/jyagua/EasyPromo/provider/aliexpress"
	"github.com/jyagua/EasyPromo/service/pricedrop"
	"github.com/jyagua/EasyPromo/service/products"
	"github.com/jyagua/EasyPromo/service/search"
	"github.com/jyagua/EasyPromo/store/prefs"
)

func getAuthMiddleware() echo.MiddlewareFunc {
	skipPaths := config.GetAuthSkipperPaths()
	skipper := func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip {
				return true
			}
		}
		return false
	}
	authType := os.Getenv("AUTH_TYPE")
	switch authType {
	case "key":
		apiKey := os.Getenv("API_KEY")
		return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
			Validator: func(key string, c echo.Context) (bool, error) {
				return key == apiKey, nil
			},
			Skipper: skipper,
		})
	default:
		return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
			Validator: func(username, password string, c echo.Context) (bool, error) {
				return username == os.Getenv("API_USER") && password == os.Getenv("API_PASS"), nil
			},
			Skipper: skipper,
		})
	}
}

func main() {
	config.LoadEnv()
	config.LoadAppConfig()

	config.InitRedis()
	var store prefs.Store
	if config.RedisClient != nil {
		if err := config.RedisClient.Ping(config.RedisCtx()).Err(); err == nil {
			log.Println("Redis connection successful.")
			store = prefs.NewRedisStore(config.RedisClient)
		} else {
			log.Println("Redis configured but not reachable, falling back to in-memory preferences.")
		}
	}
	if store == nil {
		if config.RedisClient == nil {
			log.Println("Redis not configured, using in-memory preferences.")
		}
		store = prefs.NewMemoryStore()
	}

	db, err := config.NewDB()
	if err != nil {
		log.Fatalf("failed to open catalog DB: %v", err)
	}
	cat, err := catalog.NewRepository(db)
	if err != nil {
		log.Fatalf("catalog migration failed: %v", err)
	}
	if err := cat.Seed(); err != nil {
		log.Fatalf("catalog seed failed: %v", err)
	}
	log.Println("Catalog database ready.")

	cfg := config.AppConfig
	client := aliexpress.NewClient(aliexpress.Config{
		BaseURL:        cfg.AffiliateBaseURL,
		AppKey:         cfg.AppKey,
		AppSecret:      cfg.AppSecret,
		TrackingID:     cfg.TrackingID,
		ShipToCountry:  cfg.ShipToCountry,
		TargetCurrency: cfg.TargetCurrency,
		TargetLanguage: cfg.TargetLanguage,
		PageSize:       cfg.PageSize,
	})

	productRegistry := registry.New()
	productService := products.New(productRegistry, store, cat, client)
	searchController := search.NewController(client, productRegistry)
	evaluator := pricedrop.New(store, notify.LogNotifier{})

	deps := &api.Deps{
		Products:  productService,
		Search:    searchController,
		Prefs:     store,
		PriceDrop: evaluator,
	}

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			return err
		}
	})

	apiGroup := e.Group("/api")
	apiGroup.Use(getAuthMiddleware())
	api.ApplyModules(apiGroup, deps)
	api.ApplyRoutes(e, deps)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on :%s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
