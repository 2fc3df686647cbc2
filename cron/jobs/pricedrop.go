// Package jobs holds the cron job entrypoints. Jobs rebuild their own
// dependencies from config, so a scheduler process needs no running API
// server.
package jobs

import (
	"context"
	"log"

	"github.com/jyagua/EasyPromo/config"
	"github.com/jyagua/EasyPromo/cron"
	"github.com/jyagua/EasyPromo/model/registry"
	"github.com/jyagua/EasyPromo/model/repository/catalog"
	"github.com/jyagua/EasyPromo/notify"
	"github.com/jyagua/EasyPromo/service/pricedrop"
	"github.com/jyagua/EasyPromo/service/products"
	"github.com/jyagua/EasyPromo/store/prefs"
)

func init() {
	// The original mobile app re-armed a 6h repeating alarm for this.
	cron.Register("pricedropjob", "@every 6h", PriceDropJob)
}

// PriceDropJob resolves the persisted favorites against the local
// catalog and fires notifications for any price drops.
func PriceDropJob(args ...string) {
	ctx := context.Background()

	config.LoadAppConfig()
	config.InitRedis()

	var store prefs.Store
	if config.RedisClient != nil {
		store = prefs.NewRedisStore(config.RedisClient)
	} else {
		log.Println("[PriceDrop] Redis not configured, using in-memory preferences (baselines will not persist)")
		store = prefs.NewMemoryStore()
	}

	db, err := config.NewDB()
	if err != nil {
		log.Printf("[PriceDrop] catalog db: %v", err)
		return
	}
	cat, err := catalog.NewRepository(db)
	if err != nil {
		log.Printf("[PriceDrop] catalog: %v", err)
		return
	}

	reg := registry.New()
	svc := products.New(reg, store, cat, nil)
	if _, err := svc.LoadCatalog(ctx, "", ""); err != nil {
		log.Printf("[PriceDrop] load catalog: %v", err)
		return
	}

	favorites, err := svc.Favorites(ctx)
	if err != nil {
		log.Printf("[PriceDrop] favorites: %v", err)
		return
	}

	evaluator := pricedrop.New(store, notify.LogNotifier{})
	fired, err := evaluator.Run(ctx, favorites)
	if err != nil {
		log.Printf("[PriceDrop] evaluate: %v", err)
		return
	}
	log.Printf("[PriceDrop] checked %d favorites, %d notifications", len(favorites), fired)
}
