// Package pricedrop watches favorited products for price drops and
// notifies at most once per new low.
package pricedrop

import (
	"context"
	"fmt"
	"log"

	"github.com/jyagua/EasyPromo/model/entity"
	"github.com/jyagua/EasyPromo/notify"
	"github.com/jyagua/EasyPromo/store/prefs"
)

type Evaluator struct {
	prefs    prefs.Store
	notifier notify.Notifier
}

func New(store prefs.Store, notifier notify.Notifier) *Evaluator {
	return &Evaluator{prefs: store, notifier: notifier}
}

// Run loads the notification toggle and evaluates. Convenience wrapper
// for the cron job and the manual trigger endpoint.
func (e *Evaluator) Run(ctx context.Context, favorites []entity.Product) (int, error) {
	enabled, err := e.prefs.PriceDropEnabled(ctx)
	if err != nil {
		return 0, err
	}
	return e.Evaluate(ctx, favorites, enabled)
}

// Evaluate compares each favorite against its persisted baseline and
// returns the number of notifications fired.
//
// First observation records the current price without notifying. A price
// strictly below the baseline notifies and re-baselines. Equal or higher
// prices leave the baseline untouched, so a price that climbs and later
// falls back only re-notifies below the old low.
func (e *Evaluator) Evaluate(ctx context.Context, favorites []entity.Product, enabled bool) (int, error) {
	if !enabled {
		return 0, nil
	}
	fired := 0
	for _, p := range favorites {
		baseline, known, err := e.prefs.LastNotifiedPrice(ctx, p.ID)
		if err != nil {
			return fired, fmt.Errorf("pricedrop: baseline for %d: %w", p.ID, err)
		}
		if !known {
			if err := e.prefs.SetLastNotifiedPrice(ctx, p.ID, p.Price); err != nil {
				return fired, fmt.Errorf("pricedrop: record baseline for %d: %w", p.ID, err)
			}
			continue
		}
		if p.Price >= baseline {
			continue
		}
		title := "Favorite on sale"
		body := fmt.Sprintf("%s dropped to %.2f (was %.2f)", p.Name, p.Price, baseline)
		if err := e.notifier.Send(title, body); err != nil {
			log.Printf("[PriceDrop] notify %d failed: %v", p.ID, err)
			continue
		}
		if err := e.prefs.SetLastNotifiedPrice(ctx, p.ID, p.Price); err != nil {
			return fired, fmt.Errorf("pricedrop: update baseline for %d: %w", p.ID, err)
		}
		fired++
	}
	return fired, nil
}
