// Package products reconciles the persisted favorite/cart id sets with
// the product registry and feeds the registry from every source: the
// local catalog, remote search pages and smart-match recommendations.
package products

import (
	"context"
	"fmt"

	"github.com/jyagua/EasyPromo/model/entity"
	"github.com/jyagua/EasyPromo/model/registry"
	"github.com/jyagua/EasyPromo/model/repository/catalog"
	"github.com/jyagua/EasyPromo/store/prefs"
)

// Recommender is the cross-sell lookup, satisfied by the AliExpress
// client. Best effort by contract: implementations return an empty list
// on failure.
type Recommender interface {
	Recommendations(ctx context.Context, productID int64) []entity.Product
}

type Service struct {
	registry    *registry.ProductRegistry
	prefs       prefs.Store
	catalog     *catalog.Repository
	recommender Recommender
}

func New(reg *registry.ProductRegistry, store prefs.Store, cat *catalog.Repository, rec Recommender) *Service {
	return &Service{registry: reg, prefs: store, catalog: cat, recommender: rec}
}

// LoadCatalog searches the local catalog and pushes the hits into the
// registry so persisted ids referencing them become resolvable.
func (s *Service) LoadCatalog(ctx context.Context, store, query string) ([]entity.Product, error) {
	found, err := s.catalog.Search(store, query)
	if err != nil {
		return nil, err
	}
	s.registry.UpsertAll(found)
	return found, nil
}

// Favorites projects the persisted favorite ids onto full products.
// Ids the registry has not seen yet are omitted until some fetch
// upserts them; that is the accepted reconciliation gap, not an error.
func (s *Service) Favorites(ctx context.Context) ([]entity.Product, error) {
	ids, err := s.prefs.FavoriteIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("products: favorites: %w", err)
	}
	return s.registry.ResolveAll(ids), nil
}

// CartItems projects the persisted cart ids onto full products.
func (s *Service) CartItems(ctx context.Context) ([]entity.Product, error) {
	ids, err := s.prefs.CartIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("products: cart: %w", err)
	}
	return s.registry.ResolveAll(ids), nil
}

// ToggleFavorite writes through to the persisted set and reports the new
// membership. Toggling an id the registry cannot resolve still persists;
// when the baseline is dropped along with the favorite, a later re-add
// starts price-drop tracking from scratch.
func (s *Service) ToggleFavorite(ctx context.Context, id int64) (bool, error) {
	added, err := s.prefs.ToggleFavorite(ctx, id)
	if err != nil {
		return false, fmt.Errorf("products: toggle favorite %d: %w", id, err)
	}
	if !added {
		if err := s.prefs.ClearLastNotifiedPrice(ctx, id); err != nil {
			return false, fmt.Errorf("products: toggle favorite %d: %w", id, err)
		}
	}
	return added, nil
}

// ToggleCart writes through to the persisted cart set.
func (s *Service) ToggleCart(ctx context.Context, id int64) (bool, error) {
	added, err := s.prefs.ToggleCart(ctx, id)
	if err != nil {
		return false, fmt.Errorf("products: toggle cart %d: %w", id, err)
	}
	return added, nil
}

// KnownProducts is the number of products the registry can resolve.
func (s *Service) KnownProducts() int {
	return s.registry.Len()
}

// Product resolves a bare id against the registry.
func (s *Service) Product(id int64) (entity.Product, bool) {
	return s.registry.Resolve(id)
}

// Recommendations fetches cross-sell products for a product id and
// upserts them so they can be favorited/carted right away.
func (s *Service) Recommendations(ctx context.Context, id int64) []entity.Product {
	if s.recommender == nil {
		return nil
	}
	recommended := s.recommender.Recommendations(ctx, id)
	s.registry.UpsertAll(recommended)
	return recommended
}
