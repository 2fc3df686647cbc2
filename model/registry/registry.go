package registry

import (
	"sync"

	"github.com/jyagua/EasyPromo/model/entity"
)

// ProductRegistry consolidates every product seen from any source into a
// single id-keyed map, so bare ids from the persisted favorite/cart sets
// can be resolved back into full records. Merge-only: entries are never
// removed. Updates swap in a fresh map (copy-on-write), so readers can
// hold the previous snapshot without locking.
type ProductRegistry struct {
	mu       sync.RWMutex
	products map[int64]entity.Product
}

func New() *ProductRegistry {
	return &ProductRegistry{products: make(map[int64]entity.Product)}
}

// UpsertAll merges products by id, last write wins. Re-upserting the same
// content is a no-op apart from refreshed fields.
func (r *ProductRegistry) UpsertAll(products []entity.Product) {
	if len(products) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	next := make(map[int64]entity.Product, len(r.products)+len(products))
	for id, p := range r.products {
		next[id] = p
	}
	for _, p := range products {
		next[p.ID] = p
	}
	r.products = next
}

// Resolve returns the product for an id, if known.
func (r *ProductRegistry) Resolve(id int64) (entity.Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	return p, ok
}

// ResolveAll maps ids to products, preserving input order and silently
// dropping ids the registry has not seen yet.
func (r *ProductRegistry) ResolveAll(ids []int64) []entity.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of known products.
func (r *ProductRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products)
}
