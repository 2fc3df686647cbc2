// Package search owns the fetch state machine for the remote product
// feed: current query context, page cursor, accumulated results and the
// in-flight guard.
package search

import (
	"context"
	"sort"
	"sync"

	"github.com/jyagua/EasyPromo/model/entity"
	"github.com/jyagua/EasyPromo/model/registry"
	"github.com/jyagua/EasyPromo/provider/aliexpress"
)

// Phase is the externally visible fetch state.
type Phase string

const (
	Idle         Phase = "idle"
	LoadingFirst Phase = "loading_first"
	LoadingMore  Phase = "loading_more"
	Failed       Phase = "error"
)

// Fetcher is the remote product source, satisfied by *aliexpress.Client.
type Fetcher interface {
	Search(ctx context.Context, page int, keywords, sortOrder string) ([]entity.Product, int64, error)
}

// Controller accumulates result pages for one query context. At most one
// fetch is in flight; a refresh (forced, or implied by changed keywords
// or sort) resets the cursor and bumps the generation so a late
// completion from the superseded context is discarded instead of being
// appended under the new one.
type Controller struct {
	mu       sync.Mutex
	fetcher  Fetcher
	registry *registry.ProductRegistry

	phase      Phase
	page       int
	keywords   string
	sortOrder  string
	results    []entity.Product
	total      int64
	lastErr    string
	generation uint64
	inflight   bool
}

func NewController(fetcher Fetcher, reg *registry.ProductRegistry) *Controller {
	return &Controller{fetcher: fetcher, registry: reg, phase: Idle, page: 1}
}

// Fetch requests the next page for (keywords, sortOrder), or the first
// page when the context changed or force is set. Returns nil without
// fetching while another fetch is in flight; the refresh bookkeeping is
// still applied so the in-flight result lands in a stale generation.
func (c *Controller) Fetch(ctx context.Context, keywords, sortOrder string, force bool) error {
	c.mu.Lock()
	refresh := force || keywords != c.keywords || sortOrder != c.sortOrder
	if refresh {
		c.page = 1
		c.keywords = keywords
		c.sortOrder = sortOrder
		c.results = nil
		c.total = 0
		c.generation++
	}
	if c.inflight {
		c.mu.Unlock()
		return nil
	}
	c.inflight = true
	c.lastErr = ""
	if c.page == 1 {
		c.phase = LoadingFirst
	} else {
		c.phase = LoadingMore
	}
	gen := c.generation
	page := c.page
	kw := c.keywords
	sortOrder = c.sortOrder
	c.mu.Unlock()

	products, total, err := c.fetcher.Search(ctx, page, kw, sortOrder)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight = false

	if gen != c.generation {
		// Superseded while in flight: drop the completion wholesale,
		// result or failure, so nothing from the old context leaks into
		// the refreshed one. The caller of the refreshed context
		// fetches on its own.
		c.phase = Idle
		return nil
	}
	if err != nil {
		c.phase = Failed
		c.lastErr = err.Error()
		// Already loaded results are retained.
		return err
	}

	c.registry.UpsertAll(products)
	c.results = append(c.results, pageOrdered(products, sortOrder)...)
	c.total = total
	if len(products) > 0 {
		c.page++
	}
	c.phase = Idle
	return nil
}

// pageOrdered sorts a fetched page by discount descending when the
// discount sort is selected. Only the new page is ordered, matching the
// observed feed behavior: the cumulative list is not re-sorted.
func pageOrdered(products []entity.Product, sortOrder string) []entity.Product {
	if sortOrder != aliexpress.SortDiscountDesc {
		return products
	}
	out := make([]entity.Product, len(products))
	copy(out, products)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DiscountPercent > out[j].DiscountPercent
	})
	return out
}

// Results returns a snapshot of the accumulated list.
func (c *Controller) Results() []entity.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]entity.Product, len(c.results))
	copy(out, c.results)
	return out
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Page is the next page the controller will request.
func (c *Controller) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Total is the provider-reported total record count for the current query.
func (c *Controller) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// LastError is the human-readable message of the most recent failure,
// empty after a successful fetch.
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Keywords returns the last applied query context.
func (c *Controller) Keywords() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keywords
}

func (c *Controller) SortOrder() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sortOrder
}
