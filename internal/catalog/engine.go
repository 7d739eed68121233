package catalog

import (
	"context"
	"log"
	"sync"

	"github.com/giftline/catalog-site/internal/gateway"
	"github.com/giftline/catalog-site/internal/models"
)

// PageSize is the fixed catalog page size. The "has more" heuristic below is
// wrong only when the filtered total is an exact multiple of PageSize: the
// last full page reports one spurious "load more" that then returns empty.
const PageSize = 10

// Selector is the current category/subcategory filter. The zero value means
// the whole catalog.
type Selector struct {
	Category    string
	Subcategory string
}

// ProductSource is the slice of the gateway the engine needs.
type ProductSource interface {
	QueryProducts(ctx context.Context, q gateway.ProductQuery) ([]models.Product, error)
	FacetFields(ctx context.Context) ([]models.FacetField, error)
}

// Engine turns a selector plus a page counter into bounded fetches and folds
// the results into an accumulating list. Fetch results are applied only if
// the selector they were issued for is still current, so a slow response for
// a superseded filter can never mix into the grid.
type Engine struct {
	source ProductSource

	mu       sync.Mutex
	selector Selector
	page     int
	products []models.Product
	hasMore  bool
	loading  bool
	facets   Facets
}

func NewEngine(source ProductSource) *Engine {
	return &Engine{source: source}
}

// SetSelector resets the accumulated list and page counter, then fetches the
// first page for the new selector. The reset happens before the fetch is
// issued; an in-flight fetch for the previous selector is discarded when it
// arrives. The counter drops to zero so a failed first fetch can be retried
// through LoadMore without skipping rows, and hasMore stays false until a
// page has actually loaded.
func (e *Engine) SetSelector(ctx context.Context, sel Selector) error {
	e.mu.Lock()
	e.selector = sel
	e.page = 0
	e.products = nil
	e.hasMore = false
	e.mu.Unlock()

	return e.fetch(ctx, sel, 1)
}

// LoadMore fetches the next page for the current selector and appends it.
// The page counter only advances on success, so a manual retry after any
// failed fetch, the first page included, covers the same rows and leaves no
// gap.
func (e *Engine) LoadMore(ctx context.Context) error {
	e.mu.Lock()
	sel := e.selector
	page := e.page + 1
	e.mu.Unlock()

	return e.fetch(ctx, sel, page)
}

func (e *Engine) fetch(ctx context.Context, sel Selector, page int) error {
	e.setLoading(true)
	defer e.setLoading(false)

	items, err := e.source.QueryProducts(ctx, gateway.ProductQuery{
		Category:    sel.Category,
		Subcategory: sel.Subcategory,
		Offset:      (page - 1) * PageSize,
		Limit:       PageSize,
	})
	if err != nil {
		// The accumulated list stays as rendered; the caller may retry.
		log.Printf("catalog: fetching page %d: %v", page, err)
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selector != sel {
		// Stale response for a selector the user already navigated away from.
		return nil
	}
	e.page = page
	e.products = append(e.products, items...)
	e.hasMore = len(items) == PageSize
	return nil
}

// LoadFacets fetches the category/subcategory fields of the entire product
// set, independent of the current selector, and derives the navigation map.
func (e *Engine) LoadFacets(ctx context.Context) error {
	fields, err := e.source.FacetFields(ctx)
	if err != nil {
		log.Printf("catalog: fetching facets: %v", err)
		return err
	}

	facets := DeriveFacets(fields)
	e.mu.Lock()
	e.facets = facets
	e.mu.Unlock()
	return nil
}

// Products returns a copy of the accumulated list.
func (e *Engine) Products() []models.Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Product, len(e.products))
	copy(out, e.products)
	return out
}

func (e *Engine) HasMore() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hasMore
}

func (e *Engine) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

func (e *Engine) Selector() Selector {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selector
}

func (e *Engine) Page() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.page
}

func (e *Engine) Facets() Facets {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.facets
}

func (e *Engine) setLoading(v bool) {
	e.mu.Lock()
	e.loading = v
	e.mu.Unlock()
}
