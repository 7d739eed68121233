package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/giftline/catalog-site/internal/gateway"
	"github.com/giftline/catalog-site/internal/models"
)

// fakeSource serves pages from a fixed product list. Setting blockCategory
// makes queries for that category wait on the release channel, which lets a
// test hold a fetch in flight while the selector changes underneath it.
type fakeSource struct {
	mu            sync.Mutex
	products      []models.Product
	err           error
	blockCategory string
	started       chan struct{}
	release       chan struct{}
	queries       int
}

func (f *fakeSource) QueryProducts(_ context.Context, q gateway.ProductQuery) ([]models.Product, error) {
	f.mu.Lock()
	f.queries++
	blocked := f.blockCategory != "" && q.Category == f.blockCategory
	started, release := f.started, f.release
	err := f.err
	products := f.products
	f.mu.Unlock()

	if blocked {
		if started != nil {
			started <- struct{}{}
		}
		<-release
	}

	if err != nil {
		return nil, err
	}

	var filtered []models.Product
	for _, p := range products {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.Subcategory != "" && (p.Subcategory == nil || *p.Subcategory != q.Subcategory) {
			continue
		}
		filtered = append(filtered, p)
	}

	start := q.Offset
	if start > len(filtered) {
		start = len(filtered)
	}
	end := len(filtered)
	if q.Limit > 0 && start+q.Limit < end {
		end = start + q.Limit
	}
	return filtered[start:end], nil
}

func (f *fakeSource) FacetFields(context.Context) ([]models.FacetField, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	fields := make([]models.FacetField, len(f.products))
	for i, p := range f.products {
		fields[i] = models.FacetField{Category: p.Category, Subcategory: p.Subcategory}
	}
	return fields, nil
}

func (f *fakeSource) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func seedProducts(category string, n int) []models.Product {
	products := make([]models.Product, n)
	for i := range products {
		products[i] = models.Product{
			ID:       i + 1,
			Name:     fmt.Sprintf("%s %d", category, i+1),
			Category: category,
			ImageURL: "/uploads/test.jpg",
		}
	}
	return products
}

func TestEnginePagination(t *testing.T) {
	// 23 matching products with page size 10: two full pages, then a short
	// page of 3 that flips hasMore off.
	src := &fakeSource{products: seedProducts("Gifts", 23)}
	eng := NewEngine(src)
	ctx := context.Background()

	if err := eng.SetSelector(ctx, Selector{Category: "Gifts"}); err != nil {
		t.Fatalf("SetSelector: %v", err)
	}
	if got := len(eng.Products()); got != 10 {
		t.Fatalf("expected 10 products after page 1, got %d", got)
	}
	if !eng.HasMore() {
		t.Error("expected hasMore after a full page")
	}

	if err := eng.LoadMore(ctx); err != nil {
		t.Fatalf("LoadMore: %v", err)
	}
	if got := len(eng.Products()); got != 20 {
		t.Fatalf("expected 20 products after page 2, got %d", got)
	}
	if !eng.HasMore() {
		t.Error("expected hasMore after a second full page")
	}

	if err := eng.LoadMore(ctx); err != nil {
		t.Fatalf("LoadMore: %v", err)
	}
	if got := len(eng.Products()); got != 23 {
		t.Fatalf("expected 23 products after page 3, got %d", got)
	}
	if eng.HasMore() {
		t.Error("expected hasMore to flip false after a short page")
	}

	// Accumulation must be the concatenation of pages in fetch order: no
	// duplicates, no gaps.
	for i, p := range eng.Products() {
		if p.ID != i+1 {
			t.Fatalf("expected product %d at index %d, got %d", i+1, i, p.ID)
		}
	}
}

func TestEngineExactMultipleKeepsHasMore(t *testing.T) {
	// Known heuristic edge: 20 products is an exact multiple of the page
	// size, so the second full page still reports more.
	src := &fakeSource{products: seedProducts("Gifts", 20)}
	eng := NewEngine(src)
	ctx := context.Background()

	eng.SetSelector(ctx, Selector{Category: "Gifts"})
	eng.LoadMore(ctx)

	if !eng.HasMore() {
		t.Error("expected hasMore true on an exact page-size multiple")
	}

	eng.LoadMore(ctx)
	if eng.HasMore() {
		t.Error("expected hasMore false after the empty page")
	}
	if got := len(eng.Products()); got != 20 {
		t.Errorf("expected 20 products, got %d", got)
	}
}

func TestEngineSelectorChangeResets(t *testing.T) {
	products := append(seedProducts("Old", 15), models.Product{ID: 100, Name: "New 1", Category: "New"})
	src := &fakeSource{products: products}
	eng := NewEngine(src)
	ctx := context.Background()

	eng.SetSelector(ctx, Selector{Category: "Old"})
	eng.LoadMore(ctx)
	if got := len(eng.Products()); got != 15 {
		t.Fatalf("expected 15 products, got %d", got)
	}

	eng.SetSelector(ctx, Selector{Category: "New"})
	got := eng.Products()
	if len(got) != 1 || got[0].Category != "New" {
		t.Fatalf("expected only the New product after selector change, got %v", got)
	}
	if eng.Page() != 1 {
		t.Errorf("expected page reset to 1, got %d", eng.Page())
	}
}

func TestEngineDiscardsStaleResponse(t *testing.T) {
	products := append(seedProducts("Old", 5), models.Product{ID: 100, Name: "New 1", Category: "New"})
	src := &fakeSource{
		products:      products,
		blockCategory: "Old",
		started:       make(chan struct{}),
		release:       make(chan struct{}),
	}
	eng := NewEngine(src)
	ctx := context.Background()

	done := make(chan error)
	go func() {
		done <- eng.SetSelector(ctx, Selector{Category: "Old"})
	}()

	// Wait until the Old fetch is in flight, then switch to New.
	<-src.started
	src.mu.Lock()
	src.blockCategory = ""
	src.mu.Unlock()

	if err := eng.SetSelector(ctx, Selector{Category: "New"}); err != nil {
		t.Fatalf("SetSelector(New): %v", err)
	}

	close(src.release)
	if err := <-done; err != nil {
		t.Fatalf("SetSelector(Old): %v", err)
	}

	got := eng.Products()
	if len(got) != 1 || got[0].Category != "New" {
		t.Fatalf("stale Old page leaked into the list: %v", got)
	}
}

func TestEngineFetchErrorLeavesListIntact(t *testing.T) {
	src := &fakeSource{products: seedProducts("Gifts", 12)}
	eng := NewEngine(src)
	ctx := context.Background()

	eng.SetSelector(ctx, Selector{Category: "Gifts"})
	if got := len(eng.Products()); got != 10 {
		t.Fatalf("expected 10 products, got %d", got)
	}

	src.setErr(errors.New("backend down"))
	if err := eng.LoadMore(ctx); err == nil {
		t.Fatal("expected an error from LoadMore")
	}

	if got := len(eng.Products()); got != 10 {
		t.Errorf("failed load must not change the list, got %d products", got)
	}
	if eng.Loading() {
		t.Error("loading flag must clear after a failed fetch so the UI can retry")
	}

	// A manual retry covers the same rows; the failed call must not have
	// advanced the page counter.
	src.setErr(nil)
	if err := eng.LoadMore(ctx); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if got := len(eng.Products()); got != 12 {
		t.Errorf("expected 12 products after retry, got %d", got)
	}
}

func TestEngineFailedFirstPageRetry(t *testing.T) {
	src := &fakeSource{products: seedProducts("Gifts", 12)}
	src.setErr(errors.New("backend down"))
	eng := NewEngine(src)
	ctx := context.Background()

	if err := eng.SetSelector(ctx, Selector{Category: "Gifts"}); err == nil {
		t.Fatal("expected an error from the first fetch")
	}
	if eng.HasMore() {
		t.Error("nothing has loaded yet, hasMore must be false")
	}
	if got := len(eng.Products()); got != 0 {
		t.Fatalf("expected an empty list after a failed first fetch, got %d products", got)
	}

	// The retry must cover the first page again, not jump to the second.
	src.setErr(nil)
	if err := eng.LoadMore(ctx); err != nil {
		t.Fatalf("retry: %v", err)
	}

	products := eng.Products()
	if len(products) != 10 {
		t.Fatalf("expected the first full page after retry, got %d products", len(products))
	}
	for i, p := range products {
		if p.ID != i+1 {
			t.Fatalf("expected product %d at index %d, got %d", i+1, i, p.ID)
		}
	}
	if eng.Page() != 1 {
		t.Errorf("expected page 1 after the retried first fetch, got %d", eng.Page())
	}
	if !eng.HasMore() {
		t.Error("expected hasMore after a full page")
	}
}

func TestEngineLoadFacets(t *testing.T) {
	products := []models.Product{
		{ID: 1, Category: "A", Subcategory: strPtr("X")},
		{ID: 2, Category: "A", Subcategory: strPtr("Y")},
		{ID: 3, Category: "B"},
	}
	src := &fakeSource{products: products}
	eng := NewEngine(src)
	ctx := context.Background()

	// Facets cover the whole set even while the grid is filtered.
	eng.SetSelector(ctx, Selector{Category: "B"})
	if err := eng.LoadFacets(ctx); err != nil {
		t.Fatalf("LoadFacets: %v", err)
	}

	facets := eng.Facets()
	if len(facets.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %v", facets.Categories)
	}
	if len(facets.Subcategories["A"]) != 2 {
		t.Errorf("expected 2 subcategories for A, got %v", facets.Subcategories["A"])
	}
}

func TestEngineLoadingClearsEventually(t *testing.T) {
	src := &fakeSource{products: seedProducts("Gifts", 3)}
	eng := NewEngine(src)

	eng.SetSelector(context.Background(), Selector{Category: "Gifts"})

	deadline := time.Now().Add(time.Second)
	for eng.Loading() {
		if time.Now().After(deadline) {
			t.Fatal("loading flag never cleared")
		}
		time.Sleep(time.Millisecond)
	}
}
