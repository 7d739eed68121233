package catalog

import (
	"sync"

	"github.com/giftline/catalog-site/internal/models"
)

// Store is the dashboard's cached copy of the product collection. Mutations
// patch it optimistically from the server's returned record rather than
// refetching; ReplaceAll is the manual full-refresh reconciliation entry
// point. Two admins editing concurrently can diverge until the next
// ReplaceAll — a known limitation, not solved here.
type Store struct {
	mu       sync.Mutex
	products []models.Product
}

func NewStore() *Store {
	return &Store{}
}

// ReplaceAll swaps in a freshly fetched list.
func (s *Store) ReplaceAll(products []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = make([]models.Product, len(products))
	copy(s.products, products)
}

// ApplyCreate prepends the created record, matching the newest-first
// dashboard ordering.
func (s *Store) ApplyCreate(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append([]models.Product{p}, s.products...)
}

// ApplyUpdate replaces the record with the same id.
func (s *Store) ApplyUpdate(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.products {
		if existing.ID == p.ID {
			s.products[i] = p
			return
		}
	}
}

// ApplyDelete removes the record with the given id.
func (s *Store) ApplyDelete(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.products {
		if existing.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return
		}
	}
}

// Products returns a copy of the cached list.
func (s *Store) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Categories returns the unique categories of the cached list in first-seen
// order, for the dashboard filter chips.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var categories []string
	for _, p := range s.products {
		if !contains(categories, p.Category) {
			categories = append(categories, p.Category)
		}
	}
	return categories
}

// FilterByCategory filters the cached list client-side; no server round-trip.
// An empty category returns everything.
func (s *Store) FilterByCategory(category string) []models.Product {
	if category == "" {
		return s.Products()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}
