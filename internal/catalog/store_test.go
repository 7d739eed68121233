package catalog

import (
	"reflect"
	"testing"

	"github.com/giftline/catalog-site/internal/models"
)

func TestStoreApplyCreatePrepends(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]models.Product{{ID: 1, Name: "Mug", Category: "Drinkware"}})

	s.ApplyCreate(models.Product{ID: 2, Name: "Cap", Category: "Apparel"})

	products := s.Products()
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ID != 2 {
		t.Errorf("expected the created record at the head, got id %d", products[0].ID)
	}
}

func TestStoreApplyUpdateReplacesById(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]models.Product{
		{ID: 1, Name: "Mug", Category: "Drinkware"},
		{ID: 2, Name: "Cap", Category: "Apparel"},
	})

	s.ApplyUpdate(models.Product{ID: 2, Name: "Snapback Cap", Category: "Apparel"})

	products := s.Products()
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}

	var matches int
	for _, p := range products {
		if p.ID == 2 {
			matches++
			if p.Name != "Snapback Cap" {
				t.Errorf("expected updated name, got %q", p.Name)
			}
		}
	}
	if matches != 1 {
		t.Errorf("expected exactly one record with id 2, got %d", matches)
	}
}

func TestStoreApplyDeleteRemovesById(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]models.Product{
		{ID: 1, Name: "Mug"},
		{ID: 2, Name: "Cap"},
		{ID: 3, Name: "Pen"},
	})

	s.ApplyDelete(2)

	for _, p := range s.Products() {
		if p.ID == 2 {
			t.Fatal("deleted id still present")
		}
	}
	if len(s.Products()) != 2 {
		t.Errorf("expected 2 products, got %d", len(s.Products()))
	}

	// Deleting an absent id is a no-op.
	s.ApplyDelete(2)
	if len(s.Products()) != 2 {
		t.Errorf("expected 2 products after repeated delete, got %d", len(s.Products()))
	}
}

func TestStoreReplaceAllCopies(t *testing.T) {
	s := NewStore()
	source := []models.Product{{ID: 1, Name: "Mug"}}
	s.ReplaceAll(source)

	source[0].Name = "changed"
	if s.Products()[0].Name != "Mug" {
		t.Error("store must hold its own copy of the list")
	}
}

func TestStoreCategoriesFirstSeenOrder(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]models.Product{
		{ID: 1, Category: "Drinkware"},
		{ID: 2, Category: "Apparel"},
		{ID: 3, Category: "Drinkware"},
	})

	want := []string{"Drinkware", "Apparel"}
	if got := s.Categories(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestStoreFilterByCategory(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]models.Product{
		{ID: 1, Category: "Drinkware"},
		{ID: 2, Category: "Apparel"},
		{ID: 3, Category: "Drinkware"},
	})

	filtered := s.FilterByCategory("Drinkware")
	if len(filtered) != 2 {
		t.Fatalf("expected 2 products, got %d", len(filtered))
	}

	if got := s.FilterByCategory(""); len(got) != 3 {
		t.Errorf("empty filter should return everything, got %d", len(got))
	}
}
