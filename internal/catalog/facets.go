package catalog

import "github.com/giftline/catalog-site/internal/models"

// Facets is the derived navigation map: categories in first-seen order, each
// with its unique subcategories in first-seen order. A category whose
// products carry no subcategory maps to an empty list.
type Facets struct {
	Categories    []string
	Subcategories map[string][]string
}

// DeriveFacets scans the category/subcategory fields of the product set and
// deduplicates them into the navigation map.
func DeriveFacets(fields []models.FacetField) Facets {
	facets := Facets{Subcategories: map[string][]string{}}

	for _, f := range fields {
		if f.Category == "" {
			continue
		}
		if _, seen := facets.Subcategories[f.Category]; !seen {
			facets.Categories = append(facets.Categories, f.Category)
			facets.Subcategories[f.Category] = []string{}
		}
		if f.Subcategory == nil || *f.Subcategory == "" {
			continue
		}
		if !contains(facets.Subcategories[f.Category], *f.Subcategory) {
			facets.Subcategories[f.Category] = append(facets.Subcategories[f.Category], *f.Subcategory)
		}
	}

	return facets
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
