package models

// Product represents a catalog entry shown on the public site and managed
// through the admin dashboard. Subcategory is nullable; CreatedAt/UpdatedAt
// may be empty for records that predate those columns.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Subcategory *string `json:"subcategory"`
	ImageURL    string  `json:"image_url"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

// FacetField is the category/subcategory pair of a single product, used to
// derive the navigation facets. Facets are computed, never stored.
type FacetField struct {
	Category    string  `json:"category"`
	Subcategory *string `json:"subcategory"`
}
