package repo

// ProductFilter narrows a catalog query to a category/subcategory selector
// plus an offset/limit row range. Empty strings mean "no filter".
type ProductFilter struct {
	Category    string
	Subcategory string
	Offset      *int
	Limit       *int
}
