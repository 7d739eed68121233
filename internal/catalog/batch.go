package catalog

import "github.com/giftline/catalog-site/internal/models"

// FallbackImageURL replaces an image reference that failed to load.
const FallbackImageURL = "/uploads/static/placeholder.png"

// Responsive breakpoints, in CSS pixels.
const (
	breakpointSM = 640
	breakpointMD = 768
	breakpointLG = 1024
)

// ColumnsForWidth maps a viewport width to the grid column count.
func ColumnsForWidth(px int) int {
	switch {
	case px < breakpointSM:
		return 1
	case px < breakpointMD:
		return 2
	case px < breakpointLG:
		return 3
	default:
		return 4
	}
}

// Batches groups the accumulated list into chunks of columns*2 so the reveal
// animation staggers batch-by-batch rather than item-by-item. The final batch
// may be short.
func Batches(products []models.Product, columns int) [][]models.Product {
	if columns < 1 {
		columns = 1
	}
	size := columns * 2

	var batches [][]models.Product
	for i := 0; i < len(products); i += size {
		end := i + size
		if end > len(products) {
			end = len(products)
		}
		batches = append(batches, products[i:end])
	}
	return batches
}

// Lightbox holds at most one image URL for the full-size overlay.
type Lightbox struct {
	url string
}

func (l *Lightbox) Open(url string) {
	l.url = url
}

func (l *Lightbox) Close() {
	l.url = ""
}

func (l *Lightbox) IsOpen() bool {
	return l.url != ""
}

func (l *Lightbox) URL() string {
	return l.url
}

// ImageView tracks one product image's display URL. A failed load substitutes
// the fallback exactly once; a second failure leaves it alone so a broken
// fallback cannot loop.
type ImageView struct {
	URL      string
	fellBack bool
}

func NewImageView(url string) ImageView {
	return ImageView{URL: url}
}

func (v *ImageView) OnLoadError() {
	if v.fellBack {
		return
	}
	v.URL = FallbackImageURL
	v.fellBack = true
}
