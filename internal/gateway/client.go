package gateway

import (
	"context"

	"github.com/giftline/catalog-site/internal/models"
)

// ProductQuery selects a slice of the catalog: equality filters on
// category/subcategory (empty string means no filter) plus an offset/limit
// row range. Limit 0 means no range, i.e. the whole filtered set.
type ProductQuery struct {
	Category    string
	Subcategory string
	Offset      int
	Limit       int
}

// ProductData is the writable portion of a product record. The id and the
// timestamps are server-assigned.
type ProductData struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Subcategory *string `json:"subcategory"`
	ImageURL    string  `json:"image_url"`
}

// ImageUpload carries one image file destined for the images bucket.
type ImageUpload struct {
	Category    string
	Subcategory string
	Filename    string
	ContentType string
	Data        []byte
}

// Session is what the client observes about authentication: presence and the
// account name, never the credential itself.
type Session struct {
	Authenticated bool
	Username      string
}

// ContactData is a public contact-form submission.
type ContactData struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Website *string `json:"website"`
	Message string  `json:"message"`
}

// Client is the remote data gateway: every network operation the catalog and
// dashboard perform goes through it. All calls are synchronous
// request/response; no call retries on failure, and a failed upload must not
// be followed by a record write.
type Client interface {
	QueryProducts(ctx context.Context, q ProductQuery) ([]models.Product, error)
	FacetFields(ctx context.Context) ([]models.FacetField, error)
	InsertProduct(ctx context.Context, data ProductData) (models.Product, error)
	UpdateProduct(ctx context.Context, id int, data ProductData) (models.Product, error)
	DeleteProduct(ctx context.Context, id int) error
	UploadImage(ctx context.Context, up ImageUpload) (string, error)
	SubmitContact(ctx context.Context, data ContactData) error
	QueryContacts(ctx context.Context) ([]models.ContactSubmission, error)
	Session(ctx context.Context) (Session, error)
	SignIn(ctx context.Context, username, password string) error
	SignOut(ctx context.Context) error
}
