package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/giftline/catalog-site/internal/catalog"
	"github.com/giftline/catalog-site/internal/gateway"
	"github.com/giftline/catalog-site/internal/models"
)

// ErrSubmitInFlight is returned when a form submission starts while another
// is still pending. The UI disables the submit control on it.
var ErrSubmitInFlight = errors.New("dashboard: a submission is already in flight")

// ErrNoPendingDelete is returned when ConfirmDelete is called without a prior
// RequestDelete.
var ErrNoPendingDelete = errors.New("dashboard: no delete pending confirmation")

// Gateway is the slice of the remote gateway the dashboard controller uses.
type Gateway interface {
	QueryProducts(ctx context.Context, q gateway.ProductQuery) ([]models.Product, error)
	InsertProduct(ctx context.Context, data gateway.ProductData) (models.Product, error)
	UpdateProduct(ctx context.Context, id int, data gateway.ProductData) (models.Product, error)
	DeleteProduct(ctx context.Context, id int) error
	UploadImage(ctx context.Context, up gateway.ImageUpload) (string, error)
	QueryContacts(ctx context.Context) ([]models.ContactSubmission, error)
}

// ImageFile is a locally chosen image awaiting upload. When a form carries
// one, the upload must complete before the product record is written.
type ImageFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ProductForm is the create/edit form state. ID zero means create. ImageURL
// holds the current reference; ImageFile, when set, replaces it after upload.
type ProductForm struct {
	ID          int
	Name        string
	Description string
	Category    string
	Subcategory *string
	ImageURL    string
	ImageFile   *ImageFile
}

// Controller drives the admin dashboard: the cached product list with its
// client-side category filter, the create/edit submission flow, the delete
// confirmation flow, and the read-only contact viewer.
type Controller struct {
	gw    Gateway
	store *catalog.Store

	mu             sync.Mutex
	submitting     bool
	categoryFilter string
	pendingDelete  *models.Product
	contacts       []models.ContactSubmission
}

func NewController(gw Gateway, store *catalog.Store) *Controller {
	return &Controller{gw: gw, store: store}
}

// Load fetches the full product list into the cached store. Also serves as
// the manual full-refresh entry point that reconciles cross-session drift.
func (c *Controller) Load(ctx context.Context) error {
	products, err := c.gw.QueryProducts(ctx, gateway.ProductQuery{})
	if err != nil {
		return fmt.Errorf("loading products: %w", err)
	}
	c.store.ReplaceAll(products)
	return nil
}

// Store exposes the cached product list.
func (c *Controller) Store() *catalog.Store {
	return c.store
}

// SetCategoryFilter narrows VisibleProducts client-side. Empty shows all.
func (c *Controller) SetCategoryFilter(category string) {
	c.mu.Lock()
	c.categoryFilter = category
	c.mu.Unlock()
}

func (c *Controller) CategoryFilter() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.categoryFilter
}

func (c *Controller) VisibleProducts() []models.Product {
	c.mu.Lock()
	filter := c.categoryFilter
	c.mu.Unlock()
	return c.store.FilterByCategory(filter)
}

// Submitting reports whether a form submission is pending, for disabling the
// submit control.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Submit runs the create/edit flow. Order is strict: if a new image file was
// chosen, upload it and obtain its URL first; only then write the product
// record. An upload failure aborts before any record write. The returned
// record has already been patched into the cached store.
func (c *Controller) Submit(ctx context.Context, form ProductForm) (models.Product, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return models.Product{}, ErrSubmitInFlight
	}
	c.submitting = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	imageURL := form.ImageURL
	if form.ImageFile != nil {
		subcategory := ""
		if form.Subcategory != nil {
			subcategory = *form.Subcategory
		}
		url, err := c.gw.UploadImage(ctx, gateway.ImageUpload{
			Category:    form.Category,
			Subcategory: subcategory,
			Filename:    form.ImageFile.Filename,
			ContentType: form.ImageFile.ContentType,
			Data:        form.ImageFile.Data,
		})
		if err != nil {
			return models.Product{}, fmt.Errorf("uploading image: %w", err)
		}
		imageURL = url
	}

	data := gateway.ProductData{
		Name:        form.Name,
		Description: form.Description,
		Category:    form.Category,
		Subcategory: form.Subcategory,
		ImageURL:    imageURL,
	}

	if form.ID == 0 {
		created, err := c.gw.InsertProduct(ctx, data)
		if err != nil {
			return models.Product{}, fmt.Errorf("creating product: %w", err)
		}
		c.store.ApplyCreate(created)
		return created, nil
	}

	updated, err := c.gw.UpdateProduct(ctx, form.ID, data)
	if err != nil {
		return models.Product{}, fmt.Errorf("updating product: %w", err)
	}
	c.store.ApplyUpdate(updated)
	return updated, nil
}

// FormFor pre-fills the edit form from a cached record.
func FormFor(p models.Product) ProductForm {
	return ProductForm{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		ImageURL:    p.ImageURL,
	}
}

// RequestDelete stages a product for deletion; nothing is sent until
// ConfirmDelete.
func (c *Controller) RequestDelete(p models.Product) {
	c.mu.Lock()
	c.pendingDelete = &p
	c.mu.Unlock()
}

// PendingDelete returns the staged product, if any, so the confirmation
// modal can name it.
func (c *Controller) PendingDelete() (models.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pendingDelete == nil {
		return models.Product{}, false
	}
	return *c.pendingDelete, true
}

// ConfirmMessage is the text shown in the confirmation modal.
func (c *Controller) ConfirmMessage() string {
	p, ok := c.PendingDelete()
	if !ok {
		return ""
	}
	return fmt.Sprintf("Delete %q? This cannot be undone.", p.Name)
}

// CancelDelete clears the staged delete without touching anything else.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	c.pendingDelete = nil
	c.mu.Unlock()
}

// ConfirmDelete fires the delete for the staged product and patches the
// cached store on success.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	pending := c.pendingDelete
	c.pendingDelete = nil
	c.mu.Unlock()

	if pending == nil {
		return ErrNoPendingDelete
	}

	if err := c.gw.DeleteProduct(ctx, pending.ID); err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	c.store.ApplyDelete(pending.ID)
	return nil
}

// LoadContacts fetches the read-only submissions list, newest first.
func (c *Controller) LoadContacts(ctx context.Context) error {
	contacts, err := c.gw.QueryContacts(ctx)
	if err != nil {
		return fmt.Errorf("loading contact submissions: %w", err)
	}
	c.mu.Lock()
	c.contacts = contacts
	c.mu.Unlock()
	return nil
}

func (c *Controller) Contacts() []models.ContactSubmission {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.ContactSubmission, len(c.contacts))
	copy(out, c.contacts)
	return out
}
