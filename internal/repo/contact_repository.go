package repo

import "github.com/giftline/catalog-site/internal/models"

// ContactRepository stores contact form submissions. Submissions are
// write-once; there is no update or delete.
type ContactRepository interface {
	Create(c models.ContactSubmission) (models.ContactSubmission, error)
	GetAll() ([]models.ContactSubmission, error)
}
