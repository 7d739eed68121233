package repo

import (
	"github.com/giftline/catalog-site/internal/models"
)

// InMemoryContactRepository is an in-memory implementation of ContactRepository.
type InMemoryContactRepository struct {
	submissions []models.ContactSubmission
	nextID      int
}

// NewInMemoryContactRepository creates a new instance of InMemoryContactRepository.
func NewInMemoryContactRepository() *InMemoryContactRepository {
	return &InMemoryContactRepository{
		submissions: []models.ContactSubmission{},
		nextID:      1,
	}
}

// Create adds a new submission to the repository.
func (r *InMemoryContactRepository) Create(c models.ContactSubmission) (models.ContactSubmission, error) {
	c.ID = r.nextID
	r.nextID++
	r.submissions = append(r.submissions, c)
	return c, nil
}

// GetAll retrieves all submissions, newest first.
func (r *InMemoryContactRepository) GetAll() ([]models.ContactSubmission, error) {
	out := make([]models.ContactSubmission, len(r.submissions))
	for i, c := range r.submissions {
		out[len(r.submissions)-1-i] = c
	}
	return out, nil
}

func (r *InMemoryContactRepository) Clear() {
	r.submissions = []models.ContactSubmission{}
}
