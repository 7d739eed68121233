package repo

import (
	"context"
	"database/sql"
	"time"

	models "github.com/giftline/catalog-site/internal/models"
)

type PostgresContactRepository struct {
	db *sql.DB
}

func NewPostgresContactRepository(db *sql.DB) *PostgresContactRepository {
	return &PostgresContactRepository{db: db}
}

func (r *PostgresContactRepository) Create(c models.ContactSubmission) (models.ContactSubmission, error) {
	query := `INSERT INTO contact_submissions (name, email, phone, website, message, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, c.Name, c.Email, c.Phone, c.Website, c.Message, c.CreatedAt).Scan(&c.ID)
	return c, err
}

func (r *PostgresContactRepository) GetAll() ([]models.ContactSubmission, error) {
	query := `SELECT id, name, email, phone, website, message, created_at FROM contact_submissions ORDER BY created_at DESC, id DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []models.ContactSubmission
	for rows.Next() {
		var c models.ContactSubmission
		var createdAt sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Website, &c.Message, &createdAt); err != nil {
			return nil, err
		}
		c.CreatedAt = createdAt.String
		submissions = append(submissions, c)
	}
	return submissions, rows.Err()
}
