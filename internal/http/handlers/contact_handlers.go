package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	models "github.com/giftline/catalog-site/internal/models"
)

// CreateContactSubmissionHandler godoc
// @Summary Submit the public contact form
// @Tags contact
// @Accept json
// @Produce json
// @Param submission body ContactRequest true "Contact form fields"
// @Success 201 {object} ContactResponse
// @Failure 400 {object} map[string]string
// @Failure 429 {string} string "Too many requests"
// @Router /contact [post]
func CreateContactSubmissionHandler(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateContact(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	submission := models.ContactSubmission{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Website:   req.Website,
		Message:   req.Message,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	created, err := contactRepo.Create(submission)
	if err != nil {
		http.Error(w, "could not save submission", http.StatusInternalServerError)
		return
	}

	err = writeJSON(w, http.StatusCreated, ContactResponse{
		Id:        created.ID,
		Name:      created.Name,
		Email:     created.Email,
		Phone:     created.Phone,
		Website:   created.Website,
		Message:   created.Message,
		CreatedAt: created.CreatedAt,
	})
	if err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// GetContactSubmissionsHandler godoc
// @Summary List contact submissions, newest first
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ContactResponse
// @Failure 500 {string} string "Internal error"
// @Router /contact [get]
func GetContactSubmissionsHandler(w http.ResponseWriter, r *http.Request) {
	submissions, err := contactRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch submissions", http.StatusInternalServerError)
		return
	}

	resp := make([]ContactResponse, len(submissions))
	for i, c := range submissions {
		resp[i] = ContactResponse{
			Id:        c.ID,
			Name:      c.Name,
			Email:     c.Email,
			Phone:     c.Phone,
			Website:   c.Website,
			Message:   c.Message,
			CreatedAt: c.CreatedAt,
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
