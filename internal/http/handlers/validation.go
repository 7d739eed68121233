package handlers

import (
	"strings"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateProduct(p ProductRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ProductValidationError{Field: "Name", Description: "Name is required"})
	}
	if strings.TrimSpace(p.Category) == "" {
		errs = append(errs, ProductValidationError{Field: "Category", Description: "Category is required"})
	}
	if strings.TrimSpace(p.ImageURL) == "" {
		errs = append(errs, ProductValidationError{Field: "ImageURL", Description: "Image URL is required"})
	}
	return errs
}

func validateContact(c ContactRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, ProductValidationError{Field: "Name", Description: "Name is required"})
	}
	if strings.TrimSpace(c.Email) == "" || !strings.Contains(c.Email, "@") {
		errs = append(errs, ProductValidationError{Field: "Email", Description: "A valid email is required"})
	}
	if strings.TrimSpace(c.Message) == "" {
		errs = append(errs, ProductValidationError{Field: "Message", Description: "Message is required"})
	}
	return errs
}
