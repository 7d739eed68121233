package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/giftline/catalog-site/internal/http/handlers"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()

	// Public catalog and auth endpoints.
	r.Post("/login", handlers.LoginHandler)
	r.Get("/session", handlers.SessionHandler)
	// Token-checked inside the handler, not session-checked: a poll must
	// survive the revocation it is waiting for.
	r.Get("/session/events", handlers.SessionEventsHandler)
	r.Get("/products", handlers.GetProductsHandler)
	r.Get("/products/facets", handlers.GetFacetsHandler)
	r.Get("/products/{id}", handlers.GetProductByIDHandler)
	r.With(RateLimitMiddleware).Post("/contact", handlers.CreateContactSubmissionHandler)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", handlers.UploadsHandler()))

	// Admin endpoints; mutations require a live session.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)
		r.Post("/logout", handlers.LogoutHandler)
		r.Post("/products", handlers.CreateProductHandler)
		r.Put("/products/{id}", handlers.UpdateProductHandler)
		r.Delete("/products/{id}", handlers.DeleteProductHandler)
		r.Post("/products/import", handlers.ImportProductsHandler)
		r.Post("/images", handlers.UploadImageHandler)
		r.Get("/contact", handlers.GetContactSubmissionsHandler)
	})

	return r
}
