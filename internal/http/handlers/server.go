package handlers

import (
	"net/http"

	"github.com/giftline/catalog-site/internal/auth"
	repo "github.com/giftline/catalog-site/internal/repo"
	"github.com/giftline/catalog-site/internal/storage"
)

var (
	productRepo repo.ProductRepository
	contactRepo repo.ContactRepository
	userRepo    repo.UserRepository

	imageStore storage.Storage
	uploadsDir string

	sessions auth.SessionChecker
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetContactRepo(r repo.ContactRepository) {
	contactRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

// SetImageStore wires the object store uploads go to, plus the local
// directory served at /uploads.
func SetImageStore(s storage.Storage, dir string) {
	imageStore = s
	uploadsDir = dir
}

func SetSessionStore(s auth.SessionChecker) {
	sessions = s
}

// UploadsHandler serves stored images as static files.
func UploadsHandler() http.Handler {
	return http.FileServer(http.Dir(uploadsDir))
}
