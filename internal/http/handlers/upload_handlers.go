package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/giftline/catalog-site/internal/storage"
)

const maxImageSize = 2 << 20 // 2 MB

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadImageHandler godoc
// @Summary Upload a product image
// @Description Stores the file under {category}/{subcategory-or-"uncategorized"}/{random}.{ext} and returns its public URL
// @Tags images
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file (jpeg/png/webp/gif, max 2 MB)"
// @Param category formData string true "Product category"
// @Param subcategory formData string false "Product subcategory"
// @Success 201 {object} UploadResult
// @Failure 400 {string} string "Rejected file"
// @Failure 500 {string} string "Internal error"
// @Router /images [post]
func UploadImageHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		http.Error(w, "file too large", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "missing image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		http.Error(w, "file too large", http.StatusBadRequest)
		return
	}

	ext, ok := allowedContentTypes[header.Header.Get("Content-Type")]
	if !ok {
		http.Error(w, "unsupported image type", http.StatusBadRequest)
		return
	}

	category := r.FormValue("category")
	if strings.TrimSpace(category) == "" {
		http.Error(w, "category is required", http.StatusBadRequest)
		return
	}
	subcategory := r.FormValue("subcategory")
	if strings.TrimSpace(subcategory) == "" {
		subcategory = "uncategorized"
	}

	name, err := randomName()
	if err != nil {
		http.Error(w, "could not name file", http.StatusInternalServerError)
		return
	}
	key := pathSegment(category) + "/" + pathSegment(subcategory) + "/" + name + ext

	url, err := imageStore.Save(r.Context(), key, file)
	if err != nil {
		if errors.Is(err, storage.ErrKeyExists) {
			http.Error(w, "file name collision, retry upload", http.StatusConflict)
			return
		}
		http.Error(w, "could not store image", http.StatusInternalServerError)
		return
	}

	if err := writeJSON(w, http.StatusCreated, UploadResult{URL: url}); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func randomName() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// pathSegment flattens a user-facing name into a safe storage path segment.
func pathSegment(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, "..", "-")
	if s == "" {
		s = "uncategorized"
	}
	return s
}
