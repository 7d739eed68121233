package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/giftline/catalog-site/internal/auth"
	api "github.com/giftline/catalog-site/internal/http"
	handler "github.com/giftline/catalog-site/internal/http/handlers"
	"github.com/giftline/catalog-site/internal/models"
	"github.com/giftline/catalog-site/internal/repo"
	"github.com/giftline/catalog-site/internal/storage"
)

var (
	token        string
	productRepo  *repo.InMemoryProductRepository
	contactRepo  *repo.InMemoryContactRepository
	sessionStore *auth.InMemorySessionStore
)

func init() {
	auth.SetSecret("test-secret")
	setupTestRepos("secret")
	r := api.NewRouter()

	var err error
	token, err = generateToken(r, "admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos(password string) {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	contactRepo = repo.NewInMemoryContactRepository()
	handler.SetContactRepo(contactRepo)

	userRepo := repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userRepo.CreateUser(models.User{
		Username:     "admin",
		PasswordHash: string(hash),
	})

	sessionStore = auth.NewInMemorySessionStore()
	handler.SetSessionStore(sessionStore)
	api.SetSessionChecker(sessionStore)

	dir, err := os.MkdirTemp("", "uploads")
	if err != nil {
		panic(fmt.Sprintf("error creating uploads dir: %v", err))
	}
	handler.SetImageStore(storage.NewLocalStorage(dir, "/uploads"), dir)
}

func clearAllProducts() {
	productRepo.Clear()
}

func generateToken(r http.Handler, username, password string) (string, error) {
	payload := handler.UserLogin{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(p)
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedCatalog(r http.Handler, category string, n int) {
	for i := 1; i <= n; i++ {
		w := createProduct(r, handler.ProductRequest{
			Name:     fmt.Sprintf("%s %d", category, i),
			Category: category,
			ImageURL: "/uploads/test.jpg",
		})
		if w.Code != http.StatusCreated {
			panic(fmt.Sprintf("seeding product %d: status %d", i, w.Code))
		}
	}
}

func strPtr(s string) *string { return &s }

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))
	writer.Close()
	return body, writer.FormDataContentType()
}

func multipartImage(field, filename, contentType string, data []byte, form map[string]string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	h.Set("Content-Type", contentType)
	part, _ := writer.CreatePart(h)
	part.Write(data)

	for k, v := range form {
		writer.WriteField(k, v)
	}
	writer.Close()
	return body, writer.FormDataContentType()
}
