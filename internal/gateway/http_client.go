package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/giftline/catalog-site/internal/models"
)

// HTTPClient is the Client implementation that talks to the backend REST API.
// It holds the bearer token obtained by SignIn; the API key identifies the
// deployment and is sent on every request.
type HTTPClient struct {
	baseURL string
	apiKey  string
	hc      *http.Client
	// poll has no client-side timeout; long-poll requests are bounded by the
	// server's window and the caller's context.
	poll *http.Client

	mu        sync.Mutex
	token     string
	listeners []chan struct{}
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		hc:      &http.Client{Timeout: 15 * time.Second},
		poll:    &http.Client{},
	}
}

func (c *HTTPClient) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) bearer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// SessionEvents returns a channel that fires whenever the auth state changes:
// after this client's own SignIn and SignOut, and for server-side revocations
// relayed by WatchSession. The dashboard guard re-checks the session on every
// event. Events are dropped, never queued, when the listener is not ready.
func (c *HTTPClient) SessionEvents() <-chan struct{} {
	ch := make(chan struct{}, 1)
	c.mu.Lock()
	c.listeners = append(c.listeners, ch)
	c.mu.Unlock()
	return ch
}

func (c *HTTPClient) notifySessionChange() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range c.listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// WatchSession long-polls the backend for revocation of the current session
// and fans each event into the SessionEvents listeners, so a session revoked
// from another admin session reaches the guard of this one. It blocks until
// ctx ends or the poll fails; run it in its own goroutine next to the guard's
// Watch loop.
func (c *HTTPClient) WatchSession(ctx context.Context) error {
	for {
		req, err := c.newRequest(ctx, http.MethodGet, "/session/events", nil)
		if err != nil {
			return err
		}
		resp, err := c.poll.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return &NetworkError{Op: "watch session", Err: err}
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
			c.notifySessionChange()
		case http.StatusNoContent:
			// Idle window; poll again.
		case http.StatusUnauthorized, http.StatusForbidden:
			c.notifySessionChange()
			return &AuthError{Message: "no usable session"}
		default:
			return fmt.Errorf("gateway: watch session: unexpected status %d", resp.StatusCode)
		}
	}
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *HTTPClient) do(op string, req *http.Request) (*http.Response, error) {
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	return resp, nil
}

// statusErr maps a non-2xx response onto the gateway error taxonomy.
func statusErr(resp *http.Response, writeOp bool) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	msg := string(bytes.TrimSpace(body))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{Message: "no usable session"}
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusConflict:
		if writeOp {
			return &WriteError{Message: msg}
		}
	}
	return fmt.Errorf("gateway: unexpected status %d: %s", resp.StatusCode, msg)
}

type productsPage struct {
	Data []models.Product `json:"data"`
	Meta struct {
		TotalCount int `json:"total_count"`
	} `json:"meta"`
}

func (c *HTTPClient) QueryProducts(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	params := url.Values{}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Subcategory != "" {
		params.Set("subcategory", q.Subcategory)
	}
	if q.Offset > 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	path := "/products"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do("query products", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusErr(resp, false)
	}

	var page productsPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("gateway: decode products: %w", err)
	}
	return page.Data, nil
}

func (c *HTTPClient) FacetFields(ctx context.Context) ([]models.FacetField, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/products/facets", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do("fetch facets", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusErr(resp, false)
	}

	var fields []models.FacetField
	if err := json.NewDecoder(resp.Body).Decode(&fields); err != nil {
		return nil, fmt.Errorf("gateway: decode facets: %w", err)
	}
	return fields, nil
}

func (c *HTTPClient) InsertProduct(ctx context.Context, data ProductData) (models.Product, error) {
	return c.writeProduct(ctx, http.MethodPost, "/products", "insert product", data, http.StatusCreated)
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, id int, data ProductData) (models.Product, error) {
	return c.writeProduct(ctx, http.MethodPut, "/products/"+strconv.Itoa(id), "update product", data, http.StatusOK)
}

func (c *HTTPClient) writeProduct(ctx context.Context, method, path, op string, data ProductData, wantStatus int) (models.Product, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return models.Product{}, err
	}

	req, err := c.newRequest(ctx, method, path, bytes.NewReader(body))
	if err != nil {
		return models.Product{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(op, req)
	if err != nil {
		return models.Product{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return models.Product{}, statusErr(resp, true)
	}

	var p models.Product
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return models.Product{}, fmt.Errorf("gateway: decode product: %w", err)
	}
	return p, nil
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, id int) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/products/"+strconv.Itoa(id), nil)
	if err != nil {
		return err
	}
	resp, err := c.do("delete product", req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return statusErr(resp, true)
	}
	return nil
}

func (c *HTTPClient) UploadImage(ctx context.Context, up ImageUpload) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, up.Filename))
	header.Set("Content-Type", up.ContentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(up.Data); err != nil {
		return "", err
	}
	writer.WriteField("category", up.Category)
	writer.WriteField("subcategory", up.Subcategory)
	writer.Close()

	req, err := c.newRequest(ctx, http.MethodPost, "/images", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.do("upload image", req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		err := statusErr(resp, false)
		var authErr *AuthError
		if errors.As(err, &authErr) {
			return "", err
		}
		return "", &StorageError{Message: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("gateway: decode upload result: %w", err)
	}
	return result.URL, nil
}

func (c *HTTPClient) SubmitContact(ctx context.Context, data ContactData) error {
	body, err := json.Marshal(data)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/contact", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do("submit contact", req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return statusErr(resp, true)
	}
	return nil
}

func (c *HTTPClient) QueryContacts(ctx context.Context) ([]models.ContactSubmission, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/contact", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do("query contacts", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusErr(resp, false)
	}

	var submissions []models.ContactSubmission
	if err := json.NewDecoder(resp.Body).Decode(&submissions); err != nil {
		return nil, fmt.Errorf("gateway: decode contacts: %w", err)
	}
	return submissions, nil
}

func (c *HTTPClient) Session(ctx context.Context) (Session, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/session", nil)
	if err != nil {
		return Session{}, err
	}
	resp, err := c.do("check session", req)
	if err != nil {
		return Session{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Session{}, statusErr(resp, false)
	}

	var result struct {
		Authenticated bool   `json:"authenticated"`
		Username      string `json:"username"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Session{}, fmt.Errorf("gateway: decode session: %w", err)
	}
	return Session{Authenticated: result.Authenticated, Username: result.Username}, nil
}

func (c *HTTPClient) SignIn(ctx context.Context, username, password string) error {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/login", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do("sign in", req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &AuthError{Message: "invalid credentials"}
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("gateway: decode login result: %w", err)
	}
	c.setToken(result.Token)
	c.notifySessionChange()
	return nil
}

func (c *HTTPClient) SignOut(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/logout", nil)
	if err != nil {
		return err
	}
	resp, err := c.do("sign out", req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.setToken("")
	c.notifySessionChange()
	if resp.StatusCode != http.StatusNoContent {
		return statusErr(resp, false)
	}
	return nil
}
