package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/giftline/catalog-site/internal/auth"
	api "github.com/giftline/catalog-site/internal/http"
	handler "github.com/giftline/catalog-site/internal/http/handlers"
)

func login(r http.Handler, username, password string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(handler.UserLogin{Username: username, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionWith(r http.Handler, bearer string) handler.SessionResult {
	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var result handler.SessionResult
	json.NewDecoder(w.Body).Decode(&result)
	return result
}

func TestLoginHandler_Valid(t *testing.T) {
	r := api.NewRouter()

	w := login(r, "admin", "secret")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	r := api.NewRouter()

	if w := login(r, "admin", "wrong"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", w.Code)
	}
	if w := login(r, "nobody", "secret"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized for an unknown user, got %d", w.Code)
	}
}

func TestSessionHandler(t *testing.T) {
	r := api.NewRouter()

	// Anonymous callers get 200 with authenticated=false, never an error.
	result := sessionWith(r, "")
	if result.Authenticated {
		t.Error("expected authenticated=false without a token")
	}

	result = sessionWith(r, token)
	if !result.Authenticated {
		t.Fatal("expected authenticated=true with a live session")
	}
	if result.Username != "admin" {
		t.Errorf("expected username 'admin', got %q", result.Username)
	}

	result = sessionWith(r, "not-a-token")
	if result.Authenticated {
		t.Error("expected authenticated=false for a garbage token")
	}
}

func TestLogoutHandler_RevokesSession(t *testing.T) {
	r := api.NewRouter()

	// A fresh login so revoking it does not disturb the shared token.
	ownToken, err := generateToken(r, "admin", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+ownToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}

	// The token itself is still unexpired, but its session is gone: the
	// session check flips to unauthenticated and admin calls are rejected.
	if result := sessionWith(r, ownToken); result.Authenticated {
		t.Error("expected authenticated=false after logout")
	}

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+ownToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized once the session is revoked, got %d", w.Code)
	}
}

func TestSessionEventsHandler_ReportsRevocation(t *testing.T) {
	r := api.NewRouter()

	// A fresh session; the revocation comes from outside the polling request,
	// as it would when a second admin session signs this one out.
	ownToken, err := generateToken(r, "admin", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	_, claims, err := auth.TokenClaims("Bearer " + ownToken)
	if err != nil {
		t.Fatalf("parsing token: %v", err)
	}
	sid := auth.SessionIDFromClaims(claims)

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		req := httptest.NewRequest(http.MethodGet, "/session/events", nil)
		req.Header.Set("Authorization", "Bearer "+ownToken)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		done <- w
	}()

	// The poll may not have subscribed yet; keep revoking until it reports.
	deadline := time.After(3 * time.Second)
	for {
		select {
		case w := <-done:
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", w.Code)
			}
			var ev handler.SessionEventResult
			if err := json.NewDecoder(w.Body).Decode(&ev); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			if ev.Kind != "revoked" {
				t.Errorf("expected a revoked event, got %q", ev.Kind)
			}
			return
		case <-deadline:
			t.Fatal("poll never reported the revocation")
		case <-time.After(20 * time.Millisecond):
			sessionStore.Revoke(context.Background(), sid)
		}
	}
}

func TestSessionEventsHandler_MissingToken(t *testing.T) {
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/session/events", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", w.Code)
	}
}

func TestLogoutHandler_MissingToken(t *testing.T) {
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", w.Code)
	}
}
