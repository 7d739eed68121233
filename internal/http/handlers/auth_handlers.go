package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/giftline/catalog-site/internal/auth"
	"golang.org/x/crypto/bcrypt"
)

// sessionPollTimeout bounds one long-poll cycle on /session/events. Clients
// reconnect after an empty 204 response.
const sessionPollTimeout = 25 * time.Second

// LoginHandler godoc
// @Summary Authenticate the admin and return a JWT bound to a server session
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body UserLogin true "username and password"
// @Success 200 {object} LoginResult
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Router /login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials UserLogin
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	user, err := userRepo.GetByUsername(credentials.Username)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)) != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	sessionID, err := newSessionID()
	if err != nil {
		http.Error(w, "could not create session", http.StatusInternalServerError)
		return
	}
	if err := sessions.Create(r.Context(), sessionID, user.Username); err != nil {
		http.Error(w, "could not create session", http.StatusInternalServerError)
		return
	}

	token, err := auth.GenerateToken(user, sessionID)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(LoginResult{Token: token}); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// LogoutHandler godoc
// @Summary Revoke the current session
// @Tags auth
// @Security BearerAuth
// @Success 204 "Signed out"
// @Failure 401 {string} string "Unauthorized"
// @Router /logout [post]
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	_, claims, err := auth.TokenClaims(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	sid := auth.SessionIDFromClaims(claims)
	if sid != "" {
		if err := sessions.Revoke(r.Context(), sid); err != nil {
			http.Error(w, "could not revoke session", http.StatusInternalServerError)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// SessionHandler godoc
// @Summary Report whether the caller holds a live session
// @Description Always 200; the body says authenticated or not. The auth guard
// treats any failure as unauthenticated.
// @Tags auth
// @Produce json
// @Success 200 {object} SessionResult
// @Router /session [get]
func SessionHandler(w http.ResponseWriter, r *http.Request) {
	result := SessionResult{}

	_, claims, err := auth.TokenClaims(r.Header.Get("Authorization"))
	if err == nil {
		sid := auth.SessionIDFromClaims(claims)
		alive, checkErr := sessions.Exists(r.Context(), sid)
		if checkErr == nil && alive {
			result.Authenticated = true
			if username, ok := claims["username"].(string); ok {
				result.Username = username
			}
		}
	}

	if err := writeJSON(w, http.StatusOK, result); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// SessionEventsHandler godoc
// @Summary Long-poll for revocation of the caller's session
// @Description Blocks until the session named by the token is revoked or the
// poll window ends. 200 carries the event; 204 means nothing happened, poll
// again. Only the token is checked, not session liveness, so a client can
// keep polling across the revocation boundary and still receive the event.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionEventResult
// @Success 204 "No event in this window"
// @Failure 401 {string} string "Unauthorized"
// @Router /session/events [get]
func SessionEventsHandler(w http.ResponseWriter, r *http.Request) {
	_, claims, err := auth.TokenClaims(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}
	sid := auth.SessionIDFromClaims(claims)

	watcher, ok := sessions.(auth.SessionWatcher)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), sessionPollTimeout)
	defer cancel()

	events := watcher.Watch(ctx)
	for {
		select {
		case <-ctx.Done():
			w.WriteHeader(http.StatusNoContent)
			return
		case ev, open := <-events:
			if !open {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			if ev.SessionID != sid {
				continue
			}
			if err := writeJSON(w, http.StatusOK, SessionEventResult{Kind: ev.Kind}); err != nil {
				log.Printf("failed to write JSON response: %v", err)
			}
			return
		}
	}
}

func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
