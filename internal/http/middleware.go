package http

import (
	"net"
	"net/http"

	"github.com/giftline/catalog-site/internal/auth"
	rl "github.com/giftline/catalog-site/internal/http/rate_limiter"
)

var sessionChecker auth.SessionChecker

// SetSessionChecker wires the session store the auth middleware validates
// tokens against. Must be called before the router serves traffic.
func SetSessionChecker(sc auth.SessionChecker) {
	sessionChecker = sc
}

// AuthMiddleware guards the admin mutation endpoints. A token is only
// accepted while its server-side session is still alive, so sign-out takes
// effect before the token expires.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := auth.TokenClaims(r.Header.Get("Authorization"))
		if err != nil {
			http.Error(w, "missing or invalid token", http.StatusUnauthorized)
			return
		}

		sid := auth.SessionIDFromClaims(claims)
		if sessionChecker != nil {
			alive, err := sessionChecker.Exists(r.Context(), sid)
			if err != nil || !alive {
				http.Error(w, "session expired", http.StatusUnauthorized)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// RateLimitMiddleware applies the per-IP visitor limiter. Used on the public
// contact endpoint only.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !rl.GetVisitor(ip).Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
