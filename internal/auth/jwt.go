package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/giftline/catalog-site/internal/models"
)

var jwtSecret = []byte("dev-secret")

// SetSecret overrides the signing secret. Called once from main with the
// configured value.
func SetSecret(secret string) {
	jwtSecret = []byte(secret)
}

// GenerateToken issues a short-lived token bound to a server-side session.
// The session id lets a sign-out invalidate the token before it expires.
func GenerateToken(user models.User, sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"sid":      sessionID,
		"exp":      time.Now().Add(15 * time.Minute).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ParseToken(tokenStr string) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return jwtSecret, nil
	})
}

// TokenClaims extracts the claims from an Authorization header value.
func TokenClaims(authorization string) (*jwt.Token, jwt.MapClaims, error) {
	if !strings.HasPrefix(authorization, "Bearer ") {
		return nil, nil, errors.New("missing or invalid token")
	}

	token, err := ParseToken(strings.TrimPrefix(authorization, "Bearer "))
	if err != nil || !token.Valid {
		return nil, nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil, errors.New("invalid claims")
	}
	return token, claims, nil
}

// SessionIDFromClaims returns the "sid" claim, or "" if absent.
func SessionIDFromClaims(claims jwt.MapClaims) string {
	if sid, ok := claims["sid"].(string); ok {
		return sid
	}
	return ""
}
