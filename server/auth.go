package server

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SignToken mints an HS256 test token for the given subject, valid for
// ttl. Pair it with BearerAuth to exercise authenticated endpoints.
func SignToken(secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
