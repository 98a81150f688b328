package jwtx

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// unverified decodes token payloads without checking signatures. Clients
// cannot verify tokens minted by the server; they only need the expiry.
var unverified = jwt.NewParser()

// ExpiresAt decodes the token payload and returns its exp claim.
func ExpiresAt(token string) (time.Time, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return time.Time{}, ErrMalformed
	}

	var claims jwt.RegisteredClaims
	if _, _, err := unverified.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, ErrMalformed
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, ErrMissingExpiry
	}

	return claims.ExpiresAt.Time, nil
}

// IsValid reports whether token is non-empty, decodes, carries an exp claim
// and that claim lies strictly after now. Any decode problem yields false.
func IsValid(token string, now time.Time) bool {
	exp, err := ExpiresAt(token)
	if err != nil {
		return false
	}
	return exp.After(now)
}
