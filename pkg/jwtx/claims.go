package jwtx

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token lifetimes used by the dev auth server. They follow the defaults of
// the Worklane backend: short access tokens, day-long refresh tokens.
const (
	DefaultAccessTokenTTL  = 5 * time.Minute
	DefaultRefreshTokenTTL = 24 * time.Hour
)

// Values of the token_type claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims is the payload carried by Worklane access and refresh tokens.
type Claims struct {
	jwt.RegisteredClaims

	// TokenType is "access" or "refresh". A refresh token is never accepted
	// as a bearer credential and vice versa.
	TokenType string `json:"token_type"`

	// UserID is the numeric id of the authenticated user.
	UserID int64 `json:"user_id"`
}

// NewClaims builds claims of the given type expiring ttl after now.
func NewClaims(tokenType string, userID int64, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		TokenType: tokenType,
		UserID:    userID,
	}
}

// NewJTI returns a random hex identifier for the "jti" claim.
func NewJTI() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateType ensures the token is of the expected kind.
func (c *Claims) ValidateType(expected string) error {
	if c.TokenType != expected {
		return ErrTokenType
	}
	return nil
}

// ValidateExpiryAt ensures the token has an exp claim that is still in the
// future at now.
func (c *Claims) ValidateExpiryAt(now time.Time) error {
	if c.ExpiresAt == nil {
		return ErrMissingExpiry
	}
	if !c.ExpiresAt.After(now) {
		return ErrExpired
	}
	return nil
}
