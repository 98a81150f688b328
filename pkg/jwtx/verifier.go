package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed     = errors.New("jwtx: malformed token")
	ErrInvalidSig    = errors.New("jwtx: invalid signature")
	ErrIssuer        = errors.New("jwtx: issuer mismatch")
	ErrExpired       = errors.New("jwtx: token expired")
	ErrMissingExpiry = errors.New("jwtx: token has no exp claim")
	ErrTokenType     = errors.New("jwtx: unexpected token type")
)

// HS256 signs and verifies tokens with a shared secret, the scheme the
// Worklane backend uses for both access and refresh tokens.
type HS256 struct {
	key    []byte
	issuer string
	now    func() time.Time
}

// NewHS256 returns an HS256 signer/verifier. An empty issuer disables the
// issuer check.
func NewHS256(key []byte, issuer string) *HS256 {
	return &HS256{key: key, issuer: issuer, now: time.Now}
}

// WithClock overrides the time source used during verification.
func (h *HS256) WithClock(now func() time.Time) *HS256 {
	h.now = now
	return h
}

// Sign serialises claims into a compact JWS.
func (h *HS256) Sign(c Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(h.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, issuer and expiry, returning the decoded claims.
func (h *HS256) Verify(token string) (Claims, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return h.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(h.now),
		jwt.WithExpirationRequired(),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return Claims{}, ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return Claims{}, ErrMissingExpiry
	default:
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if err := claims.ValidateIssuer(h.issuer); err != nil {
		return Claims{}, err
	}

	return claims, nil
}
