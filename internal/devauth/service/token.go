package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/worklane/internal/devauth/domain"
	"github.com/aussiebroadwan/worklane/internal/devauth/store"
	"github.com/aussiebroadwan/worklane/pkg/jwtx"
	"github.com/aussiebroadwan/worklane/pkg/slogx"
)

type TokenService struct {
	Signer     *jwtx.HS256
	Users      *UserService
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// RotateRefresh issues a new refresh token on every refresh.
	RotateRefresh bool

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// IssueForPassword signs in with a username and password.
func (s *TokenService) IssueForPassword(ctx context.Context, username, password string) (domain.TokenPair, error) {
	user, err := s.Users.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			slogx.FromContext(ctx).Info("sign-in rejected", "username", username)
		}
		return domain.TokenPair{}, err
	}

	return s.issue(user.ID, true)
}

// Refresh validates a refresh token and issues a new access token, plus a
// new refresh token when rotation is enabled.
func (s *TokenService) Refresh(ctx context.Context, refresh string) (domain.TokenPair, error) {
	claims, err := s.Signer.Verify(refresh)
	if err != nil {
		slogx.FromContext(ctx).Info("refresh token rejected", "err", err)
		return domain.TokenPair{}, ErrInvalidRefresh
	}
	if err := claims.ValidateType(jwtx.TokenTypeRefresh); err != nil {
		return domain.TokenPair{}, ErrInvalidRefresh
	}

	if _, err := s.Users.GetUserByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrInvalidRefresh
		}
		return domain.TokenPair{}, err
	}

	return s.issue(claims.UserID, s.RotateRefresh)
}

func (s *TokenService) issue(userID int64, withRefresh bool) (domain.TokenPair, error) {
	now := s.now()

	access, err := s.Signer.Sign(jwtx.NewClaims(jwtx.TokenTypeAccess, userID, s.Issuer, s.AccessTTL, now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	pair := domain.TokenPair{Access: access, ExpiresIn: s.AccessTTL}
	if !withRefresh {
		return pair, nil
	}

	pair.Refresh, err = s.Signer.Sign(jwtx.NewClaims(jwtx.TokenTypeRefresh, userID, s.Issuer, s.RefreshTTL, now))
	if err != nil {
		return domain.TokenPair{}, err
	}
	return pair, nil
}
