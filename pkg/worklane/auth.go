package worklane

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/worklane/pkg/credstore"
)

// SignIn exchanges a username and password for a token pair and stores both
// credentials. A rejected pair returns ErrInvalidCredentials.
func (c *Client) SignIn(ctx context.Context, username, password string) error {
	payload, err := encodeBody(signInRequest{Username: username, Password: password})
	if err != nil {
		return err
	}

	resp, err := c.send(ctx, http.MethodPost, c.url(PathToken), payload, nil, "")
	if err != nil {
		return err
	}

	var pair TokenPair
	if err := decodeJSON(resp, &pair); err != nil {
		if IsStatus(err, http.StatusUnauthorized) {
			return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		return err
	}
	if pair.Access == "" || pair.Refresh == "" {
		return errors.New("worklane: sign-in response is missing a token")
	}

	if err := c.storePair(ctx, pair); err != nil {
		_ = c.Store.ClearAll(ctx)
		return err
	}

	c.Logger.InfoContext(ctx, "signed in", "username", username)
	return nil
}

// Register creates an account. It does not sign in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	payload, err := encodeBody(req)
	if err != nil {
		return err
	}

	resp, err := c.send(ctx, http.MethodPost, c.url(PathRegister), payload, nil, "")
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil)
}

// Logout forgets both credentials.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.Store.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Refresh exchanges the stored refresh credential for a new access
// credential and stores it.
//
// Without a refresh credential it returns ErrNoRefreshToken and makes no
// network call. Every failed exchange clears both slots and returns an error
// wrapping ErrRefreshFailed. Concurrent callers share a single exchange.
//
// Cancelling ctx abandons the wait but not the shared exchange, whose outcome
// is still applied to the store.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	ch := c.refreshes.DoChan("refresh", func() (any, error) {
		return c.refresh(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (c *Client) refresh(ctx context.Context) (string, error) {
	refresh, ok := c.Store.Get(ctx, credstore.SlotRefresh)
	if !ok || refresh == "" {
		c.clearAfterFailure(ctx)
		return "", ErrNoRefreshToken
	}

	payload, err := encodeBody(refreshRequest{Refresh: refresh})
	if err != nil {
		return "", c.refreshFailed(ctx, err)
	}

	resp, err := c.send(ctx, http.MethodPost, c.url(PathRefresh), payload, nil, "")
	if err != nil {
		return "", c.refreshFailed(ctx, err)
	}

	var pair TokenPair
	if err := decodeJSON(resp, &pair); err != nil {
		return "", c.refreshFailed(ctx, err)
	}
	if pair.Access == "" {
		return "", c.refreshFailed(ctx, errors.New("response carried no access token"))
	}

	if err := c.storePair(ctx, pair); err != nil {
		return "", c.refreshFailed(ctx, err)
	}

	c.Logger.InfoContext(ctx, "access token refreshed", "rotated", pair.Refresh != "")
	return pair.Access, nil
}

// storePair writes the access credential and, when present, the refresh one.
func (c *Client) storePair(ctx context.Context, pair TokenPair) error {
	if err := c.Store.Set(ctx, credstore.SlotAccess, pair.Access); err != nil {
		return err
	}
	if pair.Refresh != "" {
		if err := c.Store.Set(ctx, credstore.SlotRefresh, pair.Refresh); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) refreshFailed(ctx context.Context, cause error) error {
	c.Logger.WarnContext(ctx, "token refresh failed", "err", cause)
	c.clearAfterFailure(ctx)
	return fmt.Errorf("%w: %w", ErrRefreshFailed, cause)
}

func (c *Client) clearAfterFailure(ctx context.Context) {
	if err := c.Store.ClearAll(ctx); err != nil {
		c.Logger.ErrorContext(ctx, "failed to clear credentials", "err", err)
	}
}
