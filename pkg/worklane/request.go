package worklane

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/worklane/pkg/credstore"
	"github.com/aussiebroadwan/worklane/pkg/jwtx"
)

// Do sends req with the stored access credential as a bearer token.
//
// A 401 answer triggers one refresh; when it succeeds the request is sent
// once more with the new token and that response is returned. When it fails
// the original 401 response is returned unchanged. A logical request is
// therefore dispatched at most twice and refreshes at most once. Any other
// response, including a second 401, is returned as-is.
//
// The caller must close the returned response body.
func (c *Client) Do(ctx context.Context, req *Request) (*http.Response, error) {
	payload, header, err := requestBody(req)
	if err != nil {
		return nil, err
	}

	target := c.url(req.Path)
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	refreshed := false
	token, _ := c.Store.Get(ctx, credstore.SlotAccess)

	if c.proactive && !jwtx.IsValid(token, c.now()) {
		refreshed = true
		fresh, err := c.Refresh(ctx)
		switch {
		case err == nil:
			token = fresh
		case ctx.Err() != nil:
			return nil, ctx.Err()
		default:
			// Store is now empty. Send without credentials and let the
			// backend answer.
			token = ""
		}
	}

	resp, err := c.send(ctx, req.Method, target, payload, header, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || refreshed {
		return resp, nil
	}

	fresh, err := c.Refresh(ctx)
	if err != nil {
		if ctx.Err() != nil {
			drain(resp)
			return nil, ctx.Err()
		}
		if !errors.Is(err, ErrNoRefreshToken) {
			c.Logger.DebugContext(ctx, "retry skipped, refresh failed", "path", req.Path, "err", err)
		}
		return resp, nil
	}

	drain(resp)
	return c.send(ctx, req.Method, target, payload, header, fresh)
}

// DoJSON sends in (when non-nil) as JSON and decodes a 2xx response into out
// (when non-nil). Non-2xx responses are returned as *APIError.
func (c *Client) DoJSON(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.Do(ctx, &Request{Method: method, Path: path, Body: in})
	if err != nil {
		return err
	}
	return decodeJSON(resp, out)
}
