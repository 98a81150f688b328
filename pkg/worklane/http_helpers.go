package worklane

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/aussiebroadwan/worklane/pkg/idx"
	"github.com/aussiebroadwan/worklane/pkg/slogx"
)

// send performs one HTTP exchange. token is attached as a bearer credential
// when non-empty; payload is sent as a JSON body when non-nil, unless header
// already names a content type.
func (c *Client) send(
	ctx context.Context,
	method, target string,
	payload []byte,
	header http.Header,
	token string,
) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(slogx.RequestIDHeader, idx.New().String())
	if payload != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	return resp, nil
}

// requestBody returns the bytes to send for req and the headers to send them
// with. The body is materialised once so a retry replays the same bytes.
func requestBody(req *Request) ([]byte, http.Header, error) {
	if raw, ok := req.Body.(RawBody); ok {
		header := req.Header.Clone()
		if header == nil {
			header = http.Header{}
		}
		header.Set("Content-Type", raw.ContentType)
		return raw.Data, header, nil
	}

	payload, err := encodeBody(req.Body)
	return payload, req.Header, err
}

// encodeBody marshals v once so the same bytes can be replayed on retry.
func encodeBody(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	if raw, ok := v.(json.RawMessage); ok {
		return raw, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return b, nil
}

// decodeJSON consumes resp. A 2xx body is decoded into target (skipped when
// target is nil or the body is empty); anything else becomes an *APIError.
func decodeJSON(resp *http.Response, target any) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseErrorResponse(resp, bodyBytes)
	}

	if target == nil || len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// drain discards and closes a response that will not be returned to the caller.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
