package worklane

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrNoRefreshToken means the store holds no refresh credential. No
	// network call was made.
	ErrNoRefreshToken = errors.New("worklane: no refresh token")

	// ErrRefreshFailed wraps every other refresh outcome that did not yield a
	// new access token. The store has been cleared when this is returned.
	ErrRefreshFailed = errors.New("worklane: token refresh failed")

	// ErrInvalidCredentials is returned by SignIn when the backend rejects
	// the username/password pair.
	ErrInvalidCredentials = errors.New("worklane: invalid credentials")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int

	// Detail and Code come from the backend's {"detail", "code"} error body.
	Detail string
	Code   string

	// Fields holds per-field validation messages from a 400 response.
	Fields map[string][]string

	// Body is the raw response body.
	Body []byte
}

func (e *APIError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("worklane: HTTP %d: %s", e.StatusCode, e.Detail)
	case len(e.Fields) > 0:
		return fmt.Sprintf("worklane: HTTP %d: %s", e.StatusCode, e.fieldSummary())
	default:
		return fmt.Sprintf("worklane: HTTP %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
}

func (e *APIError) fieldSummary() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e.Fields[name], " "))
	}
	return strings.Join(parts, "; ")
}

// IsStatus reports whether err is an *APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// parseErrorResponse turns a non-2xx response body into an *APIError. It
// understands {"detail","code"} bodies, validation bodies of the form
// {"field": ["msg", ...]} and {"message": "..."} bodies.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Body: body}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return apiErr
	}

	for key, value := range raw {
		var s string
		var list []string
		switch {
		case key == "detail" && json.Unmarshal(value, &s) == nil:
			apiErr.Detail = s
		case key == "code" && json.Unmarshal(value, &s) == nil:
			apiErr.Code = s
		case key == "message" && json.Unmarshal(value, &s) == nil:
			if apiErr.Detail == "" {
				apiErr.Detail = s
			}
		case json.Unmarshal(value, &list) == nil:
			if apiErr.Fields == nil {
				apiErr.Fields = make(map[string][]string)
			}
			apiErr.Fields[key] = list
		}
	}

	return apiErr
}
