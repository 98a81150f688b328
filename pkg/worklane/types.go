package worklane

import (
	"net/http"
	"net/url"
)

// Auth endpoints of the backend.
const (
	PathToken    = "/api/token/"
	PathRefresh  = "/api/token/refresh/"
	PathRegister = "/api/auth/register/"
)

// TokenPair is the body returned by the sign-in endpoint. The refresh
// endpoint returns the same shape, usually with Refresh empty.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// RegisterRequest creates a new backend account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// Message is the {"message": "..."} acknowledgement some endpoints return.
type Message struct {
	Message string `json:"message"`
}

// Request describes one logical call through the authenticated client.
type Request struct {
	Method string
	Path   string
	Query  url.Values

	// Body is JSON-encoded when non-nil. A json.RawMessage is sent verbatim,
	// as is a RawBody with its own content type.
	Body any

	Header http.Header
}

// RawBody is a pre-encoded, non-JSON request body such as multipart form data.
type RawBody struct {
	ContentType string
	Data        []byte
}
