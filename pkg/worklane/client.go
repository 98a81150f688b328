package worklane

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/worklane/pkg/credstore"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds a single HTTP exchange when no custom HTTP client is
// supplied.
const DefaultTimeout = 10 * time.Second

// Client talks to the Worklane REST backend on behalf of one signed-in user.
// Credentials live in Store, so several Clients (or processes) sharing a
// durable store share the session.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Store      credstore.Store
	Logger     *slog.Logger

	// proactive makes Do refresh before dispatch when the stored access token
	// is missing or already expired.
	proactive bool
	limiter   *rate.Limiter
	now       func() time.Time

	refreshes singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithLogger sets the logger used for refresh outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.Logger = l }
}

// WithProactiveRefresh refreshes before sending a request whose stored
// access token is absent or expired, instead of waiting for the 401.
func WithProactiveRefresh() Option {
	return func(c *Client) { c.proactive = true }
}

// WithRateLimit throttles outgoing requests to r per second with the given burst.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(r, burst) }
}

// WithClock overrides the time source used for token validity checks.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New creates a client for the backend at baseURL backed by store.
func New(baseURL string, store credstore.Store, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		Store:  store,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string) string {
	return c.BaseURL + path
}
