package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/worklane/internal/devauth/service"
	"github.com/aussiebroadwan/worklane/internal/devauth/store"
	"github.com/aussiebroadwan/worklane/pkg/httpx"
	"github.com/aussiebroadwan/worklane/pkg/jwtx"
	"github.com/aussiebroadwan/worklane/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	// TokenLimit throttles the sign-in, refresh and register endpoints per
	// client IP. Defaults to httpx.StrictLimit.
	TokenLimit httpx.RateLimitConfig
	// APILimit throttles authenticated endpoints. Defaults to httpx.ModerateLimit.
	APILimit httpx.RateLimitConfig

	store        store.Store
	TokenService *service.TokenService
	UserService  *service.UserService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		TokenLimit:   httpx.StrictLimit,
		APILimit:     httpx.ModerateLimit,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerDashboard()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	tokenHandler := &TokenHandler{TokenService: r.TokenService}
	refreshHandler := &RefreshHandler{TokenService: r.TokenService}
	registerHandler := &RegisterHandler{UserService: r.UserService}

	// One limiter shared by all three: they are the brute-force surface.
	limit := httpx.RateLimitByIP(r.TokenLimit)

	r.Mux.Handle("POST /api/token/", httpx.Chain(tokenHandler, limit))
	r.Mux.Handle("POST /api/token/refresh/", httpx.Chain(refreshHandler, limit))
	r.Mux.Handle("POST /api/auth/register/", httpx.Chain(registerHandler, limit))
}

func (r *Router) registerDashboard() {
	h := &DashboardHandler{}

	r.Mux.Handle("GET /api/dashboard/data/", httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByIP(r.APILimit),
	))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
