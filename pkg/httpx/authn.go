package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/worklane/pkg/jwtx"
	"github.com/aussiebroadwan/worklane/pkg/slogx"
)

// AuthnMiddleware requires a valid access token in the Authorization header.
// Failures are answered with 401 in the backend's error format, which is what
// makes clients run their refresh-and-retry step.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "Authentication credentials were not provided.", "not_authenticated")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				writeBearerError(w, "Given token not valid for any token type", "token_not_valid")
				return
			}

			if err := claims.ValidateType(jwtx.TokenTypeAccess); err != nil {
				writeBearerError(w, "Given token not valid for any token type", "token_not_valid")
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithAuth(ctx, claims)))
		})
	}
}

func writeBearerError(w http.ResponseWriter, detail, code string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	WriteJSON(w, http.StatusUnauthorized, ErrorBody{Detail: detail, Code: code})
}
