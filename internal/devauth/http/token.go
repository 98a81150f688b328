package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/worklane/internal/devauth/service"
	"github.com/aussiebroadwan/worklane/pkg/httpx"
	"github.com/aussiebroadwan/worklane/pkg/slogx"
	"github.com/aussiebroadwan/worklane/pkg/worklane"
)

var (
	errNoActiveAccount = httpx.ErrorBody{Detail: "No active account found with the given credentials"}
	errTokenNotValid   = httpx.ErrorBody{Detail: "Token is invalid or expired", Code: "token_not_valid"}
	errServer          = httpx.ErrorBody{Detail: "A server error occurred."}
)

// TokenHandler serves POST /api/token/.
type TokenHandler struct {
	TokenService *service.TokenService
}

func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorBody{Detail: err.Error(), Code: "parse_error"})
		return
	}

	problems := service.ValidationError{}
	if req.Username == "" {
		problems.Add("username", "This field is required.")
	}
	if req.Password == "" {
		problems.Add("password", "This field is required.")
	}
	if len(problems) > 0 {
		httpx.WriteJSON(w, http.StatusBadRequest, problems)
		return
	}

	pair, err := h.TokenService.IssueForPassword(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteJSON(w, http.StatusUnauthorized, errNoActiveAccount)
			return
		}
		slogx.FromContext(ctx).Error("sign-in failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, errServer)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, worklane.TokenPair{
		Access:  pair.Access,
		Refresh: pair.Refresh,
	})
}

// RefreshHandler serves POST /api/token/refresh/.
type RefreshHandler struct {
	TokenService *service.TokenService
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorBody{Detail: err.Error(), Code: "parse_error"})
		return
	}
	if req.Refresh == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, service.ValidationError{"refresh": {"This field is required."}})
		return
	}

	pair, err := h.TokenService.Refresh(ctx, req.Refresh)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefresh) {
			httpx.WriteJSON(w, http.StatusUnauthorized, errTokenNotValid)
			return
		}
		slogx.FromContext(ctx).Error("refresh failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, errServer)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, worklane.TokenPair{
		Access:  pair.Access,
		Refresh: pair.Refresh,
	})
}
