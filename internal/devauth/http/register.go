package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/worklane/internal/devauth/service"
	"github.com/aussiebroadwan/worklane/pkg/httpx"
	"github.com/aussiebroadwan/worklane/pkg/slogx"
	"github.com/aussiebroadwan/worklane/pkg/worklane"
)

// RegisterHandler serves POST /api/auth/register/.
type RegisterHandler struct {
	UserService *service.UserService
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req worklane.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorBody{Detail: err.Error(), Code: "parse_error"})
		return
	}

	_, err := h.UserService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		var problems service.ValidationError
		if errors.As(err, &problems) {
			httpx.WriteJSON(w, http.StatusBadRequest, problems)
			return
		}
		slogx.FromContext(ctx).Error("registration failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, errServer)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, worklane.Message{Message: "User registered"})
}
