package http

import (
	"net/http"

	"github.com/aussiebroadwan/worklane/pkg/httpx"
	"github.com/aussiebroadwan/worklane/pkg/slogx"
	"github.com/aussiebroadwan/worklane/pkg/worklane"
)

// DashboardHandler serves GET /api/dashboard/data/. The dev server keeps no
// employees, projects or posters, so every user sees an empty dashboard.
type DashboardHandler struct{}

func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserIDFromContext(ctx)
	slogx.FromContext(ctx).Debug("dashboard requested", "user_id", userID)

	httpx.WriteJSON(w, http.StatusOK, worklane.DashboardData{
		Projects:  []worklane.DashboardProject{},
		Deadlines: []worklane.DashboardDeadline{},
		Team:      []worklane.DashboardMember{},
		StatusStats: []worklane.StatusStat{
			{Label: "Ongoing"},
			{Label: "Completed"},
			{Label: "Pending"},
		},
	})
}
