package handler

import (
	"net/http"

	"github.com/mindsync/wellness/internal/ctxkeys"
	"github.com/mindsync/wellness/internal/render"
	"github.com/mindsync/wellness/internal/service"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	dashboard, err := h.dashboardService.Dashboard(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, render.Response{
		Success: true,
		Message: "Dashboard data fetched successfully",
		Data:    dashboard,
	})
}
