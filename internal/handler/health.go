package handler

import (
	"fmt"
	"net/http"

	"github.com/mindsync/wellness/internal/render"
)

type HealthHandler struct {
	appName string
}

func NewHealthHandler(appName string) *HealthHandler {
	return &HealthHandler{appName: appName}
}

// Root is the liveness probe.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = fmt.Fprintf(w, "%s API is running\n", h.appName)
}

func (h *HealthHandler) Users(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, http.StatusOK, render.Response{
		Success: true,
		Message: "User routes are working fine!",
	})
}

func (h *HealthHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	render.Error(w, http.StatusNotFound, "Route not found")
}
