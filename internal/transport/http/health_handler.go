package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"misoreports/internal/infrastructure"
	"misoreports/internal/report"
)

// HealthHandler serves liveness and version probes.
type HealthHandler struct {
	started time.Time
}

// NewHealthHandler creates the health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{started: time.Now()}
}

// HealthCheck handles GET /api/health.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"status":  "healthy",
		"uptime":  time.Since(h.started).String(),
		"reports": len(report.Names()),
	})
}

// Version handles GET /api/version.
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"service": infrastructure.ServiceName,
		"version": infrastructure.ServiceVersion,
	})
}
