package agent

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ashureev/agent-dashboard/internal/api"
	"github.com/ashureev/agent-dashboard/internal/domain"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Handler serves status snapshots over HTTP.
type Handler struct {
	svc     *Service
	timeout time.Duration
}

// NewHandler creates a new status handler.
func NewHandler(svc *Service, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Handler{svc: svc, timeout: timeout}
}

// RegisterRoutes registers the status routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/agents-status", h.GetStatus)
	r.Get("/api/agents", h.GetStatus)
}

// GetStatus returns a freshly computed snapshot, or the failure envelope
// when the gateway configuration or agents root cannot be read.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	snap, err := h.svc.Snapshot(ctx)
	if err != nil {
		slog.Error("Failed to build agent status",
			"error", err,
			"request_id", chiMiddleware.GetReqID(r.Context()))
		api.JSON(w, http.StatusInternalServerError, domain.FailureResponse{OK: false, Error: err.Error()})
		return
	}

	slog.Debug("Agent status served",
		"agents", snap.Stats.TotalAgents,
		"busy", snap.Stats.BusyAgents,
		"active", snap.Stats.ActiveAgents)
	api.JSON(w, http.StatusOK, snap)
}
