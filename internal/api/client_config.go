package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// ClientConfigHandler tells the browser client where to poll and how often.
type ClientConfigHandler struct {
	apiBase      string
	pollInterval time.Duration
}

// NewClientConfigHandler creates a handler for GET /api/config.
func NewClientConfigHandler(apiBase string, pollInterval time.Duration) *ClientConfigHandler {
	return &ClientConfigHandler{apiBase: apiBase, pollInterval: pollInterval}
}

// GetConfig returns the client configuration.
func (h *ClientConfigHandler) GetConfig(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"api_base":         h.apiBase,
		"poll_interval_ms": h.pollInterval.Milliseconds(),
	})
}

// RegisterRoutes registers the client config route.
func (h *ClientConfigHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/config", h.GetConfig)
}
