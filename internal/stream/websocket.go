// Package stream pushes status snapshots to websocket subscribers.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/ashureev/agent-dashboard/internal/domain"
	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
)

// Snapshotter builds a status snapshot.
type Snapshotter interface {
	Snapshot(ctx context.Context) (*domain.Snapshot, error)
}

// Handler serves GET /ws/agents-status. Each subscriber gets a snapshot on
// connect and then one per interval. The feed is one-way: a subscriber that
// sends a data message is disconnected.
type Handler struct {
	svc            Snapshotter
	interval       time.Duration
	timeout        time.Duration
	originPatterns []string

	ctx         context.Context
	cancel      context.CancelFunc
	subscribers atomic.Int64
}

// NewHandler creates a new live feed handler.
func NewHandler(svc Snapshotter, interval, timeout time.Duration, originPatterns []string) *Handler {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Handler{
		svc:            svc,
		interval:       interval,
		timeout:        timeout,
		originPatterns: originPatterns,
		ctx:            ctx,
		cancel:         cancel,
	}
}

// RegisterRoutes registers the websocket route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/agents-status", h.ServeHTTP)
}

// Shutdown ends all open feeds. Hijacked websocket connections are not
// closed by http.Server.Shutdown, so the server calls this on shutdown.
func (h *Handler) Shutdown() {
	h.cancel()
}

// ServeHTTP implements http.Handler for the websocket upgrade.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err, "ip", r.RemoteAddr)
		return
	}
	defer conn.CloseNow()

	n := h.subscribers.Add(1)
	defer h.subscribers.Add(-1)
	slog.Info("Status feed subscribed", "ip", r.RemoteAddr, "subscribers", n)

	ctx := conn.CloseRead(r.Context())

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		if err := h.push(ctx, conn); err != nil {
			if ctx.Err() == nil {
				slog.Debug("Status feed write failed", "error", err)
			}
			return
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			slog.Info("Status feed closed", "reason", ctx.Err())
			return
		case <-h.ctx.Done():
			if err := conn.Close(websocket.StatusGoingAway, "server shutting down"); err != nil {
				slog.Debug("Failed to close websocket", "error", err)
			}
			return
		}
	}
}

func (h *Handler) push(ctx context.Context, conn *websocket.Conn) error {
	snapCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var payload interface{}
	snap, err := h.svc.Snapshot(snapCtx)
	if err != nil {
		slog.Error("Failed to build agent status for feed", "error", err)
		payload = domain.FailureResponse{OK: false, Error: err.Error()}
	} else {
		payload = snap
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	writeCtx, cancelWrite := context.WithTimeout(ctx, h.timeout)
	defer cancelWrite()
	return conn.Write(writeCtx, websocket.MessageText, data)
}
