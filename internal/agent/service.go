// Package agent aggregates the status of gateway-managed agents.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ashureev/agent-dashboard/internal/domain"
	"github.com/ashureev/agent-dashboard/internal/gateway"
	"github.com/ashureev/agent-dashboard/internal/meta"
	"github.com/ashureev/agent-dashboard/internal/store"
	"golang.org/x/sync/errgroup"
)

// Service builds status snapshots. It holds no state between calls; every
// snapshot is recomputed from the filesystem.
type Service struct {
	source      store.Source
	meta        *meta.Table
	concurrency int
	now         func() time.Time
}

// NewService creates a status service reading from source.
func NewService(source store.Source, table *meta.Table, concurrency int) *Service {
	if table == nil {
		table = meta.Default()
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Service{
		source:      source,
		meta:        table,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// Snapshot loads the gateway configuration and scans every agent's sessions.
// It fails when the configuration or the agents root cannot be read, or when
// ctx ends before every agent has been scanned.
func (s *Service) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	cfg, err := s.source.LoadGatewayConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load gateway config: %w", err)
	}

	dirs, err := s.source.ListAgentDirs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list agent directories: %w", err)
	}
	present := make(map[string]bool, len(dirs))
	for _, d := range dirs {
		present[d] = true
	}

	entries := uniqueAgents(cfg.ListedAgents())
	now := s.now()

	views := make([]domain.AgentView, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, entry := range entries {
		if !present[entry.ID] {
			slog.Debug("Configured agent has no directory", "agent_id", entry.ID)
		}
		g.Go(func() error {
			views[i] = s.buildView(gctx, cfg, entry, now)
			return nil
		})
	}
	_ = g.Wait() // buildView never fails

	// Session scans stop early once ctx is done; their partial results are not a snapshot.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan agent sessions: %w", err)
	}

	return &domain.Snapshot{
		OK:        true,
		Owner:     meta.Owner(),
		Agents:    views,
		Stats:     domain.ComputeStats(views),
		Timestamp: domain.EpochMillis(now),
	}, nil
}

func (s *Service) buildView(ctx context.Context, cfg *gateway.Config, entry gateway.AgentEntry, now time.Time) domain.AgentView {
	sessions := s.source.ListSessions(ctx, entry.ID)
	lastActive := domain.LastActive(sessions)

	view := domain.AgentView{
		ID:               entry.ID,
		Name:             cfg.DisplayName(entry),
		Presentation:     s.meta.Lookup(entry.ID, displayNameOrID(entry)),
		Status:           domain.StatusAt(lastActive, now),
		Model:            cfg.ModelFor(entry),
		Workspace:        entry.Workspace,
		TotalTokens:      domain.TotalTokens(sessions),
		SessionCount:     len(sessions),
		TelegramBot:      cfg.TelegramName(entry.ID),
		ToolRestrictions: entry.Tools.Deny,
	}
	if lastActive != nil {
		ms := domain.EpochMillis(*lastActive)
		view.LastActive = &ms
	}
	if view.ToolRestrictions == nil {
		view.ToolRestrictions = []string{}
	}
	return view
}

func displayNameOrID(entry gateway.AgentEntry) string {
	if entry.Name != "" {
		return entry.Name
	}
	return entry.ID
}

// uniqueAgents drops repeated ids, keeping the first entry.
func uniqueAgents(entries []gateway.AgentEntry) []gateway.AgentEntry {
	seen := make(map[string]bool, len(entries))
	out := entries[:0:0]
	for _, e := range entries {
		if e.ID == "" {
			slog.Warn("Skipping gateway agent entry without id")
			continue
		}
		if seen[e.ID] {
			slog.Warn("Skipping duplicate gateway agent entry", "agent_id", e.ID)
			continue
		}
		seen[e.ID] = true
		out = append(out, e)
	}
	return out
}
