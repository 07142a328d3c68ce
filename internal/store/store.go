// Package store provides read-only access to the files the agent gateway writes.
package store

import (
	"context"

	"github.com/ashureev/agent-dashboard/internal/domain"
	"github.com/ashureev/agent-dashboard/internal/gateway"
)

// Source defines the read path the status aggregator depends on.
type Source interface {
	// LoadGatewayConfig reads and parses the gateway configuration.
	// Any error is fatal to the request.
	LoadGatewayConfig(ctx context.Context) (*gateway.Config, error)

	// ListAgentDirs lists the per-agent directory names under the agents root.
	// Any error is fatal to the request.
	ListAgentDirs(ctx context.Context) ([]string, error)

	// ListSessions returns the session records of one agent.
	// Missing or unreadable data yields an empty list, never an error.
	ListSessions(ctx context.Context, agentID string) []domain.SessionRecord

	// Ping verifies the gateway config and agents root are reachable.
	Ping(ctx context.Context) error
}
