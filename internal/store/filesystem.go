package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/ashureev/agent-dashboard/internal/domain"
	"github.com/ashureev/agent-dashboard/internal/gateway"
	"github.com/ashureev/agent-dashboard/internal/sessionlog"
	"github.com/ashureev/agent-dashboard/internal/shared"
	"golang.org/x/sync/errgroup"
)

const sessionsDirName = "sessions"

// FilesystemStore implements Source over the gateway's on-disk layout:
//
//	<configPath>
//	<agentsDir>/<agentID>/sessions/<sessionID>.jsonl
type FilesystemStore struct {
	configPath  string
	agentsDir   string
	tailLines   int
	concurrency int
}

// NewFilesystem creates a Source reading from the given paths.
func NewFilesystem(configPath, agentsDir string, tailLines, concurrency int) *FilesystemStore {
	if tailLines <= 0 {
		tailLines = sessionlog.DefaultTailLines
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &FilesystemStore{
		configPath:  configPath,
		agentsDir:   agentsDir,
		tailLines:   tailLines,
		concurrency: concurrency,
	}
}

// LoadGatewayConfig reads the gateway configuration file.
func (s *FilesystemStore) LoadGatewayConfig(ctx context.Context) (*gateway.Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return gateway.ReadFile(s.configPath)
}

// ListAgentDirs lists the subdirectories of the agents root.
func (s *FilesystemStore) ListAgentDirs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.agentsDir)
	if err != nil {
		return nil, fmt.Errorf("reading agents directory: %w", err)
	}
	dirs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs, nil
}

// ListSessions scans the sessions directory of agentID. Session files are read
// concurrently; a file that cannot be read is left out.
func (s *FilesystemStore) ListSessions(ctx context.Context, agentID string) []domain.SessionRecord {
	if agentID == "" || agentID != filepath.Base(agentID) {
		slog.Warn("Skipping session scan for unsafe agent id", "agent_id", agentID)
		return []domain.SessionRecord{}
	}

	dir := filepath.Join(s.agentsDir, agentID, sessionsDirName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		switch {
		case shared.IsMissing(err):
			slog.Debug("Agent has no sessions directory", "agent_id", agentID)
		case shared.IsPermission(err):
			slog.Warn("Sessions directory not readable", "agent_id", agentID, "error", err)
		default:
			slog.Warn("Failed to read sessions directory", "agent_id", agentID, "error", err)
		}
		return []domain.SessionRecord{}
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && sessionlog.IsSessionFile(e.Name()) {
			names = append(names, e.Name())
		}
	}

	slots := make([]*domain.SessionRecord, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, name := range names {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			rec, err := s.readSession(filepath.Join(dir, name))
			if err != nil {
				level := slog.LevelDebug
				if shared.IsPermission(err) {
					level = slog.LevelWarn
				}
				slog.Log(gctx, level, "Skipping unreadable session log", "agent_id", agentID, "file", name, "error", err)
				return nil
			}
			slots[i] = rec
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	sessions := make([]domain.SessionRecord, 0, len(slots))
	for _, rec := range slots {
		if rec != nil {
			sessions = append(sessions, *rec)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].SessionID < sessions[j].SessionID
	})
	return sessions
}

func (s *FilesystemStore) readSession(path string) (*domain.SessionRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat session log: %w", err)
	}
	tokens, err := sessionlog.EstimateFile(path, s.tailLines)
	if err != nil {
		return nil, err
	}
	return &domain.SessionRecord{
		SessionID:   sessionlog.SessionIDFromFilename(filepath.Base(path)),
		UpdatedAt:   info.ModTime(),
		TotalTokens: tokens,
	}, nil
}

// Ping checks the gateway config file and agents root can be stat'ed.
func (s *FilesystemStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(s.configPath); err != nil {
		return fmt.Errorf("gateway config: %w", err)
	}
	info, err := os.Stat(s.agentsDir)
	if err != nil {
		return fmt.Errorf("agents directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("agents directory: %s is not a directory", s.agentsDir)
	}
	return nil
}
