package domain

import (
	"math"
	"time"
)

// SessionRecord summarizes one session log file of an agent.
type SessionRecord struct {
	SessionID   string
	UpdatedAt   time.Time
	TotalTokens int64
}

// LastActive returns the newest modification time across sessions, or nil if there are none.
func LastActive(sessions []SessionRecord) *time.Time {
	if len(sessions) == 0 {
		return nil
	}
	latest := sessions[0].UpdatedAt
	for _, s := range sessions[1:] {
		if s.UpdatedAt.After(latest) {
			latest = s.UpdatedAt
		}
	}
	return &latest
}

// TotalTokens sums the token estimates of all sessions.
func TotalTokens(sessions []SessionRecord) int64 {
	var total int64
	for _, s := range sessions {
		total = AddTokens(total, s.TotalTokens)
	}
	return total
}

// AddTokens adds two non-negative token counts, saturating at math.MaxInt64.
func AddTokens(a, b int64) int64 {
	if b > math.MaxInt64-a {
		return math.MaxInt64
	}
	return a + b
}
