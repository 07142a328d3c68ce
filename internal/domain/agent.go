// Package domain contains core domain types for the agent dashboard.
package domain

import "time"

// Status is the derived activity bucket of an agent.
type Status string

const (
	StatusBusy   Status = "busy"
	StatusActive Status = "active"
	StatusIdle   Status = "idle"
)

const (
	// BusyWindow is how recently a session must have been written for the agent to count as busy.
	BusyWindow = 5 * time.Minute
	// ActiveWindow is the upper bound for the active bucket.
	ActiveWindow = 30 * time.Minute
)

// StatusAt derives the status bucket from the most recent session write.
// A nil lastActive means the agent has no sessions.
func StatusAt(lastActive *time.Time, now time.Time) Status {
	if lastActive == nil {
		return StatusIdle
	}
	since := now.Sub(*lastActive)
	switch {
	case since < BusyWindow:
		return StatusBusy
	case since < ActiveWindow:
		return StatusActive
	default:
		return StatusIdle
	}
}

// Presentation is the static display record for an agent or the owner.
type Presentation struct {
	Emoji       string   `json:"emoji" yaml:"emoji"`
	Role        string   `json:"role" yaml:"role"`
	Color       string   `json:"color" yaml:"color"`
	Description string   `json:"description" yaml:"description"`
	Expertise   []string `json:"expertise" yaml:"expertise"`
}

// AgentView is the per-agent record returned to clients.
type AgentView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Presentation
	Status           Status   `json:"status"`
	Model            string   `json:"model"`
	Workspace        string   `json:"workspace,omitempty"`
	LastActive       *int64   `json:"lastActive"` // epoch milliseconds, null without sessions
	TotalTokens      int64    `json:"totalTokens"`
	SessionCount     int      `json:"sessionCount"`
	TelegramBot      string   `json:"telegramBot,omitempty"`
	ToolRestrictions []string `json:"toolRestrictions"`
}

// Owner is the human operator shown apart from the agent list.
type Owner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Presentation
	Status Status `json:"status"`
}

// EpochMillis converts t to Unix milliseconds.
func EpochMillis(t time.Time) int64 {
	return t.UnixMilli()
}
