package domain

// Stats summarizes an agent list.
type Stats struct {
	TotalAgents          int   `json:"totalAgents"`
	ActiveAgents         int   `json:"activeAgents"`
	BusyAgents           int   `json:"busyAgents"`
	IdleAgents           int   `json:"idleAgents"`
	TotalTokensAllAgents int64 `json:"totalTokensAllAgents"`
	TotalSessions        int   `json:"totalSessions"`
}

// ComputeStats counts agents per status bucket and sums their usage.
func ComputeStats(agents []AgentView) Stats {
	stats := Stats{TotalAgents: len(agents)}
	for _, a := range agents {
		switch a.Status {
		case StatusBusy:
			stats.BusyAgents++
		case StatusActive:
			stats.ActiveAgents++
		default:
			stats.IdleAgents++
		}
		stats.TotalTokensAllAgents = AddTokens(stats.TotalTokensAllAgents, a.TotalTokens)
		stats.TotalSessions += a.SessionCount
	}
	return stats
}

// Snapshot is the successful status response.
type Snapshot struct {
	OK        bool        `json:"ok"`
	Owner     Owner       `json:"owner"`
	Agents    []AgentView `json:"agents"`
	Stats     Stats       `json:"stats"`
	Timestamp int64       `json:"timestamp"`
}

// FailureResponse is the uniform error envelope.
type FailureResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}
