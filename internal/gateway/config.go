// Package gateway reads the configuration file owned by the external agent gateway.
//
// The file is hand-edited by operators, so it is accepted as JSONC: JSON extended
// with // line comments, /* block comments */ and trailing commas.
package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// OwnerAgentID is the configuration entry reserved for the owner's personal assistant.
// It is never listed as an agent.
const OwnerAgentID = "main"

// Config is the subset of the gateway configuration the dashboard reads.
type Config struct {
	Agents   AgentsSection   `json:"agents"`
	Channels ChannelsSection `json:"channels"`
}

// AgentsSection holds agent defaults and the configured agent list.
type AgentsSection struct {
	Defaults AgentDefaults `json:"defaults"`
	List     []AgentEntry  `json:"list"`
}

// AgentDefaults holds values inherited by agents without overrides.
type AgentDefaults struct {
	Model struct {
		Primary string `json:"primary"`
	} `json:"model"`
}

// AgentEntry is one configured agent.
type AgentEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Workspace string `json:"workspace,omitempty"`
	AgentDir  string `json:"agentDir,omitempty"`
	Model     string `json:"model,omitempty"`
	Tools     struct {
		Deny []string `json:"deny,omitempty"`
	} `json:"tools"`
}

// ChannelsSection holds per-channel bindings.
type ChannelsSection struct {
	Telegram struct {
		Accounts map[string]TelegramAccount `json:"accounts"`
	} `json:"telegram"`
}

// TelegramAccount is a bot bound to an agent. BotToken is read but never exposed.
type TelegramAccount struct {
	Name     string `json:"name"`
	BotToken string `json:"botToken,omitempty"`
}

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals the result into a Config.
func Parse(data []byte) (*Config, error) {
	stripped := jsonc.ToJSON(data)

	var cfg Config
	if err := json.Unmarshal(stripped, &cfg); err != nil {
		return nil, fmt.Errorf("parsing gateway config: %w", err)
	}
	if cfg.Agents.List == nil {
		return nil, errors.New("parsing gateway config: agents.list is missing")
	}

	return &cfg, nil
}

// ReadFile reads and parses the gateway configuration at path.
func ReadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// ListedAgents returns the configured agents in file order, excluding the owner entry.
func (c *Config) ListedAgents() []AgentEntry {
	agents := make([]AgentEntry, 0, len(c.Agents.List))
	for _, a := range c.Agents.List {
		if a.ID == OwnerAgentID {
			continue
		}
		agents = append(agents, a)
	}
	return agents
}

// ModelFor returns the agent's model override, or the configured default.
func (c *Config) ModelFor(a AgentEntry) string {
	if a.Model != "" {
		return a.Model
	}
	return c.Agents.Defaults.Model.Primary
}

// TelegramName returns the display name of the telegram bot bound to agentID, if any.
func (c *Config) TelegramName(agentID string) string {
	if acct, ok := c.Channels.Telegram.Accounts[agentID]; ok {
		return acct.Name
	}
	return ""
}

// DisplayName picks the telegram bot name, then the configured name, then the id.
func (c *Config) DisplayName(a AgentEntry) string {
	if name := c.TelegramName(a.ID); name != "" {
		return name
	}
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}
