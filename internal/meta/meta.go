// Package meta holds the static presentation records shown for each agent.
package meta

import (
	"fmt"
	"maps"
	"os"

	"github.com/ashureev/agent-dashboard/internal/domain"
	"gopkg.in/yaml.v3"
)

// Table maps agent ids to presentation records.
type Table struct {
	entries map[string]domain.Presentation
}

var builtin = map[string]domain.Presentation{
	"main": {
		Emoji:       "🤵",
		Role:        "Personal Assistant",
		Color:       "from-blue-500 to-cyan-500",
		Description: "Your right hand for daily life. Calendar, reminders, research, and keeping things organized.",
		Expertise:   []string{"Scheduling", "Research", "Organization", "Communication"},
	},
	"bookkeeper": {
		Emoji:       "📊",
		Role:        "Bookkeeper",
		Color:       "from-emerald-500 to-green-600",
		Description: "Financial wizard handling books, reports, and keeping the numbers straight.",
		Expertise:   []string{"Bookkeeping", "Financial Reports", "Invoicing", "Tax Prep"},
	},
	"team": {
		Emoji:       "🤝",
		Role:        "Team Support",
		Color:       "from-rose-500 to-pink-600",
		Description: "Coordination and team operations. Keeps everyone aligned and moving forward.",
		Expertise:   []string{"Coordination", "Project Management", "Team Ops", "Documentation"},
	},
	"dev": {
		Emoji:       "💻",
		Role:        "Dev Expert",
		Color:       "from-violet-500 to-purple-600",
		Description: "Technical brain for code, debugging, architecture, and infrastructure.",
		Expertise:   []string{"Development", "Debugging", "Architecture", "DevOps"},
	},
	"julia": {
		Emoji:       "✨",
		Role:        "Creative",
		Color:       "from-pink-500 to-fuchsia-600",
		Description: "Creative mind for content, design ideas, and bringing projects to life.",
		Expertise:   []string{"Content", "Creative", "Writing", "Ideas"},
	},
	"sera": {
		Emoji:       "🔮",
		Role:        "Strategist",
		Color:       "from-indigo-500 to-blue-600",
		Description: "Strategic thinker for planning, analysis, and big-picture decisions.",
		Expertise:   []string{"Strategy", "Analysis", "Planning", "Research"},
	},
}

// Default returns a table holding the built-in records.
func Default() *Table {
	return &Table{entries: maps.Clone(builtin)}
}

// Lookup returns the record for id, or a generic record naming the agent.
// displayName may be empty, in which case the id is used.
func (t *Table) Lookup(id, displayName string) domain.Presentation {
	if p, ok := t.entries[id]; ok {
		return p
	}
	return Fallback(id, displayName)
}

// Fallback is the record shown for agents the table does not know.
func Fallback(id, displayName string) domain.Presentation {
	name := displayName
	if name == "" {
		name = id
	}
	return domain.Presentation{
		Emoji:       "🤖",
		Role:        "Agent",
		Color:       "from-gray-500 to-gray-600",
		Description: "AI agent: " + name,
		Expertise:   []string{"General"},
	}
}

// Merge adds or replaces records. Empty fields in an override keep the
// built-in value for ids the table already knows.
func (t *Table) Merge(overrides map[string]domain.Presentation) {
	for id, o := range overrides {
		base, ok := t.entries[id]
		if !ok {
			base = Fallback(id, "")
		}
		if o.Emoji != "" {
			base.Emoji = o.Emoji
		}
		if o.Role != "" {
			base.Role = o.Role
		}
		if o.Color != "" {
			base.Color = o.Color
		}
		if o.Description != "" {
			base.Description = o.Description
		}
		if len(o.Expertise) > 0 {
			base.Expertise = o.Expertise
		}
		t.entries[id] = base
	}
}

// overrideFile is the YAML layout of AGENT_META_PATH.
type overrideFile struct {
	Agents map[string]domain.Presentation `yaml:"agents"`
}

// LoadOverrides reads a YAML file of presentation records keyed by agent id.
func LoadOverrides(path string) (map[string]domain.Presentation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading agent metadata: %w", err)
	}

	var f overrideFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing agent metadata: %w", err)
	}
	return f.Agents, nil
}

// Load returns the built-in table, merged with the overrides at path when path is set.
func Load(path string) (*Table, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	overrides, err := LoadOverrides(path)
	if err != nil {
		return nil, err
	}
	t.Merge(overrides)
	return t, nil
}
