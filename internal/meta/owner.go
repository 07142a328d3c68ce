package meta

import "github.com/ashureev/agent-dashboard/internal/domain"

// Owner returns the human operator identity. It is fixed and never read from configuration.
func Owner() domain.Owner {
	return domain.Owner{
		ID:   "josh",
		Name: "Josh A",
		Presentation: domain.Presentation{
			Emoji:       "👤",
			Role:        "Founder",
			Color:       "from-amber-500 to-orange-600",
			Description: "The human behind the operation. Entrepreneur, builder, visionary.",
			Expertise:   []string{"Strategy", "Vision", "Decisions"},
		},
		Status: domain.StatusActive,
	}
}
