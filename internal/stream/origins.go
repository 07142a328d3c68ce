package stream

import (
	"net/url"
	"strings"
)

// OriginPatterns converts CORS origins ("https://dash.example") into the
// host patterns websocket.AcceptOptions expects ("dash.example").
func OriginPatterns(origins []string) []string {
	patterns := make([]string, 0, len(origins))
	for _, o := range origins {
		if o == "*" {
			return []string{"*"}
		}
		if !strings.Contains(o, "://") {
			patterns = append(patterns, o)
			continue
		}
		u, err := url.Parse(o)
		if err != nil || u.Host == "" {
			continue
		}
		patterns = append(patterns, u.Host)
	}
	return patterns
}
