// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Config holds all application configuration.
type Config struct {
	Port              string
	FrontendURL       string
	GatewayConfigPath string // gateway JSON config, owned by the gateway process
	AgentsDir         string // one subdirectory per agent id
	MetadataPath      string // optional YAML presentation overrides
	APIBaseURL        string // "" = same origin
	PollInterval      time.Duration
	ScanConcurrency   int
	SessionTailLines  int
	AllowedOrigins    []string
	Timeout           TimeoutConfig
}

// TimeoutConfig bounds the blocking work done per request.
type TimeoutConfig struct {
	HealthCheck time.Duration
	Snapshot    time.Duration
}

// Load reads configuration from environment variables, then applies
// command-line flag overrides from args.
func Load(args []string) (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		FrontendURL:       getEnv("FRONTEND_URL", ""),
		GatewayConfigPath: getEnv("CONFIG_PATH", "/root/.clawdbot/clawdbot.json"),
		AgentsDir:         getEnv("AGENTS_DIR", "/root/.clawdbot/agents"),
		MetadataPath:      getEnv("AGENT_META_PATH", ""),
		APIBaseURL:        getEnv("API_BASE_URL", ""),
		PollInterval:      getEnvDuration("POLL_INTERVAL", 30*time.Second),
		ScanConcurrency:   getEnvInt("SCAN_CONCURRENCY", 8),
		SessionTailLines:  getEnvInt("SESSION_TAIL_LINES", 20),
		AllowedOrigins:    getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		Timeout: TimeoutConfig{
			HealthCheck: getEnvDuration("HEALTH_CHECK_TIMEOUT", 5*time.Second),
			Snapshot:    getEnvDuration("SNAPSHOT_TIMEOUT", 10*time.Second),
		},
	}

	fs := pflag.NewFlagSet("agent-dashboard", pflag.ContinueOnError)
	fs.StringVar(&cfg.Port, "port", cfg.Port, "HTTP listen port")
	fs.StringVar(&cfg.FrontendURL, "frontend-url", cfg.FrontendURL, "public URL of the dashboard")
	fs.StringVar(&cfg.GatewayConfigPath, "config", cfg.GatewayConfigPath, "path to the gateway JSON configuration")
	fs.StringVar(&cfg.AgentsDir, "agents-dir", cfg.AgentsDir, "root directory of per-agent session logs")
	fs.StringVar(&cfg.MetadataPath, "agent-meta", cfg.MetadataPath, "optional YAML file overriding agent presentation metadata")
	fs.StringVar(&cfg.APIBaseURL, "api-base", cfg.APIBaseURL, "API base URL used by the browser client")
	fs.DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "client poll and live feed interval")
	fs.IntVar(&cfg.ScanConcurrency, "scan-concurrency", cfg.ScanConcurrency, "max concurrent agent and session file scans")
	fs.IntVar(&cfg.SessionTailLines, "tail-lines", cfg.SessionTailLines, "trailing log entries read per session file")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.GatewayConfigPath == "" {
		return fmt.Errorf("CONFIG_PATH cannot be empty")
	}
	if c.AgentsDir == "" {
		return fmt.Errorf("AGENTS_DIR cannot be empty")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be > 0")
	}
	if c.ScanConcurrency <= 0 {
		return fmt.Errorf("SCAN_CONCURRENCY must be > 0")
	}
	if c.SessionTailLines <= 0 {
		return fmt.Errorf("SESSION_TAIL_LINES must be > 0")
	}
	if c.Timeout.HealthCheck <= 0 || c.Timeout.Snapshot <= 0 {
		return fmt.Errorf("timeouts must be > 0")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}

func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
