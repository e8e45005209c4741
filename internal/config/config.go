package config

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Addr            string
	DBPath          string
	VulnDBPath      string
	AnthropicAPIKey string
	AnthropicModel  string
	SessionTTL      time.Duration
	Debug           bool
}

// Load parses command line flags and environment variables to populate Config.
// Flags take precedence over environment variables.
func Load() *Config {
	cfg := &Config{}

	// Defaults and Environment Variables
	cfg.Addr = getEnv("SCAUDIT_ADDR", ":8080")
	cfg.DBPath = getEnv("SCAUDIT_DB", defaultPath("scaudit.db"))
	cfg.VulnDBPath = getEnv("SCAUDIT_VULNDB", defaultPath("vulndb.db"))
	cfg.AnthropicAPIKey = getEnv("ANTHROPIC_API_KEY", "")
	cfg.AnthropicModel = getEnv("SCAUDIT_MODEL", "claude-sonnet-4-20250514")
	cfg.SessionTTL = getEnvDuration("SCAUDIT_SESSION_TTL", 24*time.Hour)
	cfg.Debug = getEnvBool("SCAUDIT_DEBUG", false)

	// Command Line Flags (Override Env)
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP server address")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite database")
	flag.StringVar(&cfg.VulnDBPath, "vulndb", cfg.VulnDBPath, "Path to vulnerability knowledge base")
	flag.StringVar(&cfg.AnthropicModel, "model", cfg.AnthropicModel, "Anthropic model for AI analysis")
	flag.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Session lifetime")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable verbose debug logging")

	flag.Parse()

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// defaultPath returns a file path inside ~/.scaudit, creating the directory
// if needed. Falls back to the current directory.
func defaultPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Warning: Could not get user home directory, using current dir: %v", err)
		return name
	}

	dir := filepath.Join(home, ".scaudit")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("Warning: Could not create .scaudit directory, using current dir: %v", err)
		return name
	}
	return filepath.Join(dir, name)
}
