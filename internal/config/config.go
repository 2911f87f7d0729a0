package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string
	// EngineBaseURL is the remote scheduling engine address, overridable via
	// SCHED_ENGINE_URL. Nothing about the engine is hard-coded beyond this
	// default.
	EngineBaseURL string
	// EngineTimeout bounds every remote call. The engine contract has no
	// native timeout, so expiry is surfaced as an ordinary failure.
	EngineTimeout time.Duration
	// SessionTTL is how long an idle page session survives before the janitor
	// evicts it.
	SessionTTL time.Duration
	// AllowedOrigins controls HTTP CORS and WebSocket origin validation.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "pretty"),
		EngineBaseURL:  strings.TrimRight(getEnv("SCHED_ENGINE_URL", "https://cpu-scheduling-sim.fly.dev/api"), "/"),
		EngineTimeout:  time.Duration(getEnvInt("ENGINE_TIMEOUT_SECONDS", 30)) * time.Second,
		SessionTTL:     time.Duration(getEnvInt("SESSION_TTL_MINUTES", 30)) * time.Minute,
		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
