package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/clientdocs/walker"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Result list defaults.
	ResultLimit int
	MaxLimit    int

	// Input and traversal limits.
	MaxInlineSize  int64
	MaxSchemaDepth int
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from CLIENTDOCS_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("CLIENTDOCS_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("CLIENTDOCS_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("CLIENTDOCS_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:    envDuration("CLIENTDOCS_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("CLIENTDOCS_CACHE_SWEEP_INTERVAL", 60*time.Second),
		ResultLimit:        envInt("CLIENTDOCS_RESULT_LIMIT", 100),
		MaxLimit:           envInt("CLIENTDOCS_MAX_LIMIT", 1000),
		MaxInlineSize:      envInt64("CLIENTDOCS_MAX_INLINE_SIZE", 10*1024*1024),
		MaxSchemaDepth:     envInt("CLIENTDOCS_MAX_SCHEMA_DEPTH", walker.DefaultMaxDepth),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
