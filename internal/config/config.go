package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	Addr            string
	DataDir         string
	DBPath          string
	LogLevel        string
	RefreshInterval time.Duration
	MaxDepth        int
}

// Load reads configuration from the environment, filling in defaults for
// anything unset.
func Load() Config {
	addr := getenv("OPMLKIT_ADDR", ":8080")
	dataDir := getenv("OPMLKIT_DATA_DIR", "data")
	dbPath := os.Getenv("OPMLKIT_DB_PATH")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "opmlkit.db")
	}
	logLevel := getenv("OPMLKIT_LOG_LEVEL", "info")

	refreshInterval := 30 * time.Minute
	if raw := os.Getenv("OPMLKIT_REFRESH_INTERVAL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			refreshInterval = parsed
		}
	}

	// 0 keeps the parser's default bound; negative disables it.
	maxDepth := 0
	if raw := os.Getenv("OPMLKIT_MAX_DEPTH"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			maxDepth = parsed
		}
	}

	return Config{
		Addr:            addr,
		DataDir:         dataDir,
		DBPath:          filepath.Clean(dbPath),
		LogLevel:        logLevel,
		RefreshInterval: refreshInterval,
		MaxDepth:        maxDepth,
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
