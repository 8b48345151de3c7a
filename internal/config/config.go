// internal/config/config.go
//
// Environment-driven configuration for the go-server.
// main loads `.env` (godotenv) before calling Load, so values may come
// from either the process environment or the file.

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Round table sources.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceSQLite   = "sqlite"
)

// Config holds all runtime settings.
type Config struct {
	Port           string
	LogLevel       string
	ClientOrigin   string
	JWTSecret      string
	RoundsSource   string // embedded | file | sqlite
	RoundsFile     string // required when RoundsSource == file
	DBPath         string // used when RoundsSource == sqlite
	RequestTimeout time.Duration
}

// Load reads the environment and validates the result.
func Load() (Config, error) {
	c := Config{
		Port:           getEnv("PORT", "5175"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		ClientOrigin:   getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		JWTSecret:      getEnv("JWT_SECRET", "dev_secret_change_me"),
		RoundsSource:   getEnv("ROUNDS_SOURCE", SourceEmbedded),
		RoundsFile:     os.Getenv("ROUNDS_FILE"),
		DBPath:         getEnv("DB_PATH", "./data/rounds.db"),
		RequestTimeout: time.Duration(envInt("REQUEST_TIMEOUT_SEC", 10)) * time.Second,
	}
	switch c.RoundsSource {
	case SourceEmbedded, SourceSQLite:
	case SourceFile:
		if c.RoundsFile == "" {
			return c, fmt.Errorf("config: ROUNDS_SOURCE=file needs ROUNDS_FILE")
		}
	default:
		return c, fmt.Errorf("config: unknown ROUNDS_SOURCE %q", c.RoundsSource)
	}
	if c.RequestTimeout <= 0 {
		return c, fmt.Errorf("config: REQUEST_TIMEOUT_SEC must be positive")
	}
	return c, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt parses k as an int, falling back to def.
func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
