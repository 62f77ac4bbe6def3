// internal/config/config.go
//
// Process configuration, read from environment variables.
// main loads a .env file (godotenv) first, so either source works.
//
// Variables (defaults in parentheses):
//   PORT (5175)                 HTTP listen port
//   LOG_LEVEL (info)            zerolog level
//   LOG_PRETTY (false)          human-readable console logs
//   STORE (sqlite)              session store: sqlite | memory
//   DB_PATH (./data/solver.db)  SQLite file
//   WORDS_FILE ("")             candidate list; empty uses the embedded list
//   SESSION_SECRET (dev value)  HS256 key for session tokens
//   SESSION_TTL_HOURS (24)      session token lifetime
//   CLIENT_ORIGIN (http://localhost:5173)  allowed CORS origin
//   DAILY_SALT (local_dev_salt) salt for the daily target rotation

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DevSecret is the session secret used when SESSION_SECRET is unset.
const DevSecret = "dev_secret_change_me"

// Config holds every setting the server needs.
type Config struct {
	Port          string
	LogLevel      string
	LogPretty     bool
	Store         string
	DBPath        string
	WordsFile     string
	SessionSecret string
	SessionTTL    time.Duration
	ClientOrigin  string
	DailySalt     string
}

// Load reads the environment and validates the result.
func Load() (Config, error) {
	c := Config{
		Port:          getEnv("PORT", "5175"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogPretty:     getBool("LOG_PRETTY", false),
		Store:         strings.ToLower(getEnv("STORE", "sqlite")),
		DBPath:        getEnv("DB_PATH", "./data/solver.db"),
		WordsFile:     os.Getenv("WORDS_FILE"),
		SessionSecret: getEnv("SESSION_SECRET", DevSecret),
		SessionTTL:    time.Duration(getInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		DailySalt:     getEnv("DAILY_SALT", "local_dev_salt"),
	}
	if c.Store != "sqlite" && c.Store != "memory" {
		return Config{}, fmt.Errorf("config: STORE must be sqlite or memory, got %q", c.Store)
	}
	if c.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("config: SESSION_TTL_HOURS must be positive")
	}
	return c, nil
}

// UsingDevSecret reports whether the built-in session secret is in use.
func (c Config) UsingDevSecret() bool { return c.SessionSecret == DevSecret }

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
