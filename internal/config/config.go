// Package config reads process settings from the environment, after an
// optional .env file.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds every setting the server and CLI read.
type Config struct {
	Port          string
	LogLevel      string
	ColorsFile    string // CSV palette; empty means the embedded one
	ColorsDB      string // SQLite store; takes precedence over ColorsFile
	SessionSecret string
	SessionTTL    time.Duration
	ClientOrigin  string
	PracticeSalt  string
	MatchLimit    int
}

// DevSecret signs session tokens when SESSION_SECRET is unset.
const DevSecret = "colordle-dev-secret"

// Load reads .env (if any) and the environment. Unset or empty variables
// fall back to their defaults.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Port:          getEnv("PORT", "5175"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		ColorsFile:    os.Getenv("COLORS_FILE"),
		ColorsDB:      os.Getenv("COLORS_DB"),
		SessionSecret: getEnv("SESSION_SECRET", DevSecret),
		SessionTTL:    time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		PracticeSalt:  getEnv("PRACTICE_SALT", "local_dev_salt"),
		MatchLimit:    getEnvInt("MATCH_LIMIT", 10),
	}
}

// ApplyLogLevel sets the global zerolog level; unknown names leave it as is.
func (c Config) ApplyLogLevel() {
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvInt is getEnv for positive integers; bad values fall back to def.
func getEnvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warn().Str("key", k).Str("value", v).Msg("ignoring invalid integer setting")
		return def
	}
	return n
}
