// internal/config/config.go
//
// Runtime configuration read from the environment.
// A .env file in the working directory is loaded first when present
// (development only; real environment variables win).
//
// Environment variables:
//   PORT           HTTP listen port               (default 5175)
//   LOG_LEVEL      zerolog level name             (default info)
//   CLIENT_ORIGIN  allowed CORS origin            (default http://localhost:5173)
//   DAILY_SALT     key for the daily secret       (default local_dev_salt)
//   MAX_GUESSES    rows per API game              (default 10)

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds every tunable the binary reads at startup.
type Config struct {
	Port         string
	LogLevel     string
	ClientOrigin string
	DailySalt    string
	MaxGuesses   int
}

// Load reads .env (if any) and the process environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the process environment only.
func FromEnv() Config {
	return Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		DailySalt:    getEnv("DAILY_SALT", "local_dev_salt"),
		MaxGuesses:   envInt("MAX_GUESSES", 10),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt parses k as a positive integer, falling back to def.
func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warn().Str("key", k).Str("value", v).Int("default", def).Msg("ignoring invalid integer setting")
		return def
	}
	return n
}
