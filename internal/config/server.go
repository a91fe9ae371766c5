package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Server holds the API server settings, read from the environment.
type Server struct {
	Port            string
	Env             string
	LogLevel        string
	ProfileDir      string
	AllowedOrigins  []string
	JWTSecret       []byte
	MaxScenarios    int
	MaxHorizonYears int
	CacheTTL        time.Duration
	Workers         int
}

func (s Server) Production() bool { return s.Env == "production" }

// ServerFromEnv reads API_PORT, API_ENV, LOG_LEVEL, PROFILE_DIR,
// CORS_ALLOWED_ORIGINS, API_JWT_SECRET, MAX_SCENARIOS, MAX_HORIZON_YEARS,
// SIMULATION_CACHE_TTL and ENGINE_WORKERS. Unset or malformed values fall
// back to defaults.
func ServerFromEnv() Server {
	s := Server{
		Port:            getenv("API_PORT", "8080"),
		Env:             os.Getenv("API_ENV"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		ProfileDir:      os.Getenv("PROFILE_DIR"),
		JWTSecret:       []byte(os.Getenv("API_JWT_SECRET")),
		MaxScenarios:    getInt("MAX_SCENARIOS", 100000),
		MaxHorizonYears: getInt("MAX_HORIZON_YEARS", 100),
		CacheTTL:        time.Hour,
		Workers:         getInt("ENGINE_WORKERS", 0),
	}
	if s.ProfileDir == "" {
		// Try to resolve relative to working directory first
		if wd, err := os.Getwd(); err == nil {
			s.ProfileDir = filepath.Join(wd, "examples", "profiles")
		} else {
			s.ProfileDir = "./examples/profiles"
		}
	}
	if abs, err := filepath.Abs(s.ProfileDir); err == nil {
		s.ProfileDir = abs
	}
	if v := os.Getenv("SIMULATION_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			s.CacheTTL = parsed
		}
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				s.AllowedOrigins = append(s.AllowedOrigins, o)
			}
		}
	}
	return s
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
