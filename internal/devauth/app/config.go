package app

import (
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/worklane/pkg/httpx"
	"github.com/aussiebroadwan/worklane/pkg/jwtx"
)

type Config struct {
	SigningKey    string        // Optional: HS256 secret; random per process when empty
	Issuer        string        // Optional: iss claim for issued tokens (default: worklane)
	DatabaseFile  string        // Optional: path to SQLite database file (default: ./devauth.db)
	AccessTTL     time.Duration // Access token lifetime (default: 5m)
	RefreshTTL    time.Duration // Refresh token lifetime (default: 24h)
	RotateRefresh bool          // Issue a new refresh token on every refresh (default: false)

	// Per-IP limits; RATELIMIT_STRICT_* and RATELIMIT_MODERATE_* override them.
	TokenLimit httpx.RateLimitConfig
	APILimit   httpx.RateLimitConfig

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8000)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		SigningKey:    os.Getenv("WORKLANE_SIGNING_KEY"),
		Issuer:        getEnvOrDefault("WORKLANE_ISSUER", "worklane"),
		DatabaseFile:  getEnvOrDefault("WORKLANE_DATABASE_FILE", "devauth.db"),
		AccessTTL:     getEnvDurationOrDefault("WORKLANE_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL:    getEnvDurationOrDefault("WORKLANE_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),
		RotateRefresh: getEnvBoolOrDefault("WORKLANE_ROTATE_REFRESH", false),
		TokenLimit:    httpx.StrictLimit,
		APILimit:      httpx.ModerateLimit,

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8000),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
