package app

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DatabaseDriver string // Optional: sqlite or postgres (default: sqlite)
	DatabaseFile   string // Optional: path to SQLite database file (default: ./access.db)
	DatabaseURL    string // Required for postgres: lib/pq connection string

	Issuer   string   // Required: expected iss claim of access tokens
	Audience []string // Optional: accepted aud values, comma separated (default: reservoir)

	JWKSURL     string        // One of JWKSURL or JWKSFile is required
	JWKSFile    string        // Static key set, no refresh
	JWKSRefresh time.Duration // Optional: refresh interval for JWKSURL (default: 15m)

	InvitationTTL time.Duration // Optional: default invitation lifetime (default: 7 days)
	CORSOrigins   []string      // Optional: allowed origins, comma separated (default: *)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		DatabaseDriver: getEnvOrDefault("ACCESS_DATABASE_DRIVER", "sqlite"),
		DatabaseFile:   getEnvOrDefault("ACCESS_DATABASE_FILE", "access.db"),
		DatabaseURL:    os.Getenv("ACCESS_DATABASE_URL"),

		Issuer:   os.Getenv("ACCESS_ISSUER"),
		Audience: splitList(getEnvOrDefault("ACCESS_AUDIENCE", "reservoir")),

		JWKSURL:     os.Getenv("ACCESS_JWKS_URL"),
		JWKSFile:    os.Getenv("ACCESS_JWKS_FILE"),
		JWKSRefresh: getEnvDurationOrDefault("ACCESS_JWKS_REFRESH", 15*time.Minute),

		InvitationTTL: getEnvDurationOrDefault("ACCESS_INVITATION_TTL", 7*24*time.Hour),
		CORSOrigins:   splitList(os.Getenv("ACCESS_CORS_ORIGINS")),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate reports settings the service cannot start without.
func (c Config) Validate() error {
	var errs []error
	if c.Issuer == "" {
		errs = append(errs, errors.New("ACCESS_ISSUER is required"))
	}
	if c.JWKSURL == "" && c.JWKSFile == "" {
		errs = append(errs, errors.New("one of ACCESS_JWKS_URL or ACCESS_JWKS_FILE is required"))
	}
	switch c.DatabaseDriver {
	case "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("ACCESS_DATABASE_URL is required for postgres"))
		}
	default:
		errs = append(errs, errors.New("ACCESS_DATABASE_DRIVER must be sqlite or postgres"))
	}
	if c.InvitationTTL <= 0 || c.InvitationTTL > 30*24*time.Hour {
		errs = append(errs, errors.New("ACCESS_INVITATION_TTL must be between 0 and 720h"))
	}
	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
