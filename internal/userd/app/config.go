package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer        string // Optional: issuer claim for tokens (default: userd)
	AccessSecret  string // Optional: HMAC secret for access tokens (default: generated per process)
	RefreshSecret string // Optional: HMAC secret for refresh tokens (default: generated per process)

	AccessTTL  time.Duration // Optional: access token lifetime (default: 15m)
	RefreshTTL time.Duration // Optional: refresh token lifetime (default: 168h)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./userd.db)
	PepperFile          string        // Optional: path to the password hashing pepper file (default: ./pepper)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:              getEnvOrDefault("USERD_ISSUER", "userd"),
		AccessSecret:        os.Getenv("USERD_ACCESS_SECRET"),
		RefreshSecret:       os.Getenv("USERD_REFRESH_SECRET"),
		AccessTTL:           getEnvDurationOrDefault("USERD_ACCESS_TTL", 15*time.Minute),
		RefreshTTL:          getEnvDurationOrDefault("USERD_REFRESH_TTL", 7*24*time.Hour),
		DatabaseFile:        getEnvOrDefault("USERD_DATABASE_FILE", "userd.db"),
		PepperFile:          getEnvOrDefault("USERD_PEPPER_FILE", "pepper"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are read as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
