// Package config loads application configuration from the environment,
// with an optional .env file for development.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port     string
	DBPath   string
	LogLevel string
	// CORSOrigins lists the origins allowed to call the API, for
	// deployments that serve a frontend from elsewhere.
	CORSOrigins []string
}

// Load reads configuration from environment variables, applying defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	// Missing .env is fine; env vars win either way.
	_ = godotenv.Load()

	port := getEnv("PORT", "8080")
	return &Config{
		Port:        port,
		DBPath:      getEnv("DB_PATH", "rent.db"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:"+port)),
	}
}

// splitList parses a comma-separated value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
