package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort      int
	DatabasePath    string
	JWTSecret       string
	AllowedOrigin   string // Frontend origin for CORS
	MaintenanceCron string // Schedule for the tag pruning job
	LogLevel        string
}

// Load loads configuration from environment variables or sets defaults.
// A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	portStr := getEnv("PORT", "8000")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:      port,
		DatabasePath:    getEnv("DATABASE_PATH", "./quorum.db"),
		JWTSecret:       getEnv("JWT_SECRET", "dev-only-secret"),
		AllowedOrigin:   getEnv("CLIENT_URL", "http://localhost:3000"),
		MaintenanceCron: getEnv("MAINTENANCE_CRON", "0 3 * * *"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
