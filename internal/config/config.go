package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	// RegisterTokenExpiry is the lifetime of the subject-only token
	// issued at registration.
	RegisterTokenExpiry = 2 * time.Hour
	// LoginTokenExpiry is the lifetime of the full-identity token
	// issued at login.
	LoginTokenExpiry = 24 * time.Hour
)

type Config struct {
	Port         string
	Env          string
	DatabaseDSN  string
	JWTSecret    string
	MockDataPath string
}

func Load() Config {
	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		Env:          getEnv("ENV", "development"),
		DatabaseDSN:  getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/autocare?parseTime=true"),
		JWTSecret:    getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		MockDataPath: getEnv("MOCK_DATA_PATH", "data/mock_vehicle_data.json"),
	}

	if cfg.Env == "production" && cfg.JWTSecret == "dev-secret-change-in-production" {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
