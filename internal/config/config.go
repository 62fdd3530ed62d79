package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config carries the settings main needs to boot. Package-level concerns
// (database, cloudinary, jwt) read their own environment, so this stays
// small.
type Config struct {
	AppEnv   string
	Port     string
	RedisURL string
}

func Load() *Config {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	return &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		Port:     getEnv("PORT", "8080"),
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
