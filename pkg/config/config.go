package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	Env              string
	PostgresURL      string
	JWTSecret        string
	EnrichGlobalFeed bool
}

func Load() *Config {
	// Optional .env file; absent in deployed environments.
	_ = godotenv.Load()
	return &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		PostgresURL:      getEnv("POSTGRES_CONN_STR", ""),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		EnrichGlobalFeed: getEnv("ENRICH_GLOBAL_FEED", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
