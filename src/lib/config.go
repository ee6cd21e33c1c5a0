package lib

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the service.
type Config struct {
	Port      string
	Env       string
	DBPath    string
	JWTSecret string

	// CORS
	AllowedOrigins []string
}

// LoadConfig reads configuration from environment variables.
// In development, it loads from a .env file if present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnv("PORT", "5000"),
		Env:       getEnv("ENV", "development"),
		DBPath:    getEnv("DB_PATH", "./campanion.db"),
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key"),
	}

	origins := getEnv("FRONTEND_URLS", "http://localhost:5173, http://127.0.0.1:5173")
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
