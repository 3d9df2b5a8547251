package config

import (
	"os"
	"strings"
)

// Config is the process configuration, read from the environment
// (optionally seeded from a .env file by the entrypoint).
type Config struct {
	Addr           string
	LogLevel       string
	AllowedOrigins []string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads the configuration with defaults suitable for local play.
func Load() Config {
	origins := strings.Split(getenv("ALLOWED_ORIGINS", "*"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return Config{
		Addr:           ":" + getenv("PORT", "8080"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		AllowedOrigins: origins,
	}
}
