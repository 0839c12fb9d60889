package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries the process settings, all read from the environment.
type Config struct {
	Port         string
	RedisURL     string
	NATSURL      string // empty disables the cross-instance broker
	StaticDir    string
	AllowOrigins []string
	FlushOnStart bool
}

// Load reads .env (when present) and the environment into a Config.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, reading environment variables")
	}

	return Config{
		Port:         envOr("PORT", "3000"),
		RedisURL:     envOr("REDIS_URL", "redis://localhost:6379"),
		NATSURL:      os.Getenv("NATS_URL"),
		StaticDir:    envOr("STATIC_DIR", "./static"),
		AllowOrigins: []string{envOr("ALLOW_ORIGIN", "http://localhost:3000")},
		FlushOnStart: os.Getenv("FLUSH_ON_START") == "true",
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
