package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr           string
	DatabaseURL    string
	RedisURL       string
	KafkaBrokers   string
	JWTSigningKey  string
	AdminTokenHash string

	// DefaultCourseCapacity is copied onto new courses at creation.
	// Zero leaves courses unbounded.
	DefaultCourseCapacity uint64

	IdempotencyTTL  time.Duration
	ShutdownTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:            envOr("ACADEMY_ADDR", ":8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		KafkaBrokers:    os.Getenv("KAFKA_BROKERS"),
		JWTSigningKey:   os.Getenv("JWT_SIGNING_KEY"),
		AdminTokenHash:  os.Getenv("ADMIN_TOKEN_HASH"),
		IdempotencyTTL:  24 * time.Hour,
		ShutdownTimeout: 10 * time.Second,
	}

	if cfg.JWTSigningKey == "" {
		// Use a default for development - should be overridden in production
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}

	if v := os.Getenv("DEFAULT_COURSE_CAPACITY"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.DefaultCourseCapacity = n
		}
	}

	if v := os.Getenv("IDEMPOTENCY_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.IdempotencyTTL = d
		}
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
