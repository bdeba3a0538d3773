package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config is centralized process configuration. Infra values live here
// and are passed typed into the pieces that need them.
type Config struct {
	HTTPPort    string
	PostgresDSN string

	// JWTSecret signs session tokens. Required; there is no default.
	JWTSecret string

	// TokenTTL bounds session lifetime. Zero disables expiry.
	TokenTTL time.Duration
}

func Load() (Config, error) {
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=password dbname=jobbotron port=5432 sslmode=disable"
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	ttl := 24 * time.Hour
	if raw := os.Getenv("TOKEN_TTL_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours < 0 {
			return Config{}, errors.New("TOKEN_TTL_HOURS must be a non-negative integer")
		}
		ttl = time.Duration(hours) * time.Hour
	}

	return Config{
		HTTPPort:    port,
		PostgresDSN: dsn,
		JWTSecret:   secret,
		TokenTTL:    ttl,
	}, nil
}
