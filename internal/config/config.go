package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const devSecret = "dev-secret-change-in-production"

// Config holds runtime configuration read from the environment.
type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Env         string `envconfig:"ENV" default:"development"`
	DatabaseDSN string `envconfig:"DATABASE_DSN" default:"root:password@tcp(127.0.0.1:3306)/authbase?parseTime=true"`

	JWTSecret string        `envconfig:"JWT_SECRET" default:"dev-secret-change-in-production"`
	JWTExpiry time.Duration `envconfig:"JWT_EXPIRY" default:"1h"`

	// RevocationCheck makes the auth middleware compare each presented token
	// against the user's stored session token, so logout revokes immediately.
	RevocationCheck bool `envconfig:"REVOCATION_CHECK" default:"false"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	if cfg.Env == "production" && cfg.JWTSecret == devSecret {
		return Config{}, errors.New("JWT_SECRET must be set in production environment")
	}

	return cfg, nil
}
