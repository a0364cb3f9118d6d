// Package config loads the service settings from the environment, reading a .env file first
// when one exists.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"inotecloud/utils"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

var ErrMissingSecret = errors.New("JWT_SECRET_KEY is not set")

type AuthConfig struct {
	Secret           string
	RegisterTokenTTL time.Duration
	LoginTokenTTL    time.Duration
	ExpiryWarning    time.Duration
	BcryptCost       int
}

type CORSConfig struct {
	AllowedOrigins []string
	Strict         bool
}

type Config struct {
	Port             string
	GinMode          string
	LogLevel         string
	LogPretty        bool
	StoreDriver      string
	RedisURL         string
	MaxBodyBytes     int64
	StrictNoteDelete bool
	Auth             AuthConfig
	CORS             CORSConfig
	Database         DatabaseConfig
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:             utils.GetEnvAsString("PORT", "5000"),
		GinMode:          utils.GetEnvAsString("GIN_MODE", "release"),
		LogLevel:         utils.GetEnvAsString("LOG_LEVEL", "info"),
		LogPretty:        utils.GetEnvAsBool("LOG_PRETTY", false),
		StoreDriver:      utils.GetEnvAsString("STORE_DRIVER", StoreMongo),
		RedisURL:         os.Getenv("REDIS_URL"),
		MaxBodyBytes:     utils.GetEnvAsInt64("MAX_BODY_BYTES", 1<<20),
		StrictNoteDelete: utils.GetEnvAsBool("NOTES_STRICT_DELETE", false),
		Auth: AuthConfig{
			Secret:           utils.GetEnvFirst("", "JWT_SECRET_KEY", "SECRET_KEY"),
			RegisterTokenTTL: utils.GetEnvAsDuration("REGISTER_TOKEN_TTL", time.Hour),
			LoginTokenTTL:    utils.GetEnvAsDuration("LOGIN_TOKEN_TTL", 24*time.Hour),
			ExpiryWarning:    utils.GetEnvAsDuration("TOKEN_EXPIRY_WARNING", 10*time.Minute),
			BcryptCost:       utils.GetEnvAsInt("BCRYPT_COST", bcrypt.DefaultCost),
		},
		CORS: CORSConfig{
			AllowedOrigins: utils.GetEnvAsStringSlice("CORS_ALLOWED_ORIGINS",
				[]string{"http://localhost:3000", "http://localhost:5173"}),
			Strict: utils.GetEnvAsBool("CORS_STRICT", false),
		},
		Database: LoadDatabaseConfig(),
	}

	if frontend := os.Getenv("FRONTEND_URL"); frontend != "" {
		cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, frontend)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Auth.Secret == "" {
		return ErrMissingSecret
	}
	if c.Auth.RegisterTokenTTL <= 0 || c.Auth.LoginTokenTTL <= 0 {
		return errors.New("token TTLs must be positive")
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	switch c.StoreDriver {
	case StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}
