// Package config loads runtime settings from the environment (and an
// optional .env file) and opens the database and logger they describe.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port string
	Mode string
}

type DBConfig struct {
	Driver string
	DSN    string
}

// JWTConfig holds the token signing secret. It is read once at startup and
// must never be logged.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type AuthConfig struct {
	CookieName string
	BcryptCost int
}

type LogConfig struct {
	Level  string
	Format string
}

type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	Auth   AuthConfig
	Log    LogConfig
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	ttl, err := time.ParseDuration(getEnv("JWT_EXPIRES_IN", "1h"))
	if err != nil {
		return nil, fmt.Errorf("JWT_EXPIRES_IN: %w", err)
	}
	cost, err := strconv.Atoi(getEnv("BCRYPT_COST", "10"))
	if err != nil {
		return nil, fmt.Errorf("BCRYPT_COST: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Mode: getEnv("GIN_MODE", "debug"),
		},
		DB: DBConfig{
			Driver: getEnv("DB_DRIVER", "sqlite"),
			DSN:    getEnv("DB_DSN", "food_ordering.db"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "food_ordering_dev_secret_change_me"),
			TTL:    ttl,
		},
		Auth: AuthConfig{
			CookieName: getEnv("AUTH_COOKIE_NAME", "authToken"),
			BcryptCost: cost,
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
