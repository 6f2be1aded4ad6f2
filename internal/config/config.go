// Package config загружает конфигурацию приложения из переменных окружения.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Значения по умолчанию
const (
	DefaultServerAddr   = ":8080"
	DefaultDatabasePath = "userhub.db"
	DefaultAccessTTL    = 5 * time.Minute
	DefaultRefreshTTL   = 365 * 24 * time.Hour
	DefaultPageSize     = 15
)

// Config хранит конфигурацию приложения.
// Читается из окружения один раз при старте и дальше не меняется.
type Config struct {
	// Server
	ServerAddr string

	// Database
	DatabasePath string

	// Tokens
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Profile directory
	PageSize int
}

// Load читает Config из переменных окружения.
// Все отсутствующие обязательные переменные сообщаются одной ошибкой.
func Load() (*Config, error) {
	cfg := &Config{
		ServerAddr:   DefaultServerAddr,
		DatabasePath: DefaultDatabasePath,
		AccessTTL:    DefaultAccessTTL,
		RefreshTTL:   DefaultRefreshTTL,
		PageSize:     DefaultPageSize,
	}

	var missing []string

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.ServerAddr = v
	}

	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}

	if v := os.Getenv("ACCESS_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ACCESS_TOKEN_TTL: %w", err)
		}
		cfg.AccessTTL = d
	}

	if v := os.Getenv("REFRESH_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REFRESH_TOKEN_TTL: %w", err)
		}
		cfg.RefreshTTL = d
	}

	if v := os.Getenv("PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid PAGE_SIZE: %q", v)
		}
		cfg.PageSize = n
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}
