package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures client-level configuration shared by the portal and the CLI.
type Config struct {
	APIBaseURL      string        `env:"CAMPUS_API_BASE_URL"       envDefault:"http://localhost:8000/api"`
	HTTPTimeout     time.Duration `env:"CAMPUS_HTTP_TIMEOUT"       envDefault:"15s"`
	AdminAuthScheme string        `env:"CAMPUS_ADMIN_AUTH_SCHEME"  envDefault:"Token"`
	StoragePath     string        `env:"CAMPUS_STORAGE_PATH"`
	PortalAddr      string        `env:"CAMPUS_PORTAL_ADDR"        envDefault:":8090"`
	LogLevel        string        `env:"CAMPUS_LOG_LEVEL"          envDefault:"info"`
	Environment     string        `env:"CAMPUS_ENV"                envDefault:"development"`
	SingleFlight    bool          `env:"CAMPUS_SINGLE_FLIGHT"      envDefault:"false"`
}

// DefaultStorageFile is used when StoragePath is empty; it lives under the
// user's config directory.
const DefaultStorageFile = "uwevents/local.db"

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 15 * time.Second
	}
	if cfg.AdminAuthScheme == "" {
		cfg.AdminAuthScheme = "Token"
	}
	return cfg, nil
}
