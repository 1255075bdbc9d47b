// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - Optional Infrastructure: PostgreSQL and Redis are used only when their URLs are set.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the gateway.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// MountPrefix is the sub-path every gateway page and API lives under.
	MountPrefix string `env:"MOUNT_PREFIX" envDefault:"/login"`

	// StudioPath is the downstream application entry reached after sign-in.
	StudioPath string `env:"STUDIO_PATH"  envDefault:"/studio/"`

	// PublicOrigin is the scheme://host put in redirect_to and callback URLs.
	// Empty means the request's own host.
	PublicOrigin string `env:"PUBLIC_ORIGIN"`

	// TrustProxyHeaders honours X-Forwarded-Host/Proto when PublicOrigin is empty.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	// Identity backend (GoTrue auth API + PostgREST data API behind one base URL)
	BackendURL            string `env:"BACKEND_URL,notEmpty"`
	BackendAnonKey        string `env:"BACKEND_ANON_KEY"`
	BackendServiceRoleKey string `env:"BACKEND_SERVICE_ROLE_KEY"`
	BackendJWTSecret      string `env:"BACKEND_JWT_SECRET"`

	// Feature flags
	GitHubEnabled      bool `env:"AUTH_GITHUB_ENABLED"  envDefault:"false"`
	GoogleEnabled      bool `env:"AUTH_GOOGLE_ENABLED"  envDefault:"false"`
	AdminCreateEnabled bool `env:"ADMIN_CREATE_ENABLED" envDefault:"false"`

	// Relational Database (PostgreSQL). Empty means the profile directory goes through the data API.
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis). Empty means PKCE flows are kept in memory.
	RedisURL string `env:"REDIS_URL"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`

	// DefaultLocale is used when neither the request nor the cookie names a language.
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"zh"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'notEmpty' is missing or blank.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize trims trailing slashes so paths can be concatenated safely.
func (c *Config) normalize() {
	c.MountPrefix = NormalizePrefix(c.MountPrefix)
	c.BackendURL = strings.TrimRight(strings.TrimSpace(c.BackendURL), "/")
	c.PublicOrigin = strings.TrimRight(strings.TrimSpace(c.PublicOrigin), "/")
	if c.StudioPath == "" {
		c.StudioPath = "/studio/"
	}
}

// NormalizePrefix returns prefix with a single leading slash and no trailing slash.
// The root prefix normalizes to the empty string.
func NormalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Origins returns the configured extra CORS origins.
func (c *Config) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
