// Package config defines the application configuration schema.
//
// Configuration is read from environment variables via caarlos0/env.
// Every section carries an envPrefix so related variables group together
// (DB_HOST, REDIS_URI, LOCALE_RATE_URL, and so on). Call Sanitize after
// parsing to normalise values and enforce safe defaults.
package config

import (
	"os"
	"strings"
)

// AppConfig is the root configuration for the dashboard backend.
type AppConfig struct {
	// IsDev enables development behaviour such as relaxed auth defaults.
	IsDev bool `env:"IS_DEV" envDefault:"false"`

	Auth     AuthConfig
	Postgres DBConfig      `envPrefix:"DB_"`
	Redis    RedisConfig   `envPrefix:"REDIS_"`
	Locale   LocaleConfig  `envPrefix:"LOCALE_"`
	Session  SessionConfig `envPrefix:"SESSION_"`
}

// Sanitize applies guardrails across all configuration sections.
func (c *AppConfig) Sanitize() {
	c.detectDevMode()
	c.Auth.Sanitize()
	c.Postgres.Sanitize()
	c.Redis.Sanitize()
	c.Locale.Sanitize()
	c.Session.Sanitize()
}

// detectDevMode falls back to NODE_ENV when IS_DEV is not set, so the
// backend agrees with the frontend toolchain about which mode it is in.
func (c *AppConfig) detectDevMode() {
	if c.IsDev {
		return
	}
	if strings.EqualFold(os.Getenv("NODE_ENV"), "development") {
		c.IsDev = true
	}
}
