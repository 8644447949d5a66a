package config

import (
	"fmt"
	"strings"
	"time"
)

// PreferenceBackend selects where locale preferences are persisted.
type PreferenceBackend string

const (
	// PreferenceBackendRedis stores locale preferences in Redis.
	PreferenceBackendRedis PreferenceBackend = "redis"
	// PreferenceBackendPostgres stores locale preferences in PostgreSQL.
	PreferenceBackendPostgres PreferenceBackend = "postgres"
)

// UnmarshalText implements encoding.TextUnmarshaler for env parsing.
func (b *PreferenceBackend) UnmarshalText(text []byte) error {
	backend := PreferenceBackend(strings.ToLower(strings.TrimSpace(string(text))))
	switch backend {
	case PreferenceBackendRedis, PreferenceBackendPostgres:
		*b = backend
		return nil
	default:
		return fmt.Errorf("invalid preference backend %q (valid options: redis, postgres)", string(text))
	}
}

// LocaleConfig controls translations and exchange rates.
type LocaleConfig struct {
	// RateURL is the exchange rate endpoint. When empty, currency
	// formatting runs without conversion until rates are loaded another way.
	RateURL string `env:"RATE_URL"`

	// RatesExpr is a JMESPath expression locating the code-to-rate object
	// inside the rate endpoint's response. Empty means the response body
	// is the rate object itself.
	RatesExpr string `env:"RATES_EXPR"`

	// RateRefreshInterval is how often rates are re-fetched in the background.
	RateRefreshInterval time.Duration `env:"RATE_REFRESH_INTERVAL" envDefault:"1h"`

	PreferenceBackend PreferenceBackend `env:"PREFERENCE_BACKEND" envDefault:"redis"`
}

const minRateRefreshInterval = time.Minute

// Sanitize enforces a sane refresh cadence and defaults the backend.
func (l *LocaleConfig) Sanitize() {
	l.RateURL = strings.TrimSpace(l.RateURL)
	l.RatesExpr = strings.TrimSpace(l.RatesExpr)
	if l.RateRefreshInterval < minRateRefreshInterval {
		l.RateRefreshInterval = minRateRefreshInterval
	}
	if l.PreferenceBackend == "" {
		l.PreferenceBackend = PreferenceBackendRedis
	}
}

// SessionConfig controls session token and profile picture lifetimes.
type SessionConfig struct {
	TokenTTL   time.Duration `env:"TOKEN_TTL"   envDefault:"12h"`
	PictureTTL time.Duration `env:"PICTURE_TTL" envDefault:"24h"`
}

// Sanitize replaces non-positive lifetimes with defaults.
func (s *SessionConfig) Sanitize() {
	if s.TokenTTL <= 0 {
		s.TokenTTL = 12 * time.Hour
	}
	if s.PictureTTL <= 0 {
		s.PictureTTL = 24 * time.Hour
	}
}
