package config

import "strings"

// DBConfig contains PostgreSQL connection configuration.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"dashboard"`
	Password string `env:"PASSWORD" envDefault:"dashboard"`
	Name     string `env:"NAME"     envDefault:"dashboard"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"`

	// RunMigrationsOnStart applies pending migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// Sanitize normalises connection parameters.
func (d *DBConfig) Sanitize() {
	d.Host = strings.TrimSpace(d.Host)
	d.SSLMode = strings.TrimSpace(d.SSLMode)
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.Port <= 0 {
		d.Port = 5432
	}
}

// RedisConfig contains Redis connection configuration. Direct connections
// use URI; sentinel deployments set UseSentinel with the sentinel fields.
type RedisConfig struct {
	URI      string `env:"URI"      envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`

	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envSeparator:","`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"`
}

// Sanitize trims addresses and drops empty sentinel entries.
func (r *RedisConfig) Sanitize() {
	r.URI = strings.TrimSpace(r.URI)

	nodes := r.SentinelNodes[:0]
	for _, n := range r.SentinelNodes {
		if trimmed := strings.TrimSpace(n); trimmed != "" {
			nodes = append(nodes, trimmed)
		}
	}
	r.SentinelNodes = nodes
}
