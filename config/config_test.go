package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMode_UnmarshalText(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    AuthMode
		expectError bool
	}{
		{name: "oauth", input: "oauth", expected: AuthModeOAuth},
		{name: "mock", input: "mock", expected: AuthModeMock},
		{name: "uppercase", input: "OAUTH", expected: AuthModeOAuth},
		{name: "padded", input: " mock ", expected: AuthModeMock},
		{name: "invalid", input: "saml", expectError: true},
		{name: "empty", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mode AuthMode
			err := mode.UnmarshalText([]byte(tt.input))
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
		})
	}
}

func TestPreferenceBackend_UnmarshalText(t *testing.T) {
	var backend PreferenceBackend
	require.NoError(t, backend.UnmarshalText([]byte("Postgres")))
	assert.Equal(t, PreferenceBackendPostgres, backend)

	require.Error(t, backend.UnmarshalText([]byte("dynamo")))
}

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, AuthModeMock, cfg.Auth.Mode)
	assert.Equal(t, "dashboard-admins", cfg.Auth.AdminGroup)
	assert.Equal(t, "dashboard-managers", cfg.Auth.ManagerGroup)
	assert.Equal(t, []string{"dashboard-admins"}, cfg.Auth.DevAuth.Groups)

	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "dashboard", cfg.Postgres.Name)
	assert.True(t, cfg.Postgres.RunMigrationsOnStart)

	assert.Equal(t, "localhost:6379", cfg.Redis.URI)
	assert.False(t, cfg.Redis.UseSentinel)

	assert.Equal(t, PreferenceBackendRedis, cfg.Locale.PreferenceBackend)
	assert.Equal(t, time.Hour, cfg.Locale.RateRefreshInterval)

	assert.Equal(t, 12*time.Hour, cfg.Session.TokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.Session.PictureTTL)
}

func TestAppConfig_ParsesEnvironment(t *testing.T) {
	t.Setenv("AUTH_MODE", "oauth")
	t.Setenv("OAUTH_CLIENT_ID", "dashboard-web")
	t.Setenv("OAUTH_CLIENT_SECRET", "secret")
	t.Setenv("OAUTH_DISCOVERY_URL", "https://idp.example.com/.well-known/openid-configuration")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "15432")
	t.Setenv("REDIS_URI", "redis.internal:6379")
	t.Setenv("LOCALE_RATE_URL", "https://rates.example.com/latest")
	t.Setenv("LOCALE_RATES_EXPR", "data.rates")
	t.Setenv("LOCALE_PREFERENCE_BACKEND", "postgres")
	t.Setenv("SESSION_TOKEN_TTL", "30m")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, AuthModeOAuth, cfg.Auth.Mode)
	assert.True(t, cfg.Auth.OAuth.IsConfigured())
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, 15432, cfg.Postgres.Port)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.URI)
	assert.Equal(t, "https://rates.example.com/latest", cfg.Locale.RateURL)
	assert.Equal(t, "data.rates", cfg.Locale.RatesExpr)
	assert.Equal(t, PreferenceBackendPostgres, cfg.Locale.PreferenceBackend)
	assert.Equal(t, 30*time.Minute, cfg.Session.TokenTTL)
}

func TestAppConfig_InvalidAuthMode(t *testing.T) {
	t.Setenv("AUTH_MODE", "ldap")

	var cfg AppConfig
	require.Error(t, env.Parse(&cfg))
}

func TestSanitize_Guardrails(t *testing.T) {
	cfg := AppConfig{
		Postgres: DBConfig{Port: -1, SSLMode: "  "},
		Redis: RedisConfig{
			URI:           "  redis:6379  ",
			SentinelNodes: []string{" a:26379 ", "", "b:26379"},
		},
		Locale:  LocaleConfig{RateRefreshInterval: time.Second},
		Session: SessionConfig{TokenTTL: -time.Hour},
		Auth: AuthConfig{
			AdminGroup: " admins ",
			DevAuth:    DevAuthConfig{Groups: []string{" g1 ", " "}},
		},
	}
	cfg.Sanitize()

	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "disable", cfg.Postgres.SSLMode)
	assert.Equal(t, "redis:6379", cfg.Redis.URI)
	assert.Equal(t, []string{"a:26379", "b:26379"}, cfg.Redis.SentinelNodes)
	assert.Equal(t, minRateRefreshInterval, cfg.Locale.RateRefreshInterval)
	assert.Equal(t, 12*time.Hour, cfg.Session.TokenTTL)
	assert.Equal(t, "admins", cfg.Auth.AdminGroup)
	assert.Equal(t, []string{"g1"}, cfg.Auth.DevAuth.Groups)
}

func TestDetectDevMode_NodeEnvFallback(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	cfg := AppConfig{}
	cfg.Sanitize()
	assert.True(t, cfg.IsDev)
}
