package config

import (
	"fmt"
	"strings"
)

// AuthMode selects how users authenticate.
type AuthMode string

const (
	// AuthModeOAuth authenticates against the enterprise OIDC provider.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses the in-process dev provider. Development only.
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for env parsing.
func (m *AuthMode) UnmarshalText(text []byte) error {
	mode := AuthMode(strings.ToLower(strings.TrimSpace(string(text))))
	switch mode {
	case AuthModeOAuth, AuthModeMock:
		*m = mode
		return nil
	default:
		return fmt.Errorf("invalid auth mode %q (valid options: oauth, mock)", string(text))
	}
}

// OAuthConfig holds OIDC client settings for enterprise SSO.
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile groups"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// IsConfigured reports whether the minimum OIDC settings are present.
func (o OAuthConfig) IsConfigured() bool {
	return o.DiscoveryURL != "" && o.ClientID != "" && o.ClientSecret != ""
}

// DevAuthConfig describes the synthetic identity issued by the mock
// provider, plus the credentials accepted for password login.
type DevAuthConfig struct {
	UserID      string   `env:"USER_ID"      envDefault:"dev-user"`
	FullName    string   `env:"FULL_NAME"    envDefault:"Dev User"`
	CompanyName string   `env:"COMPANY_NAME" envDefault:"Dev Company"`
	Username    string   `env:"USERNAME"     envDefault:"dev"`
	Password    string   `env:"PASSWORD"     envDefault:"dev"`
	Groups      []string `env:"GROUPS"       envSeparator:";" envDefault:"dashboard-admins"`
}

// AuthConfig groups authentication settings.
type AuthConfig struct {
	Mode    AuthMode      `env:"AUTH_MODE" envDefault:"mock"`
	OAuth   OAuthConfig   `envPrefix:"OAUTH_"`
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// AdminGroup and ManagerGroup map directory groups onto dashboard roles.
	// Users in neither group become members.
	AdminGroup   string `env:"AUTH_ADMIN_GROUP"   envDefault:"dashboard-admins"`
	ManagerGroup string `env:"AUTH_MANAGER_GROUP" envDefault:"dashboard-managers"`
}

// Sanitize trims whitespace from group names and identity fields.
func (a *AuthConfig) Sanitize() {
	a.AdminGroup = strings.TrimSpace(a.AdminGroup)
	a.ManagerGroup = strings.TrimSpace(a.ManagerGroup)

	groups := a.DevAuth.Groups[:0]
	for _, g := range a.DevAuth.Groups {
		if trimmed := strings.TrimSpace(g); trimmed != "" {
			groups = append(groups, trimmed)
		}
	}
	a.DevAuth.Groups = groups
}
