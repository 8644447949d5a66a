package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/syed-arham-coder/Pak-Turk-sub001/config"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/adapters/devauth"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/adapters/oidc"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/ports"
)

// authComponents bundles the provider and optional credential verifier for
// the configured auth mode. Verifier is nil in oauth mode, where password
// login is not offered.
type authComponents struct {
	Provider ports.AuthProvider
	Verifier ports.CredentialVerifier
}

func buildAuthComponents(cfg config.AuthConfig, logger *slog.Logger) (authComponents, error) {
	switch cfg.Mode {
	case config.AuthModeMock:
		return buildDevAuth(cfg.DevAuth, logger)
	case config.AuthModeOAuth:
		return buildOIDCAuth(cfg.OAuth)
	default:
		return authComponents{}, fmt.Errorf("unsupported auth mode %q", cfg.Mode)
	}
}

func buildDevAuth(cfg config.DevAuthConfig, logger *slog.Logger) (authComponents, error) {
	prov, err := devauth.NewProvider(devauth.Config{
		UserID:      cfg.UserID,
		FullName:    cfg.FullName,
		CompanyName: cfg.CompanyName,
		Groups:      cfg.Groups,
		Username:    cfg.Username,
		Password:    cfg.Password,
	})
	if err != nil {
		return authComponents{}, fmt.Errorf("create dev auth provider: %w", err)
	}

	if logger != nil {
		logger.Warn("mock auth mode enabled; do not use in production", "user_id", cfg.UserID)
	}

	return authComponents{Provider: prov, Verifier: prov}, nil
}

func buildOIDCAuth(cfg config.OAuthConfig) (authComponents, error) {
	if !cfg.IsConfigured() {
		return authComponents{}, fmt.Errorf(
			"oauth mode requires OAUTH_DISCOVERY_URL, OAUTH_CLIENT_ID, and OAUTH_CLIENT_SECRET (discovery_url_empty=%t client_id_empty=%t client_secret_empty=%t)",
			cfg.DiscoveryURL == "", cfg.ClientID == "", cfg.ClientSecret == "",
		)
	}

	prov, err := oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scope:        cfg.Scope,
		DiscoveryURL: cfg.DiscoveryURL,
	})
	if err != nil {
		return authComponents{}, fmt.Errorf("create oidc provider: %w", err)
	}

	return authComponents{Provider: prov}, nil
}
