package devauth

// Package devauth provides config-driven login backends for local development:
// an AuthProvider that short-circuits the SSO flow and a CredentialVerifier
// with a single fixed username/password pair.

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	domainsession "github.com/syed-arham-coder/Pak-Turk-sub001/internal/domain/session"
	apperrors "github.com/syed-arham-coder/Pak-Turk-sub001/internal/errors"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/ports"
)

// Config controls the dev auth behavior. UserID and FullName are required;
// the credential pair is only needed when the verifier is used.
type Config struct {
	UserID          string
	FullName        string
	Groups          []string
	CompanyName     string
	Username        string
	Password        string
	SessionDuration time.Duration // default 8h when zero
}

// Provider implements ports.AuthProvider and ports.CredentialVerifier for
// local development. Begin short-circuits the OAuth flow by redirecting back
// to our own callback with locally generated state and nonce.
type Provider struct {
	identity        domainsession.Identity
	username        string
	password        string
	sessionDuration time.Duration
}

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.UserID == "" {
		return nil, errors.New("dev auth: UserID is required")
	}
	if cfg.FullName == "" {
		return nil, errors.New("dev auth: FullName is required")
	}
	dur := cfg.SessionDuration
	if dur == 0 {
		dur = 8 * time.Hour
	}
	return &Provider{
		identity: domainsession.Identity{
			UserID:      cfg.UserID,
			FullName:    cfg.FullName,
			Groups:      append([]string(nil), cfg.Groups...),
			CompanyName: cfg.CompanyName,
			ExpiresAt:   time.Now().Add(dur),
		},
		username:        cfg.Username,
		password:        cfg.Password,
		sessionDuration: dur,
	}, nil
}

// Begin returns a local callback URL and cryptographically secure state and nonce.
func (p *Provider) Begin(_ context.Context, _ ports.BeginInput) (string, string, string, error) {
	state, err := randomString(24)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}
	nonce, err := randomString(24)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}
	// Our standard handler expects GET /auth/callback?code=...&state=...
	authURL := "/auth/callback?code=dev&state=" + state
	return authURL, state, nonce, nil
}

// Exchange ignores the provided code/state/nonce (validation handled by the
// session service) and returns the dev identity with a fresh expiry. The
// shared identity is never written back, so concurrent exchanges are safe.
func (p *Provider) Exchange(_ context.Context, _ ports.ExchangeInput) (domainsession.Identity, error) {
	id := p.identity
	id.ExpiresAt = time.Now().Add(p.sessionDuration)
	return id, nil
}

// Verify checks creds against the configured pair and returns the dev identity.
func (p *Provider) Verify(_ context.Context, creds domainsession.Credentials) (domainsession.Identity, error) {
	if p.username == "" {
		return domainsession.Identity{}, errors.New("dev auth: credential login not configured")
	}
	userOK := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(p.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(p.password)) == 1
	if !userOK || !passOK {
		return domainsession.Identity{}, apperrors.InvalidCredentials("username or password is incorrect")
	}

	id := p.identity
	id.ExpiresAt = time.Now().Add(p.sessionDuration)
	return id, nil
}

func randomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	bLen := (n*3 + 3) / 4
	b := make([]byte, bLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) < n {
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:n], nil
}
