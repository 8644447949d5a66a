package ports

// Package ports defines interfaces (hexagonal ports) for the session and
// localization cores. Implementations live in internal/adapters;
// orchestration in internal/service.

import (
	"context"

	domainsession "github.com/syed-arham-coder/Pak-Turk-sub001/internal/domain/session"
)

// UserStore is the persistence service seen from the session core: an opaque
// async key-value-by-id service over user rows. Reads are idempotent on
// retry; writes are not and must not be auto-retried.
type UserStore interface {
	// GetUser fetches the user row for id. NotFound when the identity no
	// longer resolves server-side.
	GetUser(ctx context.Context, id string) (domainsession.User, error)

	// UpdateUserName writes a new display name and returns the affected
	// row count (0 means the row is gone).
	UpdateUserName(ctx context.Context, id, name string) (int64, error)

	// UpdateUserPicture writes new picture bytes and returns the affected
	// row count.
	UpdateUserPicture(ctx context.Context, id string, picture []byte) (int64, error)

	// GetUserPicture fetches the picture bytes for id. NotFound when the
	// user has none.
	GetUserPicture(ctx context.Context, id string) ([]byte, error)
}

// CredentialVerifier checks a username/password pair against the backend and
// returns the authenticated identity.
type CredentialVerifier interface {
	Verify(ctx context.Context, creds domainsession.Credentials) (domainsession.Identity, error)
}

// BeginInput carries inputs for initiating an SSO auth flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the SSO code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// AuthProvider initiates and completes an SSO authentication flow against an IdP.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainsession.Identity, error)
}

// RoleMapper maps provider groups to application roles.
type RoleMapper interface {
	Map(groups []string) domainsession.Role
}

// TokenStore persists and retrieves session token artifacts so a restarted
// tab can resolve straight back to Authenticated.
type TokenStore interface {
	Save(ctx context.Context, tok domainsession.Token) error
	Get(ctx context.Context, id string) (domainsession.Token, error)
	Delete(ctx context.Context, id string) error
}
