package session

// Package session contains domain-level types for authentication and the
// per-tab session lifecycle. It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below; the sidebar is scoped by role.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
)

// Valid reports whether r is one of the closed set of role tags.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleMember:
		return true
	default:
		return false
	}
}

// User is the authenticated-user record owned by the session context while a
// session is active. ID and Role never change through profile operations.
type User struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Role        Role   `json:"role"`
	CompanyName string `json:"company_name,omitempty"`
	CompanyLogo string `json:"company_logo,omitempty"`
	// PictureRef is an opaque reference to image bytes held by the
	// persistence service. The bytes themselves are fetched on demand,
	// keyed by user ID.
	PictureRef string `json:"picture_ref,omitempty"`
}

// Credentials carry a username/password pair for the credential login path.
type Credentials struct {
	Username string
	Password string
}

// Validate checks the credentials have both parts present.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return errFieldRequired("username")
	}
	if c.Password == "" {
		return errFieldRequired("password")
	}
	return nil
}

// Identity represents the authenticated principal returned by a login
// provider. Adapters map provider-specific claims into this shape.
type Identity struct {
	UserID      string // stable user identifier
	FullName    string
	Groups      []string
	CompanyName string
	CompanyLogo string
	// Company-level locale defaults, used once right after login to seed
	// the localization context. Either may be empty.
	DefaultLanguage string
	DefaultCurrency string
	ExpiresAt       time.Time // absolute expiry from the provider
}

// Token is the stored session artifact that lets a restarted tab resolve
// straight back to Authenticated. ID is an opaque random identifier.
type Token struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the token's expiry has passed at now.
func (t Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// State is the session lifecycle phase.
type State string

const (
	// StateUnresolved means session validity is not yet known; protected
	// views stay unreachable until resolution completes.
	StateUnresolved State = "unresolved"
	// StateAuthenticated means a non-nil User is present.
	StateAuthenticated State = "authenticated"
	// StateAnonymous means no valid session exists.
	StateAnonymous State = "anonymous"
)

// Snapshot is the externally visible session state at a point in time.
// User is non-nil exactly when Phase is StateAuthenticated.
type Snapshot struct {
	Phase State
	User  *User
	// Err holds the last recoverable failure (network/server) so the UI
	// can offer a retry. Cleared on the next successful transition.
	Err error
}

// Authenticated reports whether the snapshot carries a logged-in user.
func (s Snapshot) Authenticated() bool {
	return s.Phase == StateAuthenticated && s.User != nil
}

type fieldError struct{ field string }

func (e fieldError) Error() string { return e.field + " is required" }

func errFieldRequired(field string) error { return fieldError{field: field} }
