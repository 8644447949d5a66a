package sessionmocks

// Package sessionmocks contains simple hand-written test doubles for the
// session ports. These are lightweight and suitable for unit tests without
// codegen.

import (
	"context"
	"fmt"
	"sync"
	"time"

	domainsession "github.com/syed-arham-coder/Pak-Turk-sub001/internal/domain/session"
	apperrors "github.com/syed-arham-coder/Pak-Turk-sub001/internal/errors"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.UserStore          = (*MemoryUserStore)(nil)
	_ ports.TokenStore         = (*MemoryTokenStore)(nil)
	_ ports.PictureCache       = (*MemoryPictureCache)(nil)
	_ ports.CredentialVerifier = (*StaticCredentialVerifier)(nil)
	_ ports.AuthProvider       = (*MockAuthProvider)(nil)
	_ ports.RoleMapper         = StaticRoleMapper{}
)

// MemoryUserStore is an in-memory persistence service for unit tests.
// Optional hook funcs let a test override individual calls.
type MemoryUserStore struct {
	mu       sync.Mutex
	users    map[string]domainsession.User
	pictures map[string][]byte

	GetUserFunc           func(ctx context.Context, id string) (domainsession.User, error)
	UpdateUserNameFunc    func(ctx context.Context, id, name string) (int64, error)
	UpdateUserPictureFunc func(ctx context.Context, id string, picture []byte) (int64, error)
	GetUserPictureFunc    func(ctx context.Context, id string) ([]byte, error)

	// Call counters for asserting "no network call" contracts.
	UpdateNameCalls    int
	UpdatePictureCalls int
	GetPictureCalls    int
}

// NewMemoryUserStore creates an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users:    make(map[string]domainsession.User),
		pictures: make(map[string][]byte),
	}
}

// Seed inserts a user row (and optional picture bytes).
func (m *MemoryUserStore) Seed(u domainsession.User, picture []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	if picture != nil {
		m.pictures[u.ID] = picture
	}
}

func (m *MemoryUserStore) GetUser(ctx context.Context, id string) (domainsession.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domainsession.User{}, apperrors.NotFoundf("user %s not found", id)
	}
	return u, nil
}

func (m *MemoryUserStore) UpdateUserName(ctx context.Context, id, name string) (int64, error) {
	m.mu.Lock()
	m.UpdateNameCalls++
	m.mu.Unlock()
	if m.UpdateUserNameFunc != nil {
		return m.UpdateUserNameFunc(ctx, id, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return 0, nil
	}
	u.FullName = name
	m.users[id] = u
	return 1, nil
}

func (m *MemoryUserStore) UpdateUserPicture(ctx context.Context, id string, picture []byte) (int64, error) {
	m.mu.Lock()
	m.UpdatePictureCalls++
	m.mu.Unlock()
	if m.UpdateUserPictureFunc != nil {
		return m.UpdateUserPictureFunc(ctx, id, picture)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return 0, nil
	}
	m.pictures[id] = append([]byte(nil), picture...)
	return 1, nil
}

func (m *MemoryUserStore) GetUserPicture(ctx context.Context, id string) ([]byte, error) {
	m.mu.Lock()
	m.GetPictureCalls++
	m.mu.Unlock()
	if m.GetUserPictureFunc != nil {
		return m.GetUserPictureFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.pictures[id]
	if !ok {
		return nil, apperrors.NotFoundf("picture for user %s not found", id)
	}
	return append([]byte(nil), data...), nil
}

// MemoryTokenStore is an in-memory token store for unit tests.
type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]domainsession.Token

	SaveFunc   func(ctx context.Context, tok domainsession.Token) error
	GetFunc    func(ctx context.Context, id string) (domainsession.Token, error)
	DeleteFunc func(ctx context.Context, id string) error
}

// NewMemoryTokenStore creates an empty in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[string]domainsession.Token)}
}

func (m *MemoryTokenStore) Save(ctx context.Context, tok domainsession.Token) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tok)
	}
	if tok.ID == "" {
		return fmt.Errorf("token ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[tok.ID] = tok
	return nil
}

func (m *MemoryTokenStore) Get(ctx context.Context, id string) (domainsession.Token, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tok, ok := m.tokens[id]
	if !ok {
		return domainsession.Token{}, apperrors.NotFoundf("token %s not found", id)
	}
	return tok, nil
}

func (m *MemoryTokenStore) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, id)
	return nil
}

// Len reports how many tokens are stored.
func (m *MemoryTokenStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tokens)
}

// MemoryPictureCache is an in-memory picture cache. TTLs are recorded but
// not enforced; unit tests only care about hit/miss/bust behavior.
type MemoryPictureCache struct {
	mu      sync.Mutex
	entries map[string][]byte

	// LastTTL records the TTL of the most recent Set.
	LastTTL time.Duration
	Deletes int
}

// NewMemoryPictureCache creates an empty picture cache.
func NewMemoryPictureCache() *MemoryPictureCache {
	return &MemoryPictureCache{entries: make(map[string][]byte)}
}

func (m *MemoryPictureCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.entries[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryPictureCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = append([]byte(nil), value...)
	m.LastTTL = ttl
	return nil
}

func (m *MemoryPictureCache) Delete(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deletes++
	_, ok := m.entries[key]
	delete(m.entries, key)
	return ok, nil
}

// StaticCredentialVerifier accepts a fixed username/password pair and
// returns the configured identity.
type StaticCredentialVerifier struct {
	Username string
	Password string
	Identity domainsession.Identity

	VerifyFunc func(ctx context.Context, creds domainsession.Credentials) (domainsession.Identity, error)
}

func (v *StaticCredentialVerifier) Verify(ctx context.Context, creds domainsession.Credentials) (domainsession.Identity, error) {
	if v.VerifyFunc != nil {
		return v.VerifyFunc(ctx, creds)
	}
	if creds.Username != v.Username || creds.Password != v.Password {
		return domainsession.Identity{}, apperrors.InvalidCredentials("username or password is incorrect")
	}
	identity := v.Identity
	if identity.ExpiresAt.IsZero() {
		identity.ExpiresAt = time.Now().Add(time.Hour)
	}
	return identity, nil
}

// MockAuthProvider simulates an SSO IdP with deterministic state/nonce values.
type MockAuthProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainsession.Identity, error)

	AuthURL         string
	DefaultIdentity domainsession.Identity

	callCount int
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL: "https://mock-idp/auth",
		DefaultIdentity: domainsession.Identity{
			UserID:   "mock-user-1",
			FullName: "Mock User",
			Groups:   []string{"members"},
		},
	}
}

func (m *MockAuthProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}
	m.callCount++
	return m.AuthURL, fmt.Sprintf("state-%d", m.callCount), fmt.Sprintf("nonce-%d", m.callCount), nil
}

func (m *MockAuthProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainsession.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}
	identity := m.DefaultIdentity
	identity.ExpiresAt = time.Now().Add(time.Hour)
	return identity, nil
}

// StaticRoleMapper maps groups by simple string membership rules.
type StaticRoleMapper struct {
	AdminGroup   string
	ManagerGroup string
}

func (m StaticRoleMapper) Map(groups []string) domainsession.Role {
	for _, g := range groups {
		if m.AdminGroup != "" && g == m.AdminGroup {
			return domainsession.RoleAdmin
		}
	}
	for _, g := range groups {
		if m.ManagerGroup != "" && g == m.ManagerGroup {
			return domainsession.RoleManager
		}
	}
	return domainsession.RoleMember
}
