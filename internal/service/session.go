package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	domainsession "github.com/syed-arham-coder/Pak-Turk-sub001/internal/domain/session"
	apperrors "github.com/syed-arham-coder/Pak-Turk-sub001/internal/errors"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/ports"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/state"
)

const (
	defaultTokenTTL = 12 * time.Hour
	// Pictures change infrequently; updates bust the cache key.
	defaultPictureTTL = 24 * time.Hour
)

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Users    ports.UserStore
	Verifier ports.CredentialVerifier
	Provider ports.AuthProvider // optional; enables the SSO login path
	Roles    ports.RoleMapper
	Tokens   ports.TokenStore
	Pictures ports.PictureCache
	Logger   *slog.Logger

	// OnAuthenticated runs after a successful password or SSO login with
	// the verified identity, so sibling contexts can adopt provider-issued
	// defaults (company language and currency). Not invoked on Resolve:
	// the derivation happens once, right after login.
	OnAuthenticated func(ctx context.Context, identity domainsession.Identity)

	TokenTTL   time.Duration // default 12h
	PictureTTL time.Duration // default 24h
}

// SessionService is the single source of truth for "who is logged in" in
// this tab/process. It owns the authenticated-user record, moves it through
// Unresolved → Authenticated | Anonymous, and serializes profile mutations
// against stale in-flight responses.
type SessionService struct {
	users    ports.UserStore
	verifier ports.CredentialVerifier
	provider ports.AuthProvider
	roles    ports.RoleMapper
	tokens   ports.TokenStore
	pictures ports.PictureCache
	logger   *slog.Logger

	onAuthenticated func(ctx context.Context, identity domainsession.Identity)

	tokenTTL   time.Duration
	pictureTTL time.Duration

	state *state.Container[domainsession.Snapshot]

	mu    sync.Mutex
	token domainsession.Token // zero when not authenticated

	fetchGroup singleflight.Group

	now func() time.Time
}

// NewSessionService constructs a SessionService in the Unresolved phase.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tokenTTL := opts.TokenTTL
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	pictureTTL := opts.PictureTTL
	if pictureTTL <= 0 {
		pictureTTL = defaultPictureTTL
	}
	return &SessionService{
		users:           opts.Users,
		verifier:        opts.Verifier,
		provider:        opts.Provider,
		onAuthenticated: opts.OnAuthenticated,
		roles:           opts.Roles,
		tokens:          opts.Tokens,
		pictures:        opts.Pictures,
		logger:          logger,
		tokenTTL:        tokenTTL,
		pictureTTL:      pictureTTL,
		state:           state.New(domainsession.Snapshot{Phase: domainsession.StateUnresolved}),
		now:             time.Now,
	}
}

// Snapshot returns the current session state.
func (s *SessionService) Snapshot() domainsession.Snapshot {
	return s.state.Get()
}

// Subscribe registers a listener for session state changes. The cancel
// function must be called when the consumer unmounts.
func (s *SessionService) Subscribe() (<-chan domainsession.Snapshot, func()) {
	return s.state.Subscribe()
}

// Token returns the active session token artifact, if any. The excluded
// transport layer uses it to manage its cookie.
func (s *SessionService) Token() (domainsession.Token, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token.ID != ""
}

// Resolve validates a stored token artifact and settles the Unresolved
// phase. An empty or unknown token settles to Anonymous; a transport
// failure keeps the phase Unresolved with a recoverable error so the UI can
// retry.
func (s *SessionService) Resolve(ctx context.Context, tokenID string) (domainsession.Snapshot, error) {
	if tokenID == "" {
		return s.toAnonymous(), nil
	}

	tok, err := s.tokens.Get(ctx, tokenID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return s.toAnonymous(), nil
		}
		return s.resolveFailed(err), fmt.Errorf("get token: %w", err)
	}
	if tok.Expired(s.now()) {
		if deleteErr := s.tokens.Delete(ctx, tokenID); deleteErr != nil {
			s.logger.WarnContext(ctx, "delete expired token failed", "error", deleteErr)
		}
		return s.toAnonymous(), nil
	}

	user, err := s.users.GetUser(ctx, tok.UserID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			// Identity no longer resolves server-side: the session is dead.
			if deleteErr := s.tokens.Delete(ctx, tokenID); deleteErr != nil {
				s.logger.WarnContext(ctx, "delete orphaned token failed", "error", deleteErr)
			}
			return s.toAnonymous(), nil
		}
		return s.resolveFailed(err), fmt.Errorf("resolve user: %w", err)
	}

	return s.toAuthenticated(user, tok), nil
}

// Login authenticates with a username/password pair. On success the session
// becomes Authenticated and a token artifact is stored so the next Resolve
// succeeds without re-entering credentials.
func (s *SessionService) Login(ctx context.Context, creds domainsession.Credentials) (*domainsession.User, error) {
	if err := creds.Validate(); err != nil {
		return nil, apperrors.ValidationField("credentials", err.Error())
	}
	if s.verifier == nil {
		return nil, apperrors.Validation("password login is not enabled")
	}

	identity, err := s.verifier.Verify(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("verify credentials: %w", err)
	}

	return s.establish(ctx, identity)
}

// BeginSSO initiates the enterprise SSO flow and returns the provider auth
// URL with state and nonce.
func (s *SessionService) BeginSSO(ctx context.Context, redirectURL string) (authURL, ssoState, nonce string, err error) {
	if s.provider == nil {
		return "", "", "", apperrors.Validation("SSO login is not configured")
	}
	if redirectURL == "" {
		return "", "", "", apperrors.ValidationField("redirectURL", "redirect URL is required")
	}
	authURL, ssoState, nonce, err = s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return "", "", "", fmt.Errorf("begin sso flow: %w", err)
	}
	return authURL, ssoState, nonce, nil
}

// LoginSSO completes the enterprise SSO flow. When the identity has no user
// row yet, the role comes from the provider's group claims.
func (s *SessionService) LoginSSO(ctx context.Context, in ports.ExchangeInput) (*domainsession.User, error) {
	if s.provider == nil {
		return nil, apperrors.Validation("SSO login is not configured")
	}
	if in.Code == "" {
		return nil, apperrors.ValidationField("code", "authorization code is required")
	}
	if in.State == "" {
		return nil, apperrors.ValidationField("state", "state parameter is required")
	}
	if in.Nonce == "" {
		return nil, apperrors.ValidationField("nonce", "nonce parameter is required")
	}

	identity, err := s.provider.Exchange(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	return s.establish(ctx, identity)
}

// establish turns a verified identity into an authenticated session: load
// the user row (role always comes from the persistence service when a row
// exists), mint and persist a token artifact, publish the new state.
func (s *SessionService) establish(ctx context.Context, identity domainsession.Identity) (*domainsession.User, error) {
	user, err := s.users.GetUser(ctx, identity.UserID)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("load user row: %w", err)
		}
		// First SSO visit: no row yet, derive the record from claims.
		if s.roles == nil {
			return nil, apperrors.Serverf("no user row for %s and no role mapper configured", identity.UserID)
		}
		user = domainsession.User{
			ID:          identity.UserID,
			FullName:    identity.FullName,
			Role:        s.roles.Map(identity.Groups),
			CompanyName: identity.CompanyName,
			CompanyLogo: identity.CompanyLogo,
		}
	}

	expiresAt := identity.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = s.now().Add(s.tokenTTL)
	}
	tok := domainsession.Token{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}
	if err := s.tokens.Save(ctx, tok); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}

	snap := s.toAuthenticated(user, tok)
	if s.onAuthenticated != nil {
		s.onAuthenticated(ctx, identity)
	}
	return snap.User, nil
}

// Logout always succeeds locally. Server-side invalidation is best effort:
// a failure is logged, never surfaced, because the user-facing effect of
// appearing logged out must still happen.
func (s *SessionService) Logout(ctx context.Context) {
	s.mu.Lock()
	tokenID := s.token.ID
	s.mu.Unlock()

	if tokenID != "" {
		if err := s.tokens.Delete(ctx, tokenID); err != nil {
			s.logger.WarnContext(ctx, "server-side logout failed", "error", err)
		}
	}

	s.toAnonymous()
}

// UpdateName changes the authenticated user's display name. The mutation is
// optimistic: the in-memory User reflects the change immediately, and the
// pre-mutation snapshot is restored on failure unless a newer mutation has
// superseded it.
func (s *SessionService) UpdateName(ctx context.Context, userID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.ValidationField("fullName", "name must not be empty")
	}

	prev, prevSeq := s.state.GetSeq()
	if !prev.Authenticated() || prev.User.ID != userID {
		return apperrors.NotFoundf("no active session for user %s", userID)
	}

	// Optimistic apply.
	optimistic := prev
	u := *prev.User
	u.FullName = name
	optimistic.User = &u
	optimistic.Err = nil
	appliedSeq, ok := s.state.SetIfSeq(prevSeq, optimistic)
	if !ok {
		// Another mutation slipped in between read and apply.
		return apperrors.Validation("a newer profile change is in progress")
	}

	affected, err := s.users.UpdateUserName(ctx, userID, name)
	if err != nil {
		s.revert(appliedSeq, prev)
		return s.mapWriteErr(err, "update name")
	}
	if affected == 0 {
		s.revert(appliedSeq, prev)
		return apperrors.NotFoundf("user %s not found", userID)
	}
	return nil
}

// UpdatePicture stores new profile picture bytes and busts the picture
// cache key so subsequent reads fetch the fresh bytes. Already rendered
// images are unaffected; only future fetches see the change.
func (s *SessionService) UpdatePicture(ctx context.Context, userID string, picture []byte) error {
	if len(picture) == 0 {
		return apperrors.ValidationField("picture", "picture bytes must not be empty")
	}

	prev, _ := s.state.GetSeq()
	if !prev.Authenticated() || prev.User.ID != userID {
		return apperrors.NotFoundf("no active session for user %s", userID)
	}

	affected, err := s.users.UpdateUserPicture(ctx, userID, picture)
	if err != nil {
		return s.mapWriteErr(err, "update picture")
	}
	if affected == 0 {
		return apperrors.NotFoundf("user %s not found", userID)
	}

	if s.pictures != nil {
		if _, deleteErr := s.pictures.Delete(ctx, pictureKey(userID)); deleteErr != nil {
			s.logger.WarnContext(ctx, "picture cache bust failed", "user_id", userID, "error", deleteErr)
		}
	}

	// Re-check identity before touching local state: a logout or re-login
	// may have completed while the write was in flight.
	s.state.Update(func(cur domainsession.Snapshot) domainsession.Snapshot {
		if !cur.Authenticated() || cur.User.ID != userID {
			return cur
		}
		u := *cur.User
		u.PictureRef = uuid.NewString()
		cur.User = &u
		return cur
	})
	return nil
}

// ProfilePicture returns the picture bytes for userID through a
// read-through cache. Concurrent fetches for the same user are collapsed
// into one backend call.
func (s *SessionService) ProfilePicture(ctx context.Context, userID string) ([]byte, error) {
	if userID == "" {
		return nil, apperrors.ValidationField("userID", "user ID is required")
	}

	key := pictureKey(userID)
	if s.pictures != nil {
		cached, err := s.pictures.Get(ctx, key)
		if err != nil {
			s.logger.WarnContext(ctx, "picture cache read failed", "user_id", userID, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	v, err, _ := s.fetchGroup.Do(key, func() (any, error) {
		data, fetchErr := s.users.GetUserPicture(ctx, userID)
		if fetchErr != nil {
			return nil, fetchErr
		}
		if s.pictures != nil {
			if cacheErr := s.pictures.Set(ctx, key, data, s.pictureTTL); cacheErr != nil {
				s.logger.WarnContext(ctx, "picture cache write failed", "user_id", userID, "error", cacheErr)
			}
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	data, ok := v.([]byte)
	if !ok {
		return nil, apperrors.Server("unexpected picture payload type")
	}
	return data, nil
}

// revert restores the pre-mutation snapshot only when no newer mutation has
// superseded the optimistic apply.
func (s *SessionService) revert(appliedSeq uint64, prev domainsession.Snapshot) {
	s.state.SetIfSeq(appliedSeq, prev)
}

// mapWriteErr normalizes persistence failures into the session error
// taxonomy: AppErrors pass through, anything else is a server failure.
func (s *SessionService) mapWriteErr(err error, op string) error {
	if code := apperrors.GetCode(err); code != "" {
		return err
	}
	return apperrors.Wrapf(err, apperrors.ErrCodeServer, "%s failed", op)
}

func (s *SessionService) toAuthenticated(user domainsession.User, tok domainsession.Token) domainsession.Snapshot {
	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()

	snap := domainsession.Snapshot{Phase: domainsession.StateAuthenticated, User: &user}
	s.state.Set(snap)
	return snap
}

func (s *SessionService) toAnonymous() domainsession.Snapshot {
	s.mu.Lock()
	s.token = domainsession.Token{}
	s.mu.Unlock()

	snap := domainsession.Snapshot{Phase: domainsession.StateAnonymous}
	s.state.Set(snap)
	return snap
}

// resolveFailed records a recoverable resolution failure without settling
// the Unresolved phase, so protected views stay gated and the UI can retry.
func (s *SessionService) resolveFailed(err error) domainsession.Snapshot {
	snap := domainsession.Snapshot{Phase: domainsession.StateUnresolved, Err: err}
	s.state.Set(snap)
	return snap
}

func pictureKey(userID string) string {
	return "picture:" + userID
}
