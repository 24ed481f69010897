package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainauth "github.com/cryptlocker/cryptlocker-ui-api/internal/domain/auth"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/backend"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/model"
	apperrors "github.com/cryptlocker/cryptlocker-ui-api/internal/errors"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/ports"
)

// ErrNotAuthenticated is returned when a session carries no token.
var ErrNotAuthenticated = errors.New("not authenticated")

// UserSyncer copies a freshly logged-in user into the local cache.
type UserSyncer interface {
	SyncSessionUser(ctx context.Context, token string, user domainauth.User) error
}

// AuthSettings tunes AuthService.
type AuthSettings struct {
	SessionTTL     time.Duration
	DefaultService backend.Service
	Logger         *slog.Logger
	// Sync is optional; when nil logins are not mirrored locally.
	Sync UserSyncer
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	API      ports.AuthAPI      // Required
	Sessions ports.SessionStore // Required
	Settings AuthSettings
}

// AuthService runs the login, registration, restore and logout flows against the
// wallet backends and keeps the session store in step.
type AuthService struct {
	api      ports.AuthAPI
	sessions ports.SessionStore
	ttl      time.Duration
	fallback backend.Service
	logger   *slog.Logger
	sync     UserSyncer
	now      func() time.Time
}

// NewAuthService constructs an AuthService.
func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	if opts.API == nil {
		return nil, errors.New("AuthAPI is required")
	}
	if opts.Sessions == nil {
		return nil, errors.New("SessionStore is required")
	}
	ttl := opts.Settings.SessionTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	logger := opts.Settings.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		api:      opts.API,
		sessions: opts.Sessions,
		ttl:      ttl,
		fallback: opts.Settings.DefaultService.Or(backend.DefaultService),
		logger:   logger.With("component", "auth_service"),
		sync:     opts.Settings.Sync,
		now:      time.Now,
	}, nil
}

// AuthState is the resolved view of a session for one request.
//
// Loading is true when a token exists but the profile could not be fetched for a
// reason other than an auth rejection; callers must not treat it as logged out.
type AuthState struct {
	SessionID string
	Token     string
	Service   backend.Service
	User      *domainauth.User
	Loading   bool
}

// Authenticated reports whether the state carries a token.
func (s AuthState) Authenticated() bool { return s.Token != "" }

// Stored returns the token and backend for backend calls.
func (s AuthState) Stored() domainauth.StoredAuth {
	return domainauth.StoredAuth{Token: s.Token, Service: s.Service}
}

// Guard returns the input for route protection.
func (s AuthState) Guard() domainauth.GuardState {
	return domainauth.GuardState{Loading: s.Loading, User: s.User}
}

// State resolves a cookie session, preferring the cached profile over a backend
// round trip. Without a cached profile the session is restored.
func (s *AuthService) State(ctx context.Context, sid string) AuthState {
	if sid == "" {
		return AuthState{Service: s.fallback}
	}
	stored := s.sessions.Load(ctx, sid)
	if stored.Token == "" {
		return AuthState{SessionID: sid, Service: stored.Service.Or(s.fallback)}
	}
	if user, err := s.sessions.LoadProfile(ctx, sid); err == nil {
		return AuthState{SessionID: sid, Token: stored.Token, Service: stored.Service, User: &user}
	}
	return s.Restore(ctx, sid)
}

// StateForToken resolves a bearer token sent directly by an API client. Nothing is persisted.
func (s *AuthService) StateForToken(ctx context.Context, stored domainauth.StoredAuth) AuthState {
	stored.Service = stored.Service.Or(s.fallback)
	if stored.Token == "" {
		return AuthState{Service: stored.Service}
	}
	state, _ := s.fetchProfile(ctx, "", stored)
	return state
}

// Restore loads the session once and re-fetches the current user.
// A 401/403 clears the session. Any other failure keeps the token and leaves the
// state loading until a later Refresh succeeds.
func (s *AuthService) Restore(ctx context.Context, sid string) AuthState {
	state, _ := s.Refresh(ctx, sid)
	return state
}

// Refresh re-fetches the current user for the session, applying the same clearing
// rule as Restore. The returned error is the backend failure, if any.
func (s *AuthService) Refresh(ctx context.Context, sid string) (AuthState, error) {
	if sid == "" {
		return AuthState{Service: s.fallback}, ErrNotAuthenticated
	}
	stored := s.sessions.Load(ctx, sid)
	if stored.Token == "" {
		return AuthState{SessionID: sid, Service: stored.Service.Or(s.fallback)}, ErrNotAuthenticated
	}
	return s.fetchProfile(ctx, sid, stored)
}

func (s *AuthService) fetchProfile(ctx context.Context, sid string, stored domainauth.StoredAuth) (AuthState, error) {
	raw, err := s.api.GetCurrentUser(ctx, stored)
	if err != nil {
		if isAuthRejection(err) {
			if sid != "" {
				if clearErr := s.sessions.Clear(ctx, sid); clearErr != nil {
					s.logger.WarnContext(ctx, "failed to clear rejected session", "error", clearErr)
				}
			}
			return AuthState{SessionID: sid, Service: s.fallback}, fmt.Errorf("fetch current user: %w", err)
		}
		s.logger.WarnContext(ctx, "profile fetch failed; keeping session",
			"service", stored.Service, "error", err)
		return AuthState{SessionID: sid, Token: stored.Token, Service: stored.Service, Loading: true},
			fmt.Errorf("fetch current user: %w", err)
	}

	user := domainauth.NormalizeUser(raw)
	if sid != "" {
		if saveErr := s.sessions.SaveProfile(ctx, sid, user, s.sessionTTL(stored.Token)); saveErr != nil {
			s.logger.WarnContext(ctx, "failed to cache profile", "error", saveErr)
		}
	}
	return AuthState{SessionID: sid, Token: stored.Token, Service: stored.Service, User: &user}, nil
}

// LoginInput carries credentials for Login.
type LoginInput struct {
	// SessionID is the caller's current session, if any. It is discarded and replaced.
	SessionID string
	Username  string
	Password  string
	Service   backend.Service
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	SessionID   string          `json:"-"`
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	Service     backend.Service `json:"service"`
	User        domainauth.User `json:"user"`
}

// Login authenticates against the chosen backend and starts a fresh session.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if strings.TrimSpace(in.Username) == "" || in.Password == "" {
		return nil, apperrors.Validation("Username and password are required")
	}
	svc := in.Service.Or(s.fallback)

	resp, err := s.api.LoginUser(ctx, svc, in.Username, in.Password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if resp.AccessToken == "" {
		return nil, errors.New("login: backend returned no access token")
	}
	raw := resp.User
	if raw.Username == "" {
		// Some backends return only the token; the profile comes from /auth/me.
		raw, err = s.api.GetCurrentUser(ctx, domainauth.StoredAuth{Token: resp.AccessToken, Service: svc})
		if err != nil {
			return nil, fmt.Errorf("login: fetch current user: %w", err)
		}
	}
	user := domainauth.NormalizeUser(raw)

	if in.SessionID != "" {
		if clearErr := s.sessions.Clear(ctx, in.SessionID); clearErr != nil {
			s.logger.WarnContext(ctx, "failed to clear previous session", "error", clearErr)
		}
	}
	sid := generateSessionID()
	ttl := s.sessionTTL(resp.AccessToken)
	if err = s.sessions.Persist(ctx, sid, resp.AccessToken, svc, ttl); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	if err = s.sessions.SaveProfile(ctx, sid, user, ttl); err != nil {
		s.logger.WarnContext(ctx, "failed to cache profile", "error", err)
	}

	if s.sync != nil {
		if syncErr := s.sync.SyncSessionUser(ctx, resp.AccessToken, user); syncErr != nil {
			s.logger.WarnContext(ctx, "local cache sync after login failed",
				"username", user.Username, "error", syncErr)
		}
	}

	tokenType := resp.TokenType
	if tokenType == "" {
		tokenType = "bearer"
	}
	return &LoginResult{
		SessionID:   sid,
		AccessToken: resp.AccessToken,
		TokenType:   tokenType,
		Service:     svc,
		User:        user,
	}, nil
}

// RegisterResult pairs the backend's registration response with the login that followed it.
type RegisterResult struct {
	User  model.RegisterResponse
	Login *LoginResult
}

// Register creates the account on the chosen backend and then logs in with the same credentials.
func (s *AuthService) Register(ctx context.Context, sid string, req model.RegisterRequest, svc backend.Service) (*RegisterResult, error) {
	svc = svc.Or(s.fallback)
	created, err := s.api.RegisterUser(ctx, svc, req)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	login, err := s.Login(ctx, LoginInput{
		SessionID: sid,
		Username:  req.Username,
		Password:  req.Password,
		Service:   svc,
	})
	if err != nil {
		return nil, err
	}
	return &RegisterResult{User: created, Login: login}, nil
}

// Logout clears the token, the stored service and the cached profile.
func (s *AuthService) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := s.sessions.Clear(ctx, sid); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// sessionTTL bounds the configured TTL by the token's exp claim when it carries one.
// The signature is not checked; the backend remains the authority on validity.
func (s *AuthService) sessionTTL(token string) time.Duration {
	exp, ok := tokenExpiry(token)
	if !ok {
		return s.ttl
	}
	remaining := exp.Sub(s.now())
	switch {
	case remaining <= 0:
		return time.Minute
	case remaining < s.ttl:
		return remaining
	default:
		return s.ttl
	}
}

func tokenExpiry(token string) (time.Time, bool) {
	if strings.Count(token, ".") != 2 {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// generateSessionID returns a random UUID; it is URL-safe and opaque to clients.
func generateSessionID() string {
	return uuid.New().String()
}
