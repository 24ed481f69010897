package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domainauth "github.com/cryptlocker/cryptlocker-ui-api/internal/domain/auth"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/backend"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/model"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthAPI      = (*FakeAuthAPI)(nil)
	_ ports.SessionStore = (*MemorySessionStore)(nil)
)

// FakeAuthAPI simulates a wallet backend's auth endpoints.
// Users registered through RegisterUser can log in with their password.
type FakeAuthAPI struct {
	RegisterFunc    func(ctx context.Context, svc backend.Service, req model.RegisterRequest) (model.RegisterResponse, error)
	LoginFunc       func(ctx context.Context, svc backend.Service, username, password string) (model.LoginResponse, error)
	CurrentUserFunc func(ctx context.Context, sa domainauth.StoredAuth) (domainauth.RawUser, error)

	// LoginCalls counts LoginUser calls that reached the built-in behavior.
	LoginCalls int

	mu     sync.Mutex
	nextID int64
	users  map[string]fakeUser // by username
	tokens map[string]string   // token -> username
}

type fakeUser struct {
	raw      domainauth.RawUser
	password string
}

// ErrInvalidCredentials is returned by FakeAuthAPI.LoginUser for unknown users or wrong passwords.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnknownToken is returned by FakeAuthAPI.GetCurrentUser for tokens it never issued.
var ErrUnknownToken = errors.New("unknown token")

// NewFakeAuthAPI creates an empty FakeAuthAPI.
func NewFakeAuthAPI() *FakeAuthAPI {
	return &FakeAuthAPI{
		users:  make(map[string]fakeUser),
		tokens: make(map[string]string),
	}
}

// AddUser seeds a user with the given password and returns it.
func (f *FakeAuthAPI) AddUser(raw domainauth.RawUser, password string) domainauth.RawUser {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	if raw.ID == 0 {
		f.nextID++
		raw.ID = f.nextID
	}
	f.users[raw.Username] = fakeUser{raw: raw, password: password}
	return raw
}

func (f *FakeAuthAPI) init() {
	if f.users == nil {
		f.users = make(map[string]fakeUser)
	}
	if f.tokens == nil {
		f.tokens = make(map[string]string)
	}
}

func (f *FakeAuthAPI) RegisterUser(ctx context.Context, svc backend.Service, req model.RegisterRequest) (model.RegisterResponse, error) {
	if f.RegisterFunc != nil {
		return f.RegisterFunc(ctx, svc, req)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	if _, exists := f.users[req.Username]; exists {
		return model.RegisterResponse{}, fmt.Errorf("username %q already registered", req.Username)
	}
	f.nextID++
	raw := domainauth.RawUser{
		ID:       f.nextID,
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Role:     string(domainauth.RoleHolder),
	}
	f.users[req.Username] = fakeUser{raw: raw, password: req.Password}
	return raw, nil
}

func (f *FakeAuthAPI) LoginUser(ctx context.Context, svc backend.Service, username, password string) (model.LoginResponse, error) {
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, svc, username, password)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	f.LoginCalls++
	u, ok := f.users[username]
	if !ok || u.password != password {
		return model.LoginResponse{}, ErrInvalidCredentials
	}
	token := fmt.Sprintf("%s-token-%d", svc, f.LoginCalls)
	f.tokens[token] = username
	return model.LoginResponse{AccessToken: token, TokenType: "bearer", User: u.raw}, nil
}

func (f *FakeAuthAPI) GetCurrentUser(ctx context.Context, sa domainauth.StoredAuth) (domainauth.RawUser, error) {
	if f.CurrentUserFunc != nil {
		return f.CurrentUserFunc(ctx, sa)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	username, ok := f.tokens[sa.Token]
	if !ok {
		return domainauth.RawUser{}, ErrUnknownToken
	}
	return f.users[username].raw, nil
}

// MemorySessionStore is an in-memory session store for unit tests. TTLs are ignored.
type MemorySessionStore struct {
	mu       sync.Mutex
	tokens   map[string]string
	services map[string]backend.Service
	profiles map[string]domainauth.User
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		tokens:   make(map[string]string),
		services: make(map[string]backend.Service),
		profiles: make(map[string]domainauth.User),
	}
}

func (m *MemorySessionStore) Load(_ context.Context, sid string) domainauth.StoredAuth {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := domainauth.StoredAuth{Service: backend.DefaultService}
	if sid == "" {
		return out
	}
	out.Token = m.tokens[sid]
	if svc, ok := m.services[sid]; ok {
		out.Service = svc
	}
	return out
}

func (m *MemorySessionStore) Persist(ctx context.Context, sid, token string, svc backend.Service, _ time.Duration) error {
	if sid == "" {
		return errors.New("session ID cannot be empty")
	}
	if token == "" && svc == "" {
		return m.Clear(ctx, sid)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if token != "" {
		m.tokens[sid] = token
	} else {
		delete(m.tokens, sid)
		delete(m.profiles, sid)
	}
	if svc != "" {
		m.services[sid] = svc
	} else {
		delete(m.services, sid)
	}
	return nil
}

func (m *MemorySessionStore) Clear(_ context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, sid)
	delete(m.services, sid)
	delete(m.profiles, sid)
	return nil
}

func (m *MemorySessionStore) SaveProfile(_ context.Context, sid string, user domainauth.User, _ time.Duration) error {
	if sid == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[sid] = user
	return nil
}

func (m *MemorySessionStore) LoadProfile(_ context.Context, sid string) (domainauth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.profiles[sid]
	if !ok {
		return domainauth.User{}, ErrNotFound
	}
	return u, nil
}

// HasSession reports whether any entry exists for sid.
func (m *MemorySessionStore) HasSession(sid string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, tok := m.tokens[sid]
	_, svc := m.services[sid]
	return tok || svc
}

// ErrNotFound is returned by mocks when an entity is not present.
type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var ErrNotFound error = notFoundError{}
