package ports

// Package ports defines interfaces (hexagonal ports) between services and adapters.
// Implementations live in internal/adapters and internal/data; orchestration in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/cryptlocker/cryptlocker-ui-api/internal/domain/auth"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/backend"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/model"
)

// SessionStore persists the bearer token and active backend for a session id.
// Token and service are independent entries.
type SessionStore interface {
	// Load never fails: a missing or unreadable session yields an empty token and the default service.
	Load(ctx context.Context, sid string) domainauth.StoredAuth
	// Persist writes both entries. An empty token or service removes that entry; both empty is Clear.
	Persist(ctx context.Context, sid, token string, svc backend.Service, ttl time.Duration) error
	// Clear removes the token, the service and any profile snapshot.
	Clear(ctx context.Context, sid string) error

	// SaveProfile caches the normalized user next to the token.
	SaveProfile(ctx context.Context, sid string, user domainauth.User, ttl time.Duration) error
	// LoadProfile returns the cached user, or an error satisfying IsNotFound.
	LoadProfile(ctx context.Context, sid string) (domainauth.User, error)
}

// AuthAPI is the slice of the wallet backend used for authentication.
type AuthAPI interface {
	RegisterUser(ctx context.Context, svc backend.Service, req model.RegisterRequest) (model.RegisterResponse, error)
	LoginUser(ctx context.Context, svc backend.Service, username, password string) (model.LoginResponse, error)
	GetCurrentUser(ctx context.Context, sa domainauth.StoredAuth) (domainauth.RawUser, error)
}
