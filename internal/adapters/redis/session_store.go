package redis

// Package redis provides Redis-based adapters for CryptLocker sessions.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/cryptlocker/cryptlocker-ui-api/internal/domain/auth"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/backend"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/ports"
)

const (
	tokenSuffix   = ":token"
	serviceSuffix = ":service"
	profileSuffix = ":profile"
)

// SessionStore keeps each session's token, service and profile snapshot under
// separate keys: <prefix><sid>:token, <prefix><sid>:service, <prefix><sid>:profile.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	logger *slog.Logger
}

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStoreOptions configures a SessionStore.
type SessionStoreOptions struct {
	Prefix string
	Logger *slog.Logger
}

// NewSessionStore creates a Redis-based session store. A nil client makes every
// Load return defaults and every write fail.
func NewSessionStore(client redis.UniversalClient, opts SessionStoreOptions) *SessionStore {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "session:"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{client: client, prefix: prefix, logger: logger.With("component", "session_store")}
}

func (s *SessionStore) key(sid, suffix string) string { return s.prefix + sid + suffix }

// Load returns the stored token and service, falling back to the default service.
func (s *SessionStore) Load(ctx context.Context, sid string) domainauth.StoredAuth {
	out := domainauth.StoredAuth{Service: backend.DefaultService}
	if sid == "" || s.client == nil {
		return out
	}

	vals, err := s.client.MGet(ctx, s.key(sid, tokenSuffix), s.key(sid, serviceSuffix)).Result()
	if err != nil {
		s.logger.WarnContext(ctx, "session load failed", "error", err)
		return out
	}
	if tok, ok := vals[0].(string); ok {
		out.Token = tok
	}
	if svc, ok := vals[1].(string); ok {
		out.Service = backend.ParseService(svc)
	}
	return out
}

// Persist writes the token and service. An empty value removes its entry.
func (s *SessionStore) Persist(ctx context.Context, sid, token string, svc backend.Service, ttl time.Duration) error {
	if sid == "" {
		return errors.New("session ID cannot be empty")
	}
	if token == "" && svc == "" {
		return s.Clear(ctx, sid)
	}
	if s.client == nil {
		return errors.New("session store unavailable")
	}

	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		if token != "" {
			p.Set(ctx, s.key(sid, tokenSuffix), token, ttl)
		} else {
			p.Del(ctx, s.key(sid, tokenSuffix), s.key(sid, profileSuffix))
		}
		if svc != "" {
			p.Set(ctx, s.key(sid, serviceSuffix), string(svc), ttl)
		} else {
			p.Del(ctx, s.key(sid, serviceSuffix))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis persist session: %w", err)
	}
	return nil
}

// Clear removes every key belonging to the session.
func (s *SessionStore) Clear(ctx context.Context, sid string) error {
	if sid == "" || s.client == nil {
		return nil // Nothing to delete
	}
	err := s.client.Del(ctx, s.key(sid, tokenSuffix), s.key(sid, serviceSuffix), s.key(sid, profileSuffix)).Err()
	if err != nil {
		return fmt.Errorf("redis clear session: %w", err)
	}
	return nil
}

// SaveProfile stores the normalized user for the session.
func (s *SessionStore) SaveProfile(ctx context.Context, sid string, user domainauth.User, ttl time.Duration) error {
	if sid == "" {
		return errors.New("session ID cannot be empty")
	}
	if s.client == nil {
		return errors.New("session store unavailable")
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return s.client.Set(ctx, s.key(sid, profileSuffix), data, ttl).Err()
}

// LoadProfile returns the cached user or ErrNotFound.
func (s *SessionStore) LoadProfile(ctx context.Context, sid string) (domainauth.User, error) {
	if sid == "" || s.client == nil {
		return domainauth.User{}, ErrNotFound
	}
	data, err := s.client.Get(ctx, s.key(sid, profileSuffix)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.User{}, ErrNotFound
		}
		return domainauth.User{}, fmt.Errorf("redis get profile: %w", err)
	}
	var user domainauth.User
	if err := json.Unmarshal(data, &user); err != nil {
		return domainauth.User{}, fmt.Errorf("unmarshal profile: %w", err)
	}
	return user, nil
}

// ListSessionIDs scans for sessions that currently hold a token.
func (s *SessionStore) ListSessionIDs(ctx context.Context, limit int) ([]string, error) {
	if s.client == nil {
		return nil, errors.New("session store unavailable")
	}
	var ids []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*"+tokenSuffix, 100).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		ids = append(ids, k[len(s.prefix):len(k)-len(tokenSuffix)])
		if limit > 0 && len(ids) >= limit {
			break
		}
	}
	if err := iter.Err(); err != nil {
		return ids, fmt.Errorf("redis scan sessions: %w", err)
	}
	return ids, nil
}

// ErrNotFound is returned when a session profile is not found.
type notFoundError struct{}

func (notFoundError) Error() string { return "session not found" }

var ErrNotFound error = notFoundError{}

// IsNotFound reports whether err is ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
