package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/cryptlocker/cryptlocker-ui-api/config"
	domainauth "github.com/cryptlocker/cryptlocker-ui-api/internal/domain/auth"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/model"
	apperrors "github.com/cryptlocker/cryptlocker-ui-api/internal/errors"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/observability/metrics"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/observability/statsd"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/ports"
)

// passwordHashCost matches the cost used for locally registered users.
const passwordHashCost = 10

// Messages returned by the local cache routes.
const (
	MsgUsernameRequired     = "Username is required"
	MsgRegisterFieldsNeeded = "Username, email, and password are required"
	MsgUsernameExists       = "Username already exists"
	MsgUserNotRegistered    = "User not found. Please register first."
	MsgUserNotFound         = "User not found"
	MsgNoFileProvided       = "No file provided"
)

// CacheRepos groups the local cache repositories.
type CacheRepos struct {
	Users     ports.CacheUserRepository // Required
	Documents ports.DocumentRepository  // Required
	Mirror    ports.MirrorRepository    // Required
}

// CacheObservability groups optional logging and metrics for CacheService.
type CacheObservability struct {
	Logger  *slog.Logger
	Metrics statsd.Sink
}

// CacheServiceOptions groups dependencies for CacheService.
type CacheServiceOptions struct {
	Repos         CacheRepos
	Config        config.CacheConfig
	Observability CacheObservability
}

// CacheService owns the local Postgres cache: users synced from the backends,
// token bindings, uploaded documents and mirrored wallet resources.
type CacheService struct {
	users     ports.CacheUserRepository
	documents ports.DocumentRepository
	mirror    ports.MirrorRepository
	cfg       config.CacheConfig
	logger    *slog.Logger
	metrics   statsd.Sink
}

// NewCacheService constructs a CacheService.
func NewCacheService(opts CacheServiceOptions) (*CacheService, error) {
	if opts.Repos.Users == nil {
		return nil, errors.New("CacheUserRepository is required")
	}
	if opts.Repos.Documents == nil {
		return nil, errors.New("DocumentRepository is required")
	}
	if opts.Repos.Mirror == nil {
		return nil, errors.New("MirrorRepository is required")
	}
	logger := opts.Observability.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CacheService{
		users:     opts.Repos.Users,
		documents: opts.Repos.Documents,
		mirror:    opts.Repos.Mirror,
		cfg:       opts.Config,
		logger:    logger.With("component", "cache_service"),
		metrics:   opts.Observability.Metrics,
	}, nil
}

// MaxUploadBytes is the largest document UploadDocument accepts.
func (s *CacheService) MaxUploadBytes() int64 { return s.cfg.MaxUploadBytes }

// SyncUserInput describes a backend user to copy into the cache.
type SyncUserInput struct {
	Username string `json:"username"  validate:"required,max=64"`
	Email    string `json:"email"     validate:"omitempty,max=255"`
	FullName string `json:"full_name" validate:"omitempty,max=255"`
	Role     string `json:"role"      validate:"omitempty,max=32"`
	UserID   int64  `json:"user_id"`
}

// SyncUser creates the user if missing and binds token to it.
func (s *CacheService) SyncUser(ctx context.Context, token string, in SyncUserInput) (*model.CachedUser, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, apperrors.ValidationField("username", MsgUsernameRequired)
	}

	var user *model.CachedUser
	err := s.retry(ctx, "sync_user", func() error {
		u, err := s.ensureUser(ctx, username, in)
		if err != nil {
			return err
		}
		if err = s.users.MapToken(ctx, token, u.Username, u.ID); err != nil {
			return fmt.Errorf("map token: %w", err)
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SyncSessionUser mirrors a user that just logged in. Used as the login hook.
func (s *CacheService) SyncSessionUser(ctx context.Context, token string, user domainauth.User) error {
	_, err := s.SyncUser(ctx, token, SyncUserInput{
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     string(user.Role),
		UserID:   user.ID,
	})
	return err
}

func (s *CacheService) ensureUser(ctx context.Context, username string, in SyncUserInput) (*model.CachedUser, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ports.ErrUserNotFound) {
		return nil, fmt.Errorf("get user: %w", err)
	}

	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = string(domainauth.DefaultRole)
	}
	req := model.CreateCachedUserRequest{
		Username:     username,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: model.SyncedPasswordHash,
		Role:         role,
	}
	if name := strings.TrimSpace(in.FullName); name != "" {
		req.FullName = &name
	}
	u, err = s.users.Create(ctx, req)
	if err == nil {
		return u, nil
	}
	// Another request may have created the same user concurrently.
	if apperrors.IsConflict(err) && apperrors.GetField(err) == "username" {
		return s.users.GetByUsername(ctx, username)
	}
	return nil, fmt.Errorf("create user: %w", err)
}

// RegisterLocalInput creates a user directly in the cache with a hashed password.
type RegisterLocalInput struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name"`
	Role     string  `json:"role"`
}

// RegisterLocal stores a new user with a bcrypt password hash.
func (s *CacheService) RegisterLocal(ctx context.Context, in RegisterLocalInput) (*model.CachedUser, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return nil, apperrors.Validation(MsgRegisterFieldsNeeded)
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.Conflict(MsgUsernameExists)
	} else if !errors.Is(err, ports.ErrUserNotFound) {
		return nil, fmt.Errorf("get user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), passwordHashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = string(domainauth.DefaultRole)
	}
	u, err := s.users.Create(ctx, model.CreateCachedUserRequest{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         role,
	})
	if err != nil {
		if apperrors.IsConflict(err) && apperrors.GetField(err) == "username" {
			return nil, apperrors.Conflict(MsgUsernameExists)
		}
		return nil, err
	}
	return u, nil
}

// UploadInput is one file attached to the caller.
type UploadInput struct {
	FileName     string
	FileType     string
	Content      []byte
	CredentialID string
}

// UploadDocument stores the file base64-encoded against the token's user.
func (s *CacheService) UploadDocument(ctx context.Context, token string, in UploadInput) (int64, error) {
	if strings.TrimSpace(in.FileName) == "" {
		return 0, apperrors.Validation(MsgNoFileProvided)
	}
	user, err := s.UserByToken(ctx, token)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, apperrors.NotFound(MsgUserNotRegistered)
	}

	size := int64(len(in.Content))
	req := model.CreateDocumentRequest{
		UserID:      user.ID,
		FileName:    in.FileName,
		FileSize:    &size,
		FileContent: base64.StdEncoding.EncodeToString(in.Content),
	}
	if in.FileType != "" {
		req.FileType = &in.FileType
	}
	if in.CredentialID != "" {
		req.CredentialID = &in.CredentialID
	}
	id, err := s.documents.Create(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("store document: %w", err)
	}
	return id, nil
}

// ListDocuments returns the token user's documents, optionally for one credential.
func (s *CacheService) ListDocuments(ctx context.Context, token, credentialID string) ([]model.UploadedDocument, error) {
	user, err := s.UserByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound(MsgUserNotFound)
	}
	var filter *string
	if credentialID != "" {
		filter = &credentialID
	}
	return s.documents.List(ctx, user.ID, filter)
}

// Stats returns the dashboard counters for the token's user. Unknown users get zeros.
func (s *CacheService) Stats(ctx context.Context, token string) (model.DashboardStats, error) {
	user, err := s.UserByToken(ctx, token)
	if err != nil {
		return model.DashboardStats{}, err
	}
	if user == nil {
		return model.DashboardStats{}, nil
	}
	return s.mirror.Stats(ctx, user.ID)
}

// UserByToken resolves the cached user for a backend token. A nil user with a nil
// error means no active user matches.
func (s *CacheService) UserByToken(ctx context.Context, token string) (*model.CachedUser, error) {
	if token == "" {
		return nil, nil
	}
	u, err := s.users.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve user by token: %w", err)
	}
	return u, nil
}

// MirrorCredentials copies credentials into the cache for the token's user.
func (s *CacheService) MirrorCredentials(ctx context.Context, token string, items []model.Credential) error {
	return s.mirrorFor(ctx, token, "mirror_credentials", func(userID int64) error {
		return s.mirror.UpsertCredentials(ctx, userID, items)
	})
}

// MirrorConnections copies connections into the cache for the token's user.
func (s *CacheService) MirrorConnections(ctx context.Context, token string, items []model.Connection) error {
	return s.mirrorFor(ctx, token, "mirror_connections", func(userID int64) error {
		return s.mirror.UpsertConnections(ctx, userID, items)
	})
}

// MirrorOffers copies credential offers into the cache for the token's user.
func (s *CacheService) MirrorOffers(ctx context.Context, token string, items []model.CredentialOffer) error {
	return s.mirrorFor(ctx, token, "mirror_offers", func(userID int64) error {
		return s.mirror.UpsertOffers(ctx, userID, items)
	})
}

// MirrorProofRequests copies proof requests into the cache for the token's user.
func (s *CacheService) MirrorProofRequests(ctx context.Context, token string, items []model.ProofRequest) error {
	return s.mirrorFor(ctx, token, "mirror_proofs", func(userID int64) error {
		return s.mirror.UpsertProofRequests(ctx, userID, items)
	})
}

func (s *CacheService) mirrorFor(ctx context.Context, token, op string, fn func(userID int64) error) error {
	if len(token) == 0 {
		return nil
	}
	return s.retry(ctx, op, func() error {
		user, err := s.UserByToken(ctx, token)
		if err != nil {
			return err
		}
		if user == nil {
			return nil
		}
		return fn(user.ID)
	})
}

// retry runs op with a bounded constant backoff. Validation, conflict and
// not-found errors are not retried.
func (s *CacheService) retry(ctx context.Context, op string, fn func() error) error {
	attempts := 0
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(s.cfg.SyncBackoff), s.cfg.SyncRetries),
		ctx,
	)
	err := backoff.RetryNotify(func() error {
		attempts++
		err := fn()
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy, func(err error, wait time.Duration) {
		s.logger.DebugContext(ctx, "retrying cache operation", "operation", op, "error", err, "wait", wait)
	})
	metrics.EmitCacheOp(s.metrics, metrics.CacheOp{Operation: op, Attempts: attempts, Err: err})
	return err
}

func retryable(err error) bool {
	if isContextCancellation(err) {
		return false
	}
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeValidation, apperrors.ErrCodeConflict, apperrors.ErrCodeNotFound, apperrors.ErrCodeForeignKey:
		return false
	}
	return !errors.Is(err, ports.ErrUserNotFound)
}
