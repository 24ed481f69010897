package ports

import (
	"context"
	"errors"
	"time"

	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/model"
)

// ErrUserNotFound is returned by CacheUserRepository lookups that match no user.
var ErrUserNotFound = errors.New("user not found")

// CacheUserRepository stores local copies of backend users and the tokens that identify them.
type CacheUserRepository interface {
	GetByUsername(ctx context.Context, username string) (*model.CachedUser, error)
	Create(ctx context.Context, req model.CreateCachedUserRequest) (*model.CachedUser, error)
	List(ctx context.Context, limit, offset int) ([]*model.CachedUser, error)

	// MapToken upserts the token → user binding.
	MapToken(ctx context.Context, token, username string, userID int64) error
	// GetByToken resolves an active user by token mapping, then numeric id, then username.
	GetByToken(ctx context.Context, token string) (*model.CachedUser, error)
}

// DocumentRepository stores uploaded documents.
type DocumentRepository interface {
	Create(ctx context.Context, req model.CreateDocumentRequest) (int64, error)
	// List returns documents for the user, newest first, optionally restricted to one credential.
	List(ctx context.Context, userID int64, credentialID *string) ([]model.UploadedDocument, error)
}

// MirrorRepository copies backend resources into the local cache.
type MirrorRepository interface {
	UpsertCredentials(ctx context.Context, userID int64, creds []model.Credential) error
	UpsertConnections(ctx context.Context, userID int64, conns []model.Connection) error
	UpsertOffers(ctx context.Context, userID int64, offers []model.CredentialOffer) error
	UpsertProofRequests(ctx context.Context, userID int64, proofs []model.ProofRequest) error
	Stats(ctx context.Context, userID int64) (model.DashboardStats, error)
}

// CacheReaperRepository prunes stale cache rows in bounded batches.
type CacheReaperRepository interface {
	DeleteTokenMappingsOlderThan(ctx context.Context, cutoff time.Time, limit int) (int64, error)
	DeleteDocumentsOlderThan(ctx context.Context, cutoff time.Time, limit int) (int64, error)
}
