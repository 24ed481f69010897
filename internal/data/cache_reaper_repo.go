package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cryptlocker/cryptlocker-ui-api/internal/data/pgxutil"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/ports"
)

var _ ports.CacheReaperRepository = (*CacheReaperRepo)(nil)

// Advisory lock keys for pg_try_advisory_xact_lock(major, minor).
const (
	advisoryLockReaperMajor         = 2000
	advisoryLockReaperTokenMappings = 1
	advisoryLockReaperUploadedDocs  = 2
)

// CacheReaperRepo prunes stale rows from the local cache.
type CacheReaperRepo struct {
	DB *sql.DB
}

// NewCacheReaperRepo creates a CacheReaperRepo.
func NewCacheReaperRepo(db *sql.DB) *CacheReaperRepo {
	return &CacheReaperRepo{DB: db}
}

// DeleteTokenMappingsOlderThan removes up to limit token mappings not refreshed since cutoff.
// Returns 0 without error when another instance holds the lock.
func (r *CacheReaperRepo) DeleteTokenMappingsOlderThan(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	return r.deleteBatch(ctx, advisoryLockReaperTokenMappings, `
		DELETE FROM token_mappings
		WHERE id IN (
			SELECT id FROM token_mappings
			WHERE updated_at < $1
			ORDER BY updated_at
			LIMIT $2
		)`, cutoff, limit)
}

// DeleteDocumentsOlderThan removes up to limit uploaded documents created before cutoff.
func (r *CacheReaperRepo) DeleteDocumentsOlderThan(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	return r.deleteBatch(ctx, advisoryLockReaperUploadedDocs, `
		DELETE FROM uploaded_documents
		WHERE id IN (
			SELECT id FROM uploaded_documents
			WHERE created_at < $1
			ORDER BY created_at
			LIMIT $2
		)`, cutoff, limit)
}

func (r *CacheReaperRepo) deleteBatch(ctx context.Context, lockMinor int, query string, cutoff time.Time, limit int) (int64, error) {
	if limit <= 0 {
		return 0, ErrInvalidBatchSize
	}

	var rowsAffected int64
	err := pgxutil.WithSQLTx(ctx, r.DB, func(tx *sql.Tx) error {
		var locked bool
		if err := tx.QueryRowContext(ctx, "SELECT pg_try_advisory_xact_lock($1, $2)",
			advisoryLockReaperMajor, lockMinor).Scan(&locked); err != nil {
			return fmt.Errorf("acquire advisory lock: %w", err)
		}
		if !locked {
			return nil
		}

		res, err := tx.ExecContext(ctx, query, cutoff.UTC(), limit)
		if err != nil {
			return fmt.Errorf("delete stale rows: %w", err)
		}
		ra, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		rowsAffected = ra
		return nil
	})
	if err != nil {
		return 0, err
	}
	return rowsAffected, nil
}
