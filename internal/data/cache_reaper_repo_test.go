package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/model"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/testutil"
)

func TestCacheReaperRepo_DeleteTokenMappingsOlderThan(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		u := createCachedUser(t, db, testutil.NewCachedUser())
		now := time.Now().UTC()

		old := NewCacheUserRepoWithClock(db, NewManualClock(now.Add(-48*time.Hour)))
		fresh := NewCacheUserRepoWithClock(db, NewManualClock(now))
		require.NoError(t, old.MapToken(ctx, "old-1", u.Username, u.ID))
		require.NoError(t, old.MapToken(ctx, "old-2", u.Username, u.ID))
		require.NoError(t, fresh.MapToken(ctx, "fresh", u.Username, u.ID))

		reaper := NewCacheReaperRepo(db)
		n, err := reaper.DeleteTokenMappingsOlderThan(ctx, now.Add(-24*time.Hour), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = reaper.DeleteTokenMappingsOlderThan(ctx, now.Add(-24*time.Hour), 100)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		got, err := fresh.GetByToken(ctx, "fresh")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
	})
}

func TestCacheReaperRepo_DeleteDocumentsOlderThan(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		u := createCachedUser(t, db, testutil.NewCachedUser())
		now := time.Now().UTC()

		oldRepo := NewDocumentRepoWithClock(db, NewManualClock(now.Add(-10*24*time.Hour)))
		_, err := oldRepo.Create(ctx, model.CreateDocumentRequest{UserID: u.ID, FileName: "old.txt", FileContent: "b2xk"})
		require.NoError(t, err)
		newRepo := NewDocumentRepo(db)
		_, err = newRepo.Create(ctx, model.CreateDocumentRequest{UserID: u.ID, FileName: "new.txt", FileContent: "bmV3"})
		require.NoError(t, err)

		n, err := NewCacheReaperRepo(db).DeleteDocumentsOlderThan(ctx, now.Add(-24*time.Hour), 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		docs, err := newRepo.List(ctx, u.ID, nil)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "new.txt", docs[0].FileName)
	})
}

func TestCacheReaperRepo_InvalidBatchSize(t *testing.T) {
	_, err := NewCacheReaperRepo(nil).DeleteTokenMappingsOlderThan(context.Background(), time.Now(), 0)
	require.ErrorIs(t, err, ErrInvalidBatchSize)
}
