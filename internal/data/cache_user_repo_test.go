package data

import (
	"context"
	"database/sql"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/model"
	apperrors "github.com/cryptlocker/cryptlocker-ui-api/internal/errors"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/testutil"
)

func createCachedUser(t *testing.T, db *sql.DB, b *testutil.CachedUserBuilder) *model.CachedUser {
	t.Helper()
	u, err := NewCacheUserRepo(db).Create(context.Background(), b.Build())
	require.NoError(t, err)
	return u
}

func TestCacheUserRepo_CreateAndGet(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewCacheUserRepo(db)

		u, err := repo.Create(ctx, testutil.NewCachedUser().WithUsername("alice").WithFullName("Alice A").Build())
		require.NoError(t, err)
		assert.Positive(t, u.ID)
		assert.Equal(t, "alice", u.Username)
		assert.Equal(t, "holder", u.Role)
		assert.True(t, u.IsActive)
		require.NotNil(t, u.FullName)
		assert.Equal(t, "Alice A", *u.FullName)

		got, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)

		_, err = repo.GetByUsername(ctx, "nobody")
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestCacheUserRepo_Create_DuplicateUsername(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewCacheUserRepo(db)

		createCachedUser(t, db, testutil.NewCachedUser().WithUsername("bob"))
		_, err := repo.Create(ctx, testutil.NewCachedUser().WithUsername("bob").Build())
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
		assert.Equal(t, "username", apperrors.GetField(err))
	})
}

func TestCacheUserRepo_Create_EmptyEmailsDoNotCollide(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		a := createCachedUser(t, db, testutil.NewCachedUser().WithEmail(""))
		b := createCachedUser(t, db, testutil.NewCachedUser().WithEmail(""))
		assert.Empty(t, a.Email)
		assert.Empty(t, b.Email)
	})
}

func TestCacheUserRepo_GetByToken(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewCacheUserRepo(db)
		carol := createCachedUser(t, db, testutil.NewCachedUser().WithUsername("carol"))
		dave := createCachedUser(t, db, testutil.NewCachedUser().WithUsername("dave"))

		t.Run("mapped token", func(t *testing.T) {
			require.NoError(t, repo.MapToken(ctx, "tok-carol", "carol", carol.ID))
			got, err := repo.GetByToken(ctx, "tok-carol")
			require.NoError(t, err)
			assert.Equal(t, carol.ID, got.ID)
		})

		t.Run("remapping replaces binding", func(t *testing.T) {
			require.NoError(t, repo.MapToken(ctx, "tok-carol", "dave", dave.ID))
			got, err := repo.GetByToken(ctx, "tok-carol")
			require.NoError(t, err)
			assert.Equal(t, "dave", got.Username)
		})

		t.Run("numeric token falls back to id", func(t *testing.T) {
			got, err := repo.GetByToken(ctx, strconv.FormatInt(carol.ID, 10))
			require.NoError(t, err)
			assert.Equal(t, "carol", got.Username)
		})

		t.Run("username fallback", func(t *testing.T) {
			got, err := repo.GetByToken(ctx, "dave")
			require.NoError(t, err)
			assert.Equal(t, dave.ID, got.ID)
		})

		t.Run("inactive users are not resolved", func(t *testing.T) {
			_, err := db.ExecContext(ctx, `UPDATE users SET is_active = FALSE WHERE id = $1`, dave.ID)
			require.NoError(t, err)
			_, err = repo.GetByToken(ctx, "dave")
			require.ErrorIs(t, err, ErrUserNotFound)
		})

		t.Run("unknown token", func(t *testing.T) {
			_, err := repo.GetByToken(ctx, "no-such-token")
			require.ErrorIs(t, err, ErrUserNotFound)
		})
	})
}

func TestCacheUserRepo_List(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		for range 3 {
			createCachedUser(t, db, testutil.NewCachedUser())
		}
		repo := NewCacheUserRepo(db)
		page, err := repo.List(context.Background(), 2, 0)
		require.NoError(t, err)
		assert.Len(t, page, 2)
		rest, err := repo.List(context.Background(), 2, 2)
		require.NoError(t, err)
		assert.Len(t, rest, 1)
		assert.Less(t, page[1].ID, rest[0].ID)
	})
}

func TestLeadingInt(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"42", 42, true},
		{"7abc", 7, true},
		{"abc", 0, false},
		{"", 0, false},
		{"-3", 0, false},
	}
	for _, tt := range tests {
		got, ok := leadingInt(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
