package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/cryptlocker/cryptlocker-ui-api/internal/data/pgxutil"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/model"
	apperrors "github.com/cryptlocker/cryptlocker-ui-api/internal/errors"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/ports"
)

var _ ports.CacheUserRepository = (*CacheUserRepo)(nil)

const cachedUserColumns = `id, username, COALESCE(email, '') AS email, password_hash, full_name, role,
	did, wallet_id, is_active, created_at, updated_at`

// CacheUserRepo stores local copies of backend users and their token bindings.
type CacheUserRepo struct {
	DB    *sql.DB
	clock Clock
}

// NewCacheUserRepo creates a CacheUserRepo using the system clock.
func NewCacheUserRepo(db *sql.DB) *CacheUserRepo {
	return &CacheUserRepo{DB: db, clock: systemClock{}}
}

// NewCacheUserRepoWithClock creates a CacheUserRepo with a custom clock (useful for tests).
func NewCacheUserRepoWithClock(db *sql.DB, clock Clock) *CacheUserRepo {
	return &CacheUserRepo{DB: db, clock: clock}
}

// GetByUsername returns the user regardless of is_active. ErrUserNotFound when absent.
func (r *CacheUserRepo) GetByUsername(ctx context.Context, username string) (*model.CachedUser, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	return r.getOne(ctx, "SELECT "+cachedUserColumns+" FROM users WHERE username = $1", username)
}

// Create inserts a user. An empty email is stored as NULL so several synced users
// without an email do not collide on the unique index.
func (r *CacheUserRepo) Create(ctx context.Context, req model.CreateCachedUserRequest) (*model.CachedUser, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = "holder"
	}
	now := r.clock.Now().UTC()

	var out model.CachedUser
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (username, email, password_hash, full_name, role, created_at, updated_at)
			VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $6)
			RETURNING `+cachedUserColumns,
			username, strings.TrimSpace(req.Email), req.PasswordHash, req.FullName, role, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.CachedUser])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// List returns users ordered by id.
func (r *CacheUserRepo) List(ctx context.Context, limit, offset int) ([]*model.CachedUser, error) {
	if limit <= 0 {
		limit = 50
	}
	offset = max(offset, 0)

	var rowsOut []model.CachedUser
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			"SELECT "+cachedUserColumns+" FROM users ORDER BY id LIMIT $1 OFFSET $2", limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.CachedUser])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	res := make([]*model.CachedUser, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// MapToken binds token to the user, replacing any earlier binding for the same token.
func (r *CacheUserRepo) MapToken(ctx context.Context, token, username string, userID int64) error {
	if token == "" {
		return ErrTokenRequired
	}
	if strings.TrimSpace(username) == "" {
		return ErrUsernameRequired
	}
	var uid *int64
	if userID > 0 {
		uid = &userID
	}
	now := r.clock.Now().UTC()

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO token_mappings (api_token, username, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (api_token) DO UPDATE
		SET username = EXCLUDED.username,
			user_id = EXCLUDED.user_id,
			updated_at = EXCLUDED.updated_at
	`, token, strings.TrimSpace(username), uid, now)
	if err != nil {
		return apperrors.MapDBError(err)
	}
	return nil
}

// GetByToken resolves an active user. It tries the token mapping first, then
// treats a numeric token prefix as a user id, then treats the token as a username.
func (r *CacheUserRepo) GetByToken(ctx context.Context, token string) (*model.CachedUser, error) {
	if token == "" {
		return nil, ErrTokenRequired
	}

	u, err := r.getOne(ctx, `
		SELECT `+prefixColumns("u")+`
		FROM token_mappings tm
		JOIN users u ON u.username = tm.username
		WHERE tm.api_token = $1 AND u.is_active`, token)
	if err == nil || !errors.Is(err, ErrUserNotFound) {
		return u, err
	}

	if id, ok := leadingInt(token); ok {
		u, err = r.getOne(ctx, "SELECT "+cachedUserColumns+" FROM users WHERE id = $1 AND is_active", id)
		if err == nil || !errors.Is(err, ErrUserNotFound) {
			return u, err
		}
	}

	return r.getOne(ctx, "SELECT "+cachedUserColumns+" FROM users WHERE username = $1 AND is_active", token)
}

func (r *CacheUserRepo) getOne(ctx context.Context, q string, args ...any) (*model.CachedUser, error) {
	var u model.CachedUser
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		u, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.CachedUser])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func prefixColumns(alias string) string {
	return alias + ".id, " + alias + ".username, COALESCE(" + alias + ".email, '') AS email, " +
		alias + ".password_hash, " + alias + ".full_name, " + alias + ".role, " + alias + ".did, " +
		alias + ".wallet_id, " + alias + ".is_active, " + alias + ".created_at, " + alias + ".updated_at"
}

// leadingInt parses the run of digits at the start of s ("42abc" → 42).
func leadingInt(s string) (int64, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
