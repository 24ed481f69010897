package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/cryptlocker/cryptlocker-ui-api/internal/data/pgxutil"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/model"
	apperrors "github.com/cryptlocker/cryptlocker-ui-api/internal/errors"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/ports"
)

var _ ports.DocumentRepository = (*DocumentRepo)(nil)

const documentColumns = `id, user_id, credential_id, file_name, file_type, file_size, file_content, created_at`

// DocumentRepo stores files uploaded against a user or one of their credentials.
type DocumentRepo struct {
	DB    *sql.DB
	clock Clock
}

// NewDocumentRepo creates a DocumentRepo using the system clock.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{DB: db, clock: systemClock{}}
}

// NewDocumentRepoWithClock creates a DocumentRepo with a custom clock.
func NewDocumentRepoWithClock(db *sql.DB, clock Clock) *DocumentRepo {
	return &DocumentRepo{DB: db, clock: clock}
}

// Create stores the document and returns its id.
func (r *DocumentRepo) Create(ctx context.Context, req model.CreateDocumentRequest) (int64, error) {
	if req.UserID <= 0 {
		return 0, ErrInvalidUserID
	}
	if strings.TrimSpace(req.FileName) == "" {
		return 0, ErrFileNameRequired
	}
	credentialID := req.CredentialID
	if credentialID != nil && *credentialID == "" {
		credentialID = nil
	}

	var id int64
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO uploaded_documents (user_id, credential_id, file_name, file_type, file_size, file_content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, req.UserID, credentialID, req.FileName, req.FileType, req.FileSize, req.FileContent,
		r.clock.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return 0, apperrors.MapDBError(err)
	}
	return id, nil
}

// List returns the user's documents, newest first. A non-empty credentialID
// restricts the result to that credential.
func (r *DocumentRepo) List(ctx context.Context, userID int64, credentialID *string) ([]model.UploadedDocument, error) {
	q := "SELECT " + documentColumns + " FROM uploaded_documents WHERE user_id = $1"
	args := []any{userID}
	if credentialID != nil && *credentialID != "" {
		q += " AND credential_id = $2"
		args = append(args, *credentialID)
	}
	q += " ORDER BY created_at DESC, id DESC"

	var docs []model.UploadedDocument
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		docs, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.UploadedDocument])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	if docs == nil {
		docs = []model.UploadedDocument{}
	}
	return docs, nil
}
