package model

import "time"

// CachedUser is the local cache's copy of a backend user.
type CachedUser struct {
	ID           int64     `json:"id"                  db:"id"`
	Username     string    `json:"username"            db:"username"`
	Email        string    `json:"email"               db:"email"`
	PasswordHash string    `json:"-"                   db:"password_hash"`
	FullName     *string   `json:"full_name,omitempty" db:"full_name"`
	Role         string    `json:"role"                db:"role"`
	DID          *string   `json:"did,omitempty"       db:"did"`
	WalletID     *string   `json:"wallet_id,omitempty" db:"wallet_id"`
	IsActive     bool      `json:"is_active"           db:"is_active"`
	CreatedAt    time.Time `json:"created_at"          db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"          db:"updated_at"`
}

// SyncedPasswordHash marks users created from a backend login rather than a local registration.
const SyncedPasswordHash = "synced_from_api"

// CreateCachedUserRequest inserts a user into the local cache.
type CreateCachedUserRequest struct {
	Username     string
	Email        string
	PasswordHash string
	FullName     *string
	Role         string
}

// UploadedDocument is a file attached to a user (optionally to one credential).
// FileContent holds the base64-encoded bytes and is omitted from list responses.
type UploadedDocument struct {
	ID           int64     `json:"id"                      db:"id"`
	UserID       int64     `json:"user_id"                 db:"user_id"`
	CredentialID *string   `json:"credential_id,omitempty" db:"credential_id"`
	FileName     string    `json:"file_name"               db:"file_name"`
	FileType     *string   `json:"file_type,omitempty"     db:"file_type"`
	FileSize     *int64    `json:"file_size,omitempty"     db:"file_size"`
	FileContent  string    `json:"-"                       db:"file_content"`
	CreatedAt    time.Time `json:"created_at"              db:"created_at"`
}

// CreateDocumentRequest stores a new uploaded document.
type CreateDocumentRequest struct {
	UserID       int64
	CredentialID *string
	FileName     string
	FileType     *string
	FileSize     *int64
	FileContent  string
}

// DashboardStats are the counters shown on the dashboard, computed from the local cache.
type DashboardStats struct {
	CredentialsIssued int64 `json:"credentialsIssued"`
	ActiveConnections int64 `json:"activeConnections"`
	PendingOffers     int64 `json:"pendingOffers"`
}

// TokenMapping binds a backend bearer token to a cached user.
type TokenMapping struct {
	ID        int64     `json:"id"         db:"id"`
	APIToken  string    `json:"-"          db:"api_token"`
	Username  string    `json:"username"   db:"username"`
	UserID    *int64    `json:"user_id"    db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
