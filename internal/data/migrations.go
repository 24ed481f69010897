package data

import (
	"context"
	"database/sql"

	"github.com/cryptlocker/cryptlocker-ui-api/internal/migrate"
)

// RunMigrations brings the local cache schema up to date.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrate.Run(ctx, db)
}

// MigrationStatus reports which embedded migrations have been applied.
func MigrationStatus(ctx context.Context, db *sql.DB) ([]migrate.Migration, error) {
	return migrate.Status(ctx, db)
}
