// Package migrate applies the embedded schema for the local cache.
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migration describes one embedded migration file and whether it has been applied.
type Migration struct {
	Version   string
	File      string
	AppliedAt *time.Time
}

// Applied reports whether the migration is recorded in schema_migrations.
func (m Migration) Applied() bool { return m.AppliedAt != nil }

// Run applies all pending migrations in version order. It is safe to call multiple times.
func Run(ctx context.Context, db *sql.DB) error {
	if err := ensureVersionTable(ctx, db); err != nil {
		return err
	}

	files, err := embeddedFiles()
	if err != nil {
		return err
	}

	logger := slog.Default().With("component", "migrations")
	applied := 0
	for _, f := range files {
		ok, applyErr := applyMigration(ctx, db, logger, f)
		if applyErr != nil {
			return applyErr
		}
		if ok {
			applied++
		}
	}
	if applied > 0 {
		logger.InfoContext(ctx, "migrations applied", "count", applied)
	}
	return nil
}

// Status lists every embedded migration along with the time it was applied, if any.
func Status(ctx context.Context, db *sql.DB) ([]Migration, error) {
	if err := ensureVersionTable(ctx, db); err != nil {
		return nil, err
	}
	files, err := embeddedFiles()
	if err != nil {
		return nil, err
	}

	applied := make(map[string]time.Time, len(files))
	rows, err := db.QueryContext(ctx, `SELECT version, applied_at FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("list schema_migrations: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var (
			version string
			at      time.Time
		)
		if scanErr := rows.Scan(&version, &at); scanErr != nil {
			return nil, fmt.Errorf("scan schema_migrations: %w", scanErr)
		}
		applied[version] = at
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schema_migrations: %w", err)
	}

	out := make([]Migration, 0, len(files))
	for _, f := range files {
		m := Migration{Version: f.version, File: f.file}
		if at, ok := applied[f.version]; ok {
			m.AppliedAt = &at
		}
		out = append(out, m)
	}
	return out, nil
}

type migrationFile struct {
	version string
	file    string
}

func ensureVersionTable(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}
	return nil
}

func embeddedFiles() ([]migrationFile, error) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	files := make([]migrationFile, 0, len(names))
	for _, n := range names {
		files = append(files, migrationFile{version: strings.TrimSuffix(n, ".sql"), file: n})
	}
	return files, nil
}

// applyMigration runs one file in its own transaction. It returns false when the
// version was already recorded.
func applyMigration(ctx context.Context, db *sql.DB, logger *slog.Logger, f migrationFile) (bool, error) {
	var exists bool
	if err := db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, f.version,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check migration %s: %w", f.file, err)
	}
	if exists {
		return false, nil
	}

	sqlBytes, err := migrationsFS.ReadFile("migrations/" + f.file)
	if err != nil {
		return false, fmt.Errorf("read migration %s: %w", f.file, err)
	}

	logger.InfoContext(ctx, "applying migration", "version", f.version)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			logger.ErrorContext(ctx, "failed to rollback migration", "err", rollbackErr, "migration_file", f.file)
		}
	}()

	if _, err = tx.ExecContext(ctx, string(sqlBytes)); err != nil {
		return false, fmt.Errorf("exec migration %s: %w", f.file, err)
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, f.version); err != nil {
		return false, fmt.Errorf("record migration %s: %w", f.file, err)
	}
	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("commit migration %s: %w", f.file, err)
	}
	return true, nil
}
