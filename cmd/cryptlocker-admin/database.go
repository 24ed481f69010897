package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/cryptlocker/cryptlocker-ui-api/internal/adapters/reaper"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/bootstrap"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/data"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/model"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/migrate"
)

type migrateOptions struct {
	Timeout time.Duration
}

type listUsersOptions struct {
	Limit  int
	Offset int
}

type pruneOptions struct {
	Timeout time.Duration
	DryRun  bool
}

func runMigrations(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags("migrate", args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		cmdCtx.Logger.Info("running database migrations")
		if migrateErr := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); migrateErr != nil {
			return fmt.Errorf("run migrations: %w", migrateErr)
		}
		cmdCtx.Logger.Info("migrations completed successfully")
		return nil
	})
}

func runMigrationStatus(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags("migrate-status", args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		status, statusErr := data.MigrationStatus(ctx, db)
		if statusErr != nil {
			return fmt.Errorf("migration status: %w", statusErr)
		}
		return printMigrationStatus(os.Stdout, status)
	})
}

func printMigrationStatus(w io.Writer, status []migrate.Migration) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := writeln(tw, "VERSION\tFILE\tAPPLIED"); err != nil {
		return err
	}
	for _, m := range status {
		applied := "pending"
		if m.Applied() {
			applied = m.AppliedAt.UTC().Format(time.RFC3339)
		}
		if err := writef(tw, "%s\t%s\t%s\n", m.Version, m.File, applied); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func runListUsers(cmdCtx *commandContext, args []string) error {
	opts, err := parseListUsersFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		users, listErr := data.NewCacheUserRepo(db).List(ctx, opts.Limit, opts.Offset)
		if listErr != nil {
			return fmt.Errorf("list users: %w", listErr)
		}
		return printUsers(os.Stdout, users)
	})
}

func printUsers(w io.Writer, users []*model.CachedUser) error {
	if len(users) == 0 {
		return writeln(w, "No cached users.")
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := writeln(tw, "ID\tUSERNAME\tEMAIL\tROLE\tACTIVE\tUPDATED"); err != nil {
		return err
	}
	for _, u := range users {
		email := u.Email
		if email == "" {
			email = "-"
		}
		if err := writef(tw, "%d\t%s\t%s\t%s\t%t\t%s\n",
			u.ID, u.Username, email, u.Role, u.IsActive, u.UpdatedAt.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func runPruneCache(cmdCtx *commandContext, args []string) error {
	opts, err := parsePruneFlags(args)
	if err != nil {
		return err
	}
	reaperCfg := cmdCtx.Config.Reaper
	if opts.DryRun {
		return writef(os.Stdout,
			"Would prune token mappings older than %s and documents older than %s (batch size %d).\n",
			reaperCfg.TokenMappingMaxAge, reaperCfg.DocumentMaxAge, reaperCfg.BatchSize)
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		runner, runnerErr := reaper.NewRunner(reaper.RunnerOptions{
			DB:     db,
			Config: reaperCfg,
			Logger: cmdCtx.Logger,
		})
		if runnerErr != nil {
			return runnerErr
		}
		res, pruneErr := runner.RunOnce(ctx)
		if pruneErr != nil {
			return fmt.Errorf("prune cache: %w", pruneErr)
		}
		return writef(os.Stdout, "Pruned %d token mappings and %d documents.\n", res.TokenMappings, res.Documents)
	})
}

func parseMigrateFlags(name string, args []string) (migrateOptions, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := migrateOptions{Timeout: defaultMigrationTimeout}
	fs.DurationVar(&opts.Timeout, "timeout", defaultMigrationTimeout,
		"Maximum duration to wait for migrations to complete")

	if err := fs.Parse(args); err != nil {
		return migrateOptions{}, err
	}
	if opts.Timeout <= 0 {
		return migrateOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func parseListUsersFlags(args []string) (listUsersOptions, error) {
	fs := flag.NewFlagSet("list-users", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts listUsersOptions
	fs.IntVar(&opts.Limit, "limit", 50, "Maximum number of users to print")
	fs.IntVar(&opts.Offset, "offset", 0, "Number of users to skip")

	if err := fs.Parse(args); err != nil {
		return listUsersOptions{}, err
	}
	if opts.Limit <= 0 {
		return listUsersOptions{}, errors.New("--limit must be greater than zero")
	}
	if opts.Offset < 0 {
		return listUsersOptions{}, errors.New("--offset cannot be negative")
	}
	return opts, nil
}

func parsePruneFlags(args []string) (pruneOptions, error) {
	fs := flag.NewFlagSet("prune-cache", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := pruneOptions{Timeout: defaultCommandTimeout}
	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "Maximum duration for the pruning pass")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Print the retention settings without deleting anything")

	if err := fs.Parse(args); err != nil {
		return pruneOptions{}, err
	}
	if opts.Timeout <= 0 {
		return pruneOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func withDatabase(
	cmdCtx *commandContext,
	timeout time.Duration,
	f func(context.Context, *sql.DB) error,
) error {
	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig: cmdCtx.Config.Postgres,
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", cerr)
		}
	}()

	return f(ctx, db)
}
