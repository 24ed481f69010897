// Package reaper runs the local cache reaper against Postgres.
package reaper

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cryptlocker/cryptlocker-ui-api/config"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/data"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/observability/statsd"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/ports"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/service"
)

// Runner owns a ReaperService wired to the cache database.
type Runner struct {
	reaper *service.ReaperService
	logger *slog.Logger
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	DB     *sql.DB
	Config config.ReaperConfig
	Logger *slog.Logger

	// Repo overrides the Postgres repository, mainly for tests.
	Repo    ports.CacheReaperRepository
	Metrics statsd.Sink
}

// NewRunner creates a new reaper runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.DB == nil && opts.Repo == nil {
		return nil, errors.New("database connection is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	repo := opts.Repo
	if repo == nil {
		repo = data.NewCacheReaperRepo(opts.DB)
	}
	svc, err := service.NewReaperService(service.ReaperServiceOptions{
		Repo:    repo,
		Config:  opts.Config,
		Logger:  opts.Logger,
		Metrics: opts.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("wire reaper service: %w", err)
	}

	return &Runner{reaper: svc, logger: opts.Logger}, nil
}

// Run starts the reaper loop and runs until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting cache reaper")
	return r.reaper.Run(ctx)
}

// RunOnce performs a single pruning pass.
func (r *Runner) RunOnce(ctx context.Context) (service.PruneResult, error) {
	return r.reaper.RunOnce(ctx)
}
