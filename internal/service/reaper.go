package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cryptlocker/cryptlocker-ui-api/config"
	obserrors "github.com/cryptlocker/cryptlocker-ui-api/internal/observability/errors"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/observability/metrics"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/observability/statsd"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/ports"
)

// ReaperServiceOptions groups dependencies for ReaperService.
type ReaperServiceOptions struct {
	Repo    ports.CacheReaperRepository // Required
	Config  config.ReaperConfig         // Required
	Logger  *slog.Logger                // Optional
	Metrics statsd.Sink                 // Optional
}

// ReaperService prunes the local cache: token mappings that outlived any
// backend token, and uploaded documents past their retention.
type ReaperService struct {
	repo    ports.CacheReaperRepository
	config  config.ReaperConfig
	logger  *slog.Logger
	metrics statsd.Sink
	now     func() time.Time
}

// NewReaperService constructs a new ReaperService.
func NewReaperService(opts ReaperServiceOptions) (*ReaperService, error) {
	if opts.Repo == nil {
		return nil, errors.New("CacheReaperRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "reaper_service")
		logger.Debug("ReaperService initialized",
			"interval", opts.Config.Interval,
			"token_mapping_max_age", opts.Config.TokenMappingMaxAge,
			"document_max_age", opts.Config.DocumentMaxAge,
			"batch_size", opts.Config.BatchSize,
		)
	}

	return &ReaperService{
		repo:    opts.Repo,
		config:  opts.Config,
		logger:  logger,
		metrics: opts.Metrics,
		now:     time.Now,
	}, nil
}

// Run starts the reaper loop and runs until the context is cancelled.
// Returns nil on graceful shutdown.
func (s *ReaperService) Run(ctx context.Context) error {
	if s.logger != nil {
		s.logger.InfoContext(ctx, "starting reaper service", "interval", s.config.Interval)
	}

	s.waitWithJitter(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	if _, err := s.RunOnce(ctx); err != nil {
		s.logCleanupError(err, "initial cleanup")
	}

	for {
		select {
		case <-ctx.Done():
			if s.logger != nil {
				s.logger.InfoContext(ctx, "reaper service stopping", "reason", ctx.Err())
			}
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				s.logCleanupError(err, "cleanup")
			}
		}
	}
}

// waitWithJitter delays up to 10% of the interval so replicas do not tick together.
func (s *ReaperService) waitWithJitter(ctx context.Context) {
	maxJitter := int64(s.config.Interval / 10)
	if maxJitter <= 0 {
		return
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "failed to generate jitter, skipping", "error", err)
		}
		return
	}

	jitterNanos := binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter)
	jitter := time.Duration(int64(jitterNanos)) // #nosec G115 - bounded by maxJitter which is int64

	select {
	case <-time.After(jitter):
	case <-ctx.Done():
	}
}

// PruneResult reports rows removed by one cleanup pass.
type PruneResult struct {
	TokenMappings int64
	Documents     int64
}

type pruneStep struct {
	name   string
	maxAge time.Duration
	fn     func(context.Context, time.Time, int) (int64, error)
	count  *int64
}

// RunOnce performs a single cleanup pass. Steps with a zero max age are skipped.
func (s *ReaperService) RunOnce(ctx context.Context) (PruneResult, error) {
	var (
		res  PruneResult
		errs []error
	)
	steps := []pruneStep{
		{"token_mappings", s.config.TokenMappingMaxAge, s.repo.DeleteTokenMappingsOlderThan, &res.TokenMappings},
		{"documents", s.config.DocumentMaxAge, s.repo.DeleteDocumentsOlderThan, &res.Documents},
	}

	for _, step := range steps {
		if step.maxAge <= 0 {
			continue
		}
		start := time.Now()
		n, err := s.drain(ctx, step)
		*step.count = n
		s.emitStep(step.name, n, time.Since(start), err)
		if err != nil {
			errs = append(errs, fmt.Errorf("prune %s: %w", step.name, err))
			continue
		}
		if n > 0 && s.logger != nil {
			s.logger.InfoContext(ctx, "pruned local cache rows", "step", step.name, "count", n, "max_age", step.maxAge)
		}
	}

	if len(errs) > 0 {
		return res, errors.Join(errs...)
	}
	return res, nil
}

// drain deletes in batches until a batch comes back empty.
func (s *ReaperService) drain(ctx context.Context, step pruneStep) (int64, error) {
	cutoff := s.now().Add(-step.maxAge)
	var total int64
	for {
		n, err := step.fn(ctx, cutoff, s.config.BatchSize)
		if err != nil {
			return total, err
		}
		total += n
		if n == 0 || n < int64(s.config.BatchSize) {
			return total, nil
		}
		if ctx.Err() != nil {
			return total, ctx.Err()
		}
	}
}

func (s *ReaperService) emitStep(step string, n int64, d time.Duration, err error) {
	if s.metrics == nil {
		return
	}
	metrics.EmitReaperPrune(s.metrics, step, n, d)

	tags := map[string]string{"step": step, "result": metrics.ResultSuccess}
	switch {
	case suppressContextCancellation(err) != nil:
		tags["result"] = metrics.ResultError
		if class := obserrors.Classify(err); class != "" {
			tags["error_class"] = class
		}
	case n == 0:
		tags["result"] = metrics.ResultNoop
	}
	s.metrics.Count("reaper.cleanup_operation", 1, tags)
}

func (s *ReaperService) logCleanupError(err error, label string) {
	if err == nil || s.logger == nil {
		return
	}
	if isContextCancellation(err) {
		s.logger.Debug(label+" cancelled by context", "error", err)
		return
	}
	s.logger.Error(label+" failed", "error", err)
}
