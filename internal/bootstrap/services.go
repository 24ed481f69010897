package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cryptlocker/cryptlocker-ui-api/config"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/adapters/walletapi"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/data"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/observability/statsd"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth      *service.AuthService
	Wallet    *service.WalletService
	Dashboard *service.DashboardService
	// Cache is nil when the local cache is disabled.
	Cache         *service.CacheService
	Client        *walletapi.Client
	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	// MetricsSink is nil when metrics are disabled.
	MetricsSink   statsd.Sink
	MetricsClient *statsd.Client
	MetricsConfig config.ObservabilityMetricsConfig
}

// Close releases the metrics socket, if any.
func (o ObservabilityContainer) Close() error {
	if o.MetricsClient == nil {
		return nil
	}
	return o.MetricsClient.Close()
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config *config.AppConfig
	// DB is optional; without it the local cache stays disabled.
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// buildObservability configures the metrics adapter.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	obsLogger := logger
	if obsLogger == nil {
		obsLogger = slog.Default()
	}

	out := ObservabilityContainer{MetricsConfig: cfg.Metrics}
	if !cfg.Metrics.IsEnabled() {
		return out
	}
	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.Metrics.StatsdAddress,
		Prefix:  cfg.Metrics.Prefix,
		Logger:  obsLogger,
	})
	if err != nil {
		obsLogger.Error("failed to initialise statsd client", "error", err)
		return out
	}
	out.MetricsClient = client
	out.MetricsSink = client
	return out
}

// buildBackendClient builds the shared wallet backend client.
func buildBackendClient(cfg config.BackendsConfig, metrics statsd.Sink, logger *slog.Logger) *walletapi.Client {
	return walletapi.NewClient(walletapi.Options{
		Router:     walletapi.NewRouter(cfg),
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		Metrics:    metrics,
		Logger:     logger,
	})
}

// buildCacheService wires the Postgres repositories. It returns nil when the
// cache is disabled or no database is available.
func buildCacheService(
	db *sql.DB,
	cfg config.CacheConfig,
	obs ObservabilityContainer,
	logger *slog.Logger,
) (*service.CacheService, error) {
	if !cfg.Enabled || db == nil {
		return nil, nil
	}
	svc, err := service.NewCacheService(service.CacheServiceOptions{
		Repos: service.CacheRepos{
			Users:     data.NewCacheUserRepo(db),
			Documents: data.NewDocumentRepo(db),
			Mirror:    data.NewMirrorRepo(db),
		},
		Config:        cfg,
		Observability: service.CacheObservability{Logger: logger, Metrics: obs.MetricsSink},
	})
	if err != nil {
		return nil, fmt.Errorf("create cache service: %w", err)
	}
	return svc, nil
}

// NewServices initializes all application services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	obs := buildObservability(logger, cfg.Observability)
	client := buildBackendClient(cfg.Backends, obs.MetricsSink, logger)

	cache, err := buildCacheService(deps.DB, cfg.Cache, obs, logger)
	if err != nil {
		return ServiceContainer{}, err
	}
	if cfg.Cache.Enabled && cache == nil {
		logger.Warn("local cache enabled but no database connection; cache disabled")
	}

	// Interface fields stay nil unless the cache exists.
	var (
		mirror service.ResourceMirror
		stats  service.StatsSource
		sync   service.UserSyncer
	)
	if cache != nil {
		mirror, stats, sync = cache, cache, cache
	}

	auth, err := BuildAuthService(AuthConfig{
		Auth:        cfg.Auth,
		API:         client,
		RedisClient: deps.RedisClient,
		Sync:        sync,
		Logger:      logger,
	})
	if err != nil {
		return ServiceContainer{}, err
	}

	wallet, err := service.NewWalletService(service.WalletServiceOptions{
		API:    client,
		Mirror: mirror,
		Logger: logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create wallet service: %w", err)
	}

	dashboard, err := service.NewDashboardService(service.DashboardServiceOptions{
		Wallet: wallet,
		Stats:  stats,
		Logger: logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create dashboard service: %w", err)
	}

	return ServiceContainer{
		Auth:          auth,
		Wallet:        wallet,
		Dashboard:     dashboard,
		Cache:         cache,
		Client:        client,
		Observability: obs,
	}, nil
}

// ServiceOrchestrationConfig contains configuration for service orchestration.
type ServiceOrchestrationConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// shutdownWaitTimeout bounds both the HTTP drain and the wait for workers.
const shutdownWaitTimeout = 15 * time.Second

// worker is a long-running component started alongside the HTTP server.
type worker struct {
	mode config.ServiceMode
	name string
	run  func(context.Context) error
}

func buildWorkers(cfg *ServiceOrchestrationConfig, logger *slog.Logger) []worker {
	return []worker{{
		mode: config.ServiceModeReaper,
		name: "reaper",
		run: func(ctx context.Context) error {
			return RunReaper(ctx, ReaperConfig{
				DB:      cfg.DB,
				Logger:  logger,
				Config:  cfg.Config.Reaper,
				Metrics: cfg.Services.Observability.MetricsSink,
			})
		},
	}}
}

// RunServicesWithShutdown starts the enabled services and blocks until
// SIGINT/SIGTERM arrives or one of them fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	enabled, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var server *http.Server
	if enabled[config.ServiceModeHTTP] {
		server = NewHTTPServer(&HTTPServerConfig{
			Config:      cfg.Config,
			Services:    cfg.Services,
			DB:          cfg.DB,
			RedisClient: cfg.RedisClient,
			Logger:      logger,
		})
	}

	return runServices(ctx, runPlan{
		server:  server,
		workers: buildWorkers(cfg, logger),
		enabled: enabled,
		logger:  logger,
	})
}

type runPlan struct {
	server  *http.Server
	workers []worker
	enabled map[config.ServiceMode]bool
	logger  *slog.Logger
}

// runServices serves until ctx is done or a service reports an error, then
// stops everything it started.
func runServices(ctx context.Context, plan runPlan) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, errorChannelBufferSize(plan.enabled))
	report := func(err error) {
		select {
		case errCh <- err:
		default:
			plan.logger.Warn("dropping service error", "error", err)
		}
	}

	if plan.server != nil {
		go func() {
			plan.logger.Info("starting HTTP server", "addr", plan.server.Addr)
			if err := plan.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				report(fmt.Errorf("http server failed: %w", err))
			}
		}()
	}

	var wg sync.WaitGroup
	for _, w := range plan.workers {
		if !plan.enabled[w.mode] {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := w.run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				report(fmt.Errorf("%s failed: %w", w.name, err))
			}
		}()
		plan.logger.Info("background service started", "service", w.name)
	}

	var runErr error
	select {
	case <-ctx.Done():
		plan.logger.Info("shutting down services...")
	case runErr = <-errCh:
		plan.logger.Error("service error", "error", runErr)
	}
	cancel()

	stopErr := gracefulStop(plan.server, &wg, plan.logger)
	if runErr != nil {
		if stopErr != nil {
			plan.logger.Error("graceful stop failed", "error", stopErr)
		}
		return runErr
	}
	return stopErr
}

func errorChannelCapacity(enabled map[config.ServiceMode]bool) int {
	count := 0
	for _, mode := range []config.ServiceMode{config.ServiceModeHTTP, config.ServiceModeReaper} {
		if enabled[mode] {
			count++
		}
	}
	return count
}

func errorChannelBufferSize(enabled map[config.ServiceMode]bool) int {
	return errorChannelCapacity(enabled) + 1
}

// gracefulStop drains the HTTP server on a fresh deadline, since the run
// context is already cancelled, then waits for workers.
func gracefulStop(server *http.Server, workers *sync.WaitGroup, logger *slog.Logger) error {
	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWaitTimeout)
		defer cancel()

		if err := ShutdownHTTPServer(ShutdownConfig{
			Context: shutdownCtx,
			Server:  server,
			Logger:  logger,
		}); err != nil {
			return err
		}
	}

	done := make(chan struct{})
	go func() {
		workers.Wait()
		close(done)
	}()
	select {
	case <-done:
		logger.Info("background services stopped")
	case <-time.After(shutdownWaitTimeout):
		logger.Warn("timeout waiting for background services to stop")
	}
	return nil
}
