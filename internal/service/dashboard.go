package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	domainauth "github.com/cryptlocker/cryptlocker-ui-api/internal/domain/auth"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/model"
)

// StatsSource supplies locally computed dashboard counters. CacheService implements it.
type StatsSource interface {
	Stats(ctx context.Context, token string) (model.DashboardStats, error)
}

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	Wallet *WalletService // Required
	Stats  StatsSource    // Optional
	Logger *slog.Logger   // Optional
}

// DashboardService assembles the dashboard summary from the wallet lists.
type DashboardService struct {
	wallet *WalletService
	stats  StatsSource
	logger *slog.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(opts DashboardServiceOptions) (*DashboardService, error) {
	if opts.Wallet == nil {
		return nil, errors.New("WalletService is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		wallet: opts.Wallet,
		stats:  opts.Stats,
		logger: logger.With("component", "dashboard_service"),
	}, nil
}

// DashboardSummary is the body of GET /api/dashboard.
type DashboardSummary struct {
	Credentials         int                   `json:"credentials"`
	Connections         int                   `json:"connections"`
	ActiveConnections   int                   `json:"activeConnections"`
	PendingOffers       int                   `json:"pendingOffers"`
	ProofRequests       int                   `json:"proofRequests"`
	Notifications       int                   `json:"notifications"`
	UnreadNotifications int                   `json:"unreadNotifications"`
	Local               *model.DashboardStats `json:"local,omitempty"`
}

// Summary fetches every list concurrently. The first backend failure cancels the
// rest and is returned. Local stats are best effort.
func (s *DashboardService) Summary(ctx context.Context, sa domainauth.StoredAuth) (DashboardSummary, error) {
	var (
		out           DashboardSummary
		credentials   []model.Credential
		connections   []model.Connection
		offers        []model.CredentialOffer
		proofs        []model.ProofRequest
		notifications []model.Notification
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		credentials, err = s.wallet.ListCredentials(gctx, sa)
		return err
	})
	g.Go(func() (err error) {
		connections, err = s.wallet.ListConnections(gctx, sa)
		return err
	})
	g.Go(func() (err error) {
		offers, err = s.wallet.ListOffers(gctx, sa)
		return err
	})
	g.Go(func() (err error) {
		proofs, err = s.wallet.ListProofRequests(gctx, sa)
		return err
	})
	g.Go(func() (err error) {
		notifications, err = s.wallet.ListNotifications(gctx, sa)
		return err
	})
	if err := g.Wait(); err != nil {
		return DashboardSummary{}, err
	}

	out.Credentials = len(credentials)
	out.Connections = len(connections)
	for _, c := range connections {
		if c.State == "active" {
			out.ActiveConnections++
		}
	}
	for _, o := range offers {
		if o.State == "" || o.State == "offer_sent" || o.State == "offer_received" {
			out.PendingOffers++
		}
	}
	out.ProofRequests = len(proofs)
	out.Notifications = len(notifications)
	for _, n := range notifications {
		if !n.IsRead {
			out.UnreadNotifications++
		}
	}

	if s.stats != nil {
		if local, err := s.stats.Stats(ctx, sa.Token); err != nil {
			s.logger.WarnContext(ctx, "local stats unavailable", "error", err)
		} else {
			out.Local = &local
		}
	}
	return out, nil
}
