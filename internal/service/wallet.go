package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	domainauth "github.com/cryptlocker/cryptlocker-ui-api/internal/domain/auth"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/model"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/ports"
)

// ResourceMirror copies fetched lists into the local cache. CacheService implements it.
type ResourceMirror interface {
	MirrorCredentials(ctx context.Context, token string, items []model.Credential) error
	MirrorConnections(ctx context.Context, token string, items []model.Connection) error
	MirrorOffers(ctx context.Context, token string, items []model.CredentialOffer) error
	MirrorProofRequests(ctx context.Context, token string, items []model.ProofRequest) error
}

// WalletServiceOptions groups dependencies for WalletService.
type WalletServiceOptions struct {
	API    ports.WalletAPI // Required
	Mirror ResourceMirror  // Optional
	Logger *slog.Logger    // Optional
}

// WalletService exposes the wallet resources of the session's backend.
//
// Concurrent list fetches for the same token and resource share one backend call.
type WalletService struct {
	api    ports.WalletAPI
	mirror ResourceMirror
	logger *slog.Logger
	group  singleflight.Group
}

// NewWalletService constructs a WalletService.
func NewWalletService(opts WalletServiceOptions) (*WalletService, error) {
	if opts.API == nil {
		return nil, errors.New("WalletAPI is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &WalletService{
		api:    opts.API,
		mirror: opts.Mirror,
		logger: logger.With("component", "wallet_service"),
	}, nil
}

// shared runs fn once per key among concurrent callers. The shared call runs
// detached from any single caller's cancellation; each caller stops waiting
// when its own ctx is done.
func shared[T any](ctx context.Context, g *singleflight.Group, key string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	detached := context.WithoutCancel(ctx)
	ch := g.DoChan(key, func() (any, error) {
		return fn(detached)
	})
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		out, _ := res.Val.(T)
		return out, nil
	}
}

func flightKey(resource string, sa domainauth.StoredAuth) string {
	return resource + ":" + string(sa.Service) + ":" + sa.Token
}

func (s *WalletService) mirrorList(ctx context.Context, resource string, fn func() error) {
	if s.mirror == nil {
		return
	}
	if err := fn(); err != nil && !isContextCancellation(err) {
		s.logger.WarnContext(ctx, "mirroring to local cache failed", "resource", resource, "error", err)
	}
}

// ListCredentials returns the wallet's credentials.
func (s *WalletService) ListCredentials(ctx context.Context, sa domainauth.StoredAuth) ([]model.Credential, error) {
	items, err := shared(ctx, &s.group, flightKey("credentials", sa), func(ctx context.Context) ([]model.Credential, error) {
		return s.api.GetCredentials(ctx, sa)
	})
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	s.mirrorList(ctx, "credentials", func() error { return s.mirror.MirrorCredentials(ctx, sa.Token, items) })
	return items, nil
}

// GetCredential returns one credential.
func (s *WalletService) GetCredential(ctx context.Context, sa domainauth.StoredAuth, id string) (model.Credential, error) {
	c, err := s.api.GetCredential(ctx, sa, id)
	if err != nil {
		return model.Credential{}, fmt.Errorf("get credential: %w", err)
	}
	return c, nil
}

// DeleteCredential removes a credential from the wallet.
func (s *WalletService) DeleteCredential(ctx context.Context, sa domainauth.StoredAuth, id string) (model.MessageResponse, error) {
	resp, err := s.api.DeleteCredential(ctx, sa, id)
	if err != nil {
		return model.MessageResponse{}, fmt.Errorf("delete credential: %w", err)
	}
	return resp, nil
}

// ListOffers returns pending credential offers.
func (s *WalletService) ListOffers(ctx context.Context, sa domainauth.StoredAuth) ([]model.CredentialOffer, error) {
	items, err := shared(ctx, &s.group, flightKey("offers", sa), func(ctx context.Context) ([]model.CredentialOffer, error) {
		return s.api.GetCredentialOffers(ctx, sa)
	})
	if err != nil {
		return nil, fmt.Errorf("list credential offers: %w", err)
	}
	s.mirrorList(ctx, "offers", func() error { return s.mirror.MirrorOffers(ctx, sa.Token, items) })
	return items, nil
}

// AcceptOffer accepts a credential offer by exchange id.
func (s *WalletService) AcceptOffer(ctx context.Context, sa domainauth.StoredAuth, credExID string) (model.AcceptOfferResponse, error) {
	resp, err := s.api.AcceptCredentialOffer(ctx, sa, credExID)
	if err != nil {
		return model.AcceptOfferResponse{}, fmt.Errorf("accept credential offer: %w", err)
	}
	return resp, nil
}

// ListConnections returns the wallet's connections.
func (s *WalletService) ListConnections(ctx context.Context, sa domainauth.StoredAuth) ([]model.Connection, error) {
	items, err := shared(ctx, &s.group, flightKey("connections", sa), func(ctx context.Context) ([]model.Connection, error) {
		return s.api.GetConnections(ctx, sa)
	})
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	s.mirrorList(ctx, "connections", func() error { return s.mirror.MirrorConnections(ctx, sa.Token, items) })
	return items, nil
}

// GetConnection returns one connection.
func (s *WalletService) GetConnection(ctx context.Context, sa domainauth.StoredAuth, id string) (model.Connection, error) {
	c, err := s.api.GetConnection(ctx, sa, id)
	if err != nil {
		return model.Connection{}, fmt.Errorf("get connection: %w", err)
	}
	return c, nil
}

// CreateInvitation creates a new connection invitation. A nil request sends an empty body.
func (s *WalletService) CreateInvitation(
	ctx context.Context,
	sa domainauth.StoredAuth,
	req *model.ConnectionInvitationRequest,
) (model.ConnectionInvitation, error) {
	inv, err := s.api.CreateConnectionInvitation(ctx, sa, req)
	if err != nil {
		return model.ConnectionInvitation{}, fmt.Errorf("create invitation: %w", err)
	}
	return inv, nil
}

// AcceptInvitation receives an invitation from another agent.
func (s *WalletService) AcceptInvitation(
	ctx context.Context,
	sa domainauth.StoredAuth,
	payload model.ReceiveInvitationPayload,
) (model.Connection, error) {
	c, err := s.api.AcceptConnectionInvitation(ctx, sa, payload)
	if err != nil {
		return model.Connection{}, fmt.Errorf("accept invitation: %w", err)
	}
	return c, nil
}

// DeleteConnection removes a connection.
func (s *WalletService) DeleteConnection(ctx context.Context, sa domainauth.StoredAuth, id string) (model.MessageResponse, error) {
	resp, err := s.api.DeleteConnection(ctx, sa, id)
	if err != nil {
		return model.MessageResponse{}, fmt.Errorf("delete connection: %w", err)
	}
	return resp, nil
}

// ListProofRequests returns proof requests addressed to the wallet.
func (s *WalletService) ListProofRequests(ctx context.Context, sa domainauth.StoredAuth) ([]model.ProofRequest, error) {
	items, err := shared(ctx, &s.group, flightKey("proofs", sa), func(ctx context.Context) ([]model.ProofRequest, error) {
		return s.api.GetProofRequests(ctx, sa)
	})
	if err != nil {
		return nil, fmt.Errorf("list proof requests: %w", err)
	}
	s.mirrorList(ctx, "proofs", func() error { return s.mirror.MirrorProofRequests(ctx, sa.Token, items) })
	return items, nil
}

// GetProofRequest returns one proof request.
func (s *WalletService) GetProofRequest(ctx context.Context, sa domainauth.StoredAuth, id string) (model.ProofRequest, error) {
	p, err := s.api.GetProofRequest(ctx, sa, id)
	if err != nil {
		return model.ProofRequest{}, fmt.Errorf("get proof request: %w", err)
	}
	return p, nil
}

// SendPresentation answers a proof request.
func (s *WalletService) SendPresentation(
	ctx context.Context,
	sa domainauth.StoredAuth,
	id string,
	payload model.PresentationRequest,
) (map[string]any, error) {
	resp, err := s.api.SendProofPresentation(ctx, sa, id, payload)
	if err != nil {
		return nil, fmt.Errorf("send presentation: %w", err)
	}
	return resp, nil
}

// ListNotifications returns the user's notifications.
func (s *WalletService) ListNotifications(ctx context.Context, sa domainauth.StoredAuth) ([]model.Notification, error) {
	items, err := shared(ctx, &s.group, flightKey("notifications", sa), func(ctx context.Context) ([]model.Notification, error) {
		return s.api.GetNotifications(ctx, sa)
	})
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

// MarkNotificationRead marks one notification as read.
func (s *WalletService) MarkNotificationRead(ctx context.Context, sa domainauth.StoredAuth, id int64) (model.NotificationAck, error) {
	ack, err := s.api.MarkNotificationAsRead(ctx, sa, id)
	if err != nil {
		return model.NotificationAck{}, fmt.Errorf("mark notification read: %w", err)
	}
	return ack, nil
}

// MarkAllNotificationsRead marks every notification as read.
func (s *WalletService) MarkAllNotificationsRead(ctx context.Context, sa domainauth.StoredAuth) (model.NotificationAck, error) {
	ack, err := s.api.MarkAllNotificationsAsRead(ctx, sa)
	if err != nil {
		return model.NotificationAck{}, fmt.Errorf("mark all notifications read: %w", err)
	}
	return ack, nil
}

// WalletInfo describes the session's wallet.
func (s *WalletService) WalletInfo(ctx context.Context, sa domainauth.StoredAuth) (model.WalletInfo, error) {
	info, err := s.api.GetWalletInfo(ctx, sa)
	if err != nil {
		return model.WalletInfo{}, fmt.Errorf("get wallet info: %w", err)
	}
	return info, nil
}

// WalletDID returns the wallet's public DID.
func (s *WalletService) WalletDID(ctx context.Context, sa domainauth.StoredAuth) (model.WalletDID, error) {
	did, err := s.api.GetWalletDID(ctx, sa)
	if err != nil {
		return model.WalletDID{}, fmt.Errorf("get wallet did: %w", err)
	}
	return did, nil
}
