package ports

import (
	"context"

	domainauth "github.com/cryptlocker/cryptlocker-ui-api/internal/domain/auth"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/model"
)

// WalletAPI is the resource surface of the wallet backends.
type WalletAPI interface {
	GetCredentials(ctx context.Context, sa domainauth.StoredAuth) ([]model.Credential, error)
	GetCredential(ctx context.Context, sa domainauth.StoredAuth, id string) (model.Credential, error)
	DeleteCredential(ctx context.Context, sa domainauth.StoredAuth, id string) (model.MessageResponse, error)
	GetCredentialOffers(ctx context.Context, sa domainauth.StoredAuth) ([]model.CredentialOffer, error)
	AcceptCredentialOffer(ctx context.Context, sa domainauth.StoredAuth, credExID string) (model.AcceptOfferResponse, error)

	GetConnections(ctx context.Context, sa domainauth.StoredAuth) ([]model.Connection, error)
	GetConnection(ctx context.Context, sa domainauth.StoredAuth, id string) (model.Connection, error)
	CreateConnectionInvitation(ctx context.Context, sa domainauth.StoredAuth, req *model.ConnectionInvitationRequest) (model.ConnectionInvitation, error)
	AcceptConnectionInvitation(ctx context.Context, sa domainauth.StoredAuth, payload model.ReceiveInvitationPayload) (model.Connection, error)
	DeleteConnection(ctx context.Context, sa domainauth.StoredAuth, id string) (model.MessageResponse, error)

	GetProofRequests(ctx context.Context, sa domainauth.StoredAuth) ([]model.ProofRequest, error)
	GetProofRequest(ctx context.Context, sa domainauth.StoredAuth, id string) (model.ProofRequest, error)
	SendProofPresentation(ctx context.Context, sa domainauth.StoredAuth, id string, payload model.PresentationRequest) (map[string]any, error)

	GetNotifications(ctx context.Context, sa domainauth.StoredAuth) ([]model.Notification, error)
	MarkNotificationAsRead(ctx context.Context, sa domainauth.StoredAuth, id int64) (model.NotificationAck, error)
	MarkAllNotificationsAsRead(ctx context.Context, sa domainauth.StoredAuth) (model.NotificationAck, error)

	GetWalletInfo(ctx context.Context, sa domainauth.StoredAuth) (model.WalletInfo, error)
	GetWalletDID(ctx context.Context, sa domainauth.StoredAuth) (model.WalletDID, error)
}
