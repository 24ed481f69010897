package walletapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/auth"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/backend"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/model"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/ports"
)

// NotificationsUnavailable is returned in place of a 404 from the notification endpoints.
const NotificationsUnavailable = "Notifications service unavailable"

var (
	_ ports.WalletAPI = (*Client)(nil)
	_ ports.AuthAPI   = (*Client)(nil)
)

func authed(sa auth.StoredAuth, method, op string) RequestOptions {
	return RequestOptions{Method: method, Token: sa.Token, Service: sa.Service, Operation: op}
}

func noStore(opts RequestOptions) RequestOptions {
	opts.NoStore = true
	return opts
}

func seg(id string) string { return url.PathEscape(id) }

// listOf fetches a list endpoint and resolves its envelope.
func listOf[T any](ctx context.Context, c *Client, path, resource string, opts RequestOptions) ([]T, error) {
	resp, err := c.Do(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	if !resp.JSON {
		return []T{}, nil
	}
	env, err := model.DecodeListEnvelope[T](resp.Body, resource)
	if err != nil {
		return nil, err
	}
	return env.Items, nil
}

// RegisterUser creates a backend account.
func (c *Client) RegisterUser(ctx context.Context, svc backend.Service, req model.RegisterRequest) (model.RegisterResponse, error) {
	return RequestJSON[model.RegisterResponse](ctx, c, "/auth/register", req,
		RequestOptions{Method: http.MethodPost, Service: svc, Operation: "register"})
}

// LoginUser exchanges form-encoded credentials for a bearer token.
func (c *Client) LoginUser(ctx context.Context, svc backend.Service, username, password string) (model.LoginResponse, error) {
	return Request[model.LoginResponse](ctx, c, "/auth/login", RequestOptions{
		Method:    http.MethodPost,
		Form:      url.Values{"username": {username}, "password": {password}},
		Service:   svc,
		Operation: "login",
	})
}

// GetCurrentUser returns the raw profile for the session token.
func (c *Client) GetCurrentUser(ctx context.Context, sa auth.StoredAuth) (auth.RawUser, error) {
	return Request[auth.RawUser](ctx, c, "/auth/me", authed(sa, http.MethodGet, "me"))
}

// GetCredentials lists credentials held in the wallet.
func (c *Client) GetCredentials(ctx context.Context, sa auth.StoredAuth) ([]model.Credential, error) {
	return listOf[model.Credential](ctx, c, "/credentials", "credentials",
		noStore(authed(sa, http.MethodGet, "list_credentials")))
}

// GetCredential fetches one credential.
func (c *Client) GetCredential(ctx context.Context, sa auth.StoredAuth, id string) (model.Credential, error) {
	return Request[model.Credential](ctx, c, "/credentials/"+seg(id), authed(sa, http.MethodGet, "get_credential"))
}

// DeleteCredential removes a credential from the wallet.
func (c *Client) DeleteCredential(ctx context.Context, sa auth.StoredAuth, id string) (model.MessageResponse, error) {
	return Request[model.MessageResponse](ctx, c, "/credentials/"+seg(id), authed(sa, http.MethodDelete, "delete_credential"))
}

// GetCredentialOffers lists pending offers. Backends without the endpoint (404) have no offers.
func (c *Client) GetCredentialOffers(ctx context.Context, sa auth.StoredAuth) ([]model.CredentialOffer, error) {
	offers, err := listOf[model.CredentialOffer](ctx, c, "/credentials/offers", "offers",
		noStore(authed(sa, http.MethodGet, "list_offers")))
	if IsStatus(err, http.StatusNotFound) {
		return []model.CredentialOffer{}, nil
	}
	return offers, err
}

// AcceptCredentialOffer accepts the offer identified by its credential exchange id.
func (c *Client) AcceptCredentialOffer(ctx context.Context, sa auth.StoredAuth, credExID string) (model.AcceptOfferResponse, error) {
	return Request[model.AcceptOfferResponse](ctx, c, "/credentials/"+seg(credExID)+"/accept",
		authed(sa, http.MethodPost, "accept_offer"))
}

// GetConnections lists the wallet's connections.
func (c *Client) GetConnections(ctx context.Context, sa auth.StoredAuth) ([]model.Connection, error) {
	return listOf[model.Connection](ctx, c, "/connections", "connections",
		noStore(authed(sa, http.MethodGet, "list_connections")))
}

// GetConnection fetches one connection.
func (c *Client) GetConnection(ctx context.Context, sa auth.StoredAuth, id string) (model.Connection, error) {
	return Request[model.Connection](ctx, c, "/connections/"+seg(id), authed(sa, http.MethodGet, "get_connection"))
}

// CreateConnectionInvitation creates an invitation. A nil request sends an empty object.
func (c *Client) CreateConnectionInvitation(
	ctx context.Context,
	sa auth.StoredAuth,
	req *model.ConnectionInvitationRequest,
) (model.ConnectionInvitation, error) {
	if req == nil {
		req = &model.ConnectionInvitationRequest{}
	}
	return RequestJSON[model.ConnectionInvitation](ctx, c, "/connections/create-invitation", req,
		authed(sa, http.MethodPost, "create_invitation"))
}

// AcceptConnectionInvitation receives an invitation from another agent.
func (c *Client) AcceptConnectionInvitation(
	ctx context.Context,
	sa auth.StoredAuth,
	payload model.ReceiveInvitationPayload,
) (model.Connection, error) {
	return RequestJSON[model.Connection](ctx, c, "/connections", payload, authed(sa, http.MethodPost, "accept_invitation"))
}

// DeleteConnection removes a connection.
func (c *Client) DeleteConnection(ctx context.Context, sa auth.StoredAuth, id string) (model.MessageResponse, error) {
	return Request[model.MessageResponse](ctx, c, "/connections/"+seg(id), authed(sa, http.MethodDelete, "delete_connection"))
}

// GetProofRequests lists presentation exchanges.
func (c *Client) GetProofRequests(ctx context.Context, sa auth.StoredAuth) ([]model.ProofRequest, error) {
	return listOf[model.ProofRequest](ctx, c, "/proofs/requests", "proofs",
		noStore(authed(sa, http.MethodGet, "list_proofs")))
}

// GetProofRequest fetches one presentation exchange.
func (c *Client) GetProofRequest(ctx context.Context, sa auth.StoredAuth, id string) (model.ProofRequest, error) {
	return Request[model.ProofRequest](ctx, c, "/proofs/requests/"+seg(id), authed(sa, http.MethodGet, "get_proof"))
}

// SendProofPresentation answers a proof request. The backend's reply is passed through untyped.
func (c *Client) SendProofPresentation(
	ctx context.Context,
	sa auth.StoredAuth,
	id string,
	payload model.PresentationRequest,
) (map[string]any, error) {
	return RequestJSON[map[string]any](ctx, c, "/proofs/requests/"+seg(id)+"/present", payload,
		authed(sa, http.MethodPost, "present_proof"))
}

// GetNotifications lists notifications. Backends without the endpoint (404) have none.
func (c *Client) GetNotifications(ctx context.Context, sa auth.StoredAuth) ([]model.Notification, error) {
	items, err := listOf[model.Notification](ctx, c, "/notifications", "notifications",
		noStore(authed(sa, http.MethodGet, "list_notifications")))
	if IsStatus(err, http.StatusNotFound) {
		return []model.Notification{}, nil
	}
	return items, err
}

// MarkNotificationAsRead marks one notification read.
func (c *Client) MarkNotificationAsRead(ctx context.Context, sa auth.StoredAuth, id int64) (model.NotificationAck, error) {
	ack, err := Request[model.NotificationAck](ctx, c, "/notifications/"+strconv.FormatInt(id, 10)+"/read",
		authed(sa, http.MethodPut, "read_notification"))
	if IsStatus(err, http.StatusNotFound) {
		return model.NotificationAck{Message: NotificationsUnavailable}, nil
	}
	return ack, err
}

// MarkAllNotificationsAsRead marks every notification read.
func (c *Client) MarkAllNotificationsAsRead(ctx context.Context, sa auth.StoredAuth) (model.NotificationAck, error) {
	ack, err := Request[model.NotificationAck](ctx, c, "/notifications/read-all",
		authed(sa, http.MethodPut, "read_all_notifications"))
	if IsStatus(err, http.StatusNotFound) {
		zero := 0
		return model.NotificationAck{Message: NotificationsUnavailable, Count: &zero}, nil
	}
	return ack, err
}

// GetWalletInfo describes the session's wallet.
func (c *Client) GetWalletInfo(ctx context.Context, sa auth.StoredAuth) (model.WalletInfo, error) {
	return Request[model.WalletInfo](ctx, c, "/wallet/info", authed(sa, http.MethodGet, "wallet_info"))
}

// GetWalletDID returns the wallet's public DID.
func (c *Client) GetWalletDID(ctx context.Context, sa auth.StoredAuth) (model.WalletDID, error) {
	return Request[model.WalletDID](ctx, c, "/wallet/did", authed(sa, http.MethodGet, "wallet_did"))
}
