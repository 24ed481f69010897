package httpx

import (
	"net/http"

	domainauth "github.com/cryptlocker/cryptlocker-ui-api/internal/domain/auth"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/model"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/http/validation"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/service"
)

// WalletHandlers proxies wallet operations to the backend selected by the session.
// Every route is mounted behind RequireSession or RequireRoles.
type WalletHandlers struct {
	Svc       *service.WalletService
	Validator *validation.Validator
	errs      errorResponder
}

// storedAuth returns the token and backend resolved by the session middleware.
func storedAuth(r *http.Request) domainauth.StoredAuth {
	state, _ := GetAuthStateFromContext(r.Context())
	return state.Stored()
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func respond[T any](h *WalletHandlers, w http.ResponseWriter, r *http.Request, v T, err error) {
	if err != nil {
		h.errs.write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, v)
}

// ListCredentials handles GET /api/credentials.
func (h *WalletHandlers) ListCredentials(w http.ResponseWriter, r *http.Request) {
	items, err := h.Svc.ListCredentials(r.Context(), storedAuth(r))
	respond(h, w, r, nonNil(items), err)
}

// GetCredential handles GET /api/credentials/{id}.
func (h *WalletHandlers) GetCredential(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	c, err := h.Svc.GetCredential(r.Context(), storedAuth(r), id)
	respond(h, w, r, c, err)
}

// DeleteCredential handles DELETE /api/credentials/{id}.
func (h *WalletHandlers) DeleteCredential(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	resp, err := h.Svc.DeleteCredential(r.Context(), storedAuth(r), id)
	respond(h, w, r, resp, err)
}

// ListOffers handles GET /api/credentials/offers.
func (h *WalletHandlers) ListOffers(w http.ResponseWriter, r *http.Request) {
	items, err := h.Svc.ListOffers(r.Context(), storedAuth(r))
	respond(h, w, r, nonNil(items), err)
}

// AcceptOffer handles POST /api/credentials/{id}/accept where id is the credential exchange id.
func (h *WalletHandlers) AcceptOffer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	resp, err := h.Svc.AcceptOffer(r.Context(), storedAuth(r), id)
	respond(h, w, r, resp, err)
}

// ListConnections handles GET /api/connections.
func (h *WalletHandlers) ListConnections(w http.ResponseWriter, r *http.Request) {
	items, err := h.Svc.ListConnections(r.Context(), storedAuth(r))
	respond(h, w, r, nonNil(items), err)
}

// GetConnection handles GET /api/connections/{id}.
func (h *WalletHandlers) GetConnection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	c, err := h.Svc.GetConnection(r.Context(), storedAuth(r), id)
	respond(h, w, r, c, err)
}

type createInvitationRequest struct {
	Alias      string `json:"alias"       validate:"omitempty,max=255"`
	AutoAccept *bool  `json:"auto_accept"`
	MultiUse   *bool  `json:"multi_use"`
}

// CreateInvitation handles POST /api/connections/invitations. The body is optional.
func (h *WalletHandlers) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	var body *createInvitationRequest
	if r.ContentLength != 0 {
		body = &createInvitationRequest{}
		if !decodeOptionalJSON(w, r, body) {
			return
		}
		if !validateRequest(w, h.Validator, body) {
			return
		}
	}

	var req *model.ConnectionInvitationRequest
	if body != nil {
		req = &model.ConnectionInvitationRequest{Alias: body.Alias, AutoAccept: body.AutoAccept, MultiUse: body.MultiUse}
	}
	inv, err := h.Svc.CreateInvitation(r.Context(), storedAuth(r), req)
	respond(h, w, r, inv, err)
}

type acceptInvitationRequest struct {
	Invitation    map[string]any `json:"invitation"     validate:"required_without=InvitationURL"`
	InvitationURL string         `json:"invitation_url" validate:"omitempty,url"`
	Alias         string         `json:"alias"          validate:"omitempty,max=255"`
	AutoAccept    *bool          `json:"auto_accept"`
}

// AcceptInvitation handles POST /api/connections with an inline invitation or its URL.
func (h *WalletHandlers) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	var req acceptInvitationRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, h.Validator, req) {
		return
	}
	c, err := h.Svc.AcceptInvitation(r.Context(), storedAuth(r), model.ReceiveInvitationPayload{
		Invitation:    req.Invitation,
		InvitationURL: req.InvitationURL,
		Alias:         req.Alias,
		AutoAccept:    req.AutoAccept,
	})
	respond(h, w, r, c, err)
}

// DeleteConnection handles DELETE /api/connections/{id}.
func (h *WalletHandlers) DeleteConnection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	resp, err := h.Svc.DeleteConnection(r.Context(), storedAuth(r), id)
	respond(h, w, r, resp, err)
}

// ListProofRequests handles GET /api/proofs.
func (h *WalletHandlers) ListProofRequests(w http.ResponseWriter, r *http.Request) {
	items, err := h.Svc.ListProofRequests(r.Context(), storedAuth(r))
	respond(h, w, r, nonNil(items), err)
}

// GetProofRequest handles GET /api/proofs/{id}.
func (h *WalletHandlers) GetProofRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.Svc.GetProofRequest(r.Context(), storedAuth(r), id)
	respond(h, w, r, p, err)
}

// SendPresentation handles POST /api/proofs/{id}/present. The body is forwarded as-is.
func (h *WalletHandlers) SendPresentation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	payload := model.PresentationRequest{}
	if !decodeOptionalJSON(w, r, &payload) {
		return
	}
	resp, err := h.Svc.SendPresentation(r.Context(), storedAuth(r), id, payload)
	respond(h, w, r, resp, err)
}

// ListNotifications handles GET /api/notifications.
func (h *WalletHandlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	items, err := h.Svc.ListNotifications(r.Context(), storedAuth(r))
	respond(h, w, r, nonNil(items), err)
}

// MarkNotificationRead handles PUT /api/notifications/{id}/read.
func (h *WalletHandlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}
	ack, err := h.Svc.MarkNotificationRead(r.Context(), storedAuth(r), id)
	respond(h, w, r, ack, err)
}

// MarkAllNotificationsRead handles PUT /api/notifications/read-all.
func (h *WalletHandlers) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	ack, err := h.Svc.MarkAllNotificationsRead(r.Context(), storedAuth(r))
	respond(h, w, r, ack, err)
}

// WalletInfo handles GET /api/wallet/info.
func (h *WalletHandlers) WalletInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.Svc.WalletInfo(r.Context(), storedAuth(r))
	respond(h, w, r, info, err)
}

// WalletDID handles GET /api/wallet/did.
func (h *WalletHandlers) WalletDID(w http.ResponseWriter, r *http.Request) {
	did, err := h.Svc.WalletDID(r.Context(), storedAuth(r))
	respond(h, w, r, did, err)
}
