package model

import "encoding/json"

// Wallet backend resources. Timestamps stay as strings because the backends
// emit naive ISO-8601 values without a zone.

// Credential is a verifiable credential held in the wallet.
type Credential struct {
	CredentialID string            `json:"credential_id"`
	SchemaID     string            `json:"schema_id"`
	CredDefID    string            `json:"cred_def_id"`
	State        string            `json:"state"`
	ConnectionID string            `json:"connection_id"`
	Attrs        map[string]string `json:"attrs,omitempty"`
	CreatedAt    string            `json:"created_at,omitempty"`
}

// Connection is a DIDComm connection with another agent.
type Connection struct {
	ConnectionID string `json:"connection_id"`
	TheirLabel   string `json:"their_label,omitempty"`
	State        string `json:"state,omitempty"`
	TheirDID     string `json:"their_did,omitempty"`
	MyDID        string `json:"my_did,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// ConnectionInvitation is returned when a new invitation is created.
type ConnectionInvitation struct {
	ConnectionID  string         `json:"connection_id"`
	Invitation    map[string]any `json:"invitation"`
	InvitationURL string         `json:"invitation_url"`
}

// ConnectionInvitationRequest configures a new invitation.
type ConnectionInvitationRequest struct {
	Alias      string `json:"alias,omitempty"`
	AutoAccept *bool  `json:"auto_accept,omitempty"`
	MultiUse   *bool  `json:"multi_use,omitempty"`
}

// ReceiveInvitationPayload accepts an invitation either inline or by URL.
type ReceiveInvitationPayload struct {
	Invitation    map[string]any `json:"invitation,omitempty"`
	InvitationURL string         `json:"invitation_url,omitempty"`
	Alias         string         `json:"alias,omitempty"`
	AutoAccept    *bool          `json:"auto_accept,omitempty"`
}

// Restriction narrows which credentials may satisfy a requested attribute or predicate.
type Restriction struct {
	SchemaID        string `json:"schema_id,omitempty"`
	SchemaIssuerDID string `json:"schema_issuer_did,omitempty"`
	SchemaName      string `json:"schema_name,omitempty"`
	SchemaVersion   string `json:"schema_version,omitempty"`
	IssuerDID       string `json:"issuer_did,omitempty"`
	CredDefID       string `json:"cred_def_id,omitempty"`
}

// RequestedAttribute is one attribute a verifier asks to be revealed.
type RequestedAttribute struct {
	Name         string        `json:"name"`
	Restrictions []Restriction `json:"restrictions,omitempty"`
}

// RequestedPredicate is a zero-knowledge comparison a verifier asks to be proven.
// PType is one of ">=", ">", "<=", "<".
type RequestedPredicate struct {
	Name         string        `json:"name"`
	PType        string        `json:"p_type"`
	PValue       float64       `json:"p_value"`
	Restrictions []Restriction `json:"restrictions,omitempty"`
}

// ProofRequest is a presentation exchange started by a verifier.
type ProofRequest struct {
	PresentationExchangeID string                        `json:"presentation_exchange_id"`
	ConnectionID           string                        `json:"connection_id"`
	State                  string                        `json:"state"`
	RequestedAttributes    map[string]RequestedAttribute `json:"requested_attributes"`
	RequestedPredicates    map[string]RequestedPredicate `json:"requested_predicates"`
	CreatedAt              string                        `json:"created_at,omitempty"`
	Verified               *bool                         `json:"verified"`
}

// CredentialOffer is a pending credential exchange awaiting the holder's acceptance.
type CredentialOffer struct {
	CredentialExchangeID string            `json:"credential_exchange_id"`
	ConnectionID         string            `json:"connection_id,omitempty"`
	SchemaID             string            `json:"schema_id,omitempty"`
	CreatedAt            string            `json:"created_at,omitempty"`
	State                string            `json:"state,omitempty"`
	Attributes           map[string]string `json:"attributes,omitempty"`
	Issuer               string            `json:"issuer,omitempty"`
	Comment              string            `json:"comment,omitempty"`
}

// AcceptOfferResponse is returned after accepting a credential offer.
type AcceptOfferResponse struct {
	Message      string `json:"message"`
	CredentialID string `json:"credential_id,omitempty"`
}

// Notification is a wallet event surfaced to the user. Type is open-ended;
// "connection", "credential" and "proof" are the common values.
type Notification struct {
	ID        int64  `json:"id"`
	UserID    *int64 `json:"user_id,omitempty"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	RelatedID string `json:"related_id,omitempty"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at,omitempty"`
}

// NotificationAck is returned by the mark-as-read endpoints.
type NotificationAck struct {
	Message string `json:"message"`
	Count   *int   `json:"count,omitempty"`
}

// WalletInfo describes the wallet backing the session.
type WalletInfo struct {
	WalletID          string `json:"wallet_id"`
	CreatedAt         string `json:"created_at,omitempty"`
	KeyManagementMode string `json:"key_management_mode,omitempty"`
}

// WalletDID is the wallet's public DID.
type WalletDID struct {
	DID      string         `json:"did"`
	Verkey   string         `json:"verkey"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// PresentationRequest is the free-form body forwarded to the present endpoint.
type PresentationRequest map[string]json.RawMessage

// MessageResponse is the generic {"message": ...} body returned by delete endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
