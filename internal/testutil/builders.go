// Package testutil provides test helpers for the CryptLocker API: database and
// Redis setup plus builders for cached users and wallet fixtures.
package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/model"
)

var userSeq atomic.Int64

// CachedUserBuilder provides a fluent interface for CreateCachedUserRequest values.
type CachedUserBuilder struct {
	req model.CreateCachedUserRequest
}

// NewCachedUser returns a builder with a unique username and email.
func NewCachedUser() *CachedUserBuilder {
	n := userSeq.Add(1)
	return &CachedUserBuilder{req: model.CreateCachedUserRequest{
		Username:     fmt.Sprintf("user%d", n),
		Email:        fmt.Sprintf("user%d@example.com", n),
		PasswordHash: model.SyncedPasswordHash,
		Role:         "holder",
	}}
}

// WithUsername sets the username.
func (b *CachedUserBuilder) WithUsername(u string) *CachedUserBuilder {
	b.req.Username = u
	return b
}

// WithEmail sets the email. An empty value is stored as NULL.
func (b *CachedUserBuilder) WithEmail(e string) *CachedUserBuilder {
	b.req.Email = e
	return b
}

// WithRole sets the role.
func (b *CachedUserBuilder) WithRole(r string) *CachedUserBuilder {
	b.req.Role = r
	return b
}

// WithFullName sets the full name.
func (b *CachedUserBuilder) WithFullName(n string) *CachedUserBuilder {
	b.req.FullName = &n
	return b
}

// WithPasswordHash sets the stored hash.
func (b *CachedUserBuilder) WithPasswordHash(h string) *CachedUserBuilder {
	b.req.PasswordHash = h
	return b
}

// Build returns the request.
func (b *CachedUserBuilder) Build() model.CreateCachedUserRequest {
	return b.req
}

// Credential returns a credential fixture.
func Credential(id, state string) model.Credential {
	return model.Credential{
		CredentialID: id,
		SchemaID:     "schema:" + id,
		CredDefID:    "creddef:" + id,
		State:        state,
		ConnectionID: "conn-" + id,
		Attrs:        map[string]string{"name": "Alice"},
	}
}

// Connection returns a connection fixture.
func Connection(id, state string) model.Connection {
	return model.Connection{ConnectionID: id, TheirLabel: "Agent " + id, State: state}
}

// Offer returns a credential offer fixture.
func Offer(id, state string) model.CredentialOffer {
	return model.CredentialOffer{
		CredentialExchangeID: id,
		ConnectionID:         "conn-" + id,
		SchemaID:             "schema:" + id,
		State:                state,
		Attributes:           map[string]string{"degree": "BSc"},
	}
}
