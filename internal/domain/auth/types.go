package auth

// Package auth contains domain-level types for wallet sessions and role checks.
// It is pure and free of framework/adapter concerns.

import "github.com/cryptlocker/cryptlocker-ui-api/internal/domain/backend"

// Session is the server-side record we persist for a browser or API client.
// ID is an opaque session identifier carried in the session cookie.
type Session struct {
	ID      string          `json:"id"`
	Token   string          `json:"-"`
	Service backend.Service `json:"service"`
	User    *User           `json:"user,omitempty"`
}

// Authenticated reports whether the session carries a backend token.
func (s Session) Authenticated() bool { return s.Token != "" }

// StoredAuth is what survives between requests: the bearer token and the backend it belongs to.
type StoredAuth struct {
	Token   string
	Service backend.Service
}

// RawUser is the user payload as returned by the wallet backend, before normalization.
type RawUser struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	FullName    string   `json:"full_name,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	Role        string   `json:"role,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// User is a normalized user. Roles is never empty and Role always equals Roles[0].
type User struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	FullName    string   `json:"full_name,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	Role        Role     `json:"role"`
	Roles       []Role   `json:"roles"`
	Permissions []string `json:"permissions"`
}

// RoleSet returns the user's roles as a RoleSet. A nil user holds no roles.
func (u *User) RoleSet() RoleSet {
	if u == nil {
		return RoleSet{}
	}
	return NewRoleSet(u.Roles)
}
