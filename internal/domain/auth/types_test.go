package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRoles(t *testing.T) {
	tests := []struct {
		name   string
		list   []string
		single string
		want   []Role
	}{
		{name: "list then single", list: []string{" Issuer ", "holder"}, single: "ADMIN", want: []Role{"issuer", "holder", "admin"}},
		{name: "single only", single: "Verifier", want: []Role{RoleVerifier}},
		{name: "duplicates keep first", list: []string{"holder", "HOLDER", "issuer"}, single: "holder", want: []Role{"holder", "issuer"}},
		{name: "empties fall back to holder", list: []string{"", "  "}, want: []Role{RoleHolder}},
		{name: "nothing falls back to holder", want: []Role{RoleHolder}},
		{name: "unknown roles preserved", list: []string{"Auditor"}, want: []Role{"auditor"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRoles(tt.list, tt.single))
		})
	}
}

func TestNormalizeUser(t *testing.T) {
	u := NormalizeUser(RawUser{
		ID:          7,
		Username:    "alice",
		Role:        "Issuer",
		Roles:       []string{"admin"},
		Permissions: []string{" Read ", "read", "", "WRITE"},
	})

	require.NotEmpty(t, u.Roles)
	assert.Equal(t, RoleAdmin, u.Role)
	assert.Equal(t, u.Roles[0], u.Role)
	assert.Equal(t, []Role{RoleAdmin, RoleIssuer}, u.Roles)
	assert.Equal(t, []string{"read", "write"}, u.Permissions)
}

func TestNormalizeUser_NoPermissionsIsEmptySlice(t *testing.T) {
	u := NormalizeUser(RawUser{Username: "bob"})
	assert.Equal(t, RoleHolder, u.Role)
	assert.NotNil(t, u.Permissions)
	assert.Empty(t, u.Permissions)
}

func TestSession_Authenticated(t *testing.T) {
	assert.False(t, Session{}.Authenticated())
	assert.True(t, Session{Token: "t"}.Authenticated())
}
