package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/cryptlocker/cryptlocker-ui-api/internal/domain/auth"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/backend"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/model"
)

func TestFakeAuthAPI_RegisterThenLogin(t *testing.T) {
	api := NewFakeAuthAPI()
	ctx := context.Background()

	created, err := api.RegisterUser(ctx, backend.ServiceHolder, model.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pw",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "holder", created.Role)

	_, err = api.RegisterUser(ctx, backend.ServiceHolder, model.RegisterRequest{Username: "alice", Password: "x"})
	require.Error(t, err)

	resp, err := api.LoginUser(ctx, backend.ServiceIssuer, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "issuer-token-1", resp.AccessToken)
	assert.Equal(t, "alice", resp.User.Username)

	me, err := api.GetCurrentUser(ctx, domainauth.StoredAuth{Token: resp.AccessToken, Service: backend.ServiceIssuer})
	require.NoError(t, err)
	assert.Equal(t, "alice", me.Username)
}

func TestFakeAuthAPI_LoginRejectsBadPassword(t *testing.T) {
	api := NewFakeAuthAPI()
	api.AddUser(domainauth.RawUser{Username: "bob"}, "secret")

	_, err := api.LoginUser(context.Background(), backend.ServiceHolder, "bob", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 1, api.LoginCalls)

	_, err = api.GetCurrentUser(context.Background(), domainauth.StoredAuth{Token: "nope"})
	require.ErrorIs(t, err, ErrUnknownToken)
}

func TestFakeAuthAPI_CustomFuncs(t *testing.T) {
	api := &FakeAuthAPI{
		CurrentUserFunc: func(_ context.Context, sa domainauth.StoredAuth) (domainauth.RawUser, error) {
			return domainauth.RawUser{Username: "custom-" + sa.Token}, nil
		},
	}
	me, err := api.GetCurrentUser(context.Background(), domainauth.StoredAuth{Token: "t"})
	require.NoError(t, err)
	assert.Equal(t, "custom-t", me.Username)
}

func TestMemorySessionStore_PersistLoadClear(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	empty := store.Load(ctx, "sid-1")
	assert.Empty(t, empty.Token)
	assert.Equal(t, backend.DefaultService, empty.Service)

	require.NoError(t, store.Persist(ctx, "sid-1", "tok", backend.ServiceVerifier, time.Hour))
	got := store.Load(ctx, "sid-1")
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, backend.ServiceVerifier, got.Service)
	assert.True(t, store.HasSession("sid-1"))

	require.NoError(t, store.SaveProfile(ctx, "sid-1", domainauth.User{Username: "alice"}, time.Hour))
	profile, err := store.LoadProfile(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)

	require.NoError(t, store.Clear(ctx, "sid-1"))
	assert.False(t, store.HasSession("sid-1"))
	_, err = store.LoadProfile(ctx, "sid-1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySessionStore_PersistEmptyTokenDropsProfile(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	require.NoError(t, store.Persist(ctx, "sid", "tok", backend.ServiceHolder, time.Hour))
	require.NoError(t, store.SaveProfile(ctx, "sid", domainauth.User{Username: "alice"}, time.Hour))

	require.NoError(t, store.Persist(ctx, "sid", "", backend.ServiceIssuer, time.Hour))
	got := store.Load(ctx, "sid")
	assert.Empty(t, got.Token)
	assert.Equal(t, backend.ServiceIssuer, got.Service)
	_, err := store.LoadProfile(ctx, "sid")
	require.ErrorIs(t, err, ErrNotFound)

	require.Error(t, store.Persist(ctx, "", "tok", backend.ServiceHolder, time.Hour))
}
