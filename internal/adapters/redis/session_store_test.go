package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/cryptlocker/cryptlocker-ui-api/internal/domain/auth"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/backend"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client, SessionStoreOptions{Prefix: "test:session:"}), mr
}

func TestSessionStore_LoadDefaults(t *testing.T) {
	store, _ := newTestStore(t)

	got := store.Load(context.Background(), "unknown")
	assert.Equal(t, domainauth.StoredAuth{Service: backend.ServiceHolder}, got)

	got = store.Load(context.Background(), "")
	assert.Equal(t, backend.ServiceHolder, got.Service)
}

func TestSessionStore_PersistAndLoad(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Persist(ctx, "s1", "tok", backend.ServiceIssuer, time.Hour))

	got := store.Load(ctx, "s1")
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, backend.ServiceIssuer, got.Service)

	assert.True(t, mr.Exists("test:session:s1:token"))
	assert.True(t, mr.Exists("test:session:s1:service"))
	assert.Equal(t, time.Hour, mr.TTL("test:session:s1:token"))
}

func TestSessionStore_PersistEmptyClears(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Persist(ctx, "s1", "tok", backend.ServiceVerifier, 0))
	require.NoError(t, store.SaveProfile(ctx, "s1", domainauth.NormalizeUser(domainauth.RawUser{Username: "v"}), 0))

	require.NoError(t, store.Persist(ctx, "s1", "", "", 0))
	assert.False(t, mr.Exists("test:session:s1:token"))
	assert.False(t, mr.Exists("test:session:s1:service"))
	assert.False(t, mr.Exists("test:session:s1:profile"))

	got := store.Load(ctx, "s1")
	assert.Empty(t, got.Token)
	assert.Equal(t, backend.DefaultService, got.Service)
}

func TestSessionStore_EntriesAreIndependent(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Persist(ctx, "s1", "tok", backend.ServiceIssuer, 0))
	require.NoError(t, store.Persist(ctx, "s1", "", backend.ServiceIssuer, 0))

	assert.False(t, mr.Exists("test:session:s1:token"))
	got := store.Load(ctx, "s1")
	assert.Empty(t, got.Token)
	assert.Equal(t, backend.ServiceIssuer, got.Service)

	require.NoError(t, store.Persist(ctx, "s1", "tok2", "", 0))
	got = store.Load(ctx, "s1")
	assert.Equal(t, "tok2", got.Token)
	assert.Equal(t, backend.ServiceHolder, got.Service, "removed service falls back to holder")
}

func TestSessionStore_UnknownStoredServiceFallsBack(t *testing.T) {
	store, mr := newTestStore(t)
	require.NoError(t, mr.Set("test:session:s1:service", "registry"))

	got := store.Load(context.Background(), "s1")
	assert.Equal(t, backend.ServiceHolder, got.Service)
}

func TestSessionStore_Profile(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.LoadProfile(ctx, "s1")
	assert.True(t, IsNotFound(err))

	user := domainauth.NormalizeUser(domainauth.RawUser{ID: 4, Username: "ivy", Roles: []string{"Issuer"}})
	require.NoError(t, store.SaveProfile(ctx, "s1", user, time.Minute))

	got, err := store.LoadProfile(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, user, got)

	require.NoError(t, store.Clear(ctx, "s1"))
	_, err = store.LoadProfile(ctx, "s1")
	assert.True(t, IsNotFound(err))
}

func TestSessionStore_RedisDownLoadsDefaults(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Persist(ctx, "s1", "tok", backend.ServiceIssuer, 0))

	mr.Close()

	got := store.Load(ctx, "s1")
	assert.Equal(t, domainauth.StoredAuth{Service: backend.DefaultService}, got)
	assert.Error(t, store.Persist(ctx, "s1", "tok", backend.ServiceIssuer, 0))
}

func TestSessionStore_NilClient(t *testing.T) {
	store := NewSessionStore(nil, SessionStoreOptions{})
	ctx := context.Background()

	assert.Equal(t, backend.DefaultService, store.Load(ctx, "s1").Service)
	assert.NoError(t, store.Clear(ctx, "s1"))
	assert.Error(t, store.Persist(ctx, "s1", "tok", backend.ServiceHolder, 0))
}

func TestSessionStore_ListSessionIDs(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Persist(ctx, "a", "t1", backend.ServiceHolder, 0))
	require.NoError(t, store.Persist(ctx, "b", "t2", backend.ServiceIssuer, 0))
	require.NoError(t, store.Persist(ctx, "c", "", backend.ServiceIssuer, 0))

	ids, err := store.ListSessionIDs(ctx, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
}
