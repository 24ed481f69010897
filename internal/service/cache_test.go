package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/cryptlocker/cryptlocker-ui-api/config"
	domainauth "github.com/cryptlocker/cryptlocker-ui-api/internal/domain/auth"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/model"
	apperrors "github.com/cryptlocker/cryptlocker-ui-api/internal/errors"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/mocks"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/observability/statsd"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/ports"
)

type cacheFixture struct {
	users    *mocks.MockCacheUserRepository
	docs     *mocks.MockDocumentRepository
	mirror   *mocks.MockMirrorRepository
	recorder *statsd.Recorder
	svc      *CacheService
}

func newCacheFixture(t *testing.T) cacheFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := cacheFixture{
		users:    mocks.NewMockCacheUserRepository(ctrl),
		docs:     mocks.NewMockDocumentRepository(ctrl),
		mirror:   mocks.NewMockMirrorRepository(ctrl),
		recorder: &statsd.Recorder{},
	}
	svc, err := NewCacheService(CacheServiceOptions{
		Repos: CacheRepos{Users: f.users, Documents: f.docs, Mirror: f.mirror},
		Config: config.CacheConfig{
			Enabled:        true,
			SyncRetries:    2,
			SyncBackoff:    time.Millisecond,
			MaxUploadBytes: 1024,
		},
		Observability: CacheObservability{Metrics: f.recorder},
	})
	require.NoError(t, err)
	f.svc = svc
	return f
}

func TestNewCacheService_RequiresRepos(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockCacheUserRepository(ctrl)
	docs := mocks.NewMockDocumentRepository(ctrl)

	_, err := NewCacheService(CacheServiceOptions{})
	require.Error(t, err)
	_, err = NewCacheService(CacheServiceOptions{Repos: CacheRepos{Users: users}})
	require.Error(t, err)
	_, err = NewCacheService(CacheServiceOptions{Repos: CacheRepos{Users: users, Documents: docs}})
	require.Error(t, err)
}

func TestCacheService_SyncUser_CreatesMissingUser(t *testing.T) {
	f := newCacheFixture(t)
	ctx := context.Background()
	created := &model.CachedUser{ID: 7, Username: "alice", Role: "holder"}

	gomock.InOrder(
		f.users.EXPECT().GetByUsername(gomock.Any(), "alice").Return(nil, ports.ErrUserNotFound),
		f.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req model.CreateCachedUserRequest) (*model.CachedUser, error) {
				assert.Equal(t, model.SyncedPasswordHash, req.PasswordHash)
				assert.Equal(t, "holder", req.Role)
				require.NotNil(t, req.FullName)
				assert.Equal(t, "Alice A", *req.FullName)
				return created, nil
			}),
		f.users.EXPECT().MapToken(gomock.Any(), "tok", "alice", int64(7)).Return(nil),
	)

	got, err := f.svc.SyncUser(ctx, "tok", SyncUserInput{Username: " alice ", FullName: "Alice A"})
	require.NoError(t, err)
	assert.Equal(t, created, got)

	ops := f.recorder.Find("cache.op")
	require.Len(t, ops, 1)
	assert.Equal(t, "success", ops[0].Tags["result"])
}

func TestCacheService_SyncUser_ExistingUser(t *testing.T) {
	f := newCacheFixture(t)
	existing := &model.CachedUser{ID: 3, Username: "bob"}

	f.users.EXPECT().GetByUsername(gomock.Any(), "bob").Return(existing, nil)
	f.users.EXPECT().MapToken(gomock.Any(), "tok", "bob", int64(3)).Return(nil)

	got, err := f.svc.SyncUser(context.Background(), "tok", SyncUserInput{Username: "bob"})
	require.NoError(t, err)
	assert.Equal(t, existing, got)
}

func TestCacheService_SyncUser_ConcurrentCreateFallsBackToLookup(t *testing.T) {
	f := newCacheFixture(t)
	existing := &model.CachedUser{ID: 4, Username: "carol"}

	gomock.InOrder(
		f.users.EXPECT().GetByUsername(gomock.Any(), "carol").Return(nil, ports.ErrUserNotFound),
		f.users.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, &apperrors.AppError{Code: apperrors.ErrCodeConflict, Field: "username"}),
		f.users.EXPECT().GetByUsername(gomock.Any(), "carol").Return(existing, nil),
		f.users.EXPECT().MapToken(gomock.Any(), "tok", "carol", int64(4)).Return(nil),
	)

	got, err := f.svc.SyncUser(context.Background(), "tok", SyncUserInput{Username: "carol"})
	require.NoError(t, err)
	assert.Equal(t, existing, got)
}

func TestCacheService_SyncUser_RetriesTransientFailures(t *testing.T) {
	f := newCacheFixture(t)
	existing := &model.CachedUser{ID: 3, Username: "bob"}
	transient := errors.New("connection reset")

	f.users.EXPECT().GetByUsername(gomock.Any(), "bob").Return(existing, nil).Times(2)
	gomock.InOrder(
		f.users.EXPECT().MapToken(gomock.Any(), "tok", "bob", int64(3)).Return(transient),
		f.users.EXPECT().MapToken(gomock.Any(), "tok", "bob", int64(3)).Return(nil),
	)

	_, err := f.svc.SyncUser(context.Background(), "tok", SyncUserInput{Username: "bob"})
	require.NoError(t, err)

	retries := f.recorder.Find("cache.retry")
	require.Len(t, retries, 1)
	assert.InDelta(t, 1.0, retries[0].Value, 0)
}

func TestCacheService_SyncUser_GivesUpAfterRetries(t *testing.T) {
	f := newCacheFixture(t)
	transient := errors.New("connection reset")

	f.users.EXPECT().GetByUsername(gomock.Any(), "bob").Return(nil, transient).Times(3)

	_, err := f.svc.SyncUser(context.Background(), "tok", SyncUserInput{Username: "bob"})
	require.ErrorIs(t, err, transient)

	ops := f.recorder.Find("cache.op")
	require.Len(t, ops, 1)
	assert.Equal(t, "error", ops[0].Tags["result"])
}

func TestCacheService_SyncUser_RequiresUsername(t *testing.T) {
	f := newCacheFixture(t)

	_, err := f.svc.SyncUser(context.Background(), "tok", SyncUserInput{Username: "  "})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, MsgUsernameRequired, err.Error())
}

func TestCacheService_SyncSessionUser(t *testing.T) {
	f := newCacheFixture(t)
	f.users.EXPECT().GetByUsername(gomock.Any(), "dave").Return(nil, ports.ErrUserNotFound)
	f.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req model.CreateCachedUserRequest) (*model.CachedUser, error) {
			assert.Equal(t, "issuer", req.Role)
			assert.Equal(t, "dave@example.com", req.Email)
			return &model.CachedUser{ID: 11, Username: req.Username}, nil
		})
	f.users.EXPECT().MapToken(gomock.Any(), "tok", "dave", int64(11)).Return(nil)

	err := f.svc.SyncSessionUser(context.Background(), "tok", domainauth.User{
		Username: "dave",
		Email:    "dave@example.com",
		Role:     domainauth.RoleIssuer,
	})
	require.NoError(t, err)
}

func TestCacheService_RegisterLocal(t *testing.T) {
	t.Run("hashes password", func(t *testing.T) {
		f := newCacheFixture(t)
		f.users.EXPECT().GetByUsername(gomock.Any(), "erin").Return(nil, ports.ErrUserNotFound)
		f.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req model.CreateCachedUserRequest) (*model.CachedUser, error) {
				require.NoError(t, bcrypt.CompareHashAndPassword([]byte(req.PasswordHash), []byte("pw")))
				assert.Equal(t, "holder", req.Role)
				return &model.CachedUser{ID: 1, Username: req.Username, Email: req.Email}, nil
			})

		u, err := f.svc.RegisterLocal(context.Background(), RegisterLocalInput{
			Username: "erin", Email: "erin@example.com", Password: "pw",
		})
		require.NoError(t, err)
		assert.Equal(t, "erin", u.Username)
	})

	t.Run("missing fields", func(t *testing.T) {
		f := newCacheFixture(t)
		_, err := f.svc.RegisterLocal(context.Background(), RegisterLocalInput{Username: "erin"})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.Equal(t, MsgRegisterFieldsNeeded, err.Error())
	})

	t.Run("duplicate username", func(t *testing.T) {
		f := newCacheFixture(t)
		f.users.EXPECT().GetByUsername(gomock.Any(), "erin").Return(&model.CachedUser{ID: 1}, nil)

		_, err := f.svc.RegisterLocal(context.Background(), RegisterLocalInput{
			Username: "erin", Email: "erin@example.com", Password: "pw",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
		assert.Equal(t, MsgUsernameExists, err.Error())
	})
}

func TestCacheService_UploadDocument(t *testing.T) {
	t.Run("stores base64 content", func(t *testing.T) {
		f := newCacheFixture(t)
		f.users.EXPECT().GetByToken(gomock.Any(), "tok").Return(&model.CachedUser{ID: 5}, nil)
		f.docs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req model.CreateDocumentRequest) (int64, error) {
				assert.Equal(t, int64(5), req.UserID)
				assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("hello")), req.FileContent)
				require.NotNil(t, req.FileSize)
				assert.Equal(t, int64(5), *req.FileSize)
				require.NotNil(t, req.CredentialID)
				assert.Equal(t, "cred-1", *req.CredentialID)
				require.NotNil(t, req.FileType)
				assert.Equal(t, "text/plain", *req.FileType)
				return 42, nil
			})

		id, err := f.svc.UploadDocument(context.Background(), "tok", UploadInput{
			FileName:     "a.txt",
			FileType:     "text/plain",
			Content:      []byte("hello"),
			CredentialID: "cred-1",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newCacheFixture(t)
		f.users.EXPECT().GetByToken(gomock.Any(), "tok").Return(nil, ports.ErrUserNotFound)

		_, err := f.svc.UploadDocument(context.Background(), "tok", UploadInput{FileName: "a.txt"})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
		assert.Equal(t, MsgUserNotRegistered, err.Error())
	})

	t.Run("no file", func(t *testing.T) {
		f := newCacheFixture(t)
		_, err := f.svc.UploadDocument(context.Background(), "tok", UploadInput{})
		require.Error(t, err)
		assert.Equal(t, MsgNoFileProvided, err.Error())
	})
}

func TestCacheService_ListDocuments(t *testing.T) {
	f := newCacheFixture(t)
	docs := []model.UploadedDocument{{ID: 2, FileName: "b"}, {ID: 1, FileName: "a"}}

	f.users.EXPECT().GetByToken(gomock.Any(), "tok").Return(&model.CachedUser{ID: 5}, nil).Times(2)
	f.docs.EXPECT().List(gomock.Any(), int64(5), gomock.Nil()).Return(docs, nil)
	f.docs.EXPECT().List(gomock.Any(), int64(5), gomock.Not(gomock.Nil())).DoAndReturn(
		func(_ context.Context, _ int64, credentialID *string) ([]model.UploadedDocument, error) {
			assert.Equal(t, "cred-1", *credentialID)
			return docs[:1], nil
		})

	all, err := f.svc.ListDocuments(context.Background(), "tok", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := f.svc.ListDocuments(context.Background(), "tok", "cred-1")
	require.NoError(t, err)
	assert.Len(t, filtered, 1)
}

func TestCacheService_ListDocuments_UnknownUser(t *testing.T) {
	f := newCacheFixture(t)
	f.users.EXPECT().GetByToken(gomock.Any(), "tok").Return(nil, ports.ErrUserNotFound)

	_, err := f.svc.ListDocuments(context.Background(), "tok", "")
	require.Error(t, err)
	assert.Equal(t, MsgUserNotFound, err.Error())
}

func TestCacheService_Stats(t *testing.T) {
	f := newCacheFixture(t)
	want := model.DashboardStats{CredentialsIssued: 3, ActiveConnections: 2, PendingOffers: 1}

	f.users.EXPECT().GetByToken(gomock.Any(), "known").Return(&model.CachedUser{ID: 5}, nil)
	f.mirror.EXPECT().Stats(gomock.Any(), int64(5)).Return(want, nil)
	f.users.EXPECT().GetByToken(gomock.Any(), "unknown").Return(nil, ports.ErrUserNotFound)

	got, err := f.svc.Stats(context.Background(), "known")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	zero, err := f.svc.Stats(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Equal(t, model.DashboardStats{}, zero)
}

func TestCacheService_MirrorCredentials(t *testing.T) {
	f := newCacheFixture(t)
	creds := []model.Credential{{CredentialID: "c1", State: "issued"}}

	f.users.EXPECT().GetByToken(gomock.Any(), "tok").Return(&model.CachedUser{ID: 5}, nil)
	f.mirror.EXPECT().UpsertCredentials(gomock.Any(), int64(5), creds).Return(nil)

	require.NoError(t, f.svc.MirrorCredentials(context.Background(), "tok", creds))
}

func TestCacheService_MirrorSkipsUnknownUser(t *testing.T) {
	f := newCacheFixture(t)
	f.users.EXPECT().GetByToken(gomock.Any(), "tok").Return(nil, ports.ErrUserNotFound)

	require.NoError(t, f.svc.MirrorConnections(context.Background(), "tok", []model.Connection{{ConnectionID: "x"}}))
	require.NoError(t, f.svc.MirrorOffers(context.Background(), "", nil))
}

func TestRetryable(t *testing.T) {
	assert.True(t, retryable(errors.New("boom")))
	assert.False(t, retryable(context.Canceled))
	assert.False(t, retryable(apperrors.Validation("bad")))
	assert.False(t, retryable(apperrors.Conflict("dup")))
	assert.False(t, retryable(apperrors.NotFound("gone")))
	assert.False(t, retryable(ports.ErrUserNotFound))
}
