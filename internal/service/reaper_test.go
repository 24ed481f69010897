package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cryptlocker/cryptlocker-ui-api/config"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/mocks"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/observability/statsd"
)

func testReaperConfig() config.ReaperConfig {
	return config.ReaperConfig{
		Interval:           time.Minute,
		TokenMappingMaxAge: 30 * 24 * time.Hour,
		DocumentMaxAge:     90 * 24 * time.Hour,
		BatchSize:          100,
	}
}

func TestNewReaperService(t *testing.T) {
	t.Run("creates service with valid options", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, err := NewReaperService(ReaperServiceOptions{
			Repo:   mocks.NewMockCacheReaperRepository(ctrl),
			Config: testReaperConfig(),
			Logger: slog.Default(),
		})
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("returns error when repo is nil", func(t *testing.T) {
		_, err := NewReaperService(ReaperServiceOptions{Config: testReaperConfig()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CacheReaperRepository is required")
	})
}

func TestReaperService_RunOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCacheReaperRepository(ctrl)
	recorder := &statsd.Recorder{}
	cfg := testReaperConfig()

	svc, err := NewReaperService(ReaperServiceOptions{Repo: repo, Config: cfg, Metrics: recorder})
	require.NoError(t, err)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	tokenCutoff := now.Add(-cfg.TokenMappingMaxAge)
	docCutoff := now.Add(-cfg.DocumentMaxAge)

	gomock.InOrder(
		repo.EXPECT().DeleteTokenMappingsOlderThan(gomock.Any(), tokenCutoff, 100).Return(int64(100), nil),
		repo.EXPECT().DeleteTokenMappingsOlderThan(gomock.Any(), tokenCutoff, 100).Return(int64(20), nil),
	)
	repo.EXPECT().DeleteDocumentsOlderThan(gomock.Any(), docCutoff, 100).Return(int64(0), nil)

	res, err := svc.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PruneResult{TokenMappings: 120, Documents: 0}, res)

	ops := recorder.Find("reaper.cleanup_operation")
	require.Len(t, ops, 2)
	assert.Equal(t, "token_mappings", ops[0].Tags["step"])
	assert.Equal(t, "success", ops[0].Tags["result"])
	assert.Equal(t, "documents", ops[1].Tags["step"])
	assert.Equal(t, "noop", ops[1].Tags["result"])
}

func TestReaperService_RunOnce_SkipsDisabledSteps(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCacheReaperRepository(ctrl)
	cfg := testReaperConfig()
	cfg.DocumentMaxAge = 0

	svc, err := NewReaperService(ReaperServiceOptions{Repo: repo, Config: cfg})
	require.NoError(t, err)

	repo.EXPECT().DeleteTokenMappingsOlderThan(gomock.Any(), gomock.Any(), 100).Return(int64(3), nil)

	res, err := svc.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.TokenMappings)
}

func TestReaperService_RunOnce_ContinuesAfterStepError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCacheReaperRepository(ctrl)
	recorder := &statsd.Recorder{}

	svc, err := NewReaperService(ReaperServiceOptions{Repo: repo, Config: testReaperConfig(), Metrics: recorder})
	require.NoError(t, err)

	boom := errors.New("lock timeout")
	repo.EXPECT().DeleteTokenMappingsOlderThan(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), boom)
	repo.EXPECT().DeleteDocumentsOlderThan(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(4), nil)

	res, err := svc.RunOnce(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "prune token_mappings")
	assert.Equal(t, int64(4), res.Documents)

	ops := recorder.Find("reaper.cleanup_operation")
	require.Len(t, ops, 2)
	assert.Equal(t, "error", ops[0].Tags["result"])
}

func TestReaperService_Run_StopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCacheReaperRepository(ctrl)
	cfg := testReaperConfig()
	cfg.Interval = 10 * time.Millisecond

	svc, err := NewReaperService(ReaperServiceOptions{Repo: repo, Config: cfg})
	require.NoError(t, err)

	repo.EXPECT().DeleteTokenMappingsOlderThan(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()
	repo.EXPECT().DeleteDocumentsOlderThan(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop after cancel")
	}
}
