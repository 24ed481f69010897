package reaper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cryptlocker/cryptlocker-ui-api/config"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/mocks"
)

func TestNewRunner_RequiresStorage(t *testing.T) {
	_, err := NewRunner(RunnerOptions{})
	require.Error(t, err)
}

func TestRunner_RunOnceUsesInjectedRepo(t *testing.T) {
	repo := mocks.NewMockCacheReaperRepository(gomock.NewController(t))
	repo.EXPECT().DeleteTokenMappingsOlderThan(gomock.Any(), gomock.Any(), 100).Return(int64(3), nil)

	r, err := NewRunner(RunnerOptions{
		Repo: repo,
		Config: config.ReaperConfig{
			Interval:           time.Minute,
			TokenMappingMaxAge: time.Hour,
			BatchSize:          100,
		},
	})
	require.NoError(t, err)

	res, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.TokenMappings)
	assert.Zero(t, res.Documents)
}
