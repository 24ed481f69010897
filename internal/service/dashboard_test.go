package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/model"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/mocks"
)

type stubStats struct {
	stats model.DashboardStats
	err   error
}

func (s stubStats) Stats(context.Context, string) (model.DashboardStats, error) { return s.stats, s.err }

func expectDashboardLists(api *mocks.MockWalletAPI) {
	api.EXPECT().GetCredentials(gomock.Any(), issuerAuth).Return([]model.Credential{{CredentialID: "a"}, {CredentialID: "b"}}, nil)
	api.EXPECT().GetConnections(gomock.Any(), issuerAuth).Return([]model.Connection{
		{ConnectionID: "1", State: "active"},
		{ConnectionID: "2", State: "invitation"},
		{ConnectionID: "3", State: "active"},
	}, nil)
	api.EXPECT().GetCredentialOffers(gomock.Any(), issuerAuth).Return([]model.CredentialOffer{
		{CredentialExchangeID: "x", State: "offer_received"},
		{CredentialExchangeID: "y", State: "credential_acked"},
	}, nil)
	api.EXPECT().GetProofRequests(gomock.Any(), issuerAuth).Return([]model.ProofRequest{{PresentationExchangeID: "p"}}, nil)
	api.EXPECT().GetNotifications(gomock.Any(), issuerAuth).Return([]model.Notification{
		{ID: 1, IsRead: true},
		{ID: 2},
	}, nil)
}

func TestDashboardService_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockWalletAPI(ctrl)
	wallet := newTestWalletService(t, api, nil)
	local := model.DashboardStats{CredentialsIssued: 2, ActiveConnections: 2, PendingOffers: 1}

	svc, err := NewDashboardService(DashboardServiceOptions{Wallet: wallet, Stats: stubStats{stats: local}})
	require.NoError(t, err)
	expectDashboardLists(api)

	got, err := svc.Summary(context.Background(), issuerAuth)
	require.NoError(t, err)
	assert.Equal(t, DashboardSummary{
		Credentials:         2,
		Connections:         3,
		ActiveConnections:   2,
		PendingOffers:       1,
		ProofRequests:       1,
		Notifications:       2,
		UnreadNotifications: 1,
		Local:               &local,
	}, got)
}

func TestDashboardService_Summary_LocalStatsBestEffort(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockWalletAPI(ctrl)
	wallet := newTestWalletService(t, api, nil)

	svc, err := NewDashboardService(DashboardServiceOptions{Wallet: wallet, Stats: stubStats{err: errors.New("db down")}})
	require.NoError(t, err)
	expectDashboardLists(api)

	got, err := svc.Summary(context.Background(), issuerAuth)
	require.NoError(t, err)
	assert.Nil(t, got.Local)
	assert.Equal(t, 2, got.Credentials)
}

func TestDashboardService_Summary_BackendFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockWalletAPI(ctrl)
	wallet := newTestWalletService(t, api, nil)
	svc, err := NewDashboardService(DashboardServiceOptions{Wallet: wallet})
	require.NoError(t, err)

	unauthorized := statusErr{401}
	api.EXPECT().GetCredentials(gomock.Any(), issuerAuth).Return(nil, unauthorized)
	api.EXPECT().GetConnections(gomock.Any(), issuerAuth).Return(nil, nil).AnyTimes()
	api.EXPECT().GetCredentialOffers(gomock.Any(), issuerAuth).Return(nil, nil).AnyTimes()
	api.EXPECT().GetProofRequests(gomock.Any(), issuerAuth).Return(nil, nil).AnyTimes()
	api.EXPECT().GetNotifications(gomock.Any(), issuerAuth).Return(nil, nil).AnyTimes()

	_, err = svc.Summary(context.Background(), issuerAuth)
	require.ErrorIs(t, err, unauthorized)
	assert.True(t, isAuthRejection(err))
}

func TestNewDashboardService_RequiresWallet(t *testing.T) {
	_, err := NewDashboardService(DashboardServiceOptions{})
	require.Error(t, err)
}
