// Package mocks provides gomock implementations of the service ports.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockWalletAPI(ctrl)
//	api.EXPECT().GetCredentials(gomock.Any(), gomock.Any()).Return(creds, nil)
package mocks

// Backend surface used by WalletService and AuthService.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=wallet_api_mock.go github.com/cryptlocker/cryptlocker-ui-api/internal/ports WalletAPI
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_api_mock.go github.com/cryptlocker/cryptlocker-ui-api/internal/ports AuthAPI

// Local cache repositories used by CacheService and ReaperService.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cache_user_repository_mock.go github.com/cryptlocker/cryptlocker-ui-api/internal/ports CacheUserRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=document_repository_mock.go github.com/cryptlocker/cryptlocker-ui-api/internal/ports DocumentRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=mirror_repository_mock.go github.com/cryptlocker/cryptlocker-ui-api/internal/ports MirrorRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cache_reaper_repository_mock.go github.com/cryptlocker/cryptlocker-ui-api/internal/ports CacheReaperRepository
