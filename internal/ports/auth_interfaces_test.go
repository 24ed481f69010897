package ports_test

import (
	"testing"

	"github.com/cryptlocker/cryptlocker-ui-api/internal/adapters/redis"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/adapters/walletapi"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/data"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/mocks"
	mockauth "github.com/cryptlocker/cryptlocker-ui-api/internal/mocks/auth"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/ports"
)

// This test only verifies that adapters and mocks conform to the ports at compile time.
func TestImplementationsSatisfyPorts(t *testing.T) {
	t.Helper()

	var _ ports.SessionStore = (*redis.SessionStore)(nil)
	var _ ports.SessionStore = (*mockauth.MemorySessionStore)(nil)
	var _ ports.AuthAPI = (*walletapi.Client)(nil)
	var _ ports.AuthAPI = (*mockauth.FakeAuthAPI)(nil)
	var _ ports.AuthAPI = (*mocks.MockAuthAPI)(nil)
	var _ ports.WalletAPI = (*walletapi.Client)(nil)
	var _ ports.WalletAPI = (*mocks.MockWalletAPI)(nil)

	var _ ports.CacheUserRepository = (*data.CacheUserRepo)(nil)
	var _ ports.CacheUserRepository = (*mocks.MockCacheUserRepository)(nil)
	var _ ports.DocumentRepository = (*data.DocumentRepo)(nil)
	var _ ports.DocumentRepository = (*mocks.MockDocumentRepository)(nil)
	var _ ports.MirrorRepository = (*data.MirrorRepo)(nil)
	var _ ports.MirrorRepository = (*mocks.MockMirrorRepository)(nil)
	var _ ports.CacheReaperRepository = (*data.CacheReaperRepo)(nil)
	var _ ports.CacheReaperRepository = (*mocks.MockCacheReaperRepository)(nil)
}
