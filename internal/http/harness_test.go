package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	redisstore "github.com/cryptlocker/cryptlocker-ui-api/internal/adapters/redis"
	domainauth "github.com/cryptlocker/cryptlocker-ui-api/internal/domain/auth"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/mocks"
	mockauth "github.com/cryptlocker/cryptlocker-ui-api/internal/mocks/auth"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/service"
)

const (
	testCookieName   = "session_id"
	testSessionTTL   = time.Hour
	testSessionStore = "test:session:"
)

// testEnv wires the real router and services over miniredis, a fake auth backend
// and a gomock wallet backend.
type testEnv struct {
	t       *testing.T
	mr      *miniredis.Miniredis
	store   *redisstore.SessionStore
	authAPI *mockauth.FakeAuthAPI
	wallet  *mocks.MockWalletAPI
	auth    *service.AuthService
	handler http.Handler
}

type envOption func(*RouterServices)

func withCache(c *service.CacheService) envOption {
	return func(rs *RouterServices) { rs.Cache = c }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := redisstore.NewSessionStore(client, redisstore.SessionStoreOptions{Prefix: testSessionStore})
	authAPI := mockauth.NewFakeAuthAPI()
	authSvc, err := service.NewAuthService(service.AuthServiceOptions{
		API:      authAPI,
		Sessions: store,
		Settings: service.AuthSettings{SessionTTL: testSessionTTL},
	})
	require.NoError(t, err)

	wallet := mocks.NewMockWalletAPI(gomock.NewController(t))
	walletSvc, err := service.NewWalletService(service.WalletServiceOptions{API: wallet})
	require.NoError(t, err)
	dashboardSvc, err := service.NewDashboardService(service.DashboardServiceOptions{Wallet: walletSvc})
	require.NoError(t, err)

	rs := RouterServices{
		Auth:      authSvc,
		Wallet:    walletSvc,
		Dashboard: dashboardSvc,
		Cookies:   CookieSettings{Name: testCookieName, TTL: testSessionTTL},
	}
	for _, opt := range opts {
		opt(&rs)
	}

	return &testEnv{
		t:       t,
		mr:      mr,
		store:   store,
		authAPI: authAPI,
		wallet:  wallet,
		auth:    authSvc,
		handler: NewRouter(rs),
	}
}

// addUser registers a backend user with the given roles and password "pw".
func (e *testEnv) addUser(username string, roles ...string) {
	e.authAPI.AddUser(domainauth.RawUser{Username: username, Email: username + "@example.com", Roles: roles}, "pw")
}

// login logs username in against svc and returns the session cookie.
func (e *testEnv) login(username, svc string) *http.Cookie {
	e.t.Helper()
	rec := e.do(jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{
		"username": username, "password": "pw", "service": svc,
	}))
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())
	c := sessionCookie(rec)
	require.NotNil(e.t, c)
	return c
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// get performs a GET carrying the session cookie.
func (e *testEnv) get(path string, c *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if c != nil {
		req.AddCookie(c)
	}
	return e.do(req)
}

func jsonRequest(method, path string, body any) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookieName {
			return c
		}
	}
	return nil
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
