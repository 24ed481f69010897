package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptlocker/cryptlocker-ui-api/internal/adapters/walletapi"
	domainauth "github.com/cryptlocker/cryptlocker-ui-api/internal/domain/auth"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/backend"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/model"
)

func TestLogin_JSONSetsSessionCookie(t *testing.T) {
	env := newTestEnv(t)
	env.addUser("alice", "Holder", "admin")

	rec := env.do(jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice", "password": "pw", "service": "issuer",
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, "/", c.Path)
	assert.False(t, c.Secure)
	assert.NotEmpty(t, c.Value)

	body := decodeMap(t, rec)
	assert.Equal(t, "issuer-token-1", body["access_token"])
	assert.Equal(t, "bearer", body["token_type"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "holder", user["role"])
	assert.Equal(t, []any{"holder", "admin"}, user["roles"])

	stored := env.store.Load(context.Background(), c.Value)
	assert.Equal(t, "issuer-token-1", stored.Token)
	assert.Equal(t, backend.ServiceIssuer, stored.Service)
}

func TestLogin_FormEncodedBehindTLSProxy(t *testing.T) {
	env := newTestEnv(t)
	env.addUser("bob", "verifier")

	form := url.Values{"username": {"bob"}, "password": {"pw"}, "service": {"verifier"}}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Forwarded-Proto", "https")

	rec := env.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.True(t, c.Secure)
}

func TestLogin_Validation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{"username": "alice"}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeMap(t, rec)
	assert.Equal(t, "validation_failed", body["error"])
	assert.Equal(t, "password is required.", body["message"])

	rec = env.do(jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice", "password": "pw", "service": "admin",
	}))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec = env.do(req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_json", decodeMap(t, rec)["error"])
}

func TestLogin_BackendRejectsCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.authAPI.LoginFunc = func(context.Context, backend.Service, string, string) (model.LoginResponse, error) {
		return model.LoginResponse{}, &walletapi.APIError{Status: http.StatusUnauthorized, Message: "Incorrect username or password"}
	}

	rec := env.do(jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{"username": "x", "password": "y"}))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeMap(t, rec)
	assert.Equal(t, "authentication_required", body["error"])
	assert.Equal(t, "Incorrect username or password", body["message"])
	assert.Nil(t, sessionCookie(rec))
}

func TestLogin_BackendUnreachable(t *testing.T) {
	env := newTestEnv(t)
	env.authAPI.LoginFunc = func(context.Context, backend.Service, string, string) (model.LoginResponse, error) {
		return model.LoginResponse{}, &walletapi.APIError{Status: 0, Message: walletapi.ConnectErrorMessage}
	}

	rec := env.do(jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{"username": "x", "password": "y"}))
	require.Equal(t, http.StatusBadGateway, rec.Code)
	body := decodeMap(t, rec)
	assert.Equal(t, "backend_unreachable", body["error"])
	assert.Equal(t, walletapi.ConnectErrorMessage, body["message"])
	assert.Equal(t, float64(0), body["status"])
}

func TestRegister_CreatesAccountAndLogsIn(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(jsonRequest(http.MethodPost, "/api/auth/register", map[string]string{
		"username": "dave", "email": "dave@example.com", "password": "pw", "service": "holder",
	}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeMap(t, rec)
	assert.Equal(t, "dave", body["username"])
	require.NotNil(t, sessionCookie(rec))

	rec = env.do(jsonRequest(http.MethodPost, "/api/auth/register", map[string]string{
		"username": "erin", "email": "not-an-email", "password": "pw",
	}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email must be a valid email address.", decodeMap(t, rec)["message"])
}

func TestStatus_AnonymousAndAuthenticated(t *testing.T) {
	env := newTestEnv(t)
	env.addUser("alice", "holder")

	rec := env.get("/api/auth/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeMap(t, rec)
	assert.Equal(t, false, body["authenticated"])
	assert.Nil(t, body["user"])

	c := env.login("alice", "holder")
	rec = env.get("/api/auth/status", c)
	body = decodeMap(t, rec)
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, false, body["loading"])
	assert.Equal(t, "holder", body["service"])

	stale := &http.Cookie{Name: testCookieName, Value: "gone"}
	rec = env.get("/api/auth/status", stale)
	assert.Equal(t, false, decodeMap(t, rec)["authenticated"])
	cleared := sessionCookie(rec)
	require.NotNil(t, cleared)
	assert.Equal(t, -1, cleared.MaxAge)
}

func TestMe_RequiresSession(t *testing.T) {
	env := newTestEnv(t)
	env.addUser("alice", "issuer")

	rec := env.get("/api/auth/me", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authentication_required", decodeMap(t, rec)["error"])

	c := env.login("alice", "issuer")
	rec = env.get("/api/auth/me", c)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeMap(t, rec)
	assert.Equal(t, []any{"issuer"}, body["roles"])
	assert.Equal(t, "issuer", body["service"])
}

func TestLogout_ClearsSession(t *testing.T) {
	env := newTestEnv(t)
	env.addUser("alice", "holder")
	c := env.login("alice", "holder")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(c)
	rec := env.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := sessionCookie(rec)
	require.NotNil(t, cleared)
	assert.Equal(t, -1, cleared.MaxAge)

	assert.Empty(t, env.store.Load(context.Background(), c.Value).Token)
	assert.Equal(t, http.StatusUnauthorized, env.get("/api/auth/me", c).Code)
}

func TestRefresh(t *testing.T) {
	tests := []struct {
		name        string
		backendErr  error
		wantCode    int
		wantCleared bool
	}{
		{name: "success", wantCode: http.StatusOK},
		{
			name:        "401 clears the session",
			backendErr:  &walletapi.APIError{Status: http.StatusUnauthorized, Message: "Could not validate credentials"},
			wantCode:    http.StatusUnauthorized,
			wantCleared: true,
		},
		{
			name:        "403 clears the session",
			backendErr:  &walletapi.APIError{Status: http.StatusForbidden, Message: "Forbidden"},
			wantCode:    http.StatusUnauthorized,
			wantCleared: true,
		},
		{
			name:       "500 keeps the session",
			backendErr: &walletapi.APIError{Status: http.StatusInternalServerError, Message: "boom"},
			wantCode:   http.StatusBadGateway,
		},
		{
			name:       "transport failure keeps the session",
			backendErr: &walletapi.APIError{Status: 0, Message: walletapi.ConnectErrorMessage},
			wantCode:   http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.addUser("alice", "holder")
			c := env.login("alice", "holder")
			if tt.backendErr != nil {
				env.authAPI.CurrentUserFunc = func(context.Context, domainauth.StoredAuth) (domainauth.RawUser, error) {
					return domainauth.RawUser{}, tt.backendErr
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
			req.AddCookie(c)
			rec := env.do(req)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())

			token := env.store.Load(context.Background(), c.Value).Token
			if tt.wantCleared {
				assert.Empty(t, token)
				require.NotNil(t, sessionCookie(rec))
			} else {
				assert.Equal(t, "holder-token-1", token)
				assert.Nil(t, sessionCookie(rec))
			}
		})
	}
}

func TestRefresh_WithoutCredentials(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
