package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptlocker/cryptlocker-ui-api/internal/adapters/walletapi"
	apperrors "github.com/cryptlocker/cryptlocker-ui-api/internal/errors"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/service"
)

// logoutRecorder records Logout calls.
type logoutRecorder struct {
	AuthServiceInterface
	loggedOut []string
}

func (l *logoutRecorder) Logout(_ context.Context, sid string) error {
	l.loggedOut = append(l.loggedOut, sid)
	return nil
}

func newTestResponder() (errorResponder, *logoutRecorder) {
	rec := &logoutRecorder{}
	return errorResponder{
		auth:    rec,
		cookies: CookieSettings{Name: testCookieName},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, rec
}

func TestErrorResponder_LocalErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"validation", apperrors.Validation("alias too long"), http.StatusBadRequest, "validation"},
		{"not found", apperrors.NotFound("missing"), http.StatusNotFound, "not_found"},
		{"wrapped conflict", fmt.Errorf("create: %w", apperrors.Conflict("taken")), http.StatusConflict, "conflict"},
		{"not authenticated", service.ErrNotAuthenticated, http.StatusUnauthorized, "authentication_required"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := newTestResponder()
			rec := httptest.NewRecorder()
			resp.write(rec, httptest.NewRequest(http.MethodGet, "/api/x", nil), tt.err)

			require.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantErr, decodeMap(t, rec)["error"])
		})
	}
}

func TestErrorResponder_CanceledWritesNoBody(t *testing.T) {
	resp, _ := newTestResponder()
	rec := httptest.NewRecorder()
	resp.write(rec, httptest.NewRequest(http.MethodGet, "/api/x", nil), fmt.Errorf("list: %w", context.Canceled))

	assert.Equal(t, statusClientClosedRequest, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestErrorResponder_BackendDetailsPassThrough(t *testing.T) {
	resp, _ := newTestResponder()
	rec := httptest.NewRecorder()
	details := map[string]any{"field": "alias"}
	err := fmt.Errorf("create invitation: %w",
		&walletapi.APIError{Status: http.StatusUnprocessableEntity, Message: "Invalid alias", Details: details})

	resp.write(rec, httptest.NewRequest(http.MethodPost, "/api/connections/invitations", nil), err)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeMap(t, rec)
	assert.Equal(t, "backend_rejected", body["error"])
	assert.Equal(t, "Invalid alias", body["message"])
	assert.Equal(t, details, body["details"])
	assert.NotContains(t, body, "status")
}

func TestErrorResponder_AuthRejection(t *testing.T) {
	apiErr := &walletapi.APIError{Status: http.StatusForbidden, Message: "Not enough permissions"}

	t.Run("write ends the session", func(t *testing.T) {
		resp, calls := newTestResponder()
		req := httptest.NewRequest(http.MethodGet, "/api/credentials", nil)
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: "sid-1"})
		rec := httptest.NewRecorder()

		resp.write(rec, req, apiErr)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, []string{"sid-1"}, calls.loggedOut)
		c := sessionCookie(rec)
		require.NotNil(t, c)
		assert.Equal(t, -1, c.MaxAge)
	})

	t.Run("writeKeepSession leaves it alone", func(t *testing.T) {
		resp, calls := newTestResponder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: "sid-1"})
		rec := httptest.NewRecorder()

		resp.writeKeepSession(rec, req, apiErr)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, calls.loggedOut)
		assert.Nil(t, sessionCookie(rec))
	})

	t.Run("context session wins over the cookie", func(t *testing.T) {
		resp, calls := newTestResponder()
		req := httptest.NewRequest(http.MethodGet, "/api/credentials", nil)
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: "cookie-sid"})
		req = req.WithContext(SetAuthStateInContext(req.Context(), service.AuthState{SessionID: "ctx-sid", Token: "t"}))

		resp.write(httptest.NewRecorder(), req, apiErr)

		assert.Equal(t, []string{"ctx-sid"}, calls.loggedOut)
	})
}
