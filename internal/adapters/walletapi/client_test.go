package walletapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptlocker/cryptlocker-ui-api/config"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/backend"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/observability/statsd"
)

// newTestClient points every backend at srv.
func newTestClient(t *testing.T, srv *httptest.Server, sink statsd.Sink) *Client {
	t.Helper()
	return NewClient(Options{
		Router: NewRouter(config.BackendsConfig{
			HolderBaseURL:   srv.URL + "/holder",
			IssuerBaseURL:   srv.URL + "/issuer",
			VerifierBaseURL: srv.URL + "/verifier",
		}),
		HTTPClient: srv.Client(),
		Metrics:    sink,
	})
}

func TestClient_HeadersAndJSONBody(t *testing.T) {
	var got *http.Request
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, nil)
	out, err := RequestJSON[map[string]bool](context.Background(), c, "/things", map[string]string{"a": "b"},
		RequestOptions{Method: http.MethodPost, Token: "tok", NoStore: true})
	require.NoError(t, err)

	assert.True(t, out["ok"])
	assert.Equal(t, "/holder/things", got.URL.Path, "default service is holder")
	assert.Equal(t, "Bearer tok", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "no-store", got.Header.Get("Cache-Control"))
	assert.JSONEq(t, `{"a":"b"}`, body)
}

func TestClient_NoTokenNoBodyNoContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	out, err := Request[map[string]any](context.Background(), newTestClient(t, srv, nil), "/ping", RequestOptions{})
	require.NoError(t, err)
	assert.Nil(t, out, "204 yields the zero value")
}

func TestClient_FormBodyKeepsFormContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "alice", r.PostForm.Get("username"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, nil).Do(context.Background(), "/auth/login", RequestOptions{
		Method: http.MethodPost,
		Form:   map[string][]string{"username": {"alice"}, "password": {"pw"}},
	})
	require.NoError(t, err)
}

func TestClient_ExplicitContentTypeWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/csv", r.Header.Get("Content-Type"))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, nil).Do(context.Background(), "/upload", RequestOptions{
		Method:  http.MethodPost,
		Body:    strings.NewReader("a,b"),
		Headers: http.Header{"Content-Type": {"text/csv"}},
	})
	require.NoError(t, err)
}

func TestClient_NonJSONBodyIsText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, nil)
	text, err := Request[string](context.Background(), c, "/greeting", RequestOptions{})
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	obj, err := Request[map[string]any](context.Background(), c, "/greeting", RequestOptions{})
	require.NoError(t, err)
	assert.Nil(t, obj)
}

func TestClient_ErrorDetailMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Username already registered"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, nil).Do(context.Background(), "/auth/register", RequestOptions{Method: http.MethodPost})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Username already registered", apiErr.Message)
	assert.Equal(t, map[string]any{"detail": "Username already registered"}, apiErr.Details)
	assert.Equal(t, ClassClient, Classify(err))
}

func TestClient_ErrorNonStringDetailIsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":[{"msg":"field required"}]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, nil).Do(context.Background(), "/x", RequestOptions{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, `[{"msg":"field required"}]`, apiErr.Message)
}

func TestClient_ErrorStatusTextFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, nil).Do(context.Background(), "/x", RequestOptions{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
	assert.Equal(t, "upstream down", apiErr.Details)
	assert.Equal(t, ClassServer, Classify(err))
}

func TestClient_ErrorMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, nil).Do(context.Background(), "/x", RequestOptions{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Unable to parse error response", apiErr.Message)
	details, ok := apiErr.Details.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, details["message"])
}

func TestClient_AuthFailureClass(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		_, err := newTestClient(t, srv, nil).Do(context.Background(), "/auth/me", RequestOptions{})
		srv.Close()

		assert.True(t, IsAuthFailure(err), "status %d", status)
	}
}

func TestClient_TransportErrorIsStatusZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	c := newTestClient(t, srv, nil)
	srv.Close()

	var rec statsd.Recorder
	c.metrics = &rec

	_, err := c.Do(context.Background(), "/credentials", RequestOptions{Operation: "list_credentials"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, ConnectErrorMessage, apiErr.Message)
	details, ok := apiErr.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, srv.URL+"/holder/credentials", details["url"])
	assert.NotEmpty(t, details["detail"])
	assert.Equal(t, ClassTransport, Classify(err))
	assert.False(t, IsAuthFailure(err))

	samples := rec.Find("backend.request")
	require.Len(t, samples, 1)
	assert.Equal(t, "transport", samples[0].Tags["error_class"])
}

func TestClient_CanceledContextUnwraps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(t, srv, nil).Do(ctx, "/x", RequestOptions{})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, ClassTransport, Classify(err))
}

func TestClient_RoutesByService(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
	}))
	defer srv.Close()

	c := newTestClient(t, srv, nil)
	for _, svc := range backend.Services() {
		_, err := c.Do(context.Background(), "auth/me", RequestOptions{Service: svc})
		require.NoError(t, err)
		assert.Equal(t, "/"+svc.String()+"/auth/me", path)
	}
}
