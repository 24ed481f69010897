package walletapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/backend"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/observability/metrics"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/observability/statsd"
)

// Options configures a Client.
type Options struct {
	Router     *Router
	HTTPClient *http.Client
	Metrics    statsd.Sink
	Logger     *slog.Logger
}

// Client issues authenticated requests to the wallet backends and
// normalizes every failure into *APIError.
type Client struct {
	router  *Router
	http    *http.Client
	metrics statsd.Sink
	logger  *slog.Logger
}

// NewClient constructs a Client. A nil HTTPClient uses http.DefaultClient.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		router:  opts.Router,
		http:    hc,
		metrics: opts.Metrics,
		logger:  logger.With("component", "walletapi"),
	}
}

// Router exposes the URL resolver the client was built with.
func (c *Client) Router() *Router { return c.router }

// RequestOptions describes a single backend call.
type RequestOptions struct {
	Method  string
	Body    io.Reader
	Form    url.Values
	Headers http.Header
	Token   string
	// Service selects the backend. Empty means holder.
	Service backend.Service
	// NoStore asks intermediaries not to cache the response.
	NoStore bool
	// Operation names the call for metrics; defaults to the method.
	Operation string
}

// Response is a successful (2xx) backend response with its body fully read.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
	// JSON is true when the Content-Type declared application/json.
	JSON bool
}

// Text returns the body as a string.
func (r *Response) Text() string { return string(r.Body) }

// Do performs the request. Non-2xx statuses and transport failures come back as *APIError.
func (c *Client) Do(ctx context.Context, path string, opts RequestOptions) (*Response, error) {
	svc := opts.Service.Or(backend.DefaultService)
	target := c.router.ResolveURL(svc, path)
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := c.newRequest(ctx, method, target, opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		apiErr := transportError(target, err)
		c.logger.ErrorContext(ctx, "network error", "url", target, "error", err)
		c.observe(svc, method, opts.Operation, 0, time.Since(start), apiErr)
		return nil, apiErr
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	isJSON := strings.Contains(resp.Header.Get("Content-Type"), "application/json")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := statusError(resp.StatusCode, parseErrorBody(resp.StatusCode, body, isJSON, readErr))
		c.observe(svc, method, opts.Operation, resp.StatusCode, elapsed, apiErr)
		return nil, apiErr
	}
	if readErr != nil {
		apiErr := transportError(target, readErr)
		c.observe(svc, method, opts.Operation, resp.StatusCode, elapsed, apiErr)
		return nil, apiErr
	}

	c.observe(svc, method, opts.Operation, resp.StatusCode, elapsed, nil)
	out := &Response{Status: resp.StatusCode, Header: resp.Header, JSON: isJSON}
	if resp.StatusCode != http.StatusNoContent {
		out.Body = body
	}
	return out, nil
}

func (c *Client) newRequest(ctx context.Context, method, target string, opts RequestOptions) (*http.Request, error) {
	body := opts.Body
	formLike := false
	if opts.Form != nil {
		body = strings.NewReader(opts.Form.Encode())
		formLike = true
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, target, err)
	}
	for k, vs := range opts.Headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}
	if formLike && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if body != nil && !formLike && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if opts.NoStore {
		req.Header.Set("Cache-Control", "no-store")
		req.Header.Set("Pragma", "no-cache")
	}
	req.Header.Set("Accept", "application/json, text/plain;q=0.9, */*;q=0.8")
	return req, nil
}

func (c *Client) observe(svc backend.Service, method, op string, status int, d time.Duration, err error) {
	if op == "" {
		op = strings.ToLower(method)
	}
	metrics.EmitBackendRequest(c.metrics, metrics.BackendRequest{
		Service:   svc.String(),
		Operation: op,
		Status:    status,
		Duration:  d,
		Err:       err,
	})
}

// parseErrorBody mirrors success-path parsing for error responses: JSON when
// declared, raw text otherwise, and a descriptive object when parsing fails.
func parseErrorBody(status int, body []byte, isJSON bool, readErr error) any {
	if readErr != nil {
		return map[string]any{"detail": "Unable to parse error response", "message": readErr.Error()}
	}
	if status == http.StatusNoContent {
		return nil
	}
	if !isJSON {
		return string(body)
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return map[string]any{"detail": "Unable to parse error response", "message": err.Error()}
	}
	return v
}

// Request performs the call and decodes a JSON body into T. A 204 or empty
// body yields the zero value; a non-JSON body yields the zero value unless T is string.
func Request[T any](ctx context.Context, c *Client, path string, opts RequestOptions) (T, error) {
	var out T
	resp, err := c.Do(ctx, path, opts)
	if err != nil {
		return out, err
	}
	return decode[T](resp)
}

// RequestJSON encodes body as JSON and performs the call. A nil body sends no body at all.
func RequestJSON[T any](ctx context.Context, c *Client, path string, body any, opts RequestOptions) (T, error) {
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			var zero T
			return zero, fmt.Errorf("encode request body: %w", err)
		}
		opts.Body = bytes.NewReader(buf)
	}
	return Request[T](ctx, c, path, opts)
}

func decode[T any](resp *Response) (T, error) {
	var out T
	if len(resp.Body) == 0 {
		return out, nil
	}
	if !resp.JSON {
		if p, ok := any(&out).(*string); ok {
			*p = resp.Text()
		}
		return out, nil
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return out, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}
