package httpx

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/cryptlocker/cryptlocker-ui-api/internal/domain/auth"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/backend"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/model"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/http/validation"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/service"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	State(ctx context.Context, sid string) service.AuthState
	StateForToken(ctx context.Context, stored domainauth.StoredAuth) service.AuthState
	Refresh(ctx context.Context, sid string) (service.AuthState, error)
	Login(ctx context.Context, in service.LoginInput) (*service.LoginResult, error)
	Register(ctx context.Context, sid string, req model.RegisterRequest, svc backend.Service) (*service.RegisterResult, error)
	Logout(ctx context.Context, sid string) error
}

// CookieSettings configures the session cookie.
type CookieSettings struct {
	Name   string
	Domain string
	TTL    time.Duration
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc       AuthServiceInterface
	Cookies   CookieSettings
	Validator *validation.Validator
	Logger    *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *AuthHandlers) errs() errorResponder {
	return errorResponder{auth: h.Svc, cookies: h.Cookies, logger: h.logger()}
}

func (h *AuthHandlers) sessionConfig() SessionConfig {
	return SessionConfig{Auth: h.Svc, CookieName: h.Cookies.Name}
}

func (h *AuthHandlers) cookieSessionID(r *http.Request) string {
	if c, err := r.Cookie(h.Cookies.Name); err == nil {
		return c.Value
	}
	return ""
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Service  string `json:"service"  validate:"omitempty,oneof=holder issuer verifier"`
}

// decodeLogin accepts either a JSON body or a URL-encoded/multipart form.
func decodeLogin(w http.ResponseWriter, r *http.Request) (loginRequest, bool) {
	var req loginRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		parse := r.ParseForm
		if mediaType == "multipart/form-data" {
			parse = func() error { return r.ParseMultipartForm(maxFormMemory) }
		}
		if err := parse(); err != nil {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
			return req, false
		}
		req.Username = r.FormValue("username")
		req.Password = r.FormValue("password")
		req.Service = r.FormValue("service")
	default:
		if !DecodeJSON(w, r, &req) {
			return req, false
		}
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Service = strings.ToLower(strings.TrimSpace(req.Service))
	return req, true
}

// Login authenticates against the selected backend and starts a new session.
// POST /api/auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeLogin(w, r)
	if !ok {
		return
	}
	if !validateRequest(w, h.Validator, req) {
		return
	}

	res, err := h.Svc.Login(r.Context(), service.LoginInput{
		SessionID: h.cookieSessionID(r),
		Username:  req.Username,
		Password:  req.Password,
		Service:   backend.Service(req.Service),
	})
	if err != nil {
		h.errs().writeKeepSession(w, r, err)
		return
	}

	setSessionCookie(w, r, h.Cookies, res.SessionID)
	WriteJSON(w, http.StatusOK, res)
}

type registerRequest struct {
	model.RegisterRequest
	Service string `json:"service" validate:"omitempty,oneof=holder issuer verifier"`
}

// Register creates a backend account and logs in with it.
// POST /api/auth/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.Service = strings.ToLower(strings.TrimSpace(req.Service))
	if !validateRequest(w, h.Validator, req) {
		return
	}

	res, err := h.Svc.Register(r.Context(), h.cookieSessionID(r), req.RegisterRequest, backend.Service(req.Service))
	if err != nil {
		h.errs().writeKeepSession(w, r, err)
		return
	}

	setSessionCookie(w, r, h.Cookies, res.Login.SessionID)
	WriteJSON(w, http.StatusCreated, res.User)
}

// Logout clears the session and its cookie. It always succeeds from the client's view.
// POST /api/auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sid := h.cookieSessionID(r); sid != "" {
		if err := h.Svc.Logout(r.Context(), sid); err != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		}
	}
	clearSessionCookie(w, r, h.Cookies)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// statusResponse is the body of /api/auth/status and /api/auth/refresh.
type statusResponse struct {
	Authenticated bool             `json:"authenticated"`
	Loading       bool             `json:"loading"`
	Service       backend.Service  `json:"service"`
	User          *domainauth.User `json:"user"`
}

func newStatusResponse(state service.AuthState) statusResponse {
	return statusResponse{
		Authenticated: state.Authenticated(),
		Loading:       state.Loading,
		Service:       state.Service,
		User:          state.User,
	}
}

// Status reports the caller's session without requiring one.
// GET /api/auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	state := resolveState(r, h.sessionConfig())
	if !state.Authenticated() && h.cookieSessionID(r) != "" {
		clearSessionCookie(w, r, h.Cookies)
	}
	WriteJSON(w, http.StatusOK, newStatusResponse(state))
}

// meResponse is the body of /api/auth/me.
type meResponse struct {
	User        domainauth.User   `json:"user"`
	Roles       []domainauth.Role `json:"roles"`
	Permissions []string          `json:"permissions"`
	Service     backend.Service   `json:"service"`
}

// Me returns the current profile and roles. An unknown profile answers 503 with
// Retry-After rather than 404.
// GET /api/auth/me.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	state, ok := GetAuthStateFromContext(r.Context())
	if !ok || !state.Authenticated() {
		writeAuthRequired(w)
		return
	}
	if state.Loading || state.User == nil {
		writeProfileLoading(w)
		return
	}
	WriteJSON(w, http.StatusOK, meResponse{
		User:        *state.User,
		Roles:       state.User.Roles,
		Permissions: state.User.Permissions,
		Service:     state.Service,
	})
}

// Refresh re-fetches the profile from the backend. A 401/403 ends the session;
// any other failure keeps it and is reported without clearing anything.
// POST /api/auth/refresh.
func (h *AuthHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	sid := h.cookieSessionID(r)
	if sid == "" {
		h.refreshBearer(w, r)
		return
	}

	state, err := h.Svc.Refresh(r.Context(), sid)
	if err == nil {
		WriteJSON(w, http.StatusOK, newStatusResponse(state))
		return
	}
	if !state.Authenticated() {
		clearSessionCookie(w, r, h.Cookies)
		if errors.Is(err, service.ErrNotAuthenticated) {
			writeAuthRequired(w)
			return
		}
	}
	h.errs().writeKeepSession(w, r, err)
}

func (h *AuthHandlers) refreshBearer(w http.ResponseWriter, r *http.Request) {
	if bearerToken(r) == "" {
		writeAuthRequired(w)
		return
	}
	state := resolveState(r, h.sessionConfig())
	switch {
	case !state.Authenticated():
		writeAuthRequired(w)
	case state.Loading:
		writeProfileLoading(w)
	default:
		WriteJSON(w, http.StatusOK, newStatusResponse(state))
	}
}

func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// setSessionCookie writes the session cookie for the configured TTL.
func setSessionCookie(w http.ResponseWriter, r *http.Request, cs CookieSettings, sid string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cs.Name,
		Value:    sid,
		Path:     "/",
		Domain:   cs.Domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(cs.TTL.Seconds()),
	})
}

// clearSessionCookie clears the session cookie by setting it to expire immediately.
// It mirrors key attributes (Secure, Path, Domain, SameSite) used when setting it
// to maximize compatibility across browsers during deletion.
func clearSessionCookie(w http.ResponseWriter, r *http.Request, cs CookieSettings) {
	http.SetCookie(w, &http.Cookie{
		Name:     cs.Name,
		Value:    "",
		Path:     "/",
		Domain:   cs.Domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}
