package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cryptlocker/cryptlocker-ui-api/internal/adapters/walletapi"
	apperrors "github.com/cryptlocker/cryptlocker-ui-api/internal/errors"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/service"
)

// backendFailureMessage replaces the body of backend 5xx responses shown to clients.
const backendFailureMessage = "The wallet service failed to process the request."

// statusClientClosedRequest is logged and returned when the caller went away.
const statusClientClosedRequest = 499

// backendErrorBody is the JSON shape for failures that came from a wallet backend.
type backendErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  *int   `json:"status,omitempty"`
	Details any    `json:"details,omitempty"`
}

// errorResponder maps service and backend failures onto JSON responses.
// Backend auth rejections also end the caller's session.
type errorResponder struct {
	auth    AuthServiceInterface
	cookies CookieSettings
	logger  *slog.Logger
}

// write renders err and clears the session on a backend 401/403.
func (e errorResponder) write(w http.ResponseWriter, r *http.Request, err error) {
	e.render(w, r, err, true)
}

// writeKeepSession renders err without touching the session, for flows such as
// login where a rejection says nothing about the existing session.
func (e errorResponder) writeKeepSession(w http.ResponseWriter, r *http.Request, err error) {
	e.render(w, r, err, false)
}

func (e errorResponder) render(w http.ResponseWriter, r *http.Request, err error, clearOnAuth bool) {
	var apiErr *walletapi.APIError
	if errors.As(err, &apiErr) {
		e.renderBackend(w, r, apiErr, clearOnAuth)
		return
	}
	e.renderLocal(w, r, err)
}

func (e errorResponder) renderBackend(w http.ResponseWriter, r *http.Request, apiErr *walletapi.APIError, clearOnAuth bool) {
	switch walletapi.Classify(apiErr) {
	case walletapi.ClassTransport:
		status := 0
		e.logger.WarnContext(r.Context(), "wallet backend unreachable", "path", r.URL.Path, "error", apiErr)
		WriteJSON(w, http.StatusBadGateway, backendErrorBody{
			Error:   "backend_unreachable",
			Message: apiErr.Message,
			Status:  &status,
			Details: apiErr.Details,
		})
	case walletapi.ClassAuth:
		if clearOnAuth {
			e.endSession(w, r)
		}
		WriteJSON(w, http.StatusUnauthorized, backendErrorBody{
			Error:   "authentication_required",
			Message: apiErr.Message,
		})
	case walletapi.ClassClient:
		WriteJSON(w, apiErr.Status, backendErrorBody{
			Error:   "backend_rejected",
			Message: apiErr.Message,
			Details: apiErr.Details,
		})
	case walletapi.ClassServer, walletapi.ClassNone, walletapi.ClassUnknown:
		e.logger.ErrorContext(r.Context(), "wallet backend failure",
			"path", r.URL.Path, "status", apiErr.Status, "error", apiErr)
		WriteJSON(w, http.StatusBadGateway, backendErrorBody{
			Error:   "backend_failure",
			Message: backendFailureMessage,
			Details: apiErr.Details,
		})
	}
}

func (e errorResponder) renderLocal(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		status := appErr.Code.HTTPStatus()
		if status >= http.StatusInternalServerError {
			e.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		}
		WriteJSON(w, status, map[string]string{"error": string(appErr.Code), "message": appErr.Message})
	case errors.Is(err, service.ErrNotAuthenticated):
		writeAuthRequired(w)
	case errors.Is(err, context.Canceled):
		e.logger.DebugContext(r.Context(), "request canceled", "path", r.URL.Path)
		w.WriteHeader(statusClientClosedRequest)
	case errors.Is(err, context.DeadlineExceeded):
		WriteError(w, ErrorParams{Code: http.StatusGatewayTimeout, ErrCode: "timeout", Err: errors.New("request timed out")})
	default:
		e.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "internal_error",
			Err:     errors.New("internal server error"),
		})
	}
}

// endSession clears the stored session and the browser cookie.
func (e errorResponder) endSession(w http.ResponseWriter, r *http.Request) {
	sid := sessionIDFromRequest(r, e.cookies.Name)
	if sid == "" {
		return
	}
	if err := e.auth.Logout(r.Context(), sid); err != nil {
		e.logger.WarnContext(r.Context(), "failed to clear rejected session", "error", err)
	}
	clearSessionCookie(w, r, e.cookies)
}

// sessionIDFromRequest prefers the state resolved by middleware and falls back to the cookie.
func sessionIDFromRequest(r *http.Request, cookieName string) string {
	if state, ok := GetAuthStateFromContext(r.Context()); ok && state.SessionID != "" {
		return state.SessionID
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}
