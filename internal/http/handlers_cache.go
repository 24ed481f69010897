package httpx

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	apperrors "github.com/cryptlocker/cryptlocker-ui-api/internal/errors"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/http/validation"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/service"
)

// Messages specific to the local cache routes.
const (
	msgUnauthorized     = "Unauthorized"
	msgCacheDisabled    = "Local cache is disabled"
	msgInvalidBody      = "Invalid request body"
	msgFileTooLarge     = "File too large"
	msgUserCreated      = "User created successfully in database"
	msgFileUploaded     = "File uploaded successfully"
	msgRegisterHint     = "Registration creates user in database"
	msgSyncFailed       = "Failed to sync user"
	msgCreateFailed     = "Failed to create user"
	msgUploadFailed     = "Failed to upload file"
	msgDocumentsFailed  = "Failed to fetch documents"
	msgStatsFailed      = "Failed to fetch stats"
	multipartFormMemory = 8 << 20
)

// CacheHandlers serves /api/db: the local cache keyed by the caller's backend token.
// A nil Svc means the cache is switched off and every route answers 503.
type CacheHandlers struct {
	Svc       *service.CacheService
	Validator *validation.Validator
	Logger    *slog.Logger
}

func (h *CacheHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// bearer guards a cache route: 503 when the cache is off, 401 without a bearer token.
func (h *CacheHandlers) bearer(next func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.Svc == nil {
			writeMessageError(w, http.StatusServiceUnavailable, msgCacheDisabled)
			return
		}
		token := bearerToken(r)
		if token == "" {
			writeMessageError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		next(w, r, token)
	}
}

// writeError renders service failures in the {"error": msg} shape. Unexpected
// failures are logged and replaced by fallback.
func (h *CacheHandlers) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code != apperrors.ErrCodeInternal {
		body := map[string]string{"error": appErr.Message}
		if appErr.Message == service.MsgUserNotRegistered {
			body["hint"] = msgRegisterHint
		}
		WriteJSON(w, appErr.Code.HTTPStatus(), body)
		return
	}
	h.logger().ErrorContext(r.Context(), fallback, "path", r.URL.Path, "error", err)
	writeMessageError(w, http.StatusInternalServerError, fallback)
}

type cachedUserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// SyncUser handles POST /api/db/sync-user.
func (h *CacheHandlers) SyncUser(w http.ResponseWriter, r *http.Request, token string) {
	var in service.SyncUserInput
	if err := decodeBody(r, &in); err != nil {
		writeMessageError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if strings.TrimSpace(in.Username) == "" {
		writeMessageError(w, http.StatusBadRequest, service.MsgUsernameRequired)
		return
	}
	if !h.validate(w, in) {
		return
	}

	u, err := h.Svc.SyncUser(r.Context(), token, in)
	if err != nil {
		h.writeError(w, r, err, msgSyncFailed)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    cachedUserSummary{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role},
	})
}

type registerLocalResponse struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
	Role     string  `json:"role"`
	Message  string  `json:"message"`
}

// Register handles POST /api/db/register. It needs no token.
func (h *CacheHandlers) Register(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		writeMessageError(w, http.StatusServiceUnavailable, msgCacheDisabled)
		return
	}
	var in service.RegisterLocalInput
	if err := decodeBody(r, &in); err != nil {
		writeMessageError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	u, err := h.Svc.RegisterLocal(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err, msgCreateFailed)
		return
	}
	WriteJSON(w, http.StatusOK, registerLocalResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
		Message:  msgUserCreated,
	})
}

// Upload handles POST /api/db/upload with a multipart "file" and optional "credentialId".
func (h *CacheHandlers) Upload(w http.ResponseWriter, r *http.Request, token string) {
	maxBytes := h.Svc.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartFormMemory)
	if err := r.ParseMultipartForm(multipartFormMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeMessageError(w, http.StatusRequestEntityTooLarge, msgFileTooLarge)
			return
		}
		writeMessageError(w, http.StatusBadRequest, service.MsgNoFileProvided)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeMessageError(w, http.StatusBadRequest, service.MsgNoFileProvided)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		h.writeError(w, r, err, msgUploadFailed)
		return
	}
	if int64(len(content)) > maxBytes {
		writeMessageError(w, http.StatusRequestEntityTooLarge, msgFileTooLarge)
		return
	}

	id, err := h.Svc.UploadDocument(r.Context(), token, service.UploadInput{
		FileName:     header.Filename,
		FileType:     header.Header.Get("Content-Type"),
		Content:      content,
		CredentialID: strings.TrimSpace(r.FormValue("credentialId")),
	})
	if err != nil {
		h.writeError(w, r, err, msgUploadFailed)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"documentId": id,
		"message":    msgFileUploaded,
	})
}

// ListDocuments handles GET /api/db/upload?credentialId=.
func (h *CacheHandlers) ListDocuments(w http.ResponseWriter, r *http.Request, token string) {
	docs, err := h.Svc.ListDocuments(r.Context(), token, strings.TrimSpace(r.URL.Query().Get("credentialId")))
	if err != nil {
		h.writeError(w, r, err, msgDocumentsFailed)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"documents": nonNil(docs)})
}

// Stats handles GET /api/db/stats. Unknown users get zeros.
func (h *CacheHandlers) Stats(w http.ResponseWriter, r *http.Request, token string) {
	stats, err := h.Svc.Stats(r.Context(), token)
	if err != nil {
		h.writeError(w, r, err, msgStatsFailed)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

func (h *CacheHandlers) validate(w http.ResponseWriter, req any) bool {
	if h.Validator == nil {
		return true
	}
	err := h.Validator.Struct(req)
	if err == nil {
		return true
	}
	var fields validation.Errors
	if errors.As(err, &fields) {
		writeMessageError(w, http.StatusBadRequest, fields.First())
		return false
	}
	writeMessageError(w, http.StatusBadRequest, err.Error())
	return false
}
