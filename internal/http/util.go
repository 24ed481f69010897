package httpx

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/cryptlocker/cryptlocker-ui-api/internal/http/validation"
)

// maxFormMemory bounds the in-memory part of small multipart forms such as login.
const maxFormMemory = 1 << 20

// validateRequest runs struct-tag validation and writes a 400 on failure.
// Returns true if the request is valid.
func validateRequest(w http.ResponseWriter, v *validation.Validator, req any) bool {
	if v == nil {
		return true
	}
	err := v.Struct(req)
	if err == nil {
		return true
	}
	var fields validation.Errors
	if errors.As(err, &fields) {
		WriteJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "validation_failed",
			"message": fields.First(),
			"fields":  fields,
		})
		return false
	}
	WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
	return false
}

// pathID returns a non-empty path wildcard or writes a 400.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := strings.TrimSpace(r.PathValue(name))
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_id", Err: errors.New(name + " is required")})
		return "", false
	}
	return id, true
}

// pathInt64 parses a numeric path wildcard or writes a 400.
func pathInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw, ok := pathID(w, r, name)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_id", Err: errors.New(name + " must be a number")})
		return 0, false
	}
	return n, true
}
