package walletapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ConnectErrorMessage is shown when a backend cannot be reached at all.
const ConnectErrorMessage = "Unable to connect to the server. Please check your connection and ensure the API is running."

// APIError is the only error shape returned for backend failures.
// Status 0 means the request never produced an HTTP response.
type APIError struct {
	Status  int
	Message string
	Details any
	cause   error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return "wallet api: " + e.Message
	}
	return fmt.Sprintf("wallet api: %d %s", e.Status, e.Message)
}

// Unwrap exposes the transport error behind a status-0 failure.
func (e *APIError) Unwrap() error { return e.cause }

// StatusCode returns the backend HTTP status, or 0 for transport failures.
func (e *APIError) StatusCode() int { return e.Status }

// ErrorClass tags metrics with the coarse failure class.
func (e *APIError) ErrorClass() string { return string(classForStatus(e.Status)) }

// ErrorClass groups backend failures by how callers should react.
type ErrorClass string

const (
	ClassNone      ErrorClass = ""
	ClassTransport ErrorClass = "transport"
	ClassAuth      ErrorClass = "auth"
	ClassClient    ErrorClass = "client"
	ClassServer    ErrorClass = "server"
	ClassUnknown   ErrorClass = "unknown"
)

// Classify reports the class of err. Errors that are not *APIError are ClassUnknown.
func Classify(err error) ErrorClass {
	if err == nil {
		return ClassNone
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return ClassUnknown
	}
	return classForStatus(apiErr.Status)
}

func classForStatus(status int) ErrorClass {
	switch {
	case status == 0:
		return ClassTransport
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ClassAuth
	case status >= 400 && status < 500:
		return ClassClient
	case status >= 500:
		return ClassServer
	default:
		return ClassUnknown
	}
}

// IsAuthFailure reports whether the backend rejected the session token (401 or 403).
func IsAuthFailure(err error) bool { return Classify(err) == ClassAuth }

// IsStatus reports whether err is an *APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func transportError(url string, err error) *APIError {
	return &APIError{
		Status:  0,
		Message: ConnectErrorMessage,
		Details: map[string]any{"detail": err.Error(), "url": url},
		cause:   err,
	}
}

// statusError builds the error for a non-2xx response from its parsed body.
// A JSON object with a "detail" key supplies the message; otherwise the status text does.
func statusError(status int, details any) *APIError {
	msg := http.StatusText(status)
	if msg == "" {
		msg = "Request failed"
	}
	if obj, ok := details.(map[string]any); ok {
		if detail, ok := obj["detail"]; ok {
			msg = detailString(detail)
		}
	}
	return &APIError{Status: status, Message: msg, Details: details}
}

func detailString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
