package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies every failure the backend (or the transport in front of
// it) can hand back to us. Handlers and the collection manager branch on
// Kind, never on raw status codes.
type Kind string

const (
	// KindNetwork - transport failure or timeout; the user may retry.
	KindNetwork Kind = "NETWORK_ERROR"
	// KindAuth - expired or invalid session token; requires re-login.
	KindAuth Kind = "AUTH_ERROR"
	// KindValidation - backend rejected the payload; carries the server message.
	KindValidation Kind = "VALIDATION_ERROR"
	// KindNotFound - target entity vanished server-side.
	KindNotFound Kind = "NOT_FOUND"
)

// Error is the base error for everything that crosses the backend boundary.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows error wrapping compatibility
func (e *Error) Unwrap() error {
	return e.Err
}

// ============================================
// ERROR FACTORY FUNCTIONS
// ============================================

// NewNetworkError wraps a transport-level failure.
func NewNetworkError(err error) *Error {
	return &Error{
		Kind:    KindNetwork,
		Message: "Could not reach the shop backend",
		Err:     err,
	}
}

// NewAuthError signals an expired or rejected session token.
func NewAuthError(message string) *Error {
	if message == "" {
		message = "Session expired, please sign in again"
	}
	return &Error{
		Kind:    KindAuth,
		Message: message,
	}
}

// NewValidationError carries the backend's human-readable rejection message.
func NewValidationError(message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: message,
	}
}

// NewNotFoundError signals the target entity no longer exists server-side.
func NewNotFoundError(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return &Error{
		Kind:    KindNotFound,
		Message: message,
	}
}

// ============================================
// ERROR CHECKING FUNCTIONS
// ============================================

func isKind(err error, kind Kind) bool {
	var gwErr *Error
	return errors.As(err, &gwErr) && gwErr.Kind == kind
}

// IsNetworkError reports whether err is a transport failure or timeout.
func IsNetworkError(err error) bool { return isKind(err, KindNetwork) }

// IsAuthError reports whether err means the session is no longer valid.
func IsAuthError(err error) bool { return isKind(err, KindAuth) }

// IsValidationError reports whether the backend rejected the payload.
func IsValidationError(err error) bool { return isKind(err, KindValidation) }

// IsNotFoundError reports whether the target entity vanished server-side.
func IsNotFoundError(err error) bool { return isKind(err, KindNotFound) }

// GetErrorMessage extracts the user-facing message from a gateway error.
func GetErrorMessage(err error) string {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Message
	}
	return err.Error()
}

// GetErrorKind extracts the Kind, or empty string for foreign errors.
func GetErrorKind(err error) string {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return string(gwErr.Kind)
	}
	return ""
}

// MapErrorToHTTP translates a gateway error into the status, message and
// error code our own handlers should answer with.
func MapErrorToHTTP(err error) (int, string, string) {
	if err == nil {
		return http.StatusOK, "Success", ""
	}

	switch {
	case IsAuthError(err):
		return http.StatusUnauthorized, GetErrorMessage(err), string(KindAuth)

	case IsValidationError(err):
		return http.StatusUnprocessableEntity, GetErrorMessage(err), string(KindValidation)

	case IsNotFoundError(err):
		return http.StatusNotFound, GetErrorMessage(err), string(KindNotFound)

	case IsNetworkError(err):
		return http.StatusBadGateway, GetErrorMessage(err), string(KindNetwork)

	default:
		return http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR"
	}
}
