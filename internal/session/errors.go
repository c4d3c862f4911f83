package session

import (
	"errors"
	"fmt"
)

// Error is the base error for the session boundary.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewNoSession - nothing stored for this browser, or it expired.
func NewNoSession() *Error {
	return &Error{
		Code:    "NO_SESSION",
		Message: "Not signed in",
	}
}

// NewKindConflict - a session of the other kind is still active.
func NewKindConflict(active Kind) *Error {
	return &Error{
		Code:    "SESSION_KIND_CONFLICT",
		Message: fmt.Sprintf("A %s session is active; sign out of it first", active),
	}
}

// NewStoreError wraps a failure of the underlying key/value store.
func NewStoreError(err error) *Error {
	return &Error{
		Code:    "SESSION_STORE_ERROR",
		Message: "Session storage is unavailable",
		Err:     err,
	}
}

// IsNoSession reports whether err means there is no active session.
func IsNoSession(err error) bool {
	var sessErr *Error
	return errors.As(err, &sessErr) && sessErr.Code == "NO_SESSION"
}

// IsKindConflict reports whether err is the mutual-exclusion rejection.
func IsKindConflict(err error) bool {
	var sessErr *Error
	return errors.As(err, &sessErr) && sessErr.Code == "SESSION_KIND_CONFLICT"
}
