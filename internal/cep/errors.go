package cep

import (
	"errors"
	"fmt"
)

// Lookup failures are recoverable and non-blocking: the form stays
// editable and nothing the user typed is overwritten or cleared.

// Error is the base error for the postal-lookup service.
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

// NewLookupMiss - the service answered but knows no address for the code.
func NewLookupMiss(code string) *Error {
	return &Error{
		Code:    "LOOKUP_MISS",
		Message: fmt.Sprintf("CEP %s não encontrado", code),
	}
}

// NewLookupError - the service could not be reached or answered garbage.
func NewLookupError(err error) *Error {
	return &Error{
		Code:    "LOOKUP_ERROR",
		Message: "Postal code lookup failed",
		Err:     err,
	}
}

// IsLookupMiss reports whether err is a not-found answer.
func IsLookupMiss(err error) bool {
	var cepErr *Error
	return errors.As(err, &cepErr) && cepErr.Code == "LOOKUP_MISS"
}

// IsLookupError reports whether err is a transport-level lookup failure.
func IsLookupError(err error) bool {
	var cepErr *Error
	return errors.As(err, &cepErr) && cepErr.Code == "LOOKUP_ERROR"
}
