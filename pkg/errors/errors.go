// Package errors defines the coded errors shared by the CLI and the HTTP
// API. A Code travels with each error so transports can map failures to
// exit codes or HTTP statuses without string matching, and UserMessage
// strips the code and cause for display.
//
//	err := errors.New(errors.ErrCodeInvalidStatus, "invalid status: %s", status)
//	err = errors.Wrap(errors.ErrCodeInternal, cause, "load graph %s", name)
//	if errors.Is(err, errors.ErrCodeInternal) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Code is a stable machine-readable error identifier. INVALID_* codes are
// validation failures, *_NOT_FOUND codes are missing resources, the rest
// are internal faults.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidStatus   Code = "INVALID_STATUS"
	ErrCodeInvalidViewMode Code = "INVALID_VIEW_MODE"
	ErrCodeInvalidGraph    Code = "INVALID_GRAPH"
	ErrCodeInvalidState    Code = "INVALID_STATE"

	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeGraphNotFound Code = "GRAPH_NOT_FOUND"
	ErrCodeNodeNotFound  Code = "NODE_NOT_FOUND"
	ErrCodeShareNotFound Code = "SHARE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error pairs a code with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds a coded error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds a coded error around cause; the cause stays reachable via
// errors.Is/As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any error in err's chain carries code.
func Is(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// GetCode returns the code of the first *Error in the chain, or "" when
// there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the display message: for coded errors the message
// alone, without code prefix or cause; otherwise err.Error().
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
