package sitechat

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be broad categories that callers can branch on.
// The message carries the human-readable detail.
const (
	EINVALID      = "invalid"      // validation failed or unsupported combination
	EINTERNAL     = "internal"     // internal error (e.g., malformed provider response)
	ENOTFOUND     = "not_found"    // entity or content does not exist
	EUNAUTHORIZED = "unauthorized" // missing or rejected credential
	EUNAVAILABLE  = "unavailable"  // external collaborator failed or timed out
)

// Error represents an application error with a machine-readable code
// and a human-readable message.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("sitechat error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper to construct an Error with a formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors return EINTERNAL; nil returns the empty string.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors return a generic message; nil returns the empty string.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
