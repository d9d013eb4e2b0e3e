package laborcrawl

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be generic and mappable to user-facing behavior:
// EINVALID inputs are skipped, EUNAVAILABLE operations may be retried,
// EUNPROCESSABLE content is logged and dropped.
const (
	EINVALID       = "invalid"       // validation failed
	ENOTFOUND      = "not_found"     // entity does not exist
	EINTERNAL      = "internal"      // internal error
	EUNAVAILABLE   = "unavailable"   // backend or site unreachable
	EUNPROCESSABLE = "unprocessable" // content rejected or unparsable
)

// Error represents an application-specific error. Application errors can
// be unwrapped to extract out the code and message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("laborcrawl error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
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
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error"
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
