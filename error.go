package docmeta

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL    = "internal"
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	ETIMEOUT     = "timeout"
	EHTTP        = "http"
	ECONTENTTYPE = "content_type"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// HTTPError reports a non-successful response from the source platform.
type HTTPError struct {
	StatusCode int
	StatusText string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.StatusText)
}

// ExtractionError wraps the cause of a failed extraction call.
// The cause stays reachable through errors.As and ErrorCode.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return "failed to extract metadata: " + e.Err.Error()
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	var he *HTTPError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &e):
		return e.Code
	case errors.As(err, &he):
		return EHTTP
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Extraction errors keep their cause as the message tail. Other
// non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var xe *ExtractionError
	var e *Error
	var he *HTTPError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &xe):
		return xe.Error()
	case errors.As(err, &e):
		return e.Message
	case errors.As(err, &he):
		return he.Error()
	}
	return "Internal error."
}
