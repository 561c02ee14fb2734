package core

import (
	"errors"
	"fmt"
)

// General error codes
const (
	NOERROR    int = 0
	EMISSING   int = 122 // resource does not exist
	EINVALID   int = 123 // validation failed
	ETRANSPORT int = 124 // hardware transport not available
	EINTERNAL  int = 125 // internal error
	EMALFORMED int = 126 // BDF source cannot be parsed
	EEMPTY     int = 127 // subset selects no glyphs
)

func errorText(ecode int) string {
	switch ecode {
	case NOERROR:
		return "OK"
	case EMISSING:
		return "not found"
	case EINVALID:
		return "invalid"
	case ETRANSPORT:
		return "transport unavailable"
	case EINTERNAL:
		return "internal error"
	case EMALFORMED:
		return "malformed source"
	case EEMPTY:
		return "empty selection"
	}
	return "undefined error"
}

// Sentinel errors for the conversion taxonomy. Errors created with one of the
// codes EMALFORMED, EEMPTY or ETRANSPORT match them with errors.Is.
var (
	ErrMalformedSource      = errors.New("malformed source")
	ErrEmptySelection       = errors.New("empty selection")
	ErrTransportUnavailable = errors.New("transport unavailable")
)

func sentinel(code int) error {
	switch code {
	case EMALFORMED:
		return ErrMalformedSource
	case EEMPTY:
		return ErrEmptySelection
	case ETRANSPORT:
		return ErrTransportUnavailable
	}
	return nil
}

// AppError is an error with an associated error code and a user-message.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

type coreError struct {
	error
	code int
	msg  string
}

func (e coreError) Unwrap() error {
	return e.error
}

func (e coreError) Error() string {
	if e.msg != "" && e.msg != errorText(e.code) {
		return fmt.Sprintf("[%d] %s: %v", e.code, e.msg, e.error)
	}
	return fmt.Sprintf("[%d] %v", e.code, e.error)
}

func (e coreError) ErrorCode() int {
	return e.code
}

func (e coreError) UserMessage() string {
	return e.msg
}

// Is lets errors.Is match a core error against the sentinel of its code.
func (e coreError) Is(target error) bool {
	s := sentinel(e.code)
	return s != nil && s == target
}

var _ AppError = coreError{}

// ErrorWithCode adds an error code to err's error chain.
// Unlike pkg/errors, ErrorWithCode will wrap nil error.
func ErrorWithCode(err error, code int) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	return coreError{err, code, errorText(code)}
}

// WrapError wraps an error in a core error, featuring an error code and
// a user message.
// If err is nil, an error denoting the code's text is wrapped.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	msg := fmt.Sprintf(format, v...)
	return coreError{err, code, msg}
}

// Code returns the status code associated with an error.
// If no status code is found, it returns EINTERNAL.
// If err is nil, NOERROR is returned.
func Code(err error) (code int) {
	if err == nil {
		return NOERROR
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage returns the user message associated with an error.
// If no message is found, it checks StatusCode and returns that message.
// If err is nil, it returns "".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.UserMessage()
	}
	return errorText(Code(err))
}

// Error creates an error with an error code and a user-message.
func Error(code int, format string, v ...interface{}) error {
	return coreError{
		errors.New(errorText(code)),
		code,
		fmt.Sprintf(format, v...),
	}
}
