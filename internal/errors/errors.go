package errors

import (
	"errors"
	"fmt"
	"maps"
)

// Error carries a Code alongside the message so callers can branch on the
// kind of failure after several layers of wrapping
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code, so errors.Is(err,
// NotFound("")) works as a code check
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithMeta records a key on the error and returns it for chaining
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any, 1)
	}
	e.Meta[key] = value
	return e
}

// New creates an error with code and message
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf is New with a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// wrap builds the outer error. The code comes from the innermost *Error
// unless override is set. Meta is copied so the outer error can be
// annotated without touching the cause.
func wrap(err error, override *Code, message string) *Error {
	if err == nil {
		return nil
	}

	out := &Error{Code: CodeInternal, Message: message, Cause: err}
	if inner, ok := asError(err); ok {
		out.Code = inner.Code
		if len(inner.Meta) > 0 {
			out.Meta = maps.Clone(inner.Meta)
		}
	}
	if override != nil {
		out.Code = *override
	}
	return out
}

// Wrap adds context to err and keeps its code. Errors without a code
// become CodeInternal.
func Wrap(err error, message string) *Error {
	return wrap(err, nil, message)
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	return wrap(err, nil, fmt.Sprintf(format, args...))
}

// WrapWithCode adds context to err and reclassifies it
func WrapWithCode(err error, code Code, message string) *Error {
	return wrap(err, &code, message)
}

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a not found error with a formatted message
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument reports bad input: a malformed dice code, an unknown
// trait, a sheet that fails validation
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates an invalid argument error with a formatted message
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// AlreadyExistsf creates an already exists error with a formatted message
func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// FailedPreconditionf reports an operation the current table state does
// not allow
func FailedPreconditionf(format string, args ...any) *Error {
	return Newf(CodeFailedPrecondition, format, args...)
}

// Unavailable reports a dependency, usually the dice roller, that could not
// serve the request
func Unavailable(message string) *Error {
	return New(CodeUnavailable, message)
}
