package errors

import (
	"errors"
)

func asError(err error) (*Error, bool) {
	var e *Error
	if err == nil || !errors.As(err, &e) {
		return nil, false
	}
	return e, true
}

// GetCode returns the code of the outermost *Error in the chain. A nil
// error is CodeOK and anything else is CodeInternal.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	if e, ok := asError(err); ok {
		return e.Code
	}
	return CodeInternal
}

// GetMeta returns the metadata of the outermost *Error, or nil
func GetMeta(err error) map[string]any {
	if e, ok := asError(err); ok {
		return e.Meta
	}
	return nil
}

// GetMessage returns the message of the outermost *Error, falling back to
// err.Error()
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

// Fields returns the per-field validation messages recorded by a
// ValidationBuilder, or nil when err is not a validation failure
func Fields(err error) map[string][]string {
	fields, _ := GetMeta(err)[metaValidationErrors].(map[string][]string)
	return fields
}

func hasCode(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// IsNotFound reports whether err is a not found error
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsInvalidArgument reports whether err is an invalid argument error
func IsInvalidArgument(err error) bool { return hasCode(err, CodeInvalidArgument) }

// IsAlreadyExists reports whether err is an already exists error
func IsAlreadyExists(err error) bool { return hasCode(err, CodeAlreadyExists) }

// IsFailedPrecondition reports whether err is a failed precondition error
func IsFailedPrecondition(err error) bool { return hasCode(err, CodeFailedPrecondition) }

// IsInternal reports whether err is an internal error
func IsInternal(err error) bool { return hasCode(err, CodeInternal) }
