package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorDetails represents detailed information about an error.
type ErrorDetails struct {
	// Message (required) is the user-defined error message.
	// E.g. "price row has negative volume".
	Message string

	// Code (required) is the user-defined error code string.
	// E.g. "price_validation_error".
	Code string

	// Field (optional) is the related field the error occurred on, if any.
	Field string

	// Object (optional) is the related object the error occured on, if any.
	Object interface{}
}

// NewErrorDetails creates a new ErrorDetails struct with the given parameters.
func NewErrorDetails(message, code, field string) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
	}
}

// NewErrorDetailsWithObject creates a new ErrorDetails struct with an associated object.
func NewErrorDetailsWithObject(message, code, field string, object interface{}) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
		Object:  object,
	}
}

// NewTransientStoreError marks a store I/O failure with the
// transient_store_error code. The failed operation is retry-safe as a whole.
func NewTransientStoreError(op string, err error) *ErrorDetails {
	return &ErrorDetails{
		Message: fmt.Sprintf("%s: %v", op, err),
		Code:    string(TransientStoreError),
		Field:   "store",
	}
}

// Error() is used to implement the Golang `error` interface.
func (e *ErrorDetails) Error() string {
	return e.Message
}

// ErrorCodeEquals checks whether a given `error` has a specific code,
// unwrapping tracer layers along the way.
func ErrorCodeEquals(err error, code ErrorCode) bool {
	details := DetailsFromError(err)
	if details == nil {
		return false
	}

	return details.Code == string(code)
}

// DetailsFromError extracts the ErrorDetails from an error chain, or nil
// when the chain carries none.
func DetailsFromError(err error) *ErrorDetails {
	var details *ErrorDetails
	if stderrors.As(err, &details) {
		return details
	}
	return nil
}
