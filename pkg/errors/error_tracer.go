package errors

import "github.com/pkg/errors"

// StackTracer is satisfied by errors that carry a capture of the call stack.
type StackTracer interface {
	StackTrace() errors.StackTrace
}

// ErrorTracer pairs a log-friendly message with the error that caused it.
// The cause keeps its stack trace, so a failure deep in a repository stays
// attributable after crossing the usecase and handler layers.
type ErrorTracer struct {
	Message string
	Err     error
}

// NewTracer creates an ErrorTracer with a message and no cause yet.
func NewTracer(message string) *ErrorTracer {
	return &ErrorTracer{
		Message: message,
	}
}

// TracerFromError wraps err, capturing the stack here unless err already
// carries one.
func TracerFromError(err error) *ErrorTracer {
	return NewTracer(err.Error()).Wrap(err)
}

func (e *ErrorTracer) Error() string {
	return e.Message
}

func (e *ErrorTracer) Unwrap() error {
	return e.Err
}

// Wrap records err as the cause, capturing the stack here unless err
// already carries one.
func (e *ErrorTracer) Wrap(err error) *ErrorTracer {
	if _, ok := err.(StackTracer); ok {
		e.Err = err
	} else {
		e.Err = errors.WithStack(err)
	}
	return e
}

// StackTrace exposes the cause's stack, or nil when there is none.
func (e *ErrorTracer) StackTrace() errors.StackTrace {
	if cause, ok := e.Err.(StackTracer); ok {
		return cause.StackTrace()
	}
	return nil
}
