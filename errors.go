package workersz

import (
	"errors"
	"fmt"
)

// Sentinel errors for common worker error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrDuplicateAction indicates an Action instance was registered twice
	// with the same registry. Registering a duplicate is a programming
	// error and never mutates the registry.
	ErrDuplicateAction = errors.New("action already registered")

	// ErrActionNotFound indicates no Action is registered for the given Signal.
	ErrActionNotFound = errors.New("action not found")

	// ErrSignalNotFound indicates no Signal is recorded for the given Action.
	ErrSignalNotFound = errors.New("signal not found")

	// ErrAlreadyStarted indicates Start was called on a worker whose loop
	// is already running or has already terminated. Workers are not
	// restartable.
	ErrAlreadyStarted = errors.New("worker already started")

	// ErrNotStarted indicates an operation that requires a running loop
	// was attempted before Start.
	ErrNotStarted = errors.New("worker not started")

	// ErrStopped indicates the worker's loop has reached its terminal
	// state and cannot run again.
	ErrStopped = errors.New("worker stopped")

	// ErrInvalidConfig indicates the provided configuration is invalid or
	// incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Error kinds categorize errors by their type.
const (
	// KindConfiguration represents errors related to configuration, such
	// as duplicate action registration or a missing work function.
	KindConfiguration = "configuration"

	// KindNotFound represents errors where a binding was not found.
	KindNotFound = "not_found"

	// KindValidation represents errors related to input validation.
	KindValidation = "validation"

	// KindExecution represents errors raised by an action callback, a
	// hook, or the work function.
	KindExecution = "execution"

	// KindTimeout represents errors related to operation timeouts.
	KindTimeout = "timeout"

	// KindInternal represents internal library errors.
	KindInternal = "internal"
)

// Error is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category of
// error.
//
// Error implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
//
// Example usage:
//
//	err := &Error{
//		Op:   "Registry.Register",
//		Kind: KindConfiguration,
//		Err:  ErrDuplicateAction,
//	}
type Error struct {
	// Op is the operation that failed (e.g., "Registry.Register", "Worker.Start").
	Op string

	// Kind categorizes the error (e.g., KindNotFound, KindConfiguration).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional).
	// This can include worker names, action indexes, or other debugging
	// information.
	Context map[string]any
}

// Error implements the error interface, returning a formatted error
// message that includes the operation, kind, and underlying error.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("workersz: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("workersz: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("workersz: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and
// errors.As() to work correctly with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for Error, allowing comparison based on
// the underlying error or the Error itself.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	// Check if target is an Error with matching Kind
	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	// Delegate to underlying error
	return errors.Is(e.Err, target)
}

// WithContext returns a new Error with the provided context added.
// This is useful for adding debugging information to errors.
//
// Example:
//
//	err := NewConfigurationError("Registry.Register", ErrDuplicateAction)
//	err = err.WithContext(map[string]any{
//		"registered": 3,
//	})
func (e *Error) WithContext(ctx map[string]any) *Error {
	newErr := *e
	newErr.Context = make(map[string]any, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		newErr.Context[k] = v
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewConfigurationError creates a new Error with KindConfiguration.
func NewConfigurationError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindConfiguration,
		Err:  err,
	}
}

// NewNotFoundError creates a new Error with KindNotFound.
func NewNotFoundError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindNotFound,
		Err:  err,
	}
}

// NewValidationError creates a new Error with KindValidation.
func NewValidationError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindValidation,
		Err:  err,
	}
}

// NewExecutionError creates a new Error with KindExecution.
func NewExecutionError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindExecution,
		Err:  err,
	}
}

// NewTimeoutError creates a new Error with KindTimeout.
func NewTimeoutError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindTimeout,
		Err:  err,
	}
}

// NewInternalError creates a new Error with KindInternal.
func NewInternalError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindInternal,
		Err:  err,
	}
}
