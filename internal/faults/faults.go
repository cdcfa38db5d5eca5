// Package faults defines the error kinds surfaced by provisioning and service operations.
package faults

import "errors"

// Error kinds. Match with errors.Is.
var (
	// ErrLaunchFailure indicates the OS could not start an external process at all.
	ErrLaunchFailure = errors.New("launch failure")
	// ErrMissingDependency indicates a required tool or package manager could not be found.
	ErrMissingDependency = errors.New("missing dependency")
	// ErrInstallFailed indicates an install step's command exited non-zero.
	ErrInstallFailed = errors.New("install failed")
	// ErrServiceUnavailable indicates a service operation ran before the descriptor was registered.
	ErrServiceUnavailable = errors.New("service unavailable")
	// ErrCommandFailed indicates a service-manager command failed with a non-benign error.
	ErrCommandFailed = errors.New("command failed")
)

// Error carries a display message and the kind it belongs to.
// Message is shown to users verbatim and includes captured command output.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is the kind of e.
func (e *Error) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an Error of kind with message.
func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap returns an Error of kind with message that unwraps to err.
func Wrap(kind error, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind sentinel of err, or nil when err carries none.
func KindOf(err error) error {
	for _, kind := range []error{
		ErrLaunchFailure,
		ErrMissingDependency,
		ErrInstallFailed,
		ErrServiceUnavailable,
		ErrCommandFailed,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
