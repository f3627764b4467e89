package output

import (
	"errors"
	"io/fs"
)

// Exit codes:
// 0 = success
// 1 = user error (unknown language, role, agent, preset or bad flag value)
// 2 = system error (I/O failures)
// 3 = conflict (target file exists without --force)
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
	ExitConflict    = 3
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates an exit code 1 error.
func NewUserError(message string) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message}
}

// NewSystemError creates an exit code 2 error.
func NewSystemError(message string) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message, Cause: cause}
}

// NewConflictError creates an exit code 3 error.
func NewConflictError(message string) *ExitError {
	return &ExitError{Code: ExitConflict, Message: message}
}

// Classify converts a library error into an ExitError.
// Errors matching fs.ErrExist become conflicts, other filesystem errors become
// system errors, and everything else is treated as a user error.
func Classify(err error) *ExitError {
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	var pathErr *fs.PathError
	switch {
	case errors.Is(err, fs.ErrExist):
		return &ExitError{Code: ExitConflict, Message: err.Error(), Cause: err}
	case errors.As(err, &pathErr), errors.Is(err, fs.ErrPermission):
		return &ExitError{Code: ExitSystemError, Message: err.Error(), Cause: err}
	default:
		return &ExitError{Code: ExitUserError, Message: err.Error(), Cause: err}
	}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitUserError for untyped errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUserError
}
