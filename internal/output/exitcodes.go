package output

import (
	"errors"

	"github.com/gorewood/gitobj/internal/git"
)

// Exit codes:
// 0 = Success
// 1 = User error (bad args, object or tag not found, unsupported type)
// 2 = System error (git failed, was signaled or timed out, I/O error)
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
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

// NewUserError creates an error for user-caused issues (exit code 1).
func NewUserError(message string) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
	}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
		Cause:   cause,
	}
}

// FromError classifies err for the CLI. Errors the caller can fix, such as
// an unknown object or an invalid argument, are user errors; failures of
// the git process are system errors. An *ExitError is returned unchanged.
func FromError(err error) *ExitError {
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	var (
		notFound    *git.NotFoundError
		invalid     *git.InvalidArgumentError
		unsupported *git.UnsupportedObjectTypeError
	)
	if errors.As(err, &notFound) || errors.As(err, &invalid) || errors.As(err, &unsupported) {
		return &ExitError{Code: ExitUserError, Message: err.Error(), Cause: err}
	}
	return NewSystemErrorWithCause(err.Error(), err)
}

// GetExitCode extracts the exit code from an error.
// Git errors are classified by FromError; other untyped errors are user
// errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, git.ErrGit) {
		return FromError(err).Code
	}

	// Untyped errors come from cobra flag and argument parsing
	return ExitUserError
}
