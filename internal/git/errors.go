package git

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrGit is the common base of every error returned by this package.
// Use errors.Is(err, ErrGit) to catch any git failure generically.
var ErrGit = errors.New("git error")

// ErrStopReading may be returned by a RunWithStdoutPipe consumer that has
// read all it needs. The process is killed and the run counts as a success.
var ErrStopReading = errors.New("stop reading")

// NotFoundError reports a ref, object or tag that git could not resolve.
type NotFoundError struct {
	Ref     string
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("object not found: %s", e.Ref)
}

// Is reports whether target is ErrGit.
func (e *NotFoundError) Is(target error) bool { return target == ErrGit }

// NewTagNotFoundError returns the NotFoundError used when a tag name has no ref.
func NewTagNotFoundError(name string) *NotFoundError {
	return &NotFoundError{
		Ref:     name,
		Message: fmt.Sprintf("Tag '%s' does not exist.", name),
	}
}

// FailedError reports a git process that exited with a non-zero status,
// or that could not be started at all.
type FailedError struct {
	Result *Result
	Err    error
}

func (e *FailedError) Error() string { return describeResult(e.Result) }

// Unwrap returns the underlying exec error, if any.
func (e *FailedError) Unwrap() error { return e.Err }

// Is reports whether target is ErrGit.
func (e *FailedError) Is(target error) bool { return target == ErrGit }

// ExitCode returns the exit code git reported.
func (e *FailedError) ExitCode() int { return e.Result.Status.Code }

// SignaledError reports a git process terminated by a signal.
type SignaledError struct {
	Result *Result
	Err    error
}

func (e *SignaledError) Error() string { return describeResult(e.Result) }

// Unwrap returns the cause, typically context.Canceled when the caller
// cancelled the command.
func (e *SignaledError) Unwrap() error { return e.Err }

// Is reports whether target is ErrGit.
func (e *SignaledError) Is(target error) bool { return target == ErrGit }

// TimeoutError reports a git process killed because it outlived its timeout.
type TimeoutError struct {
	Result  *Result
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return describeResult(e.Result) + ", timed out after " +
		strconv.FormatFloat(e.Timeout.Seconds(), 'f', -1, 64) + "s"
}

// Unwrap returns context.DeadlineExceeded.
func (e *TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// Is reports whether target is ErrGit.
func (e *TimeoutError) Is(target error) bool { return target == ErrGit }

// UnsupportedObjectTypeError reports an object type outside blob, tree,
// commit and tag.
type UnsupportedObjectTypeError struct {
	Objectish string
	Type      string
}

func (e *UnsupportedObjectTypeError) Error() string {
	return fmt.Sprintf("unsupported object type %q for %s", e.Type, e.Objectish)
}

// Is reports whether target is ErrGit.
func (e *UnsupportedObjectTypeError) Is(target error) bool { return target == ErrGit }

// InvalidArgumentError reports caller input rejected before any git process
// was started.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string { return e.Message }

// Is reports whether target is ErrGit.
func (e *InvalidArgumentError) Is(target error) bool { return target == ErrGit }

// IsNotFound reports whether err is or wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsFailed reports whether err is or wraps a *FailedError.
func IsFailed(err error) bool {
	var target *FailedError
	return errors.As(err, &target)
}

// IsSignaled reports whether err is or wraps a *SignaledError.
func IsSignaled(err error) bool {
	var target *SignaledError
	return errors.As(err, &target)
}

// IsTimeout reports whether err is or wraps a *TimeoutError.
func IsTimeout(err error) bool {
	var target *TimeoutError
	return errors.As(err, &target)
}

// describeResult renders a result as
// ["git", "status"], status: pid 1 exit 1, stderr: "..."
func describeResult(r *Result) string {
	if r == nil {
		return "git command failed"
	}
	return fmt.Sprintf("%s, status: %s, stderr: %s",
		FormatArgv(r.Argv), r.Status.String(), strconv.Quote(r.Stderr))
}

// FormatArgv renders an argument vector as a bracketed list of quoted strings.
func FormatArgv(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = strconv.Quote(arg)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
