package git

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// DefaultBinary is the git executable looked up on PATH when no binary is configured.
const DefaultBinary = "git"

// commonEnv is appended to every git process environment.
var commonEnv = []string{
	"LC_ALL=C",
	// never prompt for credentials
	"GIT_TERMINAL_PROMPT=0",
	"GIT_NO_REPLACE_OBJECTS=1",
}

// Runner holds the settings shared by every command run against one repository.
// A Runner has no mutable state after construction and is safe for concurrent use.
type Runner struct {
	binary  string
	dir     string
	env     []string
	timeout time.Duration
	logger  *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithBinary sets the git executable. Empty keeps DefaultBinary.
func WithBinary(binary string) RunnerOption {
	return func(r *Runner) {
		if binary != "" {
			r.binary = binary
		}
	}
}

// WithDir sets the working directory git runs in.
func WithDir(dir string) RunnerOption {
	return func(r *Runner) { r.dir = dir }
}

// WithEnv adds KEY=VALUE entries to the process environment.
func WithEnv(env ...string) RunnerOption {
	return func(r *Runner) { r.env = append(r.env, env...) }
}

// WithTimeout sets the default timeout for commands that do not set their own.
// Zero means no timeout.
func WithTimeout(timeout time.Duration) RunnerOption {
	return func(r *Runner) { r.timeout = timeout }
}

// WithLogger sets the logger used for command tracing.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a Runner. Without options it runs "git" in the current
// directory with no timeout.
func NewRunner(opts ...RunnerOption) *Runner {
	runner := &Runner{
		binary: DefaultBinary,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner
}

// Dir returns the directory commands run in.
func (r *Runner) Dir() string {
	return r.dir
}

// Binary returns the git executable.
func (r *Runner) Binary() string {
	return r.binary
}

// Timeout returns the default command timeout.
func (r *Runner) Timeout() time.Duration {
	return r.timeout
}

// NewCommand starts a command with trusted arguments, usually the subcommand
// and its fixed flags.
func (r *Runner) NewCommand(args ...string) *Command {
	return &Command{
		runner: r,
		args:   append([]string(nil), args...),
	}
}

// Run is a shorthand for running trusted arguments and returning trimmed stdout.
func (r *Runner) Run(ctx context.Context, args ...string) (string, error) {
	out, err := r.NewCommand(args...).RunStdString(ctx, nil)
	if err != nil {
		return "", err
	}
	return trimNewline(out), nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
