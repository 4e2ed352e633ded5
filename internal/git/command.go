package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// endOfOptions tells git that every following argument is positional.
const endOfOptions = "--end-of-options"

// waitDelay bounds how long Wait keeps the stdio pipes open after the
// process has been killed.
const waitDelay = 5 * time.Second

// Command is one git invocation under construction.
//
// Flags always precede positional values in the final argument vector,
// whatever order the Add methods are called in.
type Command struct {
	runner  *Runner
	args    []string
	dynamic []string
	paths   []string
	dashes  bool
}

// AddArguments appends trusted arguments. Never pass caller input here.
func (c *Command) AddArguments(args ...string) *Command {
	c.args = append(c.args, args...)
	return c
}

// AddOptionValues appends opt followed by each value. When opt ends with
// "=" the two are joined into one argument ("--format=" + value).
// Values are bound to the option, so they cannot be parsed as flags.
func (c *Command) AddOptionValues(opt string, values ...string) *Command {
	for _, value := range values {
		if strings.HasSuffix(opt, "=") {
			c.args = append(c.args, opt+value)
			continue
		}
		c.args = append(c.args, opt, value)
	}
	return c
}

// AddDynamicArguments appends caller-controlled positional values such as
// refs, object names or remote names.
func (c *Command) AddDynamicArguments(values ...string) *Command {
	c.dynamic = append(c.dynamic, values...)
	return c
}

// AddDashesAndList appends "--" followed by pathspecs.
func (c *Command) AddDashesAndList(paths ...string) *Command {
	c.dashes = true
	c.paths = append(c.paths, paths...)
	return c
}

// Args returns the full argument vector, binary first.
func (c *Command) Args() []string {
	argv := make([]string, 0, 2+len(c.args)+len(c.dynamic)+len(c.paths))
	argv = append(argv, c.runner.binary)
	argv = append(argv, c.args...)
	if needsEndOfOptions(c.dynamic) {
		argv = append(argv, endOfOptions)
	}
	argv = append(argv, c.dynamic...)
	if c.dashes {
		argv = append(argv, "--")
		argv = append(argv, c.paths...)
	}
	return argv
}

func needsEndOfOptions(values []string) bool {
	for _, value := range values {
		if strings.HasPrefix(value, "-") {
			return true
		}
	}
	return false
}

// String renders the command for logs, quoting arguments with spaces and
// redacting credentials embedded in URLs.
func (c *Command) String() string {
	argv := c.Args()
	parts := make([]string, len(argv))
	for i, arg := range argv {
		arg = sanitizeCredentialURL(arg)
		if strings.ContainsAny(arg, " \t\"'") {
			arg = strconv.Quote(arg)
		}
		parts[i] = arg
	}
	return strings.Join(parts, " ")
}

// sanitizeCredentialURL hides the userinfo part of URL arguments.
func sanitizeCredentialURL(arg string) string {
	if !strings.Contains(arg, "://") || !strings.Contains(arg, "@") {
		return arg
	}
	parsed, err := url.Parse(arg)
	if err != nil || parsed.User == nil {
		return arg
	}
	parsed.User = url.User("sanitized-credential")
	return parsed.String()
}

// RunOpts are per-invocation settings.
type RunOpts struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Timeout time.Duration // overrides the runner default when positive
}

// execution is a prepared process plus the bookkeeping needed to classify it.
type execution struct {
	cmd     *exec.Cmd
	argv    []string
	stderr  *bytes.Buffer
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
	started time.Time
}

func (c *Command) prepare(ctx context.Context, opts *RunOpts) *execution {
	if opts == nil {
		opts = &RunOpts{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = c.runner.timeout
	}

	var (
		runCtx context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		runCtx, cancel = context.WithCancel(ctx)
	}

	argv := c.Args()
	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Dir = c.runner.dir
	cmd.Env = append(os.Environ(), commonEnv...)
	cmd.Env = append(cmd.Env, c.runner.env...)
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.WaitDelay = waitDelay

	stderr := &bytes.Buffer{}
	if opts.Stderr != nil {
		cmd.Stderr = io.MultiWriter(stderr, opts.Stderr)
	} else {
		cmd.Stderr = stderr
	}

	c.runner.logger.DebugContext(ctx, "git command", "cmd", c.String(), "dir", c.runner.dir)

	return &execution{
		cmd:     cmd,
		argv:    argv,
		stderr:  stderr,
		ctx:     runCtx,
		cancel:  cancel,
		timeout: timeout,
		started: time.Now(),
	}
}

// finish builds the Result and classifies the outcome of a finished process.
func (c *Command) finish(ex *execution, runErr error) (*Result, error) {
	result := &Result{
		Argv:   ex.argv,
		Status: exitStatus(ex.cmd.ProcessState),
		Stderr: ex.stderr.String(),
	}
	err := classify(ex, result, runErr)

	logger := c.runner.logger
	if err != nil {
		logger.DebugContext(ex.ctx, "git command failed", "cmd", c.String(),
			"status", result.Status.String(), "elapsed", time.Since(ex.started), "error", err)
	} else {
		logger.DebugContext(ex.ctx, "git command done", "cmd", c.String(),
			"elapsed", time.Since(ex.started))
	}
	return result, err
}

func classify(ex *execution, result *Result, runErr error) error {
	if runErr == nil {
		return nil
	}
	if ex.cmd.ProcessState == nil {
		// exec.ErrNotFound and friends: the process never ran
		return &FailedError{Result: result, Err: runErr}
	}
	if errors.Is(ex.ctx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Result: result, Timeout: ex.timeout}
	}
	if result.Status.Signaled {
		return &SignaledError{Result: result, Err: ex.ctx.Err()}
	}
	// a non-zero exit, or a clean exit whose Wait still failed (exec.ErrWaitDelay)
	return &FailedError{Result: result, Err: runErr}
}

// Run executes the command. Stdout goes to opts.Stdout (discarded when nil);
// stderr is always captured into the Result.
func (c *Command) Run(ctx context.Context, opts *RunOpts) (*Result, error) {
	ex := c.prepare(ctx, opts)
	defer ex.cancel()
	return c.finish(ex, ex.cmd.Run())
}

// RunStdBytes executes the command and returns its stdout.
func (c *Command) RunStdBytes(ctx context.Context, opts *RunOpts) ([]byte, error) {
	local := RunOpts{}
	if opts != nil {
		local = *opts
	}
	stdout := &bytes.Buffer{}
	local.Stdout = stdout
	result, err := c.Run(ctx, &local)
	if err != nil {
		return nil, err
	}
	result.Stdout = stdout.Bytes()
	return result.Stdout, nil
}

// RunStdString executes the command and returns its stdout as a string.
func (c *Command) RunStdString(ctx context.Context, opts *RunOpts) (string, error) {
	out, err := c.RunStdBytes(ctx, opts)
	return string(out), err
}

// RunWithStdoutPipe executes the command and hands its stdout to consumer
// without buffering it. The pipe is closed and the process reaped on every
// path: when consumer returns an error or panics the process is killed first.
// Whatever consumer leaves unread is discarded. A consumer returning
// ErrStopReading ends the process early without an error.
func (c *Command) RunWithStdoutPipe(ctx context.Context, opts *RunOpts, consumer func(io.Reader) error) error {
	local := RunOpts{}
	if opts != nil {
		local = *opts
	}
	local.Stdout = nil

	ex := c.prepare(ctx, &local)
	defer ex.cancel()

	stdout, err := ex.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("opening stdout pipe: %w", err)
	}
	if err := ex.cmd.Start(); err != nil {
		_, classified := c.finish(ex, err)
		return classified
	}

	consumeErr := consume(ex, stdout, consumer)
	if consumeErr != nil {
		ex.cancel()
	} else {
		_, _ = io.Copy(io.Discard, stdout)
	}

	_, err = c.finish(ex, ex.cmd.Wait())
	if errors.Is(consumeErr, ErrStopReading) {
		return nil
	}
	if consumeErr != nil {
		return consumeErr
	}
	return err
}

// consume runs consumer and, if it panics, kills and reaps the process
// before re-panicking.
func consume(ex *execution, stdout io.Reader, consumer func(io.Reader) error) error {
	defer func() {
		if r := recover(); r != nil {
			ex.cancel()
			_ = ex.cmd.Wait()
			panic(r)
		}
	}()
	return consumer(stdout)
}
