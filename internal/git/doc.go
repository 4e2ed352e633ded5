// Package git runs the git executable for the gitobj object model.
//
// This package is the only place that starts git processes. It builds
// argument vectors, executes them without a shell, captures stdout, stderr
// and the exit status, and classifies the outcome into typed errors.
//
// # Building Commands
//
// A Runner carries the process-wide settings (binary, repository directory,
// environment, default timeout). Commands are created from it:
//
//	runner := git.NewRunner(git.WithDir(repoPath))
//	cmd := runner.NewCommand("cat-file", "-t").AddDynamicArguments(objectish)
//	out, err := cmd.RunStdString(ctx, nil)
//
// Arguments given to NewCommand and AddArguments are trusted: they are
// literals chosen by this module. Anything that comes from a caller (refs,
// remote names, object names) goes through AddDynamicArguments, which places
// the values after a --end-of-options marker whenever one of them looks like
// a flag, so a remote named "--upload-pack=..." stays a remote name.
//
// Flag values go through AddOptionValues, and pathspecs through
// AddDashesAndList.
//
// # Error Handling
//
// Every failure returned by this package satisfies errors.Is(err, ErrGit):
//   - *FailedError when git exits with a non-zero status
//   - *SignaledError when git is terminated by a signal
//   - *TimeoutError when the command outlives its timeout (the process is killed)
//   - *NotFoundError when a ref or tag cannot be resolved
//   - *UnsupportedObjectTypeError for object types the model does not know
//   - *InvalidArgumentError when input is rejected before git is started
//
// Command failures carry the argument vector and the raw stderr:
//
//	["git", "status"], status: pid 65628 SIGKILL (signal 9), stderr: "uncaught signal"
package git
