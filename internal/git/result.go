package git

import (
	"fmt"
	"os"
)

// Result describes one finished git invocation.
type Result struct {
	Argv   []string
	Status ExitStatus
	Stdout []byte
	Stderr string
}

// ExitStatus is how a git process ended: either an exit code or a signal.
type ExitStatus struct {
	Pid      int
	Code     int
	Signaled bool
	Signal   int
}

// String renders the status the way a shell reports it, for example
// "pid 4242 exit 1" or "pid 65628 SIGKILL (signal 9)".
func (s ExitStatus) String() string {
	if s.Signaled {
		name := signalName(s.Signal)
		if name == "" {
			return fmt.Sprintf("pid %d signal %d", s.Pid, s.Signal)
		}
		return fmt.Sprintf("pid %d %s (signal %d)", s.Pid, name, s.Signal)
	}
	return fmt.Sprintf("pid %d exit %d", s.Pid, s.Code)
}

// Success reports a normal exit with code 0.
func (s ExitStatus) Success() bool {
	return !s.Signaled && s.Code == 0
}

// exitStatus converts a finished process state. A nil state (the process
// never started) is reported as exit code -1.
func exitStatus(state *os.ProcessState) ExitStatus {
	if state == nil {
		return ExitStatus{Code: -1}
	}
	status := ExitStatus{Pid: state.Pid(), Code: state.ExitCode()}
	if sig, ok := terminatingSignal(state); ok {
		status.Signaled = true
		status.Signal = sig
	}
	return status
}
