//go:build unix

package git

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

func terminatingSignal(state *os.ProcessState) (int, bool) {
	ws, ok := state.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return 0, false
	}
	return int(ws.Signal()), true
}

func signalName(sig int) string {
	return unix.SignalName(syscall.Signal(sig))
}
