//go:build !unix

package git

import "os"

func terminatingSignal(*os.ProcessState) (int, bool) {
	return 0, false
}

func signalName(int) string {
	return ""
}
