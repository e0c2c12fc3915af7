// SPDX-License-Identifier: MPL-2.0

//go:build unix

package dispatch

import (
	"os/exec"
	"syscall"
)

func signalNumber(exitErr *exec.ExitError) syscall.Signal {
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return ws.Signal()
	}
	return 0
}
