// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"errors"
	"os"
	"os/exec"
	"os/signal"
)

// spawn runs the target with inherited standard streams. Interrupts are left
// to the child, which shares the terminal's process group. The shim catches
// them rather than ignoring them: an ignored signal stays ignored across exec,
// while a caught one is reset to its default in the child.
func spawn(path string, argv, env []string) (ExitCode, error) {
	cmd := exec.Command(path)
	cmd.Args = argv
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	err := cmd.Run()
	if err == nil {
		return ExitSuccess, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		// Killed by a signal.
		if code < 0 {
			code = 128 + int(signalNumber(exitErr))
		}
		return ExitCode(code), nil
	}
	return ExitCannotExecute, err
}
