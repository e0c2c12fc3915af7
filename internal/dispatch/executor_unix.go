// SPDX-License-Identifier: MPL-2.0

//go:build unix

package dispatch

import (
	"golang.org/x/sys/unix"
)

// Replace checks that path is executable for the real user and then calls
// execve(2). On success it does not return.
func (*OSExecutor) Replace(path string, argv, env []string) error {
	if err := unix.Access(path, unix.X_OK); err != nil {
		return err
	}
	return unix.Exec(path, argv, env)
}

// Spawn runs path as a child process and forwards its exit status.
func (*OSExecutor) Spawn(path string, argv, env []string) (ExitCode, error) {
	if err := unix.Access(path, unix.X_OK); err != nil {
		return ExitCannotExecute, err
	}
	return spawn(path, argv, env)
}
