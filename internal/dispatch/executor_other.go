// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package dispatch

// Replace is unavailable without execve; the dispatcher spawns instead.
func (*OSExecutor) Replace(string, []string, []string) error {
	return ErrReplaceUnsupported
}

// Spawn runs path as a child process and forwards its exit status.
func (*OSExecutor) Spawn(path string, argv, env []string) (ExitCode, error) {
	return spawn(path, argv, env)
}
