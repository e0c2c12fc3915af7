// SPDX-License-Identifier: MPL-2.0

package dispatch

// Executor performs the final handoff.
type Executor interface {
	// Replace replaces the current process image with path. It returns only
	// on failure.
	Replace(path string, argv, env []string) error
	// Spawn runs path as a child with inherited standard streams, waits for
	// it, and returns its exit status.
	Spawn(path string, argv, env []string) (ExitCode, error)
}

// OSExecutor hands off to real processes.
type OSExecutor struct{}

// NewOSExecutor returns the Executor for the running platform.
func NewOSExecutor() *OSExecutor { return &OSExecutor{} }
