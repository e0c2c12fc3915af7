// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"errors"
	"fmt"
)

var (
	// ErrTargetVanished is returned when the resolved path existed during
	// resolution but is missing or not executable at handoff time.
	ErrTargetVanished = errors.New("target vanished before execution")
	// ErrScriptNotFound is returned when script dispatch finds no sibling
	// beside the resolved interpreter.
	ErrScriptNotFound = errors.New("script not found")
	// ErrReplaceUnsupported is returned when image replacement is forced on
	// a platform without execve.
	ErrReplaceUnsupported = errors.New("process image replacement is not supported on this platform")
	// ErrExecFailed wraps any other handoff failure.
	ErrExecFailed = errors.New("cannot execute")
)

type (
	// TargetVanishedError names the path that disappeared.
	TargetVanishedError struct {
		Path  string
		Cause error
	}

	// ScriptNotFoundError names the script and the directory it was expected in.
	ScriptNotFoundError struct {
		Script string
		Dir    string
	}

	// ExecError is a handoff failure other than a vanished target.
	ExecError struct {
		Path  string
		Cause error
	}
)

// Error implements the error interface.
func (e *TargetVanishedError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %v", e.Path, ErrTargetVanished)
	}
	return fmt.Sprintf("%s: %v: %v", e.Path, ErrTargetVanished, e.Cause)
}

// Unwrap returns the sentinel and the underlying cause.
func (e *TargetVanishedError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrTargetVanished}
	}
	return []error{ErrTargetVanished, e.Cause}
}

// Error implements the error interface.
func (e *ScriptNotFoundError) Error() string {
	return fmt.Sprintf("%v in %s", ErrScriptNotFound, e.Dir)
}

// Unwrap returns ErrScriptNotFound for errors.Is() compatibility.
func (e *ScriptNotFoundError) Unwrap() error { return ErrScriptNotFound }

// Error implements the error interface.
func (e *ExecError) Error() string {
	return fmt.Sprintf("%v %s: %v", ErrExecFailed, e.Path, e.Cause)
}

// Unwrap returns the sentinel and the underlying cause.
func (e *ExecError) Unwrap() []error { return []error{ErrExecFailed, e.Cause} }
