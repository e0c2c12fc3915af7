// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no candidate executable exists anywhere.
	ErrNotFound = errors.New("no matching executable found")
	// ErrUnreadableVersionFile marks a version file that exists but cannot be
	// read or parsed. It is recovered: the file is treated as absent.
	ErrUnreadableVersionFile = errors.New("unreadable version file")
	// ErrNoInstalledVersions is returned when a version source names only
	// identifiers that have no installed executable.
	ErrNoInstalledVersions = errors.New("no installed versions")
)

type (
	// NotFoundError reports what was searched for Program without success.
	// The message leaves the program name to the caller's context.
	NotFoundError struct {
		Program string
		// Searched lists the locations consulted, in order.
		Searched []string
	}

	// NoInstalledVersionsError reports a version source whose identifiers
	// are all uninstalled.
	NoInstalledVersionsError struct {
		Program   string
		Selection Selection
		Root      string
	}

	// UnreadableVersionFileError wraps the reason a version file was skipped.
	UnreadableVersionFileError struct {
		Path  string
		Cause error
	}
)

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if len(e.Searched) == 0 {
		return ErrNotFound.Error()
	}
	return fmt.Sprintf("%v (searched %s)", ErrNotFound, strings.Join(e.Searched, ", "))
}

// Unwrap returns ErrNotFound for errors.Is() compatibility.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Error implements the error interface.
func (e *NoInstalledVersionsError) Error() string {
	versions := strings.Join(e.Selection.Versions, ", ")
	if versions == "" {
		versions = "(none)"
	}
	return fmt.Sprintf("%v: version %s %s is not installed under %s",
		ErrNoInstalledVersions, versions, e.Selection.Describe(), e.Root)
}

// Unwrap returns ErrNoInstalledVersions for errors.Is() compatibility.
func (e *NoInstalledVersionsError) Unwrap() error { return ErrNoInstalledVersions }

// Error implements the error interface.
func (e *UnreadableVersionFileError) Error() string {
	return fmt.Sprintf("%v %s: %v", ErrUnreadableVersionFile, e.Path, e.Cause)
}

// Unwrap returns both the sentinel and the underlying cause.
func (e *UnreadableVersionFileError) Unwrap() []error {
	return []error{ErrUnreadableVersionFile, e.Cause}
}
