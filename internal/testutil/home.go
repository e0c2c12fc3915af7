// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"
)

// SetHomeDir points the platform's home variable at dir for the rest of the
// test: USERPROFILE on Windows, HOME elsewhere. The original value is restored
// by t.Setenv's cleanup, so callers must not run in parallel.
func SetHomeDir(t *testing.T, dir string) {
	t.Helper()

	switch runtime.GOOS {
	case "windows":
		t.Setenv("USERPROFILE", dir)
	default:
		t.Setenv("HOME", dir)
	}
}
