// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// ExecutableScript is the content written by MustWriteExecutable when none is given.
const ExecutableScript = "#!/bin/sh\nexit 0\n"

// MustMkdirAll creates a directory along with any necessary parents on fs.
// The test fails immediately if the operation fails.
func MustMkdirAll(t testing.TB, fs afero.Fs, path string) {
	t.Helper()
	if err := fs.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}

// MustWriteFile writes content to path on fs, creating parent directories.
func MustWriteFile(t testing.TB, fs afero.Fs, path, content string, perm os.FileMode) {
	t.Helper()
	MustMkdirAll(t, fs, filepath.Dir(path))
	if err := afero.WriteFile(fs, path, []byte(content), perm); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	// umask may have stripped bits on the OS filesystem.
	if err := fs.Chmod(path, perm); err != nil {
		t.Fatalf("failed to chmod %s: %v", path, err)
	}
}

// MustWriteExecutable writes an executable file (mode 0755) at path on fs.
// An empty content writes ExecutableScript.
func MustWriteExecutable(t testing.TB, fs afero.Fs, path, content string) {
	t.Helper()
	if content == "" {
		content = ExecutableScript
	}
	MustWriteFile(t, fs, path, content, 0o755)
}
