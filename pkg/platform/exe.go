// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"path/filepath"
	"strings"
)

// exeSuffix is the executable extension on Windows.
const exeSuffix = ".exe"

// ProgramName returns the bare program name under which a binary was invoked.
// argv0 is used as given: directories are dropped and a trailing ".exe" is
// removed (case-insensitively), but symlinks are not followed, so "mytool"
// stays "mytool" even when it links to the real interpreter.
func ProgramName(argv0 string) string {
	base := filepath.Base(argv0)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	if strings.HasSuffix(strings.ToLower(base), exeSuffix) {
		base = base[:len(base)-len(exeSuffix)]
	}
	return base
}

// ExecutableNamesFor returns the file names that may hold program on goos.
// On Windows the ".exe" form is preferred; a name that already carries an
// executable extension is returned unchanged. Version-like names such as
// "python3.11" still get the suffix.
func ExecutableNamesFor(goos, program string) []string {
	if goos != Windows || hasWindowsExecExt(program) {
		return []string{program}
	}
	return []string{program + exeSuffix, program}
}

func hasWindowsExecExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case exeSuffix, ".com", ".bat", ".cmd":
		return true
	default:
		return false
	}
}
