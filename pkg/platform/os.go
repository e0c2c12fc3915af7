// SPDX-License-Identifier: MPL-2.0

package platform

import "runtime"

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// IsWindows reports whether the running binary was built for Windows.
func IsWindows() bool {
	return runtime.GOOS == Windows
}

// CanReplaceImage reports whether goos supports replacing the current process
// image in place (execve). Windows has no equivalent, so the dispatcher has to
// spawn the target and forward its exit status instead.
func CanReplaceImage(goos string) bool {
	return goos != Windows && goos != "plan9" && goos != "js" && goos != "wasip1"
}
