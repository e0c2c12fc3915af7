// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// Errors that reach the user carry the operation that failed, the resource it
// failed on (a version file, an executable path, an environment variable) and
// optional remediation hints. The shim renders them as a single stderr line;
// the management CLI adds the hints in verbose mode.
package issue
