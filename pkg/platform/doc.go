// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// This package centralizes GOOS names and the rules for turning a program name
// into the file names an executable may carry on disk (for example "python" vs
// "python.exe"), so the resolver and dispatcher never compare raw GOOS strings.
package platform
