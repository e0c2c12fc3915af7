// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include SetHomeDir, filesystem setup on any afero.Fs
// (MustMkdirAll, MustWriteFile, MustWriteExecutable), and Tree, which lays out
// a fake versions root with installed interpreters and version files.
package testutil
