// SPDX-License-Identifier: MPL-2.0

// Package resolver decides which interpreter executable an invocation should run.
//
// Resolution is a pure function of a SearchContext (working directory,
// environment snapshot, PATH list, versions root) and the requested program
// name. All filesystem access goes through an afero.Fs, so the whole
// precedence chain can be exercised against an in-memory tree:
//
//  1. the override variable (PYENV_VERSION), which never falls through
//  2. the nearest per-directory version file, walking towards the root
//  3. the global version file under the versions root
//  4. the first listed identifier with an installed executable
//  5. PATH, skipping the shim's own directories
//
// Recoverable problems (an unreadable version file, an invalid identifier)
// are returned as Diagnostics alongside the result rather than logged.
package resolver
