// SPDX-License-Identifier: MPL-2.0

// Package cmd is the pyshim composition root.
//
// Invoked under any name other than "pyshim" (python, pip, a script alias),
// the binary is a shim: it loads configuration, resolves the target, and
// hands off through the dispatcher without touching Cobra. Invoked as
// "pyshim" it runs the management CLI built on Cobra and Fang.
package cmd
