// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"strings"

	"github.com/invowk/pyshim/pkg/platform"
)

const (
	// KindPassthrough forwards every argument to the resolved program.
	KindPassthrough Kind = iota
	// KindInspectPath prints the resolved executable.
	KindInspectPath
	// KindInspectDir prints the directory holding the executable.
	KindInspectDir
	// KindInspectPrefix prints the parent of that directory.
	KindInspectPrefix
	// KindInspectWhich prints the executable and the rule that selected it.
	KindInspectWhich
	// KindScriptDispatch runs a sibling of the resolved program.
	KindScriptDispatch
)

// Inspection flags, recognized only as the first argument.
const (
	FlagPath   = "--path"
	FlagDir    = "--dir"
	FlagPrefix = "--prefix"
	FlagWhich  = "--which"
)

type (
	// Kind tags an Intent.
	Kind int

	// Intent is what an invocation asks for, derived once from argv.
	Intent struct {
		Kind Kind
		// Script is the invocation name in script dispatch mode.
		Script string
		// Args are forwarded to the target (argv[1:] for passthrough and
		// script dispatch, the arguments after the flag for inspection).
		Args []string
	}
)

// String returns the flag or mode name.
func (k Kind) String() string {
	switch k {
	case KindInspectPath:
		return FlagPath
	case KindInspectDir:
		return FlagDir
	case KindInspectPrefix:
		return FlagPrefix
	case KindInspectWhich:
		return FlagWhich
	case KindScriptDispatch:
		return "script"
	default:
		return "passthrough"
	}
}

// IsInspection reports whether the kind prints a value instead of executing.
func (k Kind) IsInspection() bool {
	return k >= KindInspectPath && k <= KindInspectWhich
}

// ParseIntent derives the Intent from argv as given. argv[0] is not
// canonicalized: "mytool" stays a script name even when it links to the shim.
func ParseIntent(argv []string, program string) Intent {
	return parseIntent(platform.IsWindows(), argv, program)
}

func parseIntent(foldCase bool, argv []string, program string) Intent {
	if len(argv) == 0 {
		return Intent{Kind: KindPassthrough}
	}
	args := argv[1:]

	name := platform.ProgramName(argv[0])
	if name != "" && !sameName(foldCase, name, program) {
		return Intent{Kind: KindScriptDispatch, Script: name, Args: args}
	}

	if len(args) > 0 {
		var kind Kind
		switch args[0] {
		case FlagPath:
			kind = KindInspectPath
		case FlagDir:
			kind = KindInspectDir
		case FlagPrefix:
			kind = KindInspectPrefix
		case FlagWhich:
			kind = KindInspectWhich
		}
		if kind.IsInspection() {
			return Intent{Kind: kind, Args: args[1:]}
		}
	}

	return Intent{Kind: KindPassthrough, Args: args}
}

func sameName(foldCase bool, a, b string) bool {
	if foldCase {
		return strings.EqualFold(a, b)
	}
	return a == b
}
