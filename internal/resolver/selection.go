// SPDX-License-Identifier: MPL-2.0

package resolver

import "fmt"

const (
	// OriginNone means no version source was found.
	OriginNone Origin = iota
	// OriginEnv means the override variable supplied the versions.
	OriginEnv
	// OriginLocal means a per-directory version file supplied the versions.
	OriginLocal
	// OriginGlobal means the global version file supplied the versions.
	OriginGlobal
	// OriginExplicitPath means the override variable named a path.
	OriginExplicitPath
	// OriginSystem means the executable came from the PATH fallback.
	OriginSystem
)

// SystemVersion is the identifier that selects the PATH lookup.
const SystemVersion = "system"

type (
	// Origin identifies which rule supplied a version selection.
	Origin int

	// Selection is an ordered list of acceptable version identifiers, most
	// preferred first, plus where it came from.
	Selection struct {
		Versions []string
		Origin   Origin
		// Source is the version file path or the variable name.
		Source string
	}

	// Result is the outcome of a successful resolution.
	Result struct {
		// Path is the absolute path of the executable.
		Path string
		// Dir is the directory containing Path.
		Dir string
		// Version is the matched identifier, or "system".
		Version string
		Origin  Origin
		// Source is the version file path or variable that selected Version.
		Source string
		// Justification describes which rule matched, for --which.
		Justification string
	}
)

// String returns a human-readable origin name.
func (o Origin) String() string {
	switch o {
	case OriginEnv:
		return "environment"
	case OriginLocal:
		return "local version file"
	case OriginGlobal:
		return "global version file"
	case OriginExplicitPath:
		return "explicit path"
	case OriginSystem:
		return "system"
	default:
		return "none"
	}
}

// Describe explains where the selection came from, e.g.
// "set by /proj/.python-version".
func (s Selection) Describe() string {
	switch s.Origin {
	case OriginEnv, OriginExplicitPath:
		return fmt.Sprintf("set by %s environment variable", s.Source)
	case OriginLocal, OriginGlobal:
		return "set by " + s.Source
	default:
		return "set by default"
	}
}

// Name returns the identifiers joined the way pyenv prints them.
func (s Selection) Name() string {
	name := ""
	for i, v := range s.Versions {
		if i > 0 {
			name += ":"
		}
		name += v
	}
	return name
}
