// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"bytes"
	"path"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

// sniffSize is how much of a sibling is read to classify it. Kernels ignore
// shebang lines beyond a similar limit.
const sniffSize = 256

// Shebang is the interpreter line of a script.
type Shebang struct {
	Interpreter string
	Args        []string
}

// ScriptKind classifies a sibling executable.
type ScriptKind int

const (
	// ScriptPlain is a text file without an interpreter line.
	ScriptPlain ScriptKind = iota
	// ScriptShebang is a text file starting with "#!".
	ScriptShebang
	// ScriptBinary is a native executable.
	ScriptBinary
)

var binaryMagic = [][]byte{
	[]byte("\x7fELF"),
	[]byte("MZ"),
	{0xfe, 0xed, 0xfa, 0xce}, // Mach-O 32-bit
	{0xfe, 0xed, 0xfa, 0xcf}, // Mach-O 64-bit
	{0xce, 0xfa, 0xed, 0xfe},
	{0xcf, 0xfa, 0xed, 0xfe},
	{0xca, 0xfe, 0xba, 0xbe}, // universal
}

// Classify inspects the first bytes of a file.
func Classify(head []byte, env func(string) string) (ScriptKind, Shebang) {
	for _, magic := range binaryMagic {
		if bytes.HasPrefix(head, magic) {
			return ScriptBinary, Shebang{}
		}
	}
	if sb, ok := ParseShebang(head, env); ok {
		return ScriptShebang, sb
	}
	return ScriptPlain, Shebang{}
}

// ParseShebang extracts the interpreter from a "#!" first line.
// "#!/usr/bin/env python3" yields "python3"; "env -S" splits the rest of
// the line with shell word rules.
func ParseShebang(content []byte, env func(string) string) (Shebang, bool) {
	firstLine := content
	if idx := bytes.IndexByte(content, '\n'); idx != -1 {
		firstLine = content[:idx]
	}
	line := strings.TrimSpace(strings.TrimSuffix(string(firstLine), "\r"))

	if !strings.HasPrefix(line, "#!") {
		return Shebang{}, false
	}
	parts := strings.Fields(strings.TrimPrefix(line, "#!"))
	if len(parts) == 0 {
		return Shebang{}, false
	}

	interpreter, args := parts[0], parts[1:]
	if path.Base(interpreter) != "env" {
		return Shebang{Interpreter: interpreter, Args: args}, true
	}
	return parseEnvShebang(args, env)
}

// parseEnvShebang handles "#!/usr/bin/env [flags] interpreter [args]".
func parseEnvShebang(args []string, env func(string) string) (Shebang, bool) {
	if len(args) == 0 {
		return Shebang{}, false
	}

	// Split string mode: #!/usr/bin/env -S python3 -u
	if args[0] == "-S" || strings.HasPrefix(args[0], "-S") {
		rest := strings.Join(args[1:], " ")
		if args[0] != "-S" {
			rest = strings.TrimPrefix(args[0], "-S") + " " + rest
		}
		words, err := shell.Fields(rest, env)
		if err != nil {
			words = strings.Fields(rest)
		}
		if len(words) == 0 {
			return Shebang{}, false
		}
		return Shebang{Interpreter: words[0], Args: words[1:]}, true
	}

	for i, arg := range args {
		// Skip env's own flags and VAR=value assignments.
		if strings.HasPrefix(arg, "-") || strings.Contains(arg, "=") {
			continue
		}
		return Shebang{Interpreter: arg, Args: args[i+1:]}, true
	}
	return Shebang{}, false
}

// RunsWith reports whether the interpreter's base name starts with one of
// the given words, e.g. "python3.11" for "python".
func (s Shebang) RunsWith(words []string) bool {
	base := path.Base(strings.ReplaceAll(s.Interpreter, `\`, "/"))
	base = strings.TrimSuffix(strings.ToLower(base), ".exe")
	for _, w := range words {
		if w != "" && strings.HasPrefix(base, strings.ToLower(w)) {
			return true
		}
	}
	return false
}
