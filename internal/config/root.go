// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

// ErrNoRoot is returned when neither the config, the root variable, nor HOME
// yield a versions root.
var ErrNoRoot = errors.New("no versions root: set root, $PYENV_ROOT or $HOME")

// RootDir returns the versions root. An explicit Root wins, then $<RootEnv>,
// then $HOME/.pyenv. The env function supplies variable values.
func (c *Config) RootDir(env func(string) string) (string, error) {
	raw := c.Root
	if raw == "" && c.RootEnv != "" {
		raw = env(c.RootEnv)
	}
	if raw != "" {
		return ExpandPath(raw, env)
	}

	home := env("HOME")
	if home == "" {
		home = env("USERPROFILE")
	}
	if home == "" {
		return "", ErrNoRoot
	}
	return filepath.Join(home, ".pyenv"), nil
}

// ExpandPath expands a leading tilde and $VAR references in raw using shell
// word rules. Values without either are returned cleaned but otherwise untouched,
// so Windows paths keep their backslashes.
func ExpandPath(raw string, env func(string) string) (string, error) {
	if !strings.ContainsAny(raw, "$~") {
		return filepath.Clean(raw), nil
	}

	fields, err := shell.Fields(raw, env)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", raw, err)
	}
	if len(fields) != 1 {
		return "", fmt.Errorf("expand %q: expected a single path, got %d words", raw, len(fields))
	}
	return filepath.Clean(fields[0]), nil
}
