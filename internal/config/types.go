// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/invowk/pyshim/pkg/platform"
)

const (
	// UnsatisfiedFallthrough continues with lower-precedence version sources
	// when every identifier in a version file is uninstalled.
	UnsatisfiedFallthrough UnsatisfiedPolicy = "fallthrough"
	// UnsatisfiedStrict stops at the first version source found, installed or not.
	UnsatisfiedStrict UnsatisfiedPolicy = "strict"

	// ExecModeAuto replaces the process image where the OS allows it and
	// spawns the target otherwise.
	ExecModeAuto ExecMode = "auto"
	// ExecModeReplace always replaces the process image.
	ExecModeReplace ExecMode = "replace"
	// ExecModeSpawn always runs the target as a child and forwards its exit status.
	ExecModeSpawn ExecMode = "spawn"

	// LogLevelDebug logs every resolution step.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs informational messages.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs recoverable problems only.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs failures only.
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidUnsatisfiedPolicy is returned when an UnsatisfiedPolicy value is not recognized.
	ErrInvalidUnsatisfiedPolicy = errors.New("invalid unsatisfied policy")
	// ErrInvalidExecMode is returned when an ExecMode value is not recognized.
	ErrInvalidExecMode = errors.New("invalid exec mode")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidFileName is returned when a name that must be a single path
	// element is empty or contains a separator.
	ErrInvalidFileName = errors.New("invalid file name")
	// ErrInvalidEnvName is returned when an environment variable name is empty
	// or contains characters a shell cannot export.
	ErrInvalidEnvName = errors.New("invalid environment variable name")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// UnsatisfiedPolicy decides what happens when a version file lists only
	// identifiers that are not installed.
	UnsatisfiedPolicy string

	// ExecMode selects how control is handed to the resolved target.
	ExecMode string

	// LogLevel is the minimum level written to stderr.
	LogLevel string

	// InvalidValueError reports a config value outside its allowed set.
	// Sentinel is one of the ErrInvalid* values above.
	InvalidValueError struct {
		Field    string
		Value    string
		Sentinel error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the shim configuration.
	Config struct {
		// Program is the canonical program name the shim stands in for.
		Program string `json:"program" mapstructure:"program"`
		// Root is the directory holding versions/<id>/. Empty means
		// $<RootEnv>, falling back to $HOME/.pyenv.
		Root string `json:"root" mapstructure:"root"`
		// RootEnv names the variable consulted for the root when Root is empty.
		RootEnv string `json:"root_env" mapstructure:"root_env"`
		// VersionEnv names the override variable (highest precedence).
		VersionEnv string `json:"version_env" mapstructure:"version_env"`
		// VersionFile is the per-directory version file name.
		VersionFile string `json:"version_file" mapstructure:"version_file"`
		// GlobalFiles are file names under Root consulted, in order, as the global version file.
		GlobalFiles []string `json:"global_files" mapstructure:"global_files"`
		// StopMarkers end the upward walk at the first directory containing one of them.
		StopMarkers []string `json:"stop_markers" mapstructure:"stop_markers"`
		// Unsatisfied is the policy for version files naming only uninstalled versions.
		Unsatisfied UnsatisfiedPolicy `json:"unsatisfied" mapstructure:"unsatisfied"`
		// ScriptInterpreters are interpreter name prefixes that mark a sibling
		// script as runnable through the resolved program. Empty means [Program].
		ScriptInterpreters []string `json:"script_interpreters" mapstructure:"script_interpreters"`
		// ExecMode selects image replacement or spawn-and-wait.
		ExecMode ExecMode `json:"exec_mode" mapstructure:"exec_mode"`
		// LogLevel is the minimum stderr log level.
		LogLevel LogLevel `json:"log_level" mapstructure:"log_level"`
	}
)

// DefaultConfig returns the default configuration, which mirrors pyenv's layout.
func DefaultConfig() *Config {
	return &Config{
		Program:     "python",
		RootEnv:     "PYENV_ROOT",
		VersionEnv:  "PYENV_VERSION",
		VersionFile: ".python-version",
		GlobalFiles: []string{"version", "global", "default"},
		StopMarkers: []string{},
		Unsatisfied: UnsatisfiedFallthrough,
		ExecMode:    ExecModeAuto,
		LogLevel:    LogLevelWarn,
	}
}

// Interpreters returns the effective script interpreter prefixes.
func (c *Config) Interpreters() []string {
	if len(c.ScriptInterpreters) > 0 {
		return c.ScriptInterpreters
	}
	return []string{c.Program}
}

// Error implements the error interface.
func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s: %v %q", e.Field, e.Sentinel, e.Value)
}

// Unwrap returns the sentinel for errors.Is() compatibility.
func (e *InvalidValueError) Unwrap() error { return e.Sentinel }

// IsValid returns whether the UnsatisfiedPolicy is recognized,
// and a list of validation errors if it is not.
func (p UnsatisfiedPolicy) IsValid() (bool, []error) {
	switch p {
	case UnsatisfiedFallthrough, UnsatisfiedStrict:
		return true, nil
	default:
		return false, []error{&InvalidValueError{Field: "unsatisfied", Value: string(p), Sentinel: ErrInvalidUnsatisfiedPolicy}}
	}
}

// IsValid returns whether the ExecMode is recognized.
func (m ExecMode) IsValid() (bool, []error) {
	switch m {
	case ExecModeAuto, ExecModeReplace, ExecModeSpawn:
		return true, nil
	default:
		return false, []error{&InvalidValueError{Field: "exec_mode", Value: string(m), Sentinel: ErrInvalidExecMode}}
	}
}

// IsValid returns whether the LogLevel is recognized.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidValueError{Field: "log_level", Value: string(l), Sentinel: ErrInvalidLogLevel}}
	}
}

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for _, name := range []struct{ field, value string }{
		{"program", c.Program},
		{"version_file", c.VersionFile},
	} {
		if !isFileName(name.value) {
			errs = append(errs, &InvalidValueError{Field: name.field, Value: name.value, Sentinel: ErrInvalidFileName})
		}
	}
	for i, name := range c.GlobalFiles {
		if !isFileName(name) {
			errs = append(errs, &InvalidValueError{Field: fmt.Sprintf("global_files[%d]", i), Value: name, Sentinel: ErrInvalidFileName})
		}
	}
	for _, name := range []struct{ field, value string }{
		{"root_env", c.RootEnv},
		{"version_env", c.VersionEnv},
	} {
		if !isEnvName(name.value) {
			errs = append(errs, &InvalidValueError{Field: name.field, Value: name.value, Sentinel: ErrInvalidEnvName})
		}
	}
	if valid, fieldErrs := c.Unsatisfied.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.ExecMode.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.LogLevel.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig and the field errors for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// isFileName reports whether s is a single, non-special path element that
// every platform can create.
func isFileName(s string) bool {
	if strings.TrimSpace(s) == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`) && !platform.IsWindowsReservedName(s)
}

// isEnvName reports whether s is a portable environment variable name.
func isEnvName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
