// SPDX-License-Identifier: MPL-2.0

// Package config handles shim configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/pyshim/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/pyshim/config.cue on macOS, %APPDATA%\pyshim\config.cue
// on Windows). A config.toml in the same directory is accepted when no CUE file exists.
// Every key can be overridden with a PYSHIM_<KEY> environment variable, and
// PYSHIM_CONFIG points at an explicit file.
//
// Both file formats are validated against the embedded CUE schema (config_schema.cue).
// A missing file is not an error: the shim runs on defaults, which mirror pyenv's
// own layout (PYENV_ROOT, PYENV_VERSION, .python-version).
package config
