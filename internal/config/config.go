// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/invowk/pyshim/internal/issue"
	"github.com/invowk/pyshim/pkg/platform"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "pyshim"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the preferred config file extension.
	ConfigFileExt = "cue"
	// TOMLFileExt is the alternative config file extension.
	TOMLFileExt = "toml"

	// EnvPrefix is the prefix of the environment variables overriding config keys.
	EnvPrefix = "PYSHIM"
	// ConfigFileEnv names the variable holding an explicit config file path.
	ConfigFileEnv = EnvPrefix + "_CONFIG"

	// MaxFileSize bounds how much of a config file is read.
	MaxFileSize = 1 << 20
)

//go:embed config_schema.cue
var configSchema string

// ErrFileTooLarge is returned when a config file exceeds MaxFileSize.
var ErrFileTooLarge = errors.New("config file too large")

// ConfigDir returns the pyshim configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// loadWithOptions performs option-driven config loading. It returns the
// decoded config and the path of the file it came from ("" for defaults).
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("program", defaults.Program)
	v.SetDefault("root", defaults.Root)
	v.SetDefault("root_env", defaults.RootEnv)
	v.SetDefault("version_env", defaults.VersionEnv)
	v.SetDefault("version_file", defaults.VersionFile)
	v.SetDefault("global_files", defaults.GlobalFiles)
	v.SetDefault("stop_markers", defaults.StopMarkers)
	v.SetDefault("unsatisfied", string(defaults.Unsatisfied))
	v.SetDefault("script_interpreters", defaults.ScriptInterpreters)
	v.SetDefault("exec_mode", string(defaults.ExecMode))
	v.SetDefault("log_level", string(defaults.LogLevel))

	// PYSHIM_<KEY> overrides both defaults and the file.
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	resolvedPath, err := findConfigFile(opts)
	if err != nil {
		return nil, "", err
	}

	if resolvedPath != "" {
		if !fileExists(resolvedPath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithSuggestion("Use 'pyshim config show' to see the default configuration").
				Wrap(fmt.Errorf("config file not found: %s", resolvedPath)).
				BuildError()
		}
		if err := loadFileIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE or TOML syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Run 'pyshim config dump' for an annotated example").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Environment overrides bypass the schema, so check again after the merge.
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check the " + EnvPrefix + "_* environment variables").
			WithSuggestion("Run 'pyshim config show' to see the effective values").
			Wrap(errors.Join(errs...)).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// findConfigFile returns the config file to load. An explicit path always wins;
// otherwise config.cue and then config.toml are looked up in the config directory.
// An empty result means defaults apply.
func findConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		return opts.ConfigFilePath, nil
	}

	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}

	for _, ext := range []string{ConfigFileExt, TOMLFileExt} {
		candidate := filepath.Join(cfgDir, ConfigFileName+"."+ext)
		if fileExists(candidate) {
			return candidate, nil
		}
	}

	return "", nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadFileIntoViper reads a CUE or TOML config file, validates it against the
// #Config schema, and merges its contents into Viper.
func loadFileIntoViper(v *viper.Viper, path string) error {
	data, err := readBounded(path)
	if err != nil {
		return err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	var userValue cue.Value
	if strings.EqualFold(filepath.Ext(path), "."+TOMLFileExt) {
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				row, col := derr.Position()
				return fmt.Errorf("%s:%d:%d: %w", path, row, col, err)
			}
			return fmt.Errorf("%s: %w", path, err)
		}
		userValue = ctx.Encode(raw)
	} else {
		userValue = ctx.CompileBytes(data, cue.Filename(path))
	}
	if userValue.Err() != nil {
		return formatCUEError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return formatCUEError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return formatCUEError(err, path)
	}

	// Merge into Viper (preserves defaults, allows env overrides)
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// formatCUEError flattens a CUE error list into one line per problem, with positions.
func formatCUEError(err error, path string) error {
	details := strings.TrimSpace(cueerrors.Details(err, nil))
	if details == "" {
		return fmt.Errorf("%s: %w", path, err)
	}
	return fmt.Errorf("%s: %s", path, strings.ReplaceAll(details, "\n", "; "))
}

func readBounded(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%s: %w (%d bytes, limit %d)", path, ErrFileTooLarge, info.Size(), MaxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return data, nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes a default config.cue into the config directory
// unless one already exists. It returns the file path and whether it was written.
func CreateDefaultConfig(opts LoadOptions) (string, bool, error) {
	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", false, err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)

	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, false, nil
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, true, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// pyshim configuration file\n")
	sb.WriteString("// Every key is optional; PYSHIM_<KEY> environment variables take precedence.\n\n")

	fmt.Fprintf(&sb, "program: %q\n", cfg.Program)
	if cfg.Root != "" {
		fmt.Fprintf(&sb, "root: %q\n", cfg.Root)
	} else {
		fmt.Fprintf(&sb, "// root: \"~/.pyenv\" (unset: $%s, then $HOME/.pyenv)\n", cfg.RootEnv)
	}
	fmt.Fprintf(&sb, "root_env: %q\n", cfg.RootEnv)
	fmt.Fprintf(&sb, "version_env: %q\n", cfg.VersionEnv)
	fmt.Fprintf(&sb, "version_file: %q\n", cfg.VersionFile)
	fmt.Fprintf(&sb, "global_files: %s\n", cueList(cfg.GlobalFiles))
	fmt.Fprintf(&sb, "stop_markers: %s\n", cueList(cfg.StopMarkers))
	fmt.Fprintf(&sb, "\nunsatisfied: %q\n", cfg.Unsatisfied)
	fmt.Fprintf(&sb, "script_interpreters: %s\n", cueList(cfg.ScriptInterpreters))
	fmt.Fprintf(&sb, "exec_mode: %q\n", cfg.ExecMode)
	fmt.Fprintf(&sb, "log_level: %q\n", cfg.LogLevel)

	return sb.String()
}

func cueList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
