// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invowk/pyshim/internal/config"
	"github.com/invowk/pyshim/internal/dispatch"
)

// newConfigCommand creates the `pyshim config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage pyshim configuration",
		Long: `Manage pyshim configuration.

Configuration is stored in:
  - Linux: ~/.config/pyshim/config.cue (or config.toml)
  - macOS: ~/Library/Application Support/pyshim/config.cue
  - Windows: %APPDATA%\pyshim\config.cue

$PYSHIM_CONFIG names a file to use instead, and PYSHIM_<KEY> variables
override individual keys.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, flags, cmd.OutOrStdout())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.CreateDefaultConfig(config.LoadOptions{})
			if err != nil {
				return flags.fail(dispatch.ExitFailure, err)
			}
			out := cmd.OutOrStdout()
			if !created {
				_, err = fmt.Fprintf(out, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
				return err
			}
			_, err = fmt.Fprintf(out, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return err
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app, flags, cmd.OutOrStdout())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), app.loadOptions(flags.configPath))
			if err != nil {
				return flags.fail(dispatch.ExitFailure, err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
			return err
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, flags *rootFlags, out io.Writer) error {
	opts := app.loadOptions(flags.configPath)
	cfg, err := app.Config.Load(ctx, opts)
	if err != nil {
		return flags.fail(dispatch.ExitFailure, err)
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("Current Configuration") + "\n\n")

	path, err := app.Config.Path(opts)
	if err != nil || path == "" {
		fmt.Fprintf(&sb, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(&sb, "%s: %s\n", keyStyle.Render("Config file"), path)
	}
	sb.WriteString("\n")

	root := cfg.Root
	if root == "" {
		root = SubtitleStyle.Render(fmt.Sprintf("($%s, then $HOME/.pyenv)", cfg.RootEnv))
	} else {
		root = valueStyle.Render(root)
	}

	for _, kv := range []struct{ key, value string }{
		{"program", valueStyle.Render(cfg.Program)},
		{"root", root},
		{"root_env", valueStyle.Render(cfg.RootEnv)},
		{"version_env", valueStyle.Render(cfg.VersionEnv)},
		{"version_file", valueStyle.Render(cfg.VersionFile)},
		{"global_files", listValue(cfg.GlobalFiles)},
		{"stop_markers", listValue(cfg.StopMarkers)},
		{"unsatisfied", valueStyle.Render(string(cfg.Unsatisfied))},
		{"script_interpreters", listValue(cfg.Interpreters())},
		{"exec_mode", valueStyle.Render(string(cfg.ExecMode))},
		{"log_level", valueStyle.Render(string(cfg.LogLevel))},
	} {
		fmt.Fprintf(&sb, "%s: %s\n", keyStyle.Render(kv.key), kv.value)
	}

	_, err = io.WriteString(out, sb.String())
	return err
}

func listValue(items []string) string {
	if len(items) == 0 {
		return SubtitleStyle.Render("(none configured)")
	}
	return SuccessStyle.Render(strings.Join(items, ", "))
}

func showConfigPath(app *App, flags *rootFlags, out io.Writer) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return flags.fail(dispatch.ExitFailure, err)
	}

	path, err := app.Config.Path(app.loadOptions(flags.configPath))
	if err != nil {
		return flags.fail(dispatch.ExitFailure, err)
	}
	if path == "" {
		path = SubtitleStyle.Render("(none, using defaults)")
	}

	_, err = fmt.Fprintf(out, "Config directory: %s\nConfig file: %s\n", cfgDir, path)
	return err
}
