// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/invowk/pyshim/internal/dispatch"
	"github.com/invowk/pyshim/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

type (
	// rootFlags holds the persistent flags shared by every management command.
	rootFlags struct {
		verbose    bool
		configPath string
	}

	// displayError carries the rendered message of err for the error handler
	// while keeping err reachable through errors.Is and errors.As.
	displayError struct {
		text string
		err  error
	}
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// NewRootCommand builds the management command tree.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "pyshim",
		Short: "A fast dispatch shim for pyenv-managed interpreters",
		Long: TitleStyle.Render("pyshim") + SubtitleStyle.Render(" - A fast dispatch shim for pyenv-managed interpreters") + `

Link or copy the pyshim binary under the name of a program (python, pip, or
any script installed beside the interpreter) and put that directory on PATH.
Invoked under such a name it resolves the interpreter selected by
$PYENV_VERSION, the nearest .python-version, or the global version file,
and replaces itself with the target.

Invoked as pyshim it explains what the shim would do.

` + SubtitleStyle.Render("Examples:") + `
  pyshim which              Show the interpreter python would run, and why
  pyshim which pip          Show the executable pip would run
  pyshim version-name       Show the selected version
  pyshim versions           List installed versions
  pyshim config show        Show the effective configuration`,
		SilenceUsage: true,
	}

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/pyshim/config.cue)")

	rootCmd.AddCommand(
		newWhichCommand(app, flags),
		newInspectCommand(app, flags, "path", "Show the executable a program resolves to", inspectPath),
		newInspectCommand(app, flags, "dir", "Show the directory of the resolved executable", inspectDir),
		newPrefixCommand(app, flags),
		newRootDirCommand(app, flags),
		newVersionNameCommand(app, flags),
		newVersionOriginCommand(app, flags),
		newVersionFileCommand(app, flags),
		newVersionsCommand(app, flags),
		newConfigCommand(app, flags),
	)

	return rootCmd
}

// Execute runs the shim, or the management CLI when invoked as pyshim.
// This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, issue.SingleLine("pyshim", err))
		os.Exit(1)
	}

	if !isManagementInvocation(os.Args) {
		os.Exit(int(app.runShim(context.Background(), os.Args)))
	}

	slog.SetDefault(newLogger(os.Stderr, ""))

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay formats an error for user display.
// ActionableErrors show their suggestions, and in verbose mode the full chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

func (e *displayError) Error() string { return e.text }

func (e *displayError) Unwrap() error { return e.err }

// fail wraps err in an ExitError carrying code. The message includes
// suggestions, and the error chain in verbose mode.
func (f *rootFlags) fail(code dispatch.ExitCode, err error) error {
	return &ExitError{
		Code: code,
		Err:  &displayError{text: formatErrorForDisplay(err, f.verbose), err: err},
	}
}
