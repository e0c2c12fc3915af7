// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/invowk/pyshim/internal/dispatch"
	"github.com/invowk/pyshim/internal/issue"
	"github.com/invowk/pyshim/internal/resolver"
)

func newRootDirCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "root",
		Short: "Show the directory holding installed versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context(), flags)
			if err != nil {
				return flags.fail(dispatch.ExitFailure, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), s.sc.Root)
			return err
		},
	}
}

func newVersionNameCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "version-name",
		Short: "Show the selected version, without checking it is installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context(), flags)
			if err != nil {
				return flags.fail(dispatch.ExitFailure, err)
			}
			sel, diags := s.res.Select(s.sc)
			s.logDiagnostics(diags)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), sel.Name())
			return err
		},
	}
}

func newVersionOriginCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "version-origin",
		Short: "Show where the selected version comes from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context(), flags)
			if err != nil {
				return flags.fail(dispatch.ExitFailure, err)
			}
			sel, diags := s.res.Select(s.sc)
			s.logDiagnostics(diags)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), s.origin(sel))
			return err
		},
	}
}

// newVersionFileCommand creates `pyshim version-file [dir]`. Without a
// directory the global file stands in when no local file is found; with
// one, a missing file is an error.
func newVersionFileCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "version-file [dir]",
		Short: "Show the version file that selects the version",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context(), flags)
			if err != nil {
				return flags.fail(dispatch.ExitFailure, err)
			}

			dir := s.sc.WorkDir
			if len(args) == 1 {
				dir = args[0]
				if !filepath.IsAbs(dir) && s.sc.WorkDir != "" {
					dir = filepath.Join(s.sc.WorkDir, dir)
				}
			}

			var path string
			if dir != "" {
				var diags []resolver.Diagnostic
				path, diags = s.res.LocalVersionFile(dir)
				s.logDiagnostics(diags)
			}
			if path == "" {
				if len(args) == 1 {
					return flags.fail(dispatch.ExitFailure, issue.NewErrorContext().
						WithOperation("find "+s.cfg.VersionFile).
						WithResource(dir).
						WithSuggestion("Run 'pyenv local <version>' in the project directory").
						Wrap(fmt.Errorf("no %s in this directory or its parents", s.cfg.VersionFile)).
						BuildError())
				}
				path = s.globalVersionFile()
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}

func newVersionsCommand(app *App, flags *rootFlags) *cobra.Command {
	var bare bool

	cmd := &cobra.Command{
		Use:   "versions",
		Short: "List installed versions",
		Long: `List installed versions. The selected version is marked with '*'
together with where the selection comes from. "system" is listed first
when the program is found on PATH.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context(), flags)
			if err != nil {
				return flags.fail(dispatch.ExitFailure, err)
			}

			installed, err := s.res.InstalledVersions(s.sc)
			if err != nil {
				return flags.fail(dispatch.ExitFailure, issue.WrapWithContext(err, "list installed versions", s.sc.Root))
			}
			if !bare {
				if _, sysErr := s.res.Prefix(s.sc, s.cfg.Program, resolver.SystemVersion); sysErr == nil {
					installed = append([]string{resolver.SystemVersion}, installed...)
				}
			}

			sel, diags := s.res.Select(s.sc)
			s.logDiagnostics(diags)

			return writeVersions(cmd.OutOrStdout(), installed, sel, s.origin(sel), bare)
		},
	}

	cmd.Flags().BoolVar(&bare, "bare", false, "print names only, without the selection marker")

	return cmd
}

func writeVersions(w io.Writer, installed []string, sel resolver.Selection, origin string, bare bool) error {
	selected := make(map[string]bool, len(sel.Versions))
	for _, v := range sel.Versions {
		selected[v] = true
	}

	for _, v := range installed {
		var err error
		switch {
		case bare:
			_, err = fmt.Fprintln(w, v)
		case selected[v]:
			_, err = fmt.Fprintf(w, "%s %s\n", SuccessStyle.Render("* "+v), VerboseStyle.Render("(set by "+origin+")"))
		default:
			_, err = fmt.Fprintf(w, "  %s\n", v)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// origin describes where sel comes from the way pyenv's version-origin does.
func (s *session) origin(sel resolver.Selection) string {
	switch sel.Origin {
	case resolver.OriginEnv, resolver.OriginExplicitPath:
		return sel.Source + " environment variable"
	case resolver.OriginLocal, resolver.OriginGlobal:
		return sel.Source
	default:
		return s.globalVersionFile()
	}
}

// globalVersionFile is the preferred global version file, used when no
// version source exists yet.
func (s *session) globalVersionFile() string {
	name := "version"
	if len(s.cfg.GlobalFiles) > 0 {
		name = s.cfg.GlobalFiles[0]
	}
	return filepath.Join(s.sc.Root, name)
}
