// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/invowk/pyshim/internal/dispatch"
	"github.com/invowk/pyshim/internal/resolver"
)

// inspector derives one printed value from a resolution.
type inspector func(res *resolver.Result) string

func inspectPath(res *resolver.Result) string { return res.Path }

func inspectDir(res *resolver.Result) string { return filepath.Dir(res.Path) }

func inspectPrefix(res *resolver.Result) string { return filepath.Dir(filepath.Dir(res.Path)) }

// newWhichCommand creates `pyshim which`, the management form of --which.
func newWhichCommand(app *App, flags *rootFlags) *cobra.Command {
	var script string

	cmd := &cobra.Command{
		Use:   "which [program]",
		Short: "Show the executable a program resolves to and why",
		Long: `Show the executable a program resolves to, followed by the rule that
selected it. With --script, show the script of that name installed beside
the resolved interpreter, which is what a shim named after the script runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context(), flags)
			if err != nil {
				return flags.fail(dispatch.ExitFailure, err)
			}

			res, err := s.resolve(s.program(args))
			if err != nil {
				return flags.fail(dispatch.ExitNotFound, err)
			}

			path := res.Path
			if script != "" {
				path, err = app.dispatcher(s.cfg, s.logger).FindScript(res, script, s.sc.GOOS())
				if err != nil {
					return flags.fail(dispatch.ExitNotFound, dispatch.Explain(s.cfg, err))
				}
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", path, res.Justification)
			return err
		},
	}

	cmd.Flags().StringVar(&script, "script", "", "show the named script beside the resolved interpreter")

	return cmd
}

// newInspectCommand creates a command printing one value derived from the
// resolution of [program].
func newInspectCommand(app *App, flags *rootFlags, name, short string, fn inspector) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [program]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context(), flags)
			if err != nil {
				return flags.fail(dispatch.ExitFailure, err)
			}

			res, err := s.resolve(s.program(args))
			if err != nil {
				return flags.fail(dispatch.ExitNotFound, err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), fn(res))
			return err
		},
	}
}

// newPrefixCommand creates `pyshim prefix [version]`. Without a version it
// prints the install root of the resolved interpreter.
func newPrefixCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "prefix [version]",
		Short: "Show the install root of a version",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context(), flags)
			if err != nil {
				return flags.fail(dispatch.ExitFailure, err)
			}

			var prefix string
			if len(args) == 1 {
				prefix, err = s.res.Prefix(s.sc, s.cfg.Program, args[0])
			} else {
				var res *resolver.Result
				if res, err = s.resolve(s.cfg.Program); err == nil {
					prefix = inspectPrefix(res)
				}
			}
			if err != nil {
				return flags.fail(dispatch.ExitNotFound, dispatch.Explain(s.cfg, err))
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), prefix)
			return err
		},
	}
}
