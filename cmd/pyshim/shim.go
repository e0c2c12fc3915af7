// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/invowk/pyshim/internal/config"
	"github.com/invowk/pyshim/internal/dispatch"
	"github.com/invowk/pyshim/internal/issue"
	"github.com/invowk/pyshim/pkg/platform"
)

// isManagementInvocation reports whether argv[0] names pyshim itself.
func isManagementInvocation(argv []string) bool {
	return len(argv) > 0 && platform.ProgramName(argv[0]) == config.AppName
}

// runShim is the hot path: one config load, one resolution, one handoff.
// It returns only when control was not transferred.
func (a *App) runShim(ctx context.Context, argv []string) dispatch.ExitCode {
	cfg, err := a.Config.Load(ctx, a.loadOptions(""))
	if err != nil {
		a.shimFailure(err)
		return dispatch.ExitFailure
	}

	logger := newLogger(a.stderr, cfg.LogLevel)

	argv0 := ""
	if len(argv) > 0 {
		argv0 = argv[0]
	}
	sc, err := a.SearchContext(cfg, argv0)
	if err != nil {
		a.shimFailure(err)
		return dispatch.ExitNotFound
	}

	return a.dispatcher(cfg, logger).Run(argv, sc)
}

func (a *App) shimFailure(err error) {
	_, _ = fmt.Fprintln(a.stderr, issue.SingleLine(dispatch.DefaultLabel, err)) // Nowhere left to report
}
