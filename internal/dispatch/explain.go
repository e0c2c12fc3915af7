// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/invowk/pyshim/internal/config"
	"github.com/invowk/pyshim/internal/issue"
	"github.com/invowk/pyshim/internal/resolver"
)

// Explain maps resolution and handoff failures to actionable errors naming
// the failed operation and how to fix it. Other errors, including ones that
// are already actionable, are returned unchanged.
func Explain(cfg *config.Config, err error) error {
	if err == nil {
		return nil
	}
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return err
	}

	var (
		notFound  *resolver.NotFoundError
		noInst    *resolver.NoInstalledVersionsError
		script    *ScriptNotFoundError
		vanished  *TargetVanishedError
		execErr   *ExecError
		ec        = issue.NewErrorContext().Wrap(err)
		overrides = "$" + cfg.VersionEnv
	)
	switch {
	case errors.As(err, &noInst):
		ec.WithOperation("resolve " + noInst.Program)
		if len(noInst.Selection.Versions) > 0 {
			ec.WithSuggestion(fmt.Sprintf("Run 'pyenv install %s'", noInst.Selection.Versions[0]))
		}
		ec.WithSuggestion("Run 'pyshim versions' to list installed versions")
		if noInst.Selection.Origin == resolver.OriginEnv {
			ec.WithSuggestion("Check " + overrides)
		}
	case errors.As(err, &notFound):
		ec.WithOperation("resolve " + notFound.Program)
		if searchedOverride(notFound, cfg.VersionEnv) {
			ec.WithSuggestion("Check " + overrides)
		} else {
			ec.WithSuggestion(fmt.Sprintf("Install a version with 'pyenv install' or put %s on PATH", notFound.Program))
		}
	case errors.As(err, &script):
		ec.WithOperation("find script " + script.Script).
			WithSuggestion(fmt.Sprintf("Install the package providing %s into the selected version", script.Script)).
			WithSuggestion("Run 'pyshim which' to see which version is selected")
	case errors.As(err, &vanished):
		ec.WithOperation("execute " + filepath.Base(vanished.Path)).
			WithSuggestion("The installation changed during startup; run the command again")
	case errors.As(err, &execErr):
		ec.WithOperation("execute " + filepath.Base(execErr.Path))
		if errors.Is(err, ErrReplaceUnsupported) {
			ec.WithSuggestion("Set exec_mode to auto or spawn")
		}
	default:
		return err
	}
	return ec.BuildError()
}

func searchedOverride(e *resolver.NotFoundError, versionEnv string) bool {
	for _, s := range e.Searched {
		if strings.HasPrefix(s, versionEnv+"=") {
			return true
		}
	}
	return false
}
