// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"errors"
	"io/fs"
	"slices"
	"testing"

	"github.com/invowk/pyshim/internal/config"
	"github.com/invowk/pyshim/internal/issue"
	"github.com/invowk/pyshim/internal/resolver"
)

func TestExplain(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	tests := []struct {
		name       string
		err        error
		sentinel   error
		operation  string
		message    string
		suggestion string
	}{
		{
			name: "uninstalled local version",
			err: &resolver.NoInstalledVersionsError{
				Program:   "python",
				Selection: resolver.Selection{Versions: []string{"3.11"}, Origin: resolver.OriginLocal, Source: "/proj/.python-version"},
				Root:      "/root",
			},
			sentinel:   resolver.ErrNoInstalledVersions,
			operation:  "resolve python",
			message:    "failed to resolve python: no installed versions: version 3.11 set by /proj/.python-version is not installed under /root",
			suggestion: "Run 'pyenv install 3.11'",
		},
		{
			name: "uninstalled override",
			err: &resolver.NoInstalledVersionsError{
				Program:   "python",
				Selection: resolver.Selection{Versions: []string{"3.12"}, Origin: resolver.OriginEnv, Source: "PYENV_VERSION"},
				Root:      "/root",
			},
			sentinel:   resolver.ErrNoInstalledVersions,
			operation:  "resolve python",
			suggestion: "Check $PYENV_VERSION",
		},
		{
			name:       "override path missing",
			err:        &resolver.NotFoundError{Program: "python", Searched: []string{"PYENV_VERSION=/nonexistent/python"}},
			sentinel:   resolver.ErrNotFound,
			operation:  "resolve python",
			message:    "failed to resolve python: no matching executable found (searched PYENV_VERSION=/nonexistent/python)",
			suggestion: "Check $PYENV_VERSION",
		},
		{
			name:       "nothing on PATH",
			err:        &resolver.NotFoundError{Program: "pip", Searched: []string{"PATH=/usr/bin"}},
			sentinel:   resolver.ErrNotFound,
			operation:  "resolve pip",
			suggestion: "Install a version with 'pyenv install' or put pip on PATH",
		},
		{
			name:       "missing script",
			err:        &ScriptNotFoundError{Script: "black", Dir: "/root/versions/3.9/bin"},
			sentinel:   ErrScriptNotFound,
			operation:  "find script black",
			message:    "failed to find script black: script not found in /root/versions/3.9/bin",
			suggestion: "Run 'pyshim which' to see which version is selected",
		},
		{
			name:       "vanished target",
			err:        &TargetVanishedError{Path: "/root/versions/3.9/bin/python", Cause: fs.ErrNotExist},
			sentinel:   fs.ErrNotExist,
			operation:  "execute python",
			suggestion: "The installation changed during startup; run the command again",
		},
		{
			name:       "replace unsupported",
			err:        &ExecError{Path: `C:\py\python.exe`, Cause: ErrReplaceUnsupported},
			sentinel:   ErrExecFailed,
			operation:  "execute python.exe",
			suggestion: "Set exec_mode to auto or spawn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Explain(cfg, tt.err)

			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("Explain() = %T, want *issue.ActionableError", err)
			}
			if ae.Operation != tt.operation {
				t.Errorf("Operation = %q, want %q", ae.Operation, tt.operation)
			}
			if tt.message != "" && err.Error() != tt.message {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.message)
			}
			if !slices.Contains(ae.Suggestions, tt.suggestion) {
				t.Errorf("Suggestions = %q, want %q", ae.Suggestions, tt.suggestion)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(%v) = false", tt.sentinel)
			}
		})
	}
}

func TestExplain_PassesThrough(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	plain := errors.New("write output: broken pipe")
	if got := Explain(cfg, plain); got != plain {
		t.Errorf("Explain(plain) = %v, want it unchanged", got)
	}

	actionable := issue.WrapWithContext(plain, "load configuration", "/etc/pyshim")
	if got := Explain(cfg, actionable); got != error(actionable) {
		t.Errorf("Explain(actionable) = %v, want it unchanged", got)
	}

	if Explain(cfg, nil) != nil {
		t.Error("Explain(nil) should return nil")
	}
}
