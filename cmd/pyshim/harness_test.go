// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/invowk/pyshim/internal/config"
	"github.com/invowk/pyshim/internal/dispatch"
	"github.com/invowk/pyshim/internal/resolver"
	"github.com/invowk/pyshim/internal/testutil"
	"github.com/invowk/pyshim/pkg/platform"
)

type (
	fakeProvider struct {
		cfg  *config.Config
		err  error
		path string
		opts []config.LoadOptions
	}

	fakeExecutor struct {
		path string
		argv []string
	}

	cliHarness struct {
		tree     *testutil.Tree
		provider *fakeProvider
		exec     *fakeExecutor
		env      map[string]string
		workDir  string
		ctxErr   error
		stdout   *bytes.Buffer
		stderr   *bytes.Buffer
	}
)

func (f *fakeProvider) Load(_ context.Context, opts config.LoadOptions) (*config.Config, error) {
	f.opts = append(f.opts, opts)
	if f.err != nil {
		return nil, f.err
	}
	cfg := *f.cfg
	return &cfg, nil
}

func (f *fakeProvider) Path(config.LoadOptions) (string, error) {
	return f.path, nil
}

func (f *fakeExecutor) Replace(path string, argv, _ []string) error {
	f.path, f.argv = path, argv
	return errors.New("fake exec returned")
}

func (f *fakeExecutor) Spawn(path string, argv, _ []string) (dispatch.ExitCode, error) {
	f.path, f.argv = path, argv
	return 3, nil
}

func p(s string) string { return filepath.FromSlash(s) }

func newCLIHarness(t *testing.T) *cliHarness {
	t.Helper()
	if platform.IsWindows() {
		t.Skip("skipping: fixtures use POSIX executable bits")
	}
	return &cliHarness{
		tree:     testutil.NewTree(t, "/root"),
		provider: &fakeProvider{cfg: config.DefaultConfig()},
		exec:     &fakeExecutor{},
		env:      map[string]string{},
		workDir:  "/proj",
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
	}
}

func (h *cliHarness) app(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(Dependencies{
		Config:   h.provider,
		Fs:       h.tree.Fs,
		Executor: h.exec,
		SearchContext: func(*config.Config, string) (*resolver.SearchContext, error) {
			if h.ctxErr != nil {
				return nil, h.ctxErr
			}
			environ := make([]string, 0, len(h.env))
			for k, v := range h.env {
				environ = append(environ, k+"="+v)
			}
			return resolver.NewSearchContext(p(h.workDir), environ, h.tree.Root, nil, ""), nil
		},
		Getenv: func(key string) string { return h.env[key] },
		Stdout: h.stdout,
		Stderr: h.stderr,
	})
	if err != nil {
		t.Fatalf("NewApp() failed: %v", err)
	}
	return app
}

// run executes the management CLI with args.
func (h *cliHarness) run(t *testing.T, args ...string) error {
	t.Helper()
	root := NewRootCommand(h.app(t))
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

// pinned installs 3.9 with python and pip, pins it in /proj and returns the bin dir.
func (h *cliHarness) pinned() string {
	bin := h.tree.Install("3.9", "python", "pip")
	h.tree.VersionFile("/proj", "3.9\n")
	return bin
}
