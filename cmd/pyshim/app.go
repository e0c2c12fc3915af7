// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"github.com/invowk/pyshim/internal/config"
	"github.com/invowk/pyshim/internal/dispatch"
	"github.com/invowk/pyshim/internal/resolver"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root
	// for both the shim hot path and the management commands.
	App struct {
		Config        ConfigProvider
		Fs            afero.Fs
		Executor      dispatch.Executor
		SearchContext SearchContextFunc
		Getenv        func(string) string
		stdout        io.Writer
		stderr        io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config        ConfigProvider
		Fs            afero.Fs
		Executor      dispatch.Executor
		SearchContext SearchContextFunc
		Getenv        func(string) string
		Stdout        io.Writer
		Stderr        io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
		Path(opts config.LoadOptions) (string, error)
	}

	// SearchContextFunc snapshots the inputs of one resolution.
	SearchContextFunc func(cfg *config.Config, argv0 string) (*resolver.SearchContext, error)

	// session is what a management command works with after startup.
	session struct {
		cfg    *config.Config
		sc     *resolver.SearchContext
		res    *resolver.Resolver
		logger *slog.Logger
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Executor == nil {
		deps.Executor = dispatch.NewOSExecutor()
	}
	if deps.SearchContext == nil {
		deps.SearchContext = resolver.ContextFromOS
	}
	if deps.Getenv == nil {
		deps.Getenv = os.Getenv
	}

	return &App{
		Config:        deps.Config,
		Fs:            deps.Fs,
		Executor:      deps.Executor,
		SearchContext: deps.SearchContext,
		Getenv:        deps.Getenv,
		stdout:        deps.Stdout,
		stderr:        deps.Stderr,
	}, nil
}

// loadOptions returns the config options for an explicit path, falling back
// to $PYSHIM_CONFIG.
func (a *App) loadOptions(explicit string) config.LoadOptions {
	if explicit == "" {
		explicit = a.Getenv(config.ConfigFileEnv)
	}
	return config.LoadOptions{ConfigFilePath: explicit}
}

func (a *App) resolver(cfg *config.Config) *resolver.Resolver {
	return resolver.New(cfg, resolver.WithFs(a.Fs))
}

func (a *App) dispatcher(cfg *config.Config, logger *slog.Logger) *dispatch.Dispatcher {
	return dispatch.New(a.resolver(cfg),
		dispatch.WithExecutor(a.Executor),
		dispatch.WithOutput(a.stdout, a.stderr),
		dispatch.WithLogger(logger),
	)
}

// newSession loads configuration and snapshots the search inputs for a
// management command. verbose lowers the log level to debug.
func (a *App) newSession(ctx context.Context, flags *rootFlags) (*session, error) {
	cfg, err := a.Config.Load(ctx, a.loadOptions(flags.configPath))
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if flags.verbose {
		level = config.LogLevelDebug
	}
	logger := newLogger(a.stderr, level)

	sc, err := a.SearchContext(cfg, "")
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:    cfg,
		sc:     sc,
		res:    a.resolver(cfg),
		logger: logger,
	}, nil
}

// resolve resolves program and logs the walk's diagnostics. Failures come
// back as actionable errors.
func (s *session) resolve(program string) (*resolver.Result, error) {
	res, diags, err := s.res.Resolve(s.sc, program)
	s.logDiagnostics(diags)
	if err != nil {
		return nil, dispatch.Explain(s.cfg, err)
	}
	s.logger.Debug("resolved", "path", res.Path, "justification", res.Justification)
	return res, nil
}

// program returns the program named by args, or the configured one.
func (s *session) program(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return s.cfg.Program
}

// logDiagnostics writes resolver diagnostics; warnings stay warnings and
// everything else is debug output.
func (s *session) logDiagnostics(diags []resolver.Diagnostic) {
	for _, diag := range diags {
		level := slog.LevelDebug
		if diag.Severity == resolver.SeverityWarning {
			level = slog.LevelWarn
		}
		s.logger.Log(context.Background(), level, diag.String(), "code", diag.Code)
	}
}
