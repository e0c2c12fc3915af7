// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/invowk/pyshim/internal/config"
	"github.com/invowk/pyshim/internal/issue"
	"github.com/invowk/pyshim/internal/resolver"
	"github.com/invowk/pyshim/pkg/platform"
)

// DefaultLabel prefixes every failure line written to stderr.
const DefaultLabel = "pyshim"

type (
	// Dispatcher executes one invocation.
	Dispatcher struct {
		res    *resolver.Resolver
		cfg    *config.Config
		exec   Executor
		stdout io.Writer
		stderr io.Writer
		logger *slog.Logger
		goos   string
	}

	// Option configures a Dispatcher.
	Option func(*Dispatcher)
)

// New creates a Dispatcher that resolves with res.
func New(res *resolver.Resolver, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		res:    res,
		cfg:    res.Config(),
		exec:   NewOSExecutor(),
		stdout: os.Stdout,
		stderr: os.Stderr,
		goos:   runtime.GOOS,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// WithExecutor replaces the process handoff.
func WithExecutor(e Executor) Option {
	return func(d *Dispatcher) { d.exec = e }
}

// WithOutput sets the streams inspection values and failures are written to.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(d *Dispatcher) {
		d.stdout = stdout
		d.stderr = stderr
	}
}

// WithLogger sets the logger diagnostics are written to.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithGOOS overrides the platform used to pick the handoff mode.
func WithGOOS(goos string) Option {
	return func(d *Dispatcher) { d.goos = goos }
}

// Run performs the single terminal action for argv. It returns only when
// control was not transferred: after inspection output, on failure, or when
// a spawned target exits.
func (d *Dispatcher) Run(argv []string, sc *resolver.SearchContext) ExitCode {
	intent := ParseIntent(argv, d.cfg.Program)
	d.logger.Debug("dispatch", "intent", intent.Kind.String(), "argv0", firstOr(argv, ""))

	switch {
	case intent.Kind == KindScriptDispatch:
		return d.runScript(intent, sc)
	case intent.Kind.IsInspection():
		return d.inspect(intent, sc)
	default:
		return d.passthrough(intent, sc)
	}
}

func (d *Dispatcher) passthrough(in Intent, sc *resolver.SearchContext) ExitCode {
	res, err := d.resolve(sc, false)
	if err != nil {
		return d.fail(err, ExitNotFound)
	}
	// argv[0] is the resolved path, not the shim name, so the interpreter
	// derives sys.executable from the real install.
	argv := append([]string{res.Path}, in.Args...)
	return d.handoff(res.Path, argv, sc)
}

func (d *Dispatcher) inspect(in Intent, sc *resolver.SearchContext) ExitCode {
	res, err := d.resolve(sc, in.Kind == KindInspectWhich)
	if err != nil {
		return d.fail(err, ExitNotFound)
	}

	dir := filepath.Dir(res.Path)
	var line string
	switch in.Kind {
	case KindInspectPath:
		line = res.Path
	case KindInspectDir:
		line = dir
	case KindInspectPrefix:
		line = filepath.Dir(dir)
	case KindInspectWhich:
		line = fmt.Sprintf("%s (%s)", res.Path, res.Justification)
	}

	if _, err := fmt.Fprintln(d.stdout, line); err != nil {
		return d.fail(fmt.Errorf("write %s output: %w", in.Kind, err), ExitFailure)
	}
	return ExitSuccess
}

// runScript runs the sibling named by argv[0] that lives beside the resolved
// program. Python scripts run through the interpreter; anything else is
// executed directly.
func (d *Dispatcher) runScript(in Intent, sc *resolver.SearchContext) ExitCode {
	res, err := d.resolve(sc, false)
	if err != nil {
		return d.fail(err, ExitNotFound)
	}

	script, err := d.FindScript(res, in.Script, sc.GOOS())
	if err != nil {
		return d.fail(err, ExitNotFound)
	}

	if d.viaInterpreter(script, sc) {
		argv := append([]string{res.Path, script}, in.Args...)
		d.logger.Debug("running script through interpreter", "interpreter", res.Path, "script", script)
		return d.handoff(res.Path, argv, sc)
	}
	argv := append([]string{script}, in.Args...)
	d.logger.Debug("running sibling directly", "path", script)
	return d.handoff(script, argv, sc)
}

// FindScript returns the executable named script beside the resolved program.
// On Windows the Scripts subdirectory is searched too.
func (d *Dispatcher) FindScript(res *resolver.Result, script, goos string) (string, error) {
	dirs := []string{res.Dir}
	if goos == platform.Windows {
		dirs = append(dirs, filepath.Join(res.Dir, "Scripts"))
	}
	for _, dir := range dirs {
		for _, name := range platform.ExecutableNamesFor(goos, script) {
			candidate := filepath.Join(dir, name)
			if d.isExecutable(goos, candidate) {
				return candidate, nil
			}
		}
	}
	return "", &ScriptNotFoundError{Script: script, Dir: res.Dir}
}

// viaInterpreter decides whether the script is handed to the interpreter.
// Plain text and matching shebangs are; binaries and foreign shebangs are not.
func (d *Dispatcher) viaInterpreter(script string, sc *resolver.SearchContext) bool {
	head, err := d.readHead(script)
	if err != nil {
		// Unreadable but executable: let the kernel decide.
		d.logger.Debug("cannot inspect script", "path", script, "error", err)
		return false
	}
	kind, sb := Classify(head, sc.Getenv)
	switch kind {
	case ScriptBinary:
		return false
	case ScriptShebang:
		return sb.RunsWith(d.cfg.Interpreters())
	default:
		return true
	}
}

func (d *Dispatcher) readHead(path string) ([]byte, error) {
	f, err := d.res.Fs().Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }() // Read-only file; close error non-critical

	buf := make([]byte, sniffSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return buf[:n], nil
}

// handoff re-checks the target and transfers control to it.
func (d *Dispatcher) handoff(path string, argv []string, sc *resolver.SearchContext) ExitCode {
	if !d.isExecutable(sc.GOOS(), path) {
		return d.fail(&TargetVanishedError{Path: path}, ExitCannotExecute)
	}

	if d.spawnMode() {
		d.logger.Debug("spawning target", "path", path)
		code, err := d.exec.Spawn(path, argv, sc.Environ)
		if err != nil {
			return d.fail(handoffError(path, err), ExitCannotExecute)
		}
		return code
	}

	d.logger.Debug("replacing process image", "path", path)
	err := d.exec.Replace(path, argv, sc.Environ)
	// Only reached when the exec failed.
	return d.fail(handoffError(path, err), ExitCannotExecute)
}

func (d *Dispatcher) spawnMode() bool {
	switch d.cfg.ExecMode {
	case config.ExecModeSpawn:
		return true
	case config.ExecModeReplace:
		return false
	default:
		return !platform.CanReplaceImage(d.goos)
	}
}

func handoffError(path string, err error) error {
	if err == nil {
		err = errors.New("exec returned without error")
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return &TargetVanishedError{Path: path, Cause: err}
	}
	return &ExecError{Path: path, Cause: err}
}

// resolve runs the resolver and logs its diagnostics: at their own severity
// for --which, at debug level otherwise.
func (d *Dispatcher) resolve(sc *resolver.SearchContext, which bool) (*resolver.Result, error) {
	res, diags, err := d.res.Resolve(sc, d.cfg.Program)
	for _, diag := range diags {
		level := slog.LevelDebug
		if which && diag.Severity == resolver.SeverityWarning {
			level = slog.LevelWarn
		}
		d.logger.Log(context.Background(), level, diag.String(), "code", diag.Code)
	}
	if err != nil {
		return nil, err
	}
	d.logger.Debug("resolved", "path", res.Path, "justification", res.Justification)
	return res, nil
}

// fail writes one diagnostic line to stderr and returns code. Nothing is
// written to stdout.
func (d *Dispatcher) fail(err error, code ExitCode) ExitCode {
	_, _ = fmt.Fprintln(d.stderr, issue.SingleLine(DefaultLabel, Explain(d.cfg, err))) // Best effort; nowhere left to report
	return code
}

func (d *Dispatcher) isExecutable(goos, path string) bool {
	info, err := d.res.Fs().Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return goos == platform.Windows || info.Mode().Perm()&0o111 != 0
}

func firstOr(s []string, def string) string {
	if len(s) == 0 {
		return def
	}
	return s[0]
}
