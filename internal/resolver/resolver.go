// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/invowk/pyshim/internal/config"
	"github.com/invowk/pyshim/pkg/platform"

	"github.com/spf13/afero"
)

const (
	// VersionsDir is the directory under the root holding one subdirectory per version.
	VersionsDir = "versions"
	// ShimsDir is the directory under the root where pyenv keeps its shims.
	ShimsDir = "shims"

	// JustificationSystem is the justification of a PATH fallback match.
	JustificationSystem = "system fallback"

	aliasPrefix = "python-"
)

type (
	// Resolver maps a program name and SearchContext to an executable.
	Resolver struct {
		cfg *config.Config
		fs  afero.Fs
	}

	// Option configures a Resolver.
	Option func(*Resolver)
)

// New creates a Resolver for cfg. The OS filesystem is used unless WithFs is given.
func New(cfg *config.Config, opts ...Option) *Resolver {
	r := &Resolver{cfg: cfg, fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithFs sets the filesystem all lookups go through.
func WithFs(fs afero.Fs) Option {
	return func(r *Resolver) {
		r.fs = fs
	}
}

// Fs returns the filesystem the resolver reads from.
func (r *Resolver) Fs() afero.Fs { return r.fs }

// Config returns the resolver's configuration.
func (r *Resolver) Config() *config.Config { return r.cfg }

// Resolve finds the executable for program. Diagnostics are returned even
// when resolution fails.
func (r *Resolver) Resolve(sc *SearchContext, program string) (*Result, []Diagnostic, error) {
	var diags diagnostics
	res, err := r.resolve(sc, program, &diags)
	return res, diags, err
}

func (r *Resolver) resolve(sc *SearchContext, program string, diags *diagnostics) (*Result, error) {
	// 1. The override never falls through to version files.
	if sel, ok := r.overrideSelection(sc, diags); ok {
		if sel.Origin == OriginExplicitPath {
			return r.resolveExplicit(sc, program, sel)
		}
		res, installed := r.match(sc, program, sel, diags)
		if res != nil {
			return res, nil
		}
		return nil, r.unsatisfiedError(sc, program, sel, installed)
	}

	// 2 and 3. Local then global version files.
	var (
		unsatisfied  *Selection
		anyInstalled bool
	)
	for _, next := range []func(*SearchContext, *diagnostics) (Selection, bool){
		r.localSelection,
		r.globalSelection,
	} {
		sel, ok := next(sc, diags)
		if !ok {
			continue
		}
		res, installed := r.match(sc, program, sel, diags)
		if res != nil {
			return res, nil
		}
		if r.cfg.Unsatisfied == config.UnsatisfiedStrict {
			return nil, r.unsatisfiedError(sc, program, sel, installed)
		}
		if unsatisfied == nil {
			unsatisfied, anyInstalled = &sel, installed
		}
		diags.add(SeverityWarning, CodeVersionFileUnsatisfied, sel.Source,
			fmt.Sprintf("none of %s is installed; trying the next source", sel.Name()), nil)
	}

	// 5. System fallback.
	if path, ok := r.findSystem(sc, program); ok {
		return &Result{
			Path:          path,
			Dir:           filepath.Dir(path),
			Version:       SystemVersion,
			Origin:        OriginSystem,
			Justification: JustificationSystem,
		}, nil
	}

	if unsatisfied != nil {
		return nil, r.unsatisfiedError(sc, program, *unsatisfied, anyInstalled)
	}
	return nil, &NotFoundError{Program: program, Searched: []string{r.describePath(sc)}}
}

// Select returns the first version source (override, local, global) without
// checking installation. With no source it returns the implicit "system" selection.
func (r *Resolver) Select(sc *SearchContext) (Selection, []Diagnostic) {
	var diags diagnostics
	for _, next := range []func(*SearchContext, *diagnostics) (Selection, bool){
		r.overrideSelection,
		r.localSelection,
		r.globalSelection,
	} {
		if sel, ok := next(sc, &diags); ok {
			return sel, diags
		}
	}
	return Selection{Versions: []string{SystemVersion}, Origin: OriginNone}, diags
}

// LocalVersionFile returns the version file the upward walk from dir would
// use, or "" when there is none.
func (r *Resolver) LocalVersionFile(dir string) (string, []Diagnostic) {
	var diags diagnostics
	sel, ok := r.walk(dir, &diags)
	if !ok {
		return "", diags
	}
	return sel.Source, diags
}

// InstalledVersions lists the directory names under <root>/versions, sorted.
func (r *Resolver) InstalledVersions(sc *SearchContext) ([]string, error) {
	dir := filepath.Join(sc.Root, VersionsDir)
	entries, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list installed versions in %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || (e.Mode()&os.ModeSymlink != 0 && r.isDir(filepath.Join(dir, e.Name()))) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Prefix returns the install root of version. For "system" it is the
// directory above the system executable's bin directory.
func (r *Resolver) Prefix(sc *SearchContext, program, version string) (string, error) {
	if version == SystemVersion {
		path, ok := r.findSystem(sc, program)
		if !ok {
			return "", &NotFoundError{Program: program, Searched: []string{r.describePath(sc)}}
		}
		return filepath.Dir(filepath.Dir(path)), nil
	}

	if !validIdentifier(version) {
		return "", &NoInstalledVersionsError{Program: program, Selection: Selection{Versions: []string{version}}, Root: sc.Root}
	}
	dir := filepath.Join(sc.Root, VersionsDir, version)
	if !r.isDir(dir) {
		return "", &NoInstalledVersionsError{Program: program, Selection: Selection{Versions: []string{version}}, Root: sc.Root}
	}
	return dir, nil
}

// overrideSelection reads the override variable. A value that looks like a
// path yields an OriginExplicitPath selection holding that path.
func (r *Resolver) overrideSelection(sc *SearchContext, diags *diagnostics) (Selection, bool) {
	if r.cfg.VersionEnv == "" {
		return Selection{}, false
	}
	raw, ok := sc.Lookupenv(r.cfg.VersionEnv)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return Selection{}, false
	}

	if looksLikePath(sc.GOOS(), raw) {
		return Selection{Versions: []string{raw}, Origin: OriginExplicitPath, Source: r.cfg.VersionEnv}, true
	}

	ids := r.filterIdentifiers(splitOverride(raw), r.cfg.VersionEnv, diags)
	return Selection{Versions: ids, Origin: OriginEnv, Source: r.cfg.VersionEnv}, true
}

func (r *Resolver) localSelection(sc *SearchContext, diags *diagnostics) (Selection, bool) {
	if sc.WorkDir == "" {
		return Selection{}, false
	}
	return r.walk(sc.WorkDir, diags)
}

// walk checks dir and then each parent for the version file, stopping at the
// filesystem root or after a directory holding a stop marker.
func (r *Resolver) walk(dir string, diags *diagnostics) (Selection, bool) {
	if r.cfg.VersionFile == "" {
		return Selection{}, false
	}
	dir = filepath.Clean(dir)
	for {
		if sel, ok := r.loadSelection(filepath.Join(dir, r.cfg.VersionFile), OriginLocal, diags); ok {
			return sel, true
		}
		if r.hasStopMarker(dir) {
			return Selection{}, false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Selection{}, false
		}
		dir = parent
	}
}

func (r *Resolver) hasStopMarker(dir string) bool {
	for _, marker := range r.cfg.StopMarkers {
		if _, err := r.fs.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

func (r *Resolver) globalSelection(sc *SearchContext, diags *diagnostics) (Selection, bool) {
	if sc.Root == "" {
		return Selection{}, false
	}
	for _, name := range r.cfg.GlobalFiles {
		if sel, ok := r.loadSelection(filepath.Join(sc.Root, name), OriginGlobal, diags); ok {
			return sel, true
		}
	}
	return Selection{}, false
}

// match returns the first identifier of sel with an executable for program.
// installed reports whether any identifier had a version directory at all.
func (r *Resolver) match(sc *SearchContext, program string, sel Selection, diags *diagnostics) (res *Result, installed bool) {
	for _, id := range sel.Versions {
		if id == SystemVersion {
			if path, ok := r.findSystem(sc, program); ok {
				return r.result(path, id, sel), true
			}
			diags.add(SeverityDebug, CodeVersionNotInstalled, sel.Source, "no system "+program+" on PATH", nil)
			continue
		}

		path, dirExists := r.findInVersion(sc, id, program)
		if path == "" && !dirExists && strings.HasPrefix(id, aliasPrefix) {
			alias := strings.TrimPrefix(id, aliasPrefix)
			diags.add(SeverityDebug, CodeAliasRetried, sel.Source, fmt.Sprintf("version %s not installed; trying %s", id, alias), nil)
			path, dirExists = r.findInVersion(sc, alias, program)
			if path != "" {
				id = alias
			}
		}
		installed = installed || dirExists
		if path != "" {
			return r.result(path, id, sel), true
		}

		msg := fmt.Sprintf("version %s is not installed", id)
		if dirExists {
			msg = fmt.Sprintf("version %s has no %s executable", id, program)
		}
		diags.add(SeverityDebug, CodeVersionNotInstalled, sel.Source, msg, nil)
	}
	return nil, installed
}

func (r *Resolver) result(path, version string, sel Selection) *Result {
	return &Result{
		Path:          path,
		Dir:           filepath.Dir(path),
		Version:       version,
		Origin:        sel.Origin,
		Source:        sel.Source,
		Justification: fmt.Sprintf("version %s %s", version, sel.Describe()),
	}
}

// findInVersion returns the executable for program inside version id, and
// whether the version directory exists.
func (r *Resolver) findInVersion(sc *SearchContext, id, program string) (string, bool) {
	if sc.Root == "" {
		return "", false
	}
	base := filepath.Join(sc.Root, VersionsDir, id)
	if !r.isDir(base) {
		return "", false
	}
	for _, candidate := range candidatesIn(sc.GOOS(), base, program) {
		if _, ok := r.executable(sc.GOOS(), candidate); ok {
			return candidate, true
		}
	}
	return "", true
}

// candidatesIn lists where program may live inside an install directory:
// bin/ on Unix, the top level and Scripts/ on Windows.
func candidatesIn(goos, base, program string) []string {
	names := platform.ExecutableNamesFor(goos, program)
	if goos != platform.Windows {
		return []string{filepath.Join(base, "bin", program)}
	}
	var out []string
	for _, sub := range []string{"", "Scripts", "bin"} {
		for _, name := range names {
			out = append(out, filepath.Join(base, sub, name))
		}
	}
	return out
}

// resolveExplicit handles an override naming a file or an install directory.
func (r *Resolver) resolveExplicit(sc *SearchContext, program string, sel Selection) (*Result, error) {
	raw := sel.Versions[0]
	p, err := config.ExpandPath(raw, sc.Getenv)
	if err != nil {
		p = filepath.Clean(raw)
	}
	if !filepath.IsAbs(p) && sc.WorkDir != "" {
		p = filepath.Join(sc.WorkDir, p)
	}

	candidates := []string{p}
	if r.isDir(p) {
		candidates = append([]string(nil), platform.ExecutableNamesFor(sc.GOOS(), program)...)
		for i, name := range candidates {
			candidates[i] = filepath.Join(p, name)
		}
		candidates = append(candidates, candidatesIn(sc.GOOS(), p, program)...)
	}

	for _, c := range candidates {
		if _, ok := r.executable(sc.GOOS(), c); ok {
			return &Result{
				Path:          c,
				Dir:           filepath.Dir(c),
				Version:       raw,
				Origin:        OriginExplicitPath,
				Source:        sel.Source,
				Justification: "explicit path " + sel.Describe(),
			}, nil
		}
	}
	return nil, &NotFoundError{Program: program, Searched: []string{fmt.Sprintf("%s=%s", sel.Source, raw)}}
}

func (r *Resolver) unsatisfiedError(sc *SearchContext, program string, sel Selection, installed bool) error {
	if installed {
		return &NotFoundError{
			Program:  program,
			Searched: []string{fmt.Sprintf("version %s %s", sel.Name(), sel.Describe())},
		}
	}
	return &NoInstalledVersionsError{Program: program, Selection: sel, Root: sc.Root}
}

// executable stats path and reports whether it is a regular file the user
// may execute. Windows has no execute bit.
func (r *Resolver) executable(goos, path string) (os.FileInfo, bool) {
	info, err := r.fs.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, false
	}
	if goos == platform.Windows {
		return info, true
	}
	return info, info.Mode().Perm()&0o111 != 0
}

func (r *Resolver) isDir(path string) bool {
	info, err := r.fs.Stat(path)
	return err == nil && info.IsDir()
}

func looksLikePath(goos, raw string) bool {
	if strings.HasPrefix(raw, "~") || strings.ContainsRune(raw, '/') {
		return true
	}
	return goos == platform.Windows && (strings.ContainsRune(raw, '\\') || filepath.VolumeName(raw) != "")
}
