// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"errors"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/invowk/pyshim/internal/config"
	"github.com/invowk/pyshim/internal/testutil"
)

// p converts a slash path to the host form.
func p(s string) string { return filepath.FromSlash(s) }

func newResolver(tree *testutil.Tree, mutate ...func(*config.Config)) *Resolver {
	cfg := config.DefaultConfig()
	for _, m := range mutate {
		m(cfg)
	}
	return New(cfg, WithFs(tree.Fs))
}

func searchIn(tree *testutil.Tree, workDir string, env ...string) *SearchContext {
	return NewSearchContext(p(workDir), env, tree.Root, nil, "")
}

func hasDiagnostic(diags []Diagnostic, code string) bool {
	return slices.ContainsFunc(diags, func(d Diagnostic) bool { return d.Code == code })
}

func TestResolve_UpwardSearchAnyDepth(t *testing.T) {
	t.Parallel()

	for depth := range 6 {
		t.Run(strings.Repeat("d", depth+1), func(t *testing.T) {
			t.Parallel()

			tree := testutil.NewTree(t, "/root")
			bin := tree.Install("3.9", "python")
			tree.Install("3.10", "python")
			tree.GlobalVersion("3.10\n")

			dir := "/proj"
			for i := range depth {
				dir += "/" + string(rune('a'+i))
			}
			tree.Dir(dir)
			tree.VersionFile(dir, "3.9\n")

			res, _, err := newResolver(tree).Resolve(searchIn(tree, dir), "python")
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if want := filepath.Join(bin, "python"); res.Path != want {
				t.Errorf("Path = %q, want %q", res.Path, want)
			}
			if res.Origin != OriginLocal || res.Source != filepath.Join(p(dir), ".python-version") {
				t.Errorf("origin/source = %v/%q", res.Origin, res.Source)
			}
		})
	}
}

func TestResolve_NearestFileWins(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	tree.Install("3.9", "python")
	near := tree.Install("3.12", "python")
	tree.VersionFile("/proj", "3.9\n")
	tree.VersionFile("/proj/sub", "3.12\n")
	tree.Dir("/proj/sub/deeper")

	res, _, err := newResolver(tree).Resolve(searchIn(tree, "/proj/sub/deeper"), "python")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Dir != near {
		t.Errorf("Dir = %q, want %q", res.Dir, near)
	}
}

// Version file lists 3.11 then 3.9; only 3.9 is installed.
func TestResolve_ScenarioFirstInstalledIdentifier(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	tree.Install("3.9", "python")
	tree.File("/proj/.version", "3.11\n3.9\n")
	tree.Dir("/proj/sub")

	r := newResolver(tree, func(c *config.Config) { c.VersionFile = ".version" })
	res, diags, err := r.Resolve(searchIn(tree, "/proj/sub"), "python")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if want := p("/root/versions/3.9/bin/python"); res.Path != want {
		t.Errorf("Path = %q, want %q", res.Path, want)
	}
	if want := "version 3.9 set by " + p("/proj/.version"); res.Justification != want {
		t.Errorf("Justification = %q, want %q", res.Justification, want)
	}
	if !hasDiagnostic(diags, CodeVersionNotInstalled) {
		t.Errorf("expected a %s diagnostic for 3.11, got %v", CodeVersionNotInstalled, diags)
	}
}

func TestResolve_TieBreakFirstListedWins(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	first := tree.Install("3.9", "python")
	tree.Install("3.10", "python")
	tree.VersionFile("/proj", "3.9 3.10\n")

	res, _, err := newResolver(tree).Resolve(searchIn(tree, "/proj"), "python")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Dir != first || res.Version != "3.9" {
		t.Errorf("Dir/Version = %q/%q, want %q/3.9", res.Dir, res.Version, first)
	}
}

func TestResolve_ScenarioSystemFallback(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	tree.Executable("/usr/bin/python", "")
	tree.Dir("/home/user")

	sc := searchIn(tree, "/home/user", "PATH=/usr/local/bin:/usr/bin")
	if runtime.GOOS == "windows" {
		sc.Path = []string{p("/usr/local/bin"), p("/usr/bin")}
	}
	res, _, err := newResolver(tree).Resolve(sc, "python")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if want := p("/usr/bin/python"); res.Path != want {
		t.Errorf("Path = %q, want %q", res.Path, want)
	}
	if res.Justification != "system fallback" {
		t.Errorf("Justification = %q, want %q", res.Justification, "system fallback")
	}
	if res.Origin != OriginSystem || res.Version != SystemVersion {
		t.Errorf("Origin/Version = %v/%q", res.Origin, res.Version)
	}
}

func TestResolve_SystemFallbackSkipsShims(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	tree.Executable("/root/shims/python", "")
	tree.Executable("/opt/shim/python", "")
	tree.Executable("/usr/local/bin/python", "")
	want := tree.Executable("/usr/bin/python", "")

	sc := NewSearchContext(p("/work"), nil, tree.Root, []string{p("/opt/shim")}, p("/usr/local/bin/python"))
	sc.Path = []string{p("/root/shims"), p("/opt/shim"), p("/usr/local/bin"), p("/usr/bin")}

	res, _, err := newResolver(tree).Resolve(sc, "python")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Path != want {
		t.Errorf("Path = %q, want %q (shims and self must be skipped)", res.Path, want)
	}
}

func TestResolve_SystemFallbackSkipsNonExecutable(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("no execute bit on Windows")
	}

	tree := testutil.NewTree(t, "/root")
	tree.File("/a/python", "not executable")
	tree.Dir("/b/python")
	want := tree.Executable("/c/python", "")

	sc := searchIn(tree, "/work", "PATH=/a:/b:/c")
	res, _, err := newResolver(tree).Resolve(sc, "python")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Path != want {
		t.Errorf("Path = %q, want %q", res.Path, want)
	}
}

func TestResolve_OverridePrecedence(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	tree.Install("3.9", "python")
	override := tree.Install("3.8", "python")
	tree.VersionFile("/proj", "3.9\n")
	tree.GlobalVersion("3.9\n")
	tree.Executable("/usr/bin/python", "")

	res, _, err := newResolver(tree).Resolve(searchIn(tree, "/proj", "PYENV_VERSION=3.8", "PATH=/usr/bin"), "python")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Dir != override {
		t.Errorf("Dir = %q, want %q", res.Dir, override)
	}
	if want := "version 3.8 set by PYENV_VERSION environment variable"; res.Justification != want {
		t.Errorf("Justification = %q, want %q", res.Justification, want)
	}
}

func TestResolve_OverrideList(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	want := tree.Install("3.9", "python")

	res, _, err := newResolver(tree).Resolve(searchIn(tree, "/", "PYENV_VERSION=3.11:3.9"), "python")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Dir != want {
		t.Errorf("Dir = %q, want %q", res.Dir, want)
	}
}

func TestResolve_OverrideNeverFallsThrough(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	tree.Install("3.9", "python")
	tree.VersionFile("/proj", "3.9\n")
	tree.Executable("/usr/bin/python", "")

	_, _, err := newResolver(tree).Resolve(searchIn(tree, "/proj", "PYENV_VERSION=2.7", "PATH=/usr/bin"), "python")
	if !errors.Is(err, ErrNoInstalledVersions) {
		t.Fatalf("error = %v, want ErrNoInstalledVersions", err)
	}
	var nie *NoInstalledVersionsError
	if !errors.As(err, &nie) || nie.Selection.Origin != OriginEnv {
		t.Errorf("error = %#v, want env-origin NoInstalledVersionsError", err)
	}
}

func TestResolve_ScenarioOverrideNonexistentPath(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	tree.Install("3.9", "python")
	tree.GlobalVersion("3.9\n")

	res, _, err := newResolver(tree).Resolve(searchIn(tree, "/", "PYENV_VERSION=/nonexistent/python"), "python")
	if res != nil {
		t.Errorf("Resolve() result = %+v, want nil", res)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if !strings.Contains(err.Error(), "PYENV_VERSION=/nonexistent/python") {
		t.Errorf("error %q does not name what was searched", err)
	}
}

func TestResolve_OverrideExplicitPath(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	file := tree.Executable("/opt/py/bin/python3", "")
	tree.Executable("/opt/py/bin/python", "")

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"file", "/opt/py/bin/python3", file},
		{"bin directory", "/opt/py/bin", p("/opt/py/bin/python")},
		{"install directory", "/opt/py", p("/opt/py/bin/python")},
		{"relative to workdir", "../opt/py/bin/python3", file},
		{"tilde", "~/py/bin/python3", file},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if runtime.GOOS == "windows" && tt.name == "tilde" {
				t.Skip("tilde expansion uses POSIX paths")
			}

			sc := searchIn(tree, "/work", "PYENV_VERSION="+tt.value, "HOME=/opt")
			res, _, err := newResolver(tree).Resolve(sc, "python")
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if res.Path != tt.want {
				t.Errorf("Path = %q, want %q", res.Path, tt.want)
			}
			if res.Origin != OriginExplicitPath {
				t.Errorf("Origin = %v, want explicit path", res.Origin)
			}
			if want := "explicit path set by PYENV_VERSION environment variable"; res.Justification != want {
				t.Errorf("Justification = %q, want %q", res.Justification, want)
			}
		})
	}
}

func TestResolve_UnreadableVersionFileIsSkipped(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	want := tree.Install("3.9", "python")
	tree.Install("3.12", "python")
	tree.VersionFile("/proj", "3.9\n")
	bad := tree.VersionFile("/proj/sub", "3.12\x00\x01garbage")

	res, diags, err := newResolver(tree).Resolve(searchIn(tree, "/proj/sub"), "python")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Dir != want {
		t.Errorf("Dir = %q, want %q", res.Dir, want)
	}

	idx := slices.IndexFunc(diags, func(d Diagnostic) bool { return d.Code == CodeVersionFileUnreadable })
	if idx < 0 {
		t.Fatalf("no %s diagnostic in %v", CodeVersionFileUnreadable, diags)
	}
	d := diags[idx]
	if d.Path != bad || d.Severity != SeverityWarning {
		t.Errorf("diagnostic = %+v", d)
	}
	if !errors.Is(d.Cause, ErrUnreadableVersionFile) {
		t.Errorf("Cause = %v, want ErrUnreadableVersionFile", d.Cause)
	}
}

func TestResolve_EmptyVersionFileIsSkipped(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	want := tree.Install("3.9", "python")
	tree.VersionFile("/proj", "3.9\n")
	tree.VersionFile("/proj/sub", "# nothing pinned\n\n")

	res, diags, err := newResolver(tree).Resolve(searchIn(tree, "/proj/sub"), "python")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Dir != want {
		t.Errorf("Dir = %q, want %q", res.Dir, want)
	}
	if !hasDiagnostic(diags, CodeVersionFileEmpty) {
		t.Errorf("expected %s diagnostic, got %v", CodeVersionFileEmpty, diags)
	}
}

func TestResolve_StopMarkerEndsWalk(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	tree.Install("3.9", "python")
	global := tree.Install("3.10", "python")
	tree.VersionFile("/", "3.9\n")
	tree.Dir("/proj/.git")
	tree.Dir("/proj/src")
	tree.GlobalVersion("3.10\n")

	r := newResolver(tree, func(c *config.Config) { c.StopMarkers = []string{".git"} })
	res, _, err := r.Resolve(searchIn(tree, "/proj/src"), "python")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Dir != global || res.Origin != OriginGlobal {
		t.Errorf("Dir/Origin = %q/%v, want global %q", res.Dir, res.Origin, global)
	}

	// The marker directory itself is still searched.
	tree.VersionFile("/proj", "3.9\n")
	res, _, err = r.Resolve(searchIn(tree, "/proj/src"), "python")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Version != "3.9" {
		t.Errorf("Version = %q, want 3.9 from /proj", res.Version)
	}
}

func TestResolve_GlobalFiles(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	tree.Install("3.9", "python")
	tree.Install("3.10", "python")
	tree.File("/root/global", "3.10\n")
	tree.File("/root/default", "3.9\n")

	res, _, err := newResolver(tree).Resolve(searchIn(tree, "/work"), "python")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Version != "3.10" || res.Source != p("/root/global") {
		t.Errorf("Version/Source = %q/%q, want 3.10 from /root/global", res.Version, res.Source)
	}

	tree.GlobalVersion("3.9\n")
	res, _, err = newResolver(tree).Resolve(searchIn(tree, "/work"), "python")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Version != "3.9" || res.Source != p("/root/version") {
		t.Errorf("Version/Source = %q/%q, want 3.9 from /root/version", res.Version, res.Source)
	}
}

// Local file fully unsatisfied while the global file would match.
func TestResolve_UnsatisfiedPolicy(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) *testutil.Tree {
		t.Helper()
		tree := testutil.NewTree(t, "/root")
		tree.Install("3.9", "python")
		tree.VersionFile("/proj", "3.11\n")
		tree.GlobalVersion("3.9\n")
		return tree
	}

	t.Run("fallthrough", func(t *testing.T) {
		t.Parallel()
		tree := setup(t)
		res, diags, err := newResolver(tree).Resolve(searchIn(tree, "/proj"), "python")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if res.Version != "3.9" || res.Origin != OriginGlobal {
			t.Errorf("Version/Origin = %q/%v, want 3.9 global", res.Version, res.Origin)
		}
		if !hasDiagnostic(diags, CodeVersionFileUnsatisfied) {
			t.Errorf("expected %s diagnostic, got %v", CodeVersionFileUnsatisfied, diags)
		}
	})

	t.Run("strict", func(t *testing.T) {
		t.Parallel()
		tree := setup(t)
		r := newResolver(tree, func(c *config.Config) { c.Unsatisfied = config.UnsatisfiedStrict })
		_, _, err := r.Resolve(searchIn(tree, "/proj"), "python")
		var nie *NoInstalledVersionsError
		if !errors.As(err, &nie) {
			t.Fatalf("error = %v, want NoInstalledVersionsError", err)
		}
		if nie.Selection.Source != p("/proj/.python-version") {
			t.Errorf("Source = %q, want the local file", nie.Selection.Source)
		}
		if !strings.Contains(err.Error(), "3.11") {
			t.Errorf("error %q does not name the version", err)
		}
	})
}

func TestResolve_FallthroughToSystem(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	tree.VersionFile("/proj", "3.11\n")
	sys := tree.Executable("/usr/bin/python", "")

	sc := searchIn(tree, "/proj")
	sc.Path = []string{p("/usr/bin")}
	res, _, err := newResolver(tree).Resolve(sc, "python")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Path != sys || res.Justification != JustificationSystem {
		t.Errorf("Path/Justification = %q/%q", res.Path, res.Justification)
	}
}

func TestResolve_NoInstalledVersionsNamesFirstSource(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	tree.VersionFile("/proj", "3.11\n")
	tree.GlobalVersion("3.12\n")

	_, _, err := newResolver(tree).Resolve(searchIn(tree, "/proj"), "python")
	var nie *NoInstalledVersionsError
	if !errors.As(err, &nie) {
		t.Fatalf("error = %v, want NoInstalledVersionsError", err)
	}
	if nie.Selection.Origin != OriginLocal || nie.Selection.Versions[0] != "3.11" {
		t.Errorf("Selection = %+v, want the local 3.11 file", nie.Selection)
	}
}

func TestResolve_NotFoundWithoutSources(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	sc := searchIn(tree, "/work")
	sc.Path = []string{p("/usr/bin")}

	_, _, err := newResolver(tree).Resolve(sc, "python")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if !strings.Contains(err.Error(), "PATH=") {
		t.Errorf("error %q does not mention PATH", err)
	}
}

func TestResolve_InstalledVersionWithoutProgram(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	tree.Install("3.9", "python")
	tree.VersionFile("/proj", "3.9\n")

	_, _, err := newResolver(tree).Resolve(searchIn(tree, "/proj"), "pip")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound (3.9 is installed, pip is not)", err)
	}
}

func TestResolve_SystemIdentifier(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	tree.Install("3.9", "python")
	sys := tree.Executable("/usr/bin/python", "")
	tree.VersionFile("/proj", "system\n3.9\n")

	sc := searchIn(tree, "/proj")
	sc.Path = []string{p("/usr/bin")}
	res, _, err := newResolver(tree).Resolve(sc, "python")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Path != sys {
		t.Errorf("Path = %q, want %q", res.Path, sys)
	}
	if want := "version system set by " + p("/proj/.python-version"); res.Justification != want {
		t.Errorf("Justification = %q, want %q", res.Justification, want)
	}
}

func TestResolve_AliasPrefixRetried(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	want := tree.Install("3.9", "python")
	tree.VersionFile("/proj", "python-3.9\n")

	res, diags, err := newResolver(tree).Resolve(searchIn(tree, "/proj"), "python")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Dir != want || res.Version != "3.9" {
		t.Errorf("Dir/Version = %q/%q", res.Dir, res.Version)
	}
	if !hasDiagnostic(diags, CodeAliasRetried) {
		t.Errorf("expected %s diagnostic", CodeAliasRetried)
	}
}

func TestResolve_InvalidIdentifiersIgnored(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	tree.Executable("/root/bin/python", "")
	want := tree.Install("3.9", "python")
	tree.VersionFile("/proj", "../../bin\n..\n3.9\n")

	res, diags, err := newResolver(tree).Resolve(searchIn(tree, "/proj"), "python")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Dir != want {
		t.Errorf("Dir = %q, want %q", res.Dir, want)
	}
	if !hasDiagnostic(diags, CodeInvalidIdentifier) {
		t.Errorf("expected %s diagnostic", CodeInvalidIdentifier)
	}
}

func TestResolve_WindowsLayout(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	exe := tree.Executable("/root/versions/3.9/python.exe", "MZ")
	script := tree.Executable("/root/versions/3.9/Scripts/pip.exe", "MZ")
	tree.VersionFile("/proj", "3.9\n")

	sc := newSearchContext("windows", p("/proj"), []string{"Path=/nowhere"}, tree.Root, nil, "")
	r := newResolver(tree)

	res, _, err := r.Resolve(sc, "python")
	if err != nil {
		t.Fatalf("Resolve(python) error = %v", err)
	}
	if res.Path != exe {
		t.Errorf("Path = %q, want %q", res.Path, exe)
	}

	res, _, err = r.Resolve(sc, "pip")
	if err != nil {
		t.Fatalf("Resolve(pip) error = %v", err)
	}
	if res.Path != script {
		t.Errorf("Path = %q, want %q", res.Path, script)
	}
}

func TestSelect(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	tree.VersionFile("/proj", "3.11 3.9\n")
	tree.GlobalVersion("3.10\n")
	r := newResolver(tree)

	tests := []struct {
		name     string
		workDir  string
		env      []string
		wantName string
		origin   Origin
	}{
		{"env", "/proj", []string{"PYENV_VERSION=3.8"}, "3.8", OriginEnv},
		{"local", "/proj", nil, "3.11:3.9", OriginLocal},
		{"global", "/other", nil, "3.10", OriginGlobal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sel, _ := r.Select(searchIn(tree, tt.workDir, tt.env...))
			if sel.Name() != tt.wantName || sel.Origin != tt.origin {
				t.Errorf("Select() = %q/%v, want %q/%v", sel.Name(), sel.Origin, tt.wantName, tt.origin)
			}
		})
	}

	t.Run("none", func(t *testing.T) {
		t.Parallel()
		empty := testutil.NewTree(t, "/root")
		sel, _ := newResolver(empty).Select(searchIn(empty, "/"))
		if sel.Name() != SystemVersion || sel.Origin != OriginNone {
			t.Errorf("Select() = %q/%v, want system/none", sel.Name(), sel.Origin)
		}
	})
}

func TestLocalVersionFile(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	want := tree.VersionFile("/proj", "3.9\n")
	tree.Dir("/proj/a/b")
	tree.Dir("/elsewhere")
	r := newResolver(tree)

	if got, _ := r.LocalVersionFile(p("/proj/a/b")); got != want {
		t.Errorf("LocalVersionFile() = %q, want %q", got, want)
	}
	if got, _ := r.LocalVersionFile(p("/elsewhere")); got != "" {
		t.Errorf("LocalVersionFile() = %q, want empty", got)
	}
}

func TestInstalledVersions(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	tree.Install("3.9", "python")
	tree.Install("3.10", "python")
	tree.Install("pypy3.10", "python")
	tree.File("/root/versions/README", "not a version")

	got, err := newResolver(tree).InstalledVersions(searchIn(tree, "/"))
	if err != nil {
		t.Fatalf("InstalledVersions() error = %v", err)
	}
	if want := []string{"3.10", "3.9", "pypy3.10"}; !slices.Equal(got, want) {
		t.Errorf("InstalledVersions() = %v, want %v", got, want)
	}

	missing := testutil.NewTree(t, "/r2")
	sc := NewSearchContext("/", nil, p("/nowhere"), nil, "")
	if got, err := newResolver(missing).InstalledVersions(sc); err != nil || got != nil {
		t.Errorf("InstalledVersions() without versions dir = %v, %v", got, err)
	}
}

func TestPrefix(t *testing.T) {
	t.Parallel()

	tree := testutil.NewTree(t, "/root")
	tree.Install("3.9", "python")
	tree.Executable("/usr/local/bin/python", "")
	r := newResolver(tree)
	sc := searchIn(tree, "/")
	sc.Path = []string{p("/usr/local/bin")}

	got, err := r.Prefix(sc, "python", "3.9")
	if err != nil || got != p("/root/versions/3.9") {
		t.Errorf("Prefix(3.9) = %q, %v", got, err)
	}

	got, err = r.Prefix(sc, "python", SystemVersion)
	if err != nil || got != p("/usr/local") {
		t.Errorf("Prefix(system) = %q, %v", got, err)
	}

	for _, v := range []string{"2.7", "../..", "a/b"} {
		if _, err := r.Prefix(sc, "python", v); !errors.Is(err, ErrNoInstalledVersions) {
			t.Errorf("Prefix(%q) error = %v, want ErrNoInstalledVersions", v, err)
		}
	}
}

func newTestTree(t *testing.T) *testutil.Tree {
	t.Helper()
	return testutil.NewTree(t, "/root")
}
