// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/invowk/pyshim/internal/config"
	"github.com/invowk/pyshim/pkg/platform"
)

// SearchContext is the immutable input of one resolution.
type SearchContext struct {
	// WorkDir is where the local version file walk starts. Empty skips the walk.
	WorkDir string
	// Env is a snapshot of the environment, keyed by variable name.
	Env map[string]string
	// Environ is the same snapshot as KEY=VALUE pairs, handed to the target.
	Environ []string
	// Path is the PATH list used by the system fallback.
	Path []string
	// Root holds versions/<id>/.
	Root string
	// ShimDirs are PATH entries skipped by the system fallback.
	ShimDirs []string
	// Self is the shim executable; PATH candidates identical to it are skipped.
	Self string

	goos string
}

// NewSearchContext builds a SearchContext from explicit inputs. PATH is read
// from environ.
func NewSearchContext(workDir string, environ []string, root string, shimDirs []string, self string) *SearchContext {
	return newSearchContext(runtime.GOOS, workDir, environ, root, shimDirs, self)
}

func newSearchContext(goos, workDir string, environ []string, root string, shimDirs []string, self string) *SearchContext {
	sc := &SearchContext{
		WorkDir:  workDir,
		Env:      make(map[string]string, len(environ)),
		Environ:  environ,
		Root:     root,
		ShimDirs: shimDirs,
		Self:     self,
		goos:     goos,
	}
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		// First occurrence wins, as with getenv(3).
		key := sc.normalizeKey(k)
		if _, seen := sc.Env[key]; !seen {
			sc.Env[key] = v
		}
	}
	if p := sc.Getenv("PATH"); p != "" {
		sc.Path = splitList(goos, p)
	}
	return sc
}

// ContextFromOS snapshots the running process: working directory, environment,
// the versions root from cfg, and the shim's own location. argv0 is the name
// the process was invoked under; when it names a path, its directory is
// skipped by the system fallback too.
func ContextFromOS(cfg *config.Config, argv0 string) (*SearchContext, error) {
	// A deleted working directory must not abort dispatch; the walk is skipped.
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}

	environ := os.Environ()
	sc := NewSearchContext(wd, environ, "", nil, "")

	root, err := cfg.RootDir(sc.Getenv)
	if err != nil {
		return nil, fmt.Errorf("determine versions root: %w", err)
	}
	if !filepath.IsAbs(root) && wd != "" {
		root = filepath.Join(wd, root)
	}
	sc.Root = root

	if self, err := os.Executable(); err == nil {
		sc.Self = self
		sc.ShimDirs = append(sc.ShimDirs, filepath.Dir(self))
		if real, err := filepath.EvalSymlinks(self); err == nil && real != self {
			sc.ShimDirs = append(sc.ShimDirs, filepath.Dir(real))
		}
	}
	if strings.ContainsRune(argv0, '/') || strings.ContainsRune(argv0, filepath.Separator) {
		dir := filepath.Dir(argv0)
		if !filepath.IsAbs(dir) && wd != "" {
			dir = filepath.Join(wd, dir)
		}
		sc.ShimDirs = append(sc.ShimDirs, dir)
	}

	return sc, nil
}

// Getenv returns the value of key in the snapshot.
func (sc *SearchContext) Getenv(key string) string {
	return sc.Env[sc.normalizeKey(key)]
}

// Lookupenv returns the value of key and whether it is set.
func (sc *SearchContext) Lookupenv(key string) (string, bool) {
	v, ok := sc.Env[sc.normalizeKey(key)]
	return v, ok
}

// GOOS returns the operating system the context describes.
func (sc *SearchContext) GOOS() string {
	if sc.goos == "" {
		return runtime.GOOS
	}
	return sc.goos
}

// Windows environment variable names are case-insensitive.
func (sc *SearchContext) normalizeKey(key string) string {
	if sc.GOOS() == platform.Windows {
		return strings.ToUpper(key)
	}
	return key
}

func splitList(goos, list string) []string {
	sep := ":"
	if goos == platform.Windows {
		sep = ";"
	}
	parts := strings.Split(list, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		// An empty PATH entry means the current directory.
		if p == "" {
			p = "."
		}
		out = append(out, p)
	}
	return out
}
