// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/invowk/pyshim/pkg/platform"
)

// findSystem searches sc.Path for program, skipping the shim's own
// directories and any candidate that is the shim binary itself.
func (r *Resolver) findSystem(sc *SearchContext, program string) (string, bool) {
	goos := sc.GOOS()
	skip := make([]string, 0, len(sc.ShimDirs)+1)
	for _, d := range sc.ShimDirs {
		skip = append(skip, filepath.Clean(d))
	}
	if sc.Root != "" {
		skip = append(skip, filepath.Join(sc.Root, ShimsDir))
	}

	var selfInfo os.FileInfo
	if sc.Self != "" {
		if info, err := r.fs.Stat(sc.Self); err == nil {
			selfInfo = info
		}
	}

	names := platform.ExecutableNamesFor(goos, program)
	for _, dir := range sc.Path {
		if !filepath.IsAbs(dir) {
			if sc.WorkDir == "" {
				continue
			}
			dir = filepath.Join(sc.WorkDir, dir)
		}
		dir = filepath.Clean(dir)
		if containsPath(goos, skip, dir) {
			continue
		}
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			info, ok := r.executable(goos, candidate)
			if !ok {
				continue
			}
			if samePath(goos, candidate, sc.Self) || (selfInfo != nil && os.SameFile(info, selfInfo)) {
				continue
			}
			return candidate, true
		}
	}
	return "", false
}

func (r *Resolver) describePath(sc *SearchContext) string {
	if len(sc.Path) == 0 {
		return "PATH (empty)"
	}
	return "PATH=" + strings.Join(sc.Path, string(os.PathListSeparator))
}

func containsPath(goos string, list []string, p string) bool {
	for _, item := range list {
		if samePath(goos, item, p) {
			return true
		}
	}
	return false
}

// samePath compares cleaned paths, case-insensitively on Windows.
func samePath(goos, a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if goos == platform.Windows {
		return strings.EqualFold(a, b)
	}
	return a == b
}
