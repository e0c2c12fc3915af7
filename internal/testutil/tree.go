// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// Tree lays out a pyenv-style versions root on an afero.Fs.
//
// Usage:
//
//	tree := testutil.NewTree(t, "/root")
//	bin := tree.Install("3.9", "python", "pip")
//	tree.VersionFile("/proj", "3.11\n3.9\n")
type Tree struct {
	Fs   afero.Fs
	Root string

	t testing.TB
}

// NewTree returns a Tree rooted at root on a fresh in-memory filesystem.
func NewTree(t testing.TB, root string) *Tree {
	t.Helper()
	return NewTreeOn(t, afero.NewMemMapFs(), root)
}

// NewTreeOn returns a Tree rooted at root on fs.
func NewTreeOn(t testing.TB, fs afero.Fs, root string) *Tree {
	t.Helper()
	root = filepath.FromSlash(root)
	MustMkdirAll(t, fs, filepath.Join(root, "versions"))
	return &Tree{Fs: fs, Root: root, t: t}
}

// VersionDir returns <root>/versions/<version>.
func (tr *Tree) VersionDir(version string) string {
	return filepath.Join(tr.Root, "versions", version)
}

// Install creates <root>/versions/<version>/bin holding one executable per
// program and returns the bin directory.
func (tr *Tree) Install(version string, programs ...string) string {
	tr.t.Helper()
	bin := filepath.Join(tr.VersionDir(version), "bin")
	MustMkdirAll(tr.t, tr.Fs, bin)
	for _, p := range programs {
		MustWriteExecutable(tr.t, tr.Fs, filepath.Join(bin, p), "")
	}
	return bin
}

// Executable writes an executable at path and returns the cleaned path.
func (tr *Tree) Executable(path, content string) string {
	tr.t.Helper()
	path = filepath.FromSlash(path)
	MustWriteExecutable(tr.t, tr.Fs, path, content)
	return path
}

// File writes a regular non-executable file and returns the cleaned path.
func (tr *Tree) File(path, content string) string {
	tr.t.Helper()
	path = filepath.FromSlash(path)
	MustWriteFile(tr.t, tr.Fs, path, content, 0o644)
	return path
}

// Dir creates a directory and returns the cleaned path.
func (tr *Tree) Dir(path string) string {
	tr.t.Helper()
	path = filepath.FromSlash(path)
	MustMkdirAll(tr.t, tr.Fs, path)
	return path
}

// VersionFile writes a .python-version file into dir and returns its path.
func (tr *Tree) VersionFile(dir, content string) string {
	tr.t.Helper()
	return tr.File(filepath.Join(filepath.FromSlash(dir), ".python-version"), content)
}

// GlobalVersion writes <root>/version.
func (tr *Tree) GlobalVersion(content string) string {
	tr.t.Helper()
	return tr.File(filepath.Join(tr.Root, "version"), content)
}
