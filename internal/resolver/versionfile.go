// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxVersionFileSize bounds a single version file read.
const maxVersionFileSize = 64 << 10

var (
	errBinaryContent = errors.New("file contains binary data")
	errTooLarge      = fmt.Errorf("file exceeds %d bytes", maxVersionFileSize)
)

// parseVersionFile extracts identifiers from version file content: one or
// more whitespace-separated words per line, blank lines and # comments ignored.
func parseVersionFile(data []byte) ([]string, error) {
	if bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data) {
		return nil, errBinaryContent
	}

	var ids []string
	for line := range strings.Lines(string(data)) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, strings.Fields(line)...)
	}
	return ids, nil
}

// splitOverride splits an override value on ':' and whitespace.
func splitOverride(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ':' || unicode.IsSpace(r)
	})
}

// validIdentifier rejects identifiers that could escape versions/.
func validIdentifier(id string) bool {
	return id != "." && id != ".." && !strings.ContainsAny(id, `/\`)
}

// readVersionFile reads at most maxVersionFileSize bytes of path. A missing
// file or a directory yields (nil, false, nil); other failures are errors.
func (r *Resolver) readVersionFile(path string) ([]byte, bool, error) {
	info, err := r.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, true, err
	}
	if info.IsDir() {
		return nil, false, nil
	}

	f, err := r.fs.Open(path)
	if err != nil {
		// Vanished between Stat and Open: treat as absent.
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, true, err
	}
	defer func() { _ = f.Close() }() // Read-only file; close error non-critical

	data, err := io.ReadAll(io.LimitReader(f, maxVersionFileSize+1))
	if err != nil {
		return nil, true, err
	}
	if len(data) > maxVersionFileSize {
		return nil, true, errTooLarge
	}
	return data, true, nil
}

// loadSelection reads one version file. It reports false when the file is
// absent, unreadable, or lists no usable identifier; the latter two leave a
// diagnostic behind.
func (r *Resolver) loadSelection(path string, origin Origin, diags *diagnostics) (Selection, bool) {
	data, exists, err := r.readVersionFile(path)
	if !exists {
		return Selection{}, false
	}
	if err == nil {
		var ids []string
		ids, err = parseVersionFile(data)
		if err == nil {
			ids = r.filterIdentifiers(ids, path, diags)
			if len(ids) == 0 {
				diags.add(SeverityWarning, CodeVersionFileEmpty, path, "version file lists no versions; ignoring it", nil)
				return Selection{}, false
			}
			return Selection{Versions: ids, Origin: origin, Source: path}, true
		}
	}

	cause := &UnreadableVersionFileError{Path: path, Cause: err}
	diags.add(SeverityWarning, CodeVersionFileUnreadable, path, "cannot read version file: "+err.Error()+"; ignoring it", cause)
	return Selection{}, false
}

func (r *Resolver) filterIdentifiers(ids []string, source string, diags *diagnostics) []string {
	out := ids[:0:0]
	for _, id := range ids {
		if !validIdentifier(id) {
			diags.add(SeverityWarning, CodeInvalidIdentifier, source, fmt.Sprintf("ignoring invalid version %q", id), nil)
			continue
		}
		out = append(out, id)
	}
	return out
}
