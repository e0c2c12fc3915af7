// SPDX-License-Identifier: MPL-2.0

package resolver

import "fmt"

const (
	// SeverityDebug marks a diagnostic that only explains a resolution step.
	SeverityDebug Severity = "debug"
	// SeverityWarning indicates a recoverable problem with the user's setup.
	SeverityWarning Severity = "warning"

	// CodeVersionFileUnreadable is reported for a version file that exists but
	// could not be read or contained binary data.
	CodeVersionFileUnreadable = "version_file_unreadable"
	// CodeVersionFileEmpty is reported for a version file without identifiers.
	CodeVersionFileEmpty = "version_file_empty"
	// CodeVersionFileUnsatisfied is reported when every identifier of a source
	// is uninstalled and the search moves on.
	CodeVersionFileUnsatisfied = "version_file_unsatisfied"
	// CodeInvalidIdentifier is reported for identifiers that would escape the
	// versions directory.
	CodeInvalidIdentifier = "version_identifier_invalid"
	// CodeVersionNotInstalled is reported for each skipped identifier.
	CodeVersionNotInstalled = "version_not_installed"
	// CodeAliasRetried is reported when python-X is retried as X.
	CodeAliasRetried = "version_alias_retried"
)

type (
	// Severity represents diagnostic severity.
	Severity string

	// Diagnostic is a non-fatal observation made during resolution. Callers
	// decide how to render it; the resolver never writes to stderr.
	Diagnostic struct {
		Severity Severity
		// Code is a machine-readable identifier (e.g., "version_file_unreadable").
		Code    string
		Message string
		// Path is the file associated with this diagnostic (optional).
		Path string
		// Cause is the underlying error (optional).
		Cause error
	}
)

// String renders the diagnostic on one line.
func (d Diagnostic) String() string {
	if d.Path != "" {
		return fmt.Sprintf("%s: %s", d.Path, d.Message)
	}
	return d.Message
}

// diagnostics accumulates Diagnostics during a single resolution.
type diagnostics []Diagnostic

func (ds *diagnostics) add(sev Severity, code, path, msg string, cause error) {
	*ds = append(*ds, Diagnostic{Severity: sev, Code: code, Message: msg, Path: path, Cause: cause})
}
