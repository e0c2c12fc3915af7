// SPDX-License-Identifier: MPL-2.0

// Package dispatch turns an invocation into exactly one terminal action:
// printing an inspection value, failing with a one-line diagnostic, or
// handing control to the resolved target.
//
// The Intent is derived once from argv[0] and argv[1]. A name other than the
// canonical program selects script dispatch, where inspection flags are never
// interpreted. On Unix the handoff replaces the process image; elsewhere the
// target is spawned and its exit status forwarded.
package dispatch
