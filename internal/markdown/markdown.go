// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import "strings"

// =============================================================================
// RESOLVER INTERFACE
// =============================================================================

// Resolver supplies file lookup capabilities to the renderer. Both methods are
// pure lookups: they must not block and must not fail; an unresolvable input
// is reported through ok=false and simply renders as plain text.
type Resolver interface {
	// ResolveFileReference resolves the content of a backtick code span
	// (e.g. "src/app.ts:42") to a file path and optional line number.
	// line is 0 when the reference carries no line suffix.
	ResolveFileReference(span string) (path string, line int, ok bool)

	// ResolveFilePath resolves a bare path-looking token found in prose
	// (e.g. "internal/cli/args.go") to an absolute path.
	ResolveFilePath(token string) (resolved string, ok bool)
}

// =============================================================================
// PUBLIC ENTRY POINTS
// =============================================================================

// ToHTML renders text to an HTML fragment without file linkification.
func ToHTML(text string) string {
	return ToHTMLWithResolver(text, nil)
}

// ToHTMLWithResolver renders text to an HTML fragment. The returned fragment
// has no <html>/<body> wrapper; callers embed it. resolver may be nil, which
// disables file linkification without otherwise changing output.
func ToHTMLWithResolver(text string, resolver Resolver) string {
	r := &renderer{resolver: resolver}
	for _, line := range strings.Split(text, "\n") {
		r.renderLine(line)
	}
	r.closeAll()
	return r.out.String()
}
