// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// =============================================================================
// INLINE PATTERNS
// =============================================================================

// inlinePattern matches, in one scan, whichever inline construct occurs first:
// a backtick code span, a markdown link, or a bare http(s) URL. Alternation
// order gives code spans priority over an overlapping URL at the same offset.
var inlinePattern = regexp.MustCompile("`[^`]+`" +
	`|\[[^\]]*\]\(https?://[^)\s]*\)` +
	`|https?://[^\s<>"']+`)

// linkPattern extracts display text and URL from a matched markdown link.
var linkPattern = regexp.MustCompile(`^\[([^\]]*)\]\((https?://[^)\s]*)\)$`)

// boldPattern matches **bold** spans. Runs after HTML escaping, which leaves
// asterisks untouched.
var boldPattern = regexp.MustCompile(`\*\*([^*]+)\*\*`)

// pathPattern matches file-path-like tokens: an optional directory prefix, a
// basename with an extension, and an optional colon-separated suffix. The
// suffix is validated separately so "file.ts:abc" stays plain text.
var pathPattern = regexp.MustCompile(`(~?/?(?:[\w.-]+/)*[\w-]+\.[A-Za-z]\w*)((?::\w+)*)`)

// =============================================================================
// INLINE FORMATTING
// =============================================================================

// formatInline converts one logical line (or table cell) to HTML. Text between
// recognized constructs goes through formatNonCode for escaping, bold and
// file-path linkification.
func (r *renderer) formatInline(text string) string {
	var sb strings.Builder
	last := 0
	for _, loc := range inlinePattern.FindAllStringIndex(text, -1) {
		sb.WriteString(r.formatNonCode(text[last:loc[0]]))
		match := text[loc[0]:loc[1]]
		switch {
		case strings.HasPrefix(match, "`"):
			sb.WriteString(r.formatCodeSpan(match[1 : len(match)-1]))
		case strings.HasPrefix(match, "["):
			m := linkPattern.FindStringSubmatch(match)
			fmt.Fprintf(&sb, `<a href="%s">%s</a>`,
				html.EscapeString(m[2]), html.EscapeString(m[1]))
		default:
			escaped := html.EscapeString(match)
			fmt.Fprintf(&sb, `<a href="%s">%s</a>`, escaped, escaped)
		}
		last = loc[1]
	}
	sb.WriteString(r.formatNonCode(text[last:]))
	return sb.String()
}

// formatCodeSpan renders a backtick span, wrapping it in an openfile:// anchor
// when the resolver recognizes it as a file reference.
func (r *renderer) formatCodeSpan(content string) string {
	code := "<code>" + html.EscapeString(content) + "</code>"
	if r.resolver != nil {
		if path, line, ok := r.resolver.ResolveFileReference(content); ok {
			return fmt.Sprintf(`<a href="%s">%s</a>`, fileLink(path, line), code)
		}
	}
	return code
}

// formatNonCode escapes plain text, then applies bold emphasis and file-path
// linkification. It is never called on text that already contains markup.
func (r *renderer) formatNonCode(text string) string {
	out := html.EscapeString(text)
	out = boldPattern.ReplaceAllString(out, "<b>$1</b>")
	if r.resolver != nil {
		out = r.linkifyPaths(out)
	}
	return out
}

// =============================================================================
// FILE PATH LINKIFICATION
// =============================================================================

// linkifyPaths scans escaped prose for path-looking tokens and turns the ones
// the resolver recognizes into openfile:// anchors. Unresolved tokens, and
// tokens with a non-numeric colon suffix, pass through unchanged.
func (r *renderer) linkifyPaths(text string) string {
	var sb strings.Builder
	last := 0
	for _, m := range pathPattern.FindAllStringSubmatchIndex(text, -1) {
		token := text[m[0]:m[1]]
		path := text[m[2]:m[3]]
		suffix := text[m[4]:m[5]]

		line, ok := parseLineSuffix(suffix)
		if !ok {
			continue // non-numeric suffix: whole token stays plain
		}
		resolved, found := r.resolver.ResolveFilePath(path)
		if !found {
			continue
		}

		sb.WriteString(text[last:m[0]])
		fmt.Fprintf(&sb, `<a href="%s">%s</a>`, fileLink(resolved, line), token)
		last = m[1]
	}
	if last == 0 {
		return text
	}
	sb.WriteString(text[last:])
	return sb.String()
}

// parseLineSuffix parses a ":line" or ":line:col" token suffix. It returns
// ok=false when any segment is not an integer, which disables linkification
// for the whole token rather than linking a partial match.
func parseLineSuffix(suffix string) (line int, ok bool) {
	if suffix == "" {
		return 0, true
	}
	segments := strings.Split(suffix[1:], ":")
	if len(segments) > 2 {
		return 0, false
	}
	for _, seg := range segments {
		if _, err := strconv.Atoi(seg); err != nil {
			return 0, false
		}
	}
	line, _ = strconv.Atoi(segments[0])
	return line, true
}

// fileLink builds an openfile:// URL with an optional line suffix.
func fileLink(path string, line int) string {
	if line > 0 {
		return fmt.Sprintf("openfile://%s:%d", path, line)
	}
	return "openfile://" + path
}
