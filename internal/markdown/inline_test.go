// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"strings"
	"testing"
)

// =============================================================================
// TEST RESOLVER
// =============================================================================

// testResolver resolves paths through a fixed lookup table.
type testResolver struct {
	paths map[string]string
}

func (r *testResolver) ResolveFileReference(span string) (string, int, bool) {
	path := span
	line := 0
	if i := strings.LastIndex(span, ":"); i >= 0 {
		n := 0
		ok := true
		for _, ch := range span[i+1:] {
			if ch < '0' || ch > '9' {
				ok = false
				break
			}
			n = n*10 + int(ch-'0')
		}
		if ok && span[i+1:] != "" {
			path = span[:i]
			line = n
		}
	}
	resolved, found := r.paths[path]
	if !found {
		return "", 0, false
	}
	return resolved, line, true
}

func (r *testResolver) ResolveFilePath(token string) (string, bool) {
	resolved, found := r.paths[token]
	return resolved, found
}

// =============================================================================
// INLINE FORMATTING TESTS
// =============================================================================

func TestToHTML_InlineCode(t *testing.T) {
	got := ToHTML("run `go build` now")
	want := "<p>run <code>go build</code> now</p>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestToHTML_InlineCodeEscaped(t *testing.T) {
	got := ToHTML("use `a < b`")
	if !strings.Contains(got, "<code>a &lt; b</code>") {
		t.Errorf("code span content not escaped: %q", got)
	}
}

func TestToHTML_Bold(t *testing.T) {
	got := ToHTML("this is **important** text")
	want := "<p>this is <b>important</b> text</p>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestToHTML_BoldNotAppliedInCode(t *testing.T) {
	got := ToHTML("`**literal**`")
	if strings.Contains(got, "<b>") {
		t.Errorf("bold applied inside code span: %q", got)
	}
}

func TestToHTML_MarkdownLink(t *testing.T) {
	got := ToHTML("see [the docs](https://example.com/a?b=1&c=2)")
	want := `<p>see <a href="https://example.com/a?b=1&amp;c=2">the docs</a></p>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestToHTML_BareURL(t *testing.T) {
	got := ToHTML("visit https://example.com/page for info")
	want := `<p>visit <a href="https://example.com/page">https://example.com/page</a> for info</p>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestToHTML_CodeSpanBeatsURL(t *testing.T) {
	got := ToHTML("`https://example.com`")
	want := "<p><code>https://example.com</code></p>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestToHTML_InlineInTableCell(t *testing.T) {
	got := ToHTML("| **bold** | `code` |\n|---|---|")
	if !strings.Contains(got, "<th><b>bold</b></th>") {
		t.Errorf("bold not applied in cell: %q", got)
	}
	if !strings.Contains(got, "<th><code>code</code></th>") {
		t.Errorf("code span not applied in cell: %q", got)
	}
}

// =============================================================================
// FILE REFERENCE TESTS
// =============================================================================

func TestToHTMLWithResolver_CodeSpanFileReference(t *testing.T) {
	resolver := &testResolver{paths: map[string]string{
		"/src/app.ts": "/abs/src/app.ts",
	}}

	got := ToHTMLWithResolver("Check `/src/app.ts:42` for details", resolver)
	if !strings.Contains(got, `href="openfile:///abs/src/app.ts:42"`) {
		t.Errorf("missing openfile link with line: %q", got)
	}
	if !strings.Contains(got, "<code>/src/app.ts:42</code>") {
		t.Errorf("anchor should wrap the original code span: %q", got)
	}
}

func TestToHTMLWithResolver_CodeSpanWithoutLine(t *testing.T) {
	resolver := &testResolver{paths: map[string]string{
		"main.go": "/abs/main.go",
	}}

	got := ToHTMLWithResolver("see `main.go`", resolver)
	if !strings.Contains(got, `href="openfile:///abs/main.go"`) {
		t.Errorf("missing openfile link: %q", got)
	}
}

func TestToHTMLWithResolver_UnresolvedSpanStaysPlain(t *testing.T) {
	resolver := &testResolver{paths: map[string]string{}}

	got := ToHTMLWithResolver("see `nosuch.go`", resolver)
	if strings.Contains(got, "openfile://") {
		t.Errorf("unresolved reference must not produce a link: %q", got)
	}
	if !strings.Contains(got, "<code>nosuch.go</code>") {
		t.Errorf("unresolved reference should render as a plain code span: %q", got)
	}
}

func TestToHTMLWithResolver_BarePathToken(t *testing.T) {
	resolver := &testResolver{paths: map[string]string{
		"internal/cli/args.go": "/abs/internal/cli/args.go",
	}}

	got := ToHTMLWithResolver("edit internal/cli/args.go:10 please", resolver)
	if !strings.Contains(got, `href="openfile:///abs/internal/cli/args.go:10"`) {
		t.Errorf("missing openfile link for bare path: %q", got)
	}
	if !strings.Contains(got, ">internal/cli/args.go:10</a>") {
		t.Errorf("anchor text should be the original token: %q", got)
	}
}

func TestToHTMLWithResolver_NonNumericSuffixStaysPlain(t *testing.T) {
	resolver := &testResolver{paths: map[string]string{
		"app.ts": "/abs/app.ts",
	}}

	got := ToHTMLWithResolver("broken app.ts:xyz token", resolver)
	if strings.Contains(got, "openfile://") {
		t.Errorf("non-numeric line suffix must disable linkification: %q", got)
	}
}

func TestToHTMLWithResolver_LineAndColumn(t *testing.T) {
	resolver := &testResolver{paths: map[string]string{
		"app.ts": "/abs/app.ts",
	}}

	got := ToHTMLWithResolver("at app.ts:12:7", resolver)
	if !strings.Contains(got, `href="openfile:///abs/app.ts:12"`) {
		t.Errorf("line:col suffix should link with line only: %q", got)
	}
}

func TestToHTML_NilResolverDisablesLinkification(t *testing.T) {
	got := ToHTML("edit internal/cli/args.go:10 please")
	if strings.Contains(got, "openfile://") {
		t.Errorf("nil resolver must not produce links: %q", got)
	}
}
