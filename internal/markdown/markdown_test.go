// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"strings"
	"testing"
)

// =============================================================================
// BLOCK RENDERING TESTS
// =============================================================================

func TestToHTML_Paragraph(t *testing.T) {
	got := ToHTML("hello world")
	want := "<p>hello world</p>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestToHTML_Headings(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"# Title", "<h2>Title</h2>"},
		{"## Section", "<h3>Section</h3>"},
		{"### Subsection", "<h4>Subsection</h4>"},
		{"#### Detail", "<h5>Detail</h5>"},
		{"#NoSpace", "<p>#NoSpace</p>"},
		{"##### Too deep", "<p>##### Too deep</p>"},
	}

	for _, tt := range tests {
		got := ToHTML(tt.input)
		if got != tt.want {
			t.Errorf("ToHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestToHTML_CodeFence(t *testing.T) {
	input := "```go\nfunc main() {}\n```"
	got := ToHTML(input)
	want := "<pre><code>func main() {}\n</code></pre>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestToHTML_CodeFenceSuppressesInline(t *testing.T) {
	got := ToHTML("```\n**not bold** `not code`\n```")
	start := strings.Index(got, "<pre><code>")
	end := strings.Index(got, "</code></pre>")
	if start < 0 || end < 0 {
		t.Fatalf("missing fence markup: %q", got)
	}
	body := got[start+len("<pre><code>") : end]
	if strings.Contains(body, "<b>") || strings.Contains(body, "<code>") {
		t.Errorf("inline formatting applied inside fence body: %q", body)
	}
	if !strings.Contains(body, "**not bold** `not code`") {
		t.Errorf("fence content not preserved verbatim: %q", body)
	}
}

func TestToHTML_UnterminatedFenceForceClosed(t *testing.T) {
	got := ToHTML("```\ncode without closing fence")
	if strings.Count(got, "<pre><code>") != 1 || strings.Count(got, "</code></pre>") != 1 {
		t.Errorf("expected exactly one balanced pre/code pair, got %q", got)
	}
}

func TestToHTML_CodeFencePreservesIndentation(t *testing.T) {
	got := ToHTML("```\n    indented\n```")
	if !strings.Contains(got, "    indented") {
		t.Errorf("indentation lost inside fence: %q", got)
	}
}

func TestToHTML_Table(t *testing.T) {
	input := "| Name | Age |\n|------|-----|\n| Ada | 36 |"
	got := ToHTML(input)
	want := "<table><tr><th>Name</th><th>Age</th></tr><tr><td>Ada</td><td>36</td></tr></table>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestToHTML_TableCounts(t *testing.T) {
	input := "| A | B |\n|---|---|\n| 1 | 2 |"
	got := ToHTML(input)

	if strings.Count(got, "<table>") != 1 {
		t.Errorf("want exactly one table, got %q", got)
	}
	if strings.Count(got, "<th>") != 2 || strings.Count(got, "<td>") != 2 {
		t.Errorf("cell count mismatch: %q", got)
	}
	if strings.Count(got, "<tr>") != 2 {
		t.Errorf("want two rows (separator suppressed), got %q", got)
	}
}

func TestToHTML_TableClosedByText(t *testing.T) {
	got := ToHTML("| A | B |\n|---|---|\nplain text")
	if !strings.Contains(got, "</table><p>plain text</p>") {
		t.Errorf("non-table line should close the table: %q", got)
	}
}

func TestToHTML_TableRaggedRow(t *testing.T) {
	// Mismatched cell counts render as-is, no padding and no error.
	got := ToHTML("| A | B |\n| only |  extra | cells | here |")
	if strings.Count(got, "<th>") != 2 {
		t.Errorf("header cells: %q", got)
	}
	if strings.Count(got, "<td>") != 4 {
		t.Errorf("data cells: %q", got)
	}
}

func TestToHTML_List(t *testing.T) {
	got := ToHTML("- a\n- b")
	want := "<ul><li>a</li><li>b</li></ul>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestToHTML_ListStarMarker(t *testing.T) {
	got := ToHTML("* item")
	want := "<ul><li>item</li></ul>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestToHTML_BlankLineDoesNotCloseList(t *testing.T) {
	got := ToHTML("- a\n- b\n\ntext")
	want := "<ul><li>a</li><li>b</li></ul><p>text</p>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestToHTML_FenceClosesOpenList(t *testing.T) {
	got := ToHTML("- item\n```\ncode\n```")
	if !strings.Contains(got, "</ul><pre><code>") {
		t.Errorf("fence should force-close the open list: %q", got)
	}
}

func TestToHTML_HeadingClosesOpenTable(t *testing.T) {
	got := ToHTML("| A | B |\n|---|---|\n# Done")
	if !strings.Contains(got, "</table><h2>Done</h2>") {
		t.Errorf("heading should close the open table: %q", got)
	}
}

func TestToHTML_SequentialBlocks(t *testing.T) {
	input := "- item\n| A | B |\n|---|---|\n| 1 | 2 |"
	got := ToHTML(input)
	if !strings.Contains(got, "</ul><table>") {
		t.Errorf("table row should close the open list: %q", got)
	}
}

func TestToHTML_UnterminatedTableAndListForceClosed(t *testing.T) {
	for _, input := range []string{"| A | B |\n| 1 | 2 |", "- a\n- b"} {
		got := ToHTML(input)
		opens := strings.Count(got, "<table>") + strings.Count(got, "<ul>")
		closes := strings.Count(got, "</table>") + strings.Count(got, "</ul>")
		if opens != closes {
			t.Errorf("unbalanced block tags for %q: %q", input, got)
		}
	}
}

func TestToHTML_EmptyInput(t *testing.T) {
	if got := ToHTML(""); got != "" {
		t.Errorf("empty input should render empty, got %q", got)
	}
}

// =============================================================================
// ESCAPING TESTS
// =============================================================================

func TestToHTML_EscapesScriptTags(t *testing.T) {
	inputs := []string{
		"<script>alert(1)</script>",
		"# <script>x</script>",
		"- <script>x</script>",
		"| <script>x</script> | y |",
		"```\n<script>x</script>\n```",
	}
	for _, input := range inputs {
		got := ToHTML(input)
		if strings.Contains(got, "<script>") {
			t.Errorf("unescaped script tag for input %q: %q", input, got)
		}
		if !strings.Contains(got, "&lt;script&gt;") {
			t.Errorf("expected escaped script tag for input %q: %q", input, got)
		}
	}
}

func TestToHTML_EscapesAmpersand(t *testing.T) {
	got := ToHTML("fish & chips")
	if !strings.Contains(got, "fish &amp; chips") {
		t.Errorf("ampersand not escaped: %q", got)
	}
}
