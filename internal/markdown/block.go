// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// =============================================================================
// BLOCK STATE
// =============================================================================

// blockState identifies the multi-line construct currently open.
// At most one block is open at a time: every classifier closes the
// block it is incompatible with before the next classifier runs, so
// the machine never needs lookahead or backtracking.
type blockState int

const (
	blockNone blockState = iota
	blockCode
	blockTable
	blockList
)

// renderer holds the scratch state for one rendering pass.
// It is allocated per call and never shared.
type renderer struct {
	resolver Resolver
	out      strings.Builder

	state         blockState
	firstTableRow bool
}

// headingPattern matches "# " through "#### " heading prefixes.
var headingPattern = regexp.MustCompile(`^(#{1,4}) (.*)$`)

// =============================================================================
// LINE DISPATCH
// =============================================================================

// renderLine classifies one input line and appends its HTML to the output.
// Classification runs on the trimmed line; code lines keep their original
// indentation.
func (r *renderer) renderLine(line string) {
	trimmed := strings.TrimSpace(line)

	// Fence toggle has priority over everything else.
	if strings.HasPrefix(trimmed, "```") {
		if r.state == blockCode {
			r.out.WriteString("</code></pre>")
			r.state = blockNone
		} else {
			r.closeTable()
			r.closeList()
			r.out.WriteString("<pre><code>")
			r.state = blockCode
		}
		return
	}

	// Inside a fence every line passes through verbatim, escaped only.
	if r.state == blockCode {
		r.out.WriteString(html.EscapeString(line))
		r.out.WriteString("\n")
		return
	}

	// Blank lines emit nothing and leave open tables/lists alone; only an
	// explicit non-matching content line closes them.
	if trimmed == "" {
		return
	}

	if r.renderHeading(trimmed) {
		return
	}
	if r.renderTableRow(trimmed) {
		return
	}
	if r.renderListItem(trimmed) {
		return
	}

	// Plain paragraph. The classifiers above already closed any block the
	// line did not belong to.
	r.out.WriteString("<p>")
	r.out.WriteString(r.formatInline(trimmed))
	r.out.WriteString("</p>")
}

// closeAll force-closes any still-open block at end of input, in fixed
// code, table, list order, so output is well-formed even for truncated input.
func (r *renderer) closeAll() {
	if r.state == blockCode {
		r.out.WriteString("</code></pre>")
		r.state = blockNone
	}
	r.closeTable()
	r.closeList()
}

func (r *renderer) closeTable() {
	if r.state == blockTable {
		r.out.WriteString("</table>")
		r.state = blockNone
	}
}

func (r *renderer) closeList() {
	if r.state == blockList {
		r.out.WriteString("</ul>")
		r.state = blockNone
	}
}

// =============================================================================
// BLOCK CLASSIFIERS
// =============================================================================

// renderHeading handles "#".."####" headings, rendered one level down
// (<h2>..<h5>) so the embedding document keeps <h1> for itself.
func (r *renderer) renderHeading(trimmed string) bool {
	m := headingPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return false
	}
	r.closeTable()
	r.closeList()
	level := len(m[1]) + 1
	fmt.Fprintf(&r.out, "<h%d>%s</h%d>", level, r.formatInline(m[2]), level)
	return true
}

// renderTableRow handles pipe-delimited table rows. A non-matching line
// closes any open table as a side effect before reporting no match.
func (r *renderer) renderTableRow(trimmed string) bool {
	if !isTableRow(trimmed) {
		r.closeTable()
		return false
	}

	if r.state != blockTable {
		r.closeList()
		r.out.WriteString("<table>")
		r.state = blockTable
		r.firstTableRow = true
	}

	// Separator rows (|---|:--:|) open the table but render nothing.
	if isTableSeparator(trimmed) {
		return true
	}

	tag := "td"
	if r.firstTableRow {
		tag = "th"
		r.firstTableRow = false
	}

	cells := strings.Split(trimmed, "|")
	// Drop the empty fields produced by the row's bounding pipes.
	cells = cells[1 : len(cells)-1]

	r.out.WriteString("<tr>")
	for _, cell := range cells {
		fmt.Fprintf(&r.out, "<%s>%s</%s>", tag, r.formatInline(strings.TrimSpace(cell)), tag)
	}
	r.out.WriteString("</tr>")
	return true
}

// renderListItem handles "- " and "* " bullet items. A non-matching line
// closes any open list as a side effect before reporting no match.
func (r *renderer) renderListItem(trimmed string) bool {
	if !strings.HasPrefix(trimmed, "- ") && !strings.HasPrefix(trimmed, "* ") {
		r.closeList()
		return false
	}

	if r.state != blockList {
		r.out.WriteString("<ul>")
		r.state = blockList
	}

	fmt.Fprintf(&r.out, "<li>%s</li>", r.formatInline(trimmed[2:]))
	return true
}

// =============================================================================
// ROW PREDICATES
// =============================================================================

// isTableRow reports whether a trimmed line looks like a table row:
// bounded by pipes with at least three pipe characters overall.
func isTableRow(trimmed string) bool {
	return strings.HasPrefix(trimmed, "|") &&
		strings.HasSuffix(trimmed, "|") &&
		strings.Count(trimmed, "|") >= 3
}

// isTableSeparator reports whether a table row is a header separator,
// composed only of pipes, dashes, colons and spaces.
func isTableSeparator(trimmed string) bool {
	for _, ch := range trimmed {
		switch ch {
		case '|', '-', ':', ' ':
		default:
			return false
		}
	}
	return true
}
