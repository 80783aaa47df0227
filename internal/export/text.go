// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"

	"github.com/jeranaias/rigscribe/internal/entry"
	"github.com/jeranaias/rigscribe/internal/storage"
)

// =============================================================================
// PLAIN TEXT RENDERER
// =============================================================================

// PlainText renders entries as plain text, one block per entry. Raw text is
// preserved; nothing is HTML-escaped.
func PlainText(entries []entry.Entry) string {
	var sb strings.Builder
	for i, e := range entries {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(plainEntry(e))
	}
	return sb.String()
}

// plainEntry renders one entry. The type switch is exhaustive over the sealed
// variant set; every new variant must be handled here.
func plainEntry(e entry.Entry) string {
	switch v := e.(type) {
	case entry.Prompt:
		return ">>> " + v.Text

	case entry.Text:
		return v.Markdown

	case entry.Thinking:
		return "[thinking] " + v.Markdown

	case entry.ToolCall:
		line := "[tool] " + entry.LookupTool(v.Title).Name
		if v.Arguments != "" {
			line += "\n  params: " + v.Arguments
		}
		return line

	case entry.SubAgent:
		line := fmt.Sprintf("[agent] %s: %s", entry.LookupSubAgent(v.AgentType).Name, v.Description)
		if v.Result != "" {
			line += "\n" + v.Result
		}
		return line

	case entry.ContextFiles:
		names := make([]string, 0, len(v.Files))
		for _, f := range v.Files {
			names = append(names, f.DisplayName)
		}
		return fmt.Sprintf("[context] %d files: %s", len(v.Files), strings.Join(names, ", "))

	case entry.Status:
		return v.Icon + " " + v.Message

	case entry.SessionSeparator:
		return fmt.Sprintf("-------- session %s --------", formatTimestamp(v.Timestamp))

	default:
		return ""
	}
}

// =============================================================================
// PLAIN TEXT EXPORTER
// =============================================================================

// PlainTextExporter exports transcripts to plain text files with a small
// metadata header.
type PlainTextExporter struct {
	options *Options
}

// NewPlainTextExporter creates a new plain text exporter.
func NewPlainTextExporter(opts *Options) *PlainTextExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &PlainTextExporter{options: opts}
}

// Export converts a transcript to plain text. It is total: an empty
// transcript yields just the header shell.
func (e *PlainTextExporter) Export(t *storage.Transcript) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(t.Title + "\n")
	sb.WriteString(fmt.Sprintf("Created: %s\n", formatTimestamp(t.CreatedAt)))
	sb.WriteString(fmt.Sprintf("Entries: %d\n", len(t.Entries)))
	sb.WriteString("\n")
	sb.WriteString(PlainText(t.Entries))
	sb.WriteString("\n")
	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for plain text.
func (e *PlainTextExporter) FileExtension() string {
	return ".txt"
}

// MimeType returns the MIME type for plain text.
func (e *PlainTextExporter) MimeType() string {
	return "text/plain"
}
