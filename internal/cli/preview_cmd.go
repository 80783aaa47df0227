// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// preview_cmd.go - The preview command: render a transcript in the terminal.
package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/rigscribe/internal/entry"
	"github.com/jeranaias/rigscribe/internal/export"
)

// HandlePreview renders a transcript to the terminal with markdown
// formatting and syntax highlighting. Falls back to plain text when
// output is piped.
//
// Usage: rigscribe preview [id|index] [--plain]
func HandlePreview(args Args) error {
	parser := NewArgParser(args.Raw)

	store, err := openStore()
	if err != nil {
		return err
	}

	t, err := resolveTranscript(store, parser.Positional(0))
	if err != nil {
		return fmt.Errorf("resolve transcript: %w", err)
	}

	if parser.BoolFlag("plain") || !IsStdoutTTY() {
		fmt.Print(export.PlainText(t.Entries))
		return nil
	}

	renderer := newMarkdownRenderer()

	title := t.Title
	if title == "" {
		title = t.ID
	}
	fmt.Println(HeaderStyle.Render(title))
	fmt.Println(MutedStyle.Render(t.CreatedAt.Format("2006-01-02 15:04") + " · " + fmt.Sprintf("%d entries", len(t.Entries))))
	fmt.Println()

	for _, e := range t.Entries {
		previewEntry(e, renderer)
	}
	return nil
}

// =============================================================================
// RENDERING
// =============================================================================

// newMarkdownRenderer builds a glamour renderer sized to the terminal.
// Returns nil when construction fails; callers fall back to raw markdown.
func newMarkdownRenderer() *glamour.TermRenderer {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(GetTerminalWidth()),
	)
	if err != nil {
		return nil
	}
	return renderer
}

// renderMarkdown renders markdown for the terminal, falling back to the
// raw source when the renderer is unavailable or errors.
func renderMarkdown(renderer *glamour.TermRenderer, markdown string) string {
	if renderer == nil {
		return markdown
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}

func previewEntry(e entry.Entry, renderer *glamour.TermRenderer) {
	switch v := e.(type) {
	case entry.Prompt:
		fmt.Println(TitleStyle.Render("> " + strings.ReplaceAll(v.Text, "\n", "\n> ")))
		fmt.Println()

	case entry.Text:
		fmt.Print(renderMarkdown(renderer, v.Markdown))

	case entry.Thinking:
		fmt.Println(MutedStyle.Render("[thinking] " + v.Markdown))
		fmt.Println()

	case entry.ToolCall:
		info := entry.LookupTool(v.Title)
		fmt.Println(SuccessStyle.Render("⚙ " + info.Name))
		if v.Arguments != "" {
			fmt.Println(indentLines(highlightArguments(v.Arguments), "  "))
		}
		fmt.Println()

	case entry.SubAgent:
		fmt.Println(WarningStyle.Render("◆ " + entry.LookupSubAgent(v.AgentType).Name + ": " + v.Description))
		if v.Result != "" {
			fmt.Print(renderMarkdown(renderer, v.Result))
		}
		fmt.Println()

	case entry.ContextFiles:
		names := make([]string, len(v.Files))
		for i, f := range v.Files {
			names[i] = f.DisplayName
		}
		fmt.Println(MutedStyle.Render(fmt.Sprintf("[context] %d files: %s", len(v.Files), strings.Join(names, ", "))))
		fmt.Println()

	case entry.Status:
		style := SuccessStyle
		if v.Icon == entry.ErrorIcon {
			style = ErrorStyle
		}
		fmt.Println(style.Render(v.Icon + " " + v.Message))
		fmt.Println()

	case entry.SessionSeparator:
		fmt.Println(MutedStyle.Render("── resumed " + v.Timestamp.Format(time.DateTime) + " " + strings.Repeat("─", 20)))
		fmt.Println()
	}
}

// highlightArguments pretty-prints and highlights tool arguments when they
// are valid JSON; otherwise returns them untouched.
func highlightArguments(arguments string) string {
	if !json.Valid([]byte(arguments)) {
		return arguments
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(arguments), "", "  "); err != nil {
		return arguments
	}
	return strings.TrimRight(HighlightJSON(buf.String()), "\n")
}

func indentLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
