// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/jeranaias/rigscribe/internal/entry"
	"github.com/jeranaias/rigscribe/internal/markdown"
	"github.com/jeranaias/rigscribe/internal/storage"
)

// =============================================================================
// HTML DOCUMENT RENDERER
// =============================================================================

// HTMLDocument renders entries into a complete, self-contained HTML document
// with embedded CSS derived from the theme. The result needs no external
// stylesheet and can be written straight to a .html file.
func HTMLDocument(title string, entries []entry.Entry, theme Theme) string {
	theme = theme.withDefaults()

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n<head>\n")
	sb.WriteString("<meta charset=\"UTF-8\">\n")
	sb.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", html.EscapeString(title))
	sb.WriteString(documentCSS(theme))
	sb.WriteString("</head>\n<body>\n<div class=\"transcript\">\n")

	for _, e := range entries {
		sb.WriteString(htmlEntry(e))
	}

	sb.WriteString("</div>\n</body>\n</html>\n")
	return sb.String()
}

// htmlEntry renders one entry into its themed block. Exhaustive over the
// sealed variant set.
func htmlEntry(e entry.Entry) string {
	switch v := e.(type) {
	case entry.Prompt:
		return fmt.Sprintf("<div class=\"prompt\">%s</div>\n", escapeMultiline(v.Text))

	case entry.Text:
		return fmt.Sprintf("<div class=\"message\">%s</div>\n", markdown.ToHTML(v.Markdown))

	case entry.Thinking:
		return fmt.Sprintf(
			"<details class=\"thinking\"><summary>Thinking</summary><div class=\"verbatim\">%s</div></details>\n",
			escapeMultiline(v.Markdown))

	case entry.ToolCall:
		return htmlToolCall(v)

	case entry.SubAgent:
		return htmlSubAgent(v)

	case entry.ContextFiles:
		return htmlContextFiles(v)

	case entry.Status:
		class := "status info"
		if v.Icon == entry.ErrorIcon {
			class = "status error"
		}
		return fmt.Sprintf("<div class=\"%s\">%s %s</div>\n",
			class, html.EscapeString(v.Icon), html.EscapeString(v.Message))

	case entry.SessionSeparator:
		return fmt.Sprintf(
			"<div class=\"session-sep\"><hr><span>%s</span></div>\n",
			html.EscapeString(v.Timestamp.Format(time.DateTime)))

	default:
		return ""
	}
}

// htmlToolCall renders a tool invocation as a collapsible block with the
// display name, optional description, and pretty-printed arguments.
func htmlToolCall(v entry.ToolCall) string {
	info := entry.LookupTool(v.Title)

	var sb strings.Builder
	sb.WriteString("<details class=\"tool\"><summary>")
	sb.WriteString(html.EscapeString(info.Name))
	sb.WriteString("</summary>")
	if info.Description != "" {
		fmt.Fprintf(&sb, "<div class=\"tool-desc\">%s</div>", html.EscapeString(info.Description))
	}
	if v.Arguments != "" {
		fmt.Fprintf(&sb, "<pre class=\"tool-args\">%s</pre>", html.EscapeString(prettyArguments(v.Arguments)))
	}
	sb.WriteString("</details>\n")
	return sb.String()
}

// htmlSubAgent renders a delegation either as prompt + markdown-rendered
// result, or as a one-line description when no result is present.
func htmlSubAgent(v entry.SubAgent) string {
	info := entry.LookupSubAgent(v.AgentType)

	if v.Result == "" {
		return fmt.Sprintf("<div class=\"agent\"><span class=\"agent-name\">%s</span> %s</div>\n",
			html.EscapeString(info.Name), html.EscapeString(v.Description))
	}

	var sb strings.Builder
	sb.WriteString("<div class=\"agent\">")
	fmt.Fprintf(&sb, "<div class=\"agent-head\"><span class=\"agent-name\">%s</span> %s</div>",
		html.EscapeString(info.Name), html.EscapeString(v.Description))
	if v.Prompt != "" {
		fmt.Fprintf(&sb, "<div class=\"agent-prompt\">%s</div>", escapeMultiline(v.Prompt))
	}
	fmt.Fprintf(&sb, "<div class=\"message\">%s</div>", markdown.ToHTML(v.Result))
	sb.WriteString("</div>\n")
	return sb.String()
}

// htmlContextFiles renders attached files as a collapsible code-styled list.
func htmlContextFiles(v entry.ContextFiles) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<details class=\"context\"><summary>%d context files</summary><ul>", len(v.Files))
	for _, f := range v.Files {
		fmt.Fprintf(&sb, "<li><code>%s</code></li>", html.EscapeString(f.DisplayName))
	}
	sb.WriteString("</ul></details>\n")
	return sb.String()
}

// =============================================================================
// CONTENT HELPERS
// =============================================================================

// escapeMultiline escapes text and keeps line structure with <br>.
func escapeMultiline(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>")
}

// prettyArguments indents serialized JSON arguments for readability.
// Non-JSON payloads pass through unchanged.
func prettyArguments(args string) string {
	if !json.Valid([]byte(args)) {
		return args
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(args), "", "  "); err != nil {
		return args
	}
	return buf.String()
}

// =============================================================================
// EMBEDDED CSS
// =============================================================================

// documentCSS assembles the inline stylesheet from the theme's semantic
// colors. All values are CSS literals fixed at render time.
func documentCSS(t Theme) string {
	return fmt.Sprintf(`<style>
  body {
    font-family: %s;
    font-size: %s;
    line-height: 1.6;
    margin: 0;
    padding: 20px;
  }
  .transcript { max-width: 860px; margin: 0 auto; }
  .prompt {
    background: %s;
    color: #ffffff;
    border-radius: 12px;
    padding: 10px 14px;
    margin: 12px 0;
  }
  .message { margin: 12px 0; }
  .message p { margin: 6px 0; }
  details { margin: 8px 0; }
  details summary { cursor: pointer; color: %s; }
  details.thinking summary { color: %s; }
  details.tool summary { color: %s; }
  .verbatim { white-space: pre-wrap; color: %s; }
  .tool-desc { color: %s; font-size: 90%%; margin: 4px 0; }
  .tool-args, pre {
    background: %s;
    padding: 10px;
    border-radius: 6px;
    overflow-x: auto;
  }
  code { background: %s; padding: 1px 4px; border-radius: 3px; }
  pre code { background: none; padding: 0; }
  a { color: %s; }
  table { border-collapse: collapse; margin: 10px 0; }
  th, td { border: 1px solid %s; padding: 4px 10px; }
  th { background: %s; }
  .agent { margin: 12px 0; }
  .agent-name { font-weight: 600; color: %s; }
  .agent-prompt { color: %s; margin: 4px 0; }
  .status { margin: 6px 0; color: %s; }
  .status.error { color: #f7768e; }
  .session-sep { position: relative; text-align: center; margin: 18px 0; }
  .session-sep hr { border: none; border-top: 1px solid %s; }
  .session-sep span {
    position: relative;
    top: -0.8em;
    background: inherit;
    padding: 0 8px;
    color: %s;
    font-size: 85%%;
  }
</style>
`,
		t.FontFamily, t.FontSize,
		t.UserColor,
		t.LabelColor,
		t.ThinkingColor,
		t.ToolColor,
		t.ThinkingColor,
		t.LabelColor,
		t.CodeBackground,
		t.CodeBackground,
		t.LinkColor,
		t.TableBorder,
		t.TableHeaderBackground,
		t.ToolColor,
		t.LabelColor,
		t.LabelColor,
		t.TableBorder,
		t.LabelColor,
	)
}

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports transcripts to self-contained HTML documents.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export converts a transcript to a styled HTML document.
func (e *HTMLExporter) Export(t *storage.Transcript) ([]byte, error) {
	return []byte(HTMLDocument(t.Title, t.Entries, e.options.Theme)), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}
