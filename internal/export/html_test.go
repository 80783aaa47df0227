// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/rigscribe/internal/entry"
	"github.com/jeranaias/rigscribe/internal/storage"
)

func TestHTMLDocumentStructure(t *testing.T) {
	entries := []entry.Entry{
		entry.Prompt{Text: "hello"},
		entry.Text{Markdown: "**bold** reply"},
	}

	got := HTMLDocument("my session", entries, DarkTheme())

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>my session</title>",
		"<style>",
		"</html>",
		`<div class="prompt">hello</div>`,
		"<b>bold</b> reply",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestHTMLDocumentEscapesPrompt(t *testing.T) {
	got := HTMLDocument("t", []entry.Entry{entry.Prompt{Text: "<script>alert(1)</script>"}}, Theme{})

	if strings.Contains(got, "<script>alert") {
		t.Fatalf("prompt text not escaped:\n%s", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Errorf("expected escaped script tag")
	}
}

func TestHTMLDocumentThinkingVerbatim(t *testing.T) {
	got := HTMLDocument("t", []entry.Entry{
		entry.Thinking{Markdown: "**not rendered** as markdown"},
	}, Theme{})

	if !strings.Contains(got, `<details class="thinking">`) {
		t.Errorf("thinking not collapsible")
	}
	if strings.Contains(got, "<b>") {
		t.Errorf("thinking content was markdown-rendered, want verbatim")
	}
	if !strings.Contains(got, "**not rendered** as markdown") {
		t.Errorf("thinking text missing")
	}
}

func TestHTMLDocumentToolCallPrettyJSON(t *testing.T) {
	got := HTMLDocument("t", []entry.Entry{
		entry.ToolCall{Title: "read_file", Arguments: `{"path":"main.go","line":10}`},
	}, Theme{})

	if !strings.Contains(got, "<summary>Read File</summary>") {
		t.Errorf("tool display name missing")
	}
	// Indented JSON has the key on its own line.
	if !strings.Contains(got, "&#34;path&#34;: &#34;main.go&#34;") {
		t.Errorf("arguments not pretty-printed:\n%s", got)
	}
}

func TestHTMLDocumentToolCallNonJSONArgs(t *testing.T) {
	got := HTMLDocument("t", []entry.Entry{
		entry.ToolCall{Title: "bash", Arguments: "ls -la <dir>"},
	}, Theme{})

	if !strings.Contains(got, "ls -la &lt;dir&gt;") {
		t.Errorf("non-JSON args should pass through escaped:\n%s", got)
	}
}

func TestHTMLDocumentStatusErrorStyling(t *testing.T) {
	got := HTMLDocument("t", []entry.Entry{
		entry.Status{Icon: entry.ErrorIcon, Message: "write failed"},
		entry.Status{Icon: "✔", Message: "saved"},
	}, Theme{})

	if !strings.Contains(got, `<div class="status error">`) {
		t.Errorf("error status not styled as error")
	}
	if !strings.Contains(got, `<div class="status info">`) {
		t.Errorf("plain status not styled as info")
	}
}

func TestHTMLDocumentSubAgentResultRendered(t *testing.T) {
	got := HTMLDocument("t", []entry.Entry{
		entry.SubAgent{
			AgentType:   "explorer",
			Description: "map the repo",
			Result:      "found `main.go` here",
		},
	}, Theme{})

	if !strings.Contains(got, "Explorer") {
		t.Errorf("agent display name missing")
	}
	if !strings.Contains(got, "<code>main.go</code>") {
		t.Errorf("agent result not markdown-rendered:\n%s", got)
	}
}

func TestHTMLDocumentSessionSeparator(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	got := HTMLDocument("t", []entry.Entry{entry.SessionSeparator{Timestamp: ts}}, Theme{})

	if !strings.Contains(got, "<hr>") {
		t.Errorf("separator missing rule")
	}
	if !strings.Contains(got, "2025-06-01 12:00:00") {
		t.Errorf("separator missing timestamp")
	}
}

func TestHTMLDocumentThemeColors(t *testing.T) {
	theme := Theme{LinkColor: "#123456"}
	got := HTMLDocument("t", nil, theme)

	if !strings.Contains(got, "#123456") {
		t.Errorf("custom link color not embedded")
	}
	// Unset fields fall back to the dark theme.
	if !strings.Contains(got, DarkTheme().CodeBackground) {
		t.Errorf("defaults not applied for unset theme fields")
	}
}

func TestHTMLExporter(t *testing.T) {
	tr := storage.NewTranscript("styled")
	tr.Entries = entry.List{entry.Prompt{Text: "hi"}}

	exp := NewHTMLExporter(nil)
	data, err := exp.Export(tr)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(string(data), "<title>styled</title>") {
		t.Errorf("title missing from document")
	}

	if ext := exp.FileExtension(); ext != ".html" {
		t.Errorf("FileExtension = %q, want .html", ext)
	}
	if mt := exp.MimeType(); mt != "text/html" {
		t.Errorf("MimeType = %q, want text/html", mt)
	}
}
