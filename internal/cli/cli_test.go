// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/jeranaias/rigscribe/internal/config"
	"github.com/jeranaias/rigscribe/internal/export"
	"github.com/jeranaias/rigscribe/internal/storage"
)

func TestParseGlobalFlags(t *testing.T) {
	remaining, args := parseGlobalFlags([]string{"-q", "export", "1", "--verbose"})

	if !args.Quiet {
		t.Error("Quiet = false, want true")
	}
	if !args.Verbose {
		t.Error("Verbose = false, want true")
	}
	if len(remaining) != 2 || remaining[0] != "export" || remaining[1] != "1" {
		t.Errorf("remaining = %v, want [export 1]", remaining)
	}
}

func TestParseGlobalFlagsNone(t *testing.T) {
	remaining, args := parseGlobalFlags([]string{"list"})

	if args.Quiet || args.Verbose {
		t.Error("expected no global flags set")
	}
	if len(remaining) != 1 || remaining[0] != "list" {
		t.Errorf("remaining = %v, want [list]", remaining)
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"usage", &UsageError{Command: "export", Message: "bad flag"}, ExitUsageError},
		{"not found", storage.ErrTranscriptNotFound, ExitNotFoundError},
		{"wrapped not found", &CommandError{Command: "export", Reason: "resolve", Err: storage.ErrTranscriptNotFound}, ExitNotFoundError},
		{"generic", errors.New("boom"), ExitGeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestResolveThemeAppliesOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.Theme.LinkColor = "#ff00ff"
	cfg.Theme.FontSize = "16px"
	config.SetGlobal(cfg)
	defer config.ResetGlobalForTesting()

	theme := resolveTheme("light")
	if theme.LinkColor != "#ff00ff" {
		t.Errorf("LinkColor = %q, want override %q", theme.LinkColor, "#ff00ff")
	}
	if theme.FontSize != "16px" {
		t.Errorf("FontSize = %q, want %q", theme.FontSize, "16px")
	}
	// Unoverridden fields come from the light palette.
	if theme.CodeBackground != export.LightTheme().CodeBackground {
		t.Errorf("CodeBackground = %q, want light palette value", theme.CodeBackground)
	}
}

func TestResolveThemeDefaultsToDark(t *testing.T) {
	config.SetGlobal(config.Default())
	defer config.ResetGlobalForTesting()

	theme := resolveTheme("dark")
	if theme.CodeBackground != export.DarkTheme().CodeBackground {
		t.Errorf("CodeBackground = %q, want dark palette value", theme.CodeBackground)
	}
}

func TestExporterFor(t *testing.T) {
	opts := export.DefaultOptions()

	for format, ext := range map[string]string{"html": ".html", "text": ".txt", "json": ".json"} {
		exp, err := exporterFor(format, opts)
		if err != nil {
			t.Fatalf("exporterFor(%q) error: %v", format, err)
		}
		if got := exp.FileExtension(); got != ext {
			t.Errorf("exporterFor(%q).FileExtension() = %q, want %q", format, got, ext)
		}
	}

	if _, err := exporterFor("pdf", opts); err == nil {
		t.Error("exporterFor(pdf) error = nil, want usage error")
	}
}

func TestResolveTranscriptByIndexAndID(t *testing.T) {
	config.SetGlobal(config.Default())
	defer config.ResetGlobalForTesting()

	store, err := storage.NewStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	first := storage.NewTranscript("first")
	if _, err := store.Save(first); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	second := storage.NewTranscript("second")
	if _, err := store.Save(second); err != nil {
		t.Fatal(err)
	}

	// Index 1 is the most recent transcript.
	got, err := resolveTranscript(store, "1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "second" {
		t.Errorf("resolveTranscript(1).Title = %q, want %q", got.Title, "second")
	}

	got, err = resolveTranscript(store, first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "first" {
		t.Errorf("resolveTranscript(id).Title = %q, want %q", got.Title, "first")
	}

	if _, err := resolveTranscript(store, "0"); err == nil {
		t.Error("resolveTranscript(0) error = nil, want usage error")
	}
	if _, err := resolveTranscript(store, "tr_missing"); !errors.Is(err, storage.ErrTranscriptNotFound) {
		t.Errorf("resolveTranscript(missing) error = %v, want ErrTranscriptNotFound", err)
	}
}

func TestHighlightSnippet(t *testing.T) {
	// With colors disabled the style is a no-op, so markers just unwrap.
	got := highlightSnippet("found the [parser] bug in [markdown]")
	want := "found the parser bug in markdown"
	if got != want {
		t.Errorf("highlightSnippet = %q, want %q", got, want)
	}
}

func TestHighlightArguments(t *testing.T) {
	// With colors disabled, highlighting is a pass-through, so valid JSON
	// comes back pretty-printed and nothing else.
	got := highlightArguments(`{"path":"main.go","line":12}`)
	want := "{\n  \"path\": \"main.go\",\n  \"line\": 12\n}"
	if got != want {
		t.Errorf("highlightArguments JSON = %q, want %q", got, want)
	}

	// Non-JSON arguments pass through untouched.
	if got := highlightArguments("not json at all"); got != "not json at all" {
		t.Errorf("highlightArguments passthrough = %q", got)
	}
}

func TestFormatElapsed(t *testing.T) {
	if got := FormatElapsed(1500 * time.Microsecond); got != "2ms" {
		t.Errorf("FormatElapsed(1.5ms) = %q, want 2ms", got)
	}
	if got := FormatElapsed(2*time.Second + 349*time.Millisecond); got != "2.35s" {
		t.Errorf("FormatElapsed(2.349s) = %q, want 2.35s", got)
	}
}
