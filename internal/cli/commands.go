// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// commands.go - Shared helpers for command handlers.
package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jeranaias/rigscribe/internal/config"
	"github.com/jeranaias/rigscribe/internal/export"
	"github.com/jeranaias/rigscribe/internal/index"
	"github.com/jeranaias/rigscribe/internal/storage"
)

// =============================================================================
// SHARED SETUP
// =============================================================================

// openStore creates the transcript store from global config.
func openStore() (*storage.Store, error) {
	cfg := config.Global()

	var store *storage.Store
	var err error
	if cfg.Storage.BaseDir != "" {
		store, err = storage.NewStoreWithDir(cfg.Storage.BaseDir)
	} else {
		store, err = storage.NewStore()
	}
	if err != nil {
		return nil, fmt.Errorf("open transcript store: %w", err)
	}

	store.MaxTranscripts = cfg.Storage.MaxTranscripts
	return store, nil
}

// openIndex creates the search index for the given store from global config.
// Watching is off; callers that need live updates enable it explicitly.
func openIndex(store *storage.Store, enableWatch bool) (*index.TranscriptIndex, error) {
	cfg := config.Global()
	if !cfg.Index.Enabled {
		return nil, fmt.Errorf("search index is disabled in configuration")
	}

	idxCfg := index.DefaultConfig(store)
	if cfg.Index.Path != "" {
		idxCfg.DatabasePath = cfg.Index.Path
	}
	if cfg.Index.WatchDebounceMs > 0 {
		idxCfg.WatchDebounce = time.Duration(cfg.Index.WatchDebounceMs) * time.Millisecond
	}
	idxCfg.EnableWatch = enableWatch

	return index.NewTranscriptIndex(store, idxCfg)
}

// resolveTranscript loads a transcript by ID or by numeric list position
// (1 = most recent, matching the numbering shown by `rigscribe list`).
func resolveTranscript(store *storage.Store, ref string) (*storage.Transcript, error) {
	if ref == "" {
		// No ref: most recent transcript.
		return store.LoadByIndex(0)
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 {
			return nil, &UsageError{Command: "transcript", Message: fmt.Sprintf("index must be >= 1, got %d", n)}
		}
		return store.LoadByIndex(n - 1)
	}

	return store.Load(ref)
}

// resolveTheme maps a theme name to an export theme, applying config
// overrides for fonts and colors. "auto" detects the terminal background.
func resolveTheme(name string) export.Theme {
	cfg := config.Global()
	if name == "" {
		name = cfg.Theme.Name
	}

	var theme export.Theme
	switch name {
	case "light":
		theme = export.LightTheme()
	case "auto":
		if HasDarkBackground() {
			theme = export.DarkTheme()
		} else {
			theme = export.LightTheme()
		}
	default:
		theme = export.DarkTheme()
	}

	if cfg.Theme.FontFamily != "" {
		theme.FontFamily = cfg.Theme.FontFamily
	}
	if cfg.Theme.FontSize != "" {
		theme.FontSize = cfg.Theme.FontSize
	}
	if cfg.Theme.LinkColor != "" {
		theme.LinkColor = cfg.Theme.LinkColor
	}
	if cfg.Theme.CodeBackground != "" {
		theme.CodeBackground = cfg.Theme.CodeBackground
	}
	return theme
}

// exporterFor returns the exporter for a format name.
func exporterFor(format string, opts *export.Options) (export.Exporter, error) {
	switch format {
	case "html":
		return export.NewHTMLExporter(opts), nil
	case "text", "txt":
		return export.NewPlainTextExporter(opts), nil
	case "json":
		return export.NewJSONExporter(opts), nil
	default:
		return nil, &UsageError{Command: "export", Message: fmt.Sprintf("unknown format %q (want html, text, or json)", format)}
	}
}
