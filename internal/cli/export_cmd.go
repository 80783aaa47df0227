// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// export_cmd.go - The export command: write a transcript to a file.
package cli

import (
	"fmt"

	"github.com/jeranaias/rigscribe/internal/config"
	"github.com/jeranaias/rigscribe/internal/export"
)

// HandleExport exports a transcript to html, text, or json.
//
// Usage: rigscribe export [id|index] [--format html|text|json] [--output DIR] [--theme dark|light|auto] [--open]
func HandleExport(args Args) error {
	parser := NewArgParser(args.Raw)
	cfg := config.Global()

	format := parser.FlagOrDefault("format", cfg.Export.Format)
	outputDir := parser.FlagOrDefault("output", cfg.Export.OutputDir)
	if outputDir == "" {
		outputDir = "."
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	t, err := resolveTranscript(store, parser.Positional(0))
	if err != nil {
		return fmt.Errorf("resolve transcript: %w", err)
	}

	opts := &export.Options{
		OutputDir:       outputDir,
		OpenAfterExport: parser.BoolFlag("open") || cfg.Export.OpenAfterExport,
		Theme:           resolveTheme(parser.Flag("theme")),
	}

	exporter, err := exporterFor(format, opts)
	if err != nil {
		return err
	}

	path, err := export.ExportToFile(t, exporter, opts)
	if err != nil {
		return &CommandError{Command: "export", Reason: "write transcript", Err: err}
	}

	if !args.Quiet {
		fmt.Printf("%s %s\n", SuccessStyle.Render("Exported:"), path)
	}
	return nil
}
