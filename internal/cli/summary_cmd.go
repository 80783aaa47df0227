// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// summary_cmd.go - The summary command: compressed plain-text digest.
package cli

import (
	"fmt"

	"github.com/jeranaias/rigscribe/internal/config"
	"github.com/jeranaias/rigscribe/internal/export"
)

// HandleSummary prints a compressed summary of a transcript to stdout.
// The summary is sized for pasting into a context-limited consumer.
//
// Usage: rigscribe summary [id|index] [--max-chars N]
func HandleSummary(args Args) error {
	parser := NewArgParser(args.Raw)
	cfg := config.Global()

	store, err := openStore()
	if err != nil {
		return err
	}

	t, err := resolveTranscript(store, parser.Positional(0))
	if err != nil {
		return fmt.Errorf("resolve transcript: %w", err)
	}

	maxChars := parser.FlagIntOrDefault("max-chars", cfg.Export.SummaryBudget)
	fmt.Println(export.CompressedSummary(t.Entries, maxChars))
	return nil
}
