// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// index_cmd.go - The index command: rebuild the full-text search index.
package cli

import (
	"context"
	"fmt"
	"time"
)

// HandleIndex rebuilds the search index from all saved transcripts.
//
// Usage: rigscribe index [--stats]
func HandleIndex(args Args) error {
	parser := NewArgParser(args.Raw)

	store, err := openStore()
	if err != nil {
		return err
	}

	idx, err := openIndex(store, false)
	if err != nil {
		return err
	}
	defer idx.Close()

	if parser.BoolFlag("stats") {
		stats := idx.Stats()
		fmt.Printf("Transcripts:  %d\n", stats.TranscriptCount)
		fmt.Printf("Entries:      %d\n", stats.EntryCount)
		fmt.Printf("Database:     %d bytes\n", stats.DatabaseSize)
		if !stats.LastIndexed.IsZero() {
			fmt.Printf("Last indexed: %s\n", stats.LastIndexed.Format(time.DateTime))
		}
		return nil
	}

	start := time.Now()
	if err := idx.Index(context.Background()); err != nil {
		return &CommandError{Command: "index", Reason: "rebuild index", Err: err}
	}

	if !args.Quiet {
		stats := idx.Stats()
		fmt.Printf("%s %d transcripts, %d entries in %s\n",
			SuccessStyle.Render("Indexed:"),
			stats.TranscriptCount,
			stats.EntryCount,
			FormatElapsed(time.Since(start)),
		)
	}
	return nil
}

// FormatElapsed formats a duration for status lines, trimming
// sub-millisecond noise.
func FormatElapsed(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(10 * time.Millisecond).String()
}
