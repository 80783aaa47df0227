// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// watch_cmd.go - The watch command: keep the index (and optionally a
// directory of exports) current while transcripts change on disk.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jeranaias/rigscribe/internal/config"
	"github.com/jeranaias/rigscribe/internal/export"
	"github.com/jeranaias/rigscribe/internal/storage"
)

// watchPollInterval is how often the re-exporter diffs the store.
const watchPollInterval = 2 * time.Second

// HandleWatch rebuilds the index, then watches the transcript directory
// and incrementally reindexes transcripts as they are saved or deleted.
// With --export, changed transcripts are also re-exported to the output
// directory. Runs until interrupted.
//
// Usage: rigscribe watch [--export] [--format html|text|json] [--output DIR]
func HandleWatch(args Args) error {
	parser := NewArgParser(args.Raw)
	cfg := config.Global()

	store, err := openStore()
	if err != nil {
		return err
	}

	idx, err := openIndex(store, true)
	if err != nil {
		return err
	}
	defer idx.Close()

	// Initial full build; the watcher starts once this completes.
	if err := idx.Index(context.Background()); err != nil {
		return &CommandError{Command: "watch", Reason: "initial index build", Err: err}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reExport := parser.BoolFlag("export") || parser.Flag("format") != "" || parser.Flag("output") != ""
	if reExport {
		format := parser.FlagOrDefault("format", cfg.Export.Format)
		outputDir := parser.FlagOrDefault("output", cfg.Export.OutputDir)
		if outputDir == "" {
			outputDir = "."
		}
		opts := &export.Options{
			OutputDir: outputDir,
			Theme:     resolveTheme(parser.Flag("theme")),
		}
		exporter, err := exporterFor(format, opts)
		if err != nil {
			return err
		}
		go reExportLoop(ctx, store, exporter, opts, args.Quiet)
	}

	if !args.Quiet {
		stats := idx.Stats()
		fmt.Printf("%s %d transcripts indexed, watching %s\n",
			SuccessStyle.Render("Watching:"),
			stats.TranscriptCount,
			store.BaseDir,
		)
		fmt.Println(MutedStyle.Render("Press Ctrl-C to stop."))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	if !args.Quiet {
		fmt.Println("\nStopped.")
	}
	return nil
}

// reExportLoop polls the store and re-exports transcripts whose UpdatedAt
// moved since the last pass. The first pass only records timestamps, so
// starting the watcher does not re-export the whole store.
func reExportLoop(ctx context.Context, store *storage.Store, exporter export.Exporter, opts *export.Options, quiet bool) {
	seen := make(map[string]time.Time)

	metas, err := store.List()
	if err == nil {
		for _, m := range metas {
			seen[m.ID] = m.UpdatedAt
		}
	}

	ticker := time.NewTicker(watchPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		metas, err := store.List()
		if err != nil {
			continue
		}
		for _, m := range metas {
			last, ok := seen[m.ID]
			if ok && !m.UpdatedAt.After(last) {
				continue
			}
			seen[m.ID] = m.UpdatedAt

			t, err := store.Load(m.ID)
			if err != nil {
				continue
			}
			path, err := export.ExportToFile(t, exporter, opts)
			if err != nil {
				fmt.Fprintln(os.Stderr, ErrorStyle.Render(fmt.Sprintf("re-export %s: %v", m.ID, err)))
				continue
			}
			if !quiet {
				fmt.Printf("%s %s\n", SuccessStyle.Render("Re-exported:"), path)
			}
		}
	}
}
