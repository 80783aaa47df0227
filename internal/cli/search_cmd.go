// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// search_cmd.go - The search command: full-text search over transcripts.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/rigscribe/internal/config"
	"github.com/jeranaias/rigscribe/internal/entry"
	"github.com/jeranaias/rigscribe/internal/index"
)

// HandleSearch searches the full-text index. With a query argument it
// prints matches and exits; without one (on a TTY) it starts an
// interactive search loop with history.
//
// Usage: rigscribe search [query...] [--kind KIND] [--transcript ID] [--limit N] [--group]
func HandleSearch(args Args) error {
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

	opts := index.DefaultSearchOptions()
	opts.MaxResults = parser.FlagIntOrDefault("limit", opts.MaxResults)
	opts.TranscriptID = parser.Flag("transcript")
	if kind := parser.Flag("kind"); kind != "" {
		opts.Kinds = []entry.Kind{entry.Kind(kind)}
	}
	group := parser.BoolFlag("group")

	query := strings.Join(parser.PositionalFrom(0), " ")
	if query != "" {
		return runSearch(idx, query, opts, group)
	}

	if !IsTTY() {
		return &UsageError{Command: "search", Message: "a query is required when stdin is not a terminal"}
	}
	return interactiveSearch(idx, opts, group)
}

// =============================================================================
// ONE-SHOT SEARCH
// =============================================================================

func runSearch(idx *index.TranscriptIndex, query string, opts *index.SearchOptions, group bool) error {
	var results []index.SearchResult
	var err error
	if group {
		results, err = idx.SearchTranscripts(query, opts.MaxResults)
	} else {
		results, err = idx.Search(query, opts)
	}
	if err != nil {
		if errors.Is(err, index.ErrNotIndexed) {
			return &CommandError{Command: "search", Reason: "no index yet, run `rigscribe index` first", Err: err}
		}
		return &CommandError{Command: "search", Reason: "query index", Err: err}
	}

	if len(results) == 0 {
		fmt.Println("No matches.")
		return nil
	}

	for _, r := range results {
		printResult(r, group)
	}
	fmt.Println(MutedStyle.Render(fmt.Sprintf("%d result(s)", len(results))))
	return nil
}

func printResult(r index.SearchResult, group bool) {
	title := r.Title
	if title == "" {
		title = r.TranscriptID
	}
	if group {
		fmt.Printf("%s  %s\n", TitleStyle.Render(title), IDStyle.Render(r.TranscriptID))
	} else {
		fmt.Printf("%s  %s  %s\n",
			TitleStyle.Render(title),
			IDStyle.Render(fmt.Sprintf("%s#%d", r.TranscriptID, r.Seq)),
			MutedStyle.Render(string(r.Kind)),
		)
	}
	if r.Snippet != "" {
		fmt.Printf("  %s\n", highlightSnippet(r.Snippet))
	}
}

// highlightSnippet styles the [match] markers the index wraps hits in.
func highlightSnippet(snippet string) string {
	var sb strings.Builder
	rest := snippet
	for {
		open := strings.Index(rest, "[")
		if open < 0 {
			sb.WriteString(rest)
			break
		}
		end := strings.Index(rest[open:], "]")
		if end < 0 {
			sb.WriteString(rest)
			break
		}
		sb.WriteString(rest[:open])
		sb.WriteString(MatchStyle.Render(rest[open+1 : open+end]))
		rest = rest[open+end+1:]
	}
	return sb.String()
}

// =============================================================================
// INTERACTIVE SEARCH
// =============================================================================

// historyFile returns the search history path inside the config directory.
func historyFile() string {
	dir, err := config.ConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "search_history")
}

func interactiveSearch(idx *index.TranscriptIndex, opts *index.SearchOptions, group bool) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := historyFile()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	fmt.Println(MutedStyle.Render("Interactive search. Empty line or Ctrl-C to quit."))
	for {
		query, err := line.Prompt("search> ")
		if err != nil {
			// Ctrl-C or Ctrl-D ends the session.
			break
		}
		query = strings.TrimSpace(query)
		if query == "" {
			break
		}
		line.AppendHistory(query)

		if err := runSearch(idx, query, opts, group); err != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render(err.Error()))
		}
		fmt.Println()
	}

	if histPath != "" {
		if f, err := os.OpenFile(histPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}
	return nil
}
