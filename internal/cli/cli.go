// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for rigscribe.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdList Command = iota
	CmdRecord
	CmdExport
	CmdSummary
	CmdPreview
	CmdSearch
	CmdIndex
	CmdWatch
	CmdDelete
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool

	// Command-specific
	Subcommand string

	// Raw args (remaining after global flag parsing)
	Raw []string
}

const usageText = `rigscribe - chat transcript rendering and export

Rigscribe stores chat transcripts and exports them as styled HTML,
plain text, JSON, or size-bounded summaries.

Usage:
  rigscribe list                     List stored transcripts
  rigscribe record [title]           Record prompts into a new transcript
                                     (piped stdin appends one prompt per line)
    --resume <id|index>              Append to an existing transcript
  rigscribe export <id|index>        Export a transcript
    --format html|text|json          Export format (default from config)
    --output DIR                     Output directory (default from config)
    --theme dark|light|auto          HTML theme
    --open                           Open the exported file afterwards
  rigscribe summary <id|index>       Print a compressed summary to stdout
    --max-chars N                    Character budget (default 8000)
  rigscribe preview <id|index>       Render a transcript in the terminal
    --plain                          Skip markdown rendering and color
  rigscribe search [query]           Full-text search across transcripts
                                     (interactive prompt when no query given)
    --limit N                        Maximum results (default 50)
    --kind KIND                      Only match one entry kind
    --transcript ID                  Restrict to one transcript
    --group                          One result per transcript
  rigscribe index [--stats]          Rebuild the search index
  rigscribe watch                    Keep the search index current as
                                     transcripts are saved or deleted
    --export                         Also re-export transcripts on change
    --format html|text|json          Re-export format (implies --export)
    --output DIR                     Re-export directory (implies --export)
  rigscribe delete <id|index>        Delete a transcript
    --confirm                        Skip the confirmation prompt
  rigscribe config [init] [--path]   Show or initialize configuration
  rigscribe version                  Show version information
  rigscribe help                     Show this help

Global Flags:
  -q, --quiet     Minimal output
  --verbose       Debug output

Examples:
  rigscribe list                       List transcripts, newest first
  rigscribe record "debug notes"       Capture prompts interactively
  rigscribe export 1 --format html     Export the most recent transcript
  rigscribe export tr_9f2c --open      Export by ID and open the result
  rigscribe summary 1 --max-chars 4000 Compressed summary for re-injection
  rigscribe preview 1                  Read a transcript in the terminal
  rigscribe search "parser bug"        Find transcripts mentioning a topic
  rigscribe watch --export             Keep index and HTML exports in sync

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("rigscribe version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
	fmt.Printf("  Go version: %s\n", runtime.Version())
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	args := os.Args[1:]

	remaining, parsedArgs := parseGlobalFlags(args)

	// No arguments defaults to the transcript list
	if len(remaining) == 0 {
		return CmdList, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining
	if len(remaining) > 0 {
		parsedArgs.Subcommand = remaining[0]
	}

	switch cmd {
	case "list", "ls", "l":
		return CmdList, parsedArgs

	case "record", "rec":
		return CmdRecord, parsedArgs

	case "export", "e":
		return CmdExport, parsedArgs

	case "summary", "summarize":
		return CmdSummary, parsedArgs

	case "preview", "show", "view":
		return CmdPreview, parsedArgs

	case "search", "find":
		return CmdSearch, parsedArgs

	case "index", "reindex":
		return CmdIndex, parsedArgs

	case "watch":
		return CmdWatch, parsedArgs

	case "delete", "rm":
		return CmdDelete, parsedArgs

	case "config":
		return CmdConfig, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		return CmdHelp, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	for _, arg := range args {
		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "--verbose":
			parsedArgs.Verbose = true
		default:
			remaining = append(remaining, arg)
		}
	}

	return remaining, parsedArgs
}

// HandleVersion handles the "version" command.
func HandleVersion() {
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
