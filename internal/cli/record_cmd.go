// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// record_cmd.go - The record command: capture prompts into a transcript.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/rigscribe/internal/config"
	"github.com/jeranaias/rigscribe/internal/entry"
	"github.com/jeranaias/rigscribe/internal/session"
	"github.com/jeranaias/rigscribe/internal/storage"
)

// HandleRecord starts or resumes a recording session and appends one Prompt
// entry per input line. On a TTY it runs an interactive loop; with piped
// stdin it consumes lines until EOF, so transcripts can be scripted.
// Resuming marks the boundary with a SessionSeparator entry.
//
// Usage: rigscribe record [title] [--resume id|index]
func HandleRecord(args Args) error {
	cfg := config.Global()
	parser := NewArgParser(args.Raw)

	store, err := openStore()
	if err != nil {
		return err
	}

	mgr := newSessionManager(store, cfg.Storage.AutoSave)
	mgr.SetErrorCallback(func(err error) {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("auto-save: "+err.Error()))
	})

	if ref := parser.Flag("resume"); ref != "" {
		t, err := resolveTranscript(store, ref)
		if err != nil {
			return fmt.Errorf("resolve transcript: %w", err)
		}
		if _, err := mgr.Resume(t.ID); err != nil {
			return &CommandError{Command: "record", Reason: "resume session", Err: err}
		}
		if !args.Quiet {
			fmt.Printf("%s %s\n", SuccessStyle.Render("Resumed:"), t.ID)
		}
	} else {
		if _, err := mgr.Start(parser.Positional(0)); err != nil {
			return &CommandError{Command: "record", Reason: "start session", Err: err}
		}
	}

	if IsTTY() {
		err = recordInteractive(mgr)
	} else {
		err = recordFromReader(mgr, os.Stdin)
	}
	if err != nil {
		return err
	}

	active := mgr.Active()
	if err := mgr.Close(); err != nil {
		return &CommandError{Command: "record", Reason: "save session", Err: err}
	}
	if !args.Quiet && active != nil {
		fmt.Printf("%s %s (%d entries)\n", SuccessStyle.Render("Saved:"), active.ID, len(active.Entries))
	}
	return nil
}

// newSessionManager builds a manager honoring the auto-save config knob.
func newSessionManager(store *storage.Store, autoSave bool) *session.Manager {
	mgrCfg := session.DefaultConfig()
	mgrCfg.AutoSaveEnabled = autoSave
	return session.NewManager(store, mgrCfg)
}

// recordFromReader appends one Prompt per non-empty line until EOF,
// letting the manager auto-save on its interval as entries arrive.
func recordFromReader(mgr *session.Manager, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := mgr.Append(entry.Prompt{Text: line}); err != nil {
			return &CommandError{Command: "record", Reason: "append entry", Err: err}
		}
		mgr.Check()
	}
	if err := scanner.Err(); err != nil {
		return &CommandError{Command: "record", Reason: "read input", Err: err}
	}
	return nil
}

// recordInteractive reads prompts with line editing until an empty line
// or Ctrl-C/Ctrl-D ends the session.
func recordInteractive(mgr *session.Manager) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Println(MutedStyle.Render("Recording. Empty line or Ctrl-C to finish."))
	for {
		text, err := line.Prompt("> ")
		if err != nil {
			break
		}
		text = strings.TrimSpace(text)
		if text == "" {
			break
		}
		line.AppendHistory(text)
		if err := mgr.Append(entry.Prompt{Text: text}); err != nil {
			return &CommandError{Command: "record", Reason: "append entry", Err: err}
		}
		mgr.Check()
	}
	return nil
}
