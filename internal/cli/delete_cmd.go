// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// delete_cmd.go - The delete command: remove a saved transcript.
package cli

import (
	"fmt"

	"github.com/jeranaias/rigscribe/internal/config"
)

// HandleDelete deletes a transcript by ID or list index. Requires --confirm
// on a non-interactive stream; prompts otherwise.
//
// Usage: rigscribe delete <id|index> [--confirm]
func HandleDelete(args Args) error {
	parser := NewArgParser(args.Raw)

	ref := parser.Positional(0)
	if ref == "" {
		return &UsageError{Command: "delete", Message: "transcript ID or index required"}
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	t, err := resolveTranscript(store, ref)
	if err != nil {
		return fmt.Errorf("resolve transcript: %w", err)
	}

	if !parser.BoolFlag("confirm") {
		if !IsTTY() {
			return &UsageError{Command: "delete", Message: "pass --confirm to delete without a prompt"}
		}
		fmt.Printf("Delete %q (%s)? [y/N] ", t.Title, t.ID)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := store.Delete(t.ID); err != nil {
		return &CommandError{Command: "delete", Reason: "remove transcript", Err: err}
	}

	// Best effort: drop it from the index too. Deletion already succeeded,
	// and the watcher or the next rebuild will reconcile a stale index.
	if config.Global().Index.Enabled {
		if idx, idxErr := openIndex(store, false); idxErr == nil {
			idx.Remove(t.ID)
			idx.Close()
		}
	}

	if !args.Quiet {
		fmt.Printf("%s %s\n", SuccessStyle.Render("Deleted:"), t.ID)
	}
	return nil
}
