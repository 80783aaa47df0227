// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// list_cmd.go - The list command: show saved transcripts.
package cli

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

const listTitleWidth = 40

// HandleList prints saved transcripts, most recent first. Each line shows
// the numeric index accepted by export/preview/summary, the title, the ID,
// and the entry count.
//
// Usage: rigscribe list
func HandleList(args Args) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	metas, err := store.List()
	if err != nil {
		return &CommandError{Command: "list", Reason: "read transcripts", Err: err}
	}

	if len(metas) == 0 {
		fmt.Println("No saved transcripts.")
		return nil
	}

	for i, m := range metas {
		title := m.Title
		if title == "" {
			title = "(untitled)"
		}
		// Pad on display width so CJK titles keep columns aligned.
		title = runewidth.Truncate(title, listTitleWidth, "…")
		title = runewidth.FillRight(title, listTitleWidth)

		fmt.Printf("%3d  %s  %s  %s  %s\n",
			i+1,
			TitleStyle.Render(title),
			IDStyle.Render(m.ID),
			MutedStyle.Render(m.UpdatedAt.Format("2006-01-02 15:04")),
			MutedStyle.Render(fmt.Sprintf("%d entries", m.EntryCount)),
		)
		if args.Verbose && m.Preview != "" {
			fmt.Printf("     %s\n", MutedStyle.Render(m.Preview))
		}
	}
	return nil
}
