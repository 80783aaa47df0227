// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"

	"github.com/jeranaias/rigscribe/internal/entry"
	"github.com/jeranaias/rigscribe/internal/util"
)

// =============================================================================
// COMPRESSED SUMMARY
// =============================================================================

const (
	// DefaultSummaryBudget is the character budget used when the caller
	// passes maxChars <= 0.
	DefaultSummaryBudget = 8000

	// textEntryCap is the per-entry cap applied to Text entries,
	// independent of the global budget.
	textEntryCap = 600

	// truncatedSuffix marks a Text entry cut at textEntryCap.
	truncatedSuffix = "...[truncated]"

	// summaryBanner replaces the discarded head when the whole summary
	// exceeds the budget. Must stay shorter than tailReserve.
	summaryBanner = "[...earlier conversation truncated...]\n"

	// tailReserve is how much of the budget the banner may consume: when
	// over budget, the kept tail is maxChars - tailReserve characters.
	tailReserve = 60
)

// CompressedSummary serializes entries into a size-bounded summary suitable
// for re-injection as conversation context. Thinking and Status entries are
// omitted entirely. When the built summary exceeds maxChars, the head is
// discarded: the result is a banner plus the last maxChars-60 characters, so
// the most recent context survives. Callers must not assume the head does.
func CompressedSummary(entries []entry.Entry, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultSummaryBudget
	}

	var parts []string
	for _, e := range entries {
		if line, ok := summaryEntry(e); ok {
			parts = append(parts, line)
		}
	}

	summary := strings.Join(parts, "\n")
	if util.RuneLen(summary) <= maxChars {
		return summary
	}

	keep := maxChars - tailReserve
	if keep < 0 {
		keep = 0
	}
	return summaryBanner + util.TailRunes(summary, keep)
}

// summaryEntry serializes one entry for the summary. ok=false means the
// variant is excluded from summaries altogether.
func summaryEntry(e entry.Entry) (string, bool) {
	switch v := e.(type) {
	case entry.Prompt:
		return ">>> " + strings.TrimSpace(v.Text), true

	case entry.Text:
		text := strings.TrimSpace(v.Markdown)
		if runes := []rune(text); len(runes) > textEntryCap {
			text = string(runes[:textEntryCap]) + truncatedSuffix
		}
		return text, true

	case entry.Thinking:
		return "", false // internal reasoning never re-enters context

	case entry.ToolCall:
		return "[tool: " + entry.LookupTool(v.Title).Name + "]", true

	case entry.SubAgent:
		return fmt.Sprintf("[agent %s: %s]", entry.LookupSubAgent(v.AgentType).Name, v.Description), true

	case entry.ContextFiles:
		names := make([]string, 0, len(v.Files))
		for _, f := range v.Files {
			names = append(names, f.DisplayName)
		}
		return fmt.Sprintf("[context: %d files: %s]", len(v.Files), strings.Join(names, ", ")), true

	case entry.Status:
		return "", false // transient lines carry no reusable context

	case entry.SessionSeparator:
		return "---", true

	default:
		return "", false
	}
}
