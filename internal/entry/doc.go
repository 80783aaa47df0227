// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package entry defines the typed units of a chat transcript.
//
// A transcript is an ordered sequence of Entry values. The variant set is
// closed: every exporter type-switches over all variants, and the unexported
// marker method keeps other packages from adding new ones.
//
// # Variants
//
//   - Prompt: user-submitted message
//   - Text: agent response body (markdown)
//   - Thinking: agent internal reasoning (markdown, collapsible in HTML)
//   - ToolCall: tool invocation with optional serialized arguments
//   - SubAgent: delegation to a named sub-agent
//   - ContextFiles: files attached as context
//   - Status: transient informational or error line
//   - SessionSeparator: boundary between sessions in resumed history
//
// The package also carries the read-only display-metadata tables mapping tool
// titles and agent types to human-readable names, and a JSON envelope codec so
// entry sequences round-trip through the history store.
package entry
