// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package entry

import "time"

// =============================================================================
// ENTRY INTERFACE
// =============================================================================

// Kind identifies an entry variant. It doubles as the "type" discriminator in
// the JSON envelope.
type Kind string

const (
	KindPrompt           Kind = "prompt"
	KindText             Kind = "text"
	KindThinking         Kind = "thinking"
	KindToolCall         Kind = "tool_call"
	KindSubAgent         Kind = "sub_agent"
	KindContextFiles     Kind = "context_files"
	KindStatus           Kind = "status"
	KindSessionSeparator Kind = "session_separator"
)

// Entry is one rendered unit of a chat transcript. Values are immutable once
// constructed and are passed by value to the exporters.
//
// The variant set is sealed: only the types in this package implement Entry.
type Entry interface {
	Kind() Kind
	sealed()
}

// ErrorIcon is the status icon that marks an error line. Exporters compare a
// Status entry's icon against it verbatim to pick the error styling.
const ErrorIcon = "✖"

// =============================================================================
// VARIANTS
// =============================================================================

// Prompt is a user-submitted message.
type Prompt struct {
	Text string `json:"text"`
}

// Text is an agent response body in raw markdown.
type Text struct {
	Markdown string `json:"markdown"`
}

// Thinking is the agent's internal reasoning in raw markdown.
type Thinking struct {
	Markdown string `json:"markdown"`
}

// ToolCall records one tool invocation. Title may carry a dash-suffixed
// qualifier ("search-v2"); display lookup handles the fallback. Arguments is
// the serialized argument payload and may be empty.
type ToolCall struct {
	Title     string `json:"title"`
	Arguments string `json:"arguments,omitempty"`
}

// SubAgent records a delegation to a named sub-agent. Prompt and Result are
// optional; a SubAgent without a result renders as a one-line description.
type SubAgent struct {
	AgentType   string `json:"agent_type"`
	Description string `json:"description"`
	Prompt      string `json:"prompt,omitempty"`
	Result      string `json:"result,omitempty"`
}

// ContextFile is one attached file: how it is shown, and where it lives.
type ContextFile struct {
	DisplayName  string `json:"display_name"`
	AbsolutePath string `json:"absolute_path"`
}

// ContextFiles lists the files attached as context, in attachment order.
type ContextFiles struct {
	Files []ContextFile `json:"files"`
}

// Status is a transient informational or error line.
type Status struct {
	Icon    string `json:"icon"`
	Message string `json:"message"`
}

// SessionSeparator marks a session boundary in resumed history.
type SessionSeparator struct {
	Timestamp time.Time `json:"timestamp"`
}

func (Prompt) Kind() Kind           { return KindPrompt }
func (Text) Kind() Kind             { return KindText }
func (Thinking) Kind() Kind         { return KindThinking }
func (ToolCall) Kind() Kind         { return KindToolCall }
func (SubAgent) Kind() Kind         { return KindSubAgent }
func (ContextFiles) Kind() Kind     { return KindContextFiles }
func (Status) Kind() Kind           { return KindStatus }
func (SessionSeparator) Kind() Kind { return KindSessionSeparator }

func (Prompt) sealed()           {}
func (Text) sealed()             {}
func (Thinking) sealed()         {}
func (ToolCall) sealed()         {}
func (SubAgent) sealed()         {}
func (ContextFiles) sealed()     {}
func (Status) sealed()           {}
func (SessionSeparator) sealed() {}
