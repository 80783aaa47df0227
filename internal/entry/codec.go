// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package entry

import (
	"encoding/json"
	"fmt"
	"time"
)

// =============================================================================
// JSON ENVELOPE CODEC
// =============================================================================

// List is an ordered entry sequence that round-trips through JSON using a
// {"type": ..., ...} envelope per entry. It is what the history store embeds.
type List []Entry

// envelope is the flattened wire form of every variant. Only the fields of
// the variant named by Type are populated.
type envelope struct {
	Type Kind `json:"type"`

	// Prompt
	Text string `json:"text,omitempty"`

	// Text / Thinking
	Markdown string `json:"markdown,omitempty"`

	// ToolCall
	Title     string `json:"title,omitempty"`
	Arguments string `json:"arguments,omitempty"`

	// SubAgent
	AgentType   string `json:"agent_type,omitempty"`
	Description string `json:"description,omitempty"`
	Prompt      string `json:"prompt,omitempty"`
	Result      string `json:"result,omitempty"`

	// ContextFiles
	Files []ContextFile `json:"files,omitempty"`

	// Status
	Icon    string `json:"icon,omitempty"`
	Message string `json:"message,omitempty"`

	// SessionSeparator
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (l List) MarshalJSON() ([]byte, error) {
	envelopes := make([]envelope, 0, len(l))
	for _, e := range l {
		env := envelope{Type: e.Kind()}
		switch v := e.(type) {
		case Prompt:
			env.Text = v.Text
		case Text:
			env.Markdown = v.Markdown
		case Thinking:
			env.Markdown = v.Markdown
		case ToolCall:
			env.Title = v.Title
			env.Arguments = v.Arguments
		case SubAgent:
			env.AgentType = v.AgentType
			env.Description = v.Description
			env.Prompt = v.Prompt
			env.Result = v.Result
		case ContextFiles:
			env.Files = v.Files
		case Status:
			env.Icon = v.Icon
			env.Message = v.Message
		case SessionSeparator:
			env.Timestamp = v.Timestamp
		}
		envelopes = append(envelopes, env)
	}
	return json.Marshal(envelopes)
}

// UnmarshalJSON implements json.Unmarshaler. Envelopes with an unknown type
// are rejected; a transcript written by a newer version should fail loudly
// rather than silently losing entries.
func (l *List) UnmarshalJSON(data []byte) error {
	var envelopes []envelope
	if err := json.Unmarshal(data, &envelopes); err != nil {
		return err
	}

	entries := make(List, 0, len(envelopes))
	for _, env := range envelopes {
		switch env.Type {
		case KindPrompt:
			entries = append(entries, Prompt{Text: env.Text})
		case KindText:
			entries = append(entries, Text{Markdown: env.Markdown})
		case KindThinking:
			entries = append(entries, Thinking{Markdown: env.Markdown})
		case KindToolCall:
			entries = append(entries, ToolCall{Title: env.Title, Arguments: env.Arguments})
		case KindSubAgent:
			entries = append(entries, SubAgent{
				AgentType:   env.AgentType,
				Description: env.Description,
				Prompt:      env.Prompt,
				Result:      env.Result,
			})
		case KindContextFiles:
			entries = append(entries, ContextFiles{Files: env.Files})
		case KindStatus:
			entries = append(entries, Status{Icon: env.Icon, Message: env.Message})
		case KindSessionSeparator:
			entries = append(entries, SessionSeparator{Timestamp: env.Timestamp})
		default:
			return fmt.Errorf("unknown entry type %q", env.Type)
		}
	}

	*l = entries
	return nil
}
