// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared lipgloss styles for terminal output.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// COLOR PALETTE
// =============================================================================

var (
	colorPrimary = lipgloss.Color("#7aa2f7") // blue
	colorAccent  = lipgloss.Color("#bb9af7") // purple
	colorSuccess = lipgloss.Color("#9ece6a") // green
	colorWarning = lipgloss.Color("#e0af68") // yellow
	colorError   = lipgloss.Color("#f7768e") // red
	colorMuted   = lipgloss.Color("#565f89") // gray
)

// =============================================================================
// STYLES
// =============================================================================

var (
	// TitleStyle renders transcript titles in listings.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	// IDStyle renders transcript IDs.
	IDStyle = lipgloss.NewStyle().
		Foreground(colorAccent)

	// MutedStyle renders timestamps and secondary detail.
	MutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// SuccessStyle renders confirmation messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	// WarningStyle renders warnings.
	WarningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	// ErrorStyle renders error messages.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)

	// HeaderStyle renders section headers in preview output.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	// MatchStyle highlights search hits inside snippets.
	MatchStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWarning)
)

func init() {
	// Degrade all styles to plain text when colors are off.
	lipgloss.SetColorProfile(GetColorProfile())
}
