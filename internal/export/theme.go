// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

// =============================================================================
// THEME
// =============================================================================

// Theme carries the semantic colors and fonts the HTML document embeds.
// Values are CSS literals. Empty fields fall back to fixed dark-theme values
// so output stays deterministic when the host theme defines nothing.
type Theme struct {
	FontFamily string
	FontSize   string

	LabelColor            string // foreground for secondary labels
	UserColor             string // prompt bubble accent
	ThinkingColor         string // thinking block accent
	ToolColor             string // tool block accent
	LinkColor             string
	CodeBackground        string
	TableBorder           string
	TableHeaderBackground string
}

// DarkTheme returns the built-in dark theme. These literals double as the
// fallback values for partially-specified themes.
func DarkTheme() Theme {
	return Theme{
		FontFamily:            `-apple-system, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif`,
		FontSize:              "14px",
		LabelColor:            "#a9b1d6",
		UserColor:             "#7aa2f7",
		ThinkingColor:         "#bb9af7",
		ToolColor:             "#9ece6a",
		LinkColor:             "#7aa2f7",
		CodeBackground:        "#1a1b26",
		TableBorder:           "#414868",
		TableHeaderBackground: "#24283b",
	}
}

// LightTheme returns the built-in light theme.
func LightTheme() Theme {
	return Theme{
		FontFamily:            `-apple-system, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif`,
		FontSize:              "14px",
		LabelColor:            "#586069",
		UserColor:             "#0366d6",
		ThinkingColor:         "#6f42c1",
		ToolColor:             "#22863a",
		LinkColor:             "#0366d6",
		CodeBackground:        "#f6f8fa",
		TableBorder:           "#e1e4e8",
		TableHeaderBackground: "#f6f8fa",
	}
}

// withDefaults fills empty fields from the dark theme literals.
func (t Theme) withDefaults() Theme {
	def := DarkTheme()
	if t.FontFamily == "" {
		t.FontFamily = def.FontFamily
	}
	if t.FontSize == "" {
		t.FontSize = def.FontSize
	}
	if t.LabelColor == "" {
		t.LabelColor = def.LabelColor
	}
	if t.UserColor == "" {
		t.UserColor = def.UserColor
	}
	if t.ThinkingColor == "" {
		t.ThinkingColor = def.ThinkingColor
	}
	if t.ToolColor == "" {
		t.ToolColor = def.ToolColor
	}
	if t.LinkColor == "" {
		t.LinkColor = def.LinkColor
	}
	if t.CodeBackground == "" {
		t.CodeBackground = def.CodeBackground
	}
	if t.TableBorder == "" {
		t.TableBorder = def.TableBorder
	}
	if t.TableHeaderBackground == "" {
		t.TableHeaderBackground = def.TableHeaderBackground
	}
	return t
}
