// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package entry

import "strings"

// =============================================================================
// DISPLAY METADATA TABLES
// =============================================================================

// DisplayInfo is the human-readable presentation of a tool or sub-agent.
type DisplayInfo struct {
	Name        string
	Description string
}

// toolDisplayInfo maps tool titles to display metadata. Populated once at
// process start and never mutated afterwards, so concurrent reads need no
// synchronization.
var toolDisplayInfo = map[string]DisplayInfo{
	"read_file":  {Name: "Read File", Description: "Reads a file from the workspace"},
	"write_file": {Name: "Write File", Description: "Writes a file in the workspace"},
	"edit_file":  {Name: "Edit File", Description: "Applies an edit to a file"},
	"bash":       {Name: "Run Command", Description: "Executes a shell command"},
	"search":     {Name: "Search", Description: "Searches the workspace"},
	"grep":       {Name: "Grep", Description: "Searches file contents"},
	"glob":       {Name: "Find Files", Description: "Matches files by pattern"},
	"web_fetch":  {Name: "Fetch URL", Description: "Fetches a web page"},
	"list_files": {Name: "List Files", Description: "Lists directory contents"},
}

// subAgentDisplayInfo maps sub-agent types to display metadata. Same lifecycle
// as toolDisplayInfo.
var subAgentDisplayInfo = map[string]DisplayInfo{
	"general":  {Name: "General Agent", Description: "General-purpose delegate"},
	"explorer": {Name: "Explorer", Description: "Explores the codebase"},
	"planner":  {Name: "Planner", Description: "Breaks work into steps"},
	"reviewer": {Name: "Reviewer", Description: "Reviews changes"},
}

// =============================================================================
// LOOKUP
// =============================================================================

// LookupTool returns display metadata for a tool title. The title is matched
// verbatim first; on a miss, the substring after the last '-' is tried, which
// supports versioned identifiers like "search-v2". An unknown title falls
// back to itself as the display name, so a miss is never an error.
func LookupTool(title string) DisplayInfo {
	return lookup(toolDisplayInfo, title)
}

// LookupSubAgent returns display metadata for a sub-agent type, with the same
// fallback behavior as LookupTool.
func LookupSubAgent(agentType string) DisplayInfo {
	return lookup(subAgentDisplayInfo, agentType)
}

func lookup(table map[string]DisplayInfo, key string) DisplayInfo {
	if info, ok := table[key]; ok {
		return info
	}
	if i := strings.LastIndex(key, "-"); i >= 0 {
		if info, ok := table[key[i+1:]]; ok {
			return info
		}
	}
	return DisplayInfo{Name: key}
}
