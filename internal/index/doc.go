// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package index maintains a SQLite full-text index over stored transcripts.
//
// The index mirrors the JSON transcript store: one row per transcript plus
// an FTS5 table over the searchable text of each entry. Index performs a
// full rebuild; Update and Remove handle single transcripts and are driven
// by a directory watcher (fsnotify, with a polling fallback) so the index
// follows the store without explicit hooks in the write path.
//
// Search returns per-entry matches with snippets; SearchTranscripts
// collapses them to one best match per transcript for list-style UIs.
package index
