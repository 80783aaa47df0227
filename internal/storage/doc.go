// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides transcript persistence for rigscribe.
//
// This package handles saving and loading transcripts to/from disk,
// with support for search, listing, and pruning.
//
// # Key Types
//
//   - Store: Main storage interface for transcripts
//   - Transcript: Serializable entry sequence with metadata
//   - TranscriptMeta: Lightweight metadata for listing
//
// # Usage
//
// Create a store and save a transcript:
//
//	store, err := storage.NewStore()
//	id, err := store.Save(transcript)
//
// List and load transcripts:
//
//	metas, err := store.List()
//	t, err := store.Load(metas[0].ID)
//
// # Storage Location
//
// Transcripts are stored in ~/.rigscribe/transcripts/ as JSON files, one per
// transcript, written atomically.
package storage
