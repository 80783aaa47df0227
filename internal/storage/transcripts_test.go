// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/jeranaias/rigscribe/internal/entry"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewStoreWithDir failed: %v", err)
	}
	return store
}

func sampleTranscript(title string) *Transcript {
	tr := NewTranscript(title)
	tr.Entries = entry.List{
		entry.Prompt{Text: "explain the cache layer"},
		entry.Text{Markdown: "The cache layer sits between..."},
		entry.ToolCall{Title: "read_file", Arguments: `{"path":"cache.go"}`},
	}
	return tr
}

// =============================================================================
// SAVE / LOAD TESTS
// =============================================================================

func TestStore_SaveAndLoad(t *testing.T) {
	store := newTestStore(t)
	tr := sampleTranscript("Cache discussion")

	id, err := store.Save(tr)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if id == "" {
		t.Fatal("Save returned empty ID")
	}

	got, err := store.Load(id)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Title != "Cache discussion" {
		t.Errorf("title: got %q", got.Title)
	}
	if len(got.Entries) != 3 {
		t.Fatalf("entries: got %d, want 3", len(got.Entries))
	}
	if got.Entries[0].Kind() != entry.KindPrompt {
		t.Errorf("first entry kind: got %q", got.Entries[0].Kind())
	}
	if tc, ok := got.Entries[2].(entry.ToolCall); !ok || tc.Title != "read_file" {
		t.Errorf("tool call did not round-trip: %#v", got.Entries[2])
	}
}

func TestStore_SaveGeneratesTitleFromPrompt(t *testing.T) {
	store := newTestStore(t)
	tr := sampleTranscript("")

	if _, err := store.Save(tr); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if tr.Title != "explain the cache layer" {
		t.Errorf("generated title: got %q", tr.Title)
	}
}

func TestStore_LoadMissing(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Load("tr_nope")
	if !errors.Is(err, ErrTranscriptNotFound) {
		t.Errorf("expected ErrTranscriptNotFound, got %v", err)
	}
}

// =============================================================================
// LIST / SEARCH / DELETE TESTS
// =============================================================================

func TestStore_ListMostRecentFirst(t *testing.T) {
	store := newTestStore(t)

	first := sampleTranscript("first")
	first.CreatedAt = time.Now().Add(-time.Hour)
	if _, err := store.Save(first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Save assigns UpdatedAt; the gap keeps the ordering deterministic.
	time.Sleep(5 * time.Millisecond)

	second := sampleTranscript("second")
	if _, err := store.Save(second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	metas, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("got %d transcripts, want 2", len(metas))
	}
	if metas[0].Title != "second" {
		t.Errorf("most recent first: got %q", metas[0].Title)
	}
	if metas[0].EntryCount != 3 {
		t.Errorf("entry count: got %d", metas[0].EntryCount)
	}
}

func TestStore_Search(t *testing.T) {
	store := newTestStore(t)
	tr := sampleTranscript("Cache discussion")
	if _, err := store.Save(tr); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	results, err := store.Search("cache")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("got %d results, want 1", len(results))
	}

	none, err := store.Search("zeppelin")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("got %d results, want 0", len(none))
	}
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)
	tr := sampleTranscript("doomed")
	id, err := store.Save(tr)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.Delete(id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Load(id); !errors.Is(err, ErrTranscriptNotFound) {
		t.Errorf("expected ErrTranscriptNotFound after delete, got %v", err)
	}
	if err := store.Delete(id); !errors.Is(err, ErrTranscriptNotFound) {
		t.Errorf("double delete should report not found, got %v", err)
	}
}

func TestStore_EnforceLimit(t *testing.T) {
	store := newTestStore(t)
	store.MaxTranscripts = 2

	for i, title := range []string{"a", "b", "c"} {
		tr := sampleTranscript(title)
		tr.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		if _, err := store.Save(tr); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		// Distinct UpdatedAt values so pruning order is deterministic.
		time.Sleep(5 * time.Millisecond)
	}

	metas, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(metas) != 2 {
		t.Errorf("got %d transcripts after pruning, want 2", len(metas))
	}
	for _, meta := range metas {
		if meta.Title == "a" {
			t.Error("oldest transcript should have been pruned")
		}
	}
}
