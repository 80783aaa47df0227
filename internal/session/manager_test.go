// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"testing"
	"time"

	"github.com/jeranaias/rigscribe/internal/entry"
	"github.com/jeranaias/rigscribe/internal/storage"
)

func newTestManager(t *testing.T, cfg Config) (*Manager, *storage.Store) {
	t.Helper()
	store, err := storage.NewStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	return NewManager(store, cfg), store
}

func TestStartAndAppend(t *testing.T) {
	m, _ := newTestManager(t, DefaultConfig())

	tr, err := m.Start("new session")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if tr.Title != "new session" {
		t.Errorf("title = %q", tr.Title)
	}

	if err := m.Append(entry.Prompt{Text: "hello"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if !m.IsDirty() {
		t.Error("append should mark session dirty")
	}
	if n := len(m.Active().Entries); n != 1 {
		t.Errorf("entries = %d, want 1", n)
	}
}

func TestAppendWithoutSession(t *testing.T) {
	m, _ := newTestManager(t, DefaultConfig())

	if err := m.Append(entry.Prompt{Text: "x"}); err == nil {
		t.Fatal("expected error appending with no active session")
	}
}

func TestSavePersists(t *testing.T) {
	m, store := newTestManager(t, DefaultConfig())

	var savedID string
	m.SetSaveCallback(func(id string) { savedID = id })

	if _, err := m.Start(""); err != nil {
		t.Fatal(err)
	}
	if err := m.Append(entry.Prompt{Text: "persist me"}); err != nil {
		t.Fatal(err)
	}
	if err := m.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if m.IsDirty() {
		t.Error("save should clear dirty flag")
	}
	if savedID == "" {
		t.Fatal("save callback not invoked")
	}

	loaded, err := store.Load(savedID)
	if err != nil {
		t.Fatalf("loading saved transcript: %v", err)
	}
	if len(loaded.Entries) != 1 {
		t.Errorf("persisted entries = %d, want 1", len(loaded.Entries))
	}
}

func TestResumeAppendsSeparator(t *testing.T) {
	m, store := newTestManager(t, DefaultConfig())

	tr := storage.NewTranscript("old session")
	tr.Entries = entry.List{entry.Prompt{Text: "earlier"}}
	id, err := store.Save(tr)
	if err != nil {
		t.Fatal(err)
	}

	resumed, err := m.Resume(id)
	if err != nil {
		t.Fatalf("Resume failed: %v", err)
	}

	if n := len(resumed.Entries); n != 2 {
		t.Fatalf("entries = %d, want 2 (original + separator)", n)
	}
	if _, ok := resumed.Entries[1].(entry.SessionSeparator); !ok {
		t.Errorf("last entry = %T, want SessionSeparator", resumed.Entries[1])
	}
	if !m.IsDirty() {
		t.Error("resume should mark session dirty")
	}
}

func TestResumeMissingTranscript(t *testing.T) {
	m, _ := newTestManager(t, DefaultConfig())

	if _, err := m.Resume("tr_does-not-exist"); err == nil {
		t.Fatal("expected error resuming missing transcript")
	}
}

func TestStartFlushesPreviousSession(t *testing.T) {
	m, store := newTestManager(t, DefaultConfig())

	if _, err := m.Start("first"); err != nil {
		t.Fatal(err)
	}
	if err := m.Append(entry.Prompt{Text: "unsaved"}); err != nil {
		t.Fatal(err)
	}

	// Starting a new session must not lose the dirty first one.
	if _, err := m.Start("second"); err != nil {
		t.Fatal(err)
	}

	metas, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(metas) != 1 {
		t.Fatalf("stored transcripts = %d, want 1", len(metas))
	}
}

func TestAutoSaveInterval(t *testing.T) {
	cfg := Config{AutoSaveEnabled: true, AutoSaveInterval: 10 * time.Millisecond}
	m, store := newTestManager(t, cfg)

	if _, err := m.Start(""); err != nil {
		t.Fatal(err)
	}
	if err := m.Append(entry.Text{Markdown: "change"}); err != nil {
		t.Fatal(err)
	}

	if m.ShouldAutoSave() {
		t.Error("auto-save should wait for the interval")
	}
	time.Sleep(20 * time.Millisecond)
	if !m.ShouldAutoSave() {
		t.Error("auto-save should trigger after the interval")
	}

	if err := m.Check(); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if m.IsDirty() {
		t.Error("Check should have saved and cleared dirty")
	}

	metas, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(metas) != 1 {
		t.Errorf("stored transcripts = %d, want 1", len(metas))
	}
}

func TestAutoSaveDisabled(t *testing.T) {
	cfg := Config{AutoSaveEnabled: false, AutoSaveInterval: time.Millisecond}
	m, _ := newTestManager(t, cfg)

	if _, err := m.Start(""); err != nil {
		t.Fatal(err)
	}
	if err := m.Append(entry.Text{Markdown: "change"}); err != nil {
		t.Fatal(err)
	}

	time.Sleep(5 * time.Millisecond)
	if m.ShouldAutoSave() {
		t.Error("auto-save should never trigger when disabled")
	}
}

func TestCloseClearsActive(t *testing.T) {
	m, store := newTestManager(t, DefaultConfig())

	if _, err := m.Start(""); err != nil {
		t.Fatal(err)
	}
	if err := m.Append(entry.Prompt{Text: "bye"}); err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if m.Active() != nil {
		t.Error("Close should clear the active transcript")
	}

	metas, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(metas) != 1 {
		t.Errorf("Close should have saved the dirty session")
	}
}

func TestGetStatus(t *testing.T) {
	m, _ := newTestManager(t, DefaultConfig())

	if _, err := m.Start("status check"); err != nil {
		t.Fatal(err)
	}
	if err := m.Append(entry.Prompt{Text: "one"}); err != nil {
		t.Fatal(err)
	}

	s := m.GetStatus()
	if s.Title != "status check" {
		t.Errorf("Title = %q", s.Title)
	}
	if s.EntryCount != 1 {
		t.Errorf("EntryCount = %d, want 1", s.EntryCount)
	}
	if !s.IsDirty {
		t.Error("status should report dirty")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30s"},
		{2 * time.Minute, "2m"},
		{90 * time.Second, "1m 30s"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
