// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/rigscribe/internal/entry"
	"github.com/jeranaias/rigscribe/internal/storage"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotIndexed    = errors.New("transcripts not indexed")
	ErrIndexing      = errors.New("indexing in progress")
	ErrDatabaseError = errors.New("database error")
)

// =============================================================================
// TRANSCRIPT INDEX
// =============================================================================

// TranscriptIndex maintains a SQLite full-text index over stored transcripts.
type TranscriptIndex struct {
	db      *sql.DB
	store   *storage.Store
	watcher FileWatcher
	mu      sync.RWMutex

	// Indexing state
	indexing        bool
	indexingMu      sync.Mutex
	lastIndexed     time.Time
	transcriptCount int
	entryCount      int

	// Configuration
	config *Config
}

// Config holds index configuration
type Config struct {
	// DatabasePath is where to store the SQLite database
	DatabasePath string

	// EnableWatch enables storage-directory watching for incremental updates
	EnableWatch bool

	// WatchDebounce is the debounce duration for file change events
	WatchDebounce time.Duration
}

// DefaultConfig returns default configuration. The database lives next to
// the transcripts it indexes.
func DefaultConfig(store *storage.Store) *Config {
	return &Config{
		DatabasePath:  filepath.Join(filepath.Dir(store.BaseDir), "index.db"),
		EnableWatch:   true,
		WatchDebounce: 500 * time.Millisecond,
	}
}

// NewTranscriptIndex creates a new transcript index over the given store.
func NewTranscriptIndex(store *storage.Store, config *Config) (*TranscriptIndex, error) {
	if store == nil {
		return nil, errors.New("store cannot be nil")
	}
	if config == nil {
		config = DefaultConfig(store)
	}

	// Create database directory if needed
	dbDir := filepath.Dir(config.DatabasePath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", config.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	idx := &TranscriptIndex{
		db:     db,
		store:  store,
		config: config,
	}

	if err := idx.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	// Load statistics; non-fatal when the database is fresh
	_ = idx.loadStats()

	return idx, nil
}

// initSchema creates the database schema
func (idx *TranscriptIndex) initSchema() error {
	if _, err := idx.db.Exec(Schema); err != nil {
		return err
	}
	_, err := idx.db.Exec(InitMetadata)
	return err
}

// Close closes the index and releases resources
func (idx *TranscriptIndex) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.watcher != nil {
		idx.watcher.Close()
	}

	if idx.db != nil {
		return idx.db.Close()
	}

	return nil
}

// =============================================================================
// INDEXING
// =============================================================================

// Index performs a full index of the transcript store.
func (idx *TranscriptIndex) Index(ctx context.Context) error {
	idx.indexingMu.Lock()
	if idx.indexing {
		idx.indexingMu.Unlock()
		return ErrIndexing
	}
	idx.indexing = true
	idx.indexingMu.Unlock()

	defer func() {
		idx.indexingMu.Lock()
		idx.indexing = false
		idx.indexingMu.Unlock()
	}()

	startTime := time.Now()

	metas, err := idx.store.List()
	if err != nil {
		return fmt.Errorf("listing transcripts: %w", err)
	}

	tx, err := idx.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	// Clear existing data
	if _, err := tx.Exec("DELETE FROM entries"); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM transcripts"); err != nil {
		return fmt.Errorf("failed to clear transcripts: %w", err)
	}

	var transcriptCount, entryCount int
	for _, meta := range metas {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		t, err := idx.store.Load(meta.ID)
		if err != nil {
			// Transcript may have been deleted mid-index, skip it
			continue
		}

		n, err := idx.indexTranscript(tx, t)
		if err != nil {
			return err
		}
		transcriptCount++
		entryCount += n
	}

	now := time.Now().Unix()
	if _, err := tx.Exec("UPDATE metadata SET value = ? WHERE key = 'last_full_index'", now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	idx.mu.Lock()
	idx.lastIndexed = startTime
	idx.transcriptCount = transcriptCount
	idx.entryCount = entryCount
	idx.mu.Unlock()

	// Start file watcher if enabled
	if idx.config.EnableWatch && idx.watcher == nil {
		_ = idx.startWatcher()
	}

	return nil
}

// indexTranscript writes one transcript and its searchable entries. Returns
// the number of entries indexed.
func (idx *TranscriptIndex) indexTranscript(tx *sql.Tx, t *storage.Transcript) (int, error) {
	_, err := tx.Exec(`
		INSERT INTO transcripts (id, title, created_at, updated_at, entry_count, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.ID, t.Title, t.CreatedAt.Unix(), t.UpdatedAt.Unix(), len(t.Entries), time.Now().Unix())
	if err != nil {
		return 0, err
	}

	count := 0
	for seq, e := range t.Entries {
		content := searchableContent(e)
		if content == "" {
			continue
		}
		_, err := tx.Exec(`
			INSERT INTO entries (transcript_id, seq, kind, content)
			VALUES (?, ?, ?, ?)
		`, t.ID, seq, string(e.Kind()), content)
		if err != nil {
			return 0, err
		}
		count++
	}

	return count, nil
}

// searchableContent flattens an entry into the text the index should match
// against. Entries with no meaningful text are skipped.
func searchableContent(e entry.Entry) string {
	switch v := e.(type) {
	case entry.Prompt:
		return v.Text
	case entry.Text:
		return v.Markdown
	case entry.Thinking:
		return v.Markdown
	case entry.ToolCall:
		return v.Title + " " + v.Arguments
	case entry.SubAgent:
		return strings.TrimSpace(v.Description + " " + v.Result)
	case entry.ContextFiles:
		names := make([]string, 0, len(v.Files))
		for _, f := range v.Files {
			names = append(names, f.DisplayName)
		}
		return strings.Join(names, " ")
	case entry.Status:
		return v.Message
	default:
		// Session separators carry no searchable text
		return ""
	}
}

// Update incrementally reindexes a single transcript.
func (idx *TranscriptIndex) Update(id string) error {
	t, err := idx.store.Load(id)
	if err != nil {
		// Transcript gone, drop it from the index
		return idx.Remove(id)
	}

	tx, err := idx.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	// Cascade removes the old entries
	if _, err := tx.Exec("DELETE FROM transcripts WHERE id = ?", id); err != nil {
		return err
	}
	if _, err := idx.indexTranscript(tx, t); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	return idx.loadStats()
}

// Remove drops a transcript from the index.
func (idx *TranscriptIndex) Remove(id string) error {
	// Cascade deletes the entries rows
	if _, err := idx.db.Exec("DELETE FROM transcripts WHERE id = ?", id); err != nil {
		return err
	}
	return idx.loadStats()
}

// loadStats loads statistics from the database
func (idx *TranscriptIndex) loadStats() error {
	var lastIndexed int64
	err := idx.db.QueryRow("SELECT value FROM metadata WHERE key = 'last_full_index'").Scan(&lastIndexed)
	if err != nil {
		return err
	}

	var transcriptCount, entryCount int
	if err := idx.db.QueryRow("SELECT COUNT(*) FROM transcripts").Scan(&transcriptCount); err != nil {
		return err
	}
	if err := idx.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&entryCount); err != nil {
		return err
	}

	idx.mu.Lock()
	if lastIndexed > 0 {
		idx.lastIndexed = time.Unix(lastIndexed, 0)
	}
	idx.transcriptCount = transcriptCount
	idx.entryCount = entryCount
	idx.mu.Unlock()

	return nil
}

// =============================================================================
// STATISTICS
// =============================================================================

// Stats holds index statistics
type Stats struct {
	TranscriptCount int
	EntryCount      int
	LastIndexed     time.Time
	IsIndexing      bool
	DatabaseSize    int64
}

// Stats returns current index statistics
func (idx *TranscriptIndex) Stats() Stats {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	idx.indexingMu.Lock()
	indexing := idx.indexing
	idx.indexingMu.Unlock()

	var dbSize int64
	if info, err := os.Stat(idx.config.DatabasePath); err == nil {
		dbSize = info.Size()
	}

	return Stats{
		TranscriptCount: idx.transcriptCount,
		EntryCount:      idx.entryCount,
		LastIndexed:     idx.lastIndexed,
		IsIndexing:      indexing,
		DatabaseSize:    dbSize,
	}
}

// IsIndexed returns true if a full index has completed
func (idx *TranscriptIndex) IsIndexed() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return !idx.lastIndexed.IsZero()
}
