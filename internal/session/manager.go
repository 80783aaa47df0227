// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/jeranaias/rigscribe/internal/entry"
	"github.com/jeranaias/rigscribe/internal/storage"
)

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Manager owns the active transcript for a recording session. Entries are
// appended through it so dirty state and auto-save stay consistent. Safe for
// concurrent use.
type Manager struct {
	mu sync.Mutex

	store  *storage.Store
	active *storage.Transcript

	startTime    time.Time
	lastActivity time.Time

	// Auto-save configuration
	autoSaveEnabled  bool
	autoSaveInterval time.Duration
	lastAutoSave     time.Time
	isDirty          bool

	// Callbacks
	onSave  func(id string)
	onError func(err error)
}

// Config holds configuration for the session manager.
type Config struct {
	// AutoSaveEnabled enables automatic saving (default: true)
	AutoSaveEnabled bool

	// AutoSaveInterval is how often to auto-save (default: 30 seconds)
	AutoSaveInterval time.Duration
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		AutoSaveEnabled:  true,
		AutoSaveInterval: 30 * time.Second,
	}
}

// NewManager creates a manager backed by the given store.
func NewManager(store *storage.Store, cfg Config) *Manager {
	now := time.Now()
	if cfg.AutoSaveInterval <= 0 {
		cfg.AutoSaveInterval = DefaultConfig().AutoSaveInterval
	}
	return &Manager{
		store:            store,
		startTime:        now,
		lastActivity:     now,
		autoSaveEnabled:  cfg.AutoSaveEnabled,
		autoSaveInterval: cfg.AutoSaveInterval,
		lastAutoSave:     now,
	}
}

// =============================================================================
// TRANSCRIPT LIFECYCLE
// =============================================================================

// Start begins a fresh transcript. Any previous active transcript is saved
// first when dirty.
func (m *Manager) Start(title string) (*storage.Transcript, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.flushLocked(); err != nil {
		return nil, err
	}

	m.active = storage.NewTranscript(title)
	m.isDirty = false
	m.startTime = time.Now()
	m.lastActivity = m.startTime
	return m.active, nil
}

// Resume loads an existing transcript and appends a session separator so the
// boundary between the old conversation and the new one stays visible in
// every export.
func (m *Manager) Resume(id string) (*storage.Transcript, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.flushLocked(); err != nil {
		return nil, err
	}

	t, err := m.store.Load(id)
	if err != nil {
		return nil, fmt.Errorf("resume session: %w", err)
	}

	now := time.Now()
	t.Entries = append(t.Entries, entry.SessionSeparator{Timestamp: now})
	m.active = t
	m.isDirty = true
	m.startTime = now
	m.lastActivity = now
	return t, nil
}

// Active returns the current transcript, or nil when no session is open.
func (m *Manager) Active() *storage.Transcript {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Append adds an entry to the active transcript and marks the session dirty.
// Returns an error when no session is open.
func (m *Manager) Append(e entry.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return fmt.Errorf("no active session")
	}

	m.active.Entries = append(m.active.Entries, e)
	m.isDirty = true
	m.lastActivity = time.Now()
	return nil
}

// Save persists the active transcript immediately.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked()
}

// Close saves any unsaved changes and clears the active transcript.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.flushLocked(); err != nil {
		return err
	}
	m.active = nil
	return nil
}

// saveLocked persists the active transcript. Caller holds the lock.
func (m *Manager) saveLocked() error {
	if m.active == nil {
		return fmt.Errorf("no active session")
	}

	id, err := m.store.Save(m.active)
	if err != nil {
		if m.onError != nil {
			m.onError(err)
		}
		return fmt.Errorf("save session: %w", err)
	}

	m.isDirty = false
	m.lastAutoSave = time.Now()
	if m.onSave != nil {
		m.onSave(id)
	}
	return nil
}

// flushLocked saves the active transcript only when it has unsaved changes.
func (m *Manager) flushLocked() error {
	if m.active == nil || !m.isDirty {
		return nil
	}
	return m.saveLocked()
}

// =============================================================================
// DIRTY STATE AND AUTO-SAVE
// =============================================================================

// IsDirty returns whether the session has unsaved changes.
func (m *Manager) IsDirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isDirty
}

// ShouldAutoSave returns true if auto-save should trigger.
func (m *Manager) ShouldAutoSave() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.autoSaveEnabled || !m.isDirty || m.active == nil {
		return false
	}

	return time.Since(m.lastAutoSave) >= m.autoSaveInterval
}

// Check triggers an auto-save when the interval has elapsed and there are
// unsaved changes. Intended to be called periodically from the host loop.
func (m *Manager) Check() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.autoSaveEnabled || !m.isDirty || m.active == nil {
		return nil
	}
	if time.Since(m.lastAutoSave) < m.autoSaveInterval {
		return nil
	}
	return m.saveLocked()
}

// SetAutoSaveEnabled enables or disables auto-save.
func (m *Manager) SetAutoSaveEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autoSaveEnabled = enabled
}

// SetAutoSaveInterval updates the auto-save interval.
func (m *Manager) SetAutoSaveInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autoSaveInterval = d
}

// =============================================================================
// CALLBACKS
// =============================================================================

// SetSaveCallback sets the function called after a successful save.
func (m *Manager) SetSaveCallback(fn func(id string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onSave = fn
}

// SetErrorCallback sets the function called when a save fails.
func (m *Manager) SetErrorCallback(fn func(err error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onError = fn
}

// =============================================================================
// SESSION STATUS
// =============================================================================

// Status represents the current session status.
type Status struct {
	TranscriptID string
	Title        string
	EntryCount   int
	StartTime    time.Time
	Duration     time.Duration
	IdleTime     time.Duration
	IsDirty      bool
}

// GetStatus returns the current session status.
func (m *Manager) GetStatus() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	s := Status{
		StartTime: m.startTime,
		Duration:  now.Sub(m.startTime),
		IdleTime:  now.Sub(m.lastActivity),
		IsDirty:   m.isDirty,
	}
	if m.active != nil {
		s.TranscriptID = m.active.ID
		s.Title = m.active.Title
		s.EntryCount = len(m.active.Entries)
	}
	return s
}

// FormatDuration returns a human-readable duration string.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	if secs == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dm %ds", mins, secs)
}
