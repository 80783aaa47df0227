// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package index

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// FILE WATCHER INTERFACE
// =============================================================================

// FileWatcher is the interface for file watching implementations
type FileWatcher interface {
	// Watch starts watching for transcript changes
	Watch() error

	// Close stops watching and releases resources
	Close() error
}

// =============================================================================
// FSNOTIFY WATCHER
// =============================================================================

// FsnotifyWatcher implements FileWatcher using fsnotify on the transcript
// directory. Transcripts are flat <id>.json files, so no recursion is needed.
type FsnotifyWatcher struct {
	idx      *TranscriptIndex
	watcher  *fsnotify.Watcher
	debounce time.Duration
	mu       sync.Mutex
	pending  map[string]time.Time // transcript ID -> last change time
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewFsnotifyWatcher creates a new fsnotify-based watcher
func NewFsnotifyWatcher(idx *TranscriptIndex, debounce time.Duration) (*FsnotifyWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &FsnotifyWatcher{
		idx:      idx,
		watcher:  watcher,
		debounce: debounce,
		pending:  make(map[string]time.Time),
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Watch starts watching the transcript directory
func (fw *FsnotifyWatcher) Watch() error {
	if err := fw.watcher.Add(fw.idx.store.BaseDir); err != nil {
		return err
	}

	go fw.processEvents()
	go fw.processPending()

	return nil
}

// processEvents processes file system events
func (fw *FsnotifyWatcher) processEvents() {
	defer func() {
		// A panicking watcher must not take the process down
		_ = recover()
	}()

	for {
		select {
		case <-fw.ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			id, ok := transcriptID(event.Name)
			if !ok {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				fw.mu.Lock()
				fw.pending[id] = time.Now()
				fw.mu.Unlock()
			}

			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				fw.mu.Lock()
				delete(fw.pending, id)
				fw.mu.Unlock()
				_ = fw.idx.Remove(id)
			}

		case _, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// processPending reindexes changed transcripts once the debounce has elapsed
func (fw *FsnotifyWatcher) processPending() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-fw.ctx.Done():
			return

		case <-ticker.C:
			now := time.Now()

			fw.mu.Lock()
			var toProcess []string
			for id, changeTime := range fw.pending {
				if now.Sub(changeTime) >= fw.debounce {
					toProcess = append(toProcess, id)
					delete(fw.pending, id)
				}
			}
			fw.mu.Unlock()

			for _, id := range toProcess {
				_ = fw.idx.Update(id)
			}
		}
	}
}

// Close stops watching and releases resources
func (fw *FsnotifyWatcher) Close() error {
	fw.cancel()
	if fw.watcher != nil {
		return fw.watcher.Close()
	}
	return nil
}

// transcriptID extracts the transcript ID from a storage file path.
// Returns false for anything that is not a <id>.json transcript file.
func transcriptID(path string) (string, bool) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, ".json") {
		return "", false
	}
	id := strings.TrimSuffix(base, ".json")
	if id == "" || strings.HasPrefix(id, ".") {
		return "", false
	}
	return id, true
}

// =============================================================================
// POLLING WATCHER (FALLBACK)
// =============================================================================

// PollingWatcher implements FileWatcher using periodic directory scans.
// Used where fsnotify is unavailable (some network filesystems).
type PollingWatcher struct {
	idx      *TranscriptIndex
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	files    map[string]time.Time // transcript ID -> mod time
	mu       sync.Mutex
}

// NewPollingWatcher creates a new polling-based watcher
func NewPollingWatcher(idx *TranscriptIndex, interval time.Duration) *PollingWatcher {
	ctx, cancel := context.WithCancel(context.Background())

	return &PollingWatcher{
		idx:      idx,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		files:    make(map[string]time.Time),
	}
}

// Watch starts watching for transcript changes
func (pw *PollingWatcher) Watch() error {
	if _, err := pw.scan(); err != nil {
		return err
	}

	go pw.poll()
	return nil
}

// scan reads the transcript directory and returns the ID -> mod time map
func (pw *PollingWatcher) scan() (map[string]time.Time, error) {
	dirEntries, err := os.ReadDir(pw.idx.store.BaseDir)
	if err != nil {
		return nil, err
	}

	current := make(map[string]time.Time)
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		id, ok := transcriptID(de.Name())
		if !ok {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		current[id] = info.ModTime()
	}

	pw.mu.Lock()
	pw.files = current
	pw.mu.Unlock()
	return current, nil
}

// poll periodically checks for transcript changes
func (pw *PollingWatcher) poll() {
	ticker := time.NewTicker(pw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-pw.ctx.Done():
			return

		case <-ticker.C:
			pw.checkChanges()
		}
	}
}

// checkChanges diffs the directory against the last scan
func (pw *PollingWatcher) checkChanges() {
	pw.mu.Lock()
	old := make(map[string]time.Time, len(pw.files))
	for k, v := range pw.files {
		old[k] = v
	}
	pw.mu.Unlock()

	current, err := pw.scan()
	if err != nil {
		return
	}

	for id, modTime := range current {
		if oldTime, exists := old[id]; !exists || !oldTime.Equal(modTime) {
			_ = pw.idx.Update(id)
		}
	}

	for id := range old {
		if _, exists := current[id]; !exists {
			_ = pw.idx.Remove(id)
		}
	}
}

// Close stops watching
func (pw *PollingWatcher) Close() error {
	pw.cancel()
	return nil
}

// =============================================================================
// WATCHER FACTORY
// =============================================================================

// startWatcher starts the file watcher (fsnotify or polling fallback)
func (idx *TranscriptIndex) startWatcher() error {
	fw, err := NewFsnotifyWatcher(idx, idx.config.WatchDebounce)
	if err == nil {
		if err := fw.Watch(); err == nil {
			idx.watcher = fw
			return nil
		}
		fw.Close()
	}

	pw := NewPollingWatcher(idx, 5*time.Second)
	if err := pw.Watch(); err != nil {
		return err
	}

	idx.watcher = pw
	return nil
}
