package knowledge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lectern-ai/lectern/pkg/logger"
)

// indexedExtensions limits workspace ingestion to plain-text documents.
var indexedExtensions = map[string]bool{
	".md":  true,
	".txt": true,
}

// WorkspaceLoader watches a knowledge workspace directory and keeps the
// store in sync with it. Each first-level subdirectory is a collection; the
// text files inside it are its documents.
type WorkspaceLoader struct {
	mu      sync.Mutex
	dir     string
	store   *Store
	watcher *fsnotify.Watcher
	closeCh chan struct{}
	closed  bool
}

// NewWorkspaceLoader creates a loader for the given directory. It performs
// an initial scan and starts a background fsnotify watcher. If dir is empty
// or does not exist, returns nil (no-op).
func NewWorkspaceLoader(store *Store, dir string) *WorkspaceLoader {
	if dir == "" {
		return nil
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		logger.Warn("[Knowledge] failed to resolve workspace path %q: %v", dir, err)
		return nil
	}

	info, err := os.Stat(absDir)
	if err != nil || !info.IsDir() {
		logger.Debug("[Knowledge] workspace directory %q does not exist, skipping", absDir)
		return nil
	}

	wl := &WorkspaceLoader{
		dir:     absDir,
		store:   store,
		closeCh: make(chan struct{}),
	}

	wl.reload()

	if err := wl.startWatcher(); err != nil {
		logger.Warn("[Knowledge] failed to start workspace watcher: %v, documents loaded statically", err)
	}

	return wl
}

// Close stops the file watcher.
func (wl *WorkspaceLoader) Close() {
	if wl == nil {
		return
	}
	wl.mu.Lock()
	defer wl.mu.Unlock()

	if wl.closed {
		return
	}
	wl.closed = true
	close(wl.closeCh)

	if wl.watcher != nil {
		wl.watcher.Close()
	}
}

// reload scans the workspace and re-indexes every document found.
func (wl *WorkspaceLoader) reload() {
	wl.mu.Lock()
	defer wl.mu.Unlock()

	ctx := context.Background()
	indexed := 0

	entries, err := os.ReadDir(wl.dir)
	if err != nil {
		logger.Warn("[Knowledge] failed to read workspace %q: %v", wl.dir, err)
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		collection := entry.Name()

		files, err := os.ReadDir(filepath.Join(wl.dir, collection))
		if err != nil {
			continue
		}
		for _, file := range files {
			if file.IsDir() || !indexedExtensions[strings.ToLower(filepath.Ext(file.Name()))] {
				continue
			}
			data, err := os.ReadFile(filepath.Join(wl.dir, collection, file.Name()))
			if err != nil {
				continue
			}
			content := strings.TrimSpace(string(data))
			if content == "" {
				continue
			}
			if err := wl.store.IndexDocument(ctx, collection, file.Name(), content); err != nil {
				logger.Warn("[Knowledge] failed to index %s/%s: %v", collection, file.Name(), err)
				continue
			}
			indexed++
		}
	}

	if indexed > 0 {
		logger.Debug("[Knowledge] indexed %d workspace documents from %s", indexed, wl.dir)
	}
}

// startWatcher initializes fsnotify on the workspace root and every
// collection subdirectory.
func (wl *WorkspaceLoader) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	wl.watcher = watcher

	if err := watcher.Add(wl.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %q: %w", wl.dir, err)
	}
	entries, err := os.ReadDir(wl.dir)
	if err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				_ = watcher.Add(filepath.Join(wl.dir, entry.Name()))
			}
		}
	}

	go wl.watchLoop()

	logger.Debug("[Knowledge] workspace watcher started for %s", wl.dir)
	return nil
}

// watchLoop debounces fsnotify events into full rescans. A rescan also
// picks up newly created collection directories for watching.
func (wl *WorkspaceLoader) watchLoop() {
	const debounce = 500 * time.Millisecond

	var timer *time.Timer
	for {
		select {
		case <-wl.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-wl.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = wl.watcher.Add(event.Name)
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, wl.reload)

		case err, ok := <-wl.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("[Knowledge] watcher error: %v", err)
		}
	}
}
