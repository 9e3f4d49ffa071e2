package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/logger"
)

const (
	// DefaultDebounce is how long a path must stay quiet before its
	// change is emitted. Editors fire several events per save; one
	// change per burst is enough.
	DefaultDebounce = 500 * time.Millisecond

	// flushInterval is how often pending changes are checked against
	// the debounce window.
	flushInterval = 100 * time.Millisecond
)

// Watcher watches a directory tree and emits debounced file changes.
// Subdirectories are watched recursively, hidden files and directories
// are skipped.
type Watcher struct {
	root     string
	debounce time.Duration
	fs       *fsnotify.Watcher
	changes  chan domain.FileChange

	// pending holds changes waiting out the debounce window,
	// touched only from Run's goroutine.
	pending map[string]pendingChange
}

type pendingChange struct {
	change domain.FileChange
	at     time.Time
}

// New creates a watcher over the given directory tree.
func New(root string) (*Watcher, error) {
	return NewWithDebounce(root, DefaultDebounce)
}

// NewWithDebounce creates a watcher with a custom debounce window.
func NewWithDebounce(root string, debounce time.Duration) (*Watcher, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve watch root: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat watch root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch root %s is not a directory", absRoot)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		root:     absRoot,
		debounce: debounce,
		fs:       fsWatcher,
		changes:  make(chan domain.FileChange, 16),
		pending:  make(map[string]pendingChange),
	}

	if err := w.watchTree(absRoot); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return w, nil
}

// Root returns the absolute watch root.
func (w *Watcher) Root() string {
	return w.root
}

// Changes returns the channel of debounced changes. It is closed when
// Run returns.
func (w *Watcher) Changes() <-chan domain.FileChange {
	return w.changes
}

// Run processes filesystem events until the context is cancelled or the
// watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.changes)

	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	logger.Info("Watching %s", w.root)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			// New directories must be added to the watch before
			// their contents start changing
			if event.Op.Has(fsnotify.Create) && !isHidden(event.Name) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.watchTree(event.Name); err != nil {
						logger.Warn("Watch %s: %v", event.Name, err)
					}
					continue
				}
			}
			if change := w.handleEvent(event); change != nil {
				w.record(*change)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher: %v", err)

		case now := <-ticker.C:
			for path, p := range w.pending {
				if now.Sub(p.at) < w.debounce {
					continue
				}
				delete(w.pending, path)
				select {
				case w.changes <- p.change:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
}

// Close stops the underlying filesystem watcher. Run returns once its
// event channel drains.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// handleEvent maps one filesystem event to a file change. Directories,
// hidden paths and chmod-only events yield nil.
func (w *Watcher) handleEvent(event fsnotify.Event) *domain.FileChange {
	if isHidden(event.Name) {
		return nil
	}

	switch {
	case event.Op.Has(fsnotify.Create):
		info, err := os.Stat(event.Name)
		if err != nil || info.IsDir() {
			return nil
		}
		return &domain.FileChange{Type: domain.ChangeCreated, Path: event.Name}

	case event.Op.Has(fsnotify.Write):
		info, err := os.Stat(event.Name)
		if err != nil || info.IsDir() {
			return nil
		}
		return &domain.FileChange{Type: domain.ChangeUpdated, Path: event.Name}

	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		// The path is gone, so there is nothing left to stat
		return &domain.FileChange{Type: domain.ChangeDeleted, Path: event.Name}

	default:
		return nil
	}
}

// record merges a change into the pending set. A creation followed by
// writes inside the window stays a creation; otherwise the newest
// change wins.
func (w *Watcher) record(change domain.FileChange) {
	now := time.Now()
	if existing, ok := w.pending[change.Path]; ok {
		if existing.change.Type == domain.ChangeCreated && change.Type == domain.ChangeUpdated {
			change.Type = domain.ChangeCreated
		}
	}
	w.pending[change.Path] = pendingChange{
		change: change,
		at:     now,
	}
}

// watchTree adds a directory and all its visible subdirectories to the
// watch.
func (w *Watcher) watchTree(root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && isHidden(path) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// isHidden reports whether any path component starts with a dot.
// "." and ".." themselves are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
