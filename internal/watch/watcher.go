// Package watch observes the database file for external writes.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/founderos/calibrate/internal/logger"
)

const debounceInterval = 100 * time.Millisecond

// Watcher notifies a callback when the watched file is modified by
// another process. Rapid write bursts collapse into one callback.
type Watcher struct {
	mu            sync.Mutex
	filePath      string
	watcher       *fsnotify.Watcher
	onChange      func()
	stopChan      chan struct{}
	debounceTimer *time.Timer
}

// New creates a watcher on filePath and starts delivering change
// callbacks. The parent directory is watched so file replacement via
// rename is also caught.
func New(filePath string, onChange func()) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		filePath: filePath,
		watcher:  fsWatcher,
		onChange: onChange,
		stopChan: make(chan struct{}),
	}

	if err := fsWatcher.Add(filepath.Dir(filePath)); err != nil {
		if closeErr := fsWatcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return nil, err
	}

	go w.watchLoop()
	return w, nil
}

// watchLoop handles file system events with debouncing.
func (w *Watcher) watchLoop() {
	base := filepath.Base(w.filePath)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// SQLite writes touch the db file and its WAL sidecar.
			name := filepath.Base(event.Name)
			if name != base && name != base+"-wal" {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.mu.Lock()
				if w.debounceTimer != nil {
					w.debounceTimer.Stop()
				}
				w.debounceTimer = time.AfterFunc(debounceInterval, w.fire)
				w.mu.Unlock()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error("watcher error", "error", err)

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) fire() {
	select {
	case <-w.stopChan:
		return
	default:
	}
	if w.onChange != nil {
		w.onChange()
	}
}

// Close stops the watcher and cancels any pending callback.
func (w *Watcher) Close() error {
	close(w.stopChan)

	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mu.Unlock()

	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}
