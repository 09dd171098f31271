package main

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces bursts of filesystem events (editors write the
// manifest several times per save) into one reload signal.
const watchDebounce = 500 * time.Millisecond

// ManifestWatcher watches the manifest's directory and signals when the
// manifest changes on disk, so edits made outside the app show up without a
// restart.
type ManifestWatcher struct {
	manifestPath string
	fsWatcher    *fsnotify.Watcher
	changes      chan struct{}
	stop         chan struct{}

	mu      sync.Mutex
	running bool
}

// NewManifestWatcher creates a watcher for the manifest at path.
func NewManifestWatcher(manifestPath string) (*ManifestWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	return &ManifestWatcher{
		manifestPath: manifestPath,
		fsWatcher:    fsWatcher,
		changes:      make(chan struct{}, 1),
		stop:         make(chan struct{}),
	}, nil
}

// Changes delivers one signal per debounced burst of manifest writes.
func (w *ManifestWatcher) Changes() <-chan struct{} {
	return w.changes
}

// Start begins watching. The manifest's directory is watched rather than the
// file itself: rename-style saves replace the inode.
func (w *ManifestWatcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	dir := filepath.Dir(w.manifestPath)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	debugLog("watching %s for manifest changes", dir)

	go w.loop()
	return nil
}

func (w *ManifestWatcher) loop() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.stop:
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.manifestPath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				timerC = timer.C
			} else {
				timer.Reset(watchDebounce)
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			debugLog("watcher error: %v", err)
		case <-timerC:
			timer = nil
			timerC = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}

// Stop shuts the watcher down.
func (w *ManifestWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	w.running = false
	close(w.stop)
	w.fsWatcher.Close()
}
