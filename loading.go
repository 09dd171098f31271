package main

import (
	"sync"
	"time"
)

// ImageLoadState is the lifecycle flag of one gallery image.
type ImageLoadState int

const (
	ImageLoading ImageLoadState = iota
	ImageLoaded
	ImageError
)

// ImageState is the tracked per-image record, keyed by picture id.
type ImageState struct {
	ID    string
	State ImageLoadState
	Err   error
}

// loadEvent is a completed load or failure waiting to be applied.
type loadEvent struct {
	id  string
	err error
	at  time.Time
}

// loadEventDelay batches load bookkeeping behind a short timer so that state
// churn never lands in the middle of an active swipe.
const loadEventDelay = 150 * time.Millisecond

// ImageTracker keeps the per-image loading/loaded/error map for one gallery
// instance. Load and error callbacks arrive from fetch goroutines and are
// buffered; they only take effect when Flush is called with the gesture idle
// and the batch delay elapsed. Gesture response outranks bookkeeping.
type ImageTracker struct {
	mu      sync.Mutex
	states  map[string]ImageState
	pending []loadEvent
}

func NewImageTracker() *ImageTracker {
	return &ImageTracker{states: make(map[string]ImageState)}
}

// State returns the tracked state for id, creating a loading entry on first
// reference.
func (t *ImageTracker) State(id string) ImageState {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.states[id]
	if !ok {
		st = ImageState{ID: id, State: ImageLoading}
		t.states[id] = st
	}
	return st
}

// Post buffers a load completion (err == nil) or failure for id. Safe to call
// from any goroutine.
func (t *ImageTracker) Post(id string, err error) {
	t.postAt(id, err, time.Now())
}

func (t *ImageTracker) postAt(id string, err error, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = append(t.pending, loadEvent{id: id, err: err, at: at})
}

// Flush applies buffered events and returns how many were applied. Nothing is
// applied unless idle is true and the oldest buffered event is at least the
// batch delay old; once that holds the whole batch is applied together.
func (t *ImageTracker) Flush(idle bool) int {
	return t.flushAt(time.Now(), idle)
}

func (t *ImageTracker) flushAt(now time.Time, idle bool) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !idle || len(t.pending) == 0 {
		return 0
	}
	if now.Sub(t.pending[0].at) < loadEventDelay {
		return 0
	}
	applied := len(t.pending)
	for _, ev := range t.pending {
		st := ImageState{ID: ev.id, State: ImageLoaded}
		if ev.err != nil {
			st = ImageState{ID: ev.id, State: ImageError, Err: ev.err}
		}
		t.states[ev.id] = st
	}
	t.pending = t.pending[:0]
	return applied
}

// Retry clears the error entry for id so the next reference starts a fresh
// load. No-op unless the image is in the error state.
func (t *ImageTracker) Retry(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if st, ok := t.states[id]; ok && st.State == ImageError {
		delete(t.states, id)
	}
}

// ResetForPictures is called when the gallery's picture list changes: states
// for pictures that survived the change are kept only if already loaded,
// everything else is dropped. Pending events for vanished ids are discarded.
func (t *ImageTracker) ResetForPictures(pictures []Picture) {
	current := make(map[string]bool, len(pictures))
	for _, p := range pictures {
		current[p.ID] = true
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for id, st := range t.states {
		if !current[id] || st.State != ImageLoaded {
			delete(t.states, id)
		}
	}
	kept := t.pending[:0]
	for _, ev := range t.pending {
		if current[ev.id] {
			kept = append(kept, ev)
		}
	}
	t.pending = kept
}

// EvictExcept drops tracked states and pending events for every id outside
// keep, so the tracked set stays bounded by the keep window however far the
// user swipes.
func (t *ImageTracker) EvictExcept(keep map[string]struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id := range t.states {
		if _, ok := keep[id]; ok {
			continue
		}
		delete(t.states, id)
	}
	kept := t.pending[:0]
	for _, ev := range t.pending {
		if _, ok := keep[ev.id]; ok {
			kept = append(kept, ev)
		}
	}
	t.pending = kept
}

// TrackedCount returns the number of tracked ids (tests and the info overlay).
func (t *ImageTracker) TrackedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.states)
}
