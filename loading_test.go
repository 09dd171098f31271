package main

import (
	"errors"
	"testing"
	"time"
)

func TestTrackerStateDefaultsToLoading(t *testing.T) {
	tracker := NewImageTracker()

	st := tracker.State("pic-1")
	if st.State != ImageLoading {
		t.Errorf("first reference state = %v, want ImageLoading", st.State)
	}
	if tracker.TrackedCount() != 1 {
		t.Errorf("TrackedCount() = %d, want 1", tracker.TrackedCount())
	}
}

func TestTrackerFlushGating(t *testing.T) {
	tracker := NewImageTracker()
	base := time.Now()

	tracker.postAt("pic-1", nil, base)
	tracker.postAt("pic-2", errors.New("decode failed"), base.Add(50*time.Millisecond))

	// Too early: nothing applies
	if n := tracker.flushAt(base.Add(100*time.Millisecond), true); n != 0 {
		t.Errorf("early flush applied %d events, want 0", n)
	}
	// Old enough but a gesture is active: still nothing
	if n := tracker.flushAt(base.Add(300*time.Millisecond), false); n != 0 {
		t.Errorf("busy flush applied %d events, want 0", n)
	}
	// Idle and past the delay: the whole batch lands at once
	if n := tracker.flushAt(base.Add(300*time.Millisecond), true); n != 2 {
		t.Errorf("flush applied %d events, want 2", n)
	}

	if st := tracker.State("pic-1"); st.State != ImageLoaded {
		t.Errorf("pic-1 state = %v, want ImageLoaded", st.State)
	}
	st := tracker.State("pic-2")
	if st.State != ImageError || st.Err == nil {
		t.Errorf("pic-2 state = %+v, want error state", st)
	}
}

func TestTrackerRetry(t *testing.T) {
	tracker := NewImageTracker()
	base := time.Now()

	tracker.postAt("pic-1", errors.New("timeout"), base)
	tracker.flushAt(base.Add(time.Second), true)

	tracker.Retry("pic-1")
	if st := tracker.State("pic-1"); st.State != ImageLoading {
		t.Errorf("state after Retry = %v, want ImageLoading", st.State)
	}

	// Retry on a non-error state is a no-op
	tracker.postAt("pic-1", nil, base)
	tracker.flushAt(base.Add(time.Second), true)
	tracker.Retry("pic-1")
	if st := tracker.State("pic-1"); st.State != ImageLoaded {
		t.Errorf("Retry must not clear a loaded state, got %v", st.State)
	}
}

func TestTrackerResetForPictures(t *testing.T) {
	tracker := NewImageTracker()
	base := time.Now()

	tracker.postAt("keep-loaded", nil, base)
	tracker.postAt("keep-error", errors.New("bad"), base)
	tracker.flushAt(base.Add(time.Second), true)
	tracker.State("keep-loading")
	tracker.postAt("gone", nil, base.Add(2*time.Second))

	tracker.ResetForPictures([]Picture{
		{ID: "keep-loaded"}, {ID: "keep-error"}, {ID: "keep-loading"},
	})

	// Only already-loaded survivors keep their state
	if st := tracker.State("keep-loaded"); st.State != ImageLoaded {
		t.Errorf("keep-loaded = %v, want ImageLoaded", st.State)
	}
	if st := tracker.State("keep-error"); st.State != ImageLoading {
		t.Errorf("keep-error = %v, want reset to ImageLoading", st.State)
	}
	// The vanished id's pending event was discarded
	if n := tracker.flushAt(base.Add(time.Hour), true); n != 0 {
		t.Errorf("flush applied %d events for vanished ids, want 0", n)
	}
}

func TestTrackerEvictExcept(t *testing.T) {
	tracker := NewImageTracker()
	base := time.Now()

	for _, id := range []string{"a", "b", "c", "d"} {
		tracker.postAt(id, nil, base)
	}
	tracker.flushAt(base.Add(time.Second), true)
	tracker.postAt("e", nil, base.Add(2*time.Second))

	tracker.EvictExcept(map[string]struct{}{"b": {}, "c": {}})

	if tracker.TrackedCount() != 2 {
		t.Errorf("TrackedCount() = %d, want 2", tracker.TrackedCount())
	}
	// The pending event for the evicted id is gone too
	if n := tracker.flushAt(base.Add(time.Hour), true); n != 0 {
		t.Errorf("flush applied %d events after eviction, want 0", n)
	}
	if st := tracker.State("b"); st.State != ImageLoaded {
		t.Errorf("kept id lost its state: %v", st.State)
	}
}
