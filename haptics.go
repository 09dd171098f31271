package main

import (
	"sync"
	"time"
)

// HapticPulse is the kind of feedback fired at the end of a gesture.
type HapticPulse int

const (
	// HapticSelection is the light tap on a committed page change.
	HapticSelection HapticPulse = iota
	// HapticWarning is the pulse for a swipe past the first or last page.
	HapticWarning
)

// Haptics receives fire-and-forget feedback pulses keyed to gesture outcome.
type Haptics interface {
	Pulse(kind HapticPulse)
}

// NullHaptics discards every pulse.
type NullHaptics struct{}

func (NullHaptics) Pulse(HapticPulse) {}

// visualPulseDuration is how long the renderer shows the pulse cue.
const visualPulseDuration = 180 * time.Millisecond

// VisualHaptics stands in for a vibration motor on desktop: it records the
// last pulse so the renderer can flash an edge cue for warning pulses.
type VisualHaptics struct {
	mu   sync.Mutex
	kind HapticPulse
	at   time.Time
}

func NewVisualHaptics() *VisualHaptics {
	return &VisualHaptics{}
}

func (h *VisualHaptics) Pulse(kind HapticPulse) {
	h.mu.Lock()
	h.kind = kind
	h.at = time.Now()
	h.mu.Unlock()
	debugLog("haptic pulse: %d", kind)
}

// Active returns the pulse kind if one is still within its display window.
func (h *VisualHaptics) Active() (HapticPulse, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.at.IsZero() || time.Since(h.at) > visualPulseDuration {
		return 0, false
	}
	return h.kind, true
}
