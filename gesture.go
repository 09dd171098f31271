package main

import (
	"math"
	"time"
)

// gesturePhase is the navigator's state: Idle -> Dragging -> Settling -> Idle.
type gesturePhase int

const (
	gestureIdle gesturePhase = iota
	gestureDragging
	gestureSettling
)

// GestureConfig holds the tunables of the pan-to-page gesture.
type GestureConfig struct {
	// SnapFraction of the page width a drag must cover to commit a page
	// turn on release.
	SnapFraction float64
	// VelocityThreshold in px/s; a fast flick commits a page turn even
	// below the distance threshold.
	VelocityThreshold float64
	// EdgeResistance is the maximum displacement past the first or last
	// page, in px. Dragging past an edge bumps against this instead of
	// following the pointer 1:1.
	EdgeResistance float64
	// Spring constants for the settle animation.
	SpringStiffness float64
	SpringDamping   float64
}

func defaultGestureConfig() GestureConfig {
	return GestureConfig{
		SnapFraction:      0.2,
		VelocityThreshold: 500,
		EdgeResistance:    20,
		SpringStiffness:   170,
		SpringDamping:     26,
	}
}

// dragSample is one pointer position used for release velocity estimation.
type dragSample struct {
	x  float64
	at time.Time
}

// velocityWindow is how far back samples count toward the release velocity.
const velocityWindow = 100 * time.Millisecond

// GestureNavigator translates a horizontal drag into carousel offset and
// committed index changes. While dragging, the rendered offset follows the
// pointer (with edge resistance); on release a target index is decided from
// distance and velocity and the offset spring-animates to it. Only when the
// spring completes is the index committed, so rapid gestures never race
// state-driven work. A new drag simply overrides an in-flight spring.
type GestureNavigator struct {
	cfg       GestureConfig
	haptics   Haptics
	onCommit  func(index int)
	pageWidth float64

	phase   gesturePhase
	current int
	total   int
	target  int

	startX      float64
	translation float64
	offset      float64
	springVel   float64
	samples     []dragSample
}

// NewGestureNavigator creates a navigator. onCommit fires after a settle that
// changed the index.
func NewGestureNavigator(cfg GestureConfig, haptics Haptics, onCommit func(int)) *GestureNavigator {
	if haptics == nil {
		haptics = NullHaptics{}
	}
	return &GestureNavigator{
		cfg:      cfg,
		haptics:  haptics,
		onCommit: onCommit,
	}
}

// SetLayout updates the page width (window resize). The resting offset moves
// with it.
func (n *GestureNavigator) SetLayout(pageWidth float64) {
	n.pageWidth = pageWidth
	if n.phase == gestureIdle {
		n.offset = n.restOffset(n.current)
	}
}

// SetPages resets the navigator onto a page list. Any gesture in progress is
// abandoned.
func (n *GestureNavigator) SetPages(current, total int) {
	n.total = total
	n.current = clampIndex(current, total)
	n.target = n.current
	n.phase = gestureIdle
	n.translation = 0
	n.springVel = 0
	n.offset = n.restOffset(n.current)
	n.samples = n.samples[:0]
}

func (n *GestureNavigator) restOffset(index int) float64 {
	return -float64(index) * n.pageWidth
}

// Begin starts a drag at pointer position x. Overrides any in-flight spring.
func (n *GestureNavigator) Begin(x float64, now time.Time) {
	if n.total == 0 {
		return
	}
	n.phase = gestureDragging
	n.startX = x
	n.translation = 0
	n.springVel = 0
	n.samples = append(n.samples[:0], dragSample{x: x, at: now})
}

// Move updates the drag. The rendered offset tracks the pointer except past
// the list edges, where displacement is clamped to the edge resistance.
func (n *GestureNavigator) Move(x float64, now time.Time) {
	if n.phase != gestureDragging {
		return
	}
	n.translation = x - n.startX

	effective := n.translation
	if n.current == 0 && effective > n.cfg.EdgeResistance {
		effective = n.cfg.EdgeResistance
	}
	if n.current == n.total-1 && effective < -n.cfg.EdgeResistance {
		effective = -n.cfg.EdgeResistance
	}
	n.offset = n.restOffset(n.current) + effective

	n.samples = append(n.samples, dragSample{x: x, at: now})
	cutoff := now.Add(-velocityWindow)
	for len(n.samples) > 1 && n.samples[0].at.Before(cutoff) {
		n.samples = n.samples[1:]
	}
}

// End releases the drag: the target index is decided, haptic feedback fires
// immediately, and the navigator starts settling.
func (n *GestureNavigator) End(now time.Time) {
	if n.phase != gestureDragging {
		return
	}
	velocity := n.releaseVelocity(now)
	target, overEdge := decideTarget(n.current, n.total, n.translation, velocity, n.pageWidth, n.cfg)

	if target != n.current {
		n.haptics.Pulse(HapticSelection)
	} else if overEdge {
		n.haptics.Pulse(HapticWarning)
	}

	n.target = target
	n.phase = gestureSettling
	n.translation = 0
	n.samples = n.samples[:0]
}

func (n *GestureNavigator) releaseVelocity(now time.Time) float64 {
	if len(n.samples) < 2 {
		return 0
	}
	first := n.samples[0]
	last := n.samples[len(n.samples)-1]
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return 0
	}
	return (last.x - first.x) / dt
}

// decideTarget picks the index a released drag settles on. A drag past the
// snap fraction of the page width, or a flick past the velocity threshold,
// moves one page in the drag direction (positive translation pages backward);
// anything less snaps back. The result is clamped; overEdge reports that the
// unclamped move pointed past an end of the list.
func decideTarget(current, total int, translation, velocity, pageWidth float64, cfg GestureConfig) (target int, overEdge bool) {
	if total == 0 {
		return 0, false
	}
	current = clampIndex(current, total)

	threshold := cfg.SnapFraction * pageWidth
	byDistance := math.Abs(translation) > threshold
	byVelocity := math.Abs(velocity) > cfg.VelocityThreshold
	if !byDistance && !byVelocity {
		return current, false
	}

	direction := translation
	if !byDistance {
		direction = velocity
	}

	raw := current
	if direction > 0 {
		raw = current - 1
	} else if direction < 0 {
		raw = current + 1
	}
	target = clampIndex(raw, total)
	return target, raw != target
}

// Step advances the settle spring by dt seconds. On completion the offset
// lands exactly on the target page and the index commit fires.
func (n *GestureNavigator) Step(dt float64) {
	if n.phase != gestureSettling || dt <= 0 {
		return
	}
	rest := n.restOffset(n.target)

	// Semi-implicit Euler on a damped spring.
	accel := n.cfg.SpringStiffness*(rest-n.offset) - n.cfg.SpringDamping*n.springVel
	n.springVel += accel * dt
	n.offset += n.springVel * dt

	if math.Abs(rest-n.offset) < 0.5 && math.Abs(n.springVel) < 5 {
		n.offset = rest
		n.springVel = 0
		n.phase = gestureIdle
		if n.target != n.current {
			n.current = n.target
			if n.onCommit != nil {
				n.onCommit(n.current)
			}
		}
	}
}

// Offset is the carousel strip offset to render this frame.
func (n *GestureNavigator) Offset() float64 { return n.offset }

// Current is the committed index.
func (n *GestureNavigator) Current() int { return n.current }

// Dragging reports whether a pointer is down on the carousel.
func (n *GestureNavigator) Dragging() bool { return n.phase == gestureDragging }

// Idle reports whether neither a drag nor a settle is in progress.
func (n *GestureNavigator) Idle() bool { return n.phase == gestureIdle }
