package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DragTracker turns raw mouse state into gesture navigator calls. A press
// only becomes a drag after the pointer moves past the configured threshold,
// so clicks and double-clicks still reach the binding manager untouched.
type DragTracker struct {
	settings MouseSettings
	pressed  bool
	dragging bool
	startX   int
	startY   int
}

func NewDragTracker(settings MouseSettings) *DragTracker {
	return &DragTracker{settings: settings}
}

// Update polls the mouse for this frame and drives the navigator. Returns
// true while a drag is in progress (the frame's input is considered consumed).
func (d *DragTracker) Update(nav *GestureNavigator, now time.Time) bool {
	if !d.settings.EnableMouse || !d.settings.EnableDragSwipe || nav == nil {
		return false
	}

	x, y := ebiten.CursorPosition()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		d.pressed = true
		d.dragging = false
		d.startX, d.startY = x, y
		return false
	}

	if d.pressed && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if !d.dragging {
			dx := x - d.startX
			if dx < 0 {
				dx = -dx
			}
			if dx > d.settings.DragThreshold {
				d.dragging = true
				nav.Begin(float64(x), now)
			}
			return d.dragging
		}
		nav.Move(float64(x), now)
		return true
	}

	if d.pressed {
		// Button released this frame
		d.pressed = false
		if d.dragging {
			d.dragging = false
			nav.End(now)
			return true
		}
	}
	return false
}

// Reset abandons any tracked press (mode change mid-drag).
func (d *DragTracker) Reset() {
	d.pressed = false
	d.dragging = false
}
