package main

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// modifiers is a snapshot of the modifier keys. Bindings match exactly: a
// chord bound without Shift does not fire while Shift is held, so "Slash" and
// "Shift+Slash" stay distinct actions.
type modifiers struct {
	shift bool
	ctrl  bool
	alt   bool
}

// currentModifiers reads the modifier state for this frame.
func currentModifiers() modifiers {
	return modifiers{
		shift: ebiten.IsKeyPressed(ebiten.KeyShift),
		ctrl:  ebiten.IsKeyPressed(ebiten.KeyControl),
		alt:   ebiten.IsKeyPressed(ebiten.KeyAlt),
	}
}

// parseModifiers interprets the leading parts of a binding spec ("Shift",
// "Ctrl", "Alt", case-insensitive). An unknown part rejects the whole spec.
func parseModifiers(parts []string) (modifiers, bool) {
	var m modifiers
	for _, part := range parts {
		switch strings.ToLower(part) {
		case "shift":
			m.shift = true
		case "ctrl":
			m.ctrl = true
		case "alt":
			m.alt = true
		default:
			return modifiers{}, false
		}
	}
	return m, true
}
