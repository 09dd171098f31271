package main

import (
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MouseSettings contains mouse-specific configuration
type MouseSettings struct {
	WheelSensitivity float64 `json:"wheel_sensitivity"`
	DoubleClickTime  int     `json:"double_click_time"` // milliseconds
	DragThreshold    int     `json:"drag_threshold"`    // pixels before a press becomes a drag
	EnableMouse      bool    `json:"enable_mouse"`
	WheelInverted    bool    `json:"wheel_inverted"`
	EnableDragSwipe  bool    `json:"enable_drag_swipe"` // Drag to swipe gallery pages
}

// GetDefaultMouseSettings returns the default mouse settings
func GetDefaultMouseSettings() MouseSettings {
	return MouseSettings{
		WheelSensitivity: 1.0,
		DoubleClickTime:  300, // milliseconds
		DragThreshold:    5,   // pixels
		EnableMouse:      true,
		WheelInverted:    false,
		EnableDragSwipe:  true,
	}
}

// mouseKind is what a mouse chord listens for.
type mouseKind int

const (
	mousePress mouseKind = iota
	mouseDoublePress
	mouseWheelUp
	mouseWheelDown
	mouseWheelLeft
	mouseWheelRight
)

// mouseButtons are the buttons a binding spec may name. The wheel and
// double-click variants ("WheelUp", "DoubleLeftClick") are derived kinds, not
// extra buttons.
var mouseButtons = map[string]ebiten.MouseButton{
	"LeftClick":   ebiten.MouseButtonLeft,
	"RightClick":  ebiten.MouseButtonRight,
	"MiddleClick": ebiten.MouseButtonMiddle,
}

var wheelKinds = map[string]mouseKind{
	"WheelUp":    mouseWheelUp,
	"WheelDown":  mouseWheelDown,
	"WheelLeft":  mouseWheelLeft,
	"WheelRight": mouseWheelRight,
}

// mouseChord is one parsed mouse binding with an exact modifier set.
type mouseChord struct {
	kind   mouseKind
	button ebiten.MouseButton
	mods   modifiers
}

// parseMouseChord parses a spec like "MiddleClick", "Alt+MiddleClick",
// "WheelDown" or "DoubleLeftClick".
func parseMouseChord(spec string) (mouseChord, bool) {
	parts := strings.Split(spec, "+")
	name := parts[len(parts)-1]
	mods, ok := parseModifiers(parts[:len(parts)-1])
	if !ok {
		return mouseChord{}, false
	}

	if kind, ok := wheelKinds[name]; ok {
		return mouseChord{kind: kind, mods: mods}, true
	}
	if base, ok := strings.CutPrefix(name, "Double"); ok {
		button, ok := mouseButtons[base]
		if !ok {
			return mouseChord{}, false
		}
		return mouseChord{kind: mouseDoublePress, button: button, mods: mods}, true
	}
	button, ok := mouseButtons[name]
	if !ok {
		return mouseChord{}, false
	}
	return mouseChord{kind: mousePress, button: button, mods: mods}, true
}

// doubleClickTracker counts consecutive same-button presses inside the
// configured double-click window.
type doubleClickTracker struct {
	lastAt     time.Time
	lastButton ebiten.MouseButton
	streak     int
}

// press records a press and reports whether it completed a double-click.
func (d *doubleClickTracker) press(button ebiten.MouseButton, now time.Time, window time.Duration) bool {
	if button == d.lastButton && d.streak > 0 && now.Sub(d.lastAt) <= window {
		d.streak++
	} else {
		d.streak = 1
		d.lastButton = button
	}
	d.lastAt = now
	if d.streak >= 2 {
		d.streak = 0
		return true
	}
	return false
}

// MousebindingManager resolves configured mouse chords to actions. Like the
// keybinding manager, specs parse once at construction and bad ones drop out.
type MousebindingManager struct {
	bindings map[string][]string
	chords   map[string][]mouseChord
	settings MouseSettings
	doubles  doubleClickTracker
}

func NewMousebindingManager(bindings map[string][]string, settings MouseSettings) *MousebindingManager {
	mm := &MousebindingManager{
		bindings: bindings,
		chords:   make(map[string][]mouseChord, len(bindings)),
		settings: settings,
	}
	for action, specs := range bindings {
		for _, spec := range specs {
			if chord, ok := parseMouseChord(spec); ok {
				mm.chords[action] = append(mm.chords[action], chord)
			}
		}
	}
	return mm
}

// wheelDelta returns this frame's wheel movement with sensitivity and
// inversion applied.
func (mm *MousebindingManager) wheelDelta() (float64, float64) {
	dx, dy := ebiten.Wheel()
	if mm.settings.WheelInverted {
		dy = -dy
	}
	return dx * mm.settings.WheelSensitivity, dy * mm.settings.WheelSensitivity
}

func (mm *MousebindingManager) chordTriggered(chord mouseChord) bool {
	switch chord.kind {
	case mousePress:
		return inpututil.IsMouseButtonJustPressed(chord.button)
	case mouseDoublePress:
		if !inpututil.IsMouseButtonJustPressed(chord.button) {
			return false
		}
		window := time.Duration(mm.settings.DoubleClickTime) * time.Millisecond
		return mm.doubles.press(chord.button, time.Now(), window)
	case mouseWheelUp, mouseWheelDown:
		_, dy := mm.wheelDelta()
		if chord.kind == mouseWheelUp {
			return dy > 0
		}
		return dy < 0
	case mouseWheelLeft, mouseWheelRight:
		dx, _ := mm.wheelDelta()
		if chord.kind == mouseWheelLeft {
			return dx < 0
		}
		return dx > 0
	}
	return false
}

// CheckAction reports whether any mouse chord bound to action fired this
// frame.
func (mm *MousebindingManager) CheckAction(action string) bool {
	if !mm.settings.EnableMouse {
		return false
	}
	mods := currentModifiers()
	for _, chord := range mm.chords[action] {
		if chord.mods == mods && mm.chordTriggered(chord) {
			return true
		}
	}
	return false
}

// ExecuteAction runs the action if one of its chords fired.
func (mm *MousebindingManager) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	if !mm.CheckAction(action) {
		return false
	}
	return globalActionExecutor.ExecuteAction(action, inputActions, inputState)
}

// GetMousebindings returns the configured specs, for the help overlay.
func (mm *MousebindingManager) GetMousebindings() map[string][]string {
	return mm.bindings
}

// GetSettings returns the current mouse settings
func (mm *MousebindingManager) GetSettings() MouseSettings {
	return mm.settings
}
