package main

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyNames is the single source of truth for key spellings in binding specs.
// Config validation accepts exactly these names, so a spec that parses here is
// a spec that validated.
var keyNames = map[string]ebiten.Key{
	"KeyA": ebiten.KeyA, "KeyB": ebiten.KeyB, "KeyC": ebiten.KeyC, "KeyD": ebiten.KeyD,
	"KeyE": ebiten.KeyE, "KeyF": ebiten.KeyF, "KeyG": ebiten.KeyG, "KeyH": ebiten.KeyH,
	"KeyI": ebiten.KeyI, "KeyJ": ebiten.KeyJ, "KeyK": ebiten.KeyK, "KeyL": ebiten.KeyL,
	"KeyM": ebiten.KeyM, "KeyN": ebiten.KeyN, "KeyO": ebiten.KeyO, "KeyP": ebiten.KeyP,
	"KeyQ": ebiten.KeyQ, "KeyR": ebiten.KeyR, "KeyS": ebiten.KeyS, "KeyT": ebiten.KeyT,
	"KeyU": ebiten.KeyU, "KeyV": ebiten.KeyV, "KeyW": ebiten.KeyW, "KeyX": ebiten.KeyX,
	"KeyY": ebiten.KeyY, "KeyZ": ebiten.KeyZ,

	"Key0": ebiten.Key0, "Key1": ebiten.Key1, "Key2": ebiten.Key2, "Key3": ebiten.Key3,
	"Key4": ebiten.Key4, "Key5": ebiten.Key5, "Key6": ebiten.Key6, "Key7": ebiten.Key7,
	"Key8": ebiten.Key8, "Key9": ebiten.Key9,

	"Space": ebiten.KeySpace, "Backspace": ebiten.KeyBackspace,
	"Enter": ebiten.KeyEnter, "Escape": ebiten.KeyEscape, "Tab": ebiten.KeyTab,
	"Home": ebiten.KeyHome, "End": ebiten.KeyEnd,
	"PageUp": ebiten.KeyPageUp, "PageDown": ebiten.KeyPageDown,
	"ArrowUp": ebiten.KeyArrowUp, "ArrowDown": ebiten.KeyArrowDown,
	"ArrowLeft": ebiten.KeyArrowLeft, "ArrowRight": ebiten.KeyArrowRight,

	"Comma": ebiten.KeyComma, "Period": ebiten.KeyPeriod, "Slash": ebiten.KeySlash,
	"Semicolon": ebiten.KeySemicolon, "Quote": ebiten.KeyQuote,
	"Minus": ebiten.KeyMinus, "Equal": ebiten.KeyEqual,

	"Numpad0": ebiten.KeyNumpad0, "Numpad1": ebiten.KeyNumpad1,
	"Numpad2": ebiten.KeyNumpad2, "Numpad3": ebiten.KeyNumpad3,
	"Numpad4": ebiten.KeyNumpad4, "Numpad5": ebiten.KeyNumpad5,
	"Numpad6": ebiten.KeyNumpad6, "Numpad7": ebiten.KeyNumpad7,
	"Numpad8": ebiten.KeyNumpad8, "Numpad9": ebiten.KeyNumpad9,
	"NumpadEnter": ebiten.KeyNumpadEnter,
}

// keyChord is one parsed binding: a key plus an exact modifier set.
type keyChord struct {
	key  ebiten.Key
	mods modifiers
}

// parseKeyChord parses a spec like "KeyN" or "Shift+Slash".
func parseKeyChord(spec string) (keyChord, bool) {
	parts := strings.Split(spec, "+")
	key, ok := keyNames[parts[len(parts)-1]]
	if !ok {
		return keyChord{}, false
	}
	mods, ok := parseModifiers(parts[:len(parts)-1])
	if !ok {
		return keyChord{}, false
	}
	return keyChord{key: key, mods: mods}, true
}

// KeybindingManager resolves configured key chords to actions. Specs are
// parsed once at construction; unparseable ones are dropped (config loading
// already warned about them).
type KeybindingManager struct {
	bindings map[string][]string
	chords   map[string][]keyChord
}

func NewKeybindingManager(bindings map[string][]string) *KeybindingManager {
	km := &KeybindingManager{
		bindings: bindings,
		chords:   make(map[string][]keyChord, len(bindings)),
	}
	for action, specs := range bindings {
		for _, spec := range specs {
			if chord, ok := parseKeyChord(spec); ok {
				km.chords[action] = append(km.chords[action], chord)
			}
		}
	}
	return km
}

// CheckAction reports whether any chord bound to action fired this frame.
func (km *KeybindingManager) CheckAction(action string) bool {
	mods := currentModifiers()
	for _, chord := range km.chords[action] {
		if chord.mods == mods && inpututil.IsKeyJustPressed(chord.key) {
			return true
		}
	}
	return false
}

// ExecuteAction runs the action if one of its chords fired.
func (km *KeybindingManager) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	if !km.CheckAction(action) {
		return false
	}
	return globalActionExecutor.ExecuteAction(action, inputActions, inputState)
}

// GetKeybindings returns the configured specs, for the help overlay.
func (km *KeybindingManager) GetKeybindings() map[string][]string {
	return km.bindings
}
