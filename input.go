package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler processes keyboard and mouse-binding input each frame. Pointer
// drags on the gallery are handled separately by the drag tracker; this file
// covers discrete actions and the text input modes.
type InputHandler struct {
	inputActions       InputActions
	inputState         InputState
	keybindingManager  *KeybindingManager
	mousebindingManager *MousebindingManager
}

// NewInputHandler creates a new InputHandler
func NewInputHandler(inputActions InputActions, inputState InputState, km *KeybindingManager, mm *MousebindingManager) *InputHandler {
	return &InputHandler{
		inputActions:        inputActions,
		inputState:          inputState,
		keybindingManager:   km,
		mousebindingManager: mm,
	}
}

// HandleInput processes all input for the current frame
// Returns true if any input was processed, false otherwise
func (h *InputHandler) HandleInput() bool {
	if h.inputState.IsInTextInputMode() {
		return h.handleTextInput()
	}

	inputProcessed := false
	for _, action := range []string{
		"exit", "help", "info", "fullscreen",
		"select_next", "select_previous", "open_gallery",
		"search", "cycle_sort", "reload",
		"next", "previous", "jump_first", "jump_last", "retry",
		"toggle_featured", "edit_caption", "undo",
	} {
		if h.keybindingManager.ExecuteAction(action, h.inputActions, h.inputState) {
			inputProcessed = true
		}
		if h.mousebindingManager.ExecuteAction(action, h.inputActions, h.inputState) {
			inputProcessed = true
		}
	}
	return inputProcessed
}

// handleTextInput consumes typed characters for the search or caption buffer.
func (h *InputHandler) handleTextInput() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		h.inputActions.ExitTextInputMode()
		return true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		h.inputActions.CommitTextInput()
		return true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		buffer := []rune(h.inputState.GetTextInputBuffer())
		if len(buffer) > 0 {
			h.inputActions.UpdateTextInputBuffer(string(buffer[:len(buffer)-1]))
		}
		return true
	}

	chars := ebiten.AppendInputChars(nil)
	if len(chars) == 0 {
		return false
	}
	buffer := h.inputState.GetTextInputBuffer()
	for _, r := range chars {
		if r >= ' ' {
			buffer += string(r)
		}
	}
	h.inputActions.UpdateTextInputBuffer(buffer)
	return true
}
