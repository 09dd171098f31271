package main

// ActionExecutor provides centralized action execution logic
// This eliminates the need for duplicate ExecuteAction implementations
// in both KeybindingManager and MousebindingManager
type ActionExecutor struct{}

// NewActionExecutor creates a new ActionExecutor instance
func NewActionExecutor() *ActionExecutor {
	return &ActionExecutor{}
}

// ExecuteAction executes the given action using the InputActions interface
// This is the single source of truth for all action execution logic
func (ae *ActionExecutor) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	switch action {
	case "exit":
		// Escape backs out of the gallery first, then quits
		if inputState.IsInGallery() {
			inputActions.CloseGallery()
		} else {
			inputActions.Exit()
		}
	case "help":
		inputActions.ToggleHelp()
	case "info":
		inputActions.ToggleInfo()
	case "select_next":
		inputActions.SelectNext()
	case "select_previous":
		inputActions.SelectPrevious()
	case "open_gallery":
		inputActions.OpenGallery()
	case "search":
		if !inputState.IsInTextInputMode() {
			inputActions.EnterSearchMode()
		}
	case "cycle_sort":
		inputActions.CycleSortMethod()
	case "reload":
		inputActions.ReloadManifest()
	case "next":
		inputActions.NavigateNext()
	case "previous":
		inputActions.NavigatePrevious()
	case "jump_first":
		inputActions.JumpToImage(0)
	case "jump_last":
		total := inputActions.GetTotalImagesCount()
		if total > 0 {
			inputActions.JumpToImage(total - 1)
		}
	case "retry":
		inputActions.RetryCurrentImage()
	case "toggle_featured":
		inputActions.ToggleFeatured()
	case "edit_caption":
		if !inputState.IsInTextInputMode() {
			inputActions.EnterCaptionMode()
		}
	case "undo":
		inputActions.UndoLastEdit()
	case "fullscreen":
		inputActions.ToggleFullscreen()
	default:
		return false
	}

	return true
}

// globalActionExecutor is the global instance of ActionExecutor used throughout the application
var globalActionExecutor = NewActionExecutor()
