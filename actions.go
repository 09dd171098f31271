package main

// ActionDefinition defines an action with its default keybindings, mouse bindings, and description
type ActionDefinition struct {
	Name         string
	Keys         []string
	MouseActions []string
	Description  string
}

// actionDefinitions contains all action definitions with default keybindings, mouse bindings, and descriptions
var actionDefinitions = []ActionDefinition{
	{"exit", []string{"Escape", "KeyQ"}, []string{}, "Close gallery / quit application"},
	{"help", []string{"Shift+Slash"}, []string{"Alt+RightClick"}, "Show/hide help"},
	{"info", []string{"KeyI"}, []string{}, "Show/hide info display"},

	// Browser
	{"select_next", []string{"ArrowDown", "KeyJ"}, []string{"WheelDown"}, "Select next project"},
	{"select_previous", []string{"ArrowUp", "KeyK"}, []string{"WheelUp"}, "Select previous project"},
	{"open_gallery", []string{"Enter", "NumpadEnter"}, []string{"DoubleLeftClick"}, "Open gallery for selected project"},
	{"search", []string{"Slash"}, []string{}, "Search projects (glob patterns allowed)"},
	{"cycle_sort", []string{"Shift+KeyS"}, []string{"Alt+MiddleClick"}, "Cycle sort method (Natural/Year/Entry)"},
	{"reload", []string{"Shift+KeyR"}, []string{}, "Reload the portfolio manifest"},

	// Gallery navigation
	{"next", []string{"Space", "KeyN", "ArrowRight"}, []string{}, "Next image"},
	{"previous", []string{"Backspace", "KeyP", "ArrowLeft"}, []string{}, "Previous image"},
	{"jump_first", []string{"Home", "Shift+Comma"}, []string{}, "Jump to first image"},
	{"jump_last", []string{"End", "Shift+Period"}, []string{}, "Jump to last image"},
	{"retry", []string{"KeyR"}, []string{}, "Retry loading the current image"},

	// Editing
	{"toggle_featured", []string{"KeyF"}, []string{}, "Toggle featured flag (project or image)"},
	{"edit_caption", []string{"KeyC"}, []string{}, "Edit the current image caption"},
	{"undo", []string{"KeyU"}, []string{}, "Undo the last edit"},

	{"fullscreen", []string{"KeyZ"}, []string{"MiddleClick"}, "Toggle fullscreen"},
}

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keybindings[action.Name] = action.Keys
	}
	return keybindings
}

// GetDefaultMousebindings returns a map of action names to their default mouse bindings
func GetDefaultMousebindings() map[string][]string {
	mousebindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		mousebindings[action.Name] = action.MouseActions
	}
	return mousebindings
}
