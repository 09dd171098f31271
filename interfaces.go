package main

import (
	"time"
)

const (
	// Overlay message display duration
	overlayMessageDuration = 2 * time.Second
)

// AppMode is the top-level screen: the project browser or an open gallery.
type AppMode int

const (
	ModeBrowser AppMode = iota
	ModeGallery
)

// RenderState provides read-only access to application state for the renderer
type RenderState interface {
	Mode() AppMode
	IsFullscreen() bool

	// Browser data
	VisibleProjects() []Project
	SelectedProject() int
	SortMethodName() string
	FilterQuery() string

	// Gallery data; nil while in the browser
	Gallery() *GallerySession
	HapticCue() (HapticPulse, bool)

	// Text input (search / caption editing)
	IsInTextInputMode() bool
	GetTextInputPrompt() string
	GetTextInputBuffer() string

	// UI state
	IsShowingHelp() bool
	IsShowingInfo() bool
	GetOverlayMessage() string
	GetOverlayMessageTime() time.Time

	// Display data
	GetTheme() ResolvedTheme
	GetConfigStatus() ConfigLoadResult
	GetKeybindings() map[string][]string
	GetMousebindings() map[string][]string
}

// InputActions provides action methods for the input handler
type InputActions interface {
	// Application control
	Exit()

	// Display toggles
	ToggleHelp()
	ToggleInfo()
	ToggleFullscreen()

	// Browser
	SelectNext()
	SelectPrevious()
	OpenGallery()
	CloseGallery()
	CycleSortMethod()
	ReloadManifest()

	// Gallery navigation
	NavigateNext()
	NavigatePrevious()
	JumpToImage(index int)
	RetryCurrentImage()

	// Editing
	ToggleFeatured()
	UndoLastEdit()

	// Text input
	EnterSearchMode()
	EnterCaptionMode()
	ExitTextInputMode()
	CommitTextInput()
	UpdateTextInputBuffer(buffer string)

	// Messages
	ShowOverlayMessage(message string)

	// Common data access
	GetCurrentIndex() int
	GetTotalImagesCount() int
}

// InputState provides read-only access to input-related state
type InputState interface {
	IsInTextInputMode() bool
	GetTextInputBuffer() string
	IsInGallery() bool
}
