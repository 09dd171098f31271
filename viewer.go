package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// textInputKind distinguishes what the shared input buffer is editing.
type textInputKind int

const (
	textInputNone textInputKind = iota
	textInputSearch
	textInputCaption
)

// App is the top-level application state. It implements ebiten.Game plus the
// RenderState, InputActions and InputState interfaces consumed by the
// renderer and the input layer.
type App struct {
	config       Config
	configStatus ConfigLoadResult
	theme        ResolvedTheme

	store   *Store
	watcher *ManifestWatcher
	fetcher ImageFetcher
	cache   *lru.Cache[string, *ebiten.Image]

	haptics   *VisualHaptics
	announcer Announcer

	mode     AppMode
	projects []Project // filtered + sorted browser view
	selected int
	filter   string
	sortID   int

	gallery *GallerySession

	inputKind   textInputKind
	inputBuffer string

	showHelp    bool
	showInfo    bool
	fullscreen  bool
	overlayMsg  string
	overlayTime time.Time

	inputHandler *InputHandler
	dragTracker  *DragTracker
	renderer     *Renderer

	screenW       int
	screenH       int
	lastUpdate    time.Time
	quitRequested bool
}

// NewApp wires the store, watcher and cache into a runnable application.
func NewApp(store *Store, watcher *ManifestWatcher, result ConfigLoadResult) (*App, error) {
	config := result.Config
	theme, err := config.Theme.Resolve()
	if err != nil {
		// loadConfig already falls back, but guard against a bad default
		theme, _ = defaultTheme().Resolve()
	}

	cache, err := lru.NewWithEvict[string, *ebiten.Image](config.CacheSize, func(key string, img *ebiten.Image) {
		debugLog("cache evict: %s", key)
		if img != nil {
			img.Deallocate()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create image cache: %w", err)
	}

	app := &App{
		config:       config,
		configStatus: result,
		theme:        theme,
		store:        store,
		watcher:      watcher,
		fetcher:      &FileFetcher{},
		cache:        cache,
		haptics:      NewVisualHaptics(),
		mode:         ModeBrowser,
		sortID:       config.SortMethod,
		fullscreen:   config.Fullscreen,
		screenW:      config.WindowWidth,
		screenH:      config.WindowHeight,
		lastUpdate:   time.Now(),
	}
	app.announcer = NewOverlayAnnouncer(app.ShowOverlayMessage)
	app.dragTracker = NewDragTracker(config.Mouse)

	km := NewKeybindingManager(config.Keybindings)
	mm := NewMousebindingManager(config.Mousebindings, config.Mouse)
	app.inputHandler = NewInputHandler(app, app, km, mm)
	app.renderer = NewRenderer(app)

	app.refreshProjects()
	return app, nil
}

// refreshProjects rebuilds the browser view from the store through the
// current filter and sort strategy, keeping the selection in bounds.
func (a *App) refreshProjects() {
	filtered := FilterProjects(a.store.Projects(), a.filter)
	a.projects = GetSortStrategy(a.sortID).Sort(filtered)
	if a.selected >= len(a.projects) {
		a.selected = len(a.projects) - 1
	}
	if a.selected < 0 {
		a.selected = 0
	}
}

// Update implements ebiten.Game.
func (a *App) Update() error {
	if a.quitRequested {
		return ebiten.Termination
	}
	now := time.Now()
	dt := now.Sub(a.lastUpdate).Seconds()
	a.lastUpdate = now
	if dt < 0 {
		dt = 0
	} else if dt > 0.1 {
		// Window was suspended; don't let the spring integrate a huge step
		dt = 0.1
	}

	a.drainWatcher()

	dragConsumed := false
	if a.gallery != nil {
		dragConsumed = a.dragTracker.Update(a.gallery.Navigator(), now)
		a.gallery.Update(now, dt)
	}

	if !dragConsumed {
		a.inputHandler.HandleInput()
	}
	return nil
}

// drainWatcher applies a pending manifest change notification, if any.
func (a *App) drainWatcher() {
	if a.watcher == nil {
		return
	}
	select {
	case <-a.watcher.Changes():
		if a.store.SelfWrote() {
			// Our own save round-tripped through the filesystem watcher;
			// reloading would discard the undo log for nothing.
			debugLog("ignoring watcher signal for our own save")
			return
		}
		a.reloadFromStore("Portfolio file changed, reloaded")
	default:
	}
}

// reloadFromStore re-reads the manifest and rebuilds all derived state.
func (a *App) reloadFromStore(message string) {
	if err := a.store.Reload(); err != nil {
		log.Printf("Reload failed: %v", err)
		a.ShowOverlayMessage(fmt.Sprintf("Reload failed: %v", err))
		return
	}
	a.refreshProjects()
	if a.gallery != nil {
		if p, ok := a.store.Project(a.gallery.Project().ID); ok {
			a.gallery.SetPictures(ConvertDocumentsToPictures(p.Documents))
		} else {
			// The open project disappeared from the manifest
			a.CloseGallery()
		}
	}
	a.ShowOverlayMessage(message)
}

// Draw implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen)
}

// Layout implements ebiten.Game.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.screenW && a.gallery != nil {
		a.gallery.Navigator().SetLayout(float64(outsideWidth))
	}
	a.screenW = outsideWidth
	a.screenH = outsideHeight
	return outsideWidth, outsideHeight
}

// Shutdown persists window state and stops background machinery.
func (a *App) Shutdown() {
	if a.gallery != nil {
		a.gallery.Close()
		a.gallery = nil
	}
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if !a.fullscreen {
		w, h := ebiten.WindowSize()
		if w >= minWidth && h >= minHeight {
			a.config.WindowWidth = w
			a.config.WindowHeight = h
		}
	}
	a.config.Fullscreen = a.fullscreen
	a.config.SortMethod = a.sortID
	saveConfig(a.config)
}

// --- InputActions ---

func (a *App) Exit() {
	a.quitRequested = true
}

func (a *App) ToggleHelp() {
	a.showHelp = !a.showHelp
	a.showInfo = false
}

func (a *App) ToggleInfo() {
	a.showInfo = !a.showInfo
	a.showHelp = false
}

func (a *App) ToggleFullscreen() {
	a.fullscreen = !a.fullscreen
	ebiten.SetFullscreen(a.fullscreen)
}

func (a *App) SelectNext() {
	if a.mode != ModeBrowser || len(a.projects) == 0 {
		return
	}
	if a.selected < len(a.projects)-1 {
		a.selected++
	}
}

func (a *App) SelectPrevious() {
	if a.mode != ModeBrowser || len(a.projects) == 0 {
		return
	}
	if a.selected > 0 {
		a.selected--
	}
}

func (a *App) OpenGallery() {
	if a.mode != ModeBrowser || a.selected >= len(a.projects) {
		return
	}
	project := a.projects[a.selected]
	a.gallery = NewGallerySession(project, 0, float64(a.screenW),
		a.config.GalleryConfig(), a.config.GestureConfig(),
		a.fetcher, a.cache, a.haptics, a.announcer)
	a.mode = ModeGallery
	a.showHelp = false
	a.showInfo = false
	debugLog("gallery opened: %s (%d pictures)", project.Title, len(a.gallery.Pictures()))
}

func (a *App) CloseGallery() {
	if a.gallery == nil {
		return
	}
	a.gallery.Close()
	a.gallery = nil
	a.mode = ModeBrowser
	a.dragTracker.Reset()
}

func (a *App) CycleSortMethod() {
	if a.mode != ModeBrowser {
		return
	}
	strategies := GetAllSortStrategies()
	a.sortID = (a.sortID + 1) % len(strategies)
	a.refreshProjects()
	a.ShowOverlayMessage(fmt.Sprintf("Sort: %s", GetSortStrategy(a.sortID).Name()))
}

func (a *App) ReloadManifest() {
	a.reloadFromStore("Portfolio reloaded")
}

func (a *App) NavigateNext() {
	if a.gallery == nil {
		return
	}
	a.gallery.JumpTo(a.gallery.Index() + 1)
}

func (a *App) NavigatePrevious() {
	if a.gallery == nil {
		return
	}
	a.gallery.JumpTo(a.gallery.Index() - 1)
}

func (a *App) JumpToImage(index int) {
	if a.gallery == nil {
		return
	}
	a.gallery.JumpTo(index)
}

func (a *App) RetryCurrentImage() {
	if a.gallery == nil {
		return
	}
	idx := a.gallery.Index()
	if a.gallery.PageState(idx).State == ImageError {
		a.gallery.RetryPage(idx)
		a.ShowOverlayMessage("Retrying...")
	}
}

func (a *App) ToggleFeatured() {
	if a.mode == ModeBrowser {
		if a.selected >= len(a.projects) {
			return
		}
		id := a.projects[a.selected].ID
		featured, err := a.store.ToggleProjectFeatured(id)
		if err != nil {
			a.ShowOverlayMessage(fmt.Sprintf("Edit failed: %v", err))
			return
		}
		a.refreshProjects()
		if featured {
			a.ShowOverlayMessage("Project featured")
		} else {
			a.ShowOverlayMessage("Project unfeatured")
		}
		return
	}

	pic, ok := a.currentPicture()
	if !ok {
		return
	}
	featured, err := a.store.ToggleDocumentFeatured(a.gallery.Project().ID, pic.ID)
	if err != nil {
		a.ShowOverlayMessage(fmt.Sprintf("Edit failed: %v", err))
		return
	}
	a.refreshGalleryPictures()
	if featured {
		a.ShowOverlayMessage("Image featured")
	} else {
		a.ShowOverlayMessage("Image unfeatured")
	}
}

func (a *App) UndoLastEdit() {
	undone, err := a.store.Undo()
	if err != nil {
		a.ShowOverlayMessage(fmt.Sprintf("Undo failed: %v", err))
		return
	}
	if !undone {
		a.ShowOverlayMessage("Nothing to undo")
		return
	}
	a.refreshProjects()
	a.refreshGalleryPictures()
	a.ShowOverlayMessage("Undone")
}

func (a *App) EnterSearchMode() {
	if a.mode != ModeBrowser {
		return
	}
	a.inputKind = textInputSearch
	a.inputBuffer = a.filter
}

func (a *App) EnterCaptionMode() {
	pic, ok := a.currentPicture()
	if !ok {
		return
	}
	a.inputKind = textInputCaption
	a.inputBuffer = pic.Description
}

func (a *App) ExitTextInputMode() {
	a.inputKind = textInputNone
	a.inputBuffer = ""
}

func (a *App) CommitTextInput() {
	switch a.inputKind {
	case textInputSearch:
		a.filter = a.inputBuffer
		a.selected = 0
		a.refreshProjects()
		if a.filter == "" {
			a.ShowOverlayMessage("Filter cleared")
		} else {
			a.ShowOverlayMessage(fmt.Sprintf("Filter: %s (%d projects)", a.filter, len(a.projects)))
		}
	case textInputCaption:
		if pic, ok := a.currentPicture(); ok {
			if err := a.store.SetCaption(a.gallery.Project().ID, pic.ID, a.inputBuffer); err != nil {
				a.ShowOverlayMessage(fmt.Sprintf("Edit failed: %v", err))
			} else {
				a.refreshGalleryPictures()
				a.ShowOverlayMessage("Caption saved")
			}
		}
	}
	a.inputKind = textInputNone
	a.inputBuffer = ""
}

func (a *App) UpdateTextInputBuffer(buffer string) {
	a.inputBuffer = buffer
}

func (a *App) ShowOverlayMessage(message string) {
	a.overlayMsg = message
	a.overlayTime = time.Now()
}

func (a *App) GetCurrentIndex() int {
	if a.gallery == nil {
		return 0
	}
	return a.gallery.Index()
}

func (a *App) GetTotalImagesCount() int {
	if a.gallery == nil {
		return 0
	}
	return len(a.gallery.Pictures())
}

// currentPicture returns the gallery's committed picture, if any.
func (a *App) currentPicture() (Picture, bool) {
	if a.gallery == nil {
		return Picture{}, false
	}
	pics := a.gallery.Pictures()
	idx := a.gallery.Index()
	if idx < 0 || idx >= len(pics) {
		return Picture{}, false
	}
	return pics[idx], true
}

// refreshGalleryPictures re-derives the open gallery's picture list after a
// store mutation, so caption and featured edits show up in place.
func (a *App) refreshGalleryPictures() {
	if a.gallery == nil {
		return
	}
	if p, ok := a.store.Project(a.gallery.Project().ID); ok {
		a.gallery.SetPictures(ConvertDocumentsToPictures(p.Documents))
	}
}

// --- InputState ---

func (a *App) IsInTextInputMode() bool { return a.inputKind != textInputNone }

func (a *App) GetTextInputBuffer() string { return a.inputBuffer }

func (a *App) IsInGallery() bool { return a.mode == ModeGallery }

// --- RenderState ---

func (a *App) Mode() AppMode { return a.mode }

func (a *App) IsFullscreen() bool { return a.fullscreen }

func (a *App) VisibleProjects() []Project { return a.projects }

func (a *App) SelectedProject() int { return a.selected }

func (a *App) SortMethodName() string { return GetSortStrategy(a.sortID).Name() }

func (a *App) FilterQuery() string { return a.filter }

func (a *App) Gallery() *GallerySession { return a.gallery }

func (a *App) HapticCue() (HapticPulse, bool) { return a.haptics.Active() }

func (a *App) GetTextInputPrompt() string {
	switch a.inputKind {
	case textInputSearch:
		return "Search: "
	case textInputCaption:
		return "Caption: "
	}
	return ""
}

func (a *App) IsShowingHelp() bool { return a.showHelp }

func (a *App) IsShowingInfo() bool { return a.showInfo }

func (a *App) GetOverlayMessage() string { return a.overlayMsg }

func (a *App) GetOverlayMessageTime() time.Time { return a.overlayTime }

func (a *App) GetTheme() ResolvedTheme { return a.theme }

func (a *App) GetConfigStatus() ConfigLoadResult { return a.configStatus }

func (a *App) GetKeybindings() map[string][]string {
	return a.inputHandler.keybindingManager.GetKeybindings()
}

func (a *App) GetMousebindings() map[string][]string {
	return a.inputHandler.mousebindingManager.GetMousebindings()
}
