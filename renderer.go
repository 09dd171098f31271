package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Layout constants
const (
	headerHeight = 32.0
	footerHeight = 40.0
	rowHeight    = 44.0
	marginX      = 16.0
)

// Renderer draws the whole frame from the read-only RenderState. It keeps no
// state of its own beyond font faces and placeholder images.
type Renderer struct {
	renderState RenderState

	titleFont  *text.GoTextFace
	bodyFont   *text.GoTextFace
	smallFont  *text.GoTextFace
	errorCache map[string]*ebiten.Image
	loadingImg *ebiten.Image
}

// NewRenderer creates a new Renderer
func NewRenderer(renderState RenderState) *Renderer {
	r := &Renderer{
		renderState: renderState,
		errorCache:  make(map[string]*ebiten.Image),
	}
	if globalFontSource != nil {
		r.titleFont = &text.GoTextFace{Source: globalFontSource, Size: 22}
		r.bodyFont = &text.GoTextFace{Source: globalFontSource, Size: 16}
		r.smallFont = &text.GoTextFace{Source: globalFontSource, Size: 13}
	}
	return r
}

// Draw renders one frame.
func (r *Renderer) Draw(screen *ebiten.Image) {
	theme := r.renderState.GetTheme()
	screen.Fill(theme.BackgroundPrimary)
	if r.bodyFont == nil {
		return
	}

	switch r.renderState.Mode() {
	case ModeGallery:
		r.drawGallery(screen)
	default:
		r.drawBrowser(screen)
	}

	if r.renderState.IsInTextInputMode() {
		r.drawTextInput(screen)
	}
	if r.renderState.IsShowingHelp() {
		r.drawHelp(screen)
	}
	if r.renderState.IsShowingInfo() {
		r.drawInfo(screen)
	}
	r.drawOverlayMessage(screen)
}

// drawBrowser renders the project list with selection and featured marks.
func (r *Renderer) drawBrowser(screen *ebiten.Image) {
	theme := r.renderState.GetTheme()
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	projects := r.renderState.VisibleProjects()
	selected := r.renderState.SelectedProject()

	header := fmt.Sprintf("folio — %d projects  (sort: %s)", len(projects), r.renderState.SortMethodName())
	if q := r.renderState.FilterQuery(); q != "" {
		header += fmt.Sprintf("  [filter: %s]", q)
	}
	DrawText(screen, header, r.titleFont, marginX, 6, theme.TextPrimary)

	if status := r.renderState.GetConfigStatus(); status.Status == "Warning" || status.Status == "Error" {
		DrawText(screen, "Config: "+status.Status, r.smallFont, float64(w)-120, 10, theme.TextError)
	}

	if len(projects) == 0 {
		DrawText(screen, "No projects. Press Shift+R to reload or run with -import.", r.bodyFont,
			marginX, float64(h)/2, theme.TextSecondary)
		return
	}

	// Scroll the list so the selection stays visible
	listTop := headerHeight + 8
	visibleRows := int((float64(h) - listTop - footerHeight) / rowHeight)
	if visibleRows < 1 {
		visibleRows = 1
	}
	first := 0
	if selected >= visibleRows {
		first = selected - visibleRows + 1
	}

	for row := 0; row < visibleRows && first+row < len(projects); row++ {
		idx := first + row
		p := projects[idx]
		y := listTop + float64(row)*rowHeight

		if idx == selected {
			DrawFilledRect(screen, 0, y, float64(w), rowHeight, theme.AccentSelection)
		}

		title := p.Title
		if p.Featured {
			DrawText(screen, "★", r.bodyFont, marginX, y+4, theme.AccentFeatured)
		}
		DrawText(screen, title, r.bodyFont, marginX+24, y+4, theme.TextPrimary)

		detail := p.Category
		if p.Location != "" {
			detail += " · " + p.Location
		}
		if p.Year > 0 {
			detail += fmt.Sprintf(" · %d", p.Year)
		}
		detail += fmt.Sprintf(" · %d images", len(ConvertDocumentsToPictures(p.Documents)))
		DrawText(screen, detail, r.smallFont, marginX+24, y+24, theme.TextSecondary)
	}

	DrawText(screen, "Enter: open  /: search  F: feature  S: sort  ?: help", r.smallFont,
		marginX, float64(h)-footerHeight+12, theme.TextSecondary)
}

// drawGallery renders the page strip at the navigator's live offset, plus the
// position header and the caption footer.
func (r *Renderer) drawGallery(screen *ebiten.Image) {
	theme := r.renderState.GetTheme()
	session := r.renderState.Gallery()
	if session == nil {
		return
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	now := time.Now()

	pics := session.Pictures()
	if len(pics) == 0 {
		DrawText(screen, "No images in this project", r.bodyFont,
			float64(w)/2-100, float64(h)/2, theme.TextSecondary)
		r.drawGalleryChrome(screen, session)
		return
	}

	pageW := float64(w)
	pageTop := headerHeight
	pageH := float64(h) - headerHeight - footerHeight
	offset := session.Navigator().Offset()

	mounted := session.MountedPages(now)
	sort.Ints(mounted)
	for _, idx := range mounted {
		x := offset + float64(idx)*pageW
		if x+pageW < 0 || x > float64(w) {
			continue
		}
		r.drawPage(screen, session, idx, x, pageTop, pageW, pageH)
	}

	r.drawGalleryChrome(screen, session)

	// Edge flash when a swipe ran past the first or last page
	if kind, active := r.renderState.HapticCue(); active && kind == HapticWarning {
		DrawFilledRect(screen, 0, 0, 6, float64(h), theme.AccentWarning)
		DrawFilledRect(screen, float64(w)-6, 0, 6, float64(h), theme.AccentWarning)
	}
}

// drawPage renders one page slot: the image scaled to fit, or a placeholder.
func (r *Renderer) drawPage(screen *ebiten.Image, session *GallerySession, idx int, x, y, w, h float64) {
	if img := session.PageImage(idx); img != nil {
		bounds := img.Bounds()
		iw, ih := float64(bounds.Dx()), float64(bounds.Dy())
		if iw <= 0 || ih <= 0 {
			return
		}
		scale := w / iw
		if s := h / ih; s < scale {
			scale = s
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x+(w-iw*scale)/2, y+(h-ih*scale)/2)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, op)
		return
	}

	state := session.PageState(idx)
	if state.State == ImageError {
		pics := session.Pictures()
		uri := ""
		if idx < len(pics) {
			uri = pics[idx].URI
		}
		errMsg := "unknown error"
		if state.Err != nil {
			errMsg = state.Err.Error()
		}
		key := uri + "|" + errMsg
		placeholder, ok := r.errorCache[key]
		if !ok {
			placeholder = CreateErrorImage(400, 300, uri, errMsg)
			r.errorCache[key] = placeholder
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(x+(w-400)/2, y+(h-300)/2)
		screen.DrawImage(placeholder, op)
		return
	}

	if r.loadingImg == nil {
		r.loadingImg = CreateLoadingImage(400, 300)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x+(w-400)/2, y+(h-300)/2)
	screen.DrawImage(r.loadingImg, op)
}

// drawGalleryChrome renders the position header and caption footer.
func (r *Renderer) drawGalleryChrome(screen *ebiten.Image, session *GallerySession) {
	theme := r.renderState.GetTheme()
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	pics := session.Pictures()
	idx := session.Index()

	DrawFilledRect(screen, 0, 0, float64(w), headerHeight, theme.BackgroundOverlay)
	pos := fmt.Sprintf("%s — %d / %d", session.Project().Title, idx+1, len(pics))
	if len(pics) == 0 {
		pos = session.Project().Title
	}
	DrawText(screen, pos, r.bodyFont, marginX, 6, theme.TextPrimary)

	DrawFilledRect(screen, 0, float64(h)-footerHeight, float64(w), footerHeight, theme.BackgroundOverlay)
	if idx >= 0 && idx < len(pics) {
		pic := pics[idx]
		caption := pic.Description
		if caption == "" {
			caption = "(no caption — press C to add one)"
		}
		DrawText(screen, caption, r.bodyFont, marginX, float64(h)-footerHeight+8, theme.TextPrimary)
		if pic.Type != "" && pic.Type != "image" {
			DrawText(screen, pic.Type, r.smallFont, float64(w)-140, float64(h)-footerHeight+12, theme.TextSecondary)
		}
	}
}

// drawTextInput renders the search / caption input bar.
func (r *Renderer) drawTextInput(screen *ebiten.Image) {
	theme := r.renderState.GetTheme()
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()

	barY := float64(h)/2 - 24
	DrawFilledRect(screen, 0, barY, float64(w), 48, theme.BackgroundOverlay)
	line := r.renderState.GetTextInputPrompt() + r.renderState.GetTextInputBuffer() + "_"
	DrawText(screen, line, r.bodyFont, marginX, barY+14, theme.TextPrimary)
}

// drawHelp renders the keybinding help overlay.
func (r *Renderer) drawHelp(screen *ebiten.Image) {
	theme := r.renderState.GetTheme()
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	DrawFilledRect(screen, 0, 0, float64(w), float64(h), theme.BackgroundOverlay)

	DrawText(screen, "Key bindings", r.titleFont, marginX, 10, theme.TextPrimary)

	descriptions := GetActionDescriptions()
	keybindings := r.renderState.GetKeybindings()

	actions := make([]string, 0, len(keybindings))
	for action := range keybindings {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	y := 50.0
	for _, action := range actions {
		if y > float64(h)-30 {
			break
		}
		desc := descriptions[action]
		if desc == "" {
			desc = action
		}
		keys := ""
		for i, k := range keybindings[action] {
			if i > 0 {
				keys += ", "
			}
			keys += k
		}
		DrawText(screen, keys, r.bodyFont, marginX, y, theme.AccentFeatured)
		DrawText(screen, desc, r.bodyFont, marginX+240, y, theme.TextPrimary)
		y += 22
	}
}

// drawInfo renders the info overlay: current picture details or config state.
func (r *Renderer) drawInfo(screen *ebiten.Image) {
	theme := r.renderState.GetTheme()
	w := screen.Bounds().Dx()
	DrawFilledRect(screen, 0, headerHeight, float64(w), 140, theme.BackgroundOverlay)

	y := headerHeight + 8
	session := r.renderState.Gallery()
	if session != nil {
		pics := session.Pictures()
		idx := session.Index()
		if idx >= 0 && idx < len(pics) {
			pic := pics[idx]
			DrawText(screen, "URI: "+pic.URI, r.smallFont, marginX, y, theme.TextPrimary)
			y += 20
			state := session.PageState(idx)
			stateName := "loading"
			switch state.State {
			case ImageLoaded:
				stateName = "loaded"
			case ImageError:
				stateName = "error"
			}
			DrawText(screen, "State: "+stateName, r.smallFont, marginX, y, theme.TextPrimary)
			y += 20
		}
	}

	status := r.renderState.GetConfigStatus()
	DrawText(screen, "Config: "+status.Status, r.smallFont, marginX, y, theme.TextSecondary)
	y += 20
	for _, warning := range status.Warnings {
		DrawText(screen, warning, r.smallFont, marginX, y, theme.TextError)
		y += 18
	}
}

// drawOverlayMessage renders the expiring status message.
func (r *Renderer) drawOverlayMessage(screen *ebiten.Image) {
	msg := r.renderState.GetOverlayMessage()
	if msg == "" || time.Since(r.renderState.GetOverlayMessageTime()) > overlayMessageDuration {
		return
	}
	theme := r.renderState.GetTheme()
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()

	barY := float64(h) - footerHeight - 36
	DrawFilledRect(screen, 0, barY, float64(w), 28, theme.BackgroundOverlay)
	DrawText(screen, msg, r.bodyFont, marginX, barY+4, theme.TextPrimary)
}
