package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// GalleryConfig holds the window radii of one gallery instance.
type GalleryConfig struct {
	VisibleRadius int
	PreloadRadius int
}

// GallerySession is the state behind an open gallery: the picture list, the
// committed index, and the preload/mount/loading machinery around it. Every
// session owns its trackers; nothing is shared between galleries.
type GallerySession struct {
	project  Project
	pictures []Picture
	index    int
	cfg      GalleryConfig

	nav       *GestureNavigator
	tracker   *ImageTracker
	preloader *Preloader
	mounter   *LazyMounter
	announcer Announcer
	cache     *lru.Cache[string, *ebiten.Image]
}

// NewGallerySession opens a gallery over a project's pictures. initialIndex
// is clamped; an empty gallery is valid and stays at index 0.
func NewGallerySession(project Project, initialIndex int, pageWidth float64, cfg GalleryConfig, gcfg GestureConfig, fetcher ImageFetcher, cache *lru.Cache[string, *ebiten.Image], haptics Haptics, announcer Announcer) *GallerySession {
	if announcer == nil {
		announcer = NullAnnouncer{}
	}
	s := &GallerySession{
		project:   project,
		pictures:  ConvertDocumentsToPictures(project.Documents),
		cfg:       cfg,
		tracker:   NewImageTracker(),
		mounter:   NewLazyMounter(cfg.VisibleRadius),
		announcer: announcer,
		cache:     cache,
	}
	s.preloader = NewPreloader(fetcher, cache, s.tracker.Post)
	s.index = clampIndex(initialIndex, len(s.pictures))
	s.nav = NewGestureNavigator(gcfg, haptics, s.commit)
	s.nav.SetLayout(pageWidth)
	s.nav.SetPages(s.index, len(s.pictures))

	s.announcer.Announce(galleryAnnouncement(s.index, len(s.pictures), s.captionAt(s.index)))
	s.refreshWindows(time.Now())
	return s
}

// Navigator exposes the gesture state machine for pointer wiring.
func (s *GallerySession) Navigator() *GestureNavigator { return s.nav }

// Pictures returns the session's picture list.
func (s *GallerySession) Pictures() []Picture { return s.pictures }

// Index is the committed current index.
func (s *GallerySession) Index() int { return s.index }

// Project returns the project this gallery was opened on.
func (s *GallerySession) Project() Project { return s.project }

// Update advances the session one frame: the settle spring steps, and
// deferred load bookkeeping flushes only while no gesture is active.
func (s *GallerySession) Update(now time.Time, dt float64) {
	s.nav.Step(dt)
	s.tracker.Flush(s.nav.Idle())
}

// commit is the navigator's settle-completion callback: the index becomes
// official, the windows recenter, and the new position is announced.
func (s *GallerySession) commit(index int) {
	s.index = clampIndex(index, len(s.pictures))
	s.announcer.Announce(galleryAnnouncement(s.index, len(s.pictures), s.captionAt(s.index)))
	s.refreshWindows(time.Now())

	// A picture whose preload failed loads on demand once it is current.
	if s.index < len(s.pictures) {
		pic := s.pictures[s.index]
		if s.preloader.Failed(pic.ID) {
			s.preloader.Forget(pic.ID)
			s.tracker.Retry(pic.ID)
			s.preloader.Preload(pic)
		}
	}
}

// JumpTo moves directly to an index (thumbnail taps, Home/End). The caller
// passes an index valid against the current picture count.
func (s *GallerySession) JumpTo(index int) {
	if index == s.index || index < 0 || index >= len(s.pictures) {
		return
	}
	s.nav.SetPages(index, len(s.pictures))
	s.commit(index)
}

// refreshWindows recenters the mount window, prefetches the load window, and
// evicts every per-picture cache entry outside the keep set.
func (s *GallerySession) refreshWindows(now time.Time) {
	total := len(s.pictures)
	s.mounter.SetWindow(s.index, total, now)

	for _, idx := range indexWindow(s.index, total, s.cfg.PreloadRadius) {
		s.preloader.Preload(s.pictures[idx])
	}

	keep := make(map[string]struct{})
	for idx := range keepSet(s.index, total, s.cfg.VisibleRadius, s.cfg.PreloadRadius) {
		keep[s.pictures[idx].ID] = struct{}{}
	}
	s.preloader.Evict(keep)
	s.tracker.EvictExcept(keep)
}

// SetPictures swaps the picture list under an open gallery (manifest reload,
// caption edits). The index re-clamps and loaded states are preserved.
func (s *GallerySession) SetPictures(pictures []Picture) {
	s.pictures = pictures
	s.index = clampIndex(s.index, len(pictures))
	s.tracker.ResetForPictures(pictures)
	s.nav.SetPages(s.index, len(pictures))
	s.refreshWindows(time.Now())
}

// MountedPages returns the indices whose pages exist this frame.
func (s *GallerySession) MountedPages(now time.Time) []int {
	return s.mounter.Mounted(now)
}

// PageImage returns the decoded image for a page, or nil while it is still
// loading. A cache miss kicks off a demand fetch unless the page is in the
// error state (the retry affordance owns that transition).
func (s *GallerySession) PageImage(idx int) *ebiten.Image {
	if idx < 0 || idx >= len(s.pictures) {
		return nil
	}
	pic := s.pictures[idx]
	if img, ok := s.cache.Get(pic.URI); ok {
		return img
	}
	if s.tracker.State(pic.ID).State != ImageError {
		s.preloader.Preload(pic)
	}
	return nil
}

// PageState returns the tracked lifecycle state for a page.
func (s *GallerySession) PageState(idx int) ImageState {
	if idx < 0 || idx >= len(s.pictures) {
		return ImageState{}
	}
	return s.tracker.State(s.pictures[idx].ID)
}

// RetryPage clears a page's error state and dispatches a fresh fetch.
func (s *GallerySession) RetryPage(idx int) {
	if idx < 0 || idx >= len(s.pictures) {
		return
	}
	pic := s.pictures[idx]
	s.tracker.Retry(pic.ID)
	s.preloader.Forget(pic.ID)
	s.preloader.Preload(pic)
}

func (s *GallerySession) captionAt(idx int) string {
	if idx < 0 || idx >= len(s.pictures) {
		return ""
	}
	return s.pictures[idx].Description
}

// Close cancels every in-flight fetch and timer owned by the session.
func (s *GallerySession) Close() {
	s.preloader.Stop()
}
