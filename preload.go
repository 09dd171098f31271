package main

import (
	"context"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// preloadTimeout bounds every background fetch. A fetch that overruns is
// cancelled and the picture marked failed; it will load on demand instead.
const preloadTimeout = 10 * time.Second

// PreloadStats provides statistics about preloading.
type PreloadStats struct {
	LoadedCount  int
	FailedCount  int
	LoadingCount int
}

// Preloader fetches picture bytes ahead of the current index so a swipe lands
// on an already-decoded image. Each picture id lives in at most one of the
// loaded/loading/failed sets; a Preload call for an id already in any set is a
// no-op, so at most one fetch is ever dispatched per id. Decoded images go
// into a shared LRU cache whose evictions release texture memory.
type Preloader struct {
	fetcher ImageFetcher
	cache   *lru.Cache[string, *ebiten.Image]
	timeout time.Duration

	mu       sync.Mutex
	loaded   map[string]struct{}
	loading  map[string]struct{}
	failed   map[string]struct{}
	inflight map[string]context.CancelFunc
	stopped  bool

	// onDone receives every completion or failure; wired to the tracker's
	// deferred event queue.
	onDone func(id string, err error)
}

// NewPreloader creates a Preloader around a fetcher and a decoded-image cache.
func NewPreloader(fetcher ImageFetcher, cache *lru.Cache[string, *ebiten.Image], onDone func(string, error)) *Preloader {
	return &Preloader{
		fetcher:  fetcher,
		cache:    cache,
		timeout:  preloadTimeout,
		loaded:   make(map[string]struct{}),
		loading:  make(map[string]struct{}),
		failed:   make(map[string]struct{}),
		inflight: make(map[string]context.CancelFunc),
		onDone:   onDone,
	}
}

// Preload starts a background fetch for the picture unless its id is already
// tracked in any set. Failures are silent and non-fatal.
func (p *Preloader) Preload(pic Picture) {
	p.mu.Lock()
	if p.stopped || p.tracksLocked(pic.ID) {
		p.mu.Unlock()
		return
	}
	if _, ok := p.cache.Get(pic.URI); ok {
		// Already decoded on demand; record and skip the fetch.
		p.loaded[pic.ID] = struct{}{}
		p.mu.Unlock()
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	p.loading[pic.ID] = struct{}{}
	p.inflight[pic.ID] = cancel
	p.mu.Unlock()

	go p.fetch(ctx, cancel, pic)
}

func (p *Preloader) fetch(ctx context.Context, cancel context.CancelFunc, pic Picture) {
	defer cancel()
	img, err := p.fetcher.Fetch(ctx, pic.URI)
	if err == nil {
		err = ctx.Err()
	}

	p.mu.Lock()
	if _, still := p.loading[pic.ID]; !still {
		// Evicted while in flight; drop the result on the floor.
		p.mu.Unlock()
		return
	}
	delete(p.loading, pic.ID)
	delete(p.inflight, pic.ID)
	if err != nil {
		p.failed[pic.ID] = struct{}{}
	} else {
		p.loaded[pic.ID] = struct{}{}
		p.cache.Add(pic.URI, img)
	}
	done := p.onDone
	p.mu.Unlock()

	if err != nil {
		debugLog("preload failed for %s: %v", pic.URI, err)
	} else {
		debugLog("preloaded %s (cache: %d items)", pic.URI, p.cache.Len())
	}
	if done != nil {
		done(pic.ID, err)
	}
}

// Evict cancels in-flight fetches and drops set entries for every id outside
// keep. After it returns no timer, request, or state entry exists for an
// evicted id, which keeps the tracked set bounded on long galleries.
func (p *Preloader) Evict(keep map[string]struct{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, cancel := range p.inflight {
		if _, ok := keep[id]; ok {
			continue
		}
		cancel()
		delete(p.inflight, id)
	}
	for _, set := range []map[string]struct{}{p.loaded, p.loading, p.failed} {
		for id := range set {
			if _, ok := keep[id]; ok {
				continue
			}
			delete(set, id)
		}
	}
}

// Failed reports whether the id's last preload failed.
func (p *Preloader) Failed(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.failed[id]
	return ok
}

// Forget drops the id from the loaded and failed sets so the next Preload
// dispatches again. An in-flight fetch is left alone.
func (p *Preloader) Forget(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.loaded, id)
	delete(p.failed, id)
}

// Tracks reports whether the id is in any of the three sets.
func (p *Preloader) Tracks(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tracksLocked(id)
}

func (p *Preloader) tracksLocked(id string) bool {
	if _, ok := p.loaded[id]; ok {
		return true
	}
	if _, ok := p.loading[id]; ok {
		return true
	}
	_, ok := p.failed[id]
	return ok
}

// Stats returns current set sizes.
func (p *Preloader) Stats() PreloadStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PreloadStats{
		LoadedCount:  len(p.loaded),
		FailedCount:  len(p.failed),
		LoadingCount: len(p.loading),
	}
}

// Stop cancels all in-flight fetches and rejects further Preload calls. Called
// when the gallery closes.
func (p *Preloader) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
	for id, cancel := range p.inflight {
		cancel()
		delete(p.inflight, id)
	}
	for id := range p.loading {
		delete(p.loading, id)
	}
}
