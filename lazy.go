package main

import (
	"time"
)

const (
	// Galleries at or below this size mount every page; the churn of
	// mounting and unmounting costs more than the handful of textures.
	smallGalleryMax = 20

	// Mount delay per step of distance from the current index, so a jump
	// does not decode the whole visible window in one frame.
	mountStagger = 50 * time.Millisecond
)

// LazyMounter decides which carousel pages exist in the view tree at all.
// This is separate from preloading: preloading warms the byte/texture cache,
// mounting creates the page. Pages outside the visible window are unmounted;
// newly visible pages come up staggered by their distance from current.
// The mounted set always contains the current index.
type LazyMounter struct {
	radius  int
	total   int
	current int
	mountAt map[int]time.Time
}

// NewLazyMounter creates a controller with the given visible radius.
func NewLazyMounter(radius int) *LazyMounter {
	if radius < 1 {
		radius = 1
	}
	return &LazyMounter{
		radius:  radius,
		mountAt: make(map[int]time.Time),
	}
}

// SetWindow recenters the mounted window on current. Already-scheduled pages
// keep their mount times; new pages are staggered by distance from current,
// with current itself always immediate.
func (m *LazyMounter) SetWindow(current, total int, now time.Time) {
	m.current = clampIndex(current, total)
	m.total = total

	if total == 0 {
		m.mountAt = make(map[int]time.Time)
		return
	}

	if total <= smallGalleryMax {
		for i := 0; i < total; i++ {
			if _, ok := m.mountAt[i]; !ok {
				m.mountAt[i] = now
			}
		}
		for i := range m.mountAt {
			if i >= total {
				delete(m.mountAt, i)
			}
		}
		return
	}

	window := indexWindow(m.current, total, m.radius)
	inWindow := make(map[int]struct{}, len(window))
	for _, idx := range window {
		inWindow[idx] = struct{}{}
		if _, ok := m.mountAt[idx]; ok {
			continue
		}
		distance := idx - m.current
		if distance < 0 {
			distance = -distance
		}
		m.mountAt[idx] = now.Add(time.Duration(distance) * mountStagger)
	}
	for idx := range m.mountAt {
		if _, ok := inWindow[idx]; !ok {
			delete(m.mountAt, idx)
		}
	}
	// The current page never waits.
	m.mountAt[m.current] = now
}

// ShouldMount reports whether the page at idx should exist at time now.
func (m *LazyMounter) ShouldMount(idx int, now time.Time) bool {
	at, ok := m.mountAt[idx]
	if !ok {
		return false
	}
	return !now.Before(at)
}

// Mounted returns the sorted indices due to be mounted at time now.
func (m *LazyMounter) Mounted(now time.Time) []int {
	var mounted []int
	for i := 0; i < m.total; i++ {
		if m.ShouldMount(i, now) {
			mounted = append(mounted, i)
		}
	}
	return mounted
}
