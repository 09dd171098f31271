package main

import (
	"testing"
	"time"
)

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func TestLazyMounterSmallGallery(t *testing.T) {
	m := NewLazyMounter(3)
	now := time.Now()
	m.SetWindow(0, smallGalleryMax, now)

	mounted := m.Mounted(now)
	if len(mounted) != smallGalleryMax {
		t.Fatalf("small gallery mounted %d pages, want all %d", len(mounted), smallGalleryMax)
	}
	// No stagger for small galleries
	if !m.ShouldMount(smallGalleryMax-1, now) {
		t.Error("far page of a small gallery must mount immediately")
	}
}

func TestLazyMounterLargeGalleryWindow(t *testing.T) {
	m := NewLazyMounter(2)
	now := time.Now()
	m.SetWindow(10, 50, now)

	// Current is mounted immediately, neighbors only after their stagger
	if !m.ShouldMount(10, now) {
		t.Error("current page must mount immediately")
	}
	if m.ShouldMount(12, now) {
		t.Error("distance-2 page must wait for its stagger delay")
	}
	if !m.ShouldMount(12, now.Add(2*mountStagger)) {
		t.Error("distance-2 page must mount after its stagger delay")
	}

	later := now.Add(time.Second)
	mounted := m.Mounted(later)
	if len(mounted) != 5 {
		t.Fatalf("mounted %d pages, want 5 (window of radius 2)", len(mounted))
	}
	for idx := 8; idx <= 12; idx++ {
		if !containsInt(mounted, idx) {
			t.Errorf("mounted set missing %d", idx)
		}
	}
	if containsInt(mounted, 7) || containsInt(mounted, 13) {
		t.Error("pages outside the window must not be mounted")
	}
}

func TestLazyMounterUnmountsOnMove(t *testing.T) {
	m := NewLazyMounter(1)
	now := time.Now()
	m.SetWindow(10, 50, now)
	m.SetWindow(30, 50, now.Add(time.Second))

	later := now.Add(2 * time.Second)
	mounted := m.Mounted(later)
	if containsInt(mounted, 10) {
		t.Error("page far behind the new window must unmount")
	}
	if !containsInt(mounted, 30) {
		t.Error("new current page must be mounted")
	}
}

func TestLazyMounterStaggerScalesWithDistance(t *testing.T) {
	m := NewLazyMounter(4)
	now := time.Now()
	m.SetWindow(20, 100, now)

	// Nearer pages become eligible before farther ones
	at := now.Add(mountStagger + mountStagger/2)
	if !m.ShouldMount(21, at) {
		t.Error("distance-1 page should be mounted by 1.5x stagger")
	}
	if m.ShouldMount(24, at) {
		t.Error("distance-4 page should not be mounted at 1.5x stagger")
	}
}

func TestLazyMounterEmpty(t *testing.T) {
	m := NewLazyMounter(2)
	now := time.Now()
	m.SetWindow(0, 0, now)

	if mounted := m.Mounted(now); len(mounted) != 0 {
		t.Errorf("empty gallery mounted %v, want none", mounted)
	}
}
