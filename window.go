package main

// Index window math for the gallery carousel. Three windows are derived from
// the current index with different radii: the visible window decides which
// pages are mounted, the load window decides which pictures are prefetched,
// and their union (the keep set) bounds every per-picture cache.

// clampIndex clamps idx into [0, total-1]. An empty list clamps to 0.
func clampIndex(idx, total int) int {
	if total <= 0 {
		return 0
	}
	if idx < 0 {
		return 0
	}
	if idx >= total {
		return total - 1
	}
	return idx
}

// indexWindow returns the contiguous run of indices within radius of current,
// clipped to [0, total-1]. There is no wraparound: the window shrinks at the
// list boundaries. The result is empty iff total == 0 and always contains the
// (clamped) current index otherwise.
func indexWindow(current, total, radius int) []int {
	if total <= 0 {
		return nil
	}
	if radius < 0 {
		radius = 0
	}
	current = clampIndex(current, total)

	lo := current - radius
	if lo < 0 {
		lo = 0
	}
	hi := current + radius
	if hi > total-1 {
		hi = total - 1
	}

	window := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		window = append(window, i)
	}
	return window
}

// keepSet returns the union of the visible and load windows as a set of
// indices. Anything cached for an index outside this set is due for eviction.
func keepSet(current, total, visibleRadius, loadRadius int) map[int]struct{} {
	keep := make(map[int]struct{})
	for _, i := range indexWindow(current, total, visibleRadius) {
		keep[i] = struct{}{}
	}
	for _, i := range indexWindow(current, total, loadRadius) {
		keep[i] = struct{}{}
	}
	return keep
}
