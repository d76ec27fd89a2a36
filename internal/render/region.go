package render

import (
	"sync"

	"github.com/dshills/folio/internal/layout"
)

// Region coalescing limits. Two rectangles merge when their union
// wastes less than mergeWaste of its area; past maxRegions the tracker
// gives up and marks everything.
const (
	maxRegions = 32
	mergeWaste = 0.4
)

// DirtyTracker accumulates invalidated view-space rectangles between
// frames. It is safe for concurrent use; timers and the event loop both
// mark regions.
type DirtyTracker struct {
	mu      sync.Mutex
	regions []layout.Rect
	all     bool
}

// NewDirtyTracker creates an empty tracker.
func NewDirtyTracker() *DirtyTracker {
	return &DirtyTracker{}
}

// MarkAll invalidates the whole view.
func (t *DirtyTracker) MarkAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.all = true
	t.regions = nil
}

// Mark invalidates one rectangle, merging it with an existing region
// when the union is tight enough.
func (t *DirtyTracker) Mark(r layout.Rect) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.all {
		return
	}
	for i, existing := range t.regions {
		u := existing.Union(r)
		if existing.Intersects(r) || u.Area() <= (existing.Area()+r.Area())*(1+mergeWaste) {
			t.regions[i] = u
			return
		}
	}
	t.regions = append(t.regions, r)
	if len(t.regions) > maxRegions {
		t.all = true
		t.regions = nil
	}
}

// IsDirty reports whether anything needs repainting.
func (t *DirtyTracker) IsDirty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.all || len(t.regions) > 0
}

// IsAllDirty reports whether the whole view needs repainting.
func (t *DirtyTracker) IsAllDirty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.all
}

// Take returns the dirty regions and resets the tracker. A full
// invalidation returns (nil, true).
func (t *DirtyTracker) Take() ([]layout.Rect, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	all := t.all
	regions := t.regions
	t.all = false
	t.regions = nil
	if all {
		return nil, true
	}
	return regions, false
}

// RegionCount returns the number of pending regions.
func (t *DirtyTracker) RegionCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.regions)
}
