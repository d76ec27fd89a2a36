// Package viewport tracks the visible window over laid-out document
// content: scroll position, clamping, smooth scrolling, and scrollbar
// geometry. It knows heights, not paragraphs; the layout manager maps
// between the two.
package viewport

import (
	"math"

	"github.com/dshills/folio/internal/layout"
)

// Animation tuning. Ease-out speed is the fraction of the remaining
// distance covered per second; snapDistance stops the animation once
// the remainder is visually indistinguishable.
const (
	easeOutRate  = 12.0
	snapDistance = 0.5
)

// Manager holds the scroll state for one view.
type Manager struct {
	width         float64
	height        float64
	contentHeight float64
	scrollY       float64
	targetY       float64
	animating     bool
}

// NewManager creates a viewport of the given size.
func NewManager(width, height float64) *Manager {
	return &Manager{width: width, height: height}
}

// Size returns the viewport dimensions.
func (m *Manager) Size() (w, h float64) { return m.width, m.height }

// Resize changes the viewport size and re-clamps the scroll position.
func (m *Manager) Resize(width, height float64) {
	m.width = width
	m.height = height
	m.scrollY = m.clamp(m.scrollY)
	m.targetY = m.clamp(m.targetY)
}

// SetContentHeight updates the scrollable content height and re-clamps.
func (m *Manager) SetContentHeight(h float64) {
	m.contentHeight = h
	m.scrollY = m.clamp(m.scrollY)
	m.targetY = m.clamp(m.targetY)
}

// ContentHeight returns the current content height.
func (m *Manager) ContentHeight() float64 { return m.contentHeight }

// ScrollY returns the current scroll offset.
func (m *Manager) ScrollY() float64 { return m.scrollY }

// MaxScroll returns the largest valid scroll offset. It is zero when
// the content fits in the viewport.
func (m *Manager) MaxScroll() float64 {
	return math.Max(0, m.contentHeight-m.height)
}

func (m *Manager) clamp(y float64) float64 {
	return math.Min(math.Max(y, 0), m.MaxScroll())
}

// ScrollTo jumps to the offset immediately, cancelling any animation.
func (m *Manager) ScrollTo(y float64) {
	m.scrollY = m.clamp(y)
	m.targetY = m.scrollY
	m.animating = false
}

// ScrollBy jumps by a delta immediately.
func (m *Manager) ScrollBy(dy float64) { m.ScrollTo(m.scrollY + dy) }

// SmoothScrollTo starts an ease-out animation toward the offset.
func (m *Manager) SmoothScrollTo(y float64) {
	m.targetY = m.clamp(y)
	m.animating = m.targetY != m.scrollY
}

// SmoothScrollBy starts an ease-out animation by a delta, accumulating
// onto a running animation so repeated wheel ticks feel continuous.
func (m *Manager) SmoothScrollBy(dy float64) {
	base := m.scrollY
	if m.animating {
		base = m.targetY
	}
	m.SmoothScrollTo(base + dy)
}

// IsAnimating reports whether a smooth scroll is in progress.
func (m *Manager) IsAnimating() bool { return m.animating }

// StopAnimation freezes the scroll at its current position.
func (m *Manager) StopAnimation() {
	m.targetY = m.scrollY
	m.animating = false
}

// Update advances the animation by dt seconds and reports whether the
// view moved.
func (m *Manager) Update(dt float64) bool {
	if !m.animating {
		return false
	}
	remaining := m.targetY - m.scrollY
	if math.Abs(remaining) <= snapDistance {
		m.scrollY = m.targetY
		m.animating = false
		return true
	}
	step := remaining * math.Min(1, easeOutRate*dt)
	m.scrollY += step
	return true
}

// VisibleRange returns the document-space Y interval the viewport
// shows.
func (m *Manager) VisibleRange() (top, bottom float64) {
	return m.scrollY, m.scrollY + m.height
}

// IsVisible reports whether any part of the rectangle is inside the
// viewport.
func (m *Manager) IsVisible(r layout.Rect) bool {
	top, bottom := m.VisibleRange()
	return r.Y < bottom && r.Y+r.H > top && r.X < m.width && r.X+r.W > 0
}

// ToView translates a document-space rectangle into viewport space.
func (m *Manager) ToView(r layout.Rect) layout.Rect {
	r.Y -= m.scrollY
	return r
}

// EnsureVisible scrolls the minimum distance needed to bring the
// rectangle fully into view, with margin rows of context. Rectangles
// already visible leave the scroll untouched.
func (m *Manager) EnsureVisible(r layout.Rect, margin float64) {
	top, bottom := m.VisibleRange()
	switch {
	case r.Y < top+margin:
		m.ScrollTo(r.Y - margin)
	case r.Y+r.H > bottom-margin:
		m.ScrollTo(r.Y + r.H - m.height + margin)
	}
}

// ScrollbarThumb returns the thumb rectangle in viewport space for a
// scrollbar of the viewport's height in the rightmost column. The
// second result is false when the content fits and no scrollbar is
// needed.
func (m *Manager) ScrollbarThumb() (layout.Rect, bool) {
	if m.contentHeight <= m.height || m.height <= 0 {
		return layout.Rect{}, false
	}
	size := math.Max(1, m.height*m.height/m.contentHeight)
	travel := m.height - size
	y := 0.0
	if ms := m.MaxScroll(); ms > 0 {
		y = m.scrollY / ms * travel
	}
	return layout.Rect{X: m.width - 1, Y: y, W: 1, H: size}, true
}
