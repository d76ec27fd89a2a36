package layout

import (
	"sync"

	"github.com/dshills/folio/internal/document"
)

// Cache tuning defaults.
const (
	DefaultMaxCached   = 150
	DefaultWarmupExtra = 50
)

// Stats reports cache effectiveness.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

type cacheEntry struct {
	layout   *ParagraphLayout
	lastUsed uint64
}

// Manager computes and caches paragraph layouts for one document at one
// width. It implements document.Observer; register it with the document
// so edits invalidate the affected entries.
//
// Cumulative paragraph Y positions are memoized as a prefix: an edit to
// paragraph i only discards positions from i on, so scrolling near the
// top of a large document stays cheap while editing near the bottom.
type Manager struct {
	mu      sync.Mutex
	doc     *document.Document
	metrics Metrics
	width   float64

	cache     map[int]*cacheEntry
	maxCached int
	clock     uint64

	// pinFrom/pinTo is the last warmed range, exempt from eviction so
	// a small cache cap cannot churn the visible paragraphs. Refreshed
	// by every Warm; pinFrom > pinTo means nothing is pinned.
	pinFrom, pinTo int

	cumY  []float64 // cumY[i] is the top Y of paragraph i
	valid int       // prefix length of cumY that is current

	stats Stats
}

// NewManager creates a manager over doc at the given wrap width.
func NewManager(doc *document.Document, metrics Metrics, width float64) *Manager {
	return &Manager{
		doc:       doc,
		metrics:   metrics,
		width:     width,
		cache:     make(map[int]*cacheEntry),
		maxCached: DefaultMaxCached,
		pinTo:     -1,
	}
}

// SetMaxCached caps the number of cached paragraph layouts.
func (m *Manager) SetMaxCached(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n > 0 {
		m.maxCached = n
	}
}

// Width returns the current wrap width.
func (m *Manager) Width() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width
}

// SetWidth changes the wrap width and discards every cached layout.
func (m *Manager) SetWidth(w float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w == m.width {
		return
	}
	m.width = w
	m.invalidateAllLocked()
}

// SetMetrics swaps the measurement source and discards every cached
// layout.
func (m *Manager) SetMetrics(metrics Metrics) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics = metrics
	m.invalidateAllLocked()
}

// Paragraph returns the layout of paragraph index, computing and
// caching it on a miss. Returns nil for an out-of-range index.
func (m *Manager) Paragraph(index int) *ParagraphLayout {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paragraphLocked(index)
}

func (m *Manager) paragraphLocked(index int) *ParagraphLayout {
	m.clock++
	if e, ok := m.cache[index]; ok {
		e.lastUsed = m.clock
		m.stats.Hits++
		return e.layout
	}
	p := m.doc.ParagraphAt(index)
	if p == nil {
		return nil
	}
	m.stats.Misses++
	pl := LayoutParagraph(p, m.width, m.metrics)
	m.cache[index] = &cacheEntry{layout: pl, lastUsed: m.clock}
	m.evictLocked()
	return pl
}

func (m *Manager) evictLocked() {
	for len(m.cache) > m.maxCached {
		oldest, oldestUsed := -1, m.clock+1
		for i, e := range m.cache {
			if i >= m.pinFrom && i <= m.pinTo {
				continue
			}
			if e.lastUsed < oldestUsed {
				oldest, oldestUsed = i, e.lastUsed
			}
		}
		if oldest < 0 {
			// Everything over the cap is pinned; the cache runs large
			// until the next Warm narrows the range.
			return
		}
		delete(m.cache, oldest)
		m.stats.Evictions++
	}
}

// ParagraphHeight returns the height of paragraph index, spacing
// excluded.
func (m *Manager) ParagraphHeight(index int) float64 {
	pl := m.Paragraph(index)
	if pl == nil {
		return 0
	}
	return pl.Height()
}

// ParagraphY returns the document-space top Y of paragraph index.
func (m *Manager) ParagraphY(index int) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paragraphYLocked(index)
}

func (m *Manager) paragraphYLocked(index int) float64 {
	n := m.doc.ParagraphCount()
	if index < 0 || index >= n {
		return m.extendCumLocked(n)
	}
	m.extendCumLocked(index + 1)
	return m.cumY[index]
}

// extendCumLocked ensures cumY covers indexes [0, upto) and returns the
// Y just past the last covered paragraph.
func (m *Manager) extendCumLocked(upto int) float64 {
	spacing := m.metrics.ParagraphSpacing()
	if cap(m.cumY) < upto {
		grown := make([]float64, upto)
		copy(grown, m.cumY[:m.valid])
		m.cumY = grown
	}
	m.cumY = m.cumY[:max(upto, m.valid)]
	y := 0.0
	if m.valid > 0 {
		last := m.valid - 1
		y = m.cumY[last] + m.heightLocked(last) + spacing
	}
	for i := m.valid; i < upto; i++ {
		m.cumY[i] = y
		y += m.heightLocked(i) + spacing
	}
	if upto > m.valid {
		m.valid = upto
		return y
	}
	last := upto - 1
	if last < 0 {
		return 0
	}
	return m.cumY[last] + m.heightLocked(last) + spacing
}

func (m *Manager) heightLocked(index int) float64 {
	pl := m.paragraphLocked(index)
	if pl == nil {
		return 0
	}
	return pl.Height()
}

// TotalHeight returns the full document height including spacing.
func (m *Manager) TotalHeight() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.doc.ParagraphCount()
	if n == 0 {
		return 0
	}
	return m.extendCumLocked(n) - m.metrics.ParagraphSpacing()
}

// FindParagraphAt returns the index of the paragraph containing the
// document-space Y, clamping to the first or last paragraph.
func (m *Manager) FindParagraphAt(y float64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.doc.ParagraphCount()
	if n == 0 {
		return 0
	}
	if y <= 0 {
		return 0
	}
	spacing := m.metrics.ParagraphSpacing()
	for i := 0; i < n; i++ {
		top := m.paragraphYLocked(i)
		if y < top+m.heightLocked(i)+spacing {
			return i
		}
	}
	return n - 1
}

// Warm precomputes layouts for the paragraph range [from, to] plus the
// read-ahead buffer on both sides, so scrolling into them never stalls.
// The warmed range is pinned against eviction until the next Warm.
func (m *Manager) Warm(from, to int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.doc.ParagraphCount()
	from = max(from-DefaultWarmupExtra, 0)
	to = min(to+DefaultWarmupExtra, n-1)
	m.pinFrom, m.pinTo = from, to
	for i := from; i <= to; i++ {
		m.paragraphLocked(i)
	}
}

// CursorDocumentRect returns the caret rectangle for pos in document
// space.
func (m *Manager) CursorDocumentRect(pos document.Position) Rect {
	pl := m.Paragraph(pos.Paragraph)
	if pl == nil {
		return Rect{W: 1, H: m.metrics.LineHeight()}
	}
	r := pl.CursorRect(pos.Offset)
	r.Y += m.ParagraphY(pos.Paragraph)
	return r
}

// PositionAt maps a document-space point to the closest position.
func (m *Manager) PositionAt(x, y float64) document.Position {
	index := m.FindParagraphAt(y)
	pl := m.Paragraph(index)
	if pl == nil {
		return document.Position{}
	}
	offset := pl.OffsetAt(x, y-m.ParagraphY(index))
	return m.doc.Validate(document.Position{Paragraph: index, Offset: offset})
}

// Stats returns a snapshot of the cache counters.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// CachedCount returns the number of cached layouts.
func (m *Manager) CachedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cache)
}

func (m *Manager) invalidateAllLocked() {
	m.cache = make(map[int]*cacheEntry)
	m.valid = 0
}

// ContentChanged discards everything after a wholesale replacement.
func (m *Manager) ContentChanged() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidateAllLocked()
}

// ParagraphInserted shifts cached entries past the insertion point and
// truncates the cumulative prefix.
func (m *Manager) ParagraphInserted(index int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	shifted := make(map[int]*cacheEntry, len(m.cache))
	for i, e := range m.cache {
		if i >= index {
			shifted[i+1] = e
		} else {
			shifted[i] = e
		}
	}
	m.cache = shifted
	m.valid = min(m.valid, index)
}

// ParagraphRemoved drops the removed entry, shifts the rest down, and
// truncates the cumulative prefix.
func (m *Manager) ParagraphRemoved(index int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	shifted := make(map[int]*cacheEntry, len(m.cache))
	for i, e := range m.cache {
		switch {
		case i == index:
		case i > index:
			shifted[i-1] = e
		default:
			shifted[i] = e
		}
	}
	m.cache = shifted
	m.valid = min(m.valid, index)
}

// ParagraphModified drops the edited entry and truncates the cumulative
// prefix; following paragraphs keep their layouts, only their Y moves.
func (m *Manager) ParagraphModified(index int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cache, index)
	m.valid = min(m.valid, index)
}
