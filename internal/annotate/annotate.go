// Package annotate holds transient per-paragraph annotation results
// from external checkers (spelling, grammar, style). Results are
// display state, not document content: they are never serialized and
// any edit to a paragraph drops its results until the checker reports
// again.
package annotate

import (
	"sync"

	"github.com/tidwall/gjson"
)

// Result is one flagged range within a paragraph's plain text.
type Result struct {
	Start       int // rune offset
	Length      int // rune count
	Message     string
	Kind        string
	Suggestions []string
}

// End returns the exclusive end offset of the flagged range.
func (r Result) End() int { return r.Start + r.Length }

// Manager stores results per paragraph index. It implements the
// document Observer interface so edits invalidate stale results.
// Checkers report from background goroutines, so access is locked.
type Manager struct {
	mu      sync.Mutex
	results map[int][]Result
	version uint64
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{results: make(map[int][]Result)}
}

// SetResults replaces the results for one paragraph.
func (m *Manager) SetResults(paragraph int, results []Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(results) == 0 {
		delete(m.results, paragraph)
	} else {
		m.results[paragraph] = results
	}
	m.version++
}

// SetResultsJSON parses a checker's JSON response for one paragraph.
// The expected shape is an array of objects with start, length,
// message, kind, and an optional suggestions array. Malformed entries
// are skipped rather than failing the batch.
func (m *Manager) SetResultsJSON(paragraph int, data string) {
	var results []Result
	gjson.Parse(data).ForEach(func(_, item gjson.Result) bool {
		length := int(item.Get("length").Int())
		if length <= 0 {
			return true
		}
		r := Result{
			Start:   int(item.Get("start").Int()),
			Length:  length,
			Message: item.Get("message").String(),
			Kind:    item.Get("kind").String(),
		}
		for _, s := range item.Get("suggestions").Array() {
			r.Suggestions = append(r.Suggestions, s.String())
		}
		results = append(results, r)
		return true
	})
	m.SetResults(paragraph, results)
}

// ResultsFor returns the results for one paragraph. The slice must not
// be mutated.
func (m *Manager) ResultsFor(paragraph int) []Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.results[paragraph]
}

// ResultAt returns the result covering the rune offset, or nil.
func (m *Manager) ResultAt(paragraph, offset int) *Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.results[paragraph] {
		r := &m.results[paragraph][i]
		if offset >= r.Start && offset < r.End() {
			return r
		}
	}
	return nil
}

// Count returns the total number of pending results.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, rs := range m.results {
		n += len(rs)
	}
	return n
}

// Version increments on every change; the render loop compares it to
// decide whether overlays need rebuilding.
func (m *Manager) Version() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version
}

// Clear drops all results.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = make(map[int][]Result)
	m.version++
}

// ContentChanged drops everything after a wholesale replacement.
func (m *Manager) ContentChanged() { m.Clear() }

// ParagraphInserted shifts results at and past the insertion point.
func (m *Manager) ParagraphInserted(index int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	shifted := make(map[int][]Result, len(m.results))
	for i, rs := range m.results {
		if i >= index {
			shifted[i+1] = rs
		} else {
			shifted[i] = rs
		}
	}
	m.results = shifted
	m.version++
}

// ParagraphRemoved drops the removed paragraph's results and shifts the
// rest down.
func (m *Manager) ParagraphRemoved(index int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	shifted := make(map[int][]Result, len(m.results))
	for i, rs := range m.results {
		switch {
		case i == index:
		case i > index:
			shifted[i-1] = rs
		default:
			shifted[i] = rs
		}
	}
	m.results = shifted
	m.version++
}

// ParagraphModified drops the edited paragraph's results; its offsets
// no longer line up with the text.
func (m *Manager) ParagraphModified(index int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.results[index]; ok {
		delete(m.results, index)
		m.version++
	}
}
