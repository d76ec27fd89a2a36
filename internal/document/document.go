package document

import "strings"

// ParagraphSeparator joins paragraphs in plain-text form and counts as
// one rune in absolute offsets.
const ParagraphSeparator = '\n'

// Observer receives synchronous notifications about document mutations.
// Dependent caches (layout, annotations) register as observers and
// invalidate the affected entries.
type Observer interface {
	// ContentChanged signals a wholesale replacement of the document.
	ContentChanged()

	// ParagraphInserted signals a new paragraph at index.
	ParagraphInserted(index int)

	// ParagraphRemoved signals removal of the paragraph at index.
	ParagraphRemoved(index int)

	// ParagraphModified signals an in-place change to the paragraph at
	// index (text, formatting, or comments).
	ParagraphModified(index int)
}

// Document is an ordered sequence of paragraphs plus document-wide
// markers. An empty document has zero paragraphs, never a single empty
// paragraph.
type Document struct {
	paragraphs []*Paragraph
	markers    []Marker
	observers  []Observer
}

// New creates an empty document.
func New() *Document {
	return &Document{}
}

// AddObserver registers an observer for mutation notifications.
func (d *Document) AddObserver(o Observer) {
	d.observers = append(d.observers, o)
}

// RemoveObserver unregisters an observer.
func (d *Document) RemoveObserver(o Observer) {
	for i, ob := range d.observers {
		if ob == o {
			d.observers = append(d.observers[:i], d.observers[i+1:]...)
			return
		}
	}
}

// ParagraphCount returns the number of paragraphs.
func (d *Document) ParagraphCount() int { return len(d.paragraphs) }

// IsEmpty reports whether the document has no paragraphs.
func (d *Document) IsEmpty() bool { return len(d.paragraphs) == 0 }

// ParagraphAt returns the paragraph at index, or nil if out of range.
func (d *Document) ParagraphAt(index int) *Paragraph {
	if index < 0 || index >= len(d.paragraphs) {
		return nil
	}
	return d.paragraphs[index]
}

// AppendParagraph adds a paragraph at the end of the document.
func (d *Document) AppendParagraph(p *Paragraph) {
	d.paragraphs = append(d.paragraphs, p)
	d.notifyInserted(len(d.paragraphs) - 1)
}

// InsertParagraph inserts a paragraph at index, shifting later
// paragraphs. The index is clamped to [0, ParagraphCount].
func (d *Document) InsertParagraph(index int, p *Paragraph) {
	index = clampInt(index, 0, len(d.paragraphs))
	d.paragraphs = append(d.paragraphs, nil)
	copy(d.paragraphs[index+1:], d.paragraphs[index:])
	d.paragraphs[index] = p
	d.notifyInserted(index)
}

// RemoveParagraph removes and returns the paragraph at index, or nil if
// out of range.
func (d *Document) RemoveParagraph(index int) *Paragraph {
	if index < 0 || index >= len(d.paragraphs) {
		return nil
	}
	p := d.paragraphs[index]
	d.paragraphs = append(d.paragraphs[:index], d.paragraphs[index+1:]...)
	d.notifyRemoved(index)
	return p
}

// SetParagraph replaces the paragraph at index.
func (d *Document) SetParagraph(index int, p *Paragraph) {
	if index < 0 || index >= len(d.paragraphs) {
		return
	}
	d.paragraphs[index] = p
	d.notifyModified(index)
}

// Replace swaps the entire paragraph list, e.g. after a markup load.
// Markers are cleared; the caller re-adds any it parsed.
func (d *Document) Replace(paragraphs []*Paragraph) {
	d.paragraphs = paragraphs
	d.markers = nil
	for _, o := range d.observers {
		o.ContentChanged()
	}
}

// Paragraphs returns the paragraph slice. Callers must not mutate it.
func (d *Document) Paragraphs() []*Paragraph { return d.paragraphs }

// PlainText returns the whole document as plain text with paragraphs
// joined by the separator rune.
func (d *Document) PlainText() string {
	parts := make([]string, len(d.paragraphs))
	for i, p := range d.paragraphs {
		parts[i] = p.PlainText()
	}
	return strings.Join(parts, string(ParagraphSeparator))
}

// ParagraphPlainText returns the plain text of one paragraph, or "" if
// the index is out of range. This is the annotation-service contract.
func (d *Document) ParagraphPlainText(index int) string {
	p := d.ParagraphAt(index)
	if p == nil {
		return ""
	}
	return p.PlainText()
}

// Length returns the document length in runes, counting one separator
// between adjacent paragraphs.
func (d *Document) Length() int {
	if len(d.paragraphs) == 0 {
		return 0
	}
	total := len(d.paragraphs) - 1
	for _, p := range d.paragraphs {
		total += p.Length()
	}
	return total
}

// NotifyParagraphModified fires a modification notification for index.
// Commands call this after mutating a paragraph in place.
func (d *Document) NotifyParagraphModified(index int) {
	d.notifyModified(index)
}

func (d *Document) notifyInserted(index int) {
	for _, o := range d.observers {
		o.ParagraphInserted(index)
	}
}

func (d *Document) notifyRemoved(index int) {
	for _, o := range d.observers {
		o.ParagraphRemoved(index)
	}
}

func (d *Document) notifyModified(index int) {
	for _, o := range d.observers {
		o.ParagraphModified(index)
	}
}

// Markers returns all markers in the document.
func (d *Document) Markers() []Marker { return d.markers }

// AddMarker adds a marker.
func (d *Document) AddMarker(m Marker) {
	d.markers = append(d.markers, m)
}

// RemoveMarker removes a marker by id. Returns true if it was found.
func (d *Document) RemoveMarker(id string) bool {
	for i, m := range d.markers {
		if m.ID == id {
			d.markers = append(d.markers[:i], d.markers[i+1:]...)
			return true
		}
	}
	return false
}

// MarkerByID finds a marker by id, or nil.
func (d *Document) MarkerByID(id string) *Marker {
	for i := range d.markers {
		if d.markers[i].ID == id {
			return &d.markers[i]
		}
	}
	return nil
}

// MarkersByType returns all markers of the given type in position order.
func (d *Document) MarkersByType(typ MarkerType) []Marker {
	var out []Marker
	for _, m := range d.markers {
		if m.Type == typ {
			out = append(out, m)
		}
	}
	return out
}

// ToggleMarker flips the completion flag of a TODO marker. Returns true
// if the marker was found.
func (d *Document) ToggleMarker(id string) bool {
	m := d.MarkerByID(id)
	if m == nil {
		return false
	}
	m.Completed = !m.Completed
	return true
}

// NextMarker returns the first marker strictly after the absolute
// position, or nil.
func (d *Document) NextMarker(fromPosition int) *Marker {
	var best *Marker
	for i := range d.markers {
		m := &d.markers[i]
		if m.Position <= fromPosition {
			continue
		}
		if best == nil || m.Position < best.Position {
			best = m
		}
	}
	return best
}

// PrevMarker returns the last marker strictly before the absolute
// position, or nil.
func (d *Document) PrevMarker(fromPosition int) *Marker {
	var best *Marker
	for i := range d.markers {
		m := &d.markers[i]
		if m.Position >= fromPosition {
			continue
		}
		if best == nil || m.Position > best.Position {
			best = m
		}
	}
	return best
}

// OnTextInserted shifts marker anchors after an insertion of n runes at
// the absolute position.
func (d *Document) OnTextInserted(position, n int) {
	for i := range d.markers {
		if d.markers[i].Position >= position {
			d.markers[i].Position += n
		}
	}
}

// OnTextDeleted shifts marker anchors after deleting n runes at the
// absolute position. Markers inside the deleted range collapse to its
// start.
func (d *Document) OnTextDeleted(position, n int) {
	for i := range d.markers {
		d.markers[i].Position = collapseOffset(d.markers[i].Position, position, position+n, n)
	}
}
