package document

import "strings"

// Alignment controls horizontal paragraph alignment.
type Alignment uint8

const (
	// AlignLeft aligns lines to the left edge.
	AlignLeft Alignment = iota

	// AlignCenter centers lines within the content width.
	AlignCenter

	// AlignRight aligns lines to the right edge.
	AlignRight

	// AlignJustify stretches lines to the content width.
	AlignJustify
)

// String returns the alignment name.
func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "left"
	}
}

// Paragraph is the block-level unit of a document: an ordered sequence
// of inline elements, a style id, an alignment, and comments anchored
// to offset ranges.
type Paragraph struct {
	elements  []Element
	styleID   string
	alignment Alignment
	comments  []Comment
}

// NewParagraph creates a paragraph with the given initial text. An
// empty string yields a paragraph with no elements.
func NewParagraph(text string) *Paragraph {
	p := &Paragraph{}
	if text != "" {
		p.elements = []Element{NewTextRun(text)}
	}
	return p
}

// NewStyledParagraph creates a paragraph with text and a style id.
func NewStyledParagraph(text, styleID string) *Paragraph {
	p := NewParagraph(text)
	p.styleID = styleID
	return p
}

// Elements returns the paragraph's element list. The slice must not be
// mutated by callers; use the editing methods instead.
func (p *Paragraph) Elements() []Element { return p.elements }

// ElementCount returns the number of top-level elements.
func (p *Paragraph) ElementCount() int { return len(p.elements) }

// AddElement appends an element to the paragraph.
func (p *Paragraph) AddElement(el Element) {
	p.elements = append(p.elements, el)
}

// PlainText returns the concatenated plain text of all elements.
func (p *Paragraph) PlainText() string {
	var b strings.Builder
	for _, el := range p.elements {
		b.WriteString(el.PlainText())
	}
	return b.String()
}

// Length returns the paragraph's plain-text length in runes.
func (p *Paragraph) Length() int {
	total := 0
	for _, el := range p.elements {
		total += el.Length()
	}
	return total
}

// IsEmpty reports whether the paragraph has no text content.
func (p *Paragraph) IsEmpty() bool { return p.Length() == 0 }

// StyleID returns the paragraph style id (empty for the default style).
func (p *Paragraph) StyleID() string { return p.styleID }

// SetStyleID sets the paragraph style id.
func (p *Paragraph) SetStyleID(id string) { p.styleID = id }

// Alignment returns the paragraph alignment.
func (p *Paragraph) Alignment() Alignment { return p.alignment }

// SetAlignment sets the paragraph alignment.
func (p *Paragraph) SetAlignment(a Alignment) { p.alignment = a }

// Clone returns a deep copy of the paragraph, including comments.
func (p *Paragraph) Clone() *Paragraph {
	cp := &Paragraph{
		styleID:   p.styleID,
		alignment: p.alignment,
	}
	cp.elements = make([]Element, len(p.elements))
	for i, el := range p.elements {
		cp.elements[i] = el.Clone()
	}
	cp.comments = append([]Comment(nil), p.comments...)
	return cp
}

// FormatSpans flattens the element tree into contiguous spans of
// uniformly formatted text, in document order. Offsets are rune offsets
// into PlainText.
func (p *Paragraph) FormatSpans() []FormatSpan {
	runs := mergeAdjacentRuns(flattenElements(p.elements, 0, ""))
	spans := make([]FormatSpan, 0, len(runs))
	offset := 0
	for _, r := range runs {
		end := offset + len(r.text)
		spans = append(spans, FormatSpan{Start: offset, End: end, Formats: r.formats, StyleID: r.styleID})
		offset = end
	}
	return spans
}

// FormatsAt returns the effective format set at the given rune offset.
func (p *Paragraph) FormatsAt(offset int) FormatSet {
	for _, span := range p.FormatSpans() {
		if offset >= span.Start && offset < span.End {
			return span.Formats
		}
	}
	return 0
}

// InsertText inserts text at a rune offset. The offset is clamped to
// [0, Length]. Text inserted at a boundary inherits the formatting of
// the preceding run, so typing after bold text stays bold.
func (p *Paragraph) InsertText(offset int, text string) {
	if text == "" {
		return
	}
	offset = clampInt(offset, 0, p.Length())
	runs := mergeAdjacentRuns(flattenElements(p.elements, 0, ""))
	insert := []rune(text)

	if len(runs) == 0 {
		p.elements = []Element{NewTextRun(text)}
		p.shiftComments(offset, len(insert))
		return
	}

	pos := 0
	done := false
	var out []styledRun
	for _, r := range runs {
		end := pos + len(r.text)
		// Insert into the run containing the offset; at an exact
		// boundary the preceding run wins so its formatting carries.
		if !done && offset <= end {
			at := offset - pos
			merged := make([]rune, 0, len(r.text)+len(insert))
			merged = append(merged, r.text[:at]...)
			merged = append(merged, insert...)
			merged = append(merged, r.text[at:]...)
			out = append(out, styledRun{text: merged, formats: r.formats, styleID: r.styleID})
			done = true
		} else {
			out = append(out, r)
		}
		pos = end
	}
	p.elements = buildElements(out)
	p.shiftComments(offset, len(insert))
}

// DeleteText removes the rune range [start, end). The range is clamped
// and normalized; runs that become empty are dropped.
func (p *Paragraph) DeleteText(start, end int) {
	length := p.Length()
	start = clampInt(start, 0, length)
	end = clampInt(end, 0, length)
	if start >= end {
		return
	}
	runs := mergeAdjacentRuns(flattenElements(p.elements, 0, ""))
	var out []styledRun
	pos := 0
	for _, r := range runs {
		runEnd := pos + len(r.text)
		keepLo := clampInt(start-pos, 0, len(r.text))
		keepHi := clampInt(end-pos, 0, len(r.text))
		kept := make([]rune, 0, len(r.text))
		kept = append(kept, r.text[:keepLo]...)
		kept = append(kept, r.text[keepHi:]...)
		if len(kept) > 0 {
			out = append(out, styledRun{text: kept, formats: r.formats, styleID: r.styleID})
		}
		pos = runEnd
	}
	p.elements = buildElements(out)
	p.deleteFromComments(start, end)
}

// SplitAt splits the paragraph at a rune offset and returns a new
// paragraph holding the content from offset to the end. The receiver
// keeps the content before the offset. The new paragraph inherits the
// style and alignment; comments move with the half that contains them.
func (p *Paragraph) SplitAt(offset int) *Paragraph {
	offset = clampInt(offset, 0, p.Length())
	runs := mergeAdjacentRuns(flattenElements(p.elements, 0, ""))

	var head, tail []styledRun
	pos := 0
	for _, r := range runs {
		end := pos + len(r.text)
		switch {
		case end <= offset:
			head = append(head, r)
		case pos >= offset:
			tail = append(tail, r)
		default:
			at := offset - pos
			head = append(head, styledRun{text: r.text[:at], formats: r.formats, styleID: r.styleID})
			tail = append(tail, styledRun{text: r.text[at:], formats: r.formats, styleID: r.styleID})
		}
		pos = end
	}

	next := &Paragraph{
		styleID:   p.styleID,
		alignment: p.alignment,
		elements:  buildElements(tail),
	}
	p.elements = buildElements(head)

	var keep []Comment
	for _, c := range p.comments {
		if c.Start >= offset {
			c.Start -= offset
			c.End -= offset
			next.comments = append(next.comments, c)
		} else {
			if c.End > offset {
				c.End = offset
			}
			keep = append(keep, c)
		}
	}
	p.comments = keep
	return next
}

// MergeWith appends the content of other to the receiver. Elements are
// moved, other is left empty, and other's comments are re-anchored past
// the former end of the receiver.
func (p *Paragraph) MergeWith(other *Paragraph) {
	joinAt := p.Length()
	p.elements = buildElements(mergeAdjacentRuns(append(
		flattenElements(p.elements, 0, ""),
		flattenElements(other.elements, 0, "")...)))
	for _, c := range other.comments {
		c.Start += joinAt
		c.End += joinAt
		p.comments = append(p.comments, c)
	}
	other.elements = nil
	other.comments = nil
}

// ApplyFormat applies a format to the rune range [start, end).
func (p *Paragraph) ApplyFormat(start, end int, format Format) {
	p.reformat(start, end, func(s FormatSet) FormatSet { return s.With(format) })
}

// RemoveFormat removes a format from the rune range [start, end).
func (p *Paragraph) RemoveFormat(start, end int, format Format) {
	p.reformat(start, end, func(s FormatSet) FormatSet { return s.Without(format) })
}

// ClearFormats removes all formatting from the rune range [start, end).
func (p *Paragraph) ClearFormats(start, end int) {
	p.reformat(start, end, func(FormatSet) FormatSet { return 0 })
}

func (p *Paragraph) reformat(start, end int, apply func(FormatSet) FormatSet) {
	length := p.Length()
	start = clampInt(start, 0, length)
	end = clampInt(end, 0, length)
	if start >= end {
		return
	}
	runs := mergeAdjacentRuns(flattenElements(p.elements, 0, ""))
	var out []styledRun
	pos := 0
	for _, r := range runs {
		runEnd := pos + len(r.text)
		lo := clampInt(start-pos, 0, len(r.text))
		hi := clampInt(end-pos, 0, len(r.text))
		if lo > 0 {
			out = append(out, styledRun{text: r.text[:lo], formats: r.formats, styleID: r.styleID})
		}
		if hi > lo {
			out = append(out, styledRun{text: r.text[lo:hi], formats: apply(r.formats), styleID: r.styleID})
		}
		if hi < len(r.text) {
			out = append(out, styledRun{text: r.text[hi:], formats: r.formats, styleID: r.styleID})
		}
		pos = runEnd
	}
	p.elements = buildElements(out)
}

// Comments returns the paragraph's comments.
func (p *Paragraph) Comments() []Comment { return p.comments }

// CommentCount returns the number of comments.
func (p *Paragraph) CommentCount() int { return len(p.comments) }

// AddComment attaches a comment to the paragraph.
func (p *Paragraph) AddComment(c Comment) {
	p.comments = append(p.comments, c)
}

// RemoveComment removes a comment by id. Returns true if it was found.
func (p *Paragraph) RemoveComment(id string) bool {
	for i, c := range p.comments {
		if c.ID == id {
			p.comments = append(p.comments[:i], p.comments[i+1:]...)
			return true
		}
	}
	return false
}

// CommentByID finds a comment by id, or nil.
func (p *Paragraph) CommentByID(id string) *Comment {
	for i := range p.comments {
		if p.comments[i].ID == id {
			return &p.comments[i]
		}
	}
	return nil
}

// CommentsInRange returns comments overlapping the rune range [start, end).
func (p *Paragraph) CommentsInRange(start, end int) []Comment {
	var out []Comment
	for _, c := range p.comments {
		if c.Start < end && c.End > start {
			out = append(out, c)
		}
	}
	return out
}

// shiftComments moves comment anchors after an insertion of n runes at
// offset. Anchors at or after the offset shift right; a comment whose
// interior contains the offset grows.
func (p *Paragraph) shiftComments(offset, n int) {
	for i := range p.comments {
		c := &p.comments[i]
		if c.Start >= offset {
			c.Start += n
		}
		if c.End > offset {
			c.End += n
		}
	}
}

// deleteFromComments adjusts comment anchors after deleting [start, end).
// Comments whose range collapses to nothing are dropped.
func (p *Paragraph) deleteFromComments(start, end int) {
	n := end - start
	var keep []Comment
	for _, c := range p.comments {
		c.Start = collapseOffset(c.Start, start, end, n)
		c.End = collapseOffset(c.End, start, end, n)
		if c.Start < c.End {
			keep = append(keep, c)
		}
	}
	p.comments = keep
}

func collapseOffset(off, start, end, n int) int {
	switch {
	case off <= start:
		return off
	case off >= end:
		return off - n
	default:
		return start
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
