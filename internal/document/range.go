package document

import "strings"

// Range is a half-open span of document content between two positions.
// Start and End may arrive in either order; use Normalized before
// iterating.
type Range struct {
	Start Position
	End   Position
}

// Normalized returns the range with Start <= End.
func (r Range) Normalized() Range {
	if r.End.Before(r.Start) {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// IsEmpty reports whether the range covers no content.
func (r Range) IsEmpty() bool { return r.Start == r.End }

// IsMultiParagraph reports whether the range spans a paragraph break.
func (r Range) IsMultiParagraph() bool {
	n := r.Normalized()
	return n.Start.Paragraph != n.End.Paragraph
}

// Contains reports whether pos lies within the normalized range,
// start inclusive and end exclusive.
func (r Range) Contains(pos Position) bool {
	n := r.Normalized()
	return !pos.Before(n.Start) && pos.Before(n.End)
}

// ParagraphBounds returns the range covering one whole paragraph. The
// index is clamped into the document; an empty document yields an
// empty range at the origin.
func (d *Document) ParagraphBounds(index int) Range {
	if len(d.paragraphs) == 0 {
		return Range{}
	}
	if index < 0 {
		index = 0
	}
	if index >= len(d.paragraphs) {
		index = len(d.paragraphs) - 1
	}
	return Range{
		Start: Position{Paragraph: index},
		End:   Position{Paragraph: index, Offset: d.paragraphs[index].Length()},
	}
}

// TextInRange extracts the plain text covered by the range, with
// paragraph breaks rendered as the separator rune. Endpoints are
// validated first.
func (d *Document) TextInRange(r Range) string {
	n := r.Normalized()
	start := d.Validate(n.Start)
	end := d.Validate(n.End)
	if start == end {
		return ""
	}

	if start.Paragraph == end.Paragraph {
		text := []rune(d.paragraphs[start.Paragraph].PlainText())
		return string(text[start.Offset:end.Offset])
	}

	var b strings.Builder
	first := []rune(d.paragraphs[start.Paragraph].PlainText())
	b.WriteString(string(first[start.Offset:]))
	for i := start.Paragraph + 1; i < end.Paragraph; i++ {
		b.WriteRune(ParagraphSeparator)
		b.WriteString(d.paragraphs[i].PlainText())
	}
	b.WriteRune(ParagraphSeparator)
	last := []rune(d.paragraphs[end.Paragraph].PlainText())
	b.WriteString(string(last[:end.Offset]))
	return b.String()
}
