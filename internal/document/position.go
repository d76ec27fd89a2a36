package document

// Position addresses a point in a document: a paragraph index and a
// rune offset within that paragraph. Offset == Length is valid and
// means end of paragraph.
type Position struct {
	Paragraph int
	Offset    int
}

// Before reports whether p addresses a point strictly before other.
func (p Position) Before(other Position) bool {
	if p.Paragraph != other.Paragraph {
		return p.Paragraph < other.Paragraph
	}
	return p.Offset < other.Offset
}

// After reports whether p addresses a point strictly after other.
func (p Position) After(other Position) bool {
	return other.Before(p)
}

// ToAbsolute converts the position to an absolute rune offset over the
// whole document, counting one separator between paragraphs. The
// position is validated first, so out-of-range input yields the nearest
// valid absolute offset.
func (d *Document) ToAbsolute(pos Position) int {
	pos = d.Validate(pos)
	abs := 0
	for i := 0; i < pos.Paragraph; i++ {
		abs += d.paragraphs[i].Length() + 1
	}
	return abs + pos.Offset
}

// FromAbsolute converts an absolute rune offset back to a Position. The
// offset addressing a separator maps to the end of the paragraph before
// it. Out-of-range offsets clamp to the document start or end.
func (d *Document) FromAbsolute(abs int) Position {
	if len(d.paragraphs) == 0 || abs <= 0 {
		return d.Validate(Position{})
	}
	for i, p := range d.paragraphs {
		length := p.Length()
		if abs <= length {
			return Position{Paragraph: i, Offset: abs}
		}
		abs -= length + 1
	}
	last := len(d.paragraphs) - 1
	return Position{Paragraph: last, Offset: d.paragraphs[last].Length()}
}

// Validate clamps a position into the valid addressing space: paragraph
// index into [0, ParagraphCount-1] and offset into [0, Length]. On an
// empty document the only valid position is the zero position.
func (d *Document) Validate(pos Position) Position {
	if len(d.paragraphs) == 0 {
		return Position{}
	}
	pos.Paragraph = clampInt(pos.Paragraph, 0, len(d.paragraphs)-1)
	pos.Offset = clampInt(pos.Offset, 0, d.paragraphs[pos.Paragraph].Length())
	return pos
}

// IsValid reports whether pos addresses an existing point without
// clamping.
func (d *Document) IsValid(pos Position) bool {
	if pos.Paragraph < 0 || pos.Paragraph >= len(d.paragraphs) {
		return false
	}
	return pos.Offset >= 0 && pos.Offset <= d.paragraphs[pos.Paragraph].Length()
}

// End returns the position after the last rune of the document.
func (d *Document) End() Position {
	if len(d.paragraphs) == 0 {
		return Position{}
	}
	last := len(d.paragraphs) - 1
	return Position{Paragraph: last, Offset: d.paragraphs[last].Length()}
}
