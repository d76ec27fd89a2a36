package layout

import "github.com/dshills/folio/internal/document"

// Line is one wrapped line of a paragraph. Offsets are rune offsets
// into the paragraph's plain text; Y is relative to the paragraph top.
type Line struct {
	Start  int
	End    int
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// ParagraphLayout is the wrapped form of one paragraph at one width.
// It is immutable once computed; edits produce a fresh layout.
type ParagraphLayout struct {
	text   []rune
	widths []float64
	lines  []Line
	width  float64
	height float64
}

// LayoutParagraph wraps p to the given width. Lines break at the last
// space that fits; a word wider than the whole line breaks mid-word.
// An empty paragraph still yields one empty line so it has height and a
// cursor rect.
func LayoutParagraph(p *document.Paragraph, width float64, m Metrics) *ParagraphLayout {
	text := []rune(p.PlainText())
	widths := make([]float64, len(text))
	spans := p.FormatSpans()
	si := 0
	for i, r := range text {
		for si < len(spans) && i >= spans[si].End {
			si++
		}
		var fs document.FormatSet
		if si < len(spans) && i >= spans[si].Start {
			fs = spans[si].Formats
		}
		widths[i] = m.RuneWidth(r, fs)
	}

	lh := m.LineHeight()
	pl := &ParagraphLayout{text: text, widths: widths, width: width}

	lineStart := 0
	lineWidth := 0.0
	lastBreak := -1   // offset just after the last space on this line
	breakWidth := 0.0 // line width at lastBreak
	flush := func(end int, w float64) {
		pl.lines = append(pl.lines, Line{
			Start:  lineStart,
			End:    end,
			Y:      float64(len(pl.lines)) * lh,
			Width:  w,
			Height: lh,
		})
	}
	for i := 0; i < len(text); i++ {
		w := widths[i]
		if lineWidth+w > width && lineWidth > 0 {
			if lastBreak > lineStart {
				flush(lastBreak, breakWidth)
				lineStart = lastBreak
				lineWidth = 0
				for j := lineStart; j < i; j++ {
					lineWidth += widths[j]
				}
			} else {
				flush(i, lineWidth)
				lineStart = i
				lineWidth = 0
			}
			lastBreak = -1
		}
		lineWidth += w
		if text[i] == ' ' {
			lastBreak = i + 1
			breakWidth = lineWidth
		}
	}
	flush(len(text), lineWidth)

	align := p.Alignment()
	for i := range pl.lines {
		switch align {
		case document.AlignCenter:
			pl.lines[i].X = (width - pl.lines[i].Width) / 2
		case document.AlignRight:
			pl.lines[i].X = width - pl.lines[i].Width
		}
		if pl.lines[i].X < 0 {
			pl.lines[i].X = 0
		}
	}
	pl.height = float64(len(pl.lines)) * lh
	return pl
}

// Lines returns the wrapped lines.
func (pl *ParagraphLayout) Lines() []Line { return pl.lines }

// LineCount returns the number of wrapped lines.
func (pl *ParagraphLayout) LineCount() int { return len(pl.lines) }

// Height returns the paragraph's laid-out height, spacing excluded.
func (pl *ParagraphLayout) Height() float64 { return pl.height }

// Width returns the width the paragraph was wrapped to.
func (pl *ParagraphLayout) Width() float64 { return pl.width }

// Text returns the paragraph text the layout was computed from.
func (pl *ParagraphLayout) Text() []rune { return pl.text }

// LineForOffset returns the index of the line containing the rune
// offset. An offset at a line's end belongs to that line, so the cursor
// stays on the line just typed on.
func (pl *ParagraphLayout) LineForOffset(offset int) int {
	for i, ln := range pl.lines {
		if offset < ln.End || (offset == ln.End && i == len(pl.lines)-1) {
			return i
		}
	}
	return len(pl.lines) - 1
}

// CursorRect returns the caret rectangle for a rune offset, relative to
// the paragraph top.
func (pl *ParagraphLayout) CursorRect(offset int) Rect {
	if offset < 0 {
		offset = 0
	}
	if offset > len(pl.text) {
		offset = len(pl.text)
	}
	li := pl.LineForOffset(offset)
	ln := pl.lines[li]
	x := ln.X
	for i := ln.Start; i < offset && i < ln.End; i++ {
		x += pl.widths[i]
	}
	return Rect{X: x, Y: ln.Y, W: 1, H: ln.Height}
}

// LineRect returns the bounding rectangle of line i, relative to the
// paragraph top.
func (pl *ParagraphLayout) LineRect(i int) Rect {
	if i < 0 || i >= len(pl.lines) {
		return Rect{}
	}
	ln := pl.lines[i]
	return Rect{X: ln.X, Y: ln.Y, W: ln.Width, H: ln.Height}
}

// OffsetAt maps a point relative to the paragraph top back to a rune
// offset, clamping to the nearest valid offset on the nearest line.
func (pl *ParagraphLayout) OffsetAt(x, y float64) int {
	if len(pl.lines) == 0 {
		return 0
	}
	li := 0
	for i, ln := range pl.lines {
		if y >= ln.Y {
			li = i
		}
	}
	ln := pl.lines[li]
	if x <= ln.X {
		return ln.Start
	}
	cx := ln.X
	for i := ln.Start; i < ln.End; i++ {
		w := pl.widths[i]
		if x < cx+w/2 {
			return i
		}
		cx += w
	}
	// Past the end of a wrapped line the offset stops before the break,
	// so clicking in the right margin never jumps to the next line.
	if li < len(pl.lines)-1 && ln.End > ln.Start {
		return ln.End - 1
	}
	return ln.End
}
