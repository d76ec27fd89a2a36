package render

import (
	"github.com/dshills/folio/internal/document"
	"github.com/dshills/folio/internal/layout"
	"github.com/dshills/folio/internal/viewport"
)

// OverlayKind selects the theme style of an overlay span.
type OverlayKind uint8

const (
	// OverlayComment highlights commented text.
	OverlayComment OverlayKind = iota

	// OverlayTodo highlights a TODO marker's anchor.
	OverlayTodo

	// OverlayNote highlights a note marker's anchor.
	OverlayNote

	// OverlayAnnotation underlines text flagged by an annotation
	// service, such as a spell checker.
	OverlayAnnotation

	// OverlaySearch highlights a search match.
	OverlaySearch
)

// Overlay is a transient highlight over a rune range of one paragraph.
type Overlay struct {
	Paragraph int
	Start     int
	End       int
	Kind      OverlayKind
}

// Frame is everything beyond the document a single paint needs.
type Frame struct {
	Cursor        document.Position
	CursorVisible bool
	Selection     *document.Range
	Composition   *document.Range
	Overlays      []Overlay
}

// Renderer paints document content through a layout manager and a
// viewport onto any Surface.
type Renderer struct {
	doc       *document.Document
	lm        *layout.Manager
	view      *viewport.Manager
	theme     Theme
	dirty     *DirtyTracker
	scrollbar bool
}

// NewRenderer wires the pipeline together.
func NewRenderer(doc *document.Document, lm *layout.Manager, view *viewport.Manager, theme Theme) *Renderer {
	return &Renderer{doc: doc, lm: lm, view: view, theme: theme, dirty: NewDirtyTracker(), scrollbar: true}
}

// SetShowScrollbar toggles the right-edge scrollbar.
func (r *Renderer) SetShowScrollbar(show bool) {
	if r.scrollbar != show {
		r.scrollbar = show
		r.dirty.MarkAll()
	}
}

// Dirty returns the renderer's dirty-region tracker.
func (r *Renderer) Dirty() *DirtyTracker { return r.dirty }

// SetTheme swaps the theme and invalidates the view.
func (r *Renderer) SetTheme(theme Theme) {
	r.theme = theme
	r.dirty.MarkAll()
}

// InvalidateCursor marks just the caret cell, for blinking.
func (r *Renderer) InvalidateCursor(pos document.Position) {
	r.dirty.Mark(r.view.ToView(r.lm.CursorDocumentRect(pos)))
}

// InvalidateParagraph marks the visible extent of one paragraph.
func (r *Renderer) InvalidateParagraph(index int) {
	pl := r.lm.Paragraph(index)
	if pl == nil {
		r.dirty.MarkAll()
		return
	}
	w, _ := r.view.Size()
	r.dirty.Mark(r.view.ToView(layout.Rect{
		X: 0, Y: r.lm.ParagraphY(index), W: w, H: pl.Height(),
	}))
}

// Draw paints a frame and flushes the surface. The dirty tracker is
// reset; only content intersecting its regions repaints, so a cursor
// blink touches one paragraph rather than the whole visible range. A
// clean tracker means the caller forced a draw, which paints fully.
func (r *Renderer) Draw(s Surface, f Frame) {
	regions, all := r.dirty.Take()
	full := all || len(regions) == 0
	w, h := s.Size()

	if full {
		s.Fill(0, 0, w, h, ' ', r.theme.Text)
	} else {
		for _, reg := range regions {
			fillRegion(s, reg, w, h, r.theme.Text)
		}
	}

	top, bottom := r.view.VisibleRange()
	n := r.doc.ParagraphCount()
	if n > 0 {
		first := r.lm.FindParagraphAt(top)
		r.lm.Warm(first, r.lm.FindParagraphAt(bottom))
		for i := first; i < n; i++ {
			py := r.lm.ParagraphY(i)
			if py >= bottom {
				break
			}
			if !full {
				pr := layout.Rect{X: 0, Y: py - r.view.ScrollY(), W: float64(w), H: r.lm.ParagraphHeight(i)}
				if !intersectsAny(regions, pr) {
					continue
				}
			}
			r.drawParagraph(s, f, i, py)
		}
	}

	if thumb, ok := r.view.ScrollbarThumb(); ok && r.scrollbar {
		if full || intersectsAny(regions, thumb) {
			s.Fill(int(thumb.X), int(thumb.Y), 1, max(int(thumb.H+0.5), 1), '█', r.theme.Scrollbar)
		}
	}

	if f.CursorVisible {
		cr := r.view.ToView(r.lm.CursorDocumentRect(f.Cursor))
		if full || intersectsAny(regions, cr) {
			x, y := int(cr.X), int(cr.Y)
			if x >= 0 && x < w && y >= 0 && y < h {
				s.SetCell(x, y, r.runeUnderCursor(f.Cursor), r.theme.Text.Merge(r.theme.Cursor))
			}
		}
	}
	s.Flush()
}

// fillRegion clears one dirty rectangle, clipped to the surface.
func fillRegion(s Surface, reg layout.Rect, w, h int, style Style) {
	x0 := max(int(reg.X), 0)
	y0 := max(int(reg.Y), 0)
	x1 := min(int(reg.X+reg.W+0.5), w)
	y1 := min(int(reg.Y+reg.H+0.5), h)
	if x1 > x0 && y1 > y0 {
		s.Fill(x0, y0, x1-x0, y1-y0, ' ', style)
	}
}

func intersectsAny(regions []layout.Rect, r layout.Rect) bool {
	for _, reg := range regions {
		if reg.Intersects(r) {
			return true
		}
	}
	return false
}

func (r *Renderer) drawParagraph(s Surface, f Frame, index int, py float64) {
	pl := r.lm.Paragraph(index)
	p := r.doc.ParagraphAt(index)
	if pl == nil || p == nil {
		return
	}
	_, h := s.Size()
	spans := p.FormatSpans()
	text := pl.Text()

	for _, ln := range pl.Lines() {
		vy := int(py + ln.Y - r.view.ScrollY())
		if vy < 0 || vy >= h {
			continue
		}
		si := 0
		for off := ln.Start; off < ln.End; off++ {
			for si < len(spans) && off >= spans[si].End {
				si++
			}
			style := r.theme.Text
			if si < len(spans) && off >= spans[si].Start {
				style = style.WithFormats(spans[si].Formats)
			}
			style = r.styleOverlays(style, f, index, off)
			s.SetCell(int(pl.CursorRect(off).X), vy, text[off], style)
		}
	}
}

// styleOverlays merges selection, composition, and overlay styles onto
// the base style of one rune.
func (r *Renderer) styleOverlays(style Style, f Frame, paragraph, offset int) Style {
	pos := document.Position{Paragraph: paragraph, Offset: offset}
	if f.Selection != nil && f.Selection.Contains(pos) {
		style = style.Merge(r.theme.Selection)
	}
	if f.Composition != nil && f.Composition.Contains(pos) {
		style = style.Merge(r.theme.Composition)
	}
	for _, o := range f.Overlays {
		if o.Paragraph != paragraph || offset < o.Start || offset >= o.End {
			continue
		}
		switch o.Kind {
		case OverlayComment:
			style = style.Merge(r.theme.Comment)
		case OverlayTodo:
			style = style.Merge(r.theme.Todo)
		case OverlayNote:
			style = style.Merge(r.theme.Note)
		case OverlayAnnotation:
			style = style.Merge(r.theme.Annotation)
		case OverlaySearch:
			style = style.Merge(r.theme.Search)
		}
	}
	return style
}

func (r *Renderer) runeUnderCursor(pos document.Position) rune {
	pl := r.lm.Paragraph(pos.Paragraph)
	if pl == nil {
		return ' '
	}
	text := pl.Text()
	if pos.Offset < 0 || pos.Offset >= len(text) {
		return ' '
	}
	return text[pos.Offset]
}
