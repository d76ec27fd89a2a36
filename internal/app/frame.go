package app

import (
	"github.com/dshills/folio/internal/document"
	"github.com/dshills/folio/internal/render"
)

// overlays collects everything highlighted on top of the text: comment
// ranges, marker anchors, and checker annotations. Only paragraphs near
// the viewport matter, but the slice is cheap enough to build whole.
func (a *App) overlays() []render.Overlay {
	var out []render.Overlay

	for i := 0; i < a.doc.ParagraphCount(); i++ {
		p := a.doc.ParagraphAt(i)
		for _, c := range p.Comments() {
			if c.Resolved {
				continue
			}
			out = append(out, render.Overlay{
				Paragraph: i,
				Start:     c.Start,
				End:       c.End,
				Kind:      render.OverlayComment,
			})
		}
		for _, r := range a.ann.ResultsFor(i) {
			out = append(out, render.Overlay{
				Paragraph: i,
				Start:     r.Start,
				End:       r.End(),
				Kind:      render.OverlayAnnotation,
			})
		}
	}

	for _, m := range a.doc.Markers() {
		pos := a.doc.FromAbsolute(m.Position)
		kind := render.OverlayTodo
		if m.Type == document.MarkerNote {
			kind = render.OverlayNote
		}
		length := m.Length
		if length < 1 {
			length = 1
		}
		out = append(out, render.Overlay{
			Paragraph: pos.Paragraph,
			Start:     pos.Offset,
			End:       pos.Offset + length,
			Kind:      kind,
		})
	}
	return out
}
