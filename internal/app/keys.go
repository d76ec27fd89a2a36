package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/dshills/folio/internal/document"
)

func (a *App) handleKey(ev *tcell.EventKey) error {
	shift := ev.Modifiers()&tcell.ModShift != 0

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return ErrQuit
	case tcell.KeyCtrlS:
		if err := a.Save(); err != nil {
			log.Error().Err(err).Msg("save failed")
		}
	case tcell.KeyCtrlZ:
		a.session.Undo()
		a.markEdited()
	case tcell.KeyCtrlY:
		a.session.Redo()
		a.markEdited()
	case tcell.KeyCtrlB:
		a.session.ToggleFormat(document.FormatBold)
		a.markEdited()
	case tcell.KeyCtrlU:
		a.session.ToggleFormat(document.FormatUnderline)
		a.markEdited()
	case tcell.KeyCtrlG:
		if a.session.JumpToNextMarker() {
			a.renderer.Dirty().MarkAll()
		}
	case tcell.KeyEnter:
		a.session.InsertParagraphBreak()
		a.markEdited()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.session.DeleteBackward()
		a.markEdited()
	case tcell.KeyDelete:
		a.session.DeleteForward()
		a.markEdited()
	case tcell.KeyLeft:
		a.moveCursor(a.cursorShiftedBy(-1), shift)
	case tcell.KeyRight:
		a.moveCursor(a.cursorShiftedBy(1), shift)
	case tcell.KeyUp:
		a.moveCursor(a.cursorLineAway(-1), shift)
	case tcell.KeyDown:
		a.moveCursor(a.cursorLineAway(1), shift)
	case tcell.KeyHome:
		a.moveCursor(a.cursorLineEdge(false), shift)
	case tcell.KeyEnd:
		a.moveCursor(a.cursorLineEdge(true), shift)
	case tcell.KeyPgUp:
		a.page(-1)
	case tcell.KeyPgDn:
		a.page(1)
	case tcell.KeyEscape:
		a.session.CancelComposition()
		a.session.ClearSelection()
		a.renderer.Dirty().MarkAll()
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
			a.session.InsertText(string(ev.Rune()))
			a.markEdited()
		}
	case tcell.KeyTab:
		// tcell reports Ctrl+I as Tab.
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			a.session.ToggleFormat(document.FormatItalic)
		} else {
			a.session.InsertText("\t")
		}
		a.markEdited()
	}
	return nil
}

// markEdited repaints after a mutation. Edits can move layout for
// everything below the changed paragraph, so the whole view redraws.
func (a *App) markEdited() {
	a.modified = true
	a.blinkVisible = true
	a.renderer.Dirty().MarkAll()
}

func (a *App) moveCursor(pos document.Position, extend bool) {
	if extend {
		anchor := a.session.Cursor()
		if a.session.HasSelection() {
			anchor = a.session.Selection().Start
			if a.session.Cursor() == anchor {
				anchor = a.session.Selection().End
			}
		}
		a.session.SetSelection(document.Range{Start: anchor, End: pos})
	} else {
		a.session.ClearSelection()
	}
	a.session.SetCursor(pos)
	a.blinkVisible = true
	a.renderer.Dirty().MarkAll()
}

// cursorShiftedBy moves by whole runes, crossing paragraph boundaries
// through the separator.
func (a *App) cursorShiftedBy(n int) document.Position {
	abs := a.doc.ToAbsolute(a.session.Cursor()) + n
	if abs < 0 {
		abs = 0
	}
	return a.doc.FromAbsolute(abs)
}

// cursorLineAway moves one visual line up or down, keeping the cursor's
// horizontal position.
func (a *App) cursorLineAway(dir int) document.Position {
	r := a.lm.CursorDocumentRect(a.session.Cursor())
	y := r.Y - 0.5
	if dir > 0 {
		y = r.Y + r.H + 0.5
	}
	if y < 0 {
		return a.session.Cursor()
	}
	return a.lm.PositionAt(r.X, y)
}

// cursorLineEdge returns the start or end of the current visual line.
func (a *App) cursorLineEdge(end bool) document.Position {
	cur := a.session.Cursor()
	pl := a.lm.Paragraph(cur.Paragraph)
	if pl == nil {
		return cur
	}
	li := pl.LineForOffset(cur.Offset)
	lines := pl.Lines()
	if li < 0 || li >= len(lines) {
		return cur
	}
	if end {
		off := lines[li].End
		if li < len(lines)-1 && off > lines[li].Start {
			off-- // wrapped line: stop before the break point
		}
		return document.Position{Paragraph: cur.Paragraph, Offset: off}
	}
	return document.Position{Paragraph: cur.Paragraph, Offset: lines[li].Start}
}

func (a *App) page(dir int) {
	_, h := a.view.Size()
	if a.cfg.Scroll.Smooth {
		a.view.SmoothScrollBy(float64(dir) * h)
	} else {
		a.view.ScrollBy(float64(dir) * h)
		a.renderer.Dirty().MarkAll()
	}
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		a.wheel(-1)
	case ev.Buttons()&tcell.WheelDown != 0:
		a.wheel(1)
	case ev.Buttons()&tcell.Button1 != 0:
		pos := a.positionAtCell(x, y)
		if a.dragging {
			a.session.SetSelection(document.Range{Start: a.dragAnchor, End: pos})
		} else {
			a.dragging = true
			a.dragAnchor = pos
			a.session.ClearSelection()
		}
		a.session.SetCursor(pos)
		a.blinkVisible = true
		a.renderer.Dirty().MarkAll()
	default:
		a.dragging = false
	}
}

func (a *App) wheel(dir int) {
	dy := float64(dir * a.cfg.Scroll.WheelLines)
	if a.cfg.Scroll.Smooth {
		a.view.SmoothScrollBy(dy)
	} else {
		a.view.ScrollBy(dy)
		a.renderer.Dirty().MarkAll()
	}
}

// positionAtCell maps a screen cell to a document position.
func (a *App) positionAtCell(x, y int) document.Position {
	return a.lm.PositionAt(float64(x), float64(y)+a.view.ScrollY())
}
