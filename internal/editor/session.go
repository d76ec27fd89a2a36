package editor

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dshills/folio/internal/document"
	"github.com/dshills/folio/internal/history"
)

// Session is the editing façade over one document: cursor, selection,
// and the operation set the UI calls. It is not safe for concurrent
// use; the application event loop serializes access.
type Session struct {
	doc       *document.Document
	stack     *history.Stack
	cursor    document.Position
	selection document.Range
	selecting bool
	staged    *composition
}

// NewSession creates a session over doc with the given stack options.
func NewSession(doc *document.Document, opts history.Options) *Session {
	return &Session{doc: doc, stack: history.NewStack(opts)}
}

// Document returns the session's document.
func (s *Session) Document() *document.Document { return s.doc }

// History returns the session's undo stack.
func (s *Session) History() *history.Stack { return s.stack }

// Cursor returns the current cursor position.
func (s *Session) Cursor() document.Position { return s.cursor }

// SetCursor moves the cursor, clamping it to the document, and drops
// any selection and pending composition.
func (s *Session) SetCursor(pos document.Position) {
	s.CancelComposition()
	s.cursor = s.doc.Validate(pos)
	s.selecting = false
}

// HasSelection reports whether a non-empty selection exists.
func (s *Session) HasSelection() bool {
	return s.selecting && !s.selection.IsEmpty()
}

// Selection returns the normalized selection range. Meaningful only
// when HasSelection.
func (s *Session) Selection() document.Range { return s.selection.Normalized() }

// SetSelection sets the selection and moves the cursor to its end.
func (s *Session) SetSelection(r document.Range) {
	s.CancelComposition()
	n := r.Normalized()
	s.selection = document.Range{Start: s.doc.Validate(n.Start), End: s.doc.Validate(n.End)}
	s.selecting = true
	s.cursor = s.selection.End
}

// ClearSelection drops the selection without moving the cursor.
func (s *Session) ClearSelection() { s.selecting = false }

// SelectedText returns the plain text covered by the selection.
func (s *Session) SelectedText() string {
	if !s.HasSelection() {
		return ""
	}
	return s.doc.TextInRange(s.selection)
}

// SelectWordAt selects the word containing pos, as a double click does.
// On whitespace or punctuation the surrounding non-word run is selected
// instead; only an empty paragraph collapses to the cursor.
func (s *Session) SelectWordAt(pos document.Position) {
	pos = s.doc.Validate(pos)
	start, end := s.doc.WordBoundsAt(pos)
	if start == end {
		s.SetCursor(pos)
		return
	}
	s.SetSelection(document.Range{
		Start: document.Position{Paragraph: pos.Paragraph, Offset: start},
		End:   document.Position{Paragraph: pos.Paragraph, Offset: end},
	})
}

// InsertText inserts text at the cursor, replacing the selection if one
// exists. Separator runes in text create paragraph breaks.
func (s *Session) InsertText(text string) {
	if text == "" {
		return
	}
	s.CancelComposition()
	if s.HasSelection() {
		cmd := history.NewReplace(s.doc, s.selection, text)
		s.stack.Execute(s.doc, cmd)
		s.cursor = s.doc.Validate(cmd.After())
		s.selecting = false
		return
	}
	cmd := history.NewInsert(s.cursor, text)
	s.stack.Execute(s.doc, cmd)
	s.cursor = s.doc.Validate(cmd.After())
}

// InsertParagraphBreak splits the current paragraph at the cursor,
// replacing the selection if one exists.
func (s *Session) InsertParagraphBreak() {
	s.CancelComposition()
	if s.HasSelection() {
		s.DeleteSelection()
	}
	cmd := history.NewSplit(s.cursor)
	s.stack.Execute(s.doc, cmd)
	s.cursor = s.doc.Validate(cmd.After())
}

// DeleteBackward deletes the selection if one exists, otherwise the
// rune before the cursor; at a paragraph start it merges with the
// previous paragraph. At the document start it does nothing.
func (s *Session) DeleteBackward() {
	s.CancelComposition()
	if s.HasSelection() {
		s.DeleteSelection()
		return
	}
	switch {
	case s.cursor.Offset > 0:
		cmd := history.NewDelete(s.doc, document.Range{
			Start: document.Position{Paragraph: s.cursor.Paragraph, Offset: s.cursor.Offset - 1},
			End:   s.cursor,
		})
		s.stack.Execute(s.doc, cmd)
		s.cursor = s.doc.Validate(cmd.After())
	case s.cursor.Paragraph > 0:
		cmd := history.NewMerge(s.doc, s.cursor.Paragraph-1)
		s.stack.Execute(s.doc, cmd)
		s.cursor = s.doc.Validate(cmd.After())
	}
}

// DeleteForward deletes the selection if one exists, otherwise the rune
// after the cursor; at a paragraph end it merges with the next
// paragraph. At the document end it does nothing.
func (s *Session) DeleteForward() {
	s.CancelComposition()
	if s.HasSelection() {
		s.DeleteSelection()
		return
	}
	p := s.doc.ParagraphAt(s.cursor.Paragraph)
	if p == nil {
		return
	}
	switch {
	case s.cursor.Offset < p.Length():
		cmd := history.NewDelete(s.doc, document.Range{
			Start: s.cursor,
			End:   document.Position{Paragraph: s.cursor.Paragraph, Offset: s.cursor.Offset + 1},
		})
		s.stack.Execute(s.doc, cmd)
		s.cursor = s.doc.Validate(cmd.After())
	case s.cursor.Paragraph < s.doc.ParagraphCount()-1:
		cmd := history.NewMerge(s.doc, s.cursor.Paragraph)
		s.stack.Execute(s.doc, cmd)
		s.cursor = s.doc.Validate(cmd.After())
	}
}

// DeleteSelection removes the selected content.
func (s *Session) DeleteSelection() {
	if !s.HasSelection() {
		return
	}
	cmd := history.NewDelete(s.doc, s.selection)
	s.stack.Execute(s.doc, cmd)
	s.cursor = s.doc.Validate(cmd.After())
	s.selecting = false
}

// Replace swaps the content of r for text in one undo entry and moves
// the cursor past the replacement.
func (s *Session) Replace(r document.Range, text string) {
	s.CancelComposition()
	cmd := history.NewReplace(s.doc, r, text)
	s.stack.Execute(s.doc, cmd)
	s.cursor = s.doc.Validate(cmd.After())
	s.selecting = false
}

// ReplaceAll substitutes every occurrence of old in the document with
// new, grouped into a single undo entry. Returns the replacement count.
func (s *Session) ReplaceAll(old, new string) int {
	if old == "" || strings.ContainsRune(old, document.ParagraphSeparator) {
		return 0
	}
	s.CancelComposition()
	count := 0
	s.stack.BeginGroup("replace all")
	oldLen := len([]rune(old))
	for i := 0; i < s.doc.ParagraphCount(); i++ {
		// Re-read the paragraph each pass; earlier replacements in it
		// shift later occurrences.
		for {
			text := s.doc.ParagraphPlainText(i)
			at := strings.Index(text, old)
			if at < 0 {
				break
			}
			start := len([]rune(text[:at]))
			s.stack.Execute(s.doc, history.NewReplace(s.doc, document.Range{
				Start: document.Position{Paragraph: i, Offset: start},
				End:   document.Position{Paragraph: i, Offset: start + oldLen},
			}, new))
			count++
		}
	}
	s.stack.EndGroup()
	log.Debug().Str("from", old).Str("to", new).Int("count", count).Msg("replace all")
	return count
}

// ApplyFormat applies an inline format to the selection. Selections
// spanning paragraphs format each covered paragraph's sub-range, all in
// one undo entry.
func (s *Session) ApplyFormat(f document.Format) {
	s.formatSelection("apply "+f.String(), func(index, start, end int) history.Command {
		return history.NewApplyFormat(s.doc, index, start, end, f)
	})
}

// RemoveFormat removes an inline format from the selection.
func (s *Session) RemoveFormat(f document.Format) {
	s.formatSelection("remove "+f.String(), func(index, start, end int) history.Command {
		return history.NewRemoveFormat(s.doc, index, start, end, f)
	})
}

// ClearFormats strips all inline formatting from the selection.
func (s *Session) ClearFormats() {
	s.formatSelection("clear formatting", func(index, start, end int) history.Command {
		return history.NewClearFormats(s.doc, index, start, end)
	})
}

// ToggleFormat applies f to the selection unless its start already
// carries f, in which case it removes it.
func (s *Session) ToggleFormat(f document.Format) {
	if !s.HasSelection() {
		return
	}
	start := s.Selection().Start
	p := s.doc.ParagraphAt(start.Paragraph)
	if p != nil && p.FormatsAt(start.Offset).Has(f) {
		s.RemoveFormat(f)
		return
	}
	s.ApplyFormat(f)
}

func (s *Session) formatSelection(label string, build func(index, start, end int) history.Command) {
	if !s.HasSelection() {
		return
	}
	s.CancelComposition()
	sel := s.Selection()
	if !sel.IsMultiParagraph() {
		s.stack.Execute(s.doc, build(sel.Start.Paragraph, sel.Start.Offset, sel.End.Offset))
		return
	}
	s.stack.BeginGroup(label)
	for i := sel.Start.Paragraph; i <= sel.End.Paragraph; i++ {
		start, end := 0, s.doc.ParagraphAt(i).Length()
		if i == sel.Start.Paragraph {
			start = sel.Start.Offset
		}
		if i == sel.End.Paragraph {
			end = sel.End.Offset
		}
		if start < end {
			s.stack.Execute(s.doc, build(i, start, end))
		}
	}
	s.stack.EndGroup()
}

// SetAlignment sets the alignment of every paragraph touched by the
// selection, or of the cursor's paragraph without one.
func (s *Session) SetAlignment(a document.Alignment) {
	s.CancelComposition()
	first, last := s.cursor.Paragraph, s.cursor.Paragraph
	if s.HasSelection() {
		sel := s.Selection()
		first, last = sel.Start.Paragraph, sel.End.Paragraph
	}
	if first == last {
		s.stack.Execute(s.doc, history.NewAlignment(s.doc, first, a))
		return
	}
	s.stack.BeginGroup("align " + a.String())
	for i := first; i <= last; i++ {
		s.stack.Execute(s.doc, history.NewAlignment(s.doc, i, a))
	}
	s.stack.EndGroup()
}

// SetParagraphStyle sets the style id of the cursor's paragraph.
func (s *Session) SetParagraphStyle(styleID string) {
	s.CancelComposition()
	s.stack.Execute(s.doc, history.NewStyle(s.doc, s.cursor.Paragraph, styleID))
}

// Undo reverts the most recent entry and restores its cursor. Reports
// whether anything was undone.
func (s *Session) Undo() bool {
	s.CancelComposition()
	pos, ok := s.stack.Undo(s.doc)
	if !ok {
		return false
	}
	s.cursor = pos
	s.selecting = false
	log.Debug().Int("paragraph", pos.Paragraph).Int("offset", pos.Offset).Msg("undo")
	return true
}

// Redo re-applies the most recently undone entry and restores its
// cursor. Reports whether anything was redone.
func (s *Session) Redo() bool {
	s.CancelComposition()
	pos, ok := s.stack.Redo(s.doc)
	if !ok {
		return false
	}
	s.cursor = pos
	s.selecting = false
	log.Debug().Int("paragraph", pos.Paragraph).Int("offset", pos.Offset).Msg("redo")
	return true
}

// AddComment attaches a comment over the selection. Without a selection
// it does nothing and returns the zero comment and false.
func (s *Session) AddComment(text string) (document.Comment, bool) {
	if !s.HasSelection() {
		return document.Comment{}, false
	}
	sel := s.Selection()
	// Multi-paragraph selections anchor the comment to the first
	// paragraph's covered range.
	end := sel.End.Offset
	if sel.IsMultiParagraph() {
		end = s.doc.ParagraphAt(sel.Start.Paragraph).Length()
	}
	c := document.NewComment(sel.Start.Offset, end, text)
	s.stack.Execute(s.doc, history.NewAddComment(s.doc, sel.Start.Paragraph, c))
	return c, true
}

// RemoveComment removes the comment with id from the paragraph at
// index. Reports whether the comment existed.
func (s *Session) RemoveComment(index int, id string) bool {
	cmd := history.NewRemoveComment(s.doc, index, id)
	if cmd == nil {
		return false
	}
	s.stack.Execute(s.doc, cmd)
	return true
}

// AddMarker adds a TODO or Note marker at the cursor and returns it.
func (s *Session) AddMarker(typ document.MarkerType, text string) document.Marker {
	m := document.NewMarker(s.doc.ToAbsolute(s.cursor), typ, text)
	s.stack.Execute(s.doc, history.NewAddMarker(s.doc, m))
	return m
}

// RemoveMarker removes the marker with id. Reports whether it existed.
func (s *Session) RemoveMarker(id string) bool {
	cmd := history.NewRemoveMarker(s.doc, id)
	if cmd == nil {
		return false
	}
	s.stack.Execute(s.doc, cmd)
	return true
}

// ToggleMarker flips a TODO marker's completion. Reports whether it
// existed.
func (s *Session) ToggleMarker(id string) bool {
	cmd := history.NewToggleMarker(s.doc, id)
	if cmd == nil {
		return false
	}
	s.stack.Execute(s.doc, cmd)
	return true
}

// JumpToNextMarker moves the cursor to the next marker after it.
// Reports whether one existed.
func (s *Session) JumpToNextMarker() bool {
	m := s.doc.NextMarker(s.doc.ToAbsolute(s.cursor))
	if m == nil {
		return false
	}
	s.SetCursor(s.doc.FromAbsolute(m.Position))
	return true
}

// JumpToPrevMarker moves the cursor to the previous marker before it.
// Reports whether one existed.
func (s *Session) JumpToPrevMarker() bool {
	m := s.doc.PrevMarker(s.doc.ToAbsolute(s.cursor))
	if m == nil {
		return false
	}
	s.SetCursor(s.doc.FromAbsolute(m.Position))
	return true
}
