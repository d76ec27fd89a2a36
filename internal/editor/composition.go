package editor

import (
	"github.com/dshills/folio/internal/document"
	"github.com/dshills/folio/internal/history"
)

// composition is in-progress input-method text staged directly in the
// document, outside the undo stack. Each update replaces the previous
// staging; commit turns the final text into a single insert command.
type composition struct {
	pos    document.Position
	length int
	seeded bool // staging began on an empty document
}

// IsComposing reports whether input-method text is staged.
func (s *Session) IsComposing() bool { return s.staged != nil }

// CompositionRange returns the staged text's range, for underline
// rendering. Meaningful only when IsComposing.
func (s *Session) CompositionRange() document.Range {
	if s.staged == nil {
		return document.Range{}
	}
	return document.Range{
		Start: s.staged.pos,
		End:   document.Position{Paragraph: s.staged.pos.Paragraph, Offset: s.staged.pos.Offset + s.staged.length},
	}
}

// UpdateComposition replaces the staged input-method text with text.
// Staged text may not contain separators; the selection is removed
// (as a durable command) when composition starts over one.
func (s *Session) UpdateComposition(text string) {
	if s.staged == nil {
		if s.HasSelection() {
			s.DeleteSelection()
		}
		seeded := s.doc.IsEmpty()
		if seeded {
			s.doc.AppendParagraph(document.NewParagraph(""))
		}
		s.cursor = s.doc.Validate(s.cursor)
		s.staged = &composition{pos: s.cursor, seeded: seeded}
	}
	c := s.staged
	p := s.doc.ParagraphAt(c.pos.Paragraph)
	if c.length > 0 {
		p.DeleteText(c.pos.Offset, c.pos.Offset+c.length)
	}
	runes := []rune(text)
	p.InsertText(c.pos.Offset, text)
	c.length = len(runes)
	s.cursor = document.Position{Paragraph: c.pos.Paragraph, Offset: c.pos.Offset + c.length}
	s.doc.NotifyParagraphModified(c.pos.Paragraph)
}

// CommitComposition removes the staged text and re-inserts it through
// the command engine, so the composed text is one undo entry.
func (s *Session) CommitComposition() {
	c := s.staged
	if c == nil {
		return
	}
	s.staged = nil
	p := s.doc.ParagraphAt(c.pos.Paragraph)
	text := ""
	if c.length > 0 {
		runes := []rune(p.PlainText())
		text = string(runes[c.pos.Offset : c.pos.Offset+c.length])
		p.DeleteText(c.pos.Offset, c.pos.Offset+c.length)
		s.doc.NotifyParagraphModified(c.pos.Paragraph)
	}
	// Hand a seeded paragraph back before the insert command runs, so
	// the command owns the seeding and its undo restores zero
	// paragraphs.
	if c.seeded && p != nil && p.Length() == 0 {
		s.doc.RemoveParagraph(c.pos.Paragraph)
	}
	if text == "" {
		s.cursor = s.doc.Validate(c.pos)
		return
	}
	cmd := history.NewInsert(c.pos, text)
	s.stack.Execute(s.doc, cmd)
	s.cursor = s.doc.Validate(cmd.After())
}

// CancelComposition discards any staged input-method text.
func (s *Session) CancelComposition() {
	c := s.staged
	if c == nil {
		return
	}
	s.staged = nil
	if c.length > 0 {
		if p := s.doc.ParagraphAt(c.pos.Paragraph); p != nil {
			p.DeleteText(c.pos.Offset, c.pos.Offset+c.length)
			s.doc.NotifyParagraphModified(c.pos.Paragraph)
		}
	}
	if c.seeded {
		if p := s.doc.ParagraphAt(c.pos.Paragraph); p != nil && p.Length() == 0 {
			s.doc.RemoveParagraph(c.pos.Paragraph)
		}
	}
	s.cursor = s.doc.Validate(c.pos)
}
