package history

import "github.com/dshills/folio/internal/document"

// SplitCommand breaks a paragraph in two at a position, as pressing
// Enter does.
type SplitCommand struct {
	pos    document.Position
	seeded bool // applied against an empty document
}

// NewSplit creates a paragraph split at pos.
func NewSplit(pos document.Position) *SplitCommand {
	return &SplitCommand{pos: pos}
}

// Apply splits the paragraph and inserts the tail after it.
func (c *SplitCommand) Apply(doc *document.Document) {
	if doc.IsEmpty() {
		c.seeded = true
		doc.AppendParagraph(document.NewParagraph(""))
		doc.AppendParagraph(document.NewParagraph(""))
		doc.OnTextInserted(0, 1)
		return
	}
	pos := doc.Validate(c.pos)
	abs := doc.ToAbsolute(pos)
	p := doc.ParagraphAt(pos.Paragraph)
	tail := p.SplitAt(pos.Offset)
	doc.NotifyParagraphModified(pos.Paragraph)
	doc.InsertParagraph(pos.Paragraph+1, tail)
	doc.OnTextInserted(abs, 1)
}

// Revert merges the two halves back together.
func (c *SplitCommand) Revert(doc *document.Document) {
	if c.seeded {
		doc.RemoveParagraph(1)
		doc.RemoveParagraph(0)
		doc.OnTextDeleted(0, 1)
		return
	}
	pos := doc.Validate(c.pos)
	abs := doc.ToAbsolute(document.Position{Paragraph: pos.Paragraph, Offset: doc.ParagraphAt(pos.Paragraph).Length()})
	next := doc.RemoveParagraph(pos.Paragraph + 1)
	if next != nil {
		doc.ParagraphAt(pos.Paragraph).MergeWith(next)
	}
	doc.NotifyParagraphModified(pos.Paragraph)
	doc.OnTextDeleted(abs, 1)
}

// Before returns the split point.
func (c *SplitCommand) Before() document.Position { return c.pos }

// After returns the start of the new paragraph.
func (c *SplitCommand) After() document.Position {
	return document.Position{Paragraph: c.pos.Paragraph + 1, Offset: 0}
}

// Description returns a UI label.
func (c *SplitCommand) Description() string { return "split paragraph" }

// MergeCommand joins the paragraph after index into the paragraph at
// index, as pressing Backspace at a paragraph start does.
type MergeCommand struct {
	paragraph int
	joinAt    int
}

// NewMerge creates a merge of paragraph index+1 into paragraph index.
// The join offset is captured from the current document state so revert
// can split at exactly the former boundary.
func NewMerge(doc *document.Document, index int) *MergeCommand {
	joinAt := 0
	if p := doc.ParagraphAt(index); p != nil {
		joinAt = p.Length()
	}
	return &MergeCommand{paragraph: index, joinAt: joinAt}
}

// Apply removes the following paragraph and appends its content.
func (c *MergeCommand) Apply(doc *document.Document) {
	abs := doc.ToAbsolute(document.Position{Paragraph: c.paragraph, Offset: c.joinAt})
	next := doc.RemoveParagraph(c.paragraph + 1)
	if next == nil {
		return
	}
	doc.ParagraphAt(c.paragraph).MergeWith(next)
	doc.NotifyParagraphModified(c.paragraph)
	doc.OnTextDeleted(abs, 1)
}

// Revert splits the merged paragraph back at the join offset.
func (c *MergeCommand) Revert(doc *document.Document) {
	p := doc.ParagraphAt(c.paragraph)
	if p == nil {
		return
	}
	abs := doc.ToAbsolute(document.Position{Paragraph: c.paragraph, Offset: c.joinAt})
	tail := p.SplitAt(c.joinAt)
	doc.NotifyParagraphModified(c.paragraph)
	doc.InsertParagraph(c.paragraph+1, tail)
	doc.OnTextInserted(abs, 1)
}

// Before returns the start of the paragraph that gets absorbed.
func (c *MergeCommand) Before() document.Position {
	return document.Position{Paragraph: c.paragraph + 1, Offset: 0}
}

// After returns the join point, where the cursor lands after the merge.
func (c *MergeCommand) After() document.Position {
	return document.Position{Paragraph: c.paragraph, Offset: c.joinAt}
}

// Description returns a UI label.
func (c *MergeCommand) Description() string { return "merge paragraphs" }
