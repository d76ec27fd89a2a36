package history

import (
	"strings"

	"github.com/dshills/folio/internal/document"
)

// InsertCommand inserts text at a position. Text containing separator
// runes creates new paragraphs.
type InsertCommand struct {
	pos    document.Position
	text   string
	seeded bool // applied against an empty document
}

// NewInsert creates an insertion of text at pos.
func NewInsert(pos document.Position, text string) *InsertCommand {
	return &InsertCommand{pos: pos, text: text}
}

// Apply inserts the text.
func (c *InsertCommand) Apply(doc *document.Document) {
	c.seeded = doc.IsEmpty()
	insertAt(doc, c.pos, c.text)
}

// Revert deletes the inserted text. When Apply seeded the first
// paragraph into an empty document, the seed is removed too, so an
// undone first insertion leaves zero paragraphs.
func (c *InsertCommand) Revert(doc *document.Document) {
	deleteBetween(doc, c.pos, c.After())
	if c.seeded && doc.ParagraphCount() == 1 && doc.ParagraphAt(0).Length() == 0 {
		doc.RemoveParagraph(0)
	}
}

// Before returns the insertion point.
func (c *InsertCommand) Before() document.Position { return c.pos }

// After returns the position just past the inserted text.
func (c *InsertCommand) After() document.Position { return advance(c.pos, c.text) }

// Description returns a UI label.
func (c *InsertCommand) Description() string { return "insert text" }

// Text returns the inserted text.
func (c *InsertCommand) Text() string { return c.text }

// CanMergeWith reports whether next can coalesce into this command:
// next must start exactly where this command ends, and neither may
// create paragraphs. The stack additionally enforces the time window
// and combined length cap.
func (c *InsertCommand) CanMergeWith(next *InsertCommand) bool {
	if strings.ContainsRune(c.text, document.ParagraphSeparator) ||
		strings.ContainsRune(next.text, document.ParagraphSeparator) {
		return false
	}
	return next.pos == c.After()
}

// Merge absorbs next into this command. Call only after CanMergeWith.
func (c *InsertCommand) Merge(next *InsertCommand) {
	c.text += next.text
}
