package history

import "github.com/dshills/folio/internal/document"

// DeleteCommand removes the content of a range. The removed text is
// captured at construction so revert restores it exactly.
type DeleteCommand struct {
	start document.Position
	end   document.Position
	text  string
}

// NewDelete creates a deletion of the given range against the current
// document state. The range is normalized and validated.
func NewDelete(doc *document.Document, r document.Range) *DeleteCommand {
	n := r.Normalized()
	start := doc.Validate(n.Start)
	end := doc.Validate(n.End)
	return &DeleteCommand{
		start: start,
		end:   end,
		text:  doc.TextInRange(document.Range{Start: start, End: end}),
	}
}

// Apply removes the range.
func (c *DeleteCommand) Apply(doc *document.Document) {
	deleteBetween(doc, c.start, c.end)
}

// Revert re-inserts the removed text.
func (c *DeleteCommand) Revert(doc *document.Document) {
	insertAt(doc, c.start, c.text)
}

// Before returns the end of the deleted range, where the cursor sat
// before a backward deletion.
func (c *DeleteCommand) Before() document.Position { return c.end }

// After returns the start of the deleted range.
func (c *DeleteCommand) After() document.Position { return c.start }

// Description returns a UI label.
func (c *DeleteCommand) Description() string { return "delete text" }

// Text returns the text the command removes.
func (c *DeleteCommand) Text() string { return c.text }

// IsEmpty reports whether the command covers no content.
func (c *DeleteCommand) IsEmpty() bool { return c.start == c.end }
