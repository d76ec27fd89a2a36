package history

import "github.com/dshills/folio/internal/document"

// ReplaceCommand swaps the content of a range for new text in one undo
// entry. The replaced text is captured at construction.
type ReplaceCommand struct {
	start document.Position
	end   document.Position
	text  string
	prior string
}

// NewReplace creates a replacement of the range with text, against the
// current document state.
func NewReplace(doc *document.Document, r document.Range, text string) *ReplaceCommand {
	n := r.Normalized()
	start := doc.Validate(n.Start)
	end := doc.Validate(n.End)
	return &ReplaceCommand{
		start: start,
		end:   end,
		text:  text,
		prior: doc.TextInRange(document.Range{Start: start, End: end}),
	}
}

// Apply deletes the range and inserts the replacement.
func (c *ReplaceCommand) Apply(doc *document.Document) {
	deleteBetween(doc, c.start, c.end)
	insertAt(doc, c.start, c.text)
}

// Revert deletes the replacement and restores the prior text.
func (c *ReplaceCommand) Revert(doc *document.Document) {
	deleteBetween(doc, c.start, advance(c.start, c.text))
	insertAt(doc, c.start, c.prior)
}

// Before returns the end of the replaced range.
func (c *ReplaceCommand) Before() document.Position { return c.end }

// After returns the position just past the replacement text.
func (c *ReplaceCommand) After() document.Position { return advance(c.start, c.text) }

// Description returns a UI label.
func (c *ReplaceCommand) Description() string { return "replace text" }
