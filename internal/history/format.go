package history

import "github.com/dshills/folio/internal/document"

// formatOp is the closed set of formatting mutations.
type formatOp uint8

const (
	opApply formatOp = iota
	opRemove
	opClear
)

// FormatCommand changes inline formatting over a rune range within one
// paragraph. A clone of the paragraph is captured at construction, so
// revert restores the exact prior run structure, not an approximation.
type FormatCommand struct {
	paragraph int
	start     int
	end       int
	format    document.Format
	op        formatOp
	prior     *document.Paragraph
	cursor    document.Position
}

// NewApplyFormat creates a command applying format over [start, end) in
// the paragraph at index.
func NewApplyFormat(doc *document.Document, index, start, end int, format document.Format) *FormatCommand {
	return newFormat(doc, index, start, end, format, opApply)
}

// NewRemoveFormat creates a command removing format over [start, end).
func NewRemoveFormat(doc *document.Document, index, start, end int, format document.Format) *FormatCommand {
	return newFormat(doc, index, start, end, format, opRemove)
}

// NewClearFormats creates a command stripping all formatting over
// [start, end).
func NewClearFormats(doc *document.Document, index, start, end int) *FormatCommand {
	return newFormat(doc, index, start, end, 0, opClear)
}

func newFormat(doc *document.Document, index, start, end int, format document.Format, op formatOp) *FormatCommand {
	c := &FormatCommand{
		paragraph: index,
		start:     start,
		end:       end,
		format:    format,
		op:        op,
		cursor:    doc.Validate(document.Position{Paragraph: index, Offset: end}),
	}
	if p := doc.ParagraphAt(index); p != nil {
		c.prior = p.Clone()
	}
	return c
}

// Apply performs the formatting change.
func (c *FormatCommand) Apply(doc *document.Document) {
	p := doc.ParagraphAt(c.paragraph)
	if p == nil {
		return
	}
	switch c.op {
	case opApply:
		p.ApplyFormat(c.start, c.end, c.format)
	case opRemove:
		p.RemoveFormat(c.start, c.end, c.format)
	case opClear:
		p.ClearFormats(c.start, c.end)
	}
	doc.NotifyParagraphModified(c.paragraph)
}

// Revert swaps back a clone of the paragraph as it was before Apply.
func (c *FormatCommand) Revert(doc *document.Document) {
	if c.prior == nil {
		return
	}
	doc.SetParagraph(c.paragraph, c.prior.Clone())
}

// Before returns the cursor position, unchanged by formatting.
func (c *FormatCommand) Before() document.Position { return c.cursor }

// After returns the cursor position, unchanged by formatting.
func (c *FormatCommand) After() document.Position { return c.cursor }

// Description returns a UI label.
func (c *FormatCommand) Description() string {
	switch c.op {
	case opRemove:
		return "remove " + c.format.String()
	case opClear:
		return "clear formatting"
	default:
		return "apply " + c.format.String()
	}
}

// AlignmentCommand changes a paragraph's alignment.
type AlignmentCommand struct {
	paragraph int
	next      document.Alignment
	prior     document.Alignment
	cursor    document.Position
}

// NewAlignment creates an alignment change for the paragraph at index.
func NewAlignment(doc *document.Document, index int, a document.Alignment) *AlignmentCommand {
	c := &AlignmentCommand{
		paragraph: index,
		next:      a,
		cursor:    doc.Validate(document.Position{Paragraph: index}),
	}
	if p := doc.ParagraphAt(index); p != nil {
		c.prior = p.Alignment()
	}
	return c
}

// Apply sets the new alignment.
func (c *AlignmentCommand) Apply(doc *document.Document) {
	if p := doc.ParagraphAt(c.paragraph); p != nil {
		p.SetAlignment(c.next)
		doc.NotifyParagraphModified(c.paragraph)
	}
}

// Revert restores the prior alignment.
func (c *AlignmentCommand) Revert(doc *document.Document) {
	if p := doc.ParagraphAt(c.paragraph); p != nil {
		p.SetAlignment(c.prior)
		doc.NotifyParagraphModified(c.paragraph)
	}
}

// Before returns the cursor position, unchanged by alignment.
func (c *AlignmentCommand) Before() document.Position { return c.cursor }

// After returns the cursor position, unchanged by alignment.
func (c *AlignmentCommand) After() document.Position { return c.cursor }

// Description returns a UI label.
func (c *AlignmentCommand) Description() string { return "align " + c.next.String() }

// StyleCommand changes a paragraph's style id.
type StyleCommand struct {
	paragraph int
	next      string
	prior     string
	cursor    document.Position
}

// NewStyle creates a style change for the paragraph at index.
func NewStyle(doc *document.Document, index int, styleID string) *StyleCommand {
	c := &StyleCommand{
		paragraph: index,
		next:      styleID,
		cursor:    doc.Validate(document.Position{Paragraph: index}),
	}
	if p := doc.ParagraphAt(index); p != nil {
		c.prior = p.StyleID()
	}
	return c
}

// Apply sets the new style id.
func (c *StyleCommand) Apply(doc *document.Document) {
	if p := doc.ParagraphAt(c.paragraph); p != nil {
		p.SetStyleID(c.next)
		doc.NotifyParagraphModified(c.paragraph)
	}
}

// Revert restores the prior style id.
func (c *StyleCommand) Revert(doc *document.Document) {
	if p := doc.ParagraphAt(c.paragraph); p != nil {
		p.SetStyleID(c.prior)
		doc.NotifyParagraphModified(c.paragraph)
	}
}

// Before returns the cursor position, unchanged by styling.
func (c *StyleCommand) Before() document.Position { return c.cursor }

// After returns the cursor position, unchanged by styling.
func (c *StyleCommand) After() document.Position { return c.cursor }

// Description returns a UI label.
func (c *StyleCommand) Description() string { return "set style" }
