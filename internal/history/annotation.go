package history

import "github.com/dshills/folio/internal/document"

// AddCommentCommand attaches a comment to a paragraph.
type AddCommentCommand struct {
	paragraph int
	comment   document.Comment
	cursor    document.Position
}

// NewAddComment creates a comment addition on the paragraph at index.
func NewAddComment(doc *document.Document, index int, c document.Comment) *AddCommentCommand {
	return &AddCommentCommand{
		paragraph: index,
		comment:   c,
		cursor:    doc.Validate(document.Position{Paragraph: index, Offset: c.End}),
	}
}

// Apply adds the comment.
func (c *AddCommentCommand) Apply(doc *document.Document) {
	if p := doc.ParagraphAt(c.paragraph); p != nil {
		p.AddComment(c.comment)
		doc.NotifyParagraphModified(c.paragraph)
	}
}

// Revert removes the comment.
func (c *AddCommentCommand) Revert(doc *document.Document) {
	if p := doc.ParagraphAt(c.paragraph); p != nil {
		p.RemoveComment(c.comment.ID)
		doc.NotifyParagraphModified(c.paragraph)
	}
}

// Before returns the cursor position, unchanged by commenting.
func (c *AddCommentCommand) Before() document.Position { return c.cursor }

// After returns the cursor position, unchanged by commenting.
func (c *AddCommentCommand) After() document.Position { return c.cursor }

// Description returns a UI label.
func (c *AddCommentCommand) Description() string { return "add comment" }

// RemoveCommentCommand detaches a comment from a paragraph. The comment
// is captured at construction so revert restores it with its anchors.
type RemoveCommentCommand struct {
	paragraph int
	comment   document.Comment
	cursor    document.Position
}

// NewRemoveComment creates a removal of the comment with id on the
// paragraph at index. Returns nil if the comment does not exist.
func NewRemoveComment(doc *document.Document, index int, id string) *RemoveCommentCommand {
	p := doc.ParagraphAt(index)
	if p == nil {
		return nil
	}
	c := p.CommentByID(id)
	if c == nil {
		return nil
	}
	return &RemoveCommentCommand{
		paragraph: index,
		comment:   *c,
		cursor:    doc.Validate(document.Position{Paragraph: index, Offset: c.Start}),
	}
}

// Apply removes the comment.
func (c *RemoveCommentCommand) Apply(doc *document.Document) {
	if p := doc.ParagraphAt(c.paragraph); p != nil {
		p.RemoveComment(c.comment.ID)
		doc.NotifyParagraphModified(c.paragraph)
	}
}

// Revert re-adds the comment.
func (c *RemoveCommentCommand) Revert(doc *document.Document) {
	if p := doc.ParagraphAt(c.paragraph); p != nil {
		p.AddComment(c.comment)
		doc.NotifyParagraphModified(c.paragraph)
	}
}

// Before returns the cursor position, unchanged by comment removal.
func (c *RemoveCommentCommand) Before() document.Position { return c.cursor }

// After returns the cursor position, unchanged by comment removal.
func (c *RemoveCommentCommand) After() document.Position { return c.cursor }

// Description returns a UI label.
func (c *RemoveCommentCommand) Description() string { return "remove comment" }

// AddMarkerCommand adds a TODO or Note marker to the document.
type AddMarkerCommand struct {
	marker document.Marker
	cursor document.Position
}

// NewAddMarker creates a marker addition.
func NewAddMarker(doc *document.Document, m document.Marker) *AddMarkerCommand {
	return &AddMarkerCommand{marker: m, cursor: doc.FromAbsolute(m.Position)}
}

// Apply adds the marker.
func (c *AddMarkerCommand) Apply(doc *document.Document) {
	doc.AddMarker(c.marker)
}

// Revert removes the marker.
func (c *AddMarkerCommand) Revert(doc *document.Document) {
	doc.RemoveMarker(c.marker.ID)
}

// Before returns the marker's position.
func (c *AddMarkerCommand) Before() document.Position { return c.cursor }

// After returns the marker's position.
func (c *AddMarkerCommand) After() document.Position { return c.cursor }

// Description returns a UI label.
func (c *AddMarkerCommand) Description() string { return "add " + c.marker.Type.String() }

// RemoveMarkerCommand removes a marker, capturing it for revert.
type RemoveMarkerCommand struct {
	marker document.Marker
	cursor document.Position
}

// NewRemoveMarker creates a removal of the marker with id. Returns nil
// if the marker does not exist.
func NewRemoveMarker(doc *document.Document, id string) *RemoveMarkerCommand {
	m := doc.MarkerByID(id)
	if m == nil {
		return nil
	}
	return &RemoveMarkerCommand{marker: *m, cursor: doc.FromAbsolute(m.Position)}
}

// Apply removes the marker.
func (c *RemoveMarkerCommand) Apply(doc *document.Document) {
	doc.RemoveMarker(c.marker.ID)
}

// Revert re-adds the marker with its captured state.
func (c *RemoveMarkerCommand) Revert(doc *document.Document) {
	doc.AddMarker(c.marker)
}

// Before returns the marker's position.
func (c *RemoveMarkerCommand) Before() document.Position { return c.cursor }

// After returns the marker's position.
func (c *RemoveMarkerCommand) After() document.Position { return c.cursor }

// Description returns a UI label.
func (c *RemoveMarkerCommand) Description() string { return "remove " + c.marker.Type.String() }

// ToggleMarkerCommand flips a TODO marker's completion state. Toggling
// twice is its own inverse, so revert simply toggles again.
type ToggleMarkerCommand struct {
	id     string
	cursor document.Position
}

// NewToggleMarker creates a completion toggle for the marker with id.
// Returns nil if the marker does not exist.
func NewToggleMarker(doc *document.Document, id string) *ToggleMarkerCommand {
	m := doc.MarkerByID(id)
	if m == nil {
		return nil
	}
	return &ToggleMarkerCommand{id: id, cursor: doc.FromAbsolute(m.Position)}
}

// Apply toggles the completion flag.
func (c *ToggleMarkerCommand) Apply(doc *document.Document) {
	doc.ToggleMarker(c.id)
}

// Revert toggles the completion flag back.
func (c *ToggleMarkerCommand) Revert(doc *document.Document) {
	doc.ToggleMarker(c.id)
}

// Before returns the marker's position.
func (c *ToggleMarkerCommand) Before() document.Position { return c.cursor }

// After returns the marker's position.
func (c *ToggleMarkerCommand) After() document.Position { return c.cursor }

// Description returns a UI label.
func (c *ToggleMarkerCommand) Description() string { return "toggle todo" }
