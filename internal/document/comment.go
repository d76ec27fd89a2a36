package document

import (
	"time"

	"github.com/google/uuid"
)

// Comment is an annotation anchored to a rune range within one
// paragraph. Comments are owned by the paragraph; their anchors shift
// with edits to that paragraph.
type Comment struct {
	ID        string
	Start     int // inclusive rune offset
	End       int // exclusive rune offset
	Text      string
	Author    string
	CreatedAt time.Time
	Resolved  bool
}

// NewComment creates a comment over [start, end) with a generated id.
func NewComment(start, end int, text string) Comment {
	return Comment{
		ID:        uuid.NewString(),
		Start:     start,
		End:       end,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// Length returns the anchored range length.
func (c Comment) Length() int { return c.End - c.Start }

// IsValidRange reports whether the anchor covers at least one rune.
func (c Comment) IsValidRange() bool { return c.Start >= 0 && c.Start < c.End }

// MarkerType distinguishes the two marker kinds.
type MarkerType uint8

const (
	// MarkerTodo is an actionable item with a completion state.
	MarkerTodo MarkerType = iota

	// MarkerNote is an informational annotation.
	MarkerNote
)

// String returns the marker type name.
func (t MarkerType) String() string {
	if t == MarkerNote {
		return "note"
	}
	return "todo"
}

// Marker is a TODO or Note annotation anchored to a single absolute
// document offset. Markers are owned by the Document and shift with
// edits anywhere in the document.
type Marker struct {
	ID        string
	Position  int // absolute rune offset
	Length    int // anchor text length
	Text      string
	Type      MarkerType
	Completed bool // meaningful for MarkerTodo only
	Priority  string
	CreatedAt time.Time
}

// NewMarker creates a marker at the given absolute position.
func NewMarker(position int, typ MarkerType, text string) Marker {
	return Marker{
		ID:        uuid.NewString(),
		Position:  position,
		Length:    1,
		Text:      text,
		Type:      typ,
		CreatedAt: time.Now(),
	}
}
