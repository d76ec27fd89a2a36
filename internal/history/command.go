package history

import (
	"strings"

	"github.com/dshills/folio/internal/document"
)

// Command is a reversible document mutation. Apply and Revert are
// infallible: constructors validate and clamp their inputs, so a
// command that exists can always run against the document state it was
// built for.
type Command interface {
	// Apply performs the mutation.
	Apply(doc *document.Document)

	// Revert restores the document to its state before Apply.
	Revert(doc *document.Document)

	// Before returns the cursor position prior to the mutation. Undo
	// moves the cursor here.
	Before() document.Position

	// After returns the cursor position following the mutation. Redo
	// moves the cursor here.
	After() document.Position

	// Description names the mutation for UI display.
	Description() string
}

func runeLen(s string) int { return len([]rune(s)) }

// advance walks text from pos the way an insertion moves the cursor: a
// separator advances to the start of the next paragraph, any other rune
// advances the offset.
func advance(pos document.Position, text string) document.Position {
	for _, r := range text {
		if r == document.ParagraphSeparator {
			pos.Paragraph++
			pos.Offset = 0
		} else {
			pos.Offset++
		}
	}
	return pos
}

// insertAt inserts text at pos, creating paragraphs for separators, and
// returns the position just after the inserted text. Marker anchors are
// shifted by the inserted rune count.
func insertAt(doc *document.Document, pos document.Position, text string) document.Position {
	if text == "" {
		return doc.Validate(pos)
	}
	if doc.IsEmpty() {
		doc.AppendParagraph(document.NewParagraph(""))
	}
	pos = doc.Validate(pos)
	abs := doc.ToAbsolute(pos)

	parts := strings.Split(text, string(document.ParagraphSeparator))
	if len(parts) == 1 {
		doc.ParagraphAt(pos.Paragraph).InsertText(pos.Offset, text)
		doc.NotifyParagraphModified(pos.Paragraph)
		doc.OnTextInserted(abs, runeLen(text))
		return document.Position{Paragraph: pos.Paragraph, Offset: pos.Offset + runeLen(text)}
	}

	first := doc.ParagraphAt(pos.Paragraph)
	tail := first.SplitAt(pos.Offset)
	first.InsertText(pos.Offset, parts[0])
	doc.NotifyParagraphModified(pos.Paragraph)

	index := pos.Paragraph
	for _, part := range parts[1 : len(parts)-1] {
		index++
		doc.InsertParagraph(index, document.NewParagraph(part))
	}
	last := parts[len(parts)-1]
	tail.InsertText(0, last)
	index++
	doc.InsertParagraph(index, tail)

	doc.OnTextInserted(abs, runeLen(text))
	return document.Position{Paragraph: index, Offset: runeLen(last)}
}

// deleteBetween removes the content between two positions, merging
// paragraphs across separators, and returns the removed plain text.
// Marker anchors inside the range collapse to its start.
func deleteBetween(doc *document.Document, start, end document.Position) string {
	r := document.Range{Start: start, End: end}.Normalized()
	start = doc.Validate(r.Start)
	end = doc.Validate(r.End)
	if start == end {
		return ""
	}

	text := doc.TextInRange(document.Range{Start: start, End: end})
	abs := doc.ToAbsolute(start)

	if start.Paragraph == end.Paragraph {
		doc.ParagraphAt(start.Paragraph).DeleteText(start.Offset, end.Offset)
		doc.NotifyParagraphModified(start.Paragraph)
	} else {
		first := doc.ParagraphAt(start.Paragraph)
		last := doc.ParagraphAt(end.Paragraph)
		first.DeleteText(start.Offset, first.Length())
		last.DeleteText(0, end.Offset)
		for i := end.Paragraph - 1; i > start.Paragraph; i-- {
			doc.RemoveParagraph(i)
		}
		doc.RemoveParagraph(start.Paragraph + 1)
		first.MergeWith(last)
		doc.NotifyParagraphModified(start.Paragraph)
	}

	doc.OnTextDeleted(abs, runeLen(text))
	return text
}
