package kml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dshills/folio/internal/document"
)

var formatTags = map[document.Format]string{
	document.FormatBold:          "b",
	document.FormatItalic:        "i",
	document.FormatUnderline:     "u",
	document.FormatStrikethrough: "s",
	document.FormatSubscript:     "sub",
	document.FormatSuperscript:   "sup",
}

// SerializeString writes the document as markup to a string.
func SerializeString(doc *document.Document) (string, error) {
	var b strings.Builder
	if err := Serialize(&b, doc); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Serialize writes the document as markup.
func Serialize(w io.Writer, doc *document.Document) error {
	s := &serializer{w: w}
	s.printf("<document>\n")
	for _, p := range doc.Paragraphs() {
		s.writeParagraph(p)
	}
	for _, m := range doc.Markers() {
		s.writeMarker(m)
	}
	s.printf("</document>\n")
	return s.err
}

type serializer struct {
	w   io.Writer
	err error
}

func (s *serializer) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

func (s *serializer) text(t string) {
	if s.err != nil {
		return
	}
	s.err = xml.EscapeText(s.w, []byte(t))
}

// attr writes an XML-escaped attribute.
func (s *serializer) attr(name, value string) {
	s.printf(` %s="`, name)
	s.text(value)
	s.printf(`"`)
}

func (s *serializer) writeParagraph(p *document.Paragraph) {
	s.printf("<p")
	if p.StyleID() != "" {
		s.attr("style", p.StyleID())
	}
	if p.Alignment() != document.AlignLeft {
		s.attr("align", p.Alignment().String())
	}
	s.printf(">")
	for _, el := range p.Elements() {
		s.writeElement(el)
	}
	for _, c := range p.Comments() {
		s.writeComment(c)
	}
	s.printf("</p>\n")
}

func (s *serializer) writeElement(el document.Element) {
	switch e := el.(type) {
	case *document.TextRun:
		s.text(e.Text)
	case *document.Container:
		tag := formatTags[e.Format]
		s.printf("<%s>", tag)
		for _, child := range e.Children {
			s.writeElement(child)
		}
		s.printf("</%s>", tag)
	}
}

func (s *serializer) writeComment(c document.Comment) {
	s.printf("<comment")
	s.attr("id", c.ID)
	s.printf(` start="%d" end="%d"`, c.Start, c.End)
	if c.Author != "" {
		s.attr("author", c.Author)
	}
	if !c.CreatedAt.IsZero() {
		s.attr("created", c.CreatedAt.Format(time.RFC3339))
	}
	if c.Resolved {
		s.printf(` resolved="true"`)
	}
	s.printf(">")
	s.text(c.Text)
	s.printf("</comment>")
}

func (s *serializer) writeMarker(m document.Marker) {
	tag := "todo"
	if m.Type == document.MarkerNote {
		tag = "note"
	}
	s.printf("<%s", tag)
	s.attr("id", m.ID)
	s.printf(` pos="%d"`, m.Position)
	if m.Length != 1 {
		s.printf(` len="%d"`, m.Length)
	}
	if m.Completed {
		s.printf(` done="true"`)
	}
	if m.Priority != "" {
		s.attr("priority", m.Priority)
	}
	if !m.CreatedAt.IsZero() {
		s.attr("created", m.CreatedAt.Format(time.RFC3339))
	}
	s.printf(">")
	s.text(m.Text)
	s.printf("</%s>\n", tag)
}
