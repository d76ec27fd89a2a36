package kml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/folio/internal/document"
)

// ParseError describes a structural problem in markup input.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

// Error formats the message with its position.
func (e *ParseError) Error() string {
	return fmt.Sprintf("kml: line %d, column %d: %s", e.Line, e.Column, e.Message)
}

var inlineFormats = map[string]document.Format{
	"b":   document.FormatBold,
	"i":   document.FormatItalic,
	"u":   document.FormatUnderline,
	"s":   document.FormatStrikethrough,
	"sub": document.FormatSubscript,
	"sup": document.FormatSuperscript,
}

// ParseString parses markup from a string.
func ParseString(s string) (*document.Document, error) {
	return Parse(strings.NewReader(s))
}

// Parse reads markup into a new document. The document wrapper element
// is optional, so a bare sequence of p elements is also accepted. The
// whole input is read up front so error positions can be computed from
// the decoder's byte offset.
func Parse(r io.Reader) (*document.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("kml: read input: %w", err)
	}
	p := &parser{
		dec:   xml.NewDecoder(bytes.NewReader(data)),
		doc:   document.New(),
		input: data,
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.doc, nil
}

type parser struct {
	dec   *xml.Decoder
	doc   *document.Document
	input []byte

	// tokStart is the byte offset where the most recent token began;
	// errors point there rather than at the token's end.
	tokStart int64
}

func (p *parser) errorf(format string, args ...any) error {
	line, col := p.position(p.tokStart)
	return &ParseError{Message: fmt.Sprintf(format, args...), Line: line, Column: col}
}

// position converts a byte offset into 1-based line and rune column.
func (p *parser) position(off int64) (line, col int) {
	if off > int64(len(p.input)) {
		off = int64(len(p.input))
	}
	head := p.input[:off]
	line = bytes.Count(head, []byte{'\n'}) + 1
	last := bytes.LastIndexByte(head, '\n')
	col = len([]rune(string(head[last+1:]))) + 1
	return line, col
}

func (p *parser) next() (xml.Token, error) {
	p.tokStart = p.dec.InputOffset()
	return p.dec.Token()
}

func (p *parser) run() error {
	for {
		tok, err := p.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return p.wrapSyntax(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "document":
				// Transparent wrapper.
			case "p":
				if err := p.parseParagraph(t); err != nil {
					return err
				}
			case "todo", "note":
				if err := p.parseMarker(t); err != nil {
					return err
				}
			default:
				return p.errorf("unexpected element %q at document level", t.Name.Local)
			}
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return p.errorf("text outside a paragraph")
			}
		}
	}
}

func (p *parser) wrapSyntax(err error) error {
	if syn, ok := err.(*xml.SyntaxError); ok {
		_, col := p.position(p.dec.InputOffset())
		return &ParseError{Message: syn.Msg, Line: syn.Line, Column: col}
	}
	return err
}

func (p *parser) parseParagraph(start xml.StartElement) error {
	para := document.NewParagraph("")
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "style":
			para.SetStyleID(a.Value)
		case "align":
			para.SetAlignment(parseAlignment(a.Value))
		}
	}

	elements, err := p.parseInline(start.Name.Local, para)
	if err != nil {
		return err
	}
	for _, el := range elements {
		para.AddElement(el)
	}
	p.doc.AppendParagraph(para)
	return nil
}

// parseInline consumes tokens until the closing tag named closes,
// returning the nested element list. Comment elements attach to para
// instead of producing content.
func (p *parser) parseInline(closes string, para *document.Paragraph) ([]document.Element, error) {
	var out []document.Element
	for {
		tok, err := p.next()
		if err == io.EOF {
			return nil, p.errorf("unexpected end of input inside %q", closes)
		}
		if err != nil {
			return nil, p.wrapSyntax(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "comment" {
				if err := p.parseComment(t, para); err != nil {
					return nil, err
				}
				continue
			}
			format, ok := inlineFormats[t.Name.Local]
			if !ok {
				return nil, p.errorf("unexpected inline element %q", t.Name.Local)
			}
			children, err := p.parseInline(t.Name.Local, para)
			if err != nil {
				return nil, err
			}
			out = append(out, document.NewContainer(format, children...))
		case xml.EndElement:
			if t.Name.Local != closes {
				return nil, p.errorf("mismatched closing tag %q inside %q", t.Name.Local, closes)
			}
			return out, nil
		case xml.CharData:
			if len(t) > 0 {
				out = append(out, document.NewTextRun(string(t)))
			}
		}
	}
}

func (p *parser) parseComment(start xml.StartElement, para *document.Paragraph) error {
	c := document.Comment{}
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "id":
			c.ID = a.Value
		case "start":
			c.Start, _ = strconv.Atoi(a.Value)
		case "end":
			c.End, _ = strconv.Atoi(a.Value)
		case "author":
			c.Author = a.Value
		case "created":
			c.CreatedAt, _ = time.Parse(time.RFC3339, a.Value)
		case "resolved":
			c.Resolved = a.Value == "true"
		}
	}
	text, err := p.elementText(start.Name.Local)
	if err != nil {
		return err
	}
	c.Text = text
	if !c.IsValidRange() {
		return p.errorf("comment %q has an invalid range", c.ID)
	}
	para.AddComment(c)
	return nil
}

func (p *parser) parseMarker(start xml.StartElement) error {
	m := document.Marker{Length: 1}
	if start.Name.Local == "note" {
		m.Type = document.MarkerNote
	}
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "id":
			m.ID = a.Value
		case "pos":
			m.Position, _ = strconv.Atoi(a.Value)
		case "len":
			m.Length, _ = strconv.Atoi(a.Value)
		case "done":
			m.Completed = a.Value == "true"
		case "priority":
			m.Priority = a.Value
		case "created":
			m.CreatedAt, _ = time.Parse(time.RFC3339, a.Value)
		}
	}
	text, err := p.elementText(start.Name.Local)
	if err != nil {
		return err
	}
	m.Text = text
	p.doc.AddMarker(m)
	return nil
}

// elementText reads a leaf element's character content up to its
// closing tag.
func (p *parser) elementText(closes string) (string, error) {
	var b strings.Builder
	for {
		tok, err := p.next()
		if err == io.EOF {
			return "", p.errorf("unexpected end of input inside %q", closes)
		}
		if err != nil {
			return "", p.wrapSyntax(err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.EndElement:
			return b.String(), nil
		case xml.StartElement:
			return "", p.errorf("unexpected element %q inside %q", t.Name.Local, closes)
		}
	}
}

func parseAlignment(v string) document.Alignment {
	switch v {
	case "center":
		return document.AlignCenter
	case "right":
		return document.AlignRight
	case "justify":
		return document.AlignJustify
	default:
		return document.AlignLeft
	}
}
