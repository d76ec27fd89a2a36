package kml

import (
	"strings"
	"testing"

	"github.com/dshills/folio/internal/document"
)

func TestParseSimple(t *testing.T) {
	doc, err := ParseString(`<document><p>hello world</p><p>second</p></document>`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := doc.PlainText(); got != "hello world\nsecond" {
		t.Errorf("PlainText = %q", got)
	}
}

func TestParseWithoutWrapper(t *testing.T) {
	doc, err := ParseString(`<p>bare paragraph</p>`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.ParagraphCount() != 1 {
		t.Errorf("ParagraphCount = %d", doc.ParagraphCount())
	}
}

func TestParseNestedFormatting(t *testing.T) {
	doc, err := ParseString(`<p>plain <b>bold <i>both</i></b> tail</p>`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p := doc.ParagraphAt(0)
	if got := p.PlainText(); got != "plain bold both tail" {
		t.Fatalf("PlainText = %q", got)
	}
	if fs := p.FormatsAt(7); !fs.Has(document.FormatBold) || fs.Has(document.FormatItalic) {
		t.Error("inside b only bold should apply")
	}
	if fs := p.FormatsAt(12); !fs.Has(document.FormatBold) || !fs.Has(document.FormatItalic) {
		t.Error("inside nested i both should apply")
	}
	if fs := p.FormatsAt(17); !fs.IsEmpty() {
		t.Error("tail should be plain")
	}
}

func TestParseAttributesAndAnnotations(t *testing.T) {
	doc, err := ParseString(`<document>
<p style="heading" align="center">Chapter One<comment id="c1" start="0" end="7" author="ed" resolved="true">check title</comment></p>
<todo id="t1" pos="3" done="true" priority="high">rewrite opening</todo>
<note id="n1" pos="8">source needed</note>
</document>`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	p := doc.ParagraphAt(0)
	if p.StyleID() != "heading" || p.Alignment() != document.AlignCenter {
		t.Errorf("style=%q align=%v", p.StyleID(), p.Alignment())
	}
	c := p.CommentByID("c1")
	if c == nil || c.Start != 0 || c.End != 7 || c.Author != "ed" || !c.Resolved || c.Text != "check title" {
		t.Errorf("comment = %+v", c)
	}

	todo := doc.MarkerByID("t1")
	if todo == nil || todo.Position != 3 || !todo.Completed || todo.Priority != "high" || todo.Type != document.MarkerTodo {
		t.Errorf("todo = %+v", todo)
	}
	note := doc.MarkerByID("n1")
	if note == nil || note.Type != document.MarkerNote || note.Text != "source needed" {
		t.Errorf("note = %+v", note)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown top level", `<document><section>x</section></document>`},
		{"unknown inline", `<p><blink>x</blink></p>`},
		{"text outside paragraph", `<document>stray text</document>`},
		{"unclosed tag", `<p><b>never closed</p>`},
		{"invalid comment range", `<p>x<comment id="c" start="5" end="2">bad</comment></p>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseString(tt.input); err == nil {
				t.Errorf("Parse(%q) should fail", tt.input)
			}
		})
	}
}

func TestParseErrorHasLine(t *testing.T) {
	_, err := ParseString("<document>\n<p>fine</p>\n<bogus>x</bogus>\n</document>")
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error type %T", err)
	}
	if pe.Line != 3 {
		t.Errorf("Line = %d, want 3", pe.Line)
	}
	if pe.Column != 1 {
		t.Errorf("Column = %d, want 1", pe.Column)
	}
	if !strings.Contains(pe.Error(), "line 3") {
		t.Errorf("Error() = %q", pe.Error())
	}
}

func TestParseEscapedText(t *testing.T) {
	doc, err := ParseString(`<p>a &lt;tag&gt; &amp; more</p>`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := doc.ParagraphAt(0).PlainText(); got != "a <tag> & more" {
		t.Errorf("PlainText = %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	doc := document.New()

	h := document.NewStyledParagraph("Chapter One", "heading")
	h.SetAlignment(document.AlignCenter)
	doc.AppendParagraph(h)

	p := document.NewParagraph("plain ")
	p.AddElement(document.NewContainer(document.FormatBold,
		document.NewTextRun("bold "),
		document.NewContainer(document.FormatItalic, document.NewTextRun("both")),
	))
	p.AddComment(document.Comment{ID: "c1", Start: 6, End: 10, Text: "too loud?", Author: "ed"})
	doc.AppendParagraph(p)

	doc.AddMarker(document.Marker{ID: "t1", Position: 4, Length: 1, Type: document.MarkerTodo, Text: "fix", Priority: "low"})

	out, err := SerializeString(doc)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	parsed, err := ParseString(out)
	if err != nil {
		t.Fatalf("re-Parse: %v\nmarkup:\n%s", err, out)
	}

	if got := parsed.PlainText(); got != doc.PlainText() {
		t.Errorf("text round-trip: %q != %q", got, doc.PlainText())
	}
	rp := parsed.ParagraphAt(0)
	if rp.StyleID() != "heading" || rp.Alignment() != document.AlignCenter {
		t.Error("paragraph attributes should round-trip")
	}
	if fs := parsed.ParagraphAt(1).FormatsAt(8); !fs.Has(document.FormatBold) {
		t.Error("formatting should round-trip")
	}
	if fs := parsed.ParagraphAt(1).FormatsAt(12); !fs.Has(document.FormatItalic) || !fs.Has(document.FormatBold) {
		t.Error("nested formatting should round-trip")
	}
	c := parsed.ParagraphAt(1).CommentByID("c1")
	if c == nil || c.Start != 6 || c.End != 10 || c.Text != "too loud?" {
		t.Errorf("comment round-trip: %+v", c)
	}
	m := parsed.MarkerByID("t1")
	if m == nil || m.Position != 4 || m.Priority != "low" {
		t.Errorf("marker round-trip: %+v", m)
	}
}

func TestSerializeEscapes(t *testing.T) {
	doc := document.New()
	doc.AppendParagraph(document.NewParagraph(`5 < 6 & "quotes"`))
	out, err := SerializeString(doc)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if strings.Contains(out, `5 < 6`) {
		t.Errorf("text should be escaped: %s", out)
	}
	parsed, err := ParseString(out)
	if err != nil {
		t.Fatalf("re-Parse: %v", err)
	}
	if got := parsed.ParagraphAt(0).PlainText(); got != `5 < 6 & "quotes"` {
		t.Errorf("escape round-trip: %q", got)
	}
}
