package document

import "testing"

func TestFormatSet(t *testing.T) {
	s := NewFormatSet(FormatBold, FormatItalic)
	if !s.Has(FormatBold) || !s.Has(FormatItalic) || s.Has(FormatUnderline) {
		t.Errorf("unexpected membership in %v", s.Formats())
	}
	s = s.Without(FormatBold)
	if s.Has(FormatBold) {
		t.Error("Without should remove the format")
	}
	if NewFormatSet().IsEmpty() != true {
		t.Error("empty set should report IsEmpty")
	}
}

func TestContainerNesting(t *testing.T) {
	inner := NewContainer(FormatItalic, NewTextRun("both"))
	outer := NewContainer(FormatBold, NewTextRun("bold "), inner)
	if got := outer.PlainText(); got != "bold both" {
		t.Errorf("PlainText() = %q", got)
	}
	if got := outer.Length(); got != 9 {
		t.Errorf("Length() = %d, want 9", got)
	}

	runs := flattenElements([]Element{outer}, 0, "")
	if len(runs) != 2 {
		t.Fatalf("flatten produced %d runs, want 2", len(runs))
	}
	if !runs[1].formats.Has(FormatBold) || !runs[1].formats.Has(FormatItalic) {
		t.Error("nested run should carry both inherited formats")
	}
}

func TestBuildElementsMinimalNesting(t *testing.T) {
	runs := []styledRun{
		{text: []rune("ab"), formats: NewFormatSet(FormatBold)},
		{text: []rune("cd"), formats: NewFormatSet(FormatBold, FormatItalic)},
		{text: []rune("ef"), formats: NewFormatSet(FormatBold)},
	}
	els := buildElements(runs)
	if len(els) != 1 {
		t.Fatalf("runs sharing bold should group under one container, got %d elements", len(els))
	}
	c, ok := els[0].(*Container)
	if !ok || c.Format != FormatBold {
		t.Fatalf("expected a bold container, got %T", els[0])
	}
	if got := c.PlainText(); got != "abcdef" {
		t.Errorf("container text = %q", got)
	}
}

func TestElementClone(t *testing.T) {
	outer := NewContainer(FormatBold, NewTextRun("text"))
	cp := outer.Clone().(*Container)
	cp.Children[0].(*TextRun).Text = "changed"
	if outer.PlainText() != "text" {
		t.Error("clone must not alias the original's children")
	}
}
