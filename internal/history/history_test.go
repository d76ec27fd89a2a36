package history

import (
	"testing"
	"time"

	"github.com/dshills/folio/internal/document"
)

func buildDoc(texts ...string) *document.Document {
	d := document.New()
	for _, s := range texts {
		d.AppendParagraph(document.NewParagraph(s))
	}
	return d
}

// fixedClock lets tests drive the coalescing window deterministically.
type fixedClock struct{ t time.Time }

func (c *fixedClock) now() time.Time          { return c.t }
func (c *fixedClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStack(opts Options) (*Stack, *fixedClock) {
	clock := &fixedClock{t: time.Unix(1000, 0)}
	s := NewStack(opts)
	s.now = clock.now
	return s, clock
}

func TestInsertApplyRevert(t *testing.T) {
	d := buildDoc("hello world")
	cmd := NewInsert(document.Position{Paragraph: 0, Offset: 5}, ", cruel")

	cmd.Apply(d)
	if got := d.PlainText(); got != "hello, cruel world" {
		t.Fatalf("after apply: %q", got)
	}
	if got := cmd.After(); got != (document.Position{Paragraph: 0, Offset: 12}) {
		t.Errorf("After() = %v", got)
	}

	cmd.Revert(d)
	if got := d.PlainText(); got != "hello world" {
		t.Errorf("after revert: %q", got)
	}
}

func TestInsertWithSeparators(t *testing.T) {
	d := buildDoc("headtail")
	cmd := NewInsert(document.Position{Paragraph: 0, Offset: 4}, "one\ntwo\nthree")

	cmd.Apply(d)
	if got := d.PlainText(); got != "headone\ntwo\nthreetail" {
		t.Fatalf("after apply: %q", got)
	}
	if got := cmd.After(); got != (document.Position{Paragraph: 2, Offset: 5}) {
		t.Errorf("After() = %v, want {2 5}", got)
	}

	cmd.Revert(d)
	if got := d.PlainText(); got != "headtail" {
		t.Errorf("after revert: %q", got)
	}
	if d.ParagraphCount() != 1 {
		t.Errorf("revert should remove created paragraphs, have %d", d.ParagraphCount())
	}
}

func TestInsertIntoEmptyDocument(t *testing.T) {
	d := document.New()
	cmd := NewInsert(document.Position{}, "first")
	cmd.Apply(d)
	if got := d.PlainText(); got != "first" {
		t.Errorf("after apply: %q", got)
	}
	if d.ParagraphCount() != 1 {
		t.Errorf("ParagraphCount = %d, want 1", d.ParagraphCount())
	}

	// Undoing the first insertion restores the zero-paragraph state,
	// not a single empty paragraph.
	cmd.Revert(d)
	if d.ParagraphCount() != 0 {
		t.Errorf("after revert ParagraphCount = %d, want 0", d.ParagraphCount())
	}

	cmd.Apply(d)
	if got := d.PlainText(); got != "first" {
		t.Errorf("after reapply: %q", got)
	}
}

func TestDeleteWithinParagraph(t *testing.T) {
	d := buildDoc("hello cruel world")
	cmd := NewDelete(d, document.Range{
		Start: document.Position{Paragraph: 0, Offset: 5},
		End:   document.Position{Paragraph: 0, Offset: 11},
	})

	cmd.Apply(d)
	if got := d.PlainText(); got != "hello world" {
		t.Fatalf("after apply: %q", got)
	}
	cmd.Revert(d)
	if got := d.PlainText(); got != "hello cruel world" {
		t.Errorf("after revert: %q", got)
	}
}

func TestDeleteAcrossParagraphs(t *testing.T) {
	d := buildDoc("first line", "middle", "last line")
	cmd := NewDelete(d, document.Range{
		Start: document.Position{Paragraph: 0, Offset: 5},
		End:   document.Position{Paragraph: 2, Offset: 4},
	})

	cmd.Apply(d)
	if got := d.PlainText(); got != "first line" {
		t.Fatalf("after apply: %q", got)
	}
	if d.ParagraphCount() != 1 {
		t.Fatalf("ParagraphCount = %d, want 1", d.ParagraphCount())
	}

	cmd.Revert(d)
	if got := d.PlainText(); got != "first line\nmiddle\nlast line" {
		t.Errorf("after revert: %q", got)
	}
	if got := cmd.After(); got != (document.Position{Paragraph: 0, Offset: 5}) {
		t.Errorf("After() = %v", got)
	}
}

func TestDeleteReversedRangeNormalizes(t *testing.T) {
	d := buildDoc("abcdef")
	cmd := NewDelete(d, document.Range{
		Start: document.Position{Paragraph: 0, Offset: 4},
		End:   document.Position{Paragraph: 0, Offset: 2},
	})
	cmd.Apply(d)
	if got := d.PlainText(); got != "abef" {
		t.Errorf("after apply: %q", got)
	}
}

func TestSplitAndRevert(t *testing.T) {
	d := buildDoc("hello world")
	cmd := NewSplit(document.Position{Paragraph: 0, Offset: 6})

	cmd.Apply(d)
	if got := d.PlainText(); got != "hello \nworld" {
		t.Fatalf("after apply: %q", got)
	}
	if got := cmd.After(); got != (document.Position{Paragraph: 1, Offset: 0}) {
		t.Errorf("After() = %v, want {1 0}", got)
	}

	cmd.Revert(d)
	if got := d.PlainText(); got != "hello world" {
		t.Errorf("after revert: %q", got)
	}
	if d.ParagraphCount() != 1 {
		t.Errorf("ParagraphCount = %d, want 1", d.ParagraphCount())
	}
}

func TestMergeAndRevert(t *testing.T) {
	d := buildDoc("hello ", "world")
	cmd := NewMerge(d, 0)

	cmd.Apply(d)
	if got := d.PlainText(); got != "hello world" {
		t.Fatalf("after apply: %q", got)
	}
	if got := cmd.After(); got != (document.Position{Paragraph: 0, Offset: 6}) {
		t.Errorf("After() = %v, want join offset {0 6}", got)
	}

	cmd.Revert(d)
	if got := d.PlainText(); got != "hello \nworld" {
		t.Errorf("after revert: %q", got)
	}
}

func TestFormatRevertRestoresRunStructure(t *testing.T) {
	d := buildDoc("abcdef")
	p := d.ParagraphAt(0)
	p.ApplyFormat(0, 3, document.FormatItalic)
	wantSpans := len(p.FormatSpans())

	cmd := NewApplyFormat(d, 0, 1, 5, document.FormatBold)
	cmd.Apply(d)
	if fs := d.ParagraphAt(0).FormatsAt(2); !fs.Has(document.FormatBold) {
		t.Fatal("bold should be applied")
	}

	cmd.Revert(d)
	p = d.ParagraphAt(0)
	if fs := p.FormatsAt(2); fs.Has(document.FormatBold) {
		t.Error("bold should be gone after revert")
	}
	if fs := p.FormatsAt(1); !fs.Has(document.FormatItalic) {
		t.Error("prior italic should survive revert")
	}
	if got := len(p.FormatSpans()); got != wantSpans {
		t.Errorf("revert should restore run structure: %d spans, want %d", got, wantSpans)
	}
}

func TestAlignmentCommand(t *testing.T) {
	d := buildDoc("text")
	cmd := NewAlignment(d, 0, document.AlignCenter)
	cmd.Apply(d)
	if d.ParagraphAt(0).Alignment() != document.AlignCenter {
		t.Error("alignment should change")
	}
	cmd.Revert(d)
	if d.ParagraphAt(0).Alignment() != document.AlignLeft {
		t.Error("alignment should revert")
	}
}

func TestReplaceCommand(t *testing.T) {
	d := buildDoc("the quick fox")
	cmd := NewReplace(d, document.Range{
		Start: document.Position{Paragraph: 0, Offset: 4},
		End:   document.Position{Paragraph: 0, Offset: 9},
	}, "lazy brown")

	cmd.Apply(d)
	if got := d.PlainText(); got != "the lazy brown fox" {
		t.Fatalf("after apply: %q", got)
	}
	cmd.Revert(d)
	if got := d.PlainText(); got != "the quick fox" {
		t.Errorf("after revert: %q", got)
	}
}

func TestStackUndoRedo(t *testing.T) {
	d := buildDoc("base")
	s, _ := newTestStack(Options{})

	s.Execute(d, NewInsert(document.Position{Paragraph: 0, Offset: 4}, "\nmore"))
	if got := d.PlainText(); got != "base\nmore" {
		t.Fatalf("after execute: %q", got)
	}

	pos, ok := s.Undo(d)
	if !ok {
		t.Fatal("undo should succeed")
	}
	if got := d.PlainText(); got != "base" {
		t.Errorf("after undo: %q", got)
	}
	if pos != (document.Position{Paragraph: 0, Offset: 4}) {
		t.Errorf("undo cursor = %v", pos)
	}

	pos, ok = s.Redo(d)
	if !ok {
		t.Fatal("redo should succeed")
	}
	if got := d.PlainText(); got != "base\nmore" {
		t.Errorf("after redo: %q", got)
	}
	if pos != (document.Position{Paragraph: 1, Offset: 4}) {
		t.Errorf("redo cursor = %v", pos)
	}
}

func TestStackEmptyUndoRedo(t *testing.T) {
	d := buildDoc("x")
	s, _ := newTestStack(Options{})
	if _, ok := s.Undo(d); ok {
		t.Error("undo on empty stack should report false")
	}
	if _, ok := s.Redo(d); ok {
		t.Error("redo on empty stack should report false")
	}
}

func TestStackClearsRedoOnExecute(t *testing.T) {
	d := buildDoc("")
	s, _ := newTestStack(Options{})
	s.Execute(d, NewInsert(document.Position{}, "a"))
	s.Undo(d)
	if !s.CanRedo() {
		t.Fatal("redo should be available after undo")
	}
	s.Execute(d, NewInsert(document.Position{}, "b"))
	if s.CanRedo() {
		t.Error("new command should clear the redo stack")
	}
}

func TestStackCoalescesTyping(t *testing.T) {
	d := buildDoc("")
	s, clock := newTestStack(Options{})

	for i, ch := range []string{"h", "e", "l", "l", "o"} {
		s.Execute(d, NewInsert(document.Position{Paragraph: 0, Offset: i}, ch))
		clock.advance(100 * time.Millisecond)
	}
	if got := s.UndoCount(); got != 1 {
		t.Fatalf("rapid typing should coalesce: %d entries, want 1", got)
	}

	s.Undo(d)
	if got := d.PlainText(); got != "" {
		t.Errorf("one undo should remove the whole burst, got %q", got)
	}
}

func TestStackCoalesceRespectsWindow(t *testing.T) {
	d := buildDoc("")
	s, clock := newTestStack(Options{})

	s.Execute(d, NewInsert(document.Position{Paragraph: 0, Offset: 0}, "a"))
	clock.advance(1500 * time.Millisecond)
	s.Execute(d, NewInsert(document.Position{Paragraph: 0, Offset: 1}, "b"))

	if got := s.UndoCount(); got != 2 {
		t.Errorf("a pause should break coalescing: %d entries, want 2", got)
	}
}

func TestStackCoalesceBreaksOnSeparator(t *testing.T) {
	d := buildDoc("")
	s, _ := newTestStack(Options{})

	s.Execute(d, NewInsert(document.Position{Paragraph: 0, Offset: 0}, "a"))
	s.Execute(d, NewInsert(document.Position{Paragraph: 0, Offset: 1}, "\n"))
	s.Execute(d, NewInsert(document.Position{Paragraph: 1, Offset: 0}, "b"))

	if got := s.UndoCount(); got != 3 {
		t.Errorf("separators should not coalesce: %d entries, want 3", got)
	}
}

func TestStackCoalesceBreaksOnCursorMove(t *testing.T) {
	d := buildDoc("abc")
	s, _ := newTestStack(Options{})

	s.Execute(d, NewInsert(document.Position{Paragraph: 0, Offset: 3}, "d"))
	s.Execute(d, NewInsert(document.Position{Paragraph: 0, Offset: 0}, "x"))

	if got := s.UndoCount(); got != 2 {
		t.Errorf("non-adjacent insertions should not coalesce: %d entries, want 2", got)
	}
}

func TestStackCoalesceLengthCap(t *testing.T) {
	d := buildDoc("")
	s, _ := newTestStack(Options{MaxMergeLength: 3})

	for i := 0; i < 5; i++ {
		s.Execute(d, NewInsert(document.Position{Paragraph: 0, Offset: i}, "x"))
	}
	if got := s.UndoCount(); got != 2 {
		t.Errorf("length cap should split the burst: %d entries, want 2", got)
	}
}

func TestStackGroup(t *testing.T) {
	d := buildDoc("aaa bbb aaa")
	s, _ := newTestStack(Options{})

	s.BeginGroup("replace all")
	s.Execute(d, NewReplace(d, document.Range{
		Start: document.Position{Paragraph: 0, Offset: 0},
		End:   document.Position{Paragraph: 0, Offset: 3},
	}, "zzz"))
	s.Execute(d, NewReplace(d, document.Range{
		Start: document.Position{Paragraph: 0, Offset: 8},
		End:   document.Position{Paragraph: 0, Offset: 11},
	}, "zzz"))
	s.EndGroup()

	if got := d.PlainText(); got != "zzz bbb zzz" {
		t.Fatalf("after group: %q", got)
	}
	if got := s.UndoCount(); got != 1 {
		t.Fatalf("group should be one entry, have %d", got)
	}
	if got := s.UndoDescription(); got != "replace all" {
		t.Errorf("UndoDescription = %q", got)
	}

	s.Undo(d)
	if got := d.PlainText(); got != "aaa bbb aaa" {
		t.Errorf("after undo: %q", got)
	}
}

func TestStackCancelGroup(t *testing.T) {
	d := buildDoc("text")
	s, _ := newTestStack(Options{})

	s.BeginGroup("aborted")
	s.Execute(d, NewInsert(document.Position{Paragraph: 0, Offset: 4}, "!"))
	s.CancelGroup(d)

	if got := d.PlainText(); got != "text" {
		t.Errorf("cancel should revert group commands: %q", got)
	}
	if s.UndoCount() != 0 {
		t.Error("cancelled group should leave no entry")
	}
}

func TestStackMaxEntries(t *testing.T) {
	d := buildDoc("")
	s, _ := newTestStack(Options{MaxEntries: 3})

	// Separators never coalesce, so each execute is its own entry.
	for i := 0; i < 5; i++ {
		s.Execute(d, NewSplit(document.Position{Paragraph: i, Offset: 0}))
	}
	if got := s.UndoCount(); got != 3 {
		t.Errorf("UndoCount = %d, want capped 3", got)
	}
}

func TestCommentCommands(t *testing.T) {
	d := buildDoc("commented text")
	c := document.NewComment(0, 9, "note to self")

	add := NewAddComment(d, 0, c)
	add.Apply(d)
	if d.ParagraphAt(0).CommentCount() != 1 {
		t.Fatal("comment should be added")
	}

	rm := NewRemoveComment(d, 0, c.ID)
	if rm == nil {
		t.Fatal("NewRemoveComment should find the comment")
	}
	rm.Apply(d)
	if d.ParagraphAt(0).CommentCount() != 0 {
		t.Fatal("comment should be removed")
	}
	rm.Revert(d)
	got := d.ParagraphAt(0).CommentByID(c.ID)
	if got == nil || got.Start != 0 || got.End != 9 {
		t.Error("revert should restore the comment with its anchors")
	}

	add.Revert(d)
	if d.ParagraphAt(0).CommentCount() != 0 {
		t.Error("add revert should remove the comment")
	}
}

func TestMarkerCommands(t *testing.T) {
	d := buildDoc("some text")
	m := document.NewMarker(5, document.MarkerTodo, "fix this")

	add := NewAddMarker(d, m)
	add.Apply(d)
	if len(d.Markers()) != 1 {
		t.Fatal("marker should be added")
	}

	tog := NewToggleMarker(d, m.ID)
	tog.Apply(d)
	if !d.MarkerByID(m.ID).Completed {
		t.Error("toggle should complete the todo")
	}
	tog.Revert(d)
	if d.MarkerByID(m.ID).Completed {
		t.Error("revert should un-complete the todo")
	}

	rm := NewRemoveMarker(d, m.ID)
	rm.Apply(d)
	if len(d.Markers()) != 0 {
		t.Fatal("marker should be removed")
	}
	rm.Revert(d)
	if d.MarkerByID(m.ID) == nil {
		t.Error("revert should restore the marker")
	}
}

func TestMarkersShiftThroughCommands(t *testing.T) {
	d := buildDoc("hello world")
	m := document.NewMarker(6, document.MarkerNote, "on world")
	d.AddMarker(m)

	ins := NewInsert(document.Position{Paragraph: 0, Offset: 0}, ">> ")
	ins.Apply(d)
	if got := d.MarkerByID(m.ID).Position; got != 9 {
		t.Errorf("marker after insert = %d, want 9", got)
	}
	ins.Revert(d)
	if got := d.MarkerByID(m.ID).Position; got != 6 {
		t.Errorf("marker after revert = %d, want 6", got)
	}
}
