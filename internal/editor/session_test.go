package editor

import (
	"testing"

	"github.com/dshills/folio/internal/document"
	"github.com/dshills/folio/internal/history"
)

func newSession(texts ...string) *Session {
	d := document.New()
	for _, s := range texts {
		d.AppendParagraph(document.NewParagraph(s))
	}
	return NewSession(d, history.Options{})
}

func TestSessionTypeAndUndo(t *testing.T) {
	s := newSession("")
	s.InsertText("hello")
	if got := s.Document().PlainText(); got != "hello" {
		t.Fatalf("after typing: %q", got)
	}
	if got := s.Cursor(); got != (document.Position{Paragraph: 0, Offset: 5}) {
		t.Errorf("cursor = %v", got)
	}

	if !s.Undo() {
		t.Fatal("undo should succeed")
	}
	if got := s.Document().PlainText(); got != "" {
		t.Errorf("after undo: %q", got)
	}
	if got := s.Cursor(); got != (document.Position{}) {
		t.Errorf("cursor after undo = %v", got)
	}

	if !s.Redo() {
		t.Fatal("redo should succeed")
	}
	if got := s.Cursor(); got != (document.Position{Paragraph: 0, Offset: 5}) {
		t.Errorf("cursor after redo = %v", got)
	}
}

func TestSessionUndoFirstInsertEmptiesDocument(t *testing.T) {
	s := newSession()
	s.InsertText("Hello")
	if got := s.Document().PlainText(); got != "Hello" {
		t.Fatalf("after typing: %q", got)
	}

	if !s.Undo() {
		t.Fatal("undo should succeed")
	}
	if got := s.Document().ParagraphCount(); got != 0 {
		t.Errorf("after undo ParagraphCount = %d, want 0", got)
	}
	if got := s.Cursor(); got != (document.Position{}) {
		t.Errorf("cursor after undo = %v", got)
	}

	if !s.Redo() {
		t.Fatal("redo should succeed")
	}
	if got := s.Document().PlainText(); got != "Hello" {
		t.Errorf("after redo: %q", got)
	}
}

func TestSessionInsertReplacesSelection(t *testing.T) {
	s := newSession("hello cruel world")
	s.SetSelection(document.Range{
		Start: document.Position{Paragraph: 0, Offset: 6},
		End:   document.Position{Paragraph: 0, Offset: 11},
	})
	s.InsertText("kind")
	if got := s.Document().PlainText(); got != "hello kind world" {
		t.Fatalf("after replace: %q", got)
	}
	if s.HasSelection() {
		t.Error("selection should be consumed")
	}
	s.Undo()
	if got := s.Document().PlainText(); got != "hello cruel world" {
		t.Errorf("after undo: %q", got)
	}
}

func TestSessionParagraphBreak(t *testing.T) {
	s := newSession("hello world")
	s.SetCursor(document.Position{Paragraph: 0, Offset: 6})
	s.InsertParagraphBreak()
	if got := s.Document().PlainText(); got != "hello \nworld" {
		t.Fatalf("after break: %q", got)
	}
	if got := s.Cursor(); got != (document.Position{Paragraph: 1, Offset: 0}) {
		t.Errorf("cursor = %v, want start of new paragraph", got)
	}
}

func TestSessionDeleteBackward(t *testing.T) {
	s := newSession("ab", "cd")
	s.SetCursor(document.Position{Paragraph: 1, Offset: 1})
	s.DeleteBackward()
	if got := s.Document().PlainText(); got != "ab\nd" {
		t.Fatalf("after rune delete: %q", got)
	}

	// At paragraph start a backward delete merges with the previous
	// paragraph and lands the cursor at the join.
	s.DeleteBackward()
	if got := s.Document().PlainText(); got != "abd" {
		t.Fatalf("after merge: %q", got)
	}
	if got := s.Cursor(); got != (document.Position{Paragraph: 0, Offset: 2}) {
		t.Errorf("cursor = %v, want join offset", got)
	}

	// At the document start nothing happens.
	s.SetCursor(document.Position{})
	s.DeleteBackward()
	if got := s.Document().PlainText(); got != "abd" {
		t.Errorf("delete at document start changed text: %q", got)
	}
}

func TestSessionDeleteForward(t *testing.T) {
	s := newSession("ab", "cd")
	s.SetCursor(document.Position{Paragraph: 0, Offset: 2})
	s.DeleteForward()
	if got := s.Document().PlainText(); got != "abcd" {
		t.Fatalf("forward delete at paragraph end should merge: %q", got)
	}
	if got := s.Cursor(); got != (document.Position{Paragraph: 0, Offset: 2}) {
		t.Errorf("cursor = %v", got)
	}

	s.SetCursor(document.Position{Paragraph: 0, Offset: 4})
	s.DeleteForward()
	if got := s.Document().PlainText(); got != "abcd" {
		t.Errorf("delete at document end changed text: %q", got)
	}
}

func TestSessionDeleteSelectionAcrossParagraphs(t *testing.T) {
	s := newSession("one", "two", "three")
	s.SetSelection(document.Range{
		Start: document.Position{Paragraph: 0, Offset: 2},
		End:   document.Position{Paragraph: 2, Offset: 3},
	})
	s.DeleteSelection()
	if got := s.Document().PlainText(); got != "onee" {
		t.Fatalf("after delete: %q", got)
	}
	s.Undo()
	if got := s.Document().PlainText(); got != "one\ntwo\nthree" {
		t.Errorf("after undo: %q", got)
	}
}

func TestSessionFormatSelection(t *testing.T) {
	s := newSession("make this bold")
	s.SetSelection(document.Range{
		Start: document.Position{Paragraph: 0, Offset: 5},
		End:   document.Position{Paragraph: 0, Offset: 9},
	})
	s.ApplyFormat(document.FormatBold)
	if fs := s.Document().ParagraphAt(0).FormatsAt(6); !fs.Has(document.FormatBold) {
		t.Error("selection should be bold")
	}
	s.Undo()
	if fs := s.Document().ParagraphAt(0).FormatsAt(6); fs.Has(document.FormatBold) {
		t.Error("undo should remove bold")
	}
}

func TestSessionFormatMultiParagraphIsOneEntry(t *testing.T) {
	s := newSession("first", "second", "third")
	s.SetSelection(document.Range{
		Start: document.Position{Paragraph: 0, Offset: 2},
		End:   document.Position{Paragraph: 2, Offset: 3},
	})
	s.ApplyFormat(document.FormatItalic)

	d := s.Document()
	if fs := d.ParagraphAt(0).FormatsAt(3); !fs.Has(document.FormatItalic) {
		t.Error("first paragraph tail should be italic")
	}
	if fs := d.ParagraphAt(1).FormatsAt(0); !fs.Has(document.FormatItalic) {
		t.Error("middle paragraph should be fully italic")
	}
	if fs := d.ParagraphAt(2).FormatsAt(2); !fs.Has(document.FormatItalic) {
		t.Error("last paragraph head should be italic")
	}
	if got := s.History().UndoCount(); got != 1 {
		t.Errorf("multi-paragraph format should be one entry, have %d", got)
	}

	s.Undo()
	for i := 0; i < 3; i++ {
		if fs := d.ParagraphAt(i).FormatsAt(0); !fs.IsEmpty() {
			t.Errorf("paragraph %d should be plain after undo", i)
		}
	}
}

func TestSessionToggleFormat(t *testing.T) {
	s := newSession("toggle me")
	sel := document.Range{
		Start: document.Position{Paragraph: 0, Offset: 0},
		End:   document.Position{Paragraph: 0, Offset: 6},
	}
	s.SetSelection(sel)
	s.ToggleFormat(document.FormatBold)
	if fs := s.Document().ParagraphAt(0).FormatsAt(0); !fs.Has(document.FormatBold) {
		t.Fatal("first toggle should apply bold")
	}
	s.SetSelection(sel)
	s.ToggleFormat(document.FormatBold)
	if fs := s.Document().ParagraphAt(0).FormatsAt(0); fs.Has(document.FormatBold) {
		t.Error("second toggle should remove bold")
	}
}

func TestSessionReplaceAll(t *testing.T) {
	s := newSession("aaa bbb aaa", "bbb aaa bbb")
	n := s.ReplaceAll("aaa", "c")
	if n != 3 {
		t.Fatalf("ReplaceAll = %d, want 3", n)
	}
	if got := s.Document().PlainText(); got != "c bbb c\nbbb c bbb" {
		t.Fatalf("after replace all: %q", got)
	}
	if got := s.History().UndoCount(); got != 1 {
		t.Errorf("replace all should be one entry, have %d", got)
	}
	s.Undo()
	if got := s.Document().PlainText(); got != "aaa bbb aaa\nbbb aaa bbb" {
		t.Errorf("after undo: %q", got)
	}
}

func TestSessionSelectWordAt(t *testing.T) {
	s := newSession("the café-au-lait cup")
	s.SelectWordAt(document.Position{Paragraph: 0, Offset: 5})
	if got := s.SelectedText(); got != "café" {
		t.Errorf("SelectedText = %q, want café", got)
	}

	// Double-clicking the gap between words selects the gap.
	s2 := newSession("foo   bar")
	s2.SelectWordAt(document.Position{Paragraph: 0, Offset: 4})
	if got := s2.SelectedText(); got != "   " {
		t.Errorf("SelectedText = %q, want the whitespace run", got)
	}
}

func TestSessionCommentsAndMarkers(t *testing.T) {
	s := newSession("annotated text here")
	s.SetSelection(document.Range{
		Start: document.Position{Paragraph: 0, Offset: 0},
		End:   document.Position{Paragraph: 0, Offset: 9},
	})
	c, ok := s.AddComment("check spelling")
	if !ok {
		t.Fatal("AddComment should succeed with a selection")
	}
	if s.Document().ParagraphAt(0).CommentByID(c.ID) == nil {
		t.Fatal("comment should be attached")
	}

	s.SetCursor(document.Position{Paragraph: 0, Offset: 10})
	m := s.AddMarker(document.MarkerTodo, "rewrite")
	if len(s.Document().Markers()) != 1 {
		t.Fatal("marker should be added")
	}
	if !s.ToggleMarker(m.ID) {
		t.Fatal("toggle should find the marker")
	}
	if !s.Document().MarkerByID(m.ID).Completed {
		t.Error("marker should be completed")
	}

	s.SetCursor(document.Position{})
	if !s.JumpToNextMarker() {
		t.Fatal("jump should find the marker")
	}
	if got := s.Cursor(); got != (document.Position{Paragraph: 0, Offset: 10}) {
		t.Errorf("cursor = %v, want marker position", got)
	}

	// Undo unwinds toggle, marker, comment in order.
	s.Undo()
	s.Undo()
	s.Undo()
	if len(s.Document().Markers()) != 0 || s.Document().ParagraphAt(0).CommentCount() != 0 {
		t.Error("undo should remove the marker and comment")
	}
}

func TestSessionComposition(t *testing.T) {
	s := newSession("ab")
	s.SetCursor(document.Position{Paragraph: 0, Offset: 1})

	s.UpdateComposition("n")
	s.UpdateComposition("ni")
	s.UpdateComposition("日")
	if got := s.Document().PlainText(); got != "a日b" {
		t.Fatalf("staged text: %q", got)
	}
	if !s.IsComposing() {
		t.Fatal("session should be composing")
	}
	if got := s.History().UndoCount(); got != 0 {
		t.Errorf("staging must not create undo entries, have %d", got)
	}

	s.CommitComposition()
	if got := s.Document().PlainText(); got != "a日b" {
		t.Fatalf("after commit: %q", got)
	}
	if got := s.History().UndoCount(); got != 1 {
		t.Fatalf("commit should create one entry, have %d", got)
	}
	s.Undo()
	if got := s.Document().PlainText(); got != "ab" {
		t.Errorf("after undo: %q", got)
	}
}

func TestSessionCompositionCancel(t *testing.T) {
	s := newSession("ab")
	s.SetCursor(document.Position{Paragraph: 0, Offset: 1})
	s.UpdateComposition("xyz")
	s.CancelComposition()
	if got := s.Document().PlainText(); got != "ab" {
		t.Errorf("cancel should remove staged text: %q", got)
	}
	if s.IsComposing() {
		t.Error("composition should be over")
	}
	if got := s.Cursor(); got != (document.Position{Paragraph: 0, Offset: 1}) {
		t.Errorf("cursor = %v, want composition start", got)
	}
}

func TestSessionCompositionOnEmptyDocument(t *testing.T) {
	s := newSession()
	s.UpdateComposition("ab")
	s.CancelComposition()
	if got := s.Document().ParagraphCount(); got != 0 {
		t.Errorf("after cancel ParagraphCount = %d, want 0", got)
	}

	s.UpdateComposition("日本")
	s.CommitComposition()
	if got := s.Document().PlainText(); got != "日本" {
		t.Fatalf("after commit: %q", got)
	}
	s.Undo()
	if got := s.Document().ParagraphCount(); got != 0 {
		t.Errorf("after undo ParagraphCount = %d, want 0", got)
	}
}
