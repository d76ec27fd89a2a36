package history

import (
	"time"

	"github.com/dshills/folio/internal/document"
)

// Default stack limits.
const (
	DefaultMaxEntries     = 1000
	DefaultMergeWindow    = 1000 * time.Millisecond
	DefaultMaxMergeLength = 100
)

// Options configures a Stack. Zero values fall back to the defaults.
type Options struct {
	// MaxEntries caps the undo stack; the oldest entries fall off.
	MaxEntries int

	// MergeWindow is the maximum gap between insertions that still
	// coalesce into one undo entry.
	MergeWindow time.Duration

	// MaxMergeLength caps the text length of a coalesced insertion.
	MaxMergeLength int
}

func (o Options) withDefaults() Options {
	if o.MaxEntries <= 0 {
		o.MaxEntries = DefaultMaxEntries
	}
	if o.MergeWindow <= 0 {
		o.MergeWindow = DefaultMergeWindow
	}
	if o.MaxMergeLength <= 0 {
		o.MaxMergeLength = DefaultMaxMergeLength
	}
	return o
}

type entry struct {
	cmd  Command
	when time.Time
}

// Stack executes commands and records them for undo and redo. It is
// not safe for concurrent use; the editor session serializes access.
type Stack struct {
	opts  Options
	undo  []entry
	redo  []entry
	group *CompositeCommand
	now   func() time.Time
}

// NewStack creates a stack with the given options.
func NewStack(opts Options) *Stack {
	return &Stack{opts: opts.withDefaults(), now: time.Now}
}

// Execute applies cmd to the document and records it. Executing a new
// command clears the redo stack. Inside a group the command joins the
// pending composite instead of becoming its own entry.
func (s *Stack) Execute(doc *document.Document, cmd Command) {
	cmd.Apply(doc)
	s.redo = nil

	if s.group != nil {
		s.group.Add(cmd)
		return
	}
	if s.tryCoalesce(cmd) {
		return
	}
	s.push(cmd)
}

// tryCoalesce merges a plain insertion into the previous undo entry
// when it continues the same typing burst.
func (s *Stack) tryCoalesce(cmd Command) bool {
	next, ok := cmd.(*InsertCommand)
	if !ok || len(s.undo) == 0 {
		return false
	}
	top := &s.undo[len(s.undo)-1]
	prev, ok := top.cmd.(*InsertCommand)
	if !ok {
		return false
	}
	if s.now().Sub(top.when) > s.opts.MergeWindow {
		return false
	}
	if runeLen(prev.Text())+runeLen(next.Text()) > s.opts.MaxMergeLength {
		return false
	}
	if !prev.CanMergeWith(next) {
		return false
	}
	prev.Merge(next)
	top.when = s.now()
	return true
}

func (s *Stack) push(cmd Command) {
	s.undo = append(s.undo, entry{cmd: cmd, when: s.now()})
	if len(s.undo) > s.opts.MaxEntries {
		s.undo = s.undo[len(s.undo)-s.opts.MaxEntries:]
	}
}

// Undo reverts the most recent entry and returns the cursor position to
// restore. The second result is false when there is nothing to undo.
func (s *Stack) Undo(doc *document.Document) (document.Position, bool) {
	if len(s.undo) == 0 || s.group != nil {
		return document.Position{}, false
	}
	e := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	e.cmd.Revert(doc)
	s.redo = append(s.redo, e)
	return doc.Validate(e.cmd.Before()), true
}

// Redo re-applies the most recently undone entry and returns the cursor
// position to restore. The second result is false when there is nothing
// to redo.
func (s *Stack) Redo(doc *document.Document) (document.Position, bool) {
	if len(s.redo) == 0 || s.group != nil {
		return document.Position{}, false
	}
	e := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	e.cmd.Apply(doc)
	s.undo = append(s.undo, e)
	return doc.Validate(e.cmd.After()), true
}

// BeginGroup starts collecting executed commands into one undo entry.
// Nested groups are not supported; a second Begin is ignored.
func (s *Stack) BeginGroup(description string) {
	if s.group != nil {
		return
	}
	s.group = NewComposite(description)
}

// EndGroup closes the pending group. An empty group leaves no entry.
func (s *Stack) EndGroup() {
	g := s.group
	s.group = nil
	if g == nil || g.Len() == 0 {
		return
	}
	s.push(g)
}

// CancelGroup reverts and discards the commands executed since
// BeginGroup.
func (s *Stack) CancelGroup(doc *document.Document) {
	g := s.group
	s.group = nil
	if g == nil {
		return
	}
	g.Revert(doc)
}

// CanUndo reports whether an undo entry is available.
func (s *Stack) CanUndo() bool { return len(s.undo) > 0 && s.group == nil }

// CanRedo reports whether a redo entry is available.
func (s *Stack) CanRedo() bool { return len(s.redo) > 0 && s.group == nil }

// UndoCount returns the number of undo entries.
func (s *Stack) UndoCount() int { return len(s.undo) }

// RedoCount returns the number of redo entries.
func (s *Stack) RedoCount() int { return len(s.redo) }

// UndoDescription returns the label of the next undo entry, or "".
func (s *Stack) UndoDescription() string {
	if len(s.undo) == 0 {
		return ""
	}
	return s.undo[len(s.undo)-1].cmd.Description()
}

// RedoDescription returns the label of the next redo entry, or "".
func (s *Stack) RedoDescription() string {
	if len(s.redo) == 0 {
		return ""
	}
	return s.redo[len(s.redo)-1].cmd.Description()
}

// Clear drops all undo and redo entries.
func (s *Stack) Clear() {
	s.undo = nil
	s.redo = nil
	s.group = nil
}
