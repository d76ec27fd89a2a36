// Package history implements the command engine: every document
// mutation is a Command that knows how to apply and revert itself and
// carries the cursor positions before and after, so undo and redo
// restore both content and cursor exactly.
//
// The Stack holds executed commands with per-entry timestamps. Rapid
// consecutive single-paragraph insertions coalesce into one undo entry
// within a configurable time window; explicit groups collapse compound
// edits (such as replace-all) into a single entry.
//
// Commands are validated at construction and are infallible at apply
// and revert time. Reverting in stack order always restores the exact
// prior document state, including formatting and comment anchors.
package history
