// Package editor ties the document model and the command engine
// together behind a Session: a cursor, an optional selection, and the
// editing operations the UI invokes. Every durable mutation goes
// through the history stack so undo and redo always work; transient
// input-method composition text is staged outside the stack and only
// becomes a command on commit.
package editor
