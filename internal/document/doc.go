// Package document implements the paragraph-oriented document model.
//
// A Document is an ordered sequence of Paragraphs. Each Paragraph holds a
// tree of inline Elements: TextRun leaves and Container nodes that apply
// bold, italic, underline, strikethrough, subscript, or superscript
// formatting and may nest. Paragraphs also own Comments anchored to
// offset ranges; Markers (TODO/Note annotations) are anchored to absolute
// document offsets and owned by the Document.
//
// The package also provides addressing: Position (paragraph index plus
// rune offset), Range, conversion to and from absolute offsets, clamping
// validation, and word boundary detection. Addressing functions are pure
// and never mutate the document.
//
// Documents are mutated only through the command engine (package
// history). Dependent components observe mutations through the Observer
// interface; notification is synchronous so derived caches never see a
// stale document.
package document
