// Package layout turns paragraphs into positioned lines. Measurement
// goes through the Metrics interface so the same wrapping code serves
// terminal cells and proportional fonts.
//
// The Manager caches per-paragraph layouts with LRU eviction and keeps
// lazily computed cumulative heights, so a large document only pays for
// the paragraphs near the viewport. It observes the document and
// invalidates exactly the entries an edit touches. Pagination packs
// whole paragraphs onto fixed-height pages on top of the same cache.
package layout
