// Package kml reads and writes the book markup format: a document
// element holding p elements, whose inline content nests b, i, u, s,
// sub, and sup formatting tags. Comments serialize inside their
// paragraph with offset anchors; todo and note markers serialize at
// document level with absolute positions.
//
// Parsing is strict about structure (unknown elements are errors with
// line positions) but lenient about attribute values, which fall back
// to defaults. Serialization is canonical, so parse and serialize
// round-trip cleanly.
package kml
