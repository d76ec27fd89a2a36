// Package render draws laid-out document content onto a Surface. The
// pipeline paints background, wrapped text with inline formatting,
// selection and overlay spans, then the cursor, restricted to the
// viewport. A dirty-region tracker coalesces invalidated rectangles so
// the event loop only repaints when something changed; a cursor blink
// invalidates just the caret cell.
//
// Surface has two implementations: the tcell-backed terminal screen
// and an in-memory grid for tests.
package render
