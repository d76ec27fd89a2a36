package layout

import (
	"github.com/mattn/go-runewidth"

	"github.com/dshills/folio/internal/document"
)

// Rect is an axis-aligned rectangle in layout units.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersects reports whether two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Union returns the smallest rectangle covering both.
func (r Rect) Union(o Rect) Rect {
	if r.W == 0 && r.H == 0 {
		return o
	}
	if o.W == 0 && o.H == 0 {
		return r
	}
	x1, y1 := min(r.X, o.X), min(r.Y, o.Y)
	x2, y2 := max(r.X+r.W, o.X+o.W), max(r.Y+r.H, o.Y+o.H)
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 { return r.W * r.H }

// Metrics measures text for wrapping. Implementations must be cheap;
// the layout engine calls RuneWidth once per rune per relayout.
type Metrics interface {
	// RuneWidth returns the advance width of r under the given formats.
	RuneWidth(r rune, formats document.FormatSet) float64

	// LineHeight returns the height of one line.
	LineHeight() float64

	// ParagraphSpacing returns the vertical gap after a paragraph.
	ParagraphSpacing() float64
}

// CellMetrics measures in terminal cells: wide East Asian runes take
// two columns, everything else one, and formatting never changes the
// advance.
type CellMetrics struct {
	// Spacing is the number of blank rows after each paragraph.
	Spacing float64
}

// RuneWidth returns the rune's terminal column width.
func (CellMetrics) RuneWidth(r rune, _ document.FormatSet) float64 {
	return float64(runewidth.RuneWidth(r))
}

// LineHeight returns one row.
func (CellMetrics) LineHeight() float64 { return 1 }

// ParagraphSpacing returns the configured gap.
func (m CellMetrics) ParagraphSpacing() float64 { return m.Spacing }
