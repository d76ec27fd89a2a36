package render

import "strings"

// MemorySurface is an in-memory Surface for tests and headless use.
type MemorySurface struct {
	w, h    int
	runes   [][]rune
	styles  [][]Style
	flushes int
}

// NewMemorySurface creates a cleared surface of the given size.
func NewMemorySurface(w, h int) *MemorySurface {
	s := &MemorySurface{w: w, h: h}
	s.clear()
	return s
}

func (s *MemorySurface) clear() {
	s.runes = make([][]rune, s.h)
	s.styles = make([][]Style, s.h)
	for y := 0; y < s.h; y++ {
		s.runes[y] = make([]rune, s.w)
		s.styles[y] = make([]Style, s.w)
		for x := 0; x < s.w; x++ {
			s.runes[y][x] = ' '
			s.styles[y][x] = DefaultStyle
		}
	}
}

// Size returns the grid dimensions.
func (s *MemorySurface) Size() (int, int) { return s.w, s.h }

// SetCell paints one cell, ignoring out-of-range coordinates.
func (s *MemorySurface) SetCell(x, y int, r rune, style Style) {
	if x < 0 || x >= s.w || y < 0 || y >= s.h {
		return
	}
	s.runes[y][x] = r
	s.styles[y][x] = style
}

// Fill paints a rectangle of cells.
func (s *MemorySurface) Fill(x, y, w, h int, r rune, style Style) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			s.SetCell(xx, yy, r, style)
		}
	}
}

// Flush counts frames; the grid is always current.
func (s *MemorySurface) Flush() { s.flushes++ }

// Flushes returns how many frames were flushed.
func (s *MemorySurface) Flushes() int { return s.flushes }

// RuneAt returns the rune at a cell, or space when out of range.
func (s *MemorySurface) RuneAt(x, y int) rune {
	if x < 0 || x >= s.w || y < 0 || y >= s.h {
		return ' '
	}
	return s.runes[y][x]
}

// StyleAt returns the style at a cell.
func (s *MemorySurface) StyleAt(x, y int) Style {
	if x < 0 || x >= s.w || y < 0 || y >= s.h {
		return DefaultStyle
	}
	return s.styles[y][x]
}

// Row returns row y as a string with trailing spaces trimmed.
func (s *MemorySurface) Row(y int) string {
	if y < 0 || y >= s.h {
		return ""
	}
	return strings.TrimRight(string(s.runes[y]), " ")
}
