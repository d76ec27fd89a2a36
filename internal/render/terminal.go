package render

import "github.com/gdamore/tcell/v2"

// TerminalSurface adapts a tcell screen to the Surface interface.
type TerminalSurface struct {
	screen tcell.Screen
}

// NewTerminalSurface wraps an initialized tcell screen.
func NewTerminalSurface(screen tcell.Screen) *TerminalSurface {
	return &TerminalSurface{screen: screen}
}

// Size returns the terminal dimensions.
func (t *TerminalSurface) Size() (int, int) { return t.screen.Size() }

// SetCell paints one cell.
func (t *TerminalSurface) SetCell(x, y int, r rune, style Style) {
	t.screen.SetContent(x, y, r, nil, toTcell(style))
}

// Fill paints a rectangle of cells.
func (t *TerminalSurface) Fill(x, y, w, h int, r rune, style Style) {
	ts := toTcell(style)
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			t.screen.SetContent(xx, yy, r, nil, ts)
		}
	}
}

// Flush shows the frame.
func (t *TerminalSurface) Flush() { t.screen.Show() }

func toTcell(s Style) tcell.Style {
	st := tcell.StyleDefault
	if s.FG != ColorDefault {
		st = st.Foreground(tcell.PaletteColor(int(s.FG)))
	}
	if s.BG != ColorDefault {
		st = st.Background(tcell.PaletteColor(int(s.BG)))
	}
	return st.
		Bold(s.Bold).
		Italic(s.Italic).
		Underline(s.Underline).
		StrikeThrough(s.Strikethrough).
		Reverse(s.Reverse).
		Dim(s.Dim)
}
