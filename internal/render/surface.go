package render

// Surface is a grid of styled cells the pipeline draws into. Wide
// runes occupy their leading cell; the surface is responsible for the
// trailing column.
type Surface interface {
	// Size returns the grid dimensions in cells.
	Size() (w, h int)

	// SetCell paints one cell.
	SetCell(x, y int, r rune, style Style)

	// Fill paints a rectangle of cells with one rune.
	Fill(x, y, w, h int, r rune, style Style)

	// Flush makes the drawn frame visible.
	Flush()
}
