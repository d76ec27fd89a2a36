package render

import "github.com/dshills/folio/internal/document"

// Color is a palette color index; ColorDefault leaves the terminal
// default in place.
type Color int32

// ColorDefault keeps the surface's default color.
const ColorDefault Color = -1

// Style is the per-cell paint state.
type Style struct {
	FG            Color
	BG            Color
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Reverse       bool
	Dim           bool
}

// DefaultStyle paints with terminal defaults.
var DefaultStyle = Style{FG: ColorDefault, BG: ColorDefault}

// Merge overlays o onto s: o's colors win when set and its attributes
// accumulate.
func (s Style) Merge(o Style) Style {
	if o.FG != ColorDefault {
		s.FG = o.FG
	}
	if o.BG != ColorDefault {
		s.BG = o.BG
	}
	s.Bold = s.Bold || o.Bold
	s.Italic = s.Italic || o.Italic
	s.Underline = s.Underline || o.Underline
	s.Strikethrough = s.Strikethrough || o.Strikethrough
	s.Reverse = s.Reverse || o.Reverse
	s.Dim = s.Dim || o.Dim
	return s
}

// WithFormats returns s with the attributes the format set implies.
// Subscript and superscript have no terminal rendition and draw dim.
func (s Style) WithFormats(fs document.FormatSet) Style {
	if fs.Has(document.FormatBold) {
		s.Bold = true
	}
	if fs.Has(document.FormatItalic) {
		s.Italic = true
	}
	if fs.Has(document.FormatUnderline) {
		s.Underline = true
	}
	if fs.Has(document.FormatStrikethrough) {
		s.Strikethrough = true
	}
	if fs.Has(document.FormatSubscript) || fs.Has(document.FormatSuperscript) {
		s.Dim = true
	}
	return s
}

// Theme names the styles of every visual role.
type Theme struct {
	Text        Style
	Selection   Style
	Composition Style
	Comment     Style
	Todo        Style
	Note        Style
	Annotation  Style
	Search      Style
	Cursor      Style
	Scrollbar   Style
}

// DefaultTheme uses attribute-only styling so it works on any
// terminal.
func DefaultTheme() Theme {
	d := DefaultStyle
	return Theme{
		Text:        d,
		Selection:   Style{FG: ColorDefault, BG: ColorDefault, Reverse: true},
		Composition: Style{FG: ColorDefault, BG: ColorDefault, Underline: true},
		Comment:     Style{FG: ColorDefault, BG: 3},
		Todo:        Style{FG: ColorDefault, BG: 1, Bold: true},
		Note:        Style{FG: ColorDefault, BG: 4},
		Annotation:  Style{FG: ColorDefault, BG: ColorDefault, Underline: true, Dim: true},
		Search:      Style{FG: ColorDefault, BG: 6},
		Cursor:      Style{FG: ColorDefault, BG: ColorDefault, Reverse: true},
		Scrollbar:   Style{FG: ColorDefault, BG: ColorDefault, Reverse: true, Dim: true},
	}
}
