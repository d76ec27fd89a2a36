package document

import "strings"

// Format identifies an inline formatting kind applied by a Container.
type Format uint8

const (
	// FormatBold renders text in a bold weight.
	FormatBold Format = iota

	// FormatItalic renders text in an italic slant.
	FormatItalic

	// FormatUnderline draws a line under the text.
	FormatUnderline

	// FormatStrikethrough draws a line through the text.
	FormatStrikethrough

	// FormatSubscript lowers the text below the baseline.
	FormatSubscript

	// FormatSuperscript raises the text above the baseline.
	FormatSuperscript

	formatCount
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatBold:
		return "bold"
	case FormatItalic:
		return "italic"
	case FormatUnderline:
		return "underline"
	case FormatStrikethrough:
		return "strikethrough"
	case FormatSubscript:
		return "subscript"
	case FormatSuperscript:
		return "superscript"
	default:
		return "unknown"
	}
}

// FormatSet is a bit set of Formats. It describes the effective
// formatting of a run of text after flattening nested containers.
type FormatSet uint8

// NewFormatSet builds a set from the given formats.
func NewFormatSet(formats ...Format) FormatSet {
	var s FormatSet
	for _, f := range formats {
		s = s.With(f)
	}
	return s
}

// Has reports whether f is in the set.
func (s FormatSet) Has(f Format) bool { return s&(1<<f) != 0 }

// With returns the set with f added.
func (s FormatSet) With(f Format) FormatSet { return s | (1 << f) }

// Without returns the set with f removed.
func (s FormatSet) Without(f Format) FormatSet { return s &^ (1 << f) }

// IsEmpty reports whether no formats are set.
func (s FormatSet) IsEmpty() bool { return s == 0 }

// Formats returns the member formats in canonical order.
func (s FormatSet) Formats() []Format {
	var out []Format
	for f := Format(0); f < formatCount; f++ {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// ElementKind discriminates the closed set of element variants.
type ElementKind uint8

const (
	// KindTextRun is a leaf holding text.
	KindTextRun ElementKind = iota

	// KindContainer is a formatting node holding child elements.
	KindContainer
)

// Element is an inline node in a paragraph. The variant set is closed:
// TextRun leaves and Container formatting nodes. Leaf content lives only
// in TextRuns; containers hold no text of their own.
type Element interface {
	// Kind identifies the concrete variant.
	Kind() ElementKind

	// Length returns the element's plain-text length in runes.
	Length() int

	// PlainText returns the concatenated text content without formatting.
	PlainText() string

	// Clone returns a deep copy of the element.
	Clone() Element
}

// TextRun is a leaf element holding a run of text with an optional
// character style identifier.
type TextRun struct {
	Text    string
	StyleID string
}

// NewTextRun creates a text run.
func NewTextRun(text string) *TextRun {
	return &TextRun{Text: text}
}

// Kind returns KindTextRun.
func (r *TextRun) Kind() ElementKind { return KindTextRun }

// Length returns the rune count of the run.
func (r *TextRun) Length() int { return len([]rune(r.Text)) }

// PlainText returns the run's text.
func (r *TextRun) PlainText() string { return r.Text }

// Clone returns a copy of the run.
func (r *TextRun) Clone() Element {
	return &TextRun{Text: r.Text, StyleID: r.StyleID}
}

// Container is a formatting element holding an ordered list of child
// elements. Containers nest, so bold-italic is a FormatItalic container
// inside a FormatBold container (or the reverse).
type Container struct {
	Format   Format
	Children []Element
}

// NewContainer creates a formatting container.
func NewContainer(format Format, children ...Element) *Container {
	return &Container{Format: format, Children: children}
}

// Kind returns KindContainer.
func (c *Container) Kind() ElementKind { return KindContainer }

// Length returns the total rune count of all children.
func (c *Container) Length() int {
	total := 0
	for _, child := range c.Children {
		total += child.Length()
	}
	return total
}

// PlainText returns the concatenated plain text of all children.
func (c *Container) PlainText() string {
	var b strings.Builder
	for _, child := range c.Children {
		b.WriteString(child.PlainText())
	}
	return b.String()
}

// Clone returns a deep copy of the container and its children.
func (c *Container) Clone() Element {
	children := make([]Element, len(c.Children))
	for i, child := range c.Children {
		children[i] = child.Clone()
	}
	return &Container{Format: c.Format, Children: children}
}

// AppendChild adds a child element to the end of the container.
func (c *Container) AppendChild(child Element) {
	c.Children = append(c.Children, child)
}

// FormatSpan describes the effective formatting of a half-open rune
// range [Start, End) of a paragraph's plain text, produced by
// flattening the element tree.
type FormatSpan struct {
	Start   int
	End     int
	Formats FormatSet
	StyleID string
}

// styledRun is the flattened form of paragraph content: a run of text
// with its effective format set. Paragraph editing operates on runs and
// rebuilds a normalized element tree afterwards.
type styledRun struct {
	text    []rune
	formats FormatSet
	styleID string
}

// flattenElements walks the tree depth-first accumulating inherited
// formats. Empty runs are skipped.
func flattenElements(elements []Element, inherited FormatSet, styleID string) []styledRun {
	var runs []styledRun
	for _, el := range elements {
		switch e := el.(type) {
		case *TextRun:
			if e.Text == "" {
				continue
			}
			sid := e.StyleID
			if sid == "" {
				sid = styleID
			}
			runs = append(runs, styledRun{
				text:    []rune(e.Text),
				formats: inherited,
				styleID: sid,
			})
		case *Container:
			runs = append(runs, flattenElements(e.Children, inherited.With(e.Format), styleID)...)
		}
	}
	return runs
}

// buildElements rebuilds a normalized element tree from flattened runs.
// Adjacent runs sharing a format are grouped under one container, chosen
// greedily in canonical format order, so the result nests minimally.
func buildElements(runs []styledRun) []Element {
	runs = mergeAdjacentRuns(runs)
	var out []Element
	i := 0
	for i < len(runs) {
		if runs[i].formats.IsEmpty() {
			out = append(out, &TextRun{Text: string(runs[i].text), StyleID: runs[i].styleID})
			i++
			continue
		}
		f := firstFormat(runs[i].formats)
		j := i
		for j < len(runs) && runs[j].formats.Has(f) {
			j++
		}
		group := make([]styledRun, j-i)
		for k := i; k < j; k++ {
			group[k-i] = styledRun{
				text:    runs[k].text,
				formats: runs[k].formats.Without(f),
				styleID: runs[k].styleID,
			}
		}
		out = append(out, &Container{Format: f, Children: buildElements(group)})
		i = j
	}
	return out
}

// mergeAdjacentRuns joins neighboring runs with identical formatting.
func mergeAdjacentRuns(runs []styledRun) []styledRun {
	var out []styledRun
	for _, r := range runs {
		if len(r.text) == 0 {
			continue
		}
		if n := len(out); n > 0 && out[n-1].formats == r.formats && out[n-1].styleID == r.styleID {
			out[n-1].text = append(out[n-1].text, r.text...)
			continue
		}
		cp := styledRun{text: append([]rune(nil), r.text...), formats: r.formats, styleID: r.styleID}
		out = append(out, cp)
	}
	return out
}

// firstFormat returns the canonical-lowest format in a non-empty set.
func firstFormat(s FormatSet) Format {
	for f := Format(0); f < formatCount; f++ {
		if s.Has(f) {
			return f
		}
	}
	return FormatBold
}
