package layout

// Page is a run of whole paragraphs packed onto one fixed-height page.
type Page struct {
	First  int // first paragraph index on the page
	Last   int // last paragraph index on the page
	Height float64
}

// Paginator assigns paragraphs to pages. Paragraphs never split across
// pages: one that no longer fits starts the next page, and one taller
// than the page gets a page to itself.
type Paginator struct {
	manager    *Manager
	pageHeight float64
}

// NewPaginator creates a paginator over the manager's document.
func NewPaginator(m *Manager, pageHeight float64) *Paginator {
	return &Paginator{manager: m, pageHeight: pageHeight}
}

// PageHeight returns the configured page height.
func (pg *Paginator) PageHeight() float64 { return pg.pageHeight }

// Pages computes the page list for the current document state.
func (pg *Paginator) Pages() []Page {
	n := pg.manager.doc.ParagraphCount()
	if n == 0 {
		return nil
	}
	spacing := pg.manager.metrics.ParagraphSpacing()
	var pages []Page
	cur := Page{First: 0, Last: -1}
	for i := 0; i < n; i++ {
		h := pg.manager.ParagraphHeight(i)
		add := h
		if cur.Last >= cur.First {
			add += spacing
		}
		if cur.Last >= cur.First && cur.Height+add > pg.pageHeight {
			pages = append(pages, cur)
			cur = Page{First: i, Last: -1, Height: 0}
			add = h
		}
		cur.Last = i
		cur.Height += add
	}
	pages = append(pages, cur)
	return pages
}

// PageForParagraph returns the zero-based page number holding the
// paragraph, or 0 if the index is out of range.
func (pg *Paginator) PageForParagraph(index int) int {
	for i, p := range pg.Pages() {
		if index >= p.First && index <= p.Last {
			return i
		}
	}
	return 0
}

// PageCount returns the number of pages.
func (pg *Paginator) PageCount() int { return len(pg.Pages()) }
