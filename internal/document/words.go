package document

import (
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// WordBoundsAt returns the rune range [start, end) around the given
// offset within the paragraph at pos.Paragraph, using Unicode word
// segmentation. An offset within or at the end of a word selects that
// word; an offset on whitespace or punctuation selects the whole
// surrounding non-word run.
func (d *Document) WordBoundsAt(pos Position) (int, int) {
	pos = d.Validate(pos)
	p := d.ParagraphAt(pos.Paragraph)
	if p == nil {
		return 0, 0
	}

	type segment struct {
		start, end int
		word       bool
	}
	var segs []segment
	runeStart := 0
	tokens := words.FromString(p.PlainText())
	for tokens.Next() {
		token := tokens.Value()
		runeEnd := runeStart + len([]rune(token))
		segs = append(segs, segment{runeStart, runeEnd, isWordToken(token)})
		runeStart = runeEnd
	}
	if len(segs) == 0 {
		return pos.Offset, pos.Offset
	}

	// At an exact boundary between two segments the earlier word wins,
	// matching double-click selection at a word's end.
	hit := -1
	for i, s := range segs {
		if pos.Offset >= s.start && pos.Offset <= s.end && s.word {
			hit = i
			break
		}
		if pos.Offset < s.end {
			hit = i
			break
		}
	}
	if hit < 0 {
		hit = len(segs) - 1
	}
	if segs[hit].word {
		return segs[hit].start, segs[hit].end
	}

	// No word at the offset: expand over the adjacent non-word
	// segments so the selection covers the whole gap.
	lo, hi := hit, hit
	for lo > 0 && !segs[lo-1].word {
		lo--
	}
	for hi < len(segs)-1 && !segs[hi+1].word {
		hi++
	}
	return segs[lo].start, segs[hi].end
}

// isWordToken reports whether a segmentation token carries word content
// rather than spacing or punctuation.
func isWordToken(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
