package tokenizer

import (
	"unicode"
	"unicode/utf8"
)

// HyphenMarker replaces a hyphen between two alphanumeric runs.
const HyphenMarker = "@-@"

// token is a run of cells that will become one output token. start is the
// offset of its first cell in the working text.
type token struct {
	cells []cell
	start int
}

// split breaks the protected text into word-level tokens: spaces separate
// tokens, and every unshielded punctuation or symbol rune becomes a token of
// its own. Apostrophes stay inside words for the resolver, and a period
// between alphanumerics stays inside its word ("example.com"). Shielded spans
// are word material, except an ellipsis, which stands alone.
func split(cells []cell, spans []ShieldedSpan, hyphens bool) []token {
	var (
		out   []token
		cur   []cell
		start int
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, token{cells: cur, start: start})
			cur = nil
		}
	}
	alone := func(k int, cs ...cell) {
		flush()
		out = append(out, token{cells: cs, start: k})
	}

	for k, c := range cells {
		switch {
		case c.isSpan():
			if spans[c.span].Kind == ShieldEllipsis {
				alone(k, c)
				continue
			}
		case c.r == ' ':
			flush()
			continue
		case c.r == '-':
			if hyphens && joinsAlnum(cells, spans, k) {
				alone(k, markerCells()...)
				continue
			}
		case c.r == '\'':
		case c.r == '.' && joinsAlnum(cells, spans, k):
		case isSplitPunct(c.r):
			alone(k, c)
			continue
		}

		if len(cur) == 0 {
			start = k
		}
		cur = append(cur, c)
	}
	flush()

	return out
}

func isSplitPunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// joinsAlnum reports whether the rune at k sits directly between two
// alphanumeric characters. A shielded neighbour contributes its edge rune.
func joinsAlnum(cells []cell, spans []ShieldedSpan, k int) bool {
	if k == 0 || k+1 >= len(cells) {
		return false
	}

	left, right := cells[k-1], cells[k+1]
	l, r := left.r, right.r
	if left.isSpan() {
		l, _ = utf8.DecodeLastRuneInString(spans[left.span].Text)
	}
	if right.isSpan() {
		r, _ = utf8.DecodeRuneInString(spans[right.span].Text)
	}
	if unicode.IsMark(l) {
		// A combining mark finishes the letter before it.
		return isAlnum(r)
	}

	return isAlnum(l) && isAlnum(r)
}

func markerCells() []cell {
	cs := make([]cell, 0, len(HyphenMarker))
	for _, r := range HyphenMarker {
		cs = append(cs, runeCell(r))
	}
	return cs
}
