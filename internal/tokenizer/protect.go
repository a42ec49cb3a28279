package tokenizer

import (
	"fmt"
	"unicode"

	"github.com/example/go-moses-tokenizer/internal/lang"
)

// ShieldKind names the protector category that produced a ShieldedSpan.
type ShieldKind int

const (
	ShieldPattern ShieldKind = iota
	ShieldAcronym
	ShieldAbbreviation
	ShieldNumber
	ShieldEllipsis
	ShieldContinuation
)

func (k ShieldKind) String() string {
	switch k {
	case ShieldPattern:
		return "pattern"
	case ShieldAcronym:
		return "acronym"
	case ShieldAbbreviation:
		return "abbreviation"
	case ShieldNumber:
		return "number"
	case ShieldEllipsis:
		return "ellipsis"
	case ShieldContinuation:
		return "continuation"
	default:
		return fmt.Sprintf("ShieldKind(%d)", int(k))
	}
}

// ShieldedSpan is a substring the protector took out of the reach of the
// punctuation splitter. It is restored verbatim as part of one token.
type ShieldedSpan struct {
	Kind ShieldKind
	Text string
}

// noSpan marks a cell that holds a plain rune.
const noSpan = -1

// cell is one unit of the working text: a rune, or a reference into the
// call's shielded span table. The splitter never looks inside a span.
type cell struct {
	r    rune
	span int
}

func runeCell(r rune) cell { return cell{r: r, span: noSpan} }

func (c cell) isSpan() bool { return c.span != noSpan }

// scan is the cleaned input of one call, read by the matchers.
type scan struct {
	text    []rune
	profile *lang.Profile
}

// wordStart reports whether a word can begin at i. Apostrophes and hyphens
// bind to the previous word, so they do not open a new one.
func (s *scan) wordStart(i int) bool {
	if i == 0 {
		return true
	}
	prev := s.text[i-1]
	return !isWordRune(prev) && prev != '\'' && prev != '-'
}

func (s *scan) wordEnd(i int) int {
	for i < len(s.text) && isWordRune(s.text[i]) {
		i++
	}
	return i
}

// matcher recognises one protected category. match returns the length in
// runes of the span starting at i, or 0.
type matcher interface {
	kind() ShieldKind
	match(s *scan, i int) int
}

// builtinMatchers returns the fixed categories in priority order. Pattern
// matchers, when configured, are placed in front of them.
func builtinMatchers() []matcher {
	return []matcher{
		acronymMatcher{},
		abbreviationMatcher{},
		numberMatcher{},
		ellipsisMatcher{},
		continuationMatcher{},
	}
}

// protect walks the text left to right, trying every matcher at each
// position; the first one that matches wins and the scan resumes after it.
func protect(s *scan, matchers []matcher) ([]cell, []ShieldedSpan) {
	cells := make([]cell, 0, len(s.text))
	var spans []ShieldedSpan

	for i := 0; i < len(s.text); {
		n, kind := firstMatch(s, matchers, i)
		if n > 0 {
			cells = append(cells, cell{span: len(spans)})
			spans = append(spans, ShieldedSpan{Kind: kind, Text: string(s.text[i : i+n])})
			i += n
			continue
		}
		cells = append(cells, runeCell(s.text[i]))
		i++
	}

	return cells, spans
}

func firstMatch(s *scan, matchers []matcher, i int) (int, ShieldKind) {
	for _, m := range matchers {
		if n := m.match(s, i); n > 0 {
			return n, m.kind()
		}
	}
	return 0, 0
}

// acronymMatcher protects runs of two or more "letter." or "digits." units
// with at least one letter, such as "a.m.", "U.S." and "e.g.". A final
// undotted letter is included ("U.S.A").
type acronymMatcher struct{}

func (acronymMatcher) kind() ShieldKind { return ShieldAcronym }

func (acronymMatcher) match(s *scan, i int) int {
	if !s.wordStart(i) {
		return 0
	}

	t := s.text
	j, units, letters := i, 0, 0
	for j < len(t) {
		k := j
		switch {
		case unicode.IsLetter(t[k]):
			k = skipMarks(t, k+1)
			letters++
		case unicode.IsDigit(t[k]):
			k = digitsEnd(t, k)
		}
		if k == j || k >= len(t) || t[k] != '.' {
			if k > j && unicode.IsLetter(t[j]) {
				letters--
			}
			break
		}
		j = k + 1
		units++
	}
	if units < 2 || letters < 1 {
		return 0
	}

	if j < len(t) && unicode.IsLetter(t[j]) {
		k := skipMarks(t, j+1)
		if k == len(t) || (!isWordRune(t[k]) && t[k] != '.') {
			j = k
		}
	}

	return j - i
}

// abbreviationMatcher protects "<prefix>." for the profile's nonbreaking
// prefixes. A period that ends the input is never protected, and a
// numeric-only prefix needs a number after it.
type abbreviationMatcher struct{}

func (abbreviationMatcher) kind() ShieldKind { return ShieldAbbreviation }

func (abbreviationMatcher) match(s *scan, i int) int {
	if !s.wordStart(i) {
		return 0
	}

	t := s.text
	j := s.wordEnd(i)
	if j == i || j+1 >= len(t) || t[j] != '.' {
		return 0
	}
	if next := t[j+1]; isWordRune(next) || next == '.' {
		return 0
	}

	numericOnly, ok := s.profile.IsNonbreakingPrefix(string(t[i:j]))
	if !ok {
		return 0
	}
	if numericOnly {
		k := j + 1
		if t[k] == ' ' {
			k++
		}
		if k >= len(t) || !unicode.IsDigit(t[k]) {
			return 0
		}
	}

	return j + 1 - i
}

// numberMatcher protects digit groups joined by '.' or ',' ("3.14",
// "1,000.50", "1.2.3"). A lone trailing separator is not part of the number.
type numberMatcher struct{}

func (numberMatcher) kind() ShieldKind { return ShieldNumber }

func (numberMatcher) match(s *scan, i int) int {
	t := s.text
	if !unicode.IsDigit(t[i]) || (i > 0 && unicode.IsDigit(t[i-1])) {
		return 0
	}

	j := digitsEnd(t, i)
	groups := 0
	for j+1 < len(t) && (t[j] == '.' || t[j] == ',') && unicode.IsDigit(t[j+1]) {
		j = digitsEnd(t, j+1)
		groups++
	}
	if groups == 0 {
		return 0
	}

	return j - i
}

// ellipsisMatcher protects three or more consecutive periods. Unlike the
// other categories an ellipsis is always a token of its own.
type ellipsisMatcher struct{}

func (ellipsisMatcher) kind() ShieldKind { return ShieldEllipsis }

func (ellipsisMatcher) match(s *scan, i int) int {
	t := s.text
	j := i
	for j < len(t) && t[j] == '.' {
		j++
	}
	if j-i < 3 {
		return 0
	}
	return j - i
}

// continuationMatcher keeps the period of "word. next" when next is an
// all-lowercase word: the sentence has not ended ("etc. and").
type continuationMatcher struct{}

func (continuationMatcher) kind() ShieldKind { return ShieldContinuation }

func (continuationMatcher) match(s *scan, i int) int {
	if !s.wordStart(i) {
		return 0
	}

	t := s.text
	j := s.wordEnd(i)
	if j == i || j+2 >= len(t) || t[j] != '.' || t[j+1] != ' ' {
		return 0
	}

	k := j + 2
	end := k
	for end < len(t) && (unicode.IsLetter(t[end]) || unicode.IsMark(t[end])) {
		if unicode.IsLetter(t[end]) && !unicode.IsLower(t[end]) {
			return 0
		}
		end++
	}
	if end == k || (end < len(t) && unicode.IsNumber(t[end])) {
		return 0
	}

	return j + 1 - i
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}

func digitsEnd(t []rune, i int) int {
	for i < len(t) && unicode.IsDigit(t[i]) {
		i++
	}
	return i
}

func skipMarks(t []rune, i int) int {
	for i < len(t) && unicode.IsMark(t[i]) {
		i++
	}
	return i
}
