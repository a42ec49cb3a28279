package tokenizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/example/go-moses-tokenizer/internal/lang"
)

// elidable holds the French and Italian words that lose their final vowel
// before a vowel-initial word, written without the apostrophe.
var elidable = map[string]bool{
	// French
	"c": true, "d": true, "j": true, "l": true, "m": true, "n": true, "s": true, "t": true,
	"qu": true, "jusqu": true, "lorsqu": true, "puisqu": true, "quoiqu": true,
	"presqu": true, "quelqu": true,
	// Italian
	"v": true, "un": true, "dell": true, "all": true, "dall": true, "nell": true,
	"sull": true, "coll": true, "quell": true, "bell": true, "sant": true,
	"tutt": true, "quest": true, "com": true, "dov": true, "cos": true, "anch": true,
}

// resolver splits apostrophes inside word tokens according to one strategy.
type resolver struct {
	strategy lang.Strategy
}

// resolve returns the pieces of tok in order. Tokens without an apostrophe
// come back unchanged.
func (res resolver) resolve(tok token) []token {
	cs := tok.cells
	var out []token
	seg := 0
	// An English split takes the letter after its apostrophe with it, so an
	// apostrophe right after that letter stays put ("rock 'n'roll").
	taken := -1
	emit := func(from, to int) {
		if to > from {
			out = append(out, token{cells: cs[from:to], start: tok.start + from})
		}
	}

	for i, c := range cs {
		if c.isSpan() || c.r != '\'' {
			continue
		}

		hasPrev := i > seg
		nextLetter := i+1 < len(cs) && isLetterCell(cs[i+1])

		// An apostrophe opening the whole input attaches to its word ("'So").
		if !hasPrev && i == 0 && tok.start == 0 && nextLetter && res.strategy != lang.StrategyGeneric {
			continue
		}

		prevLetter := hasPrev && isLetterCell(cs[i-1])
		prevDigit := hasPrev && isDigitCell(cs[i-1])

		switch res.strategy {
		case lang.StrategyEnglishClitic:
			if prevLetter && nextLetter {
				if i-1 != taken {
					emit(seg, i)
					seg = i
					taken = i + 1
				}
				continue
			}
			if prevDigit && i+1 < len(cs) && !cs[i+1].isSpan() && (cs[i+1].r == 's' || cs[i+1].r == 'S') &&
				(i+2 == len(cs) || !isLetterCell(cs[i+2])) {
				emit(seg, i)
				seg = i
				continue
			}

		case lang.StrategyRomanceElision:
			if prevLetter && nextLetter {
				stem := strings.ToLower(stemBefore(cs, seg, i))
				if elidable[stem] && startsWithVowel(cs[i+1].r) {
					emit(seg, i+1)
					seg = i + 1
				}
				continue
			}
		}

		emit(seg, i)
		emit(i, i+1)
		seg = i + 1
	}
	emit(seg, len(cs))

	return out
}

func isLetterCell(c cell) bool {
	return !c.isSpan() && (unicode.IsLetter(c.r) || unicode.IsMark(c.r))
}

func isDigitCell(c cell) bool {
	return !c.isSpan() && unicode.IsDigit(c.r)
}

// letterRun returns the letters starting at i.
func letterRun(cs []cell, i int) string {
	var b strings.Builder
	for ; i < len(cs) && isLetterCell(cs[i]); i++ {
		b.WriteRune(cs[i].r)
	}
	return b.String()
}

// stemBefore returns the letters directly before end, not reaching past from.
func stemBefore(cs []cell, from, end int) string {
	i := end
	for i > from && isLetterCell(cs[i-1]) {
		i--
	}
	return letterRun(cs[:end], i)
}

// startsWithVowel reports whether r, stripped of accents, is a vowel or a
// mute h ("d'été", "l'homme").
func startsWithVowel(r rune) bool {
	base := []rune(norm.NFD.String(string(unicode.ToLower(r))))
	if len(base) == 0 {
		return false
	}
	switch base[0] {
	case 'a', 'e', 'i', 'o', 'u', 'y', 'h', 'œ', 'æ':
		return true
	}
	return false
}
