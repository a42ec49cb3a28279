package text

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// PunctOptions toggles the stages of PunctNormalizer.
type PunctOptions struct {
	// Penn rewrites backticks to apostrophes and doubled apostrophes to '"'.
	Penn bool
	// QuoteCommas moves commas and periods across closing quotes, per language.
	QuoteCommas bool
	// Numbers replaces a no-break space between digits with the language's
	// digit group separator.
	Numbers bool
	// UnicodePunct maps CJK and full-width punctuation to ASCII first.
	UnicodePunct bool
	// RemoveControlChars drops every Unicode control/format character last.
	RemoveControlChars bool
	// NFC composes the input to Unicode normalization form C before anything else.
	NFC bool
}

// DefaultPunctOptions returns the options the Moses normalizer runs with.
func DefaultPunctOptions() PunctOptions {
	return PunctOptions{
		Penn:         true,
		QuoteCommas:  true,
		Numbers:      true,
		UnicodePunct: true,
	}
}

type rewrite struct {
	re   *regexp.Regexp
	repl string
}

func rewrites(pairs ...string) []rewrite {
	out := make([]rewrite, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, rewrite{re: regexp.MustCompile(pairs[i]), repl: pairs[i+1]})
	}
	return out
}

func applyRewrites(s string, rules []rewrite) string {
	for _, r := range rules {
		s = r.re.ReplaceAllString(s, r.repl)
	}
	return s
}

var unicodePunct = strings.NewReplacer(
	"，", ",", "、", ",", "”", `"`, "“", `"`, "∶", ":", "：", ":", "？", "?",
	"《", `"`, "》", `"`, "）", ")", "！", "!", "（", "(", "；", ";", "」", `"`,
	"「", `"`, "０", "0", "１", "1", "２", "2", "３", "3", "４", "4", "５", "5",
	"６", "6", "７", "7", "８", "8", "９", "9", "～", "~", "’", "'", "━", "-",
	"〈", "<", "〉", ">", "【", "[", "】", "]", "％", "%", "…", "...",
)

var (
	fullStops = rewrites(
		`。\s*`, ". ",
		`．\s*`, ". ",
	)

	extraWhitespace = rewrites(
		`\r`, "",
		`\(`, " (",
		`\)`, ") ",
		` +`, " ",
		`\) ([.!:?;,])`, ")${1}",
		`\( `, "(",
		` \)`, ")",
		`(\d) %`, "${1}%",
		` :`, ":",
		` ;`, ";",
	)

	pennQuotes = rewrites(
		"`", "'",
		`''`, ` " `,
	)

	unicodeQuotes = rewrites(
		`„`, `"`,
		`“`, `"`,
		`”`, `"`,
		`–`, "-",
		`—`, " - ",
		` +`, " ",
		`´`, "'",
		`([a-zA-Z])‘([a-zA-Z])`, "${1}'${2}",
		`([a-zA-Z])’([a-zA-Z])`, "${1}'${2}",
		`‘`, "'",
		`‚`, "'",
		`’`, "'",
		`''`, `"`,
		`´´`, `"`,
		`…`, "...",
	)

	frenchQuotes = rewrites(
		`\x{a0}«\x{a0}`, `"`,
		`«\x{a0}`, `"`,
		`«`, `"`,
		`\x{a0}»\x{a0}`, `"`,
		`\x{a0}»`, `"`,
		`»`, `"`,
	)

	pseudoSpaces = rewrites(
		`\x{a0}%`, "%",
		`nº\x{a0}`, "nº ",
		`\x{a0}:`, ":",
		`\x{a0}ºC`, " ºC",
		`\x{a0}cm`, " cm",
		`\x{a0}\?`, "?",
		`\x{a0}!`, "!",
		`\x{a0};`, ";",
		`,\x{a0}`, ", ",
		` +`, " ",
	)

	enQuoteCommas = rewrites(
		`"([,.]+)`, `${1}"`,
	)

	continentalQuoteCommas = rewrites(
		`,"`, `",`,
		`(\.+)"(\s*[^<])`, `"${1}${2}`,
	)

	digitSpace = regexp.MustCompile(`(\d)\x{a0}(\d)`)
)

// PunctNormalizer rewrites punctuation to the canonical forms the tokenizer
// expects: ASCII quotes and dashes, no stray spaces around brackets, and
// language-specific comma/quote order. It is immutable and safe for
// concurrent use.
type PunctNormalizer struct {
	lang string
	opts PunctOptions
}

// NewPunctNormalizer returns a normalizer for the language code lang.
func NewPunctNormalizer(lang string, opts PunctOptions) *PunctNormalizer {
	return &PunctNormalizer{lang: strings.ToLower(strings.TrimSpace(lang)), opts: opts}
}

// Options returns the normalizer's options.
func (n *PunctNormalizer) Options() PunctOptions { return n.opts }

// Normalize applies the enabled stages in order:
//  1. NFC composition.
//  2. CJK and full-width punctuation to ASCII.
//  3. Whitespace around brackets, colons, semicolons and percent signs.
//  4. Penn quote rewriting.
//  5. Unicode quotes, dashes and ellipses; French guillemets; no-break spaces.
//  6. Penn quote rewriting again, for quotes produced by step 5.
//  7. Comma and period placement around closing quotes.
//  8. Digit group separators.
//  9. Control character removal.
//
// The result has no leading or trailing whitespace.
func (n *PunctNormalizer) Normalize(s string) string {
	if n.opts.NFC {
		s = norm.NFC.String(s)
	}
	if n.opts.UnicodePunct {
		s = unicodePunct.Replace(s)
		s = applyRewrites(s, fullStops)
	}

	s = applyRewrites(s, extraWhitespace)
	if n.opts.Penn {
		s = applyRewrites(s, pennQuotes)
	}

	s = applyRewrites(s, unicodeQuotes)
	s = applyRewrites(s, frenchQuotes)
	s = applyRewrites(s, pseudoSpaces)
	if n.opts.Penn {
		s = applyRewrites(s, pennQuotes)
	}

	if n.opts.QuoteCommas {
		switch n.lang {
		case "en":
			s = applyRewrites(s, enQuoteCommas)
		case "de", "es", "fr":
			s = applyRewrites(s, continentalQuoteCommas)
		}
	}

	if n.opts.Numbers {
		s = digitSpace.ReplaceAllString(s, "${1}"+n.digitSeparator()+"${2}")
	}

	if n.opts.RemoveControlChars {
		s = strings.Map(func(r rune) rune {
			if unicode.Is(unicode.C, r) {
				return -1
			}
			return r
		}, s)
	}

	return strings.TrimSpace(s)
}

func (n *PunctNormalizer) digitSeparator() string {
	switch n.lang {
	case "de", "es", "fr", "cz", "cs":
		return ","
	default:
		return "."
	}
}
