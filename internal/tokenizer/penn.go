package tokenizer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/example/go-moses-tokenizer/internal/lang"
	"github.com/example/go-moses-tokenizer/internal/text"
)

type rule struct {
	re   *regexp.Regexp
	repl string
}

func rules(pairs ...string) []rule {
	out := make([]rule, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, rule{re: regexp.MustCompile(pairs[i]), repl: pairs[i+1]})
	}
	return out
}

func applyRules(s string, rs []rule) string {
	for _, r := range rs {
		s = r.re.ReplaceAllString(s, r.repl)
	}
	return s
}

const ellipsisPlaceholder = " _ELLIPSIS_ "

var (
	// Opening quotes, ellipses, commas, symbols, slashes, the final period
	// and brackets.
	pennPunct = rules(
		"^``", "`` ",
		`^"`, "`` ",
		"^`([^`])", "` ${1}",
		`^'`, "` ",
		`([ (\[{<])"`, "${1} `` ",
		"([ (\\[{<])``", "${1} `` ",
		"([ (\\[{<])`([^`])", "${1} ` ${2}",
		`([ (\[{<])'`, "${1} ` ",
		`\.\.\.`, ellipsisPlaceholder,
		`([^\p{N}]),`, "${1} , ",
		`,([^\p{N}])`, " , ${1}",
		`([\p{N}]),$`, "${1} ,",
		`([;:@#$%&\p{Sc}\p{So}])`, " ${1} ",
		`([\p{L}\p{N}])/([\p{L}\p{N}])`, "${1} @/@ ${2}",
		`([\p{L}\p{N}])/([\p{L}\p{N}])`, "${1} @/@ ${2}",
		`([^.])([.])([\]\)}>"']*) ?$`, "${1} ${2}${3}",
		`([?!])`, " ${1} ",
		`([\]\[(){}<>])`, " ${1} ",
	)

	// Bracket names, closing quotes, contractions and the fused forms.
	pennWords = rules(
		`\(`, "-LRB-",
		`\)`, "-RRB-",
		`\[`, "-LSB-",
		`\]`, "-RSB-",
		`\{`, "-LCB-",
		`\}`, "-RCB-",
		`--`, " -- ",
		`^`, " ",
		`$`, " ",
		`"`, " '' ",
		`([^'])' `, "${1} ' ",
		`'([sSmMdD]) `, " '${1} ",
		`'ll `, " 'll ",
		`'re `, " 're ",
		`'ve `, " 've ",
		`n't `, " n't ",
		`'LL `, " 'LL ",
		`'RE `, " 'RE ",
		`'VE `, " 'VE ",
		`N'T `, " N'T ",
		` ([Cc])annot `, " ${1}an not ",
		` ([Dd])'ye `, " ${1}' ye ",
		` ([Gg])imme `, " ${1}im me ",
		` ([Gg])onna `, " ${1}on na ",
		` ([Gg])otta `, " ${1}ot ta ",
		` ([Ll])emme `, " ${1}em me ",
		` ([Mm])ore'n `, " ${1}ore 'n ",
		` '([Tt])is `, " '${1} is ",
		` '([Tt])was `, " '${1} was ",
		` ([Ww])anna `, " ${1}an na ",
	)

	pennEscaper = strings.NewReplacer(
		"&", "&amp;",
		"|", "&#124;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
)

// PennTokenize tokenizes text in the Penn Treebank convention for language
// code: `` and '' quotes, -LRB- style bracket names, "n't" and "'s"
// contractions, and fused forms such as "cannot" and "gonna" split in two.
// Output is always escaped.
func (t *Tokenizer) PennTokenize(s, code string) ([]string, error) {
	p, err := t.Profile(code)
	if err != nil {
		return nil, err
	}
	return PennTokenizeProfile(s, p), nil
}

// PennTokenizeProfile is PennTokenize with an explicit profile.
func PennTokenizeProfile(s string, p *lang.Profile) []string {
	s = text.Clean(s)
	if s == "" {
		return []string{}
	}

	s = applyRules(s, pennPunct)
	s = applyRules(s, pennWords)
	s = keepNonbreakingPeriods(strings.Fields(s), p)
	s = strings.ReplaceAll(s, strings.TrimSpace(ellipsisPlaceholder), "...")

	toks := strings.Fields(s)
	for i, tok := range toks {
		toks[i] = pennEscaper.Replace(tok)
	}
	if toks == nil {
		toks = []string{}
	}
	return toks
}

// keepNonbreakingPeriods splits the period off every "word." token except
// where the word is an abbreviation, a dotted acronym, or is followed by a
// lowercase word. Numeric-only prefixes keep their period before a number.
func keepNonbreakingPeriods(words []string, p *lang.Profile) string {
	var b strings.Builder
	for i, w := range words {
		if i > 0 {
			b.WriteByte(' ')
		}

		prefix, ok := strings.CutSuffix(w, ".")
		if !ok || prefix == "" {
			b.WriteString(w)
			continue
		}

		last := i == len(words)-1
		numericOnly, known := p.IsNonbreakingPrefix(prefix)
		switch {
		case strings.Contains(prefix, ".") && strings.IndexFunc(prefix, unicode.IsLetter) >= 0,
			known && !numericOnly,
			!last && isLowerWord(words[i+1]):
			b.WriteString(w)
		case known && numericOnly && !last && startsWithDigit(words[i+1]):
			b.WriteString(w)
		default:
			b.WriteString(prefix)
			b.WriteString(" .")
		}
	}
	return b.String()
}

func isLowerWord(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

func startsWithDigit(w string) bool {
	for _, r := range w {
		return unicode.IsDigit(r)
	}
	return false
}
