package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/go-moses-tokenizer/internal/lang"
)

func testScan(t *testing.T, code, s string) *scan {
	t.Helper()

	p, err := lang.Builtin().Lookup(code)
	require.NoError(t, err)
	return &scan{text: []rune(s), profile: p}
}

type matchCase struct {
	text string
	at   int
	want int
}

func runMatchCases(t *testing.T, m matcher, cases []matchCase) {
	t.Helper()

	for _, tc := range cases {
		s := testScan(t, "en", tc.text)
		if got := m.match(s, tc.at); got != tc.want {
			t.Errorf("%s.match(%q, %d) = %d; want %d", m.kind(), tc.text, tc.at, got, tc.want)
		}
	}
}

func TestAcronymMatcher(t *testing.T) {
	runMatchCases(t, acronymMatcher{}, []matchCase{
		{"a.m. Tuesday", 0, 4},
		{"U.S.", 0, 4},
		{"U.S.A", 0, 5},
		{"U.S.A.", 0, 6},
		{"U.S.A. and", 0, 6},
		{"e.g. this", 0, 4},
		{"a.m.b", 0, 5},
		{"3.D. print", 0, 4},
		{"1.2.", 0, 0},
		{"e.g", 0, 0},
		{"x.y", 0, 0},
		{"Ph.D.", 0, 0},
		{"xa.m.", 1, 0},
		{"word", 0, 0},
	})
}

func TestAbbreviationMatcher(t *testing.T) {
	runMatchCases(t, abbreviationMatcher{}, []matchCase{
		{"Mr. Smith", 0, 3},
		{"Dr. who", 0, 3},
		{"see Mr. Smith", 4, 3},
		{"Mr.", 0, 0},
		{"Mr.X", 0, 0},
		{"Mr..", 0, 0},
		{"No. 5", 0, 3},
		{"No.5", 0, 0},
		{"No. x", 0, 0},
		{"Foo. bar", 0, 0},
		{"xMr. Smith", 1, 0},
	})
}

func TestAbbreviationMatcherNumericTables(t *testing.T) {
	s := testScan(t, "de", "am 5. Mai")
	if got := (abbreviationMatcher{}).match(s, 3); got != 2 {
		t.Errorf("match(%q, 3) = %d; want 2", string(s.text), got)
	}
}

func TestNumberMatcher(t *testing.T) {
	runMatchCases(t, numberMatcher{}, []matchCase{
		{"3.14", 0, 4},
		{"1,000.50 dollars", 0, 8},
		{"1.2.3", 0, 5},
		{"v3.1", 1, 3},
		{"42", 0, 0},
		{"3.", 0, 0},
		{"3,", 0, 0},
		{"33.1", 1, 0},
		{"abc", 0, 0},
	})
}

func TestEllipsisMatcher(t *testing.T) {
	runMatchCases(t, ellipsisMatcher{}, []matchCase{
		{"...", 0, 3},
		{".....x", 0, 5},
		{"a... b", 1, 3},
		{"..", 0, 0},
		{".", 0, 0},
	})
}

func TestContinuationMatcher(t *testing.T) {
	runMatchCases(t, continuationMatcher{}, []matchCase{
		{"etc. and", 0, 4},
		{"ok. été", 0, 3},
		{"etc. And", 0, 0},
		{"etc.", 0, 0},
		{"etc. ", 0, 0},
		{"etc. a1", 0, 0},
		{"etc.and", 0, 0},
		{"etc. (and)", 0, 0},
	})
}

func TestProtectOrder(t *testing.T) {
	s := testScan(t, "en", "Mr. U.S. 3.14 ...")
	cells, spans := protect(s, builtinMatchers())

	want := []ShieldKind{ShieldAbbreviation, ShieldAcronym, ShieldNumber, ShieldEllipsis}
	if len(spans) != len(want) {
		t.Fatalf("protect spans = %+v; want %d spans", spans, len(want))
	}
	for i, k := range want {
		if spans[i].Kind != k {
			t.Errorf("span %d kind = %s; want %s", i, spans[i].Kind, k)
		}
	}

	// Four spans separated by three spaces.
	if len(cells) != 7 {
		t.Errorf("protect cells = %d; want 7", len(cells))
	}
}

func TestShieldKindString(t *testing.T) {
	tests := []struct {
		k    ShieldKind
		want string
	}{
		{ShieldPattern, "pattern"},
		{ShieldAcronym, "acronym"},
		{ShieldAbbreviation, "abbreviation"},
		{ShieldNumber, "number"},
		{ShieldEllipsis, "ellipsis"},
		{ShieldContinuation, "continuation"},
		{ShieldKind(42), "ShieldKind(42)"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("ShieldKind(%d).String() = %q; want %q", int(tt.k), got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// split / resolve
// ---------------------------------------------------------------------------

func render(toks []token, spans []ShieldedSpan) []string {
	out := make([]string, 0, len(toks))
	for _, tok := range toks {
		out = append(out, restore(tok, spans))
	}
	return out
}

func TestSplit(t *testing.T) {
	tests := []struct {
		in      string
		hyphens bool
		want    []string
	}{
		{"a, b.", true, []string{"a", ",", "b", "."}},
		{"foo-bar", true, []string{"foo", "@-@", "bar"}},
		{"foo-bar", false, []string{"foo-bar"}},
		{"foo--bar", true, []string{"foo--bar"}},
		{"isn't", true, []string{"isn't"}},
		{"example.com.", true, []string{"example.com", "."}},
		{"(x)", true, []string{"(", "x", ")"}},
		{"© 2024", true, []string{"©", "2024"}},
	}

	for _, tt := range tests {
		s := testScan(t, "en", tt.in)
		cells, spans := protect(s, builtinMatchers())
		got := render(split(cells, spans, tt.hyphens), spans)
		require.Equal(t, tt.want, got, "split(%q, %v)", tt.in, tt.hyphens)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		strategy lang.Strategy
		in       string
		want     []string
	}{
		{lang.StrategyEnglishClitic, "isn't", []string{"isn", "'t"}},
		{lang.StrategyEnglishClitic, "They're", []string{"They", "'re"}},
		{lang.StrategyEnglishClitic, "you'LL", []string{"you", "'LL"}},
		{lang.StrategyEnglishClitic, "O'Neil", []string{"O", "'Neil"}},
		{lang.StrategyEnglishClitic, "o'clock", []string{"o", "'clock"}},
		{lang.StrategyEnglishClitic, "rock'n'roll", []string{"rock", "'n'roll"}},
		{lang.StrategyEnglishClitic, "y'all'd", []string{"y", "'all", "'d"}},
		{lang.StrategyEnglishClitic, "90's", []string{"90", "'s"}},
		{lang.StrategyEnglishClitic, "90'sx", []string{"90", "'", "sx"}},
		{lang.StrategyEnglishClitic, "'tis", []string{"'tis"}},
		{lang.StrategyEnglishClitic, "dogs'", []string{"dogs", "'"}},
		{lang.StrategyRomanceElision, "l'été", []string{"l'", "été"}},
		{lang.StrategyRomanceElision, "qu'il", []string{"qu'", "il"}},
		{lang.StrategyRomanceElision, "l'Sud", []string{"l'Sud"}},
		{lang.StrategyRomanceElision, "aujourd'hui", []string{"aujourd'hui"}},
		{lang.StrategyRomanceElision, "l'", []string{"l", "'"}},
		{lang.StrategyGeneric, "'tis", []string{"'", "tis"}},
		{lang.StrategyGeneric, "don't", []string{"don", "'", "t"}},
		{lang.StrategyGeneric, "plain", []string{"plain"}},
	}

	for _, tt := range tests {
		s := testScan(t, "en", tt.in)
		cells, spans := protect(s, builtinMatchers())
		words := split(cells, spans, true)
		require.Len(t, words, 1, tt.in)

		got := render(resolver{strategy: tt.strategy}.resolve(words[0]), spans)
		require.Equal(t, tt.want, got, "resolve(%s, %q)", tt.strategy, tt.in)
	}
}

func TestStartsWithVowel(t *testing.T) {
	for _, r := range []rune{'a', 'E', 'é', 'À', 'h', 'H', 'œ', 'y'} {
		if !startsWithVowel(r) {
			t.Errorf("startsWithVowel(%q) = false; want true", r)
		}
	}
	for _, r := range []rune{'b', 'S', '1', 'ç'} {
		if startsWithVowel(r) {
			t.Errorf("startsWithVowel(%q) = true; want false", r)
		}
	}
}
