package tokenizer

import (
	"errors"
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// ErrInvalidPattern is returned by New when a protected pattern does not compile.
var ErrInvalidPattern = errors.New("invalid protected pattern")

// Web address patterns enabled by WithWebProtection. A trailing sentence
// punctuation mark is left outside the match.
var webPatterns = []string{
	`(?:https?|ftp)://[^\s<>"'()\[\]{}]*[^\s<>"'()\[\]{}.,;:!?]`,
	`www\.[^\s<>"'()\[\]{}]*[^\s<>"'()\[\]{}.,;:!?]`,
	`[\p{L}\p{N}._%+-]+@[\p{L}\p{N}-]+(?:\.[\p{L}\p{N}-]+)*\.\p{L}{2,}(?![\p{L}\p{N}])`,
}

// patternMatcher protects whatever a Perl-syntax regular expression matches
// at a word start.
type patternMatcher struct {
	re *regexp2.Regexp
}

func compilePattern(pattern string, timeout time.Duration) (patternMatcher, error) {
	if pattern == "" {
		return patternMatcher{}, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}

	re, err := regexp2.Compile(`\G(?:`+pattern+`)`, regexp2.None)
	if err != nil {
		return patternMatcher{}, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}

	return patternMatcher{re: re}, nil
}

func (patternMatcher) kind() ShieldKind { return ShieldPattern }

func (m patternMatcher) match(s *scan, i int) int {
	if !s.wordStart(i) {
		return 0
	}

	// Only reachable with WithMatchTimeout: a timed-out attempt is no match.
	mt, err := m.re.FindRunesMatchStartingAt(s.text, i)
	if err != nil || mt == nil || mt.Index != i {
		return 0
	}
	return mt.Length
}
