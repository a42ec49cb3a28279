package text

import (
	"errors"
	"strings"
	"unicode"
)

// ErrEmptyText is returned when the input text is empty or whitespace-only.
var ErrEmptyText = errors.New("text is empty")

// Clean prepares raw input text for tokenization:
//  1. Collapse every whitespace run (including newlines) to one space.
//  2. Drop ASCII control characters U+0000–U+001F.
//  3. Trim the leading and trailing space.
//
// Invalid UTF-8 bytes are replaced with U+FFFD so the result is always valid.
func Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingSpace := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = b.Len() > 0
		case r < 0x20:
		default:
			if pendingSpace {
				b.WriteByte(' ')
				pendingSpace = false
			}
			b.WriteRune(r)
		}
	}

	return b.String()
}

// Normalize is the strict form of Clean: it rejects input that is empty once
// cleaned.
func Normalize(s string) (string, error) {
	s = Clean(s)
	if s == "" {
		return "", ErrEmptyText
	}

	return s, nil
}
