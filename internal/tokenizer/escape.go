package tokenizer

import "strings"

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"|", "&#124;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
	"[", "&#91;",
	"]", "&#93;",
)

// Escape replaces the characters that are reserved in Moses and XML-based
// formats with entities. The replacement is a single left-to-right pass, so
// entities produced here are never escaped again within the same call.
func Escape(tok string) string {
	return escaper.Replace(tok)
}
