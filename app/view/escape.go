package view

import "strings"

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&#34;",
	"'", "&#39;",
)

// EscapeText maps arbitrary text to markup-safe text by replacing the five
// characters with meaning in markup (& < > " ') with their entities.
// Text containing none of those characters passes through unchanged, so the
// function is idempotent on already-safe input.
func EscapeText(s string) string {
	return escaper.Replace(s)
}
