package latex

import "strings"

// textReplacer escapes LaTeX control characters in running text.
// strings.Replacer works in one pass, so inserted backslashes are never
// escaped again.
var textReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`#`, `\#`,
	`%`, `\%`,
	`_`, `\_`,
	`^`, `\textasciicircum{}`,
	`~`, `\textasciitilde{}`,
)

// urlReplacer escapes a URL for the first argument of \href when \href is
// itself nested in another macro argument. Braces, backslashes and tildes
// are percent-encoded; the encoding's own % is escaped.
var urlReplacer = strings.NewReplacer(
	`\`, `\%5C`,
	`{`, `\%7B`,
	`}`, `\%7D`,
	`~`, `\%7E`,
	`%`, `\%`,
	`#`, `\#`,
	`&`, `\&`,
)

// Escape makes s safe to embed as literal text in LaTeX.
func Escape(s string) string {
	return textReplacer.Replace(s)
}

// EscapeURL makes s safe as the target argument of \href.
func EscapeURL(s string) string {
	return urlReplacer.Replace(s)
}
