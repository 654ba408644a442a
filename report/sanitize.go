package report

import "strings"

// replacements maps Unicode punctuation that LLMs like to emit onto
// ASCII equivalents the Latin-1 page content can carry.
var replacements = map[rune]string{
	'‘': "'",   // left single quote
	'’': "'",   // right single quote
	'“': `"`,   // left double quote
	'”': `"`,   // right double quote
	'–': "-",   // en dash
	'—': "-",   // em dash
	'…': "...", // ellipsis
	'\u00a0': " ", // no-break space

	// the shield emoji shows up in model output because the scout
	// prompt mentions cyber defense; strip it and its variation selector
	'\U0001f6e1': "",
	'\ufe0f':     "",
}

// Sanitize normalizes text for the Latin-1 encoded PDF output.
// Known smart punctuation is replaced with ASCII equivalents and any
// remaining rune outside the Latin-1 range is dropped. It never fails;
// empty input yields an empty string.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if repl, ok := replacements[r]; ok {
			b.WriteString(repl)
			continue
		}
		if r > 0xFF {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
