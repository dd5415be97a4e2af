package ical

import "strings"

// EscapeText prepares free text for embedding in a single property value.
// Commas, semicolons and backslashes get a backslash prefix; LF, bare CR and
// CRLF all normalize to the two-character `\n` escape. Every trigger
// character is single-byte ASCII, so multi-byte UTF-8 sequences pass through
// untouched.
func EscapeText(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case ',', ';', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			// CRLF is one line ending; the following LF supplies the escape
			if i+1 < len(text) && text[i+1] == '\n' {
				continue
			}
			sb.WriteString(`\n`)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
