package ical_test

import (
	"testing"

	"dagcal/src-cli/ical"
)

func TestEscapeText(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"comma", "a,b", `a\,b`},
		{"semicolon", "a;b", `a\;b`},
		{"backslash", `a\b`, `a\\b`},
		{"colon untouched", "a:b", "a:b"},
		{"lf", "a\nb", `a\nb`},
		{"crlf collapses", "a\r\nb", `a\nb`},
		{"bare cr", "a\rb", `a\nb`},
		{"trailing cr", "a\r", `a\n`},
		{"mixed", ",\r\n;:\\ \r\n\rö\r", `\,\n\;:\\ \n\nö\n`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ical.EscapeText(c.input); got != c.want {
				t.Errorf("EscapeText(%q) = %q, want %q", c.input, got, c.want)
			}
		})
	}
}

func TestEscapeTextLeavesCleanTextAlone(t *testing.T) {
	for _, text := range []string{
		"",
		"hello world",
		"åøö 😀 · multi-byte stays put",
		"colons:and:dashes-are-fine",
	} {
		once := ical.EscapeText(text)
		if once != text {
			t.Errorf("EscapeText(%q) = %q, want unchanged", text, once)
		}
		if twice := ical.EscapeText(once); twice != once {
			t.Errorf("EscapeText not idempotent on %q: %q", once, twice)
		}
	}
}
