package naming

import (
	"strings"
	"unicode"
)

// Ext is the file extension recognized for component-template sources.
const Ext = ".card"

// Canonical converts a user-supplied component name into the identifier form
// used for registration and lookup. Namespace separators (":") become word
// boundaries, a trailing source extension is dropped, and the result is
// PascalCased: "welcome:en" -> "WelcomeEn", "button.card" -> "Button".
//
// The transform is total and idempotent: it never fails, an already canonical
// name passes through unchanged, and the only degenerate output is the empty
// string for input with no letters or digits.
func Canonical(raw string) string {
	name := strings.ReplaceAll(raw, ":", "-")
	name = strings.TrimSuffix(name, Ext)
	return Pascal(name)
}

// Pascal converts a string to PascalCase, splitting words on any character
// that is not a letter or digit. Interior casing of each word is preserved,
// which keeps the function idempotent ("WelcomeEn" stays "WelcomeEn" instead
// of collapsing to "Welcomeen").
func Pascal(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	newWord := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			newWord = true
			continue
		}
		if newWord {
			b.WriteRune(unicode.ToUpper(r))
			newWord = false
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
