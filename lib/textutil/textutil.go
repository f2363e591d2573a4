package textutil

import (
	"strings"
	"unicode"
)

// NormalizeName produces a comparison key: lowercase with all whitespace removed.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "")
}

// CollapseWhitespace trims the string and replaces every run of unicode
// whitespace (including non-breaking spaces) with a single space.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// KeepAlnum drops every rune that is not an ASCII letter or digit.
func KeepAlnum(s string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
