package common

import "strings"

// SplitTop splits s on sep, ignoring separators nested inside square
// brackets or parentheses. The class DSL allows both `[` and `(` nesting,
// so a depth counter over both pairs is required rather than strings.Split.
func SplitTop(s string, sep rune) []string {
	var parts []string
	var current strings.Builder
	depth := 0

	for _, char := range s {
		switch char {
		case '[', '(':
			depth++
			current.WriteRune(char)
		case ']', ')':
			depth--
			current.WriteRune(char)
		case sep:
			if depth == 0 {
				parts = append(parts, current.String())
				current.Reset()
				continue
			}
			current.WriteRune(char)
		default:
			current.WriteRune(char)
		}
	}
	parts = append(parts, current.String())
	return parts
}

// Balanced reports whether square brackets and parentheses in s are
// balanced and never close below depth zero.
func Balanced(s string) bool {
	brackets, parens := 0, 0
	for _, char := range s {
		switch char {
		case '[':
			brackets++
		case ']':
			brackets--
		case '(':
			parens++
		case ')':
			parens--
		}
		if brackets < 0 || parens < 0 {
			return false
		}
	}
	return brackets == 0 && parens == 0
}

// CollapseWhitespace trims s and folds internal whitespace runs into a
// single space.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripWhitespace removes all whitespace characters from s.
func StripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, char := range s {
		switch char {
		case ' ', '\t', '\n', '\r', '\f', '\v':
		default:
			b.WriteRune(char)
		}
	}
	return b.String()
}
