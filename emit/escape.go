package emit

import (
	"fmt"
	"strings"
)

// EscapeClassName escapes a class token for use in a CSS selector. The
// escape is table-driven over the runes rather than regex-based: every
// character outside [A-Za-z0-9_-] is escaped, NUL is replaced with U+FFFD,
// other control characters and a leading digit get a hex escape, and a hex
// escape grows a trailing space when the following character would
// otherwise extend it.
func EscapeClassName(name string) string {
	var b strings.Builder
	runes := []rune(name)

	for i, r := range runes {
		var next rune
		if i+1 < len(runes) {
			next = runes[i+1]
		}
		switch {
		case r == 0:
			b.WriteRune('�')
		case r < 0x20 || r == 0x7f:
			writeHexEscape(&b, r, next)
		case i == 0 && isDigit(r):
			writeHexEscape(&b, r, next)
		case i == 1 && runes[0] == '-' && isDigit(r):
			writeHexEscape(&b, r, next)
		case isIdentSafe(r):
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

// writeHexEscape emits a code-point escape. When the next source character
// is a hex digit or a space it would be consumed as part of the escape, so
// a terminating space is appended.
func writeHexEscape(b *strings.Builder, r, next rune) {
	fmt.Fprintf(b, "\\%x", r)
	if isHexDigit(next) || next == ' ' {
		b.WriteByte(' ')
	}
}

func isIdentSafe(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') || r == '_' || r == '-'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') ||
		(r >= 'A' && r <= 'F')
}
