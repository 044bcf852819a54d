package values

import (
	"html"
	"strings"

	"zyracss/common"
)

// DefaultDataURLAllowlist holds the data: URL prefixes accepted by the
// security filter. SVG is excluded: it can embed script.
var DefaultDataURLAllowlist = []string{
	"data:image/png",
	"data:image/jpeg",
	"data:image/jpg",
	"data:image/gif",
	"data:image/webp",
}

// substring patterns rejected outright, checked case-insensitively with
// whitespace removed.
var dangerousPatterns = []string{
	"javascript:",
	"expression(",
	"@import",
	"vbscript:",
	"behavior:",
	"-moz-binding",
}

// CheckSecurity rejects raw values containing script-capable constructs.
// The value is folded (lowercased, whitespace stripped) and also checked
// after HTML entity decoding, so `jav&#x61;script:` cannot slip through.
func CheckSecurity(raw string, dataAllowlist []string) *common.Error {
	if dataAllowlist == nil {
		dataAllowlist = DefaultDataURLAllowlist
	}

	folded := fold(raw)
	decoded := fold(html.UnescapeString(raw))

	for _, candidate := range []string{folded, decoded} {
		for _, pattern := range dangerousPatterns {
			if strings.Contains(candidate, pattern) {
				return dangerous(raw, pattern)
			}
		}
		if err := checkDataURL(raw, candidate, dataAllowlist); err != nil {
			return err
		}
	}
	return checkURLArgs(raw)
}

func fold(s string) string {
	return strings.ToLower(common.StripWhitespace(s))
}

func dangerous(raw, pattern string) *common.Error {
	return common.NewError(common.CodeDangerousInput,
		"value contains dangerous pattern %q", pattern).
		WithContext("value", common.TruncateForContext(raw)).
		WithContext("pattern", pattern).
		WithSuggestion("remove script-capable constructs from the value")
}

// checkDataURL permits data: URLs only when they start with an allowlisted
// media type.
func checkDataURL(raw, folded string, allowlist []string) *common.Error {
	idx := strings.Index(folded, "data:")
	if idx < 0 {
		return nil
	}
	for _, allowed := range allowlist {
		if strings.HasPrefix(folded[idx:], strings.ToLower(allowed)) {
			return nil
		}
	}
	return dangerous(raw, "data:")
}

// checkURLArgs scans url(...) arguments for unescaped control characters.
// The javascript: scheme inside url() is already caught by the global
// pattern scan.
func checkURLArgs(raw string) *common.Error {
	lower := strings.ToLower(raw)
	offset := 0
	for {
		idx := strings.Index(lower[offset:], "url(")
		if idx < 0 {
			return nil
		}
		start := offset + idx + len("url(")
		depth := 1
		for i := start; i < len(raw); i++ {
			switch raw[i] {
			case '(':
				depth++
			case ')':
				depth--
			}
			if depth == 0 {
				offset = i + 1
				break
			}
			if raw[i] < 0x20 && raw[i] != '\t' {
				return dangerous(raw, "control character in url()")
			}
			if i == len(raw)-1 {
				// Unterminated url(); parser-level balance checks catch
				// this, but never let it pass here either.
				return dangerous(raw, "unterminated url()")
			}
		}
		if offset <= start {
			return nil
		}
	}
}
