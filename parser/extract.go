package parser

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"zyracss/common"
)

// Extraction bounds. Inputs past these limits are rejected or truncated
// and the truncation is reported.
const (
	MaxBlobBytes      = 10 * 1024 * 1024
	MaxFilesLimit     = 1000
	DefaultMaxClasses = 10000
)

// ExtractOptions controls the standalone extraction operation.
type ExtractOptions struct {
	// IncludeInvalid reports candidates that match the DSL shape but fail
	// to parse. The generate path leaves this off: non-matching tokens in
	// markup are not errors.
	IncludeInvalid bool
	// MaxClasses caps the extracted list; 0 selects the default.
	MaxClasses int
}

// ExtractResult is the outcome of scanning source blobs.
type ExtractResult struct {
	Classes   []string
	Invalid   []common.Invalid
	Truncated bool
}

// JSX-style attribute forms the HTML tokenizer cannot see:
// className={`...`} and className={"..."}.
var templateClassPatterns = []*regexp.Regexp{
	regexp.MustCompile("className=\\{`([^`]*)`\\}"),
	regexp.MustCompile(`className=\{"([^"]*)"\}`),
	regexp.MustCompile(`className=\{'([^']*)'\}`),
}

// Extract scans raw source blobs for class attributes and returns the
// deduplicated candidate tokens in first-appearance order.
func (p *Parser) Extract(blobs []string, opts ExtractOptions) (ExtractResult, *common.Error) {
	maxClasses := opts.MaxClasses
	if maxClasses <= 0 {
		maxClasses = DefaultMaxClasses
	}

	var total int
	for _, blob := range blobs {
		total += len(blob)
	}
	if total > MaxBlobBytes {
		return ExtractResult{}, common.NewError(common.CodeInputTooLong,
			"input exceeds %d bytes", MaxBlobBytes).
			WithContext("bytes", strconv.Itoa(total))
	}

	result := ExtractResult{}
	if len(blobs) > MaxFilesLimit {
		blobs = blobs[:MaxFilesLimit]
		result.Truncated = true
	}

	seen := make(map[string]bool)
	for _, blob := range blobs {
		for _, token := range scanBlob(blob) {
			if seen[token] {
				continue
			}
			seen[token] = true
			if !p.looksLikeClass(token) {
				continue
			}
			if len(result.Classes) >= maxClasses {
				result.Truncated = true
				return result, nil
			}
			if opts.IncludeInvalid {
				if _, err := p.Parse(token); err != nil {
					result.Invalid = append(result.Invalid, common.NewInvalid(token, err))
					continue
				}
			}
			result.Classes = append(result.Classes, token)
		}
	}
	return result, nil
}

// scanBlob collects whitespace-separated tokens from every class-bearing
// attribute in the blob, in document order.
func scanBlob(blob string) []string {
	var tokens []string

	// Tokenizer pass: class / className attributes on real elements. The
	// tokenizer lowercases attribute keys, so className arrives as
	// "classname".
	tokenizer := html.NewTokenizer(strings.NewReader(blob))
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		for {
			key, val, more := tokenizer.TagAttr()
			k := string(key)
			if k == "class" || k == "classname" {
				v := string(val)
				// JSX expression containers arrive mangled through the
				// HTML tokenizer; the regex pass owns those forms.
				if !strings.HasPrefix(strings.TrimSpace(v), "{") {
					tokens = append(tokens, strings.Fields(v)...)
				}
			}
			if !more {
				break
			}
		}
	}

	// Regex pass: JS template-literal forms that are attribute values only
	// in JSX, not in parsed HTML.
	for _, pattern := range templateClassPatterns {
		for _, match := range pattern.FindAllStringSubmatch(blob, -1) {
			tokens = append(tokens, strings.Fields(match[1])...)
		}
	}
	return tokens
}

// looksLikeClass is the DSL shape gate for markup tokens. Only the bracket
// form is admitted here: markup is full of non-ZyraCSS classes, and plain
// `word-word` tokens would otherwise produce junk shorthand matches.
func (p *Parser) looksLikeClass(token string) bool {
	utility := token
	if idx := lastTopLevelColon(token); idx >= 0 {
		utility = token[idx+1:]
	}
	return strings.Contains(utility, "-[") && strings.HasSuffix(utility, "]")
}

// lastTopLevelColon finds the final `:` outside brackets, or -1.
func lastTopLevelColon(s string) int {
	depth := 0
	last := -1
	for i, char := range s {
		switch char {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case ':':
			if depth == 0 {
				last = i
			}
		}
	}
	return last
}
