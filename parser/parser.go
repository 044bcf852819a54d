package parser

import (
	"strings"

	"zyracss/catalog"
	"zyracss/common"
)

// DefaultMaxClassLength bounds a single class token.
const DefaultMaxClassLength = 1000

// ParsedClass is the parse result for one class token.
type ParsedClass struct {
	Original  string
	Modifiers []*catalog.Modifier
	Prefix    string
	Property  *catalog.Property
	RawValue  string
	Values    []string
}

// Parser turns class tokens into ParsedClass values against a catalog.
type Parser struct {
	cat         *catalog.Catalog
	maxClassLen int
}

// New creates a parser. maxClassLen <= 0 selects the default bound.
func New(cat *catalog.Catalog, maxClassLen int) *Parser {
	if maxClassLen <= 0 {
		maxClassLen = DefaultMaxClassLength
	}
	return &Parser{cat: cat, maxClassLen: maxClassLen}
}

// Parse recognizes `modifier(:modifier)*prefix-[value]` and
// `modifier(:modifier)*prefix-value` shapes. Colons and commas inside
// brackets or parentheses never split.
func (p *Parser) Parse(class string) (*ParsedClass, *common.Error) {
	if class == "" {
		return nil, common.NewError(common.CodeInvalidClassSyntax, "empty class token")
	}
	if len(class) > p.maxClassLen {
		return nil, common.NewError(common.CodeInputTooLong,
			"class exceeds %d characters", p.maxClassLen).
			WithContext("class", common.TruncateForContext(class))
	}
	if !common.Balanced(class) {
		return nil, common.NewError(common.CodeInvalidClassSyntax,
			"unbalanced brackets in class").
			WithContext("class", common.TruncateForContext(class))
	}

	segments := common.SplitTop(class, ':')
	utility := segments[len(segments)-1]
	modifierNames := segments[:len(segments)-1]

	mods := make([]*catalog.Modifier, 0, len(modifierNames))
	for _, name := range modifierNames {
		mod, ok := p.cat.Modifiers().Lookup(name)
		if !ok {
			return nil, common.NewError(common.CodeInvalidClassSyntax,
				"unknown modifier %q", name).
				WithContext("class", common.TruncateForContext(class)).
				WithSuggestion("modifiers are colon-separated qualifiers like hover, md, before, dark")
		}
		mods = append(mods, mod)
	}

	prefix, prop, ok := p.cat.LongestPrefix(utility)
	if !ok {
		return nil, common.NewError(common.CodePropertyNotSupported,
			"no property matches %q", utility).
			WithContext("class", common.TruncateForContext(class)).
			WithSuggestion("use a utility prefix like p, m, bg, color followed by -[value]")
	}

	rest := utility[len(prefix)+1:]
	rawValue, err := extractValue(class, rest)
	if err != nil {
		return nil, err
	}

	values, err := splitValues(class, rawValue)
	if err != nil {
		return nil, err
	}

	return &ParsedClass{
		Original:  class,
		Modifiers: mods,
		Prefix:    prefix,
		Property:  prop,
		RawValue:  rawValue,
		Values:    values,
	}, nil
}

// extractValue pulls the value text out of the remainder after `prefix-`.
// Bracket form requires the `[` immediately after the dash and the matching
// `]` at the very end of the token.
func extractValue(class, rest string) (string, *common.Error) {
	if rest == "" {
		return "", common.NewError(common.CodeInvalidClassSyntax,
			"missing value after prefix").
			WithContext("class", common.TruncateForContext(class))
	}
	if rest[0] != '[' {
		// Shorthand form: the remainder is the value
		if strings.ContainsAny(rest, "[]") {
			return "", common.NewError(common.CodeInvalidClassSyntax,
				"brackets must immediately follow the prefix").
				WithContext("class", common.TruncateForContext(class))
		}
		return rest, nil
	}
	if rest[len(rest)-1] != ']' {
		return "", common.NewError(common.CodeInvalidClassSyntax,
			"trailing characters after closing bracket").
			WithContext("class", common.TruncateForContext(class))
	}
	value := rest[1 : len(rest)-1]
	if strings.TrimSpace(value) == "" {
		return "", common.NewError(common.CodeInvalidClassSyntax,
			"empty bracket value").
			WithContext("class", common.TruncateForContext(class))
	}
	return value, nil
}

// splitValues splits the raw value on top-level commas. Empty tokens mean a
// leading, trailing, or doubled delimiter — all invalid.
func splitValues(class, raw string) ([]string, *common.Error) {
	parts := common.SplitTop(raw, ',')
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			return nil, common.NewError(common.CodeInvalidClassSyntax,
				"empty value token").
				WithContext("class", common.TruncateForContext(class))
		}
		values = append(values, trimmed)
	}
	return values, nil
}

// PseudoElement returns the first pseudo-element modifier, if any.
func (pc *ParsedClass) PseudoElement() *catalog.Modifier {
	for _, mod := range pc.Modifiers {
		if mod.Kind == catalog.PseudoElement {
			return mod
		}
	}
	return nil
}

// PseudoClasses returns the pseudo-class modifiers in order.
func (pc *ParsedClass) PseudoClasses() []*catalog.Modifier {
	var out []*catalog.Modifier
	for _, mod := range pc.Modifiers {
		if mod.Kind == catalog.PseudoClass {
			out = append(out, mod)
		}
	}
	return out
}

// MediaConditions returns the responsive and media-feature conditions in
// order of appearance.
func (pc *ParsedClass) MediaConditions() []string {
	var out []string
	for _, mod := range pc.Modifiers {
		if mod.Kind == catalog.Responsive || mod.Kind == catalog.Media {
			out = append(out, mod.Condition)
		}
	}
	return out
}
