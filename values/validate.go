package values

import (
	"regexp"
	"strings"

	"zyracss/catalog"
	"zyracss/common"
)

var (
	lengthPattern = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d+)?|\.\d+)` +
		`(?:px|em|rem|%|vh|vw|vmin|vmax|ch|ex|cm|mm|in|pt|pc|fr|s|ms|deg|rad|turn)?$`)
	hexPattern      = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	numberPattern   = regexp.MustCompile(`^[+-]?\d+(?:\.\d+)?$`)
	unsignedPattern = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
	identPattern    = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
	funcPattern     = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9-]*)\(`)
)

// mathFunctions are accepted wherever a LENGTH is.
var mathFunctions = map[string]bool{
	"calc": true, "min": true, "max": true, "clamp": true,
}

var colorFunctions = map[string]bool{
	"rgb": true, "rgba": true, "hsl": true, "hsla": true, "hwb": true,
	"oklch": true, "oklab": true, "lab": true, "lch": true,
	"color": true, "color-mix": true,
}

// knownFunctions covers the remaining CSS functions accepted for COMPLEX
// values.
var knownFunctions = map[string]bool{
	"var": true, "env": true, "url": true, "attr": true, "counter": true,
	"counters": true, "format": true, "local": true, "rect": true,
	"linear-gradient": true, "radial-gradient": true, "conic-gradient": true,
	"repeating-linear-gradient": true, "repeating-radial-gradient": true,
	"repeating-conic-gradient": true,
	"translate": true, "translatex": true, "translatey": true,
	"translatez": true, "translate3d": true,
	"scale": true, "scalex": true, "scaley": true, "scalez": true,
	"scale3d": true,
	"rotate": true, "rotatex": true, "rotatey": true, "rotatez": true,
	"rotate3d": true,
	"skew": true, "skewx": true, "skewy": true,
	"matrix": true, "matrix3d": true, "perspective": true,
	"blur": true, "brightness": true, "contrast": true, "drop-shadow": true,
	"grayscale": true, "hue-rotate": true, "invert": true, "opacity": true,
	"saturate": true, "sepia": true,
	"repeat": true, "minmax": true, "fit-content": true,
	"cubic-bezier": true, "steps": true,
	"polygon": true, "circle": true, "ellipse": true, "inset": true,
	"path": true,
}

// signedNumberProperties permit a sign on NUMBER values.
var signedNumberProperties = map[string]bool{
	"order":   true,
	"z-index": true,
}

// Validator performs category validation and normalization of parsed
// values.
type Validator struct {
	dataAllowlist []string
}

// NewValidator creates a validator. A nil allowlist selects the default
// data: URL allowlist.
func NewValidator(dataAllowlist []string) *Validator {
	return &Validator{dataAllowlist: dataAllowlist}
}

// Validate checks raw and its top-level tokens against the property's
// category, then returns the normalized declaration value.
func (v *Validator) Validate(prop *catalog.Property, raw string, tokens []string) (string, *common.Error) {
	if err := CheckSecurity(raw, v.dataAllowlist); err != nil {
		return "", err
	}

	if len(tokens) > 1 && !prop.Shorthand && prop.Canonical != "font-family" {
		return "", common.NewError(common.CodeInvalidCSSValue,
			"%s does not accept multiple values", prop.Canonical).
			WithContext("value", common.TruncateForContext(raw))
	}

	for _, token := range tokens {
		if err := v.validateToken(prop, token); err != nil {
			return "", err
		}
	}

	return NormalizeDeclaration(prop, tokens), nil
}

func (v *Validator) validateToken(prop *catalog.Property, token string) *common.Error {
	ok := false
	switch prop.Category {
	case catalog.Length:
		ok = isLength(token)
	case catalog.Color:
		ok = isColor(token)
	case catalog.Number:
		ok = isNumber(token, signedNumberProperties[prop.Canonical])
	case catalog.Keyword:
		ok = isKeyword(prop.Canonical, token)
	case catalog.Complex:
		ok = isComplexToken(token)
	}
	if !ok {
		return common.NewError(common.CodeInvalidCSSValue,
			"%q is not a valid %s value for %s",
			token, prop.Category, prop.Canonical).
			WithContext("token", common.TruncateForContext(token)).
			WithSuggestion(categoryHint(prop.Category))
	}
	return nil
}

func isLength(token string) bool {
	lower := strings.ToLower(token)
	if lower == "auto" || lower == "0" {
		return true
	}
	if lengthPattern.MatchString(lower) {
		return true
	}
	if name, ok := functionName(token); ok {
		return mathFunctions[name]
	}
	return false
}

func isColor(token string) bool {
	if hexPattern.MatchString(token) {
		return true
	}
	lower := strings.ToLower(token)
	if catalog.IsNamedColor(lower) {
		return true
	}
	if name, ok := functionName(token); ok {
		return colorFunctions[name]
	}
	return false
}

func isNumber(token string, signed bool) bool {
	if signed {
		return numberPattern.MatchString(token)
	}
	return unsignedPattern.MatchString(token)
}

func isKeyword(canonical, token string) bool {
	lower := strings.ToLower(token)
	if !identPattern.MatchString(lower) {
		return false
	}
	if keywords, ok := catalog.KeywordSet(canonical); ok {
		return keywords[lower]
	}
	// No curated list: any identifier is accepted
	return true
}

// isComplexToken accepts tokens matching any simpler category, plus the
// recognized CSS function set.
func isComplexToken(token string) bool {
	if isLength(token) || isColor(token) || numberPattern.MatchString(token) {
		return true
	}
	if name, ok := functionName(token); ok {
		return mathFunctions[name] || colorFunctions[name] || knownFunctions[name]
	}
	// Fraction shapes like 16/9 for aspect-ratio
	if num, den, found := strings.Cut(token, "/"); found {
		return unsignedPattern.MatchString(strings.TrimSpace(num)) &&
			unsignedPattern.MatchString(strings.TrimSpace(den))
	}
	return identPattern.MatchString(strings.ToLower(token))
}

// functionName extracts the lowercased function name when token is a
// balanced function call ending in `)`.
func functionName(token string) (string, bool) {
	match := funcPattern.FindStringSubmatch(token)
	if match == nil {
		return "", false
	}
	if !strings.HasSuffix(token, ")") || !common.Balanced(token) {
		return "", false
	}
	return strings.ToLower(match[1]), true
}

func categoryHint(c catalog.Category) string {
	switch c {
	case catalog.Length:
		return "expected a number with an optional CSS unit, auto, or a calc()/min()/max()/clamp() expression"
	case catalog.Color:
		return "expected a hex color, a color function, or a CSS named color"
	case catalog.Number:
		return "expected a unitless number"
	case catalog.Keyword:
		return "expected a CSS keyword identifier"
	default:
		return "expected a CSS value or recognized function"
	}
}
