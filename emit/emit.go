package emit

import (
	"strings"

	"zyracss/catalog"
	"zyracss/parser"
)

// Declaration is one `property: value` pair.
type Declaration struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// Rule is one emitted CSS rule: an escaped selector, its declarations,
// and an optional @media wrapper.
type Rule struct {
	Selector     string        `json:"selector"`
	Declarations []Declaration `json:"declarations"`
	Media        string        `json:"media,omitempty"`
}

// header is prepended to unminified output when comments are enabled.
const header = "/* Generated by ZyraCSS */"

// BuildRule assembles the rule for a validated class: escaped selector
// core, pseudo-element suffixes, pseudo-class suffixes, then the media
// wrapper from any responsive/media modifiers.
func BuildRule(pc *parser.ParsedClass, value string) Rule {
	var sel strings.Builder
	sel.WriteByte('.')
	sel.WriteString(EscapeClassName(pc.Original))

	for _, mod := range pc.Modifiers {
		if mod.Kind == catalog.PseudoElement {
			sel.WriteString(mod.Selector)
		}
	}
	for _, mod := range pc.Modifiers {
		if mod.Kind == catalog.PseudoClass {
			sel.WriteString(mod.Selector)
		}
	}

	rule := Rule{
		Selector:     sel.String(),
		Declarations: []Declaration{{Property: pc.Property.Canonical, Value: value}},
	}
	if conditions := pc.MediaConditions(); len(conditions) > 0 {
		rule.Media = "@media " + strings.Join(conditions, " and ")
	}
	return rule
}

// RenderOptions control the final text form.
type RenderOptions struct {
	Minify          bool
	GroupSelectors  bool
	IncludeComments bool
}

// Render writes rules out as CSS text. With grouping enabled, rules whose
// (media, declarations) tuples match are collapsed into one rule with a
// comma-joined selector list; ordering follows first appearance.
func Render(rules []Rule, opts RenderOptions) string {
	if opts.GroupSelectors {
		rules = groupRules(rules)
	}
	if len(rules) == 0 {
		return ""
	}

	var b strings.Builder
	if !opts.Minify && opts.IncludeComments {
		b.WriteString(header)
		b.WriteString("\n")
	}
	for i, rule := range rules {
		if opts.Minify {
			writeMinified(&b, rule)
		} else {
			if i > 0 || opts.IncludeComments {
				b.WriteString("\n")
			}
			writePretty(&b, rule)
		}
	}
	return b.String()
}

// groupRules collapses rules sharing identical (media, declarations)
// tuples. Selector order within a group and group order both follow first
// appearance.
func groupRules(rules []Rule) []Rule {
	type groupKey struct {
		media string
		decls string
	}
	index := make(map[groupKey]int)
	var grouped []Rule

	for _, rule := range rules {
		key := groupKey{media: rule.Media, decls: declarationKey(rule.Declarations)}
		if at, ok := index[key]; ok {
			grouped[at].Selector += "," + rule.Selector
			continue
		}
		index[key] = len(grouped)
		grouped = append(grouped, rule)
	}
	return grouped
}

func declarationKey(decls []Declaration) string {
	var b strings.Builder
	for _, d := range decls {
		b.WriteString(d.Property)
		b.WriteByte(':')
		b.WriteString(d.Value)
		b.WriteByte(';')
	}
	return b.String()
}

func writePretty(b *strings.Builder, rule Rule) {
	indent := ""
	if rule.Media != "" {
		b.WriteString(rule.Media)
		b.WriteString(" {\n")
		indent = "  "
	}
	b.WriteString(indent)
	b.WriteString(rule.Selector)
	b.WriteString(" {\n")
	for _, decl := range rule.Declarations {
		b.WriteString(indent)
		b.WriteString("  ")
		b.WriteString(decl.Property)
		b.WriteString(": ")
		b.WriteString(decl.Value)
		b.WriteString(";\n")
	}
	b.WriteString(indent)
	b.WriteString("}\n")
	if rule.Media != "" {
		b.WriteString("}\n")
	}
}

func writeMinified(b *strings.Builder, rule Rule) {
	if rule.Media != "" {
		b.WriteString(minifyMedia(rule.Media))
		b.WriteByte('{')
	}
	b.WriteString(rule.Selector)
	b.WriteByte('{')
	for i, decl := range rule.Declarations {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(decl.Property)
		b.WriteByte(':')
		b.WriteString(decl.Value)
	}
	b.WriteByte('}')
	if rule.Media != "" {
		b.WriteByte('}')
	}
}

// minifyMedia drops the space after colons inside the media condition.
func minifyMedia(media string) string {
	return strings.ReplaceAll(media, ": ", ":")
}
