package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultModifiers(t *testing.T) {
	mods := DefaultModifiers()

	tests := []struct {
		name      string
		kind      ModifierKind
		selector  string
		condition string
	}{
		{"hover", PseudoClass, ":hover", ""},
		{"first", PseudoClass, ":first-child", ""},
		{"odd", PseudoClass, ":nth-child(odd)", ""},
		{"before", PseudoElement, "::before", ""},
		{"placeholder", PseudoElement, "::placeholder", ""},
		{"md", Responsive, "", "(min-width: 768px)"},
		{"2xl", Responsive, "", "(min-width: 1536px)"},
		{"tablet", Responsive, "", "(min-width: 768px)"},
		{"dark", Media, "", "(prefers-color-scheme: dark)"},
		{"motion-reduce", Media, "", "(prefers-reduced-motion: reduce)"},
		{"print", Media, "", "print"},
		{"screen", Media, "", "screen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod, ok := mods.Lookup(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.kind, mod.Kind)
			assert.Equal(t, tt.selector, mod.Selector)
			assert.Equal(t, tt.condition, mod.Condition)
		})
	}

	_, ok := mods.Lookup("bogus")
	assert.False(t, ok)
}

func TestCustomBreakpoints(t *testing.T) {
	mods := NewModifiers(map[string]int{"md": 800, "nonsense": 99})

	md, ok := mods.Lookup("md")
	require.True(t, ok)
	assert.Equal(t, 800, md.MinWidth)
	assert.Equal(t, "(min-width: 800px)", md.Condition)

	// Aliases track the overridden base breakpoint
	tablet, ok := mods.Lookup("tablet")
	require.True(t, ok)
	assert.Equal(t, 800, tablet.MinWidth)

	// Unknown override keys are not registered
	_, ok = mods.Lookup("nonsense")
	assert.False(t, ok)

	// Defaults remain untouched for other breakpoints
	sm, _ := mods.Lookup("sm")
	assert.Equal(t, 640, sm.MinWidth)
}

func TestIsNamedColor(t *testing.T) {
	assert.True(t, IsNamedColor("rebeccapurple"))
	assert.True(t, IsNamedColor("transparent"))
	assert.True(t, IsNamedColor("currentcolor"))
	assert.True(t, IsNamedColor("inherit"))
	assert.False(t, IsNamedColor("notacolor"))
}

func TestKeywordSet(t *testing.T) {
	display, ok := KeywordSet("display")
	require.True(t, ok)
	assert.True(t, display["flex"])
	assert.False(t, display["flexbox"])

	_, ok = KeywordSet("letter-spacing")
	assert.False(t, ok)
}
