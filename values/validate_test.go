package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zyracss/catalog"
	"zyracss/common"
)

func prop(prefix string) *catalog.Property {
	p, ok := catalog.Default().Lookup(prefix)
	if !ok {
		panic("unknown test prefix " + prefix)
	}
	return p
}

func TestValidateLength(t *testing.T) {
	v := NewValidator(nil)

	valid := []string{"2rem", "10px", "50%", "0", "auto", "1.5em", "100vh",
		"2fr", "300ms", "45deg", "calc(100%-20px)", "min(10px,2rem)",
		"clamp(1rem,2vw,3rem)"}
	for _, token := range valid {
		t.Run(token, func(t *testing.T) {
			out, err := v.Validate(prop("p"), token, []string{token})
			require.Nil(t, err, "value %q should validate", token)
			assert.NotEmpty(t, out)
		})
	}

	invalid := []string{"redish", "10quux", "px", "--", "1px2", "url(x)"}
	for _, token := range invalid {
		t.Run("invalid "+token, func(t *testing.T) {
			_, err := v.Validate(prop("w"), token, []string{token})
			require.NotNil(t, err)
			assert.Equal(t, common.CodeInvalidCSSValue, err.Code)
		})
	}
}

func TestValidateColor(t *testing.T) {
	v := NewValidator(nil)

	valid := []string{"#f00", "#ff0000", "#ff0000cc", "#f00c", "red",
		"rebeccapurple", "transparent", "currentcolor", "inherit",
		"rgb(1,2,3)", "rgba(0,0,0,0.5)", "hsl(120,50%,50%)",
		"oklch(0.7,0.1,230)", "color-mix(in srgb,red,blue)"}
	for _, token := range valid {
		t.Run(token, func(t *testing.T) {
			_, err := v.Validate(prop("color"), token, []string{token})
			assert.Nil(t, err, "color %q should validate", token)
		})
	}

	invalid := []string{"#ff000", "#ggg", "12px", "notacolor", "blue2"}
	for _, token := range invalid {
		t.Run("invalid "+token, func(t *testing.T) {
			_, err := v.Validate(prop("color"), token, []string{token})
			assert.NotNil(t, err, "color %q should be rejected", token)
		})
	}
}

func TestValidateNumber(t *testing.T) {
	v := NewValidator(nil)

	_, err := v.Validate(prop("opacity"), "0.5", []string{"0.5"})
	assert.Nil(t, err)

	// opacity does not permit a sign
	_, err = v.Validate(prop("opacity"), "-1", []string{"-1"})
	assert.NotNil(t, err)

	// z-index and order do
	_, err = v.Validate(prop("z"), "-10", []string{"-10"})
	assert.Nil(t, err)
	_, err = v.Validate(prop("order"), "-1", []string{"-1"})
	assert.Nil(t, err)

	_, err = v.Validate(prop("opacity"), "fast", []string{"fast"})
	assert.NotNil(t, err)
}

func TestValidateKeyword(t *testing.T) {
	v := NewValidator(nil)

	_, err := v.Validate(prop("display"), "flex", []string{"flex"})
	assert.Nil(t, err)

	_, err = v.Validate(prop("display"), "flexbox", []string{"flexbox"})
	require.NotNil(t, err)
	assert.Equal(t, common.CodeInvalidCSSValue, err.Code)

	// Properties without a curated list accept any identifier
	_, err = v.Validate(prop("cursor"), "pointer", []string{"pointer"})
	assert.Nil(t, err)
}

func TestValidateComplex(t *testing.T) {
	v := NewValidator(nil)

	out, err := v.Validate(prop("transform"), "rotate(45deg)", []string{"rotate(45deg)"})
	require.Nil(t, err)
	assert.Equal(t, "rotate(45deg)", out)

	_, err = v.Validate(prop("bg"), "linear-gradient(to,bottom,#fff,#000)",
		[]string{"linear-gradient(to,bottom,#fff,#000)"})
	assert.Nil(t, err)

	// Unbalanced function call is not a recognized token
	_, err = v.Validate(prop("transform"), "rotate(45deg", []string{"rotate(45deg"})
	assert.NotNil(t, err)
}

func TestValidateMultiValue(t *testing.T) {
	v := NewValidator(nil)

	// Shorthand property accepts several tokens
	out, err := v.Validate(prop("m"), "1rem,2rem", []string{"1rem", "2rem"})
	require.Nil(t, err)
	assert.Equal(t, "1rem 2rem", out)

	// Non-shorthand property rejects them
	_, err = v.Validate(prop("w"), "1rem,2rem", []string{"1rem", "2rem"})
	require.NotNil(t, err)
	assert.Equal(t, common.CodeInvalidCSSValue, err.Code)

	// Each token is validated independently
	_, err = v.Validate(prop("m"), "1rem,bogus", []string{"1rem", "bogus"})
	assert.NotNil(t, err)
}

func TestValidateSecurityFirst(t *testing.T) {
	v := NewValidator(nil)

	_, err := v.Validate(prop("bg"), "javascript:alert(1)", []string{"javascript:alert(1)"})
	require.NotNil(t, err)
	assert.Equal(t, common.CodeDangerousInput, err.Code)
}
