package values

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zyracss/catalog"
)

func TestNormalizeHex(t *testing.T) {
	tests := map[string]string{
		"#F00":       "#ff0000",
		"#f00":       "#ff0000",
		"#F00C":      "#ff0000cc",
		"#FF0000":    "#ff0000",
		"#FF0000CC":  "#ff0000cc",
		"#3b82f6":    "#3b82f6",
	}
	for input, expected := range tests {
		assert.Equal(t, expected, NormalizeToken(input), "input %q", input)
	}
}

func TestNormalizeNumeric(t *testing.T) {
	tests := map[string]string{
		"0px":    "0",
		"0rem":   "0",
		"0%":     "0",
		"0":      "0",
		"0s":     "0s",
		"0deg":   "0deg",
		"1.50rem": "1.5rem",
		"2.0rem": "2rem",
		"1.500":  "1.5",
		".5em":   "0.5em",
		"+2px":   "2px",
		"-4px":   "-4px",
		"10PX":   "10px",
	}
	for input, expected := range tests {
		assert.Equal(t, expected, NormalizeToken(input), "input %q", input)
	}
}

func TestNormalizeCalc(t *testing.T) {
	tests := map[string]string{
		"calc(100%-20px)":        "calc(100% - 20px)",
		"calc(100% - 20px)":      "calc(100% - 20px)",
		"calc(1rem+2px)":         "calc(1rem + 2px)",
		"calc(100%/3)":           "calc(100% / 3)",
		"calc(2*1rem)":           "calc(2 * 1rem)",
		"calc(-5px+10px)":        "calc(-5px + 10px)",
		"calc(var(--x)+2px)":     "calc(var(--x) + 2px)",
		"min(10px,2rem)":         "min(10px, 2rem)",
		"clamp(1rem,2vw+1px,3rem)": "clamp(1rem, 2vw + 1px, 3rem)",
	}
	for input, expected := range tests {
		assert.Equal(t, expected, NormalizeToken(input), "input %q", input)
	}
}

func TestNormalizeFunctions(t *testing.T) {
	tests := map[string]string{
		"rgba(0,0,0,0.1)":      "rgba(0, 0, 0, 0.1)",
		"rgb(255,0,0)":         "rgb(255, 0, 0)",
		"translate(10px,20px)": "translate(10px, 20px)",
		"var(--brand-color)":   "var(--brand-color)",
		"url(/bg.png)":         "url(/bg.png)",
		"repeat(2,1fr)":        "repeat(2, 1fr)",
	}
	for input, expected := range tests {
		assert.Equal(t, expected, NormalizeToken(input), "input %q", input)
	}
}

func TestNormalizeDropShadow(t *testing.T) {
	got := NormalizeToken("drop-shadow(0,4px,6px,rgba(0,0,0,0.1))")
	assert.Equal(t, "drop-shadow(0 4px 6px rgba(0, 0, 0, 0.1))", got)
}

func TestNormalizeGradients(t *testing.T) {
	tests := map[string]string{
		"linear-gradient(to,bottom,right,#fff,50%,#000)": "linear-gradient(to bottom right, #ffffff 50%, #000000)",
		"linear-gradient(to,right,#f00,#00f)":            "linear-gradient(to right, #ff0000, #0000ff)",
		"radial-gradient(circle,at,center,#fff,#000)":    "radial-gradient(circle at center, #ffffff, #000000)",
		"conic-gradient(from,45deg,red,blue)":            "conic-gradient(from 45deg, red, blue)",
		"linear-gradient(45deg,rgba(0,0,0,0.5),20%,#fff)": "linear-gradient(45deg, rgba(0, 0, 0, 0.5) 20%, #ffffff)",
	}
	for input, expected := range tests {
		assert.Equal(t, expected, NormalizeToken(input), "input %q", input)
	}
}

func TestNormalizeDeclarationJoin(t *testing.T) {
	margin, _ := catalog.Default().Lookup("m")
	assert.Equal(t, "1rem 2rem", NormalizeDeclaration(margin, []string{"1rem", "2rem"}))

	shadow, _ := catalog.Default().Lookup("box-shadow")
	assert.Equal(t, "0 4px 6px rgba(0, 0, 0, 0.1)",
		NormalizeDeclaration(shadow, []string{"0", "4px", "6px", "rgba(0,0,0,0.1)"}))

	width, _ := catalog.Default().Lookup("w")
	assert.Equal(t, "50%", NormalizeDeclaration(width, []string{"50%"}))
}

func TestNormalizeIdentifiers(t *testing.T) {
	assert.Equal(t, "solid", NormalizeToken("SOLID"))
	assert.Equal(t, "red", NormalizeToken("Red"))
}
