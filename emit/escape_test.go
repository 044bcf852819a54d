package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeClassName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "brackets and value",
			input:    "p-[2rem]",
			expected: `p-\[2rem\]`,
		},
		{
			name:     "hash color",
			input:    "bg-[#3b82f6]",
			expected: `bg-\[\#3b82f6\]`,
		},
		{
			name:     "modifier colon",
			input:    "hover:bg-[#3b82f6]",
			expected: `hover\:bg-\[\#3b82f6\]`,
		},
		{
			name:     "commas and parens",
			input:    "box-shadow-[0,4px,rgba(0,0,0,0.1)]",
			expected: `box-shadow-\[0\,4px\,rgba\(0\,0\,0\,0\.1\)\]`,
		},
		{
			name:     "percent",
			input:    "w-[50%]",
			expected: `w-\[50\%\]`,
		},
		{
			name:     "plain identifier untouched",
			input:    "display-flex",
			expected: "display-flex",
		},
		{
			name:     "leading digit hex-escaped",
			input:    "2xl-thing",
			expected: `\32xl-thing`,
		},
		{
			name:     "leading dash digit hex-escaped",
			input:    "-2q",
			expected: `-\32q`,
		},
		{
			name:     "space escaped",
			input:    "a b",
			expected: `a\ b`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeClassName(tt.input))
		})
	}
}

func TestEscapeHexContinuation(t *testing.T) {
	// The escape of a control character grows a trailing space when the
	// next character is a hex digit that would extend the escape.
	got := EscapeClassName("\x01a")
	assert.Equal(t, "\\1 a", got)

	// No trailing space needed before a non-hex character
	got = EscapeClassName("\x01z")
	assert.Equal(t, "\\1z", got)
}
