package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zyracss/common"
)

func TestCheckSecurityRejects(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"javascript scheme", "javascript:alert(1)"},
		{"javascript inside url", "url(javascript:alert(1))"},
		{"spaced out scheme", "java script : alert(1)"},
		{"uppercase scheme", "JAVASCRIPT:alert(1)"},
		{"expression call", "expression(document.cookie)"},
		{"import directive", "@import url(evil.css)"},
		{"entity encoded scheme", "jav&#x61;script:alert(1)"},
		{"data url text/html", "url(data:text/html,<script>)"},
		{"vbscript scheme", "vbscript:msgbox(1)"},
		{"control char in url", "url(foo\x01bar)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSecurity(tt.value, nil)
			require.NotNil(t, err)
			assert.Equal(t, common.CodeDangerousInput, err.Code)
			assert.NotEmpty(t, err.Context["pattern"])
		})
	}
}

func TestCheckSecurityAccepts(t *testing.T) {
	tests := []string{
		"2rem",
		"#3b82f6",
		"rgba(0,0,0,0.1)",
		"url(/images/bg.png)",
		"url(data:image/png;base64,iVBORw0KGgo=)",
		"linear-gradient(to right, #fff, #000)",
		"calc(100% - 20px)",
	}

	for _, value := range tests {
		t.Run(value, func(t *testing.T) {
			assert.Nil(t, CheckSecurity(value, nil))
		})
	}
}

func TestCheckSecurityAllowlist(t *testing.T) {
	// Default allowlist permits raster images only
	assert.Nil(t, CheckSecurity("url(data:image/webp;base64,AA==)", nil))
	assert.NotNil(t, CheckSecurity("url(data:image/svg+xml,<svg/>)", nil))

	// A custom allowlist replaces the default
	custom := []string{"data:font/woff2"}
	assert.Nil(t, CheckSecurity("url(data:font/woff2;base64,AA==)", custom))
	assert.NotNil(t, CheckSecurity("url(data:image/png;base64,AA==)", custom))
}
