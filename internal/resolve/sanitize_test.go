package resolve

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"clean path is untouched", "docs/api", "docs/api"},
		{"surrounding whitespace", "  docs/api  ", "docs/api"},
		{"single quotes", "'docs/api'", "docs/api"},
		{"double quotes", `"docs/api"`, "docs/api"},
		{"backticks", "`docs/api`", "docs/api"},
		{"backslashes become slashes", `Documents\Invoices`, "Documents/Invoices"},
		{"leading and trailing slashes", "/docs/api/", "docs/api"},
		{"invalid characters deleted", "docs<1>/api?", "docs1/api"},
		{"prefix phrase stripped", "Path: docs/api", "docs/api"},
		{"longer prefix wins over shorter", "Folder path: docs/api", "docs/api"},
		{"prose prefix stripped", "the path is docs/api", "docs/api"},
		{"quoted prefix needs both peels", `"Path: docs/api"`, "docs/api"},
		{"collapsed inner whitespace", "the   path   is  notes", "notes"},
		{"depth capped at three", "a/b/c/d/e", "a/b/c"},
		{"first line only", "docs/api\nsecond line", "docs/api"},
		{"segment spaces collapse", "My  Documents/Tax   Forms", "My Documents/Tax Forms"},
		{"empty input", "", Sentinel},
		{"whitespace input", "   ", Sentinel},
		{"reject word", "Error", Sentinel},
		{"reject word lowercase", "none", Sentinel},
		{"reject word behind markup", "<unknown>", Sentinel},
		{"null", "null", Sentinel},
		{"undefined", "undefined", Sentinel},
		{"slash soup", "///", Sentinel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.raw))
		})
	}
}

func TestSanitize_LengthLimits(t *testing.T) {
	longSegment := strings.Repeat("a", 51)
	assert.Equal(t, Sentinel, Sanitize(longSegment))
	assert.Equal(t, Sentinel, Sanitize("docs/"+longSegment+"/api"))

	fine := strings.Repeat("a", 50)
	assert.Equal(t, fine+"/"+fine+"/b", Sanitize(fine+"/"+fine+"/b"))
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"docs/api",
		"  'Documents/Invoices'  ",
		`"Path: docs/api"`,
		`"'docs'"`,
		"'a/b/c'/d",
		"the   path   is  notes",
		"<unknown>",
		"Error",
		"",
		`Documents\Invoices\2024\extra`,
		"a/b/c/d/e",
		"suggested path: `Assets/Images`",
		"My  Documents/Tax   Forms",
	}

	for _, raw := range inputs {
		once := Sanitize(raw)
		assert.Equal(t, once, Sanitize(once), "input %q", raw)
	}
}
