package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple name", "Steel Sheet", "steel-sheet"},
		{"punctuation stripped", "C-Purlins & Angle Bars!!", "c-purlins-angle-bars"},
		{"whitespace runs collapse", "GI   Pipe\t Schedule 40", "gi-pipe-schedule-40"},
		{"hyphen runs collapse", "pre--made---slug", "pre-made-slug"},
		{"leading and trailing trimmed", "  -- Rebar 10mm --  ", "rebar-10mm"},
		{"accents folded", "Béton Armé", "beton-arme"},
		{"already a slug", "c-purlins-angle-bars", "c-purlins-angle-bars"},
		{"only symbols", "!!!&&&", ""},
		{"empty input", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Slugify(tc.input))
		})
	}
}

func TestSlugifyAlphabet(t *testing.T) {
	inputs := []string{
		"Steel Sheet", "C-Purlins & Angle Bars!!", "  éàü  ", "100% Pure GI wire #16",
		"---", "a b c", "Ærø Ørsted", "钢板 Steel Plate",
	}

	for _, in := range inputs {
		slug := Slugify(in)
		for _, r := range slug {
			ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
			assert.True(t, ok, "unexpected rune %q in slug %q for input %q", r, slug, in)
		}
		assert.False(t, strings.HasPrefix(slug, "-"), "slug %q has leading hyphen", slug)
		assert.False(t, strings.HasSuffix(slug, "-"), "slug %q has trailing hyphen", slug)
		assert.NotContains(t, slug, "--", "slug %q has a hyphen run", slug)
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"Steel Sheet", "C-Purlins & Angle Bars!!", "Béton Armé", "", "---", "a  b",
	}

	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "input %q", in)
	}
}
