package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercases", "Senior ENGINEER", "senior engineer"},
		{"keeps tech punctuation", "C++ and C# and Node.js", "c++ and c# and node.js"},
		{"strips other punctuation", "Bachelor's degree, required!", "bachelor s degree required"},
		{"collapses whitespace", "  too \t many\n\nspaces  ", "too many spaces"},
		{"only punctuation", "!!! ??? ---", ""},
		{"unicode replaced", "café — naïve", "caf na ve"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Normalize(c.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Senior Python Developer (Remote) — $120k!",
		"c++ / c# / node.js",
		"   MIXED   Case \t with\nNEWLINES ",
		"already normalized text",
		"5 years' experience, Bachelor's degree",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "Normalize must be idempotent for %q", in)
	}
}
