package taxonomy

import "testing"

func TestNewCoversAllCategories(t *testing.T) {
	tax := New()
	for _, c := range Categories {
		if len(tax.Keywords(c)) == 0 {
			t.Errorf("category %q has no keywords", c)
		}
		if len(tax.patterns[c]) != len(tax.keywords[c]) {
			t.Errorf("category %q has %d patterns for %d keywords",
				c, len(tax.patterns[c]), len(tax.keywords[c]))
		}
	}
}

func TestMatchUnknownCategory(t *testing.T) {
	tax := New()
	if got := tax.Match("nope", "python"); got != nil {
		t.Errorf("Match on unknown category = %v, want nil", got)
	}
}

func TestMatchEmptyText(t *testing.T) {
	tax := New()
	if got := tax.Match(Languages, ""); got != nil {
		t.Errorf("Match on empty text = %v, want nil", got)
	}
}

func TestMatchOverlappingKeywords(t *testing.T) {
	tax := New()
	// "react" is a word-prefix of "react native"; both must be reported
	// when both occur, in declared order.
	got := tax.Match(Frameworks, "react native developer")
	want := []string{"react", "react native"}
	if len(got) != len(want) {
		t.Fatalf("Match = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Match = %v, want %v", got, want)
		}
	}

	// The shorter keyword alone must not drag in the longer one.
	got = tax.Match(Frameworks, "react developer")
	if len(got) != 1 || got[0] != "react" {
		t.Errorf("Match(react only) = %v, want [react]", got)
	}
}

func TestMatchEscapesMetacharacters(t *testing.T) {
	tax := New()
	// "node.js" contains a regex metacharacter; the dot must match
	// literally, not as a wildcard.
	got := tax.Match(Frameworks, "uses node.js daily")
	if len(got) != 1 || got[0] != "node.js" {
		t.Errorf("Match(node.js) = %v", got)
	}
	if got := tax.Match(Frameworks, "nodexjs is not a thing"); got != nil {
		t.Errorf("node.js dot must not match nodexjs, got %v", got)
	}
}
