package tracker_test

import (
	"testing"

	"github.com/EthanJ-prog/jobTracker/internal/tracker"
)

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "saved"},
		{"   ", "saved"},
		{"applied", "applied"},
		{"  interview ", "interview"},
		{"Saved", "saved"}, // known statuses canonicalize case
		{"APPLIED", "applied"},
		{" Offer ", "offer"},
		{"Phone Screen", "Phone Screen"}, // free-form values pass through
	}
	for _, c := range cases {
		if got := tracker.NormalizeStatus(c.in); got != c.want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsSaved(t *testing.T) {
	for _, s := range []string{"saved", "Saved", " SAVED "} {
		if !tracker.IsSaved(s) {
			t.Errorf("IsSaved(%q) should be true", s)
		}
	}
	for _, s := range []string{"applied", "offer", "", "unsaved"} {
		if tracker.IsSaved(s) {
			t.Errorf("IsSaved(%q) should be false", s)
		}
	}
}
