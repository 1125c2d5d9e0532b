package api

import (
	"testing"
	"time"
)

func TestPostedSinceBuckets(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		bucket string
		want   time.Time
		ok     bool
	}{
		{"day", now.Add(-24 * time.Hour), true},
		{"3days", now.Add(-72 * time.Hour), true},
		{"week", now.Add(-7 * 24 * time.Hour), true},
		{"month", now.Add(-30 * 24 * time.Hour), true},
		{"year", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tc := range tests {
		got, ok := postedSince(tc.bucket, now)
		if ok != tc.ok {
			t.Errorf("postedSince(%q) ok = %v, want %v", tc.bucket, ok, tc.ok)
			continue
		}
		if ok && !got.Equal(tc.want) {
			t.Errorf("postedSince(%q) = %v, want %v", tc.bucket, got, tc.want)
		}
	}
}

func TestIntParam(t *testing.T) {
	tests := []struct {
		raw  string
		def  int
		want int
	}{
		{"", 10, 10},
		{"5", 10, 5},
		{"0", 10, 0},
		{"-3", 10, 10},
		{"abc", 10, 10},
	}

	for _, tc := range tests {
		if got := intParam(tc.raw, tc.def); got != tc.want {
			t.Errorf("intParam(%q, %d) = %d, want %d", tc.raw, tc.def, got, tc.want)
		}
	}
}
