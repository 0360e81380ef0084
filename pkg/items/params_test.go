package items

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1", 1, true},
		{"42", 42, true},
		{"007", 7, true},
		{"12abc", 12, true},
		{"  3", 3, true},
		{"+5", 5, true},
		{"-2", -2, true},
		{"1.9", 1, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
		{" ", 0, false},
		{"99999999999999999999999", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseID(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseID_RoundTripsDecimals(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 1<<40).Draw(t, "n")
		suffix := rapid.StringMatching(`[a-z/]{0,4}`).Draw(t, "suffix")
		got, ok := ParseID(strconv.Itoa(n) + suffix)
		if !ok || got != n {
			t.Fatalf("ParseID(%d%s) = %d, %v", n, suffix, got, ok)
		}
	})
}
