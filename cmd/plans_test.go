package cmd

import (
	"testing"
	"unicode/utf8"
)

func TestTruncateTopic(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 30, "short"},
		{"exactly thirty characters long", 30, "exactly thirty characters long"},
		{"a topic that runs well past the column width", 10, "a topic th"},
		{"日本語のトピックをとても長く書いたもの", 10, "日本語のトピックをと"},
		{"", 30, ""},
	}
	for _, c := range cases {
		got := truncateTopic(c.in, c.max)
		if got != c.want {
			t.Errorf("truncateTopic(%q, %d) = %q, want %q", c.in, c.max, got, c.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncateTopic(%q, %d) produced invalid UTF-8", c.in, c.max)
		}
	}
}
