package sanitize

import (
	"strings"
	"testing"
)

func TestText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"trims whitespace", "  hello  ", 100, "hello"},
		{"strips angle brackets", "<b>bold</b>", 100, "bbold/b"},
		{"strips control characters", "line\x00one\x1btwo", 100, "lineonetwo"},
		{"keeps newline-free interior spacing", "a  b", 100, "a  b"},
		{"truncates to max runes", "abcdef", 3, "abc"},
		{"trims after truncation", "ab    cd", 4, "ab"},
		{"no limit when max is zero", strings.Repeat("x", 5000), 0, strings.Repeat("x", 5000)},
		{"empty input", "   ", 100, ""},
		{"unicode counts runes not bytes", "héllo wörld", 5, "héllo"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Text(tc.in, tc.max); got != tc.want {
				t.Fatalf("Text(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
			}
		})
	}
}

func TestTextStripsNewlinesAsControl(t *testing.T) {
	if got := Text("one\ntwo", 100); got != "onetwo" {
		t.Fatalf("expected newline removed, got %q", got)
	}
}

func TestTags(t *testing.T) {
	got := Tags([]string{" math ", "", "<script>", strings.Repeat("y", 60)})
	want := []string{"math", "script", strings.Repeat("y", MaxTag)}
	if len(got) != len(want) {
		t.Fatalf("expected %d tags, got %#v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tag %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTagsEmptyInput(t *testing.T) {
	if got := Tags(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
