package util

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Listening Sample 1", "listening-sample-1"},
		{"  Reading -- Test  ", "reading-test"},
		{"IELTS: Academic (2026)", "ielts-academic-2026"},
		{"!!!", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
