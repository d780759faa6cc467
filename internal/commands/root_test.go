package commands

import "testing"

func TestParseID(t *testing.T) {
	cases := []struct {
		arg  string
		want int
		ok   bool
	}{
		{"12", 12, true},
		{"1", 1, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"12abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		id, err := parseID(tc.arg, "story id")
		if tc.ok {
			if err != nil {
				t.Errorf("parseID(%q) returned error: %v", tc.arg, err)
			}
			if id != tc.want {
				t.Errorf("parseID(%q) = %d, want %d", tc.arg, id, tc.want)
			}
			continue
		}
		if err == nil {
			t.Errorf("parseID(%q) accepted a malformed id as %d", tc.arg, id)
		}
	}
}
