package models

import "testing"

func TestIsValidID(t *testing.T) {
	cases := []struct {
		id   string
		want bool
	}{
		{"abc", true},
		{"ab", false},
		{"abcdefghijklmnop", true},   // 16: upper bound
		{"abcdefghijklmnopq", false}, // 17
		{"room_1-A", true},
		{"", false},
		{"has space", false},
		{"café", false}, // non-ASCII letters are rejected
		{"semi;colon", false},
		{"UPPER123", true},
	}
	for _, tc := range cases {
		if got := IsValidID(tc.id); got != tc.want {
			t.Errorf("IsValidID(%q) = %v, want %v", tc.id, got, tc.want)
		}
	}
}
