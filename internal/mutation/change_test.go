package mutation

import "testing"

func TestChangeIsFrameshift(t *testing.T) {
	cases := []struct {
		ref, alt string
		want     bool
	}{
		{"A", "ACGT", false},
		{"A", "AC", true},
		{"ACGT", "A", false},
		{"AC", "A", true},
	}
	for _, tc := range cases {
		c := Change{Ref: tc.ref, Alt: tc.alt}
		if got := c.IsFrameshift(); got != tc.want {
			t.Errorf("Change(%q,%q).IsFrameshift() = %v, want %v", tc.ref, tc.alt, got, tc.want)
		}
	}
}
