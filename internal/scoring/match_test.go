package scoring

import "testing"

func TestNormalize(t *testing.T) {
	if got := Normalize("  Paris  "); got != "paris" {
		t.Errorf("Normalize = %q, want %q", got, "paris")
	}
}

func TestTextMatches(t *testing.T) {
	tests := []struct {
		got, want string
		match     bool
	}{
		{"paris", "Paris", true},
		{"PARIS ", " paris", true},
		{"the city of paris", "paris", true},
		{"paris", "city of paris", true},
		{"lyon", "paris", false},
		{"", "paris", false},
		{"paris", "", false},
	}
	for _, tt := range tests {
		if got := TextMatches(tt.got, tt.want); got != tt.match {
			t.Errorf("TextMatches(%q, %q) = %t, want %t", tt.got, tt.want, got, tt.match)
		}
	}
}
