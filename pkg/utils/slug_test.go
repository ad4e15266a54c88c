package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Komak Resan", "komak-resan"},
		{"punctuation collapses", "Plumbing & Piping Co.", "plumbing-piping-co"},
		{"leading and trailing junk", "  --Cleaning!  ", "cleaning"},
		{"digits kept", "Crew 24x7", "crew-24x7"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
