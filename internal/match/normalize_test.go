package match

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase", input: "Paris", want: "paris"},
		{name: "trim spaces", input: "  Paris  ", want: "paris"},
		{name: "collapse whitespace", input: "new \t york", want: "new york"},
		{name: "strip punctuation", input: "St. John's!", want: "st john's"},
		{name: "hyphen removed", input: "Port-au-Prince", want: "portauprince"},
		{name: "parens removed", input: "Congo (Brazzaville)", want: "congo brazzaville"},
		{name: "diacritics preserved", input: "Bogotá", want: "bogotá"},
		{name: "empty", input: "", want: ""},
		{name: "only punctuation", input: ".,;:", want: ""},
		{name: "only spaces", input: "   ", want: ""},
		{name: "mixed", input: "  SRI  Jayawardenepura-Kotte ", want: "sri jayawardenepurakotte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Paris", "  St. John's!  ", "Port-au-Prince", "Washington, D.C.",
		"", "...", "São Tomé", "NEW   YORK",
	}

	for _, s := range inputs {
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", s, twice, once)
		}
	}
}
