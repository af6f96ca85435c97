package match

import "testing"

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		accepted  []string
		correct   bool
		close     bool
	}{
		{
			name:      "exact match",
			candidate: "Paris",
			accepted:  []string{"Paris"},
			correct:   true,
		},
		{
			name:      "exact after normalization",
			candidate: "  paris ",
			accepted:  []string{"Paris"},
			correct:   true,
		},
		{
			name:      "missing last letter",
			candidate: "Pari",
			accepted:  []string{"Paris"},
			correct:   true,
			close:     true,
		},
		{
			name:      "doubled letter",
			candidate: "Parris",
			accepted:  []string{"Paris"},
			correct:   true,
			close:     true,
		},
		{
			name:      "cross-script lookalike stays wrong",
			candidate: "Pари",
			accepted:  []string{"Paris"},
		},
		{
			name:      "exact against first of several",
			candidate: "France",
			accepted:  []string{"France", "Francia"},
			correct:   true,
		},
		{
			name:      "close against second of several",
			candidate: "Francai",
			accepted:  []string{"France", "Francia"},
			correct:   true,
			close:     true,
		},
		{
			name:      "multiple capitals none close",
			candidate: "Cairo",
			accepted:  []string{"Sana'a", "Aden"},
		},
		{
			name:      "short answer requires exact",
			candidate: "Us",
			accepted:  []string{"US"},
			correct:   true,
		},
		{
			name:      "short answer no tolerance",
			candidate: "Uk",
			accepted:  []string{"US"},
		},
		{
			name:      "empty candidate",
			candidate: "",
			accepted:  []string{"Chad"},
		},
		{
			name:      "punctuation only candidate",
			candidate: "...",
			accepted:  []string{"Chad"},
		},
		{
			name:      "wrong capital entirely",
			candidate: "Madrid",
			accepted:  []string{"Lisbon"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.candidate, tt.accepted)
			if got.Correct != tt.correct || got.CloseMatch != tt.close {
				t.Errorf("Evaluate(%q, %v) = %+v, want correct=%v close=%v",
					tt.candidate, tt.accepted, got, tt.correct, tt.close)
			}
		})
	}
}

// An exact match must never be reported as a close match, even when another
// accepted entry would also be within tolerance.
func TestEvaluateExactBeatsClose(t *testing.T) {
	got := Evaluate("Pretoria", []string{"Pretoria", "Pretorias"})
	if !got.Correct || got.CloseMatch {
		t.Errorf("Evaluate exact among near entries = %+v, want correct and not close", got)
	}
}

func TestEvaluateReflexive(t *testing.T) {
	for _, s := range []string{"Paris", "Sri Jayawardenepura Kotte", "N'Djamena", "La Paz"} {
		got := Evaluate(s, []string{s})
		if !got.Correct || got.CloseMatch {
			t.Errorf("Evaluate(%q, [same]) = %+v, want exact", s, got)
		}
	}
}
