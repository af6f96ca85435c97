package match

import "testing"

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "paris", 5},
		{"paris", "", 5},
		{"paris", "paris", 0},
		{"pari", "paris", 1},
		{"parris", "paris", 1},
		{"paris", "prais", 2},
		{"kitten", "sitting", 3},
		{"cairo", "aden", 4},
		{"bogotá", "bogota", 1},
	}

	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"paris", "pari"},
		{"london", "londres"},
		{"", "x"},
		{"québec", "quebec"},
	}

	for _, p := range pairs {
		if ab, ba := Distance(p[0], p[1]), Distance(p[1], p[0]); ab != ba {
			t.Errorf("Distance(%q, %q) = %d but Distance(%q, %q) = %d", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}
