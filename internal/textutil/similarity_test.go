package textutil

import "testing"

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{"both empty", "", "", 100},
		{"identical", "jane smith", "jane smith", 100},
		{"one empty", "jane", "", 0},
		{"disjoint", "abc", "xyz", 0},
		{"one typo", "jane smith", "jane smyth", 90},
		{"dropped letter", "janie smith", "jane smith", 95},
		{"multibyte counted as runes", "zoë", "zoe", 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ratio(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("Ratio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRatioSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"john smith", "jon smith"},
		{"j. smith", "jane s."},
		{"alexander", "alex"},
	}
	for _, p := range pairs {
		ab := Ratio(p[0], p[1])
		ba := Ratio(p[1], p[0])
		if ab != ba {
			t.Errorf("Ratio not symmetric for %q/%q: %d vs %d", p[0], p[1], ab, ba)
		}
	}
}

func TestRatioNeverRoundsUpToExact(t *testing.T) {
	long := "abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyz"
	got := Ratio(long, long+"a")
	if got != 99 {
		t.Fatalf("Ratio of near-identical long strings = %d, want 99", got)
	}
}
