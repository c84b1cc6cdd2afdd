package generator

import (
	"testing"

	"mathmountain/internal/models"
)

func TestOperandBounds(t *testing.T) {
	src := New(7)

	tests := []struct {
		name    string
		tier    models.MountainTier
		inRange func(int) bool
	}{
		{name: "low", tier: models.TierLow, inRange: func(n int) bool { return n >= 1 && n <= 9 }},
		{name: "medium", tier: models.TierMedium, inRange: func(n int) bool { return n >= 10 && n <= 99 }},
		{name: "high", tier: models.TierHigh, inRange: func(n int) bool {
			return (n >= 100 && n <= 999) || (n >= 1000 && n <= 9999)
		}},
		{name: "unknown defaults to medium", tier: models.MountainTier("extreme"), inRange: func(n int) bool { return n >= 10 && n <= 99 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 2000; i++ {
				if n := src.Operand(tt.tier); !tt.inRange(n) {
					t.Fatalf("Operand(%q) = %d, out of range", tt.tier, n)
				}
			}
		})
	}
}

func TestOperandHighUsesBothRanges(t *testing.T) {
	src := New(11)
	threeDigit, fourDigit := 0, 0
	for i := 0; i < 1000; i++ {
		if src.Operand(models.TierHigh) < 1000 {
			threeDigit++
		} else {
			fourDigit++
		}
	}
	if threeDigit < 350 || fourDigit < 350 {
		t.Errorf("high tier split = %d three-digit / %d four-digit, want roughly even", threeDigit, fourDigit)
	}
}

func TestOperandLowCoversRange(t *testing.T) {
	src := New(3)
	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		seen[src.Operand(models.TierLow)] = true
	}
	for n := 1; n <= 9; n++ {
		if !seen[n] {
			t.Errorf("low tier never produced %d", n)
		}
	}
}

func TestBetween(t *testing.T) {
	src := New(5)
	for i := 0; i < 1000; i++ {
		if n := src.Between(3, 6); n < 3 || n > 6 {
			t.Fatalf("Between(3, 6) = %d", n)
		}
	}
	if n := src.Between(4, 4); n != 4 {
		t.Errorf("Between(4, 4) = %d, want 4", n)
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 50; i++ {
		if x, y := a.Operand(models.TierHigh), b.Operand(models.TierHigh); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}
