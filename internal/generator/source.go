// Package generator is the shared random source behind problem generation.
package generator

import (
	"math/rand"
	"time"

	"mathmountain/internal/models"
)

// Source draws operands and template parameters from one generator for the
// life of the process. It is not safe for concurrent use.
type Source struct {
	rng *rand.Rand
}

// New returns a Source seeded with seed, or from the clock when seed is 0
func New(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Operand draws one mountain operand for the tier:
// low 1-9, medium 10-99, high an even split of 100-999 and 1000-9999.
// Unknown tiers draw as medium.
func (s *Source) Operand(tier models.MountainTier) int {
	switch tier {
	case models.TierLow:
		return s.Between(1, 9)
	case models.TierHigh:
		if s.rng.Float64() > 0.5 {
			return s.Between(100, 999)
		}
		return s.Between(1000, 9999)
	default:
		return s.Between(10, 99)
	}
}

// Between returns a uniform integer in [min, max]
func (s *Source) Between(min, max int) int {
	if max <= min {
		return min
	}
	return s.rng.Intn(max-min+1) + min
}

// Intn returns a uniform integer in [0, n)
func (s *Source) Intn(n int) int {
	return s.rng.Intn(n)
}

// Pick returns a uniform element of items, which must not be empty
func Pick[T any](s *Source, items []T) T {
	return items[s.rng.Intn(len(items))]
}
