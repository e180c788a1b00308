package services

import (
	"math/rand/v2"
	"time"

	sharedDomain "github.com/felixgeelhaar/dayplan/internal/shared/domain"
)

// NewSeededRand returns a reproducible random source for the scheduler.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func newRandomRand() *rand.Rand {
	return NewSeededRand(uint64(time.Now().UnixNano()))
}

// multinomial draws trials independent categorical samples from probs and
// returns how many times each category was drawn.
func multinomial(rng *rand.Rand, trials int, probs []float64) ([]int, error) {
	if trials <= 0 {
		return nil, sharedDomain.NewValidationError("sample_count", "must be positive", trials)
	}
	if len(probs) == 0 {
		return nil, sharedDomain.NewValidationError("probabilities", "must not be empty", nil)
	}

	cumulative := make([]float64, len(probs))
	total := 0.0
	for i, p := range probs {
		if p < 0 {
			return nil, sharedDomain.NewValidationError("probabilities", "must not be negative", p)
		}
		total += p
		cumulative[i] = total
	}
	if !(total > 0) {
		return nil, sharedDomain.NewValidationError("probabilities", "must have a positive total", total)
	}

	counts := make([]int, len(probs))
	for n := 0; n < trials; n++ {
		u := rng.Float64() * total
		idx := len(cumulative) - 1
		for i, c := range cumulative {
			if u < c {
				idx = i
				break
			}
		}
		counts[idx]++
	}
	return counts, nil
}

// argmax returns the index of the largest count; ties go to the earliest index.
func argmax(counts []int) int {
	best := 0
	for i, c := range counts {
		if c > counts[best] {
			best = i
		}
	}
	return best
}
