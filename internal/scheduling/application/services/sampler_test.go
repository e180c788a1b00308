package services

import (
	"testing"

	sharedDomain "github.com/felixgeelhaar/dayplan/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultinomial(t *testing.T) {
	t.Run("counts add up to trials", func(t *testing.T) {
		counts, err := multinomial(NewSeededRand(5), 100, []float64{0.2, 0.3, 0.5})
		require.NoError(t, err)
		assert.Equal(t, 100, counts[0]+counts[1]+counts[2])
	})

	t.Run("zero weight is never drawn", func(t *testing.T) {
		counts, err := multinomial(NewSeededRand(5), 1000, []float64{0, 1, 0})
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1000, 0}, counts)
	})

	t.Run("unnormalized weights", func(t *testing.T) {
		counts, err := multinomial(NewSeededRand(9), 10000, []float64{1, 3})
		require.NoError(t, err)
		assert.InDelta(t, 7500, counts[1], 300)
	})

	t.Run("same seed same draw", func(t *testing.T) {
		a, err := multinomial(NewSeededRand(11), 50, []float64{0.25, 0.25, 0.5})
		require.NoError(t, err)
		b, err := multinomial(NewSeededRand(11), 50, []float64{0.25, 0.25, 0.5})
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	invalid := []struct {
		name   string
		trials int
		probs  []float64
	}{
		{"zero trials", 0, []float64{1}},
		{"no categories", 1, nil},
		{"negative weight", 1, []float64{0.5, -0.1}},
		{"zero total", 1, []float64{0, 0}},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			_, err := multinomial(NewSeededRand(1), tc.trials, tc.probs)
			assert.ErrorIs(t, err, sharedDomain.ErrInvalidArgument)
		})
	}
}

func TestArgmax(t *testing.T) {
	assert.Equal(t, 0, argmax([]int{1}))
	assert.Equal(t, 2, argmax([]int{1, 3, 4, 0}))
	assert.Equal(t, 1, argmax([]int{0, 2, 2, 1}))
	assert.Equal(t, 0, argmax([]int{0, 0, 0}))
}
