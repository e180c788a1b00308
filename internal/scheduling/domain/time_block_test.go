package domain_test

import (
	"testing"

	"github.com/felixgeelhaar/dayplan/internal/scheduling/domain"
	sharedDomain "github.com/felixgeelhaar/dayplan/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeBlock(t *testing.T) {
	block, err := domain.NewTimeBlock(30, 90)

	require.NoError(t, err)
	assert.Equal(t, 30, block.StartMin())
	assert.Equal(t, 90, block.EndMin())
	assert.Equal(t, 60, block.Duration())
	assert.Equal(t, "[30, 90)", block.String())
}

func TestNewTimeBlock_InvalidRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
	}{
		{"end before start", 60, 30},
		{"empty block", 45, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewTimeBlock(tt.start, tt.end)

			require.Error(t, err)
			assert.ErrorIs(t, err, sharedDomain.ErrInvalidArgument)
		})
	}
}

func TestTimeBlock_ContainsInterval(t *testing.T) {
	block, _ := domain.NewTimeBlock(0, 60)

	assert.True(t, block.ContainsInterval(0, 60))
	assert.True(t, block.ContainsInterval(15, 30))
	assert.False(t, block.ContainsInterval(45, 75))
	assert.False(t, block.ContainsInterval(-15, 15))
}

func TestTimeBlock_OverlapsInterval(t *testing.T) {
	block, _ := domain.NewTimeBlock(30, 60)

	assert.True(t, block.OverlapsInterval(45, 75))
	assert.True(t, block.OverlapsInterval(0, 31))
	assert.False(t, block.OverlapsInterval(60, 90), "half-open end must not overlap")
	assert.False(t, block.OverlapsInterval(0, 30), "half-open start must not overlap")
}
