package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/felixgeelhaar/dayplan/internal/shared/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	t.Run("with value", func(t *testing.T) {
		err := domain.NewValidationError("duration", "must be positive", -5)

		assert.Equal(t, `invalid argument: "duration" must be positive (got: -5)`, err.Error())
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		assert.True(t, domain.IsInvalidArgument(err))
		assert.False(t, domain.IsInconsistentSchedule(err))
	})

	t.Run("without value", func(t *testing.T) {
		err := domain.NewValidationError("joint", "operand is nil", nil)

		assert.Equal(t, `invalid argument: "joint" operand is nil`, err.Error())
	})

	t.Run("survives wrapping", func(t *testing.T) {
		err := fmt.Errorf("load priors: %w", domain.NewValidationError("floor", "must be positive", 0.0))

		var vErr *domain.ValidationError
		assert.True(t, errors.As(err, &vErr))
		assert.Equal(t, "floor", vErr.Field)
		assert.True(t, domain.IsInvalidArgument(err))
	})
}

func TestIsInconsistentSchedule(t *testing.T) {
	err := fmt.Errorf("task %q: %w", "Read", domain.ErrInconsistentSchedule)

	assert.True(t, domain.IsInconsistentSchedule(err))
	assert.False(t, domain.IsInvalidArgument(err))
}
