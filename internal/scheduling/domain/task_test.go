package domain_test

import (
	"testing"

	"github.com/felixgeelhaar/dayplan/internal/scheduling/domain"
	sharedDomain "github.com/felixgeelhaar/dayplan/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	task, err := domain.NewTask("Meditate", "wellness", 15)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, task.ID())
	assert.Equal(t, "Meditate", task.Name())
	assert.Equal(t, "wellness", task.Category())
	assert.Equal(t, 15, task.DurationMin())
	assert.False(t, task.IsCommitted())

	_, ok := task.StartMinute()
	assert.False(t, ok)
}

func TestNewTask_Invalid(t *testing.T) {
	_, err := domain.NewTask("Meditate", "wellness", 0)
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidArgument)

	_, err = domain.NewTask("  ", "wellness", 15)
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidArgument)
}

func TestTask_ScheduledAt(t *testing.T) {
	task, err := domain.NewTask("Read a paper", "learning", 30)
	require.NoError(t, err)

	committed := task.ScheduledAt(domain.MustClockTime(10, 30))

	assert.False(t, task.IsCommitted(), "original task must not be stamped")
	assert.True(t, committed.IsCommitted())
	assert.Equal(t, task.ID(), committed.ID())

	start, ok := committed.StartMinute()
	require.True(t, ok)
	assert.Equal(t, 630, start)

	assert.False(t, committed.Unscheduled().IsCommitted())
}

func TestNewCommittedTask(t *testing.T) {
	task, err := domain.NewCommittedTask("Workout in the park", "wellness", 60, domain.MustClockTime(11, 0))

	require.NoError(t, err)
	start, ok := task.Start()
	require.True(t, ok)
	assert.Equal(t, "11:00", start.String())
}

func TestNewSlot(t *testing.T) {
	slot, err := domain.NewSlot(600, 45)

	require.NoError(t, err)
	assert.Equal(t, 645, slot.EndMinute())
	assert.Equal(t, "10:00", slot.StartTime().String())
	assert.Equal(t, "10:45", slot.EndTime().String())
	assert.Equal(t, "10:00-10:45", slot.String())
	assert.True(t, slot.OverlapsWith(630, 700))
	assert.False(t, slot.OverlapsWith(645, 700))

	_, err = domain.NewSlot(1430, 30)
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidArgument)
}
