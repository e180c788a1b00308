package services

import (
	"fmt"

	schedulingDomain "github.com/felixgeelhaar/dayplan/internal/scheduling/domain"
)

// TaskInput describes a task as it arrives from a caller. Start is "HH:MM"
// for committed tasks and empty for tasks still to be placed.
type TaskInput struct {
	Name        string
	Category    string
	DurationMin int
	Start       string
}

// ToTask converts the input into a domain task.
func (in TaskInput) ToTask() (schedulingDomain.Task, error) {
	if in.Start == "" {
		return schedulingDomain.NewTask(in.Name, in.Category, in.DurationMin)
	}
	start, err := schedulingDomain.ParseClockTime(in.Start)
	if err != nil {
		return schedulingDomain.Task{}, fmt.Errorf("task %q: %w", in.Name, err)
	}
	return schedulingDomain.NewCommittedTask(in.Name, in.Category, in.DurationMin, start)
}

// ToTasks converts a batch of inputs, stopping at the first invalid one.
func ToTasks(inputs []TaskInput) ([]schedulingDomain.Task, error) {
	tasks := make([]schedulingDomain.Task, 0, len(inputs))
	for _, in := range inputs {
		task, err := in.ToTask()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// BuildSchedule creates a schedule for window holding the committed inputs.
func BuildSchedule(window schedulingDomain.Window, committed []TaskInput) (*schedulingDomain.Schedule, error) {
	tasks, err := ToTasks(committed)
	if err != nil {
		return nil, err
	}
	return schedulingDomain.NewSchedule(window, tasks...)
}
