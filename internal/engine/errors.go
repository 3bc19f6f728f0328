package engine

import (
	"errors"
	"fmt"
)

// ValidationError rejects task input before it can reach the progression code.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrCompletedTaskLocked is returned when editing the duration or category of a
// completed task; the XP it awarded must stay reversible.
var ErrCompletedTaskLocked = errors.New("completed task: un-complete it before changing duration or category")

// StateError is returned when a task is asked to move to the completion state
// it is already in.
type StateError struct {
	TaskID    string
	Completed bool
}

func (e StateError) Error() string {
	if e.Completed {
		return fmt.Sprintf("task %s is already done", e.TaskID)
	}
	return fmt.Sprintf("task %s is not done", e.TaskID)
}
