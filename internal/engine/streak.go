package engine

import (
	"time"

	"dailyroutine/internal/model"
)

// StreakUpdate is the outcome of applying a completion to a streak.
type StreakUpdate struct {
	StreakDays        int
	LastCompletedDate *string
	Changed           bool
}

// AdvanceStreak applies a completion made on today to the streak counter.
// A second completion on the same day is a no-op; a completion the day after
// lastCompleted extends the streak; anything else restarts it at 1. A stored
// date that does not parse counts as a gap.
func AdvanceStreak(streakDays int, lastCompleted *string, today time.Time) StreakUpdate {
	todayStr := today.Format(model.DateLayout)
	yesterday := today.AddDate(0, 0, -1).Format(model.DateLayout)

	if lastCompleted != nil && *lastCompleted == todayStr {
		last := *lastCompleted
		return StreakUpdate{StreakDays: streakDays, LastCompletedDate: &last}
	}

	next := 1
	if lastCompleted != nil && *lastCompleted == yesterday {
		next = streakDays + 1
	}
	return StreakUpdate{StreakDays: next, LastCompletedDate: &todayStr, Changed: true}
}

// ResetStreak clears the streak. It is only ever user-triggered.
func ResetStreak(stats model.UserStats) model.UserStats {
	out := stats.Clone()
	out.StreakDays = 0
	out.LastCompletedDate = nil
	return out
}
