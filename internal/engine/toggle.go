package engine

import (
	"time"

	"dailyroutine/internal/model"
)

type ToggleResult struct {
	TaskID        string
	Completed     bool
	XPDelta       int
	LevelBefore   int
	LevelAfter    int
	LevelUp       bool
	LevelDown     bool
	StreakBefore  int
	StreakAfter   int
	StreakCounted bool // first completion of its day
	NewBadges     []model.Badge
}

// Toggle flips task's completion state and applies the matching progression
// update to stats. Neither input is modified.
//
// Un-completing takes back exactly the XP the task awarded and decrements the
// counters, but leaves the streak alone and never revokes a badge.
func Toggle(task model.Task, stats model.UserStats, now time.Time) (model.Task, model.UserStats, ToggleResult) {
	next := stats.Clone()
	t := task
	t.Completed = !task.Completed

	res := ToggleResult{
		TaskID:       task.ID,
		Completed:    t.Completed,
		LevelBefore:  LevelForXP(stats.XP),
		StreakBefore: stats.StreakDays,
	}

	xp := XPForTask(task.DurationMinutes, task.Category)
	if t.Completed {
		next.XP += xp
		next.TotalTasksCompleted++
		next.CategoryStats[task.Category]++

		upd := AdvanceStreak(next.StreakDays, next.LastCompletedDate, now)
		next.StreakDays = upd.StreakDays
		next.LastCompletedDate = upd.LastCompletedDate
		res.StreakCounted = upd.Changed
		res.XPDelta = xp
	} else {
		before := next.XP
		next.XP = clampZero(next.XP - xp)
		next.TotalTasksCompleted = clampZero(next.TotalTasksCompleted - 1)
		next.CategoryStats[task.Category] = clampZero(next.CategoryStats[task.Category] - 1)
		res.XPDelta = next.XP - before
	}
	next.Level = LevelForXP(next.XP)

	prevBadges := len(next.Badges)
	next.Badges = EvaluateBadges(next, now)
	if len(next.Badges) > prevBadges {
		res.NewBadges = append([]model.Badge(nil), next.Badges[prevBadges:]...)
	}

	res.LevelAfter = next.Level
	res.LevelUp = res.LevelAfter > res.LevelBefore
	res.LevelDown = res.LevelAfter < res.LevelBefore
	res.StreakAfter = next.StreakDays
	return t, next, res
}

func clampZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
