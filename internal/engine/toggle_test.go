package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyroutine/internal/model"
)

func newTask(id string, category model.Category, duration int) model.Task {
	return model.Task{ID: id, Title: "task " + id, Category: category, DurationMinutes: duration, Date: "2026-10-19"}
}

func TestToggleCompletesTask(t *testing.T) {
	now := day("2026-10-19")
	task := newTask("a", model.CategoryBusiness, 60)

	gotTask, stats, res := Toggle(task, model.DefaultUserStats(), now)
	assert.True(t, gotTask.Completed)
	assert.False(t, task.Completed)

	assert.Equal(t, 14, stats.XP)
	assert.Equal(t, 1, stats.Level)
	assert.Equal(t, 1, stats.TotalTasksCompleted)
	assert.Equal(t, 1, stats.CategoryStats[model.CategoryBusiness])
	assert.Equal(t, 1, stats.StreakDays)
	require.NotNil(t, stats.LastCompletedDate)
	assert.Equal(t, "2026-10-19", *stats.LastCompletedDate)

	assert.Equal(t, "a", res.TaskID)
	assert.True(t, res.Completed)
	assert.Equal(t, 14, res.XPDelta)
	assert.False(t, res.LevelUp)
	assert.Empty(t, res.NewBadges)
}

func TestToggleLevelUp(t *testing.T) {
	stats := model.DefaultUserStats()
	stats.XP = 95

	_, got, res := Toggle(newTask("a", model.CategoryPersonal, 30), stats, day("2026-10-19"))
	assert.Equal(t, 105, got.XP)
	assert.Equal(t, 2, got.Level)
	assert.True(t, res.LevelUp)
	assert.Equal(t, 1, res.LevelBefore)
	assert.Equal(t, 2, res.LevelAfter)
}

func TestToggleRoundTripRestoresCounters(t *testing.T) {
	now := day("2026-10-19")
	stats := model.DefaultUserStats()
	stats.XP = 205
	stats.Level = LevelForXP(205)
	stats.TotalTasksCompleted = 8
	stats.CategoryStats[model.CategoryStudy] = 3
	stats.StreakDays = 2
	stats.LastCompletedDate = strPtr("2026-10-18")

	task := newTask("a", model.CategoryStudy, 90)
	done, mid, res := Toggle(task, stats, now)
	require.True(t, done.Completed)
	assert.Equal(t, 223, mid.XP)
	assert.True(t, res.LevelUp)
	assert.Equal(t, 3, mid.StreakDays)

	undone, back, res := Toggle(done, mid, now)
	assert.False(t, undone.Completed)
	assert.Equal(t, stats.XP, back.XP)
	assert.Equal(t, stats.Level, back.Level)
	assert.Equal(t, stats.TotalTasksCompleted, back.TotalTasksCompleted)
	assert.Equal(t, stats.CategoryStats, back.CategoryStats)
	assert.Equal(t, -18, res.XPDelta)
	assert.True(t, res.LevelDown)

	// The streak is not reversed on un-complete.
	assert.Equal(t, 3, back.StreakDays)
	require.NotNil(t, back.LastCompletedDate)
	assert.Equal(t, "2026-10-19", *back.LastCompletedDate)
}

func TestToggleUncompleteClampsAtZero(t *testing.T) {
	task := newTask("a", model.CategoryFitness, 120)
	task.Completed = true

	stats := model.DefaultUserStats()
	stats.XP = 5

	_, got, res := Toggle(task, stats, day("2026-10-19"))
	assert.Equal(t, 0, got.XP)
	assert.Equal(t, 1, got.Level)
	assert.Equal(t, 0, got.TotalTasksCompleted)
	assert.Equal(t, 0, got.CategoryStats[model.CategoryFitness])
	assert.Equal(t, -5, res.XPDelta)
}

func TestToggleUncompleteKeepsBadges(t *testing.T) {
	now := day("2026-10-19")
	stats := model.DefaultUserStats()
	stats.StreakDays = 6
	stats.LastCompletedDate = strPtr("2026-10-18")

	task := newTask("a", model.CategoryPersonal, 30)
	done, mid, res := Toggle(task, stats, now)
	assert.Equal(t, 7, mid.StreakDays)
	require.Len(t, res.NewBadges, 1)
	assert.Equal(t, "streak-7", res.NewBadges[0].ID)
	assert.Equal(t, "Week Warrior", res.NewBadges[0].Name)
	assert.True(t, now.Equal(res.NewBadges[0].EarnedAt))

	_, back, res := Toggle(done, mid, now)
	assert.True(t, back.HasBadge("streak-7"))
	assert.Empty(t, res.NewBadges)
}

func TestToggleSameDayDoesNotExtendStreak(t *testing.T) {
	now := day("2026-10-19")
	_, s1, r1 := Toggle(newTask("a", model.CategoryStudy, 30), model.DefaultUserStats(), now)
	_, s2, r2 := Toggle(newTask("b", model.CategoryStudy, 30), s1, now)
	assert.True(t, r1.StreakCounted)
	assert.False(t, r2.StreakCounted)
	assert.Equal(t, 1, s2.StreakDays)
	assert.Equal(t, 2, s2.TotalTasksCompleted)
	assert.Equal(t, 20, s2.XP)
}

func TestToggleDoesNotMutateInputs(t *testing.T) {
	stats := model.DefaultUserStats()
	stats.StreakDays = 6
	stats.LastCompletedDate = strPtr("2026-10-18")
	before := stats.Clone()

	task := newTask("a", model.CategoryBusiness, 45)
	_, _, _ = Toggle(task, stats, day("2026-10-19"))

	assert.Equal(t, before, stats)
	assert.False(t, task.Completed)
}
