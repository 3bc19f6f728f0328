package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyroutine/internal/model"
)

func badgeIDs(badges []model.Badge) []string {
	out := make([]string, 0, len(badges))
	for _, b := range badges {
		out = append(out, b.ID)
	}
	return out
}

func TestEvaluateBadgesNothingEarned(t *testing.T) {
	got := EvaluateBadges(model.DefaultUserStats(), time.Now())
	assert.Empty(t, got)
}

func TestEvaluateBadgesAwardsQualifying(t *testing.T) {
	now := day("2026-10-19")
	stats := model.DefaultUserStats()
	stats.StreakDays = 30
	stats.TotalTasksCompleted = 50
	stats.Level = 10

	got := EvaluateBadges(stats, now)
	assert.Equal(t, []string{"streak-7", "streak-30", "tasks-50", "level-10"}, badgeIDs(got))
	for _, b := range got {
		assert.True(t, now.Equal(b.EarnedAt))
		assert.NotEmpty(t, b.Name)
	}
	assert.Equal(t, "flame", got[0].Icon)
	assert.Equal(t, "trending-up", got[3].Icon)
}

func TestEvaluateBadgesIsIdempotent(t *testing.T) {
	stats := model.DefaultUserStats()
	stats.StreakDays = 7
	stats.Level = 50

	first := EvaluateBadges(stats, day("2026-10-19"))
	stats.Badges = first
	second := EvaluateBadges(stats, day("2026-10-20"))
	assert.Equal(t, first, second)
}

func TestEvaluateBadgesNeverRevokes(t *testing.T) {
	earned := model.Badge{ID: "streak-30", Name: "Monthly Master", Icon: "trophy", EarnedAt: day("2026-01-01")}
	stats := model.DefaultUserStats()
	stats.Badges = []model.Badge{earned}
	stats.TotalTasksCompleted = 100

	got := EvaluateBadges(stats, day("2026-10-19"))
	require.NotEmpty(t, got)
	assert.Equal(t, earned, got[0])
	assert.Equal(t, []string{"streak-30", "tasks-50", "tasks-100"}, badgeIDs(got))
}

func TestEvaluateBadgesKeepsUnknownStoredBadges(t *testing.T) {
	stats := model.DefaultUserStats()
	stats.Badges = []model.Badge{{ID: "early-bird", Name: "Early Bird", Icon: DefaultBadgeIcon}}

	got := EvaluateBadges(stats, time.Now())
	assert.Equal(t, []string{"early-bird"}, badgeIDs(got))
}

func TestBadgeIconFallsBack(t *testing.T) {
	assert.Equal(t, "crown", BadgeIcon("streak-100"))
	assert.Equal(t, "diamond", BadgeIcon("level-50"))
	assert.Equal(t, DefaultBadgeIcon, BadgeIcon("no-such-badge"))
}

func TestBadgeDefinitionsAreCopied(t *testing.T) {
	defs := BadgeDefinitions()
	require.Len(t, defs, 7)
	defs[0].Name = "mutated"
	assert.Equal(t, "Week Warrior", BadgeDefinitions()[0].Name)
}

func TestRequirementMet(t *testing.T) {
	stats := model.DefaultUserStats()
	stats.StreakDays = 6
	stats.TotalTasksCompleted = 49
	stats.Level = 9

	assert.False(t, RequirementMet(StreakLength{N: 7}, stats))
	assert.False(t, RequirementMet(TasksCompleted{N: 50}, stats))
	assert.False(t, RequirementMet(LevelReached{N: 10}, stats))

	stats.StreakDays = 7
	stats.TotalTasksCompleted = 50
	stats.Level = 10
	assert.True(t, RequirementMet(StreakLength{N: 7}, stats))
	assert.True(t, RequirementMet(TasksCompleted{N: 50}, stats))
	assert.True(t, RequirementMet(LevelReached{N: 10}, stats))
}

func TestBadgeBoard(t *testing.T) {
	stats := model.DefaultUserStats()
	stats.Badges = []model.Badge{{ID: "tasks-50", Name: "Task Tackler", Icon: "checkmark-done"}}

	board := BadgeBoard(stats)
	require.Len(t, board, 7)
	for _, st := range board {
		if st.Definition.ID == "tasks-50" {
			require.NotNil(t, st.Earned)
			assert.Equal(t, "Task Tackler", st.Earned.Name)
			continue
		}
		assert.Nil(t, st.Earned, st.Definition.ID)
	}
}
