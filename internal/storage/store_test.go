package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyroutine/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db)
}

func strPtr(s string) *string { return &s }

func TestLoadDefaultsOnEmptyDatabase(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	assert.Empty(t, st.LoadTasks(ctx))
	assert.Equal(t, model.DefaultUserStats(), st.LoadStats(ctx))
	assert.Equal(t, model.DefaultSettings(), st.LoadSettings(ctx))
}

func TestTasksRoundTripKeepsOrder(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	created := time.UnixMilli(1760000000000)

	tasks := []model.Task{
		{ID: "b", Title: "Run", Category: model.CategoryFitness, DurationMinutes: 30, Date: "2026-10-19", CreatedAt: created},
		{ID: "a", Title: "Read", Category: model.CategoryStudy, DurationMinutes: 45, Completed: true, Date: "2026-10-18", CreatedAt: created},
	}
	require.NoError(t, st.SaveTasks(ctx, tasks))

	got := st.LoadTasks(ctx)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.True(t, got[1].Completed)
	assert.True(t, created.Equal(got[0].CreatedAt))

	require.NoError(t, st.Tasks().Insert(ctx, model.Task{ID: "c", Title: "Call", Category: model.CategoryBusiness, DurationMinutes: 15, Date: "2026-10-19", CreatedAt: created}))
	got = st.LoadTasks(ctx)
	require.Len(t, got, 3)
	assert.Equal(t, "c", got[2].ID)

	ok, err := st.Tasks().Delete(ctx, "b")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = st.Tasks().Delete(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	missing, err := st.Tasks().Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLoadTasksSkipsCorruptRows(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveTasks(ctx, []model.Task{
		{ID: "ok", Title: "Fine", Category: model.CategoryPersonal, DurationMinutes: 30, Date: "2026-10-19"},
	}))
	_, err := st.db.ExecContext(ctx, `
		INSERT INTO tasks (id, position, title, category, duration_minutes, completed, date, created_at_ms)
		VALUES ('bad', 5, 'Broken', 'Gardening', 30, 0, '2026-10-19', 0)
	`)
	require.NoError(t, err)

	got := st.LoadTasks(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].ID)
}

func TestStatsRoundTripAndBadgesAppendOnly(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	earned := time.UnixMilli(1760000000000)

	stats := model.DefaultUserStats()
	stats.XP = 250
	stats.Level = 3
	stats.StreakDays = 7
	stats.LastCompletedDate = strPtr("2026-10-19")
	stats.TotalTasksCompleted = 12
	stats.CategoryStats[model.CategoryFitness] = 12
	stats.Badges = []model.Badge{{ID: "streak-7", Name: "Week Warrior", Description: "7-day streak", Icon: "flame", EarnedAt: earned}}
	require.NoError(t, st.SaveStats(ctx, stats))

	got := st.LoadStats(ctx)
	assert.Equal(t, 250, got.XP)
	assert.Equal(t, 3, got.Level)
	assert.Equal(t, 7, got.StreakDays)
	require.NotNil(t, got.LastCompletedDate)
	assert.Equal(t, "2026-10-19", *got.LastCompletedDate)
	assert.Equal(t, 12, got.CategoryStats[model.CategoryFitness])
	assert.Equal(t, 0, got.CategoryStats[model.CategoryStudy])
	require.Len(t, got.Badges, 1)
	assert.True(t, earned.Equal(got.Badges[0].EarnedAt))

	// Saving without the badge must not remove it.
	stats.Badges = nil
	stats.LastCompletedDate = nil
	require.NoError(t, st.SaveStats(ctx, stats))
	got = st.LoadStats(ctx)
	assert.Len(t, got.Badges, 1)
	assert.Nil(t, got.LastCompletedDate)
}

func TestLoadStatsNormalizesCorruptValues(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.db.ExecContext(ctx, `
		INSERT INTO user_stats (key, xp, level, streak_days, last_completed_date, total_tasks_completed)
		VALUES ('main_user', -40, 0, -2, 'yesterday', -1)
	`)
	require.NoError(t, err)
	_, err = st.db.ExecContext(ctx, `INSERT INTO category_stats (category, completed) VALUES ('Study', -3), ('Gardening', 4)`)
	require.NoError(t, err)

	got := st.LoadStats(ctx)
	assert.Equal(t, 0, got.XP)
	assert.Equal(t, 1, got.Level)
	assert.Equal(t, 0, got.StreakDays)
	assert.Nil(t, got.LastCompletedDate)
	assert.Equal(t, 0, got.TotalTasksCompleted)
	assert.Equal(t, 0, got.CategoryStats[model.CategoryStudy])
	assert.NotContains(t, got.CategoryStats, model.Category("Gardening"))
	assert.Len(t, got.CategoryStats, len(model.Categories))
}

func TestReadStatsSkipsUnreadableRows(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	stats := model.DefaultUserStats()
	stats.XP = 5000
	stats.TotalTasksCompleted = 40
	stats.CategoryStats[model.CategoryStudy] = 15
	stats.CategoryStats[model.CategoryFitness] = 25
	stats.Badges = []model.Badge{
		{ID: "streak-7", Name: "Week Warrior", Icon: "flame", EarnedAt: time.UnixMilli(1000)},
		{ID: "tasks-10", Name: "Getting Started", Icon: "checkmark-done", EarnedAt: time.UnixMilli(2000)},
	}
	require.NoError(t, st.SaveStats(ctx, stats))

	_, err := st.db.ExecContext(ctx, `UPDATE category_stats SET completed = 'abc' WHERE category = 'Study'`)
	require.NoError(t, err)
	_, err = st.db.ExecContext(ctx, `UPDATE user_badges SET earned_at_ms = 'soon' WHERE badge_id = 'streak-7'`)
	require.NoError(t, err)

	got, err := st.ReadStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5000, got.XP)
	assert.Equal(t, 40, got.TotalTasksCompleted)
	assert.Equal(t, 25, got.CategoryStats[model.CategoryFitness])
	assert.Equal(t, 0, got.CategoryStats[model.CategoryStudy])
	require.Len(t, got.Badges, 1)
	assert.Equal(t, "tasks-10", got.Badges[0].ID)

	_, skipped, err := st.Stats().Get(ctx)
	require.NoError(t, err)
	assert.Len(t, skipped, 2)
}

func TestReadStatsFailsOnUnreadableRecord(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	stats := model.DefaultUserStats()
	stats.XP = 5000
	require.NoError(t, st.SaveStats(ctx, stats))
	_, err := st.db.ExecContext(ctx, `UPDATE user_stats SET xp = 'abc'`)
	require.NoError(t, err)

	_, err = st.ReadStats(ctx)
	require.Error(t, err)
	// The forgiving loader falls back to defaults instead.
	assert.Equal(t, model.DefaultUserStats(), st.LoadStats(ctx))
}

func TestSettingsAndClearAll(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	s := model.DefaultSettings()
	s.DarkMode = true
	s.NotificationsEnabled = false
	s.ReminderTime = "07:30"
	require.NoError(t, st.SaveSettings(ctx, s))
	assert.Equal(t, s, st.LoadSettings(ctx))

	require.NoError(t, st.SaveTasks(ctx, []model.Task{{ID: "x", Title: "X", Category: model.CategoryStudy, DurationMinutes: 15, Date: "2026-10-19"}}))
	stats := model.DefaultUserStats()
	stats.XP = 10
	stats.Badges = []model.Badge{{ID: "tasks-50", Name: "Task Tackler", Icon: "checkmark-done"}}
	require.NoError(t, st.SaveStats(ctx, stats))

	require.NoError(t, st.ClearAll(ctx))
	assert.Empty(t, st.LoadTasks(ctx))
	assert.Equal(t, model.DefaultUserStats(), st.LoadStats(ctx))
	assert.Equal(t, model.DefaultSettings(), st.LoadSettings(ctx))
}

func TestTxRollsBackOnError(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	err := st.Tx(ctx, func(tx *Store) error {
		require.NoError(t, tx.Tasks().Insert(ctx, model.Task{ID: "tmp", Title: "T", Category: model.CategoryStudy, DurationMinutes: 15, Date: "2026-10-19"}))
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, st.LoadTasks(ctx))
}
