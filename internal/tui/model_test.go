package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyroutine/internal/engine"
	"dailyroutine/internal/model"
	"dailyroutine/internal/storage"
)

func newTestBoard(t *testing.T) (boardModel, *engine.Service) {
	t.Helper()
	ctx := context.Background()

	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	clock := engine.NewFakeClock(time.Date(2026, 10, 19, 8, 0, 0, 0, time.Local))
	svc := engine.NewService(db, engine.WithClock(clock))
	return newBoardModel(ctx, svc), svc
}

// step feeds msg to m and runs any resulting command once, feeding its
// message back in.
func step(t *testing.T, m boardModel, msg tea.Msg) boardModel {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(boardModel)
	for cmd != nil {
		out := cmd()
		if out == nil {
			break
		}
		next, cmd = m.Update(out)
		m = next.(boardModel)
	}
	return m
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBoardToggleSelectedTask(t *testing.T) {
	m, svc := newTestBoard(t)
	ctx := context.Background()

	_, err := svc.AddTask(ctx, engine.AddTaskInput{Title: "Read", Category: model.CategoryStudy, DurationMinutes: 30})
	require.NoError(t, err)
	_, err = svc.AddTask(ctx, engine.AddTaskInput{Title: "Run", Category: model.CategoryFitness, DurationMinutes: 60})
	require.NoError(t, err)

	m = step(t, m, m.Init()())
	require.Len(t, m.visibleTasks(), 2)
	assert.Contains(t, m.View(), "Read")

	m = step(t, m, key("j"))
	assert.Equal(t, 1, m.selected)
	m = step(t, m, key(" "))

	assert.Contains(t, m.lastLog, "Refreshed")
	stats := svc.Stats(ctx)
	assert.Equal(t, 12, stats.XP)
	assert.Equal(t, 1, stats.CategoryStats[model.CategoryFitness])
	assert.Contains(t, m.renderMain(), "[x] Run")
}

func TestBoardFocusModeHidesCompleted(t *testing.T) {
	m, svc := newTestBoard(t)
	ctx := context.Background()

	task, err := svc.AddTask(ctx, engine.AddTaskInput{Title: "Plan", Category: model.CategoryBusiness, DurationMinutes: 30})
	require.NoError(t, err)
	_, err = svc.ToggleTask(ctx, task.ID)
	require.NoError(t, err)

	m = step(t, m, m.Init()())
	assert.Len(t, m.visibleTasks(), 1)

	m = step(t, m, key("f"))
	assert.True(t, m.settings.MorningFocusMode)
	assert.True(t, svc.Settings(ctx).MorningFocusMode)
	assert.Empty(t, m.visibleTasks())
	assert.Contains(t, m.View(), "all clear")
}

func TestToggleSummary(t *testing.T) {
	got := toggleSummary(engine.ToggleResult{
		Completed:     true,
		XPDelta:       14,
		LevelBefore:   1,
		LevelAfter:    2,
		LevelUp:       true,
		StreakBefore:  6,
		StreakAfter:   7,
		StreakCounted: true,
		NewBadges:     []model.Badge{{ID: "streak-7", Name: "Week Warrior", Icon: "flame"}},
	})
	assert.Contains(t, got, "+14 XP")
	assert.Contains(t, got, "level 1 → 2")
	assert.Contains(t, got, "streak 7")
	assert.Contains(t, got, "Week Warrior unlocked")
}

func TestWrap(t *testing.T) {
	lines := wrap("Excellence is not an act, but a habit.", 12)
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), 14)
	}
	assert.Equal(t, "  Excellence", lines[0])
}
