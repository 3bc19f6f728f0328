package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"dailyroutine/internal/logger"
	"dailyroutine/internal/model"
	"dailyroutine/internal/storage"
)

// Service owns the persisted state and applies every mutation through the
// pure progression functions. It assumes a single writer; each toggle runs in
// its own transaction.
type Service struct {
	store *storage.Store
	clock Clock
}

type Option func(*Service)

func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

func NewService(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		store: storage.NewStore(db),
		clock: RealClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Store() *storage.Store { return s.store }
func (s *Service) Now() time.Time        { return s.clock.Now() }

// Today is the current local calendar date as stored on tasks.
func (s *Service) Today() string { return s.clock.Now().Format(model.DateLayout) }

type AddTaskInput struct {
	Title           string
	Category        model.Category
	DurationMinutes int
	// Date defaults to today when empty.
	Date string
}

// TaskPatch carries the fields to change; nil fields are left alone.
type TaskPatch struct {
	Title           *string
	Category        *model.Category
	DurationMinutes *int
	Date            *string
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", ValidationError{Field: "title", Reason: "title is required"}
	}
	return t, nil
}

func validateDuration(d int) error {
	if d <= 0 {
		return ValidationError{Field: "duration", Reason: fmt.Sprintf("must be positive, got %d", d)}
	}
	return nil
}

func validateCategory(c model.Category) error {
	if !c.IsValid() {
		return ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", c)}
	}
	return nil
}

func validateDate(d string) error {
	if _, err := time.Parse(model.DateLayout, d); err != nil {
		return ValidationError{Field: "date", Reason: fmt.Sprintf("want YYYY-MM-DD, got %q", d)}
	}
	return nil
}

func (s *Service) AddTask(ctx context.Context, in AddTaskInput) (*model.Task, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if err := validateCategory(in.Category); err != nil {
		return nil, err
	}
	if err := validateDuration(in.DurationMinutes); err != nil {
		return nil, err
	}
	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = s.Today()
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}

	t := model.Task{
		ID:              uuid.NewString(),
		Title:           title,
		Category:        in.Category,
		DurationMinutes: in.DurationMinutes,
		Completed:       false,
		Date:            date,
		CreatedAt:       s.clock.Now(),
	}
	if err := s.store.Tasks().Insert(ctx, t); err != nil {
		logger.Error().Err(err).Msg("add task")
		return nil, err
	}
	logger.Debug().Str("task", t.ID).Str("category", string(t.Category)).Int("duration", t.DurationMinutes).Msg("task added")
	return &t, nil
}

// UpdateTask applies patch to the task with id. Duration and category of a
// completed task cannot change, since they determine the XP to take back.
func (s *Service) UpdateTask(ctx context.Context, id string, patch TaskPatch) (*model.Task, error) {
	var out *model.Task
	err := s.store.Tx(ctx, func(tx *storage.Store) error {
		t, err := tx.Tasks().Get(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("task %s not found", id)
		}

		next := *t
		if patch.Title != nil {
			title, err := normalizeTitle(*patch.Title)
			if err != nil {
				return err
			}
			next.Title = title
		}
		if patch.Category != nil {
			if err := validateCategory(*patch.Category); err != nil {
				return err
			}
			next.Category = *patch.Category
		}
		if patch.DurationMinutes != nil {
			if err := validateDuration(*patch.DurationMinutes); err != nil {
				return err
			}
			next.DurationMinutes = *patch.DurationMinutes
		}
		if patch.Date != nil {
			d := strings.TrimSpace(*patch.Date)
			if err := validateDate(d); err != nil {
				return err
			}
			next.Date = d
		}
		if t.Completed && (next.Category != t.Category || next.DurationMinutes != t.DurationMinutes) {
			return ErrCompletedTaskLocked
		}

		if _, err := tx.Tasks().Update(ctx, next); err != nil {
			return err
		}
		out = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteTask removes a task. Progression already earned from it is kept.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	ok, err := s.store.Tasks().Delete(ctx, id)
	if err != nil {
		logger.Error().Err(err).Str("task", id).Msg("delete task")
		return err
	}
	if !ok {
		return fmt.Errorf("task %s not found", id)
	}
	logger.Debug().Str("task", id).Msg("task deleted")
	return nil
}

func (s *Service) ListTasks(ctx context.Context) []model.Task {
	return s.store.LoadTasks(ctx)
}

// FindTask resolves ref as a full id or a unique id prefix.
// It returns nil, nil when nothing matches.
func (s *Service) FindTask(ctx context.Context, ref string) (*model.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ValidationError{Field: "id", Reason: "task id is required"}
	}
	var match *model.Task
	for _, t := range s.store.LoadTasks(ctx) {
		if t.ID == ref {
			t := t
			return &t, nil
		}
		if !strings.HasPrefix(t.ID, ref) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("task id prefix %q is ambiguous", ref)
		}
		t := t
		match = &t
	}
	return match, nil
}

// Stats returns the stored stats with the level re-derived from XP. A stored
// level that disagrees is corrected in place.
func (s *Service) Stats(ctx context.Context) model.UserStats {
	stats := s.store.LoadStats(ctx)
	if computed := LevelForXP(stats.XP); stats.Level != computed {
		logger.Warn().Int("stored", stats.Level).Int("computed", computed).Msg("stored level disagrees with xp, fixing")
		stats.Level = computed
		if err := s.store.SaveStats(ctx, stats); err != nil {
			logger.Error().Err(err).Msg("save corrected level")
		}
	}
	return stats
}

// loadStatsTx reads stats for an update inside tx. A read failure aborts the
// update instead of saving defaults over the stored record.
func loadStatsTx(ctx context.Context, tx *storage.Store) (model.UserStats, error) {
	stats, err := tx.ReadStats(ctx)
	if err != nil {
		return model.UserStats{}, fmt.Errorf("read stats: %w", err)
	}
	stats.Level = LevelForXP(stats.XP)
	return stats, nil
}

// ToggleTask flips the completion state of the task with id and persists the
// resulting task and stats atomically. An unknown id is a no-op and returns
// nil, nil.
func (s *Service) ToggleTask(ctx context.Context, id string) (*ToggleResult, error) {
	return s.toggle(ctx, id, nil)
}

// SetCompleted drives a task to the given completion state, failing when it is
// already there.
func (s *Service) SetCompleted(ctx context.Context, id string, completed bool) (*ToggleResult, error) {
	return s.toggle(ctx, id, &completed)
}

func (s *Service) toggle(ctx context.Context, id string, want *bool) (*ToggleResult, error) {
	now := s.clock.Now()
	var res *ToggleResult

	err := s.store.Tx(ctx, func(tx *storage.Store) error {
		task, err := tx.Tasks().Get(ctx, id)
		if err != nil {
			return err
		}
		if task == nil {
			return nil
		}
		if want != nil && task.Completed == *want {
			return StateError{TaskID: id, Completed: task.Completed}
		}

		stats, err := loadStatsTx(ctx, tx)
		if err != nil {
			return err
		}
		newTask, newStats, r := Toggle(*task, stats, now)
		if _, err := tx.Tasks().Update(ctx, newTask); err != nil {
			return err
		}
		if err := tx.SaveStats(ctx, newStats); err != nil {
			return err
		}
		res = &r
		return nil
	})
	if err != nil {
		var se StateError
		if !errors.As(err, &se) {
			logger.Error().Err(err).Str("task", id).Msg("toggle task")
		}
		return nil, err
	}
	if res == nil {
		logger.Debug().Str("task", id).Msg("toggle on unknown task ignored")
		return nil, nil
	}

	badges := make([]string, 0, len(res.NewBadges))
	for _, b := range res.NewBadges {
		badges = append(badges, b.ID)
	}
	logger.Info().
		Str("task", id).
		Bool("completed", res.Completed).
		Int("xp_delta", res.XPDelta).
		Int("level", res.LevelAfter).
		Int("streak", res.StreakAfter).
		Strs("new_badges", badges).
		Msg("task toggled")
	return res, nil
}

// ResetStreak zeroes the streak on user request.
func (s *Service) ResetStreak(ctx context.Context) (model.UserStats, error) {
	var out model.UserStats
	err := s.store.Tx(ctx, func(tx *storage.Store) error {
		stats, err := loadStatsTx(ctx, tx)
		if err != nil {
			return err
		}
		out = ResetStreak(stats)
		return tx.SaveStats(ctx, out)
	})
	if err != nil {
		logger.Error().Err(err).Msg("reset streak")
		return model.UserStats{}, err
	}
	logger.Info().Msg("streak reset")
	return out, nil
}

// ResetAll wipes tasks, stats and settings back to first-launch defaults.
func (s *Service) ResetAll(ctx context.Context) error {
	if err := s.store.ClearAll(ctx); err != nil {
		logger.Error().Err(err).Msg("reset all")
		return err
	}
	logger.Info().Msg("all data reset")
	return nil
}

func (s *Service) Settings(ctx context.Context) model.Settings {
	return s.store.LoadSettings(ctx)
}

// UpdateSettings loads the settings, applies fn and saves the result.
func (s *Service) UpdateSettings(ctx context.Context, fn func(*model.Settings) error) (model.Settings, error) {
	cur := s.store.LoadSettings(ctx)
	if err := fn(&cur); err != nil {
		return model.Settings{}, err
	}
	if err := validateReminderTime(cur.ReminderTime); err != nil {
		return model.Settings{}, err
	}
	if err := s.store.SaveSettings(ctx, cur); err != nil {
		logger.Error().Err(err).Msg("save settings")
		return model.Settings{}, err
	}
	return cur, nil
}

func validateReminderTime(v string) error {
	if _, err := time.Parse("15:04", v); err != nil {
		return ValidationError{Field: "reminder time", Reason: fmt.Sprintf("want HH:MM, got %q", v)}
	}
	return nil
}

// Snapshot is everything the app persists, as one exportable value.
type Snapshot struct {
	ExportedAt time.Time       `json:"exportedAt" yaml:"exportedAt"`
	Tasks      []model.Task    `json:"tasks" yaml:"tasks"`
	Stats      model.UserStats `json:"stats" yaml:"stats"`
	Settings   model.Settings  `json:"settings" yaml:"settings"`
}

func (s *Service) Snapshot(ctx context.Context) Snapshot {
	return Snapshot{
		ExportedAt: s.clock.Now(),
		Tasks:      s.store.LoadTasks(ctx),
		Stats:      s.Stats(ctx),
		Settings:   s.store.LoadSettings(ctx),
	}
}
