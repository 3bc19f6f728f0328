package storage

import (
	"context"
	"database/sql"
	"time"

	"dailyroutine/internal/logger"
	"dailyroutine/internal/model"
)

// Store is the snapshot-level persistence API. Loads never fail: any read
// error or unusable value is logged and replaced by its default.
type Store struct {
	db       *sql.DB // nil when bound to a transaction
	tasks    *TaskRepo
	stats    *StatsRepo
	settings *SettingsRepo
}

func NewStore(db *sql.DB) *Store {
	return newStore(db, db)
}

func newStore(db *sql.DB, q DBTX) *Store {
	return &Store{
		db:       db,
		tasks:    NewTaskRepo(q),
		stats:    NewStatsRepo(q),
		settings: NewSettingsRepo(q),
	}
}

func (s *Store) Tasks() *TaskRepo        { return s.tasks }
func (s *Store) Stats() *StatsRepo       { return s.stats }
func (s *Store) Settings() *SettingsRepo { return s.settings }

// Tx runs fn with a Store bound to one transaction. Nested calls reuse the
// outer transaction.
func (s *Store) Tx(ctx context.Context, fn func(tx *Store) error) error {
	if s.db == nil {
		return fn(s)
	}
	return WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(newStore(nil, tx))
	})
}

func (s *Store) LoadTasks(ctx context.Context) []model.Task {
	tasks, skipped, err := s.tasks.ListAll(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("load tasks failed, using empty list")
		return []model.Task{}
	}
	for _, e := range skipped {
		logger.Warn().Err(e).Msg("skipping unreadable task")
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks
}

func (s *Store) SaveTasks(ctx context.Context, tasks []model.Task) error {
	return s.Tx(ctx, func(tx *Store) error {
		return tx.tasks.ReplaceAll(ctx, tasks)
	})
}

func (s *Store) LoadStats(ctx context.Context) model.UserStats {
	stats, err := s.ReadStats(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("load stats failed, using defaults")
		return model.DefaultUserStats()
	}
	return stats
}

// ReadStats is LoadStats for read-modify-write callers: unreadable category
// or badge rows are skipped and stored values normalized, but a failed read of
// the stats record is returned so it is never overwritten with defaults.
func (s *Store) ReadStats(ctx context.Context) (model.UserStats, error) {
	stored, skipped, err := s.stats.Get(ctx)
	if err != nil {
		return model.UserStats{}, err
	}
	for _, e := range skipped {
		logger.Warn().Err(e).Msg("skipping unreadable stats row")
	}
	if stored == nil {
		return model.DefaultUserStats(), nil
	}
	return normalizeStats(*stored), nil
}

func (s *Store) SaveStats(ctx context.Context, stats model.UserStats) error {
	return s.Tx(ctx, func(tx *Store) error {
		return tx.stats.Save(ctx, stats)
	})
}

func (s *Store) LoadSettings(ctx context.Context) model.Settings {
	stored, err := s.settings.Get(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("load settings failed, using defaults")
		return model.DefaultSettings()
	}
	if stored == nil {
		return model.DefaultSettings()
	}
	return *stored
}

func (s *Store) SaveSettings(ctx context.Context, settings model.Settings) error {
	return s.settings.Save(ctx, settings)
}

// ClearAll removes every task, the stats and the settings.
func (s *Store) ClearAll(ctx context.Context) error {
	return s.Tx(ctx, func(tx *Store) error {
		if err := tx.tasks.DeleteAll(ctx); err != nil {
			return err
		}
		if err := tx.stats.DeleteAll(ctx); err != nil {
			return err
		}
		return tx.settings.DeleteAll(ctx)
	})
}

// normalizeStats clamps counters, fills missing categories and drops values
// that cannot be valid. Level is left as stored.
func normalizeStats(in model.UserStats) model.UserStats {
	out := in.Clone()
	if out.XP < 0 {
		logger.Warn().Int("xp", out.XP).Msg("negative stored xp, clamping")
		out.XP = 0
	}
	if out.Level < 1 {
		out.Level = 1
	}
	if out.StreakDays < 0 {
		out.StreakDays = 0
	}
	if out.TotalTasksCompleted < 0 {
		out.TotalTasksCompleted = 0
	}
	for c, n := range out.CategoryStats {
		if !c.IsValid() {
			logger.Warn().Str("category", string(c)).Msg("dropping unknown category count")
			delete(out.CategoryStats, c)
			continue
		}
		if n < 0 {
			out.CategoryStats[c] = 0
		}
	}
	if out.LastCompletedDate != nil {
		if _, err := time.Parse(model.DateLayout, *out.LastCompletedDate); err != nil {
			logger.Warn().Str("date", *out.LastCompletedDate).Msg("dropping unparsable last completed date")
			out.LastCompletedDate = nil
		}
	}
	return out
}
