package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dailyroutine/internal/model"
)

const MainStatsKey = "main_user"

type StatsRepo struct {
	db DBTX
}

func NewStatsRepo(db DBTX) *StatsRepo {
	return &StatsRepo{db: db}
}

// Get returns the stored stats, or nil when nothing has been saved yet.
// Values are returned as stored; callers normalize them. Category and badge
// rows that cannot be read are skipped and reported in the returned slice of
// errors.
func (r *StatsRepo) Get(ctx context.Context) (*model.UserStats, []error, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT xp, level, streak_days, last_completed_date, total_tasks_completed
		FROM user_stats WHERE key = ?
	`, MainStatsKey)

	var (
		s    model.UserStats
		last sql.NullString
	)
	if err := row.Scan(&s.XP, &s.Level, &s.StreakDays, &last, &s.TotalTasksCompleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("stats get: %w", err)
	}
	if last.Valid {
		v := last.String
		s.LastCompletedDate = &v
	}

	cats, skippedCats, err := r.categoryStats(ctx)
	if err != nil {
		return nil, nil, err
	}
	s.CategoryStats = cats

	badges, skippedBadges, err := r.badges(ctx)
	if err != nil {
		return nil, nil, err
	}
	s.Badges = badges
	return &s, append(skippedCats, skippedBadges...), nil
}

func (r *StatsRepo) categoryStats(ctx context.Context) (map[model.Category]int, []error, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT category, completed FROM category_stats`)
	if err != nil {
		return nil, nil, fmt.Errorf("category stats list: %w", err)
	}
	defer rows.Close()

	out := map[model.Category]int{}
	var skipped []error
	for rows.Next() {
		var (
			cat string
			raw any
		)
		if err := rows.Scan(&cat, &raw); err != nil {
			return nil, nil, fmt.Errorf("category stats scan: %w", err)
		}
		n, ok := raw.(int64)
		if !ok {
			skipped = append(skipped, invalidRowError{table: "category_stats", key: cat, msg: fmt.Sprintf("non-integer count %v", raw)})
			continue
		}
		out[model.Category(cat)] = int(n)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("category stats rows: %w", err)
	}
	return out, skipped, nil
}

func (r *StatsRepo) badges(ctx context.Context) ([]model.Badge, []error, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT badge_id, name, description, icon, earned_at_ms
		FROM user_badges
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("badge list: %w", err)
	}
	defer rows.Close()

	out := []model.Badge{}
	var skipped []error
	for rows.Next() {
		var (
			b   model.Badge
			raw any
		)
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Icon, &raw); err != nil {
			return nil, nil, fmt.Errorf("badge scan: %w", err)
		}
		ms, ok := raw.(int64)
		if !ok {
			skipped = append(skipped, invalidRowError{table: "user_badges", key: b.ID, msg: fmt.Sprintf("non-integer earned_at_ms %v", raw)})
			continue
		}
		b.EarnedAt = time.UnixMilli(ms)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("badge rows: %w", err)
	}
	return out, skipped, nil
}

// Save upserts the stats row and category counts and appends any badges not
// yet stored. Stored badges are never updated or removed here.
func (r *StatsRepo) Save(ctx context.Context, s model.UserStats) error {
	var last any
	if s.LastCompletedDate != nil {
		last = *s.LastCompletedDate
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_stats (key, xp, level, streak_days, last_completed_date, total_tasks_completed)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			xp = excluded.xp,
			level = excluded.level,
			streak_days = excluded.streak_days,
			last_completed_date = excluded.last_completed_date,
			total_tasks_completed = excluded.total_tasks_completed
	`, MainStatsKey, s.XP, s.Level, s.StreakDays, last, s.TotalTasksCompleted)
	if err != nil {
		return fmt.Errorf("stats upsert: %w", err)
	}

	for cat, n := range s.CategoryStats {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO category_stats (category, completed) VALUES (?, ?)
			ON CONFLICT(category) DO UPDATE SET completed = excluded.completed
		`, string(cat), n)
		if err != nil {
			return fmt.Errorf("category stats upsert: %w", err)
		}
	}

	for _, b := range s.Badges {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO user_badges (badge_id, position, name, description, icon, earned_at_ms)
			VALUES (?, (SELECT COALESCE(MAX(position), -1) + 1 FROM user_badges), ?, ?, ?, ?)
			ON CONFLICT(badge_id) DO NOTHING
		`, b.ID, b.Name, b.Description, b.Icon, b.EarnedAt.UnixMilli())
		if err != nil {
			return fmt.Errorf("badge insert: %w", err)
		}
	}
	return nil
}

// DeleteAll removes stats, category counts and badges.
func (r *StatsRepo) DeleteAll(ctx context.Context) error {
	for _, stmt := range []string{
		`DELETE FROM user_stats`,
		`DELETE FROM category_stats`,
		`DELETE FROM user_badges`,
	} {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("stats delete all: %w", err)
		}
	}
	return nil
}
