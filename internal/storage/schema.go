package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			duration_minutes INTEGER NOT NULL,
			completed INTEGER DEFAULT 0,
			date TEXT NOT NULL,
			created_at_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS user_stats (
			key TEXT PRIMARY KEY,
			xp INTEGER DEFAULT 0,
			level INTEGER DEFAULT 1,
			streak_days INTEGER DEFAULT 0,
			last_completed_date TEXT,
			total_tasks_completed INTEGER DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS category_stats (
			category TEXT PRIMARY KEY,
			completed INTEGER DEFAULT 0
		);`,
		// Badges are append-only; rows are only removed by a full reset.
		`CREATE TABLE IF NOT EXISTS user_badges (
			badge_id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			icon TEXT NOT NULL,
			earned_at_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			dark_mode INTEGER DEFAULT 0,
			morning_focus_mode INTEGER DEFAULT 0,
			notifications_enabled INTEGER DEFAULT 1,
			reminder_time TEXT DEFAULT '08:00'
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_date ON tasks(date);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_position ON tasks(position);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Columns added after the first release (ignore if already present).
	alterStmts := []string{
		`ALTER TABLE settings ADD COLUMN reminder_time TEXT DEFAULT '08:00';`,
	}
	for _, stmt := range alterStmts {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil && !strings.Contains(err.Error(), "duplicate column") {
			return fmt.Errorf("migrate alter: %w", err)
		}
	}

	return nil
}
