package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dailyroutine/internal/model"
)

const mainSettingsKey = "main_user"

type SettingsRepo struct {
	db DBTX
}

func NewSettingsRepo(db DBTX) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get returns the stored settings, or nil when none were saved.
func (r *SettingsRepo) Get(ctx context.Context) (*model.Settings, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT dark_mode, morning_focus_mode, notifications_enabled, reminder_time
		FROM settings WHERE key = ?
	`, mainSettingsKey)

	var (
		dark, focus, notify int
		reminder            sql.NullString
	)
	if err := row.Scan(&dark, &focus, &notify, &reminder); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("settings get: %w", err)
	}
	s := model.DefaultSettings()
	s.DarkMode = dark != 0
	s.MorningFocusMode = focus != 0
	s.NotificationsEnabled = notify != 0
	if reminder.Valid && reminder.String != "" {
		s.ReminderTime = reminder.String
	}
	return &s, nil
}

func (r *SettingsRepo) Save(ctx context.Context, s model.Settings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, dark_mode, morning_focus_mode, notifications_enabled, reminder_time)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			dark_mode = excluded.dark_mode,
			morning_focus_mode = excluded.morning_focus_mode,
			notifications_enabled = excluded.notifications_enabled,
			reminder_time = excluded.reminder_time
	`, mainSettingsKey, boolToInt(s.DarkMode), boolToInt(s.MorningFocusMode), boolToInt(s.NotificationsEnabled), s.ReminderTime)
	if err != nil {
		return fmt.Errorf("settings save: %w", err)
	}
	return nil
}

func (r *SettingsRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM settings`); err != nil {
		return fmt.Errorf("settings delete all: %w", err)
	}
	return nil
}
