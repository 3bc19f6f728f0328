package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dailyroutine/internal/model"
)

type TaskRepo struct {
	db DBTX
}

func NewTaskRepo(db DBTX) *TaskRepo {
	return &TaskRepo{db: db}
}

const taskColumns = `id, title, category, duration_minutes, completed, date, created_at_ms`

// ListAll returns tasks in list order. Rows that fail validation are skipped
// and reported in the returned slice of errors.
func (r *TaskRepo) ListAll(ctx context.Context) ([]model.Task, []error, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY position ASC, created_at_ms ASC`)
	if err != nil {
		return nil, nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var (
		out     []model.Task
		skipped []error
	)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			var bad invalidRowError
			if errors.As(err, &bad) {
				skipped = append(skipped, err)
				continue
			}
			return nil, nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, skipped, nil
}

func (r *TaskRepo) Get(ctx context.Context, id string) (*model.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

// Insert appends t to the end of the list.
func (r *TaskRepo) Insert(ctx context.Context, t model.Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM tasks))
	`, t.ID, t.Title, string(t.Category), t.DurationMinutes, boolToInt(t.Completed), t.Date, t.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("task insert: %w", err)
	}
	return nil
}

// Update rewrites every mutable column; it reports whether the task existed.
func (r *TaskRepo) Update(ctx context.Context, t model.Task) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, category = ?, duration_minutes = ?, completed = ?, date = ?
		WHERE id = ?
	`, t.Title, string(t.Category), t.DurationMinutes, boolToInt(t.Completed), t.Date, t.ID)
	if err != nil {
		return false, fmt.Errorf("task update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("task update rows: %w", err)
	}
	return n > 0, nil
}

func (r *TaskRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("task delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("task delete rows: %w", err)
	}
	return n > 0, nil
}

// ReplaceAll stores tasks as the complete ordered list. Run it inside a
// transaction so readers never see a half-written list.
func (r *TaskRepo) ReplaceAll(ctx context.Context, tasks []model.Task) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("task clear: %w", err)
	}
	for i, t := range tasks {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO tasks (`+taskColumns+`, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, t.ID, t.Title, string(t.Category), t.DurationMinutes, boolToInt(t.Completed), t.Date, t.CreatedAt.UnixMilli(), i)
		if err != nil {
			return fmt.Errorf("task insert %s: %w", t.ID, err)
		}
	}
	return nil
}

func (r *TaskRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("task delete all: %w", err)
	}
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

// invalidRowError marks a row that was read but holds values the model
// cannot represent.
type invalidRowError struct {
	table string
	key   string
	msg   string
}

func (e invalidRowError) Error() string {
	return fmt.Sprintf("%s row %q: %s", e.table, e.key, e.msg)
}

func scanTask(row scanner) (*model.Task, error) {
	var (
		id        string
		title     string
		category  string
		duration  int
		completed int
		date      string
		createdMS int64
	)
	if err := row.Scan(&id, &title, &category, &duration, &completed, &date, &createdMS); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("task scan: %w", err)
	}

	cat := model.Category(category)
	if !cat.IsValid() {
		return nil, invalidRowError{table: "tasks", key: id, msg: fmt.Sprintf("unknown category %q", category)}
	}
	if duration <= 0 {
		return nil, invalidRowError{table: "tasks", key: id, msg: fmt.Sprintf("non-positive duration %d", duration)}
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return nil, invalidRowError{table: "tasks", key: id, msg: fmt.Sprintf("bad date %q", date)}
	}

	return &model.Task{
		ID:              id,
		Title:           title,
		Category:        cat,
		DurationMinutes: duration,
		Completed:       completed != 0,
		Date:            date,
		CreatedAt:       time.UnixMilli(createdMS),
	}, nil
}
