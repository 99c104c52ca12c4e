package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jaekwang-park/habit-api/internal/model"
)

// SQLite keeps timestamps as RFC 3339 text.
const sqliteTimeLayout = time.RFC3339Nano

type SQLiteHabitRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteHabit(db *sql.DB) *SQLiteHabitRepository {
	return &SQLiteHabitRepository{db: db, now: time.Now}
}

func (r *SQLiteHabitRepository) Create(ctx context.Context, habit model.Habit) (model.Habit, error) {
	query := `
		INSERT INTO habits (name, description, icon, color, weekdays, reminder_time, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + habitColumns

	row := r.db.QueryRowContext(ctx, query,
		habit.Name, habit.Description, string(habit.Icon), string(habit.Color),
		habit.Weekdays, habit.ReminderTime, habit.UserID,
		r.now().UTC().Format(sqliteTimeLayout),
	)

	return scanSQLiteHabit(row)
}

func (r *SQLiteHabitRepository) GetByID(ctx context.Context, id int64) (model.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	return scanSQLiteHabit(row)
}

func (r *SQLiteHabitRepository) Update(ctx context.Context, habit model.Habit) (model.Habit, error) {
	query := `
		UPDATE habits
		SET name = ?, description = ?, icon = ?, color = ?,
		    weekdays = ?, reminder_time = ?, user_id = ?
		WHERE id = ?
		RETURNING ` + habitColumns

	row := r.db.QueryRowContext(ctx, query,
		habit.Name, habit.Description, string(habit.Icon), string(habit.Color),
		habit.Weekdays, habit.ReminderTime, habit.UserID, habit.ID,
	)

	return scanSQLiteHabit(row)
}

func (r *SQLiteHabitRepository) Delete(ctx context.Context, id int64) error {
	return deleteHabit(ctx, r.db, `DELETE FROM habits WHERE id = ?`, id)
}

func (r *SQLiteHabitRepository) List(ctx context.Context) ([]model.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer rows.Close()

	habits := []model.Habit{}
	for rows.Next() {
		h, err := scanSQLiteHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate habits: %w", err)
	}

	return habits, nil
}

func scanSQLiteHabit(row scannable) (model.Habit, error) {
	var h model.Habit
	var createdAt string
	err := row.Scan(
		&h.ID, &h.Name, &h.Description, &h.Icon, &h.Color,
		&h.Weekdays, &h.ReminderTime, &h.UserID, &createdAt,
	)
	if err != nil {
		return model.Habit{}, fmt.Errorf("failed to scan habit: %w", err)
	}

	h.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt)
	if err != nil {
		return model.Habit{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return h, nil
}

var _ HabitRepository = (*SQLiteHabitRepository)(nil)
