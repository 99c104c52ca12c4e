package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jaekwang-park/habit-api/internal/model"
)

const habitColumns = `id, name, description, icon, color, weekdays, reminder_time, user_id, created_at`

type PostgresHabitRepository struct {
	db *sql.DB
}

func NewPostgresHabit(db *sql.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

func (r *PostgresHabitRepository) Create(ctx context.Context, habit model.Habit) (model.Habit, error) {
	query := `
		INSERT INTO habits (name, description, icon, color, weekdays, reminder_time, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + habitColumns

	row := r.db.QueryRowContext(ctx, query,
		habit.Name, habit.Description, string(habit.Icon), string(habit.Color),
		habit.Weekdays, habit.ReminderTime, habit.UserID,
	)

	return scanHabit(row)
}

func (r *PostgresHabitRepository) GetByID(ctx context.Context, id int64) (model.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	return scanHabit(row)
}

func (r *PostgresHabitRepository) Update(ctx context.Context, habit model.Habit) (model.Habit, error) {
	query := `
		UPDATE habits
		SET name = $1, description = $2, icon = $3, color = $4,
		    weekdays = $5, reminder_time = $6, user_id = $7
		WHERE id = $8
		RETURNING ` + habitColumns

	row := r.db.QueryRowContext(ctx, query,
		habit.Name, habit.Description, string(habit.Icon), string(habit.Color),
		habit.Weekdays, habit.ReminderTime, habit.UserID, habit.ID,
	)

	return scanHabit(row)
}

func (r *PostgresHabitRepository) Delete(ctx context.Context, id int64) error {
	return deleteHabit(ctx, r.db, `DELETE FROM habits WHERE id = $1`, id)
}

func (r *PostgresHabitRepository) List(ctx context.Context) ([]model.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer rows.Close()

	habits := []model.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
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

func scanHabit(row scannable) (model.Habit, error) {
	var h model.Habit
	err := row.Scan(
		&h.ID, &h.Name, &h.Description, &h.Icon, &h.Color,
		&h.Weekdays, &h.ReminderTime, &h.UserID, &h.CreatedAt,
	)
	if err != nil {
		return model.Habit{}, fmt.Errorf("failed to scan habit: %w", err)
	}
	return h, nil
}

func deleteHabit(ctx context.Context, db *sql.DB, query string, id int64) error {
	result, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

var _ HabitRepository = (*PostgresHabitRepository)(nil)
