package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jaekwang-park/habit-api/internal/model"
)

const sqliteCompletionColumns = `id, habit_id, date, completed, notes, created_at`

type SQLiteCompletionRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteCompletion(db *sql.DB) *SQLiteCompletionRepository {
	return &SQLiteCompletionRepository{db: db, now: time.Now}
}

func (r *SQLiteCompletionRepository) Upsert(ctx context.Context, c model.Completion) (model.Completion, error) {
	query := `
		INSERT INTO habit_completions (habit_id, date, completed, notes, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (habit_id, date)
		DO UPDATE SET completed = excluded.completed, notes = excluded.notes
		RETURNING ` + sqliteCompletionColumns

	row := r.db.QueryRowContext(ctx, query,
		c.HabitID, c.Date, c.Completed, c.Notes,
		r.now().UTC().Format(sqliteTimeLayout),
	)
	return scanSQLiteCompletion(row)
}

func (r *SQLiteCompletionRepository) ListByHabit(ctx context.Context, habitID int64, dates model.DateRange) ([]model.Completion, error) {
	query := `SELECT ` + sqliteCompletionColumns + ` FROM habit_completions WHERE habit_id = ?`
	query, args := sqliteDateFilter(query, []any{habitID}, dates)

	return collectCompletions(ctx, r.db, scanSQLiteCompletion, query, args...)
}

func (r *SQLiteCompletionRepository) List(ctx context.Context, dates model.DateRange) ([]model.Completion, error) {
	query := `SELECT ` + sqliteCompletionColumns + ` FROM habit_completions WHERE 1 = 1`
	query, args := sqliteDateFilter(query, nil, dates)

	return collectCompletions(ctx, r.db, scanSQLiteCompletion, query, args...)
}

func sqliteDateFilter(query string, args []any, dates model.DateRange) (string, []any) {
	if dates.Start != "" {
		query += " AND date >= ?"
		args = append(args, dates.Start)
	}
	if dates.End != "" {
		query += " AND date <= ?"
		args = append(args, dates.End)
	}
	return query + " ORDER BY date, id", args
}

func scanSQLiteCompletion(row scannable) (model.Completion, error) {
	var c model.Completion
	var createdAt string
	err := row.Scan(&c.ID, &c.HabitID, &c.Date, &c.Completed, &c.Notes, &createdAt)
	if err != nil {
		return model.Completion{}, fmt.Errorf("failed to scan completion: %w", err)
	}

	c.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt)
	if err != nil {
		return model.Completion{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return c, nil
}

var _ CompletionRepository = (*SQLiteCompletionRepository)(nil)
