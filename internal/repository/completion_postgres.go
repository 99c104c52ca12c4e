package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jaekwang-park/habit-api/internal/model"
)

const completionColumns = `id, habit_id, to_char(date, 'YYYY-MM-DD'), completed, notes, created_at`

type PostgresCompletionRepository struct {
	db *sql.DB
}

func NewPostgresCompletion(db *sql.DB) *PostgresCompletionRepository {
	return &PostgresCompletionRepository{db: db}
}

func (r *PostgresCompletionRepository) Upsert(ctx context.Context, c model.Completion) (model.Completion, error) {
	query := `
		INSERT INTO habit_completions (habit_id, date, completed, notes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (habit_id, date)
		DO UPDATE SET completed = EXCLUDED.completed, notes = EXCLUDED.notes
		RETURNING ` + completionColumns

	row := r.db.QueryRowContext(ctx, query, c.HabitID, c.Date, c.Completed, c.Notes)
	return scanCompletion(row)
}

func (r *PostgresCompletionRepository) ListByHabit(ctx context.Context, habitID int64, dates model.DateRange) ([]model.Completion, error) {
	query := `SELECT ` + completionColumns + ` FROM habit_completions WHERE habit_id = $1`
	args := []any{habitID}
	argIdx := 2

	if dates.Start != "" {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, dates.Start)
		argIdx++
	}
	if dates.End != "" {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, dates.End)
	}
	query += " ORDER BY date, id"

	return queryCompletions(ctx, r.db, query, args...)
}

func (r *PostgresCompletionRepository) List(ctx context.Context, dates model.DateRange) ([]model.Completion, error) {
	query := `SELECT ` + completionColumns + ` FROM habit_completions WHERE TRUE`
	args := []any{}
	argIdx := 1

	if dates.Start != "" {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, dates.Start)
		argIdx++
	}
	if dates.End != "" {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, dates.End)
	}
	query += " ORDER BY date, id"

	return queryCompletions(ctx, r.db, query, args...)
}

func scanCompletion(row scannable) (model.Completion, error) {
	var c model.Completion
	err := row.Scan(&c.ID, &c.HabitID, &c.Date, &c.Completed, &c.Notes, &c.CreatedAt)
	if err != nil {
		return model.Completion{}, fmt.Errorf("failed to scan completion: %w", err)
	}
	return c, nil
}

func queryCompletions(ctx context.Context, db *sql.DB, query string, args ...any) ([]model.Completion, error) {
	return collectCompletions(ctx, db, scanCompletion, query, args...)
}

func collectCompletions(
	ctx context.Context,
	db *sql.DB,
	scan func(scannable) (model.Completion, error),
	query string,
	args ...any,
) ([]model.Completion, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	defer rows.Close()

	completions := []model.Completion{}
	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate completions: %w", err)
	}

	return completions, nil
}

var _ CompletionRepository = (*PostgresCompletionRepository)(nil)
