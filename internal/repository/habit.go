package repository

import (
	"context"

	"github.com/jaekwang-park/habit-api/internal/model"
)

// HabitRepository is the habit registry. Missing rows are reported as sql.ErrNoRows.
type HabitRepository interface {
	Create(ctx context.Context, habit model.Habit) (model.Habit, error)
	GetByID(ctx context.Context, id int64) (model.Habit, error)
	Update(ctx context.Context, habit model.Habit) (model.Habit, error)
	// Delete removes the habit and, through the foreign key, all of its completions.
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Habit, error)
}
