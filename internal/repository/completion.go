package repository

import (
	"context"

	"github.com/jaekwang-park/habit-api/internal/model"
)

// CompletionRepository is the completion ledger, keyed by (habit_id, date).
type CompletionRepository interface {
	// Upsert inserts the record or overwrites completed/notes of the existing
	// record for the same habit and date.
	Upsert(ctx context.Context, c model.Completion) (model.Completion, error)
	ListByHabit(ctx context.Context, habitID int64, dates model.DateRange) ([]model.Completion, error)
	List(ctx context.Context, dates model.DateRange) ([]model.Completion, error)
}
