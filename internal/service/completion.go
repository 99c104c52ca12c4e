package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jaekwang-park/habit-api/internal/metrics"
	"github.com/jaekwang-park/habit-api/internal/model"
	"github.com/jaekwang-park/habit-api/internal/repository"
)

type UpsertCompletionInput struct {
	HabitID   int64
	Date      string
	Completed *bool
	Notes     *string
}

type CompletionService struct {
	repo   repository.CompletionRepository
	habits repository.HabitRepository
}

func NewCompletionService(repo repository.CompletionRepository, habits repository.HabitRepository) *CompletionService {
	return &CompletionService{repo: repo, habits: habits}
}

// Upsert records whether a habit was completed on a date, overwriting any
// earlier record for the same habit and date.
func (s *CompletionService) Upsert(ctx context.Context, input UpsertCompletionInput) (model.Completion, error) {
	if input.HabitID <= 0 {
		return model.Completion{}, fmt.Errorf("%w: habitId is required", ErrInvalidInput)
	}
	if !model.ValidDate(input.Date) {
		return model.Completion{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if input.Completed == nil {
		return model.Completion{}, fmt.Errorf("%w: completed is required", ErrInvalidInput)
	}

	if _, err := s.habits.GetByID(ctx, input.HabitID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Completion{}, fmt.Errorf("%w: habit %d does not exist", ErrInvalidInput, input.HabitID)
		}
		return model.Completion{}, fmt.Errorf("failed to check habit: %w", err)
	}

	saved, err := s.repo.Upsert(ctx, model.Completion{
		HabitID:   input.HabitID,
		Date:      input.Date,
		Completed: *input.Completed,
		Notes:     input.Notes,
	})
	if err != nil {
		return model.Completion{}, fmt.Errorf("failed to upsert completion: %w", err)
	}

	metrics.RecordCompletionUpsert(saved.Completed)
	return saved, nil
}

func (s *CompletionService) ListForHabit(ctx context.Context, habitID int64, dates model.DateRange) ([]model.Completion, error) {
	if err := validateRange(dates); err != nil {
		return nil, err
	}

	completions, err := s.repo.ListByHabit(ctx, habitID, dates)
	if err != nil {
		return nil, fmt.Errorf("failed to list habit completions: %w", err)
	}
	return completions, nil
}

func (s *CompletionService) ListAll(ctx context.Context, dates model.DateRange) ([]model.Completion, error) {
	if err := validateRange(dates); err != nil {
		return nil, err
	}

	completions, err := s.repo.List(ctx, dates)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	return completions, nil
}

func validateRange(dates model.DateRange) error {
	if dates.Start != "" && !model.ValidDate(dates.Start) {
		return fmt.Errorf("%w: startDate must be YYYY-MM-DD", ErrInvalidInput)
	}
	if dates.End != "" && !model.ValidDate(dates.End) {
		return fmt.Errorf("%w: endDate must be YYYY-MM-DD", ErrInvalidInput)
	}
	if dates.Start != "" && dates.End != "" && dates.Start > dates.End {
		return fmt.Errorf("%w: startDate must not be after endDate", ErrInvalidInput)
	}
	return nil
}
