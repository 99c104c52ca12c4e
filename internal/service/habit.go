package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jaekwang-park/habit-api/internal/model"
	"github.com/jaekwang-park/habit-api/internal/repository"
)

type CreateHabitInput struct {
	Name         string
	Description  *string
	Icon         model.Icon
	Color        model.Color
	Weekdays     string
	ReminderTime *string
	UserID       *int64
}

// UpdateHabitInput carries a partial update; nil fields are left unchanged.
// The Clear flags null out an optional field and take precedence over a
// value for the same field.
type UpdateHabitInput struct {
	Name         *string
	Description  *string
	Icon         *model.Icon
	Color        *model.Color
	Weekdays     *string
	ReminderTime *string
	UserID       *int64

	ClearDescription  bool
	ClearReminderTime bool
	ClearUserID       bool
}

type HabitService struct {
	repo repository.HabitRepository
}

func NewHabitService(repo repository.HabitRepository) *HabitService {
	return &HabitService{repo: repo}
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (model.Habit, error) {
	habit := model.Habit{
		Name:         strings.TrimSpace(input.Name),
		Description:  input.Description,
		Icon:         input.Icon,
		Color:        input.Color,
		Weekdays:     input.Weekdays,
		ReminderTime: normalizeReminder(input.ReminderTime),
		UserID:       input.UserID,
	}
	if err := validateHabit(habit); err != nil {
		return model.Habit{}, err
	}

	created, err := s.repo.Create(ctx, habit)
	if err != nil {
		return model.Habit{}, fmt.Errorf("failed to create habit: %w", err)
	}

	return created, nil
}

func (s *HabitService) GetByID(ctx context.Context, id int64) (model.Habit, error) {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Habit{}, ErrNotFound
		}
		return model.Habit{}, fmt.Errorf("failed to get habit: %w", err)
	}
	return habit, nil
}

func (s *HabitService) List(ctx context.Context) ([]model.Habit, error) {
	habits, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	return habits, nil
}

func (s *HabitService) Update(ctx context.Context, id int64, input UpdateHabitInput) (model.Habit, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Habit{}, ErrNotFound
		}
		return model.Habit{}, fmt.Errorf("failed to get habit for update: %w", err)
	}

	if input.Name != nil {
		existing.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		existing.Description = input.Description
	}
	if input.Icon != nil {
		existing.Icon = *input.Icon
	}
	if input.Color != nil {
		existing.Color = *input.Color
	}
	if input.Weekdays != nil {
		existing.Weekdays = *input.Weekdays
	}
	if input.ReminderTime != nil {
		existing.ReminderTime = normalizeReminder(input.ReminderTime)
	}
	if input.UserID != nil {
		existing.UserID = input.UserID
	}
	if input.ClearDescription {
		existing.Description = nil
	}
	if input.ClearReminderTime {
		existing.ReminderTime = nil
	}
	if input.ClearUserID {
		existing.UserID = nil
	}

	if err := validateHabit(existing); err != nil {
		return model.Habit{}, err
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Habit{}, ErrNotFound
		}
		return model.Habit{}, fmt.Errorf("failed to update habit: %w", err)
	}

	return updated, nil
}

// Delete removes the habit together with all of its completion records.
func (s *HabitService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return nil
}

func validateHabit(h model.Habit) error {
	if h.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !h.Icon.IsValid() {
		return fmt.Errorf("%w: invalid icon %q", ErrInvalidInput, h.Icon)
	}
	if !h.Color.IsValid() {
		return fmt.Errorf("%w: invalid color %q", ErrInvalidInput, h.Color)
	}
	if !model.ValidWeekdays(h.Weekdays) {
		return fmt.Errorf("%w: weekdays must mark at least one active (uppercase) day using letters MTWTFSS", ErrInvalidInput)
	}
	if h.ReminderTime != nil && !model.ValidReminderTime(*h.ReminderTime) {
		return fmt.Errorf("%w: reminderTime must be HH:MM", ErrInvalidInput)
	}
	return nil
}

// normalizeReminder treats an empty reminder as no reminder.
func normalizeReminder(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
