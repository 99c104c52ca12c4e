package service_test

import (
	"context"
	"strings"
	"time"

	"github.com/jaekwang-park/habit-api/internal/model"
)

// mockHabitRepo implements repository.HabitRepository for testing
type mockHabitRepo struct {
	createFn  func(ctx context.Context, habit model.Habit) (model.Habit, error)
	getByIDFn func(ctx context.Context, id int64) (model.Habit, error)
	updateFn  func(ctx context.Context, habit model.Habit) (model.Habit, error)
	deleteFn  func(ctx context.Context, id int64) error
	listFn    func(ctx context.Context) ([]model.Habit, error)
}

func (m *mockHabitRepo) Create(ctx context.Context, habit model.Habit) (model.Habit, error) {
	return m.createFn(ctx, habit)
}
func (m *mockHabitRepo) GetByID(ctx context.Context, id int64) (model.Habit, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockHabitRepo) Update(ctx context.Context, habit model.Habit) (model.Habit, error) {
	return m.updateFn(ctx, habit)
}
func (m *mockHabitRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}
func (m *mockHabitRepo) List(ctx context.Context) ([]model.Habit, error) {
	return m.listFn(ctx)
}

// mockCompletionRepo implements repository.CompletionRepository for testing
type mockCompletionRepo struct {
	upsertFn      func(ctx context.Context, c model.Completion) (model.Completion, error)
	listByHabitFn func(ctx context.Context, habitID int64, dates model.DateRange) ([]model.Completion, error)
	listFn        func(ctx context.Context, dates model.DateRange) ([]model.Completion, error)
}

func (m *mockCompletionRepo) Upsert(ctx context.Context, c model.Completion) (model.Completion, error) {
	return m.upsertFn(ctx, c)
}
func (m *mockCompletionRepo) ListByHabit(ctx context.Context, habitID int64, dates model.DateRange) ([]model.Completion, error) {
	return m.listByHabitFn(ctx, habitID, dates)
}
func (m *mockCompletionRepo) List(ctx context.Context, dates model.DateRange) ([]model.Completion, error) {
	return m.listFn(ctx, dates)
}

var now = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func sampleHabit() model.Habit {
	desc := "10 minutes"
	return model.Habit{
		ID:          1,
		Name:        "Daily Meditation",
		Description: &desc,
		Icon:        model.IconMeditation,
		Color:       model.ColorGreen,
		Weekdays:    model.AllDays,
		CreatedAt:   now,
	}
}

func ptr[T any](v T) *T { return &v }

func containsStr(s, substr string) bool {
	return strings.Contains(s, substr)
}
