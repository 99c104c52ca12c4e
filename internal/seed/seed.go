package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/jaekwang-park/habit-api/internal/model"
	"github.com/jaekwang-park/habit-api/internal/repository"
)

const (
	days = 30
	// a day counts as completed when the roll lands above this
	missThreshold = 0.3
)

// Seeder fills an empty store with demo habits and a month of history.
type Seeder struct {
	habits      repository.HabitRepository
	completions repository.CompletionRepository
	logger      *slog.Logger

	// overridable in tests
	Rand func() float64
	Now  func() time.Time
}

func New(habits repository.HabitRepository, completions repository.CompletionRepository, logger *slog.Logger) *Seeder {
	return &Seeder{
		habits:      habits,
		completions: completions,
		logger:      logger,
		Rand:        rand.Float64,
		Now:         time.Now,
	}
}

func sampleHabits() []model.Habit {
	return []model.Habit{
		{Name: "Daily Meditation", Description: strPtr("10 minutes"), Icon: model.IconMeditation, Color: model.ColorGreen, Weekdays: model.AllDays},
		{Name: "Read 30 Minutes", Description: strPtr("Fiction book"), Icon: model.IconBook, Color: model.ColorOrange, Weekdays: model.AllDays},
		{Name: "Exercise", Description: strPtr("30 minutes workout"), Icon: model.IconExercise, Color: model.ColorBlue, Weekdays: model.AllDays},
		{Name: "Learn a Language", Description: strPtr("15 minutes of Spanish"), Icon: model.IconLanguage, Color: model.ColorYellow, Weekdays: model.AllDays},
	}
}

// Run seeds the store unless it already holds habits. It reports whether
// anything was written.
//
// Seeding is best-effort rather than transactional: if a write fails, the
// habits created so far are deleted again (their completions go with them
// through the cascade) so the next run starts from an empty store. A crash
// mid-run can still leave a partial seed behind.
func (s *Seeder) Run(ctx context.Context) (bool, error) {
	existing, err := s.habits.List(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check existing habits: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info("seed skipped", "existing_habits", len(existing))
		return false, nil
	}

	created, err := s.populate(ctx)
	if err != nil {
		if undoErr := s.undo(context.WithoutCancel(ctx), created); undoErr != nil {
			return false, errors.Join(err, undoErr)
		}
		return false, err
	}

	s.logger.Info("seed complete", "habits", len(created), "days", days)
	return true, nil
}

// populate returns every habit it managed to create, even on error, so the
// caller can remove them.
func (s *Seeder) populate(ctx context.Context) ([]model.Habit, error) {
	created := make([]model.Habit, 0, 4)
	for _, h := range sampleHabits() {
		habit, err := s.habits.Create(ctx, h)
		if err != nil {
			return created, fmt.Errorf("failed to create habit %q: %w", h.Name, err)
		}
		created = append(created, habit)
	}

	today := s.Now().UTC()
	for i := range days {
		date := today.AddDate(0, 0, -i).Format(model.DateLayout)
		for _, habit := range created {
			c := model.Completion{
				HabitID:   habit.ID,
				Date:      date,
				Completed: s.Rand() > missThreshold,
			}
			if _, err := s.completions.Upsert(ctx, c); err != nil {
				return created, fmt.Errorf("failed to seed completion for habit %d on %s: %w", habit.ID, date, err)
			}
		}
	}
	return created, nil
}

func (s *Seeder) undo(ctx context.Context, created []model.Habit) error {
	var errs []error
	for _, h := range created {
		if err := s.habits.Delete(ctx, h.ID); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove seeded habit %d: %w", h.ID, err))
		}
	}
	if len(errs) > 0 {
		s.logger.Error("seed cleanup incomplete", "habits", len(created), "failures", len(errs))
		return errors.Join(errs...)
	}
	s.logger.Warn("seed aborted, partial data removed", "habits", len(created))
	return nil
}

func strPtr(s string) *string { return &s }
