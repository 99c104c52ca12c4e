package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jaekwang-park/habit-api/internal/metrics"
	"github.com/jaekwang-park/habit-api/internal/model"
	"github.com/jaekwang-park/habit-api/internal/repository"
	"github.com/jaekwang-park/habit-api/internal/stats"
)

const defaultStatsConcurrency = 4

// StatsService aggregates habit statistics over the full completion history.
// Snapshots are recomputed on every call.
type StatsService struct {
	habits      repository.HabitRepository
	completions repository.CompletionRepository
	concurrency int
}

// NewStatsService builds the aggregator. concurrency bounds how many habits
// are computed at once by ForAll; values below 1 fall back to the default.
func NewStatsService(habits repository.HabitRepository, completions repository.CompletionRepository, concurrency int) *StatsService {
	if concurrency < 1 {
		concurrency = defaultStatsConcurrency
	}
	return &StatsService{
		habits:      habits,
		completions: completions,
		concurrency: concurrency,
	}
}

// ForHabit returns ErrNotFound when the habit does not exist.
func (s *StatsService) ForHabit(ctx context.Context, habitID int64) (model.HabitStats, error) {
	start := time.Now()

	if _, err := s.habits.GetByID(ctx, habitID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.HabitStats{}, ErrNotFound
		}
		return model.HabitStats{}, fmt.Errorf("failed to get habit for stats: %w", err)
	}

	snapshot, err := s.compute(ctx, habitID)
	if err != nil {
		return model.HabitStats{}, err
	}

	metrics.RecordStats(metrics.ScopeSingle, 1, time.Since(start))
	return snapshot, nil
}

// ForAll computes a snapshot for every registered habit. Any single failure
// fails the whole call. Results follow registry order.
func (s *StatsService) ForAll(ctx context.Context) ([]model.HabitStats, error) {
	start := time.Now()

	habits, err := s.habits.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits for stats: %w", err)
	}

	results := make([]model.HabitStats, len(habits))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, h := range habits {
		g.Go(func() error {
			snapshot, err := s.compute(gctx, h.ID)
			if err != nil {
				return err
			}
			results[i] = snapshot
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics.RecordStats(metrics.ScopeAll, len(results), time.Since(start))
	return results, nil
}

func (s *StatsService) compute(ctx context.Context, habitID int64) (model.HabitStats, error) {
	records, err := s.completions.ListByHabit(ctx, habitID, model.DateRange{})
	if err != nil {
		return model.HabitStats{}, fmt.Errorf("failed to load completions for habit %d: %w", habitID, err)
	}

	snapshot := stats.Compute(records)
	snapshot.ID = habitID
	snapshot.HabitID = habitID
	return snapshot, nil
}
