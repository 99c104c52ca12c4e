// Package stats derives streak and completion-rate statistics from a habit's
// completion history.
package stats

import (
	"math"
	"slices"
	"strings"

	"github.com/jaekwang-park/habit-api/internal/model"
)

// Compute builds a statistics snapshot from one habit's completion records.
// Records may arrive in any order. HabitID and ID are left for the caller to set.
//
// Streaks count consecutive records, not consecutive calendar days: a date with
// no record does not break a run, only a record with Completed=false does. The
// current streak is not checked against today's date.
func Compute(records []model.Completion) model.HabitStats {
	total := len(records)
	completed := 0
	for _, r := range records {
		if r.Completed {
			completed++
		}
	}

	return model.HabitStats{
		CurrentStreak:    currentStreak(records),
		LongestStreak:    longestStreak(records),
		CompletionRate:   completionRate(completed, total),
		TotalCompletions: completed,
		TotalDays:        total,
	}
}

func completionRate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func currentStreak(records []model.Completion) int {
	desc := sortedByDate(records)
	slices.Reverse(desc)

	streak := 0
	for _, r := range desc {
		if !r.Completed {
			break
		}
		streak++
	}
	return streak
}

func longestStreak(records []model.Completion) int {
	longest, run := 0, 0
	for _, r := range sortedByDate(records) {
		if !r.Completed {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	return longest
}

// sortedByDate returns an ascending copy; the input is never reordered.
func sortedByDate(records []model.Completion) []model.Completion {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b model.Completion) int {
		return strings.Compare(a.Date, b.Date)
	})
	return out
}
