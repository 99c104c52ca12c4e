package model

// HabitStats is the derived statistics snapshot for one habit. It is never
// persisted; ID mirrors HabitID.
type HabitStats struct {
	ID               int64 `json:"id"`
	HabitID          int64 `json:"habitId"`
	CurrentStreak    int   `json:"currentStreak"`
	LongestStreak    int   `json:"longestStreak"`
	CompletionRate   int   `json:"completionRate"`
	TotalCompletions int   `json:"totalCompletions"`
	TotalDays        int   `json:"totalDays"`
}
