package model

import "time"

// DateLayout is the calendar-date wire format. Dates in this layout sort
// lexicographically in chronological order.
const DateLayout = "2006-01-02"

func ValidDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

type Completion struct {
	ID        int64     `json:"id"`
	HabitID   int64     `json:"habitId"`
	Date      string    `json:"date"`
	Completed bool      `json:"completed"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// DateRange bounds a completion listing. Empty bounds are open; both ends are inclusive.
type DateRange struct {
	Start string
	End   string
}

func (r DateRange) IsZero() bool {
	return r.Start == "" && r.End == ""
}
