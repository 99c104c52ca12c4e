package model

import (
	"strings"
	"time"
)

type Icon string

const (
	IconMeditation Icon = "meditation"
	IconBook       Icon = "book"
	IconExercise   Icon = "exercise"
	IconLanguage   Icon = "language"
	IconWorkout    Icon = "workout"
	IconCoffee     Icon = "coffee"
	IconBike       Icon = "bike"
	IconMusic      Icon = "music"
	IconWrite      Icon = "write"
	IconHealth     Icon = "health"
	IconTimer      Icon = "timer"
	IconCode       Icon = "code"
)

var validIcons = map[Icon]bool{
	IconMeditation: true,
	IconBook:       true,
	IconExercise:   true,
	IconLanguage:   true,
	IconWorkout:    true,
	IconCoffee:     true,
	IconBike:       true,
	IconMusic:      true,
	IconWrite:      true,
	IconHealth:     true,
	IconTimer:      true,
	IconCode:       true,
}

func (i Icon) IsValid() bool {
	return validIcons[i]
}

type Color string

const (
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorOrange Color = "orange"
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
	ColorPurple Color = "purple"
)

func (c Color) IsValid() bool {
	switch c {
	case ColorGreen, ColorBlue, ColorOrange, ColorYellow, ColorRed, ColorPurple:
		return true
	}
	return false
}

// AllDays is the schedule with every weekday active.
const AllDays = "MTWTFSS"

// ValidWeekdays reports whether s is a usable schedule string: one letter per
// weekday (Mon..Sun), uppercase for active days and lowercase for inactive ones.
// At least one day must be active. The schedule is display-only; statistics
// never consult it.
func ValidWeekdays(s string) bool {
	if s == "" || len(s) > 7 {
		return false
	}
	active := false
	for _, r := range s {
		if !strings.ContainsRune("MTWFSmtwfs", r) {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			active = true
		}
	}
	return active
}

// ValidReminderTime accepts HH:MM in 24-hour form.
func ValidReminderTime(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

type Habit struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	Icon         Icon      `json:"icon"`
	Color        Color     `json:"color"`
	Weekdays     string    `json:"weekdays"`
	ReminderTime *string   `json:"reminderTime"`
	UserID       *int64    `json:"userId"`
	CreatedAt    time.Time `json:"createdAt"`
}
