// Package availability validates doctor availability time windows and
// composes them into a schedule.
package availability

import (
	"github.com/jwalitptl/dravail-api/internal/model"
)

// Bounds is the inclusive range a slot's times must fall in.
type Bounds struct {
	Min model.ClockTime
	Max model.ClockTime
}

// NewBounds builds bounds from hour/minute pairs.
func NewBounds(minHour, minMinute, maxHour, maxMinute int) Bounds {
	return Bounds{
		Min: model.NewClockTime(minHour, minMinute),
		Max: model.NewClockTime(maxHour, maxMinute),
	}
}

var (
	MorningBounds = NewBounds(0, 0, 14, 0)
	EveningBounds = NewBounds(14, 0, 23, 45)
)

const (
	LabelMorning        = "Morning"
	LabelEvening        = "Evening"
	LabelWeekendMorning = "Weekend Morning"
	LabelWeekendEvening = "Weekend Evening"
	LabelCurrent        = "Current"
)

var quarterHours = map[int]bool{0: true, 15: true, 30: true, 45: true}

// ValidateWindow checks one window against its slot bounds. Checks run in
// order and the first failure is returned: quarter-hour minutes, start not
// before the lower bound, end not after the upper bound, start strictly
// before end.
func ValidateWindow(w model.TimeWindow, b Bounds, label string) error {
	start := w.Start.Normalized()
	end := w.End.Normalized()

	if !quarterHours[start.Minute()] || !quarterHours[end.Minute()] {
		return invalidMinutes(label)
	}
	if start.Before(b.Min.Normalized().Time) {
		return invalidStartTime(label)
	}
	if end.After(b.Max.Normalized().Time) {
		return invalidEndTime(label)
	}
	if !start.Before(end.Time) {
		return startNotBeforeEnd(label)
	}
	return nil
}

// ValidateMorning checks a window against the morning slot.
func ValidateMorning(w model.TimeWindow, label string) error {
	return ValidateWindow(w, MorningBounds, label)
}

// ValidateEvening checks a window against the evening slot.
func ValidateEvening(w model.TimeWindow, label string) error {
	return ValidateWindow(w, EveningBounds, label)
}
