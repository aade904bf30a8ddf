package progress

import (
	"math"
	"time"

	"habitkit/internal/models"
)

// TaperedGoal computes the effective daily goal for a tapering habit on the
// given day by linear interpolation between the schedule's start and target
// values, clamped to the schedule bounds: before the start date it returns
// the start value, after the end date the target value.
//
// Schedules with an end date on or before the start date are rejected at
// habit configuration time; if one is ever seen here it degrades to the
// target value rather than dividing by zero.
func TaperedGoal(h *models.Habit, day time.Time) int {
	start := DateOf(*h.TaperingStartDate)
	end := DateOf(*h.TaperingEndDate)
	day = DateOf(day)

	if !day.After(start) {
		return h.TaperingStartValue
	}
	if !day.Before(end) {
		return h.TaperingTargetValue
	}

	total := DaysBetween(start, end)
	if total <= 0 {
		return h.TaperingTargetValue
	}

	fraction := float64(DaysBetween(start, day)) / float64(total)
	value := float64(h.TaperingStartValue) + fraction*float64(h.TaperingTargetValue-h.TaperingStartValue)
	return int(math.Round(value))
}

// EffectiveGoal returns the habit's goal for the given day: the tapered
// value when a tapering schedule is active, otherwise the static daily goal.
func EffectiveGoal(h *models.Habit, day time.Time) int {
	if h.TaperingEnabled && h.TaperingStartDate != nil && h.TaperingEndDate != nil {
		return TaperedGoal(h, day)
	}
	return h.DailyGoal
}
