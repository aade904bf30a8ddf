package progress

import (
	"time"

	"habitkit/internal/models"
)

// AdvanceStreak applies one day's goal outcome to a streak and returns the
// updated value. The transition is evaluated at most once per calendar day
// and is idempotent: re-evaluating a day that was already counted changes
// nothing.
//
// Streaks reset lazily. A missed day does not zero the current streak by
// itself; the miss is only detected the next time the goal IS met and the
// last successful day is not yesterday, at which point the streak restarts
// at 1. Until then the stored current streak keeps its last value and simply
// stops extending.
func AdvanceStreak(s models.Streak, day time.Time, met bool) models.Streak {
	if !met {
		return s
	}

	day = DateOf(day)
	switch {
	case s.LastSuccessfulDay == nil:
		s.CurrentStreak = 1
	case SameDay(*s.LastSuccessfulDay, day):
		// Already counted today.
		return s
	case IsYesterday(*s.LastSuccessfulDay, day):
		s.CurrentStreak++
	default:
		s.CurrentStreak = 1
	}

	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	s.LastSuccessfulDay = &day
	return s
}

// NewlyCounted reports whether applying the given day's successful outcome
// would count a day that has not been counted yet. Used to gate side effects
// that must happen at most once per day, such as fixed-days progress.
func NewlyCounted(s models.Streak, day time.Time, met bool) bool {
	if !met {
		return false
	}
	return s.LastSuccessfulDay == nil || !SameDay(*s.LastSuccessfulDay, day)
}
