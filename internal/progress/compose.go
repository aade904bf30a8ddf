package progress

import (
	"time"

	"habitkit/internal/models"
)

// MoneyState carries the stored money-saving amounts fed into the composed
// view. Amounts are in the habit currency's minor unit.
type MoneyState struct {
	SavedToday int64 `json:"saved_today"`
	SavedTotal int64 `json:"saved_total"`
}

// HabitProgress is the derived per-day view of a habit: effective goal,
// achieved count, goal evaluation, streaks, points, and the optional money
// and fixed-days state. It is recomputed in full on every read and never
// persisted; only its constituent facts (logs, streak, savings) are stored.
type HabitProgress struct {
	Date          string          `json:"date"`
	EffectiveGoal int             `json:"effective_goal"`
	Achieved      int             `json:"achieved"`
	GoalMet       bool            `json:"goal_met"`
	Percentage    float64         `json:"percentage"`
	CurrentStreak int             `json:"current_streak"`
	LongestStreak int             `json:"longest_streak"`
	PointsToday   int             `json:"points_today"`
	Money         *MoneyState     `json:"money,omitempty"`
	FixedDays     *FixedDaysState `json:"fixed_days,omitempty"`
}

// SumCounts totals the logged counts across a day's logs.
func SumCounts(logs []models.HabitLog) int {
	var total int
	for i := range logs {
		total += logs[i].Count
	}
	return total
}

// SumPoints totals the points earned across a day's logs.
func SumPoints(logs []models.HabitLog) int {
	var total int
	for i := range logs {
		total += logs[i].PointsEarned
	}
	return total
}

// Compose builds the derived progress view for one habit on one day from its
// stored facts: the day's logs, the streak row, and the money-saving state
// (nil when money tracking is disabled).
func Compose(h *models.Habit, logsToday []models.HabitLog, streak models.Streak, money *MoneyState, day time.Time) HabitProgress {
	goal := EffectiveGoal(h, day)
	achieved := SumCounts(logsToday)
	result := EvaluateGoal(h.GoalType, goal, achieved)

	view := HabitProgress{
		Date:          FormatDate(day),
		EffectiveGoal: goal,
		Achieved:      achieved,
		GoalMet:       result.Met,
		Percentage:    result.Percentage,
		CurrentStreak: streak.CurrentStreak,
		LongestStreak: streak.LongestStreak,
		PointsToday:   SumPoints(logsToday),
		FixedDays:     FixedDaysStateOf(h),
	}
	if h.MoneyTrackingEnabled {
		view.Money = money
	}
	return view
}

// DailySaving computes the amount saved for a habit on a day, in the
// currency's minor unit. For max-limited habits each unit of unused headroom
// below the effective goal counts as money not spent; for min habits each
// completed unit counts as money saved.
func DailySaving(h *models.Habit, effectiveGoal, achieved int) int64 {
	if !h.MoneyTrackingEnabled || h.CostPerUnit <= 0 {
		return 0
	}
	if h.GoalType == models.GoalTypeMax {
		headroom := effectiveGoal - achieved
		if headroom < 0 {
			headroom = 0
		}
		return h.CostPerUnit * int64(headroom)
	}
	return h.CostPerUnit * int64(achieved)
}
