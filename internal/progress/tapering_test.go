package progress

import (
	"testing"
	"time"

	"habitkit/internal/models"
)

func taperingHabit(start, end time.Time, startValue, targetValue int) *models.Habit {
	start = DateOf(start)
	end = DateOf(end)
	return &models.Habit{
		Type:                models.HabitTypeNegative,
		GoalType:            models.GoalTypeMax,
		DailyGoal:           startValue,
		TaperingEnabled:     true,
		TaperingStartDate:   &start,
		TaperingEndDate:     &end,
		TaperingStartValue:  startValue,
		TaperingTargetValue: targetValue,
	}
}

func TestTaperedGoal(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)
	h := taperingHabit(start, end, 20, 0)

	tests := []struct {
		name string
		day  time.Time
		want int
	}{
		{"before_start", start.AddDate(0, 0, -5), 20},
		{"on_start", start, 20},
		{"midpoint", start.AddDate(0, 0, 15), 10},
		{"on_end", end, 0},
		{"after_end", end.AddDate(0, 0, 15), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TaperedGoal(h, tt.day); got != tt.want {
				t.Errorf("expected %d on %s, got %d", tt.want, FormatDate(tt.day), got)
			}
		})
	}
}

func TestTaperedGoalRounds(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	h := taperingHabit(start, start.AddDate(0, 0, 3), 10, 0)

	// Day 1 of 3: 10 - 10/3 = 6.67, rounds to 7.
	if got := TaperedGoal(h, start.AddDate(0, 0, 1)); got != 7 {
		t.Errorf("expected 7 on day 1, got %d", got)
	}
	// Day 2 of 3: 10 - 20/3 = 3.33, rounds to 3.
	if got := TaperedGoal(h, start.AddDate(0, 0, 2)); got != 3 {
		t.Errorf("expected 3 on day 2, got %d", got)
	}
}

func TestTaperedGoalNeverIncreasesMidSchedule(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	h := taperingHabit(start, start.AddDate(0, 0, 45), 30, 5)

	prev := TaperedGoal(h, start)
	for i := 1; i <= 45; i++ {
		got := TaperedGoal(h, start.AddDate(0, 0, i))
		if got > prev {
			t.Fatalf("goal increased from %d to %d on day %d", prev, got, i)
		}
		prev = got
	}
	if prev != 5 {
		t.Errorf("expected final value 5, got %d", prev)
	}
}

func TestEffectiveGoal(t *testing.T) {
	t.Run("tapering_disabled_uses_daily_goal", func(t *testing.T) {
		h := &models.Habit{GoalType: models.GoalTypeMax, DailyGoal: 8}
		if got := EffectiveGoal(h, time.Now()); got != 8 {
			t.Errorf("expected 8, got %d", got)
		}
	})

	t.Run("tapering_enabled_uses_schedule", func(t *testing.T) {
		start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		h := taperingHabit(start, start.AddDate(0, 0, 10), 10, 0)
		h.DailyGoal = 99
		if got := EffectiveGoal(h, start.AddDate(0, 0, 5)); got != 5 {
			t.Errorf("expected 5, got %d", got)
		}
	})

	t.Run("tapering_flag_without_dates_falls_back", func(t *testing.T) {
		h := &models.Habit{GoalType: models.GoalTypeMax, DailyGoal: 8, TaperingEnabled: true}
		if got := EffectiveGoal(h, time.Now()); got != 8 {
			t.Errorf("expected 8, got %d", got)
		}
	})
}
