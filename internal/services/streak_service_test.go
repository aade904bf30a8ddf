package services

import (
	"testing"

	"habitkit/internal/progress"
	"habitkit/internal/testutil"
)

func TestGetHabitStreak(t *testing.T) {
	t.Run("creates_row_on_first_access", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStreakService(db)
		user := testutil.CreateTestUser(t, db)
		habit := testutil.CreateTestHabit(t, db, user.ID)

		streak, err := svc.GetHabitStreak(user.ID, habit.ID)
		testutil.AssertNoError(t, err)
		if streak.ID == 0 {
			t.Fatal("expected persisted streak row")
		}
		if streak.CurrentStreak != 0 || streak.LongestStreak != 0 || streak.LastSuccessfulDay != nil {
			t.Errorf("expected zeroed streak, got %+v", streak)
		}

		// A second access returns the same row.
		again, err := svc.GetHabitStreak(user.ID, habit.ID)
		testutil.AssertNoError(t, err)
		if again.ID != streak.ID {
			t.Errorf("expected same streak row %d, got %d", streak.ID, again.ID)
		}
	})

	t.Run("unknown_habit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStreakService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetHabitStreak(user.ID, 9999)
		testutil.AssertAppError(t, err, "HABIT_NOT_FOUND")
	})

	t.Run("other_users_habit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStreakService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		habit := testutil.CreateTestHabit(t, db, user1.ID)

		_, err := svc.GetHabitStreak(user2.ID, habit.ID)
		testutil.AssertAppError(t, err, "HABIT_NOT_FOUND")
	})
}

func TestRecordDayResult(t *testing.T) {
	t.Run("met_goal_extends_and_persists", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStreakService(db)
		user := testutil.CreateTestUser(t, db)
		habit := testutil.CreateTestHabit(t, db, user.ID)

		d1, _ := progress.ParseDate("2025-06-01")
		streak, newlyCounted, err := svc.RecordDayResult(habit, d1, true)
		testutil.AssertNoError(t, err)
		if !newlyCounted {
			t.Error("expected first success to be newly counted")
		}
		if streak.CurrentStreak != 1 {
			t.Errorf("expected streak 1, got %d", streak.CurrentStreak)
		}

		d2 := d1.AddDate(0, 0, 1)
		streak, newlyCounted, err = svc.RecordDayResult(habit, d2, true)
		testutil.AssertNoError(t, err)
		if !newlyCounted || streak.CurrentStreak != 2 {
			t.Errorf("expected newly counted streak 2, got counted=%v streak=%d", newlyCounted, streak.CurrentStreak)
		}

		// Persisted across a fresh read.
		reloaded, err := svc.GetHabitStreak(user.ID, habit.ID)
		testutil.AssertNoError(t, err)
		if reloaded.CurrentStreak != 2 || reloaded.LongestStreak != 2 {
			t.Errorf("expected persisted 2/2, got %d/%d", reloaded.CurrentStreak, reloaded.LongestStreak)
		}
	})

	t.Run("same_day_not_counted_twice", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStreakService(db)
		user := testutil.CreateTestUser(t, db)
		habit := testutil.CreateTestHabit(t, db, user.ID)

		d, _ := progress.ParseDate("2025-06-01")
		_, _, err := svc.RecordDayResult(habit, d, true)
		testutil.AssertNoError(t, err)

		streak, newlyCounted, err := svc.RecordDayResult(habit, d, true)
		testutil.AssertNoError(t, err)
		if newlyCounted {
			t.Error("expected repeat evaluation not to count")
		}
		if streak.CurrentStreak != 1 {
			t.Errorf("expected streak to stay 1, got %d", streak.CurrentStreak)
		}
	})

	t.Run("gap_resets_on_next_success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStreakService(db)
		user := testutil.CreateTestUser(t, db)
		habit := testutil.CreateTestHabit(t, db, user.ID)

		d1, _ := progress.ParseDate("2025-06-01")
		_, _, err := svc.RecordDayResult(habit, d1, true)
		testutil.AssertNoError(t, err)
		_, _, err = svc.RecordDayResult(habit, d1.AddDate(0, 0, 1), true)
		testutil.AssertNoError(t, err)

		// 2025-06-03 passes with no evaluation at all; the next success
		// restarts the streak but keeps the longest.
		streak, _, err := svc.RecordDayResult(habit, d1.AddDate(0, 0, 3), true)
		testutil.AssertNoError(t, err)
		if streak.CurrentStreak != 1 {
			t.Errorf("expected restart at 1, got %d", streak.CurrentStreak)
		}
		if streak.LongestStreak != 2 {
			t.Errorf("expected longest 2 preserved, got %d", streak.LongestStreak)
		}
	})

	t.Run("unmet_goal_is_noop", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStreakService(db)
		user := testutil.CreateTestUser(t, db)
		habit := testutil.CreateTestHabit(t, db, user.ID)

		d1, _ := progress.ParseDate("2025-06-01")
		_, _, err := svc.RecordDayResult(habit, d1, true)
		testutil.AssertNoError(t, err)

		streak, newlyCounted, err := svc.RecordDayResult(habit, d1.AddDate(0, 0, 1), false)
		testutil.AssertNoError(t, err)
		if newlyCounted {
			t.Error("expected unmet day not to count")
		}
		if streak.CurrentStreak != 1 {
			t.Errorf("expected streak to keep its value, got %d", streak.CurrentStreak)
		}
	})
}
