package services

import (
	"testing"
	"time"

	"habitkit/internal/models"
	"habitkit/internal/pagination"
	"habitkit/internal/progress"
	"habitkit/internal/testutil"
)

func TestCreateHabit(t *testing.T) {
	t.Run("valid_positive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db)
		user := testutil.CreateTestUser(t, db)

		habit, err := svc.CreateHabit(user.ID, HabitInput{
			Name:      "Morning run",
			Type:      models.HabitTypePositive,
			GoalType:  models.GoalTypeMin,
			DailyGoal: 1,
			Unit:      "runs",
		})
		testutil.AssertNoError(t, err)

		if habit.ID == 0 {
			t.Fatal("expected non-zero habit ID")
		}
		if habit.PointsPerCompletion != 10 {
			t.Errorf("expected default 10 points per completion, got %d", habit.PointsPerCompletion)
		}
		if habit.Archived {
			t.Error("expected new habit to be active")
		}
	})

	t.Run("negative_with_zero_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db)
		user := testutil.CreateTestUser(t, db)

		// "None allowed" is a valid maximum.
		habit, err := svc.CreateHabit(user.ID, HabitInput{
			Name:      "No cigarettes",
			Type:      models.HabitTypeNegative,
			GoalType:  models.GoalTypeMax,
			DailyGoal: 0,
		})
		testutil.AssertNoError(t, err)
		if habit.DailyGoal != 0 {
			t.Errorf("expected daily goal 0, got %d", habit.DailyGoal)
		}
	})

	t.Run("positive_needs_goal_of_at_least_one", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateHabit(user.ID, HabitInput{
			Name:      "Read",
			Type:      models.HabitTypePositive,
			GoalType:  models.GoalTypeMin,
			DailyGoal: 0,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("money_tracking_defaults_currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db)
		user := testutil.CreateTestUser(t, db)

		habit, err := svc.CreateHabit(user.ID, HabitInput{
			Name:                 "Fewer lattes",
			Type:                 models.HabitTypeNegative,
			GoalType:             models.GoalTypeMax,
			DailyGoal:            2,
			MoneyTrackingEnabled: true,
			CostPerUnit:          450,
		})
		testutil.AssertNoError(t, err)
		if habit.Currency != "USD" {
			t.Errorf("expected default USD, got %s", habit.Currency)
		}
	})

	t.Run("money_tracking_requires_cost", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateHabit(user.ID, HabitInput{
			Name:                 "Fewer lattes",
			Type:                 models.HabitTypeNegative,
			GoalType:             models.GoalTypeMax,
			DailyGoal:            2,
			MoneyTrackingEnabled: true,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("tapering_valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db)
		user := testutil.CreateTestUser(t, db)

		start := progress.Today()
		end := start.AddDate(0, 0, 30)
		habit, err := svc.CreateHabit(user.ID, HabitInput{
			Name:                "Cut down smoking",
			Type:                models.HabitTypeNegative,
			GoalType:            models.GoalTypeMax,
			DailyGoal:           20,
			TaperingEnabled:     true,
			TaperingStartDate:   &start,
			TaperingEndDate:     &end,
			TaperingStartValue:  20,
			TaperingTargetValue: 0,
		})
		testutil.AssertNoError(t, err)
		if !habit.TaperingEnabled {
			t.Error("expected tapering enabled")
		}
	})

	t.Run("tapering_requires_negative_max", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db)
		user := testutil.CreateTestUser(t, db)

		start := progress.Today()
		end := start.AddDate(0, 0, 30)
		_, err := svc.CreateHabit(user.ID, HabitInput{
			Name:                "Run more",
			Type:                models.HabitTypePositive,
			GoalType:            models.GoalTypeMin,
			DailyGoal:           1,
			TaperingEnabled:     true,
			TaperingStartDate:   &start,
			TaperingEndDate:     &end,
			TaperingStartValue:  20,
			TaperingTargetValue: 0,
		})
		testutil.AssertAppError(t, err, "TAPERING_NOT_APPLICABLE")
	})

	t.Run("tapering_end_must_follow_start", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db)
		user := testutil.CreateTestUser(t, db)

		start := progress.Today()
		_, err := svc.CreateHabit(user.ID, HabitInput{
			Name:                "Bad schedule",
			Type:                models.HabitTypeNegative,
			GoalType:            models.GoalTypeMax,
			DailyGoal:           20,
			TaperingEnabled:     true,
			TaperingStartDate:   &start,
			TaperingEndDate:     &start,
			TaperingStartValue:  20,
			TaperingTargetValue: 0,
		})
		testutil.AssertAppError(t, err, "INVALID_TAPERING_SCHEDULE")
	})

	t.Run("fixed_days_defaults_start_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db)
		user := testutil.CreateTestUser(t, db)

		habit, err := svc.CreateHabit(user.ID, HabitInput{
			Name:             "100 days of code",
			Type:             models.HabitTypePositive,
			GoalType:         models.GoalTypeMin,
			DailyGoal:        1,
			FixedDaysEnabled: true,
			FixedDaysTarget:  100,
		})
		testutil.AssertNoError(t, err)
		if habit.FixedDaysStartDate == nil {
			t.Fatal("expected start date to default to today")
		}
		if !progress.SameDay(*habit.FixedDaysStartDate, progress.Today()) {
			t.Errorf("expected start date today, got %v", habit.FixedDaysStartDate)
		}
	})
}

func TestGetUserHabits(t *testing.T) {
	t.Run("excludes_archived_by_default", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestHabit(t, db, user.ID)
		archived := testutil.CreateTestHabit(t, db, user.ID)
		_, err := svc.ArchiveHabit(user.ID, archived.ID)
		testutil.AssertNoError(t, err)

		result, err := svc.GetUserHabits(user.ID, pagination.PageRequest{}, HabitFilter{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 active habit, got %d", result.TotalItems)
		}

		archivedFlag := true
		result, err = svc.GetUserHabits(user.ID, pagination.PageRequest{}, HabitFilter{Archived: &archivedFlag})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 archived habit, got %d", result.TotalItems)
		}
	})

	t.Run("filter_by_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestHabit(t, db, user.ID)
		testutil.CreateTestNegativeHabit(t, db, user.ID, 5)
		testutil.CreateTestNegativeHabit(t, db, user.ID, 3)

		negative := models.HabitTypeNegative
		result, err := svc.GetUserHabits(user.ID, pagination.PageRequest{}, HabitFilter{Type: &negative})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Errorf("expected 2 negative habits, got %d", result.TotalItems)
		}
	})

	t.Run("user_isolation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		testutil.CreateTestHabit(t, db, user1.ID)
		testutil.CreateTestHabit(t, db, user2.ID)

		result, err := svc.GetUserHabits(user1.ID, pagination.PageRequest{}, HabitFilter{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 habit for user1, got %d", result.TotalItems)
		}
	})
}

func TestUpdateHabit(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db)
		user := testutil.CreateTestUser(t, db)
		habit := testutil.CreateTestHabit(t, db, user.ID)

		name := "Renamed"
		goal := 3
		updated, err := svc.UpdateHabit(user.ID, habit.ID, HabitUpdate{Name: &name, DailyGoal: &goal})
		testutil.AssertNoError(t, err)
		if updated.Name != "Renamed" || updated.DailyGoal != 3 {
			t.Errorf("expected Renamed/3, got %s/%d", updated.Name, updated.DailyGoal)
		}
	})

	t.Run("archived_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db)
		user := testutil.CreateTestUser(t, db)
		habit := testutil.CreateTestHabit(t, db, user.ID)
		_, err := svc.ArchiveHabit(user.ID, habit.ID)
		testutil.AssertNoError(t, err)

		name := "Renamed"
		_, err = svc.UpdateHabit(user.ID, habit.ID, HabitUpdate{Name: &name})
		testutil.AssertAppError(t, err, "HABIT_ARCHIVED")
	})

	t.Run("revalidates_configuration", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db)
		user := testutil.CreateTestUser(t, db)
		habit := testutil.CreateTestHabit(t, db, user.ID)

		goal := 0
		_, err := svc.UpdateHabit(user.ID, habit.ID, HabitUpdate{DailyGoal: &goal})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("not_found_for_other_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		habit := testutil.CreateTestHabit(t, db, user1.ID)

		name := "Stolen"
		_, err := svc.UpdateHabit(user2.ID, habit.ID, HabitUpdate{Name: &name})
		testutil.AssertAppError(t, err, "HABIT_NOT_FOUND")
	})
}

func TestArchiveAndUnarchiveHabit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewHabitService(db)
	user := testutil.CreateTestUser(t, db)
	habit := testutil.CreateTestHabit(t, db, user.ID)

	archived, err := svc.ArchiveHabit(user.ID, habit.ID)
	testutil.AssertNoError(t, err)
	if !archived.Archived || archived.ArchivedAt == nil {
		t.Error("expected habit to be archived with timestamp")
	}

	// Archiving twice is a no-op.
	_, err = svc.ArchiveHabit(user.ID, habit.ID)
	testutil.AssertNoError(t, err)

	restored, err := svc.UnarchiveHabit(user.ID, habit.ID)
	testutil.AssertNoError(t, err)
	if restored.Archived || restored.ArchivedAt != nil {
		t.Error("expected habit to be active again")
	}
}

func TestDeleteHabit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewHabitService(db)
	user := testutil.CreateTestUser(t, db)
	habit := testutil.CreateTestHabit(t, db, user.ID)
	testutil.CreateTestLog(t, db, user.ID, habit.ID, time.Now(), 1)
	testutil.CreateTestJournalEntry(t, db, user.ID, habit.ID)

	testutil.AssertNoError(t, svc.DeleteHabit(user.ID, habit.ID))

	_, err := svc.GetHabitByID(user.ID, habit.ID)
	testutil.AssertAppError(t, err, "HABIT_NOT_FOUND")

	var logCount int64
	if err := db.Model(&models.HabitLog{}).Where("habit_id = ?", habit.ID).Count(&logCount).Error; err != nil {
		t.Fatalf("failed to count logs: %v", err)
	}
	if logCount != 0 {
		t.Errorf("expected dependent logs removed, got %d", logCount)
	}

	var entryCount int64
	if err := db.Model(&models.JournalEntry{}).Where("habit_id = ?", habit.ID).Count(&entryCount).Error; err != nil {
		t.Fatalf("failed to count journal entries: %v", err)
	}
	if entryCount != 0 {
		t.Errorf("expected dependent journal entries removed, got %d", entryCount)
	}
}

func TestExtendFixedDays(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db)
		user := testutil.CreateTestUser(t, db)
		habit := testutil.CreateTestFixedDaysHabit(t, db, user.ID, 30)

		updated, err := svc.ExtendFixedDays(user.ID, habit.ID, 15)
		testutil.AssertNoError(t, err)
		if updated.FixedDaysTarget != 45 {
			t.Errorf("expected target 45, got %d", updated.FixedDaysTarget)
		}
	})

	t.Run("not_fixed_days_habit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db)
		user := testutil.CreateTestUser(t, db)
		habit := testutil.CreateTestHabit(t, db, user.ID)

		_, err := svc.ExtendFixedDays(user.ID, habit.ID, 15)
		testutil.AssertAppError(t, err, "NOT_FIXED_DAYS_HABIT")
	})

	t.Run("rejects_non_positive_days", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewHabitService(db)
		user := testutil.CreateTestUser(t, db)
		habit := testutil.CreateTestFixedDaysHabit(t, db, user.ID, 30)

		_, err := svc.ExtendFixedDays(user.ID, habit.ID, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
