package services

import (
	"testing"

	"habitkit/internal/models"
	"habitkit/internal/pagination"
	"habitkit/internal/progress"
	"habitkit/internal/testutil"
)

func TestCreateJournalEntry(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		user := testutil.CreateTestUser(t, db)
		habit := testutil.CreateTestNegativeHabit(t, db, user.ID, 5)

		urge := 7
		entry, err := svc.CreateEntry(user.ID, JournalInput{
			HabitID:   habit.ID,
			Content:   "Craving hit hard after lunch",
			Mood:      models.MoodBad,
			Triggers:  []string{"stress", "coffee"},
			UrgeLevel: &urge,
		})
		testutil.AssertNoError(t, err)

		if entry.ID == 0 {
			t.Fatal("expected persisted entry")
		}
		if !progress.SameDay(entry.Date, progress.Today()) {
			t.Errorf("expected entry dated today by default, got %v", entry.Date)
		}
		if len(entry.Triggers) != 2 {
			t.Errorf("expected 2 triggers, got %d", len(entry.Triggers))
		}
		if entry.UrgeLevel == nil || *entry.UrgeLevel != 7 {
			t.Errorf("expected urge level 7, got %v", entry.UrgeLevel)
		}
	})

	t.Run("explicit_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		user := testutil.CreateTestUser(t, db)
		habit := testutil.CreateTestHabit(t, db, user.ID)

		day, _ := progress.ParseDate("2025-05-20")
		entry, err := svc.CreateEntry(user.ID, JournalInput{
			HabitID: habit.ID,
			Date:    &day,
			Content: "Backfilled note",
			Mood:    models.MoodNeutral,
		})
		testutil.AssertNoError(t, err)
		if !progress.SameDay(entry.Date, day) {
			t.Errorf("expected entry dated 2025-05-20, got %v", entry.Date)
		}
	})

	t.Run("content_required", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		user := testutil.CreateTestUser(t, db)
		habit := testutil.CreateTestHabit(t, db, user.ID)

		_, err := svc.CreateEntry(user.ID, JournalInput{HabitID: habit.ID, Content: "   "})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("urge_level_bounds", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		user := testutil.CreateTestUser(t, db)
		habit := testutil.CreateTestHabit(t, db, user.ID)

		urge := 11
		_, err := svc.CreateEntry(user.ID, JournalInput{
			HabitID: habit.ID, Content: "too strong", UrgeLevel: &urge,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("other_users_habit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		habit := testutil.CreateTestHabit(t, db, user1.ID)

		_, err := svc.CreateEntry(user2.ID, JournalInput{HabitID: habit.ID, Content: "not mine"})
		testutil.AssertAppError(t, err, "HABIT_NOT_FOUND")
	})
}

func TestGetJournalEntries(t *testing.T) {
	t.Run("filters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		user := testutil.CreateTestUser(t, db)
		habit1 := testutil.CreateTestHabit(t, db, user.ID)
		habit2 := testutil.CreateTestHabit(t, db, user.ID)

		_, err := svc.CreateEntry(user.ID, JournalInput{HabitID: habit1.ID, Content: "proud of today", Mood: models.MoodGreat})
		testutil.AssertNoError(t, err)
		_, err = svc.CreateEntry(user.ID, JournalInput{HabitID: habit1.ID, Content: "rough evening", Mood: models.MoodBad})
		testutil.AssertNoError(t, err)
		_, err = svc.CreateEntry(user.ID, JournalInput{HabitID: habit2.ID, Content: "other habit", Mood: models.MoodGood})
		testutil.AssertNoError(t, err)

		result, err := svc.GetEntries(user.ID, pagination.PageRequest{}, JournalFilter{HabitID: &habit1.ID})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Errorf("expected 2 entries for habit1, got %d", result.TotalItems)
		}

		bad := models.MoodBad
		result, err = svc.GetEntries(user.ID, pagination.PageRequest{}, JournalFilter{Mood: &bad})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 bad-mood entry, got %d", result.TotalItems)
		}

		result, err = svc.GetEntries(user.ID, pagination.PageRequest{}, JournalFilter{Search: "ROUGH"})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 entry matching search, got %d", result.TotalItems)
		}
	})

	t.Run("user_isolation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		habit := testutil.CreateTestHabit(t, db, user1.ID)
		testutil.CreateTestJournalEntry(t, db, user1.ID, habit.ID)

		result, err := svc.GetEntries(user2.ID, pagination.PageRequest{}, JournalFilter{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 0 {
			t.Errorf("expected no entries for other user, got %d", result.TotalItems)
		}
	})
}

func TestUpdateJournalEntry(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		user := testutil.CreateTestUser(t, db)
		habit := testutil.CreateTestHabit(t, db, user.ID)
		entry := testutil.CreateTestJournalEntry(t, db, user.ID, habit.ID)

		content := "revised reflection"
		mood := models.MoodGood
		updated, err := svc.UpdateEntry(user.ID, entry.ID, JournalUpdate{Content: &content, Mood: &mood})
		testutil.AssertNoError(t, err)
		if updated.Content != content || updated.Mood != mood {
			t.Errorf("expected updated content and mood, got %q %s", updated.Content, updated.Mood)
		}
	})

	t.Run("blank_content_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		user := testutil.CreateTestUser(t, db)
		habit := testutil.CreateTestHabit(t, db, user.ID)
		entry := testutil.CreateTestJournalEntry(t, db, user.ID, habit.ID)

		blank := " "
		_, err := svc.UpdateEntry(user.ID, entry.ID, JournalUpdate{Content: &blank})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewJournalService(db)
		user := testutil.CreateTestUser(t, db)

		content := "nope"
		_, err := svc.UpdateEntry(user.ID, 9999, JournalUpdate{Content: &content})
		testutil.AssertAppError(t, err, "JOURNAL_ENTRY_NOT_FOUND")
	})
}

func TestDeleteJournalEntry(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewJournalService(db)
	user := testutil.CreateTestUser(t, db)
	habit := testutil.CreateTestHabit(t, db, user.ID)
	entry := testutil.CreateTestJournalEntry(t, db, user.ID, habit.ID)

	testutil.AssertNoError(t, svc.DeleteEntry(user.ID, entry.ID))

	_, err := svc.GetEntryByID(user.ID, entry.ID)
	testutil.AssertAppError(t, err, "JOURNAL_ENTRY_NOT_FOUND")
}
