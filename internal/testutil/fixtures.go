package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"habitkit/internal/models"
	"habitkit/internal/progress"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestHabit creates a positive min habit with a daily goal of 1.
func CreateTestHabit(t *testing.T, db *gorm.DB, userID uint) *models.Habit {
	t.Helper()

	habit := &models.Habit{
		UserID:              userID,
		Name:                fmt.Sprintf("Test Habit %d", nextID()),
		Type:                models.HabitTypePositive,
		GoalType:            models.GoalTypeMin,
		DailyGoal:           1,
		PointsPerCompletion: 10,
	}
	if err := db.Create(habit).Error; err != nil {
		t.Fatalf("failed to create test habit: %v", err)
	}
	return habit
}

// CreateTestNegativeHabit creates a negative max habit with the given daily
// limit.
func CreateTestNegativeHabit(t *testing.T, db *gorm.DB, userID uint, limit int) *models.Habit {
	t.Helper()

	habit := &models.Habit{
		UserID:              userID,
		Name:                fmt.Sprintf("Test Negative Habit %d", nextID()),
		Type:                models.HabitTypeNegative,
		GoalType:            models.GoalTypeMax,
		DailyGoal:           limit,
		PointsPerCompletion: 10,
	}
	if err := db.Create(habit).Error; err != nil {
		t.Fatalf("failed to create test negative habit: %v", err)
	}
	return habit
}

// CreateTestMoneyHabit creates a negative max habit with money tracking
// enabled at the given cost per unit (in cents).
func CreateTestMoneyHabit(t *testing.T, db *gorm.DB, userID uint, limit int, costPerUnit int64) *models.Habit {
	t.Helper()

	habit := &models.Habit{
		UserID:               userID,
		Name:                 fmt.Sprintf("Test Money Habit %d", nextID()),
		Type:                 models.HabitTypeNegative,
		GoalType:             models.GoalTypeMax,
		DailyGoal:            limit,
		PointsPerCompletion:  10,
		MoneyTrackingEnabled: true,
		CostPerUnit:          costPerUnit,
		Currency:             "USD",
	}
	if err := db.Create(habit).Error; err != nil {
		t.Fatalf("failed to create test money habit: %v", err)
	}
	return habit
}

// CreateTestTaperingHabit creates a negative max habit with a linear tapering
// schedule from startValue down to targetValue over the given dates.
func CreateTestTaperingHabit(t *testing.T, db *gorm.DB, userID uint, start, end time.Time, startValue, targetValue int) *models.Habit {
	t.Helper()

	start = progress.DateOf(start)
	end = progress.DateOf(end)
	habit := &models.Habit{
		UserID:              userID,
		Name:                fmt.Sprintf("Test Tapering Habit %d", nextID()),
		Type:                models.HabitTypeNegative,
		GoalType:            models.GoalTypeMax,
		DailyGoal:           startValue,
		PointsPerCompletion: 10,
		TaperingEnabled:     true,
		TaperingStartDate:   &start,
		TaperingEndDate:     &end,
		TaperingStartValue:  startValue,
		TaperingTargetValue: targetValue,
	}
	if err := db.Create(habit).Error; err != nil {
		t.Fatalf("failed to create test tapering habit: %v", err)
	}
	return habit
}

// CreateTestFixedDaysHabit creates a positive min habit tracked for a fixed
// number of days.
func CreateTestFixedDaysHabit(t *testing.T, db *gorm.DB, userID uint, target int) *models.Habit {
	t.Helper()

	start := progress.Today()
	habit := &models.Habit{
		UserID:              userID,
		Name:                fmt.Sprintf("Test Fixed Days Habit %d", nextID()),
		Type:                models.HabitTypePositive,
		GoalType:            models.GoalTypeMin,
		DailyGoal:           1,
		PointsPerCompletion: 10,
		FixedDaysEnabled:    true,
		FixedDaysTarget:     target,
		FixedDaysStartDate:  &start,
	}
	if err := db.Create(habit).Error; err != nil {
		t.Fatalf("failed to create test fixed days habit: %v", err)
	}
	return habit
}

// CreateTestLog creates a habit log for the given day.
func CreateTestLog(t *testing.T, db *gorm.DB, userID, habitID uint, day time.Time, count int) *models.HabitLog {
	t.Helper()

	log := &models.HabitLog{
		HabitID:      habitID,
		UserID:       userID,
		Date:         progress.DateOf(day),
		Count:        count,
		PointsEarned: 10 * count,
	}
	if err := db.Create(log).Error; err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}
	return log
}

// CreateTestJournalEntry creates a journal entry for today.
func CreateTestJournalEntry(t *testing.T, db *gorm.DB, userID, habitID uint) *models.JournalEntry {
	t.Helper()

	entry := &models.JournalEntry{
		HabitID: habitID,
		UserID:  userID,
		Date:    progress.Today(),
		Content: fmt.Sprintf("Test entry %d", nextID()),
		Mood:    models.MoodNeutral,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test journal entry: %v", err)
	}
	return entry
}
