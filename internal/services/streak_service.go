package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "habitkit/internal/errors"
	"habitkit/internal/models"
	"habitkit/internal/progress"
)

// streakService handles streak bookkeeping.
type streakService struct {
	db *gorm.DB
}

// NewStreakService creates a new StreakServicer.
func NewStreakService(db *gorm.DB) StreakServicer {
	return &streakService{db: db}
}

// GetHabitStreak returns the streak row for a habit, creating a zeroed row
// on first access.
func (s *streakService) GetHabitStreak(userID, habitID uint) (*models.Streak, error) {
	var streak models.Streak
	err := s.db.Where("habit_id = ? AND user_id = ?", habitID, userID).First(&streak).Error
	if err == nil {
		return &streak, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Verify the habit exists and belongs to the user before creating.
	var count int64
	if err := s.db.Model(&models.Habit{}).
		Where("id = ? AND user_id = ?", habitID, userID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrHabitNotFound
	}

	streak = models.Streak{HabitID: habitID, UserID: userID}
	if err := s.db.Create(&streak).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &streak, nil
}

// RecordDayResult applies one day's goal outcome to the habit's streak and
// persists the result. The boolean result reports whether this call counted
// a day that had not been counted before; repeated evaluations on the same
// day are no-ops.
func (s *streakService) RecordDayResult(habit *models.Habit, day time.Time, met bool) (*models.Streak, bool, error) {
	streak, err := s.GetHabitStreak(habit.UserID, habit.ID)
	if err != nil {
		return nil, false, err
	}

	newlyCounted := progress.NewlyCounted(*streak, day, met)
	updated := progress.AdvanceStreak(*streak, day, met)
	if updated.CurrentStreak == streak.CurrentStreak &&
		updated.LongestStreak == streak.LongestStreak &&
		!newlyCounted {
		return streak, false, nil
	}

	if err := s.db.Model(streak).Updates(map[string]interface{}{
		"current_streak":      updated.CurrentStreak,
		"longest_streak":      updated.LongestStreak,
		"last_successful_day": updated.LastSuccessfulDay,
	}).Error; err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	streak.CurrentStreak = updated.CurrentStreak
	streak.LongestStreak = updated.LongestStreak
	streak.LastSuccessfulDay = updated.LastSuccessfulDay
	return streak, newlyCounted, nil
}
