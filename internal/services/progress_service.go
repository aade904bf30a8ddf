package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "habitkit/internal/errors"
	"habitkit/internal/models"
	"habitkit/internal/progress"
)

// progressService composes the derived per-day progress views.
type progressService struct {
	db      *gorm.DB
	streaks StreakServicer
	money   MoneyServicer
}

// NewProgressService creates a new ProgressServicer.
func NewProgressService(db *gorm.DB, streaks StreakServicer, money MoneyServicer) ProgressServicer {
	return &progressService{db: db, streaks: streaks, money: money}
}

// GetHabitProgress returns the composed progress view for one habit on the
// given day. The view is derived from stored facts on every call; nothing
// here is cached or persisted.
func (s *progressService) GetHabitProgress(userID, habitID uint, day time.Time) (*HabitWithProgress, error) {
	var habit models.Habit
	if err := s.db.Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHabitNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if habit.Archived {
		return nil, apperrors.ErrHabitArchived
	}

	return s.composeForHabit(&habit, day)
}

// GetDashboard returns the composed progress views for all of the user's
// active habits on the given day.
func (s *progressService) GetDashboard(userID uint, day time.Time) ([]HabitWithProgress, error) {
	var habits []models.Habit
	if err := s.db.Where("user_id = ? AND archived = ?", userID, false).
		Order("created_at ASC").Find(&habits).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	views := make([]HabitWithProgress, 0, len(habits))
	for i := range habits {
		view, err := s.composeForHabit(&habits[i], day)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *progressService) composeForHabit(habit *models.Habit, day time.Time) (*HabitWithProgress, error) {
	day = progress.DateOf(day)

	var logsToday []models.HabitLog
	if err := s.db.Where("habit_id = ? AND date = ?", habit.ID, day).
		Find(&logsToday).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	streak, err := s.streaks.GetHabitStreak(habit.UserID, habit.ID)
	if err != nil {
		return nil, err
	}

	var money *progress.MoneyState
	if habit.MoneyTrackingEnabled {
		savedToday, err := s.money.GetSavingForDay(habit.UserID, habit.ID, day)
		if err != nil {
			return nil, err
		}
		savedTotal, err := s.money.GetTotalSaved(habit.UserID, habit.ID)
		if err != nil {
			return nil, err
		}
		money = &progress.MoneyState{SavedToday: savedToday, SavedTotal: savedTotal}
	}

	view := progress.Compose(habit, logsToday, *streak, money, day)
	return &HabitWithProgress{Habit: *habit, Progress: view}, nil
}
