package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "habitkit/internal/errors"
	"habitkit/internal/logger"
	"habitkit/internal/models"
	"habitkit/internal/pagination"
	"habitkit/internal/progress"
)

// logService handles habit log business logic and orchestrates the dependent
// bookkeeping triggered by a new log.
type logService struct {
	db      *gorm.DB
	streaks StreakServicer
	points  PointsServicer
	money   MoneyServicer
}

// NewLogService creates a new LogServicer.
func NewLogService(db *gorm.DB, streaks StreakServicer, points PointsServicer, money MoneyServicer) LogServicer {
	return &logService{db: db, streaks: streaks, points: points, money: money}
}

// CreateLog records one occurrence of a habit. The log insert is the
// operation of record: its date is derived from the current server time,
// and points earned are computed from the habit's per-completion value at
// creation. Streak, fixed-days, money, points, and tapering-history updates
// run afterwards as best-effort follow-ups; their failures are logged and
// never fail or roll back the log itself.
func (s *logService) CreateLog(userID, habitID uint, count int, note string) (*models.HabitLog, error) {
	if count < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "count must be at least 1")
	}

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

	today := progress.Today()
	log := &models.HabitLog{
		HabitID:      habitID,
		UserID:       userID,
		Date:         today,
		Count:        count,
		Note:         note,
		PointsEarned: habit.PointsPerCompletion * count,
	}

	if err := s.db.Create(log).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.applyDependentUpdates(&habit, log, today)

	return log, nil
}

// applyDependentUpdates runs the bookkeeping that follows a successful log
// insert. Each step is independent and best-effort: a failure is logged with
// enough context to reconcile later but never propagated, so the user's log
// always stands.
func (s *logService) applyDependentUpdates(habit *models.Habit, log *models.HabitLog, today time.Time) {
	zlog := logger.Get()

	if err := s.points.AddPoints(habit.UserID, int64(log.PointsEarned)); err != nil {
		zlog.Errorw("dependent update failed: points",
			"error", err, "habit_id", habit.ID, "log_id", log.ID, "points", log.PointsEarned)
	}

	achieved, err := s.sumCountsForDay(habit.ID, today)
	if err != nil {
		zlog.Errorw("dependent update failed: daily total",
			"error", err, "habit_id", habit.ID, "log_id", log.ID)
		return
	}

	goal := progress.EffectiveGoal(habit, today)
	result := progress.EvaluateGoal(habit.GoalType, goal, achieved)

	_, newlyCounted, err := s.streaks.RecordDayResult(habit, today, result.Met)
	if err != nil {
		zlog.Errorw("dependent update failed: streak",
			"error", err, "habit_id", habit.ID, "log_id", log.ID)
	} else if newlyCounted && habit.FixedDaysEnabled {
		// The first met evaluation of a day counts exactly one fixed day,
		// no matter how many logs that day sees.
		err := s.db.Model(&models.Habit{}).Where("id = ?", habit.ID).
			UpdateColumn("fixed_days_progress", gorm.Expr("fixed_days_progress + ?", 1)).Error
		if err != nil {
			zlog.Errorw("dependent update failed: fixed-days progress",
				"error", err, "habit_id", habit.ID, "log_id", log.ID)
		}
	}

	if habit.MoneyTrackingEnabled {
		amount := progress.DailySaving(habit, goal, achieved)
		if err := s.money.RecordSaving(habit, today, amount); err != nil {
			zlog.Errorw("dependent update failed: money saving",
				"error", err, "habit_id", habit.ID, "log_id", log.ID)
		}
	}

	if habit.TaperingEnabled {
		entry := &models.TaperingHistory{HabitID: habit.ID, Date: progress.DateOf(today), Value: goal}
		err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "habit_id"}, {Name: "date"}},
			DoNothing: true,
		}).Create(entry).Error
		if err != nil {
			zlog.Errorw("dependent update failed: tapering history",
				"error", err, "habit_id", habit.ID, "log_id", log.ID)
		}
	}
}

// sumCountsForDay totals the logged counts for a habit on one calendar day.
func (s *logService) sumCountsForDay(habitID uint, day time.Time) (int, error) {
	var total int
	err := s.db.Model(&models.HabitLog{}).
		Select("COALESCE(SUM(count), 0)").
		Where("habit_id = ? AND date = ?", habitID, progress.DateOf(day)).
		Scan(&total).Error
	return total, err
}

// GetHabitLogs returns a paginated list of logs for a habit, newest first,
// with optional date range filters.
func (s *logService) GetHabitLogs(userID, habitID uint, page pagination.PageRequest, filter LogFilter) (*pagination.PageResponse[models.HabitLog], error) {
	page.Defaults()

	base := s.db.Model(&models.HabitLog{}).Where("habit_id = ? AND user_id = ?", habitID, userID)
	if filter.FromDate != nil {
		base = base.Where("date >= ?", progress.DateOf(*filter.FromDate))
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", progress.DateOf(*filter.ToDate))
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var logs []models.HabitLog
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(logs, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DeleteLog removes a log record. Streaks and points already awarded are
// left untouched; the log insert is the operation of record and its
// follow-ups are not unwound.
func (s *logService) DeleteLog(userID, logID uint) error {
	var log models.HabitLog
	if err := s.db.Where("id = ? AND user_id = ?", logID, userID).First(&log).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrLogNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&log).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
