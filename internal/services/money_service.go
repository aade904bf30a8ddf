package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "habitkit/internal/errors"
	"habitkit/internal/models"
	"habitkit/internal/pagination"
	"habitkit/internal/progress"
)

// moneyService handles money-saving aggregation.
type moneyService struct {
	db *gorm.DB
}

// NewMoneyService creates a new MoneyServicer.
func NewMoneyService(db *gorm.DB) MoneyServicer {
	return &moneyService{db: db}
}

// RecordSaving upserts the amount saved for a habit on a day. Recomputations
// on the same day replace the stored amount, so at most one row exists per
// (habit, date) pair.
func (s *moneyService) RecordSaving(habit *models.Habit, day time.Time, amount int64) error {
	if amount < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "saving amount cannot be negative")
	}

	row := &models.MoneySaving{
		HabitID:     habit.ID,
		UserID:      habit.UserID,
		Date:        progress.DateOf(day),
		AmountSaved: amount,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "habit_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"amount_saved": amount,
		}),
	}).Create(row).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetHabitSavings returns the per-day saving rows for a habit, most recent
// first.
func (s *moneyService) GetHabitSavings(userID, habitID uint, page pagination.PageRequest) (*pagination.PageResponse[models.MoneySaving], error) {
	page.Defaults()

	base := s.db.Model(&models.MoneySaving{}).Where("habit_id = ? AND user_id = ?", habitID, userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var savings []models.MoneySaving
	if err := base.Order("date DESC").Scopes(pagination.Paginate(page)).Find(&savings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(savings, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetSavingForDay returns the amount saved for a habit on one day, or zero
// when no row exists.
func (s *moneyService) GetSavingForDay(userID, habitID uint, day time.Time) (int64, error) {
	var row models.MoneySaving
	err := s.db.Where("habit_id = ? AND user_id = ? AND date = ?", habitID, userID, progress.DateOf(day)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row.AmountSaved, nil
}

// GetTotalSaved returns the cumulative amount saved across all days for a
// habit.
func (s *moneyService) GetTotalSaved(userID, habitID uint) (int64, error) {
	var total int64
	err := s.db.Model(&models.MoneySaving{}).
		Select("COALESCE(SUM(amount_saved), 0)").
		Where("habit_id = ? AND user_id = ?", habitID, userID).
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}
