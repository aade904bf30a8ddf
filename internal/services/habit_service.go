package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "habitkit/internal/errors"
	"habitkit/internal/models"
	"habitkit/internal/pagination"
	"habitkit/internal/progress"
)

// habitService handles habit-related business logic.
type habitService struct {
	db *gorm.DB
}

// NewHabitService creates a new HabitServicer.
func NewHabitService(db *gorm.DB) HabitServicer {
	return &habitService{db: db}
}

// CreateHabit creates a new habit after validating its goal, money,
// tapering, and fixed-days configuration.
func (s *habitService) CreateHabit(userID uint, input HabitInput) (*models.Habit, error) {
	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "habit name is required")
	}
	if input.PointsPerCompletion == 0 {
		input.PointsPerCompletion = 10
	}
	if input.MoneyTrackingEnabled && input.Currency == "" {
		input.Currency = "USD"
	}

	habit := &models.Habit{
		UserID:               userID,
		Name:                 input.Name,
		Description:          input.Description,
		Icon:                 input.Icon,
		Color:                input.Color,
		Type:                 input.Type,
		GoalType:             input.GoalType,
		DailyGoal:            input.DailyGoal,
		Unit:                 input.Unit,
		PointsPerCompletion:  input.PointsPerCompletion,
		MoneyTrackingEnabled: input.MoneyTrackingEnabled,
		CostPerUnit:          input.CostPerUnit,
		Currency:             input.Currency,
		TaperingEnabled:      input.TaperingEnabled,
		TaperingStartDate:    input.TaperingStartDate,
		TaperingEndDate:      input.TaperingEndDate,
		TaperingStartValue:   input.TaperingStartValue,
		TaperingTargetValue:  input.TaperingTargetValue,
		FixedDaysEnabled:     input.FixedDaysEnabled,
		FixedDaysTarget:      input.FixedDaysTarget,
	}

	if habit.FixedDaysEnabled && habit.FixedDaysStartDate == nil {
		today := progress.Today()
		habit.FixedDaysStartDate = &today
	}

	if err := validateHabitConfig(habit); err != nil {
		return nil, err
	}

	if err := s.db.Create(habit).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return habit, nil
}

// validateHabitConfig enforces the cross-field habit invariants.
func validateHabitConfig(h *models.Habit) error {
	switch h.Type {
	case models.HabitTypePositive, models.HabitTypeNegative:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "habit type must be 'positive' or 'negative'")
	}
	switch h.GoalType {
	case models.GoalTypeMin, models.GoalTypeMax:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "goal type must be 'min' or 'max'")
	}

	if h.DailyGoal < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "daily goal cannot be negative")
	}
	// A zero goal means "none allowed" and only makes sense as a maximum.
	if h.Type == models.HabitTypePositive && h.DailyGoal < 1 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "positive habits need a daily goal of at least 1")
	}
	if h.PointsPerCompletion < 1 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "points per completion must be at least 1")
	}

	if h.MoneyTrackingEnabled && h.CostPerUnit < 1 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "money tracking requires a positive cost per unit")
	}

	if h.TaperingEnabled {
		if !h.TaperingApplicable() {
			return apperrors.ErrTaperingNotApplicable
		}
		if h.TaperingStartDate == nil || h.TaperingEndDate == nil {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "tapering requires a start and end date")
		}
		if !progress.DateOf(*h.TaperingEndDate).After(progress.DateOf(*h.TaperingStartDate)) {
			return apperrors.ErrInvalidTaperingSchedule
		}
		if h.TaperingStartValue < 0 || h.TaperingTargetValue < 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "tapering values cannot be negative")
		}
	}

	if h.FixedDaysEnabled && h.FixedDaysTarget < 1 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "fixed-days tracking requires a target of at least 1 day")
	}

	return nil
}

// GetUserHabits returns a paginated list of habits for the user with optional
// filters. Archived habits are excluded unless explicitly requested.
func (s *habitService) GetUserHabits(userID uint, page pagination.PageRequest, filter HabitFilter) (*pagination.PageResponse[models.Habit], error) {
	page.Defaults()

	base := s.db.Model(&models.Habit{}).Where("user_id = ?", userID)
	if filter.Archived != nil {
		base = base.Where("archived = ?", *filter.Archived)
	} else {
		base = base.Where("archived = ?", false)
	}
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		base = base.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var habits []models.Habit
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&habits).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(habits, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetHabitByID returns a habit by ID if it belongs to the user.
func (s *habitService) GetHabitByID(userID, habitID uint) (*models.Habit, error) {
	var habit models.Habit
	if err := s.db.Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHabitNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &habit, nil
}

// UpdateHabit updates an existing habit's fields and re-validates the
// resulting configuration. Archived habits must be unarchived first.
func (s *habitService) UpdateHabit(userID, habitID uint, update HabitUpdate) (*models.Habit, error) {
	habit, err := s.GetHabitByID(userID, habitID)
	if err != nil {
		return nil, err
	}
	if habit.Archived {
		return nil, apperrors.ErrHabitArchived
	}

	if update.Name != nil {
		habit.Name = *update.Name
	}
	if update.Description != nil {
		habit.Description = *update.Description
	}
	if update.Icon != nil {
		habit.Icon = *update.Icon
	}
	if update.Color != nil {
		habit.Color = *update.Color
	}
	if update.DailyGoal != nil {
		habit.DailyGoal = *update.DailyGoal
	}
	if update.Unit != nil {
		habit.Unit = *update.Unit
	}
	if update.PointsPerCompletion != nil {
		habit.PointsPerCompletion = *update.PointsPerCompletion
	}
	if update.MoneyTrackingEnabled != nil {
		habit.MoneyTrackingEnabled = *update.MoneyTrackingEnabled
	}
	if update.CostPerUnit != nil {
		habit.CostPerUnit = *update.CostPerUnit
	}
	if update.Currency != nil {
		habit.Currency = *update.Currency
	}
	if update.TaperingEnabled != nil {
		habit.TaperingEnabled = *update.TaperingEnabled
	}
	if update.TaperingStartDate != nil {
		habit.TaperingStartDate = update.TaperingStartDate
	}
	if update.TaperingEndDate != nil {
		habit.TaperingEndDate = update.TaperingEndDate
	}
	if update.TaperingStartValue != nil {
		habit.TaperingStartValue = *update.TaperingStartValue
	}
	if update.TaperingTargetValue != nil {
		habit.TaperingTargetValue = *update.TaperingTargetValue
	}

	if err := validateHabitConfig(habit); err != nil {
		return nil, err
	}

	if err := s.db.Save(habit).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return habit, nil
}

// ArchiveHabit marks a habit as archived, removing it from default listings
// and from progress computation.
func (s *habitService) ArchiveHabit(userID, habitID uint) (*models.Habit, error) {
	habit, err := s.GetHabitByID(userID, habitID)
	if err != nil {
		return nil, err
	}
	if habit.Archived {
		return habit, nil
	}

	now := time.Now()
	if err := s.db.Model(habit).Updates(map[string]interface{}{
		"archived":    true,
		"archived_at": now,
	}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	habit.Archived = true
	habit.ArchivedAt = &now
	return habit, nil
}

// UnarchiveHabit restores an archived habit to the active set.
func (s *habitService) UnarchiveHabit(userID, habitID uint) (*models.Habit, error) {
	habit, err := s.GetHabitByID(userID, habitID)
	if err != nil {
		return nil, err
	}
	if !habit.Archived {
		return habit, nil
	}

	if err := s.db.Model(habit).Updates(map[string]interface{}{
		"archived":    false,
		"archived_at": nil,
	}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	habit.Archived = false
	habit.ArchivedAt = nil
	return habit, nil
}

// DeleteHabit soft-deletes a habit and all of its dependent records.
func (s *habitService) DeleteHabit(userID, habitID uint) error {
	habit, err := s.GetHabitByID(userID, habitID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []interface{}{
			&models.HabitLog{},
			&models.Streak{},
			&models.MoneySaving{},
			&models.TaperingHistory{},
			&models.JournalEntry{},
		} {
			if err := tx.Where("habit_id = ?", habitID).Delete(dependent).Error; err != nil {
				return err
			}
		}
		return tx.Delete(habit).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ExtendFixedDays raises a fixed-days habit's target by the given number of
// days, so a completed run can be continued.
func (s *habitService) ExtendFixedDays(userID, habitID uint, additionalDays int) (*models.Habit, error) {
	if additionalDays < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "additional days must be at least 1")
	}

	habit, err := s.GetHabitByID(userID, habitID)
	if err != nil {
		return nil, err
	}
	if !habit.FixedDaysEnabled {
		return nil, apperrors.ErrNotFixedDaysHabit
	}

	newTarget := habit.FixedDaysTarget + additionalDays
	if err := s.db.Model(habit).Update("fixed_days_target", newTarget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	habit.FixedDaysTarget = newTarget
	return habit, nil
}

// GetTaperingHistory returns the recorded taper curve points for a habit,
// most recent first.
func (s *habitService) GetTaperingHistory(userID, habitID uint, page pagination.PageRequest) (*pagination.PageResponse[models.TaperingHistory], error) {
	page.Defaults()

	if _, err := s.GetHabitByID(userID, habitID); err != nil {
		return nil, err
	}

	base := s.db.Model(&models.TaperingHistory{}).Where("habit_id = ?", habitID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var history []models.TaperingHistory
	if err := base.Order("date DESC").Scopes(pagination.Paginate(page)).Find(&history).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(history, page.Page, page.PageSize, totalItems)
	return &result, nil
}
