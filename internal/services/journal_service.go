package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "habitkit/internal/errors"
	"habitkit/internal/models"
	"habitkit/internal/pagination"
	"habitkit/internal/progress"
)

// journalService handles journal entry CRUD.
type journalService struct {
	db *gorm.DB
}

// NewJournalService creates a new JournalServicer.
func NewJournalService(db *gorm.DB) JournalServicer {
	return &journalService{db: db}
}

// CreateEntry creates a journal entry tied to a habit and a calendar day.
// The date defaults to today when not supplied.
func (s *journalService) CreateEntry(userID uint, input JournalInput) (*models.JournalEntry, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "journal content is required")
	}
	if input.UrgeLevel != nil && (*input.UrgeLevel < 0 || *input.UrgeLevel > 10) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "urge level must be between 0 and 10")
	}

	// Verify habit exists and belongs to user
	var count int64
	if err := s.db.Model(&models.Habit{}).
		Where("id = ? AND user_id = ?", input.HabitID, userID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrHabitNotFound
	}

	day := progress.Today()
	if input.Date != nil {
		day = progress.DateOf(*input.Date)
	}

	entry := &models.JournalEntry{
		HabitID:   input.HabitID,
		UserID:    userID,
		Date:      day,
		Content:   input.Content,
		Mood:      input.Mood,
		Triggers:  input.Triggers,
		UrgeLevel: input.UrgeLevel,
	}

	if err := s.db.Create(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return entry, nil
}

// GetEntries returns a paginated list of the user's journal entries, newest
// first, with optional habit, date range, mood, and text filters.
func (s *journalService) GetEntries(userID uint, page pagination.PageRequest, filter JournalFilter) (*pagination.PageResponse[models.JournalEntry], error) {
	page.Defaults()

	base := s.db.Model(&models.JournalEntry{}).Where("user_id = ?", userID)
	if filter.HabitID != nil {
		base = base.Where("habit_id = ?", *filter.HabitID)
	}
	if filter.FromDate != nil {
		base = base.Where("date >= ?", progress.DateOf(*filter.FromDate))
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", progress.DateOf(*filter.ToDate))
	}
	if filter.Mood != nil {
		base = base.Where("mood = ?", *filter.Mood)
	}
	if filter.Search != "" {
		base = base.Where("LOWER(content) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.JournalEntry
	if err := base.Order("date DESC, created_at DESC").Scopes(pagination.Paginate(page)).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetEntryByID returns a journal entry by ID if it belongs to the user.
func (s *journalService) GetEntryByID(userID, entryID uint) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	if err := s.db.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrJournalEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entry, nil
}

// UpdateEntry updates an existing journal entry's fields.
func (s *journalService) UpdateEntry(userID, entryID uint, update JournalUpdate) (*models.JournalEntry, error) {
	entry, err := s.GetEntryByID(userID, entryID)
	if err != nil {
		return nil, err
	}

	if update.UrgeLevel != nil && (*update.UrgeLevel < 0 || *update.UrgeLevel > 10) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "urge level must be between 0 and 10")
	}

	if update.Content != nil {
		if strings.TrimSpace(*update.Content) == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "journal content is required")
		}
		entry.Content = *update.Content
	}
	if update.Mood != nil {
		entry.Mood = *update.Mood
	}
	if update.Triggers != nil {
		entry.Triggers = update.Triggers
	}
	if update.UrgeLevel != nil {
		entry.UrgeLevel = update.UrgeLevel
	}

	if err := s.db.Save(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return entry, nil
}

// DeleteEntry soft-deletes a journal entry.
func (s *journalService) DeleteEntry(userID, entryID uint) error {
	entry, err := s.GetEntryByID(userID, entryID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
