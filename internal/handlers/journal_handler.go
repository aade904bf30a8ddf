package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "habitkit/internal/errors"
	"habitkit/internal/models"
	"habitkit/internal/pagination"
	"habitkit/internal/progress"
	"habitkit/internal/services"
)

// JournalHandler handles journal entry requests.
type JournalHandler struct {
	journalService services.JournalServicer
	auditService   services.AuditServicer
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journalService services.JournalServicer, auditService services.AuditServicer) *JournalHandler {
	return &JournalHandler{journalService: journalService, auditService: auditService}
}

// CreateJournalEntryRequest represents the request payload for creating a
// journal entry.
type CreateJournalEntryRequest struct {
	HabitID   uint        `json:"habit_id" binding:"required"`
	Date      string      `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Content   string      `json:"content" binding:"required,min=1,max=5000"`
	Mood      models.Mood `json:"mood" binding:"required,mood"`
	Triggers  []string    `json:"triggers" binding:"omitempty,max=20,dive,min=1,max=50"`
	UrgeLevel *int        `json:"urge_level" binding:"omitempty,min=0,max=10"`
}

// UpdateJournalEntryRequest represents the request payload for updating a
// journal entry.
type UpdateJournalEntryRequest struct {
	Content   *string      `json:"content" binding:"omitempty,min=1,max=5000"`
	Mood      *models.Mood `json:"mood" binding:"omitempty,mood"`
	Triggers  []string     `json:"triggers" binding:"omitempty,max=20,dive,min=1,max=50"`
	UrgeLevel *int         `json:"urge_level" binding:"omitempty,min=0,max=10"`
}

// CreateEntry handles creating a journal entry.
// @Summary     Create journal entry
// @Description Create a journal entry tied to a habit
// @Tags        journal
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateJournalEntryRequest true "Entry details"
// @Success     201 {object} models.JournalEntry "Entry created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /journal [post]
func (h *JournalHandler) CreateEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.JournalInput{
		HabitID:   req.HabitID,
		Content:   req.Content,
		Mood:      req.Mood,
		Triggers:  req.Triggers,
		UrgeLevel: req.UrgeLevel,
	}
	if req.Date != "" {
		t, _ := progress.ParseDate(req.Date)
		input.Date = &t
	}

	entry, err := h.journalService.CreateEntry(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_JOURNAL_ENTRY", "journal_entry", entry.ID, c.ClientIP(),
		map[string]interface{}{"habit_id": req.HabitID, "mood": req.Mood})

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// GetEntries handles listing journal entries.
// @Summary     Get journal entries
// @Description Get a paginated list of journal entries with optional filters
// @Tags        journal
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       habit_id  query int    false "Filter by habit"
// @Param       from      query string false "Start date (YYYY-MM-DD)"
// @Param       to        query string false "End date (YYYY-MM-DD)"
// @Param       mood      query string false "Filter by mood"
// @Param       search    query string false "Search in content"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.JournalEntry] "Paginated entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /journal [get]
func (h *JournalHandler) GetEntries(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.JournalFilter
	if v := c.Query("habit_id"); v != "" {
		id, err := parseUintQuery(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "habit_id must be a positive integer"))
			return
		}
		filter.HabitID = &id
	}
	var parseErr error
	if filter.FromDate, parseErr = parseDateQuery(c, "from"); parseErr != nil {
		respondWithError(c, parseErr)
		return
	}
	if filter.ToDate, parseErr = parseDateQuery(c, "to"); parseErr != nil {
		respondWithError(c, parseErr)
		return
	}
	if v := c.Query("mood"); v != "" {
		m := models.Mood(v)
		if !m.Valid() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "mood must be one of: great, good, neutral, bad, awful"))
			return
		}
		filter.Mood = &m
	}
	filter.Search = c.Query("search")

	result, err := h.journalService.GetEntries(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetEntry handles retrieving a single journal entry.
// @Summary     Get journal entry by ID
// @Description Get a specific journal entry by ID
// @Tags        journal
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Entry ID"
// @Success     200 {object} models.JournalEntry "Entry details"
// @Failure     400 {object} ErrorResponse "Invalid entry ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /journal/{id} [get]
func (h *JournalHandler) GetEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.journalService.GetEntryByID(userID, entryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// UpdateEntry handles updating a journal entry.
// @Summary     Update journal entry
// @Description Update an existing journal entry
// @Tags        journal
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                       true "Entry ID"
// @Param       request body UpdateJournalEntryRequest true "Updated entry details"
// @Success     200 {object} models.JournalEntry "Updated entry"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /journal/{id} [put]
func (h *JournalHandler) UpdateEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.journalService.UpdateEntry(userID, entryID, services.JournalUpdate{
		Content:   req.Content,
		Mood:      req.Mood,
		Triggers:  req.Triggers,
		UrgeLevel: req.UrgeLevel,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_JOURNAL_ENTRY", "journal_entry", entryID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// DeleteEntry handles deleting a journal entry.
// @Summary     Delete journal entry
// @Description Delete a journal entry
// @Tags        journal
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Entry ID"
// @Success     200 {object} MessageResponse "Entry deleted"
// @Failure     400 {object} ErrorResponse "Invalid entry ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /journal/{id} [delete]
func (h *JournalHandler) DeleteEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.journalService.DeleteEntry(userID, entryID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_JOURNAL_ENTRY", "journal_entry", entryID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Journal entry deleted successfully"})
}
