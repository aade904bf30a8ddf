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

// HabitHandler handles habit-related requests.
type HabitHandler struct {
	habitService    services.HabitServicer
	logService      services.LogServicer
	moneyService    services.MoneyServicer
	progressService services.ProgressServicer
	auditService    services.AuditServicer
}

// NewHabitHandler creates a new HabitHandler.
func NewHabitHandler(
	habitService services.HabitServicer,
	logService services.LogServicer,
	moneyService services.MoneyServicer,
	progressService services.ProgressServicer,
	auditService services.AuditServicer,
) *HabitHandler {
	return &HabitHandler{
		habitService:    habitService,
		logService:      logService,
		moneyService:    moneyService,
		progressService: progressService,
		auditService:    auditService,
	}
}

// CreateHabitRequest represents the request payload for creating a habit.
type CreateHabitRequest struct {
	Name                 string           `json:"name" binding:"required,min=1,max=100"`
	Description          string           `json:"description" binding:"max=500"`
	Icon                 string           `json:"icon" binding:"max=50"`
	Color                string           `json:"color" binding:"omitempty,hex_color"`
	Type                 models.HabitType `json:"type" binding:"required,habit_type"`
	GoalType             models.GoalType  `json:"goal_type" binding:"required,goal_type"`
	DailyGoal            *int             `json:"daily_goal" binding:"required,min=0"`
	Unit                 string           `json:"unit" binding:"max=30"`
	PointsPerCompletion  int              `json:"points_per_completion" binding:"omitempty,min=1,max=1000"`
	MoneyTrackingEnabled bool             `json:"money_tracking_enabled"`
	CostPerUnit          int64            `json:"cost_per_unit" binding:"omitempty,min=1"`
	Currency             string           `json:"currency" binding:"omitempty,iso4217"`
	TaperingEnabled      bool             `json:"tapering_enabled"`
	TaperingStartDate    string           `json:"tapering_start_date" binding:"omitempty,datetime=2006-01-02"`
	TaperingEndDate      string           `json:"tapering_end_date" binding:"omitempty,datetime=2006-01-02"`
	TaperingStartValue   int              `json:"tapering_start_value" binding:"omitempty,min=0"`
	TaperingTargetValue  int              `json:"tapering_target_value" binding:"omitempty,min=0"`
	FixedDaysEnabled     bool             `json:"fixed_days_enabled"`
	FixedDaysTarget      int              `json:"fixed_days_target" binding:"omitempty,min=1,max=3650"`
}

// UpdateHabitRequest represents the request payload for updating a habit.
type UpdateHabitRequest struct {
	Name                 *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description          *string `json:"description" binding:"omitempty,max=500"`
	Icon                 *string `json:"icon" binding:"omitempty,max=50"`
	Color                *string `json:"color" binding:"omitempty,hex_color"`
	DailyGoal            *int    `json:"daily_goal" binding:"omitempty,min=0"`
	Unit                 *string `json:"unit" binding:"omitempty,max=30"`
	PointsPerCompletion  *int    `json:"points_per_completion" binding:"omitempty,min=1,max=1000"`
	MoneyTrackingEnabled *bool   `json:"money_tracking_enabled"`
	CostPerUnit          *int64  `json:"cost_per_unit" binding:"omitempty,min=1"`
	Currency             *string `json:"currency" binding:"omitempty,iso4217"`
	TaperingEnabled      *bool   `json:"tapering_enabled"`
	TaperingStartDate    string  `json:"tapering_start_date" binding:"omitempty,datetime=2006-01-02"`
	TaperingEndDate      string  `json:"tapering_end_date" binding:"omitempty,datetime=2006-01-02"`
	TaperingStartValue   *int    `json:"tapering_start_value" binding:"omitempty,min=0"`
	TaperingTargetValue  *int    `json:"tapering_target_value" binding:"omitempty,min=0"`
}

// ExtendFixedDaysRequest represents the request payload for extending a
// fixed-days habit.
type ExtendFixedDaysRequest struct {
	AdditionalDays int `json:"additional_days" binding:"required,min=1,max=3650"`
}

// CreateHabit handles the creation of a new habit.
// @Summary     Create a habit
// @Description Create a new habit with optional money, tapering, and fixed-days tracking
// @Tags        habits
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateHabitRequest true "Habit details"
// @Success     201 {object} models.Habit "Habit created"
// @Failure     400 {object} ErrorResponse "Invalid input or configuration"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits [post]
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.HabitInput{
		Name:                 req.Name,
		Description:          req.Description,
		Icon:                 req.Icon,
		Color:                req.Color,
		Type:                 req.Type,
		GoalType:             req.GoalType,
		DailyGoal:            *req.DailyGoal,
		Unit:                 req.Unit,
		PointsPerCompletion:  req.PointsPerCompletion,
		MoneyTrackingEnabled: req.MoneyTrackingEnabled,
		CostPerUnit:          req.CostPerUnit,
		Currency:             req.Currency,
		TaperingEnabled:      req.TaperingEnabled,
		TaperingStartValue:   req.TaperingStartValue,
		TaperingTargetValue:  req.TaperingTargetValue,
		FixedDaysEnabled:     req.FixedDaysEnabled,
		FixedDaysTarget:      req.FixedDaysTarget,
	}
	if req.TaperingStartDate != "" {
		t, _ := progress.ParseDate(req.TaperingStartDate)
		input.TaperingStartDate = &t
	}
	if req.TaperingEndDate != "" {
		t, _ := progress.ParseDate(req.TaperingEndDate)
		input.TaperingEndDate = &t
	}

	habit, err := h.habitService.CreateHabit(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_HABIT", "habit", habit.ID, c.ClientIP(),
		map[string]interface{}{"name": habit.Name, "type": habit.Type, "goal_type": habit.GoalType})

	c.JSON(http.StatusCreated, gin.H{"habit": habit})
}

// GetHabits handles listing habits for the authenticated user.
// @Summary     Get habits
// @Description Get a paginated list of habits for the authenticated user; archived habits are excluded unless requested
// @Tags        habits
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       type      query string false "Filter by habit type (positive/negative)"
// @Param       archived  query bool   false "List archived habits instead of active ones"
// @Param       search    query string false "Search in name and description"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Habit] "Paginated habits"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits [get]
func (h *HabitHandler) GetHabits(c *gin.Context) {
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

	var filter services.HabitFilter
	if v := c.Query("type"); v != "" {
		t := models.HabitType(v)
		if t != models.HabitTypePositive && t != models.HabitTypeNegative {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be 'positive' or 'negative'"))
			return
		}
		filter.Type = &t
	}
	if v := c.Query("archived"); v != "" {
		switch v {
		case "true":
			b := true
			filter.Archived = &b
		case "false":
			b := false
			filter.Archived = &b
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "archived must be 'true' or 'false'"))
			return
		}
	}
	filter.Search = c.Query("search")

	result, err := h.habitService.GetUserHabits(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetHabit handles retrieving a specific habit.
// @Summary     Get habit by ID
// @Description Get a specific habit by ID
// @Tags        habits
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Habit ID"
// @Success     200 {object} models.Habit "Habit details"
// @Failure     400 {object} ErrorResponse "Invalid habit ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id} [get]
func (h *HabitHandler) GetHabit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	habit, err := h.habitService.GetHabitByID(userID, habitID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"habit": habit})
}

// UpdateHabit handles updating an existing habit.
// @Summary     Update habit
// @Description Update an existing habit's configuration
// @Tags        habits
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int               true "Habit ID"
// @Param       request body UpdateHabitRequest true "Updated habit details"
// @Success     200 {object} models.Habit "Updated habit"
// @Failure     400 {object} ErrorResponse "Invalid input or configuration"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Failure     409 {object} ErrorResponse "Habit is archived"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id} [put]
func (h *HabitHandler) UpdateHabit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.HabitUpdate{
		Name:                 req.Name,
		Description:          req.Description,
		Icon:                 req.Icon,
		Color:                req.Color,
		DailyGoal:            req.DailyGoal,
		Unit:                 req.Unit,
		PointsPerCompletion:  req.PointsPerCompletion,
		MoneyTrackingEnabled: req.MoneyTrackingEnabled,
		CostPerUnit:          req.CostPerUnit,
		Currency:             req.Currency,
		TaperingEnabled:      req.TaperingEnabled,
		TaperingStartValue:   req.TaperingStartValue,
		TaperingTargetValue:  req.TaperingTargetValue,
	}
	if req.TaperingStartDate != "" {
		t, _ := progress.ParseDate(req.TaperingStartDate)
		update.TaperingStartDate = &t
	}
	if req.TaperingEndDate != "" {
		t, _ := progress.ParseDate(req.TaperingEndDate)
		update.TaperingEndDate = &t
	}

	habit, err := h.habitService.UpdateHabit(userID, habitID, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_HABIT", "habit", habitID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"habit": habit})
}

// ArchiveHabit handles archiving a habit.
// @Summary     Archive habit
// @Description Archive a habit, removing it from default listings and progress
// @Tags        habits
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Habit ID"
// @Success     200 {object} models.Habit "Archived habit"
// @Failure     400 {object} ErrorResponse "Invalid habit ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id}/archive [post]
func (h *HabitHandler) ArchiveHabit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	habit, err := h.habitService.ArchiveHabit(userID, habitID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "ARCHIVE_HABIT", "habit", habitID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"habit": habit})
}

// UnarchiveHabit handles restoring an archived habit.
// @Summary     Unarchive habit
// @Description Restore an archived habit to the active set
// @Tags        habits
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Habit ID"
// @Success     200 {object} models.Habit "Restored habit"
// @Failure     400 {object} ErrorResponse "Invalid habit ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id}/unarchive [post]
func (h *HabitHandler) UnarchiveHabit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	habit, err := h.habitService.UnarchiveHabit(userID, habitID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"habit": habit})
}

// DeleteHabit handles deleting a habit and its dependent records.
// @Summary     Delete habit
// @Description Delete a habit along with its logs, streak, savings, and journal entries
// @Tags        habits
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Habit ID"
// @Success     200 {object} MessageResponse "Habit deleted"
// @Failure     400 {object} ErrorResponse "Invalid habit ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id} [delete]
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.habitService.DeleteHabit(userID, habitID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_HABIT", "habit", habitID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Habit deleted successfully"})
}

// ExtendFixedDays handles raising a fixed-days habit's target.
// @Summary     Extend fixed-days target
// @Description Add days to a fixed-days habit's target so a completed run can continue
// @Tags        habits
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                    true "Habit ID"
// @Param       request body ExtendFixedDaysRequest true "Days to add"
// @Success     200 {object} models.Habit "Updated habit"
// @Failure     400 {object} ErrorResponse "Invalid input or not a fixed-days habit"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id}/extend [post]
func (h *HabitHandler) ExtendFixedDays(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExtendFixedDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	habit, err := h.habitService.ExtendFixedDays(userID, habitID, req.AdditionalDays)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "EXTEND_FIXED_DAYS", "habit", habitID, c.ClientIP(),
		map[string]interface{}{"additional_days": req.AdditionalDays})

	c.JSON(http.StatusOK, gin.H{"habit": habit})
}

// GetHabitProgress handles retrieving the composed progress view for a habit.
// @Summary     Get habit progress
// @Description Get the derived progress view for a habit on a day (default today)
// @Tags        habits
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path  int    true  "Habit ID"
// @Param       date query string false "Day to evaluate (YYYY-MM-DD, default today)"
// @Success     200 {object} services.HabitWithProgress "Habit with progress"
// @Failure     400 {object} ErrorResponse "Invalid habit ID or date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Failure     409 {object} ErrorResponse "Habit is archived"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id}/progress [get]
func (h *HabitHandler) GetHabitProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	day := progress.Today()
	if d, err := parseDateQuery(c, "date"); err != nil {
		respondWithError(c, err)
		return
	} else if d != nil {
		day = *d
	}

	view, err := h.progressService.GetHabitProgress(userID, habitID, day)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": view})
}

// GetHabitLogs handles listing the logs of a habit.
// @Summary     Get habit logs
// @Description Get a paginated list of a habit's logs, newest first
// @Tags        habits
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  int    true  "Habit ID"
// @Param       from      query string false "Start date (YYYY-MM-DD)"
// @Param       to        query string false "End date (YYYY-MM-DD)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.HabitLog] "Paginated logs"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id}/logs [get]
func (h *HabitHandler) GetHabitLogs(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.LogFilter
	var parseErr error
	if filter.FromDate, parseErr = parseDateQuery(c, "from"); parseErr != nil {
		respondWithError(c, parseErr)
		return
	}
	if filter.ToDate, parseErr = parseDateQuery(c, "to"); parseErr != nil {
		respondWithError(c, parseErr)
		return
	}

	result, err := h.logService.GetHabitLogs(userID, habitID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetHabitSavings handles listing the per-day money savings of a habit.
// @Summary     Get habit savings
// @Description Get a paginated list of a habit's per-day money savings plus the cumulative total
// @Tags        habits
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  int true  "Habit ID"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.MoneySaving] "Paginated savings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id}/savings [get]
func (h *HabitHandler) GetHabitSavings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if _, err := h.habitService.GetHabitByID(userID, habitID); err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.moneyService.GetHabitSavings(userID, habitID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	total, err := h.moneyService.GetTotalSaved(userID, habitID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"savings": result, "total_saved": total})
}

// GetTaperingHistory handles listing the recorded taper curve of a habit.
// @Summary     Get tapering history
// @Description Get the recorded effective-goal history of a tapering habit, newest first
// @Tags        habits
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  int true  "Habit ID"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.TaperingHistory] "Paginated history"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id}/tapering-history [get]
func (h *HabitHandler) GetTaperingHistory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.habitService.GetTaperingHistory(userID, habitID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
