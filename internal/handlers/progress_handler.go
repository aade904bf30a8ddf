package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "habitkit/internal/errors"
	"habitkit/internal/progress"
	"habitkit/internal/services"
)

// ProgressHandler handles dashboard and points requests.
type ProgressHandler struct {
	progressService services.ProgressServicer
	pointsService   services.PointsServicer
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService services.ProgressServicer, pointsService services.PointsServicer) *ProgressHandler {
	return &ProgressHandler{progressService: progressService, pointsService: pointsService}
}

// GetDashboard handles the composed progress view for all active habits.
// @Summary     Get dashboard
// @Description Get the derived progress views for all active habits on a day (default today)
// @Tags        progress
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       date query string false "Day to evaluate (YYYY-MM-DD, default today)"
// @Success     200 {array} services.HabitWithProgress "Habits with progress"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /progress/dashboard [get]
func (h *ProgressHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
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

	views, err := h.progressService.GetDashboard(userID, day)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":   progress.FormatDate(day),
		"habits": views,
	})
}

// GetMyPoints handles the authenticated user's point total.
// @Summary     Get my points
// @Description Get the authenticated user's total accumulated points
// @Tags        progress
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]int64 "Total points"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /points [get]
func (h *ProgressHandler) GetMyPoints(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	total, err := h.pointsService.GetTotalPoints(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_points": total})
}

// GetLeaderboard handles the points leaderboard.
// @Summary     Get leaderboard
// @Description Get the top users by total points; deactivated accounts are excluded
// @Tags        progress
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       limit query int false "Number of rows (default 10, max 100)"
// @Success     200 {array} services.LeaderboardEntry "Leaderboard rows"
// @Failure     400 {object} ErrorResponse "Invalid limit"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /points/leaderboard [get]
func (h *ProgressHandler) GetLeaderboard(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = n
	}

	entries, err := h.pointsService.GetLeaderboard(limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
