package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "habitkit/internal/errors"
	"habitkit/internal/services"
)

// LogHandler handles habit log requests.
type LogHandler struct {
	logService   services.LogServicer
	auditService services.AuditServicer
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(logService services.LogServicer, auditService services.AuditServicer) *LogHandler {
	return &LogHandler{logService: logService, auditService: auditService}
}

// CreateLogRequest represents the request payload for logging a habit event.
type CreateLogRequest struct {
	HabitID uint   `json:"habit_id" binding:"required"`
	Count   int    `json:"count" binding:"omitempty,min=1,max=10000"`
	Note    string `json:"note" binding:"max=500"`
}

// CreateLog handles recording a habit event for today.
// @Summary     Log a habit event
// @Description Record a habit event for today; points, streak, savings, and fixed-days progress update as follow-ups
// @Tags        logs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateLogRequest true "Log details"
// @Success     201 {object} models.HabitLog "Log created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Failure     409 {object} ErrorResponse "Habit is archived"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /logs [post]
func (h *LogHandler) CreateLog(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	count := req.Count
	if count == 0 {
		count = 1
	}

	log, err := h.logService.CreateLog(userID, req.HabitID, count, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_LOG", "habit_log", log.ID, c.ClientIP(),
		map[string]interface{}{"habit_id": req.HabitID, "count": count})

	c.JSON(http.StatusCreated, gin.H{"log": log})
}

// DeleteLog handles deleting a habit log.
// @Summary     Delete log
// @Description Delete a habit log; derived progress is not rewound
// @Tags        logs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Log ID"
// @Success     200 {object} MessageResponse "Log deleted"
// @Failure     400 {object} ErrorResponse "Invalid log ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Log not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /logs/{id} [delete]
func (h *LogHandler) DeleteLog(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.logService.DeleteLog(userID, logID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_LOG", "habit_log", logID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Log deleted successfully"})
}
