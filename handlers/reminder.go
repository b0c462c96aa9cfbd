package handlers

import (
	"net/http"
	"strings"
	"time"

	"medivault/models"
	"medivault/services/reminder"
	"medivault/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReminderHandler exposes reminder CRUD and completion tracking.
type ReminderHandler struct {
	Service reminder.ReminderService
}

func NewReminderHandler(svc reminder.ReminderService) *ReminderHandler {
	return &ReminderHandler{Service: svc}
}

// CreateReminderHandler handles POST /api/reminders.
func (h *ReminderHandler) CreateReminderHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var rem models.Reminder
	if err := c.ShouldBindJSON(&rem); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	rem.UserID = userID

	created, err := h.Service.Create(&rem)
	if err != nil {
		logger.Error("Failed to create reminder", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateReminderHandler handles PUT /api/reminders/:id.
func (h *ReminderHandler) UpdateReminderHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var rem models.Reminder
	if err := c.ShouldBindJSON(&rem); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	rem.ID = c.Param("id")
	rem.UserID = userID

	updated, err := h.Service.Update(&rem)
	if err != nil {
		logger.Error("Failed to update reminder", zap.String("id", rem.ID), zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteReminderHandler handles DELETE /api/reminders/:id.
func (h *ReminderHandler) DeleteReminderHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if err := h.Service.Delete(userID, id); err != nil {
		logger.Error("Failed to delete reminder", zap.String("id", id), zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted"})
}

// GetReminderHandler handles GET /api/reminders/:id.
func (h *ReminderHandler) GetReminderHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	rem, err := h.Service.GetByID(userID, c.Param("id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rem)
}

// ListRemindersHandler handles GET /api/reminders.
func (h *ReminderHandler) ListRemindersHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	rems, err := h.Service.ListByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rems)
}

// ListUpcomingRemindersHandler handles GET /api/reminders/upcoming.
// Optional ?window= accepts a Go duration, default 24h.
func (h *ReminderHandler) ListUpcomingRemindersHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	window := 24 * time.Hour
	if raw := c.Query("window"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window duration"})
			return
		}
		window = parsed
	}
	rems, err := h.Service.ListUpcoming(userID, window)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rems)
}

// CompleteReminderHandler handles POST /api/reminders/:id/complete.
func (h *ReminderHandler) CompleteReminderHandler(c *gin.Context) {
	h.markReminder(c, true)
}

// MissReminderHandler handles POST /api/reminders/:id/miss.
func (h *ReminderHandler) MissReminderHandler(c *gin.Context) {
	h.markReminder(c, false)
}

func (h *ReminderHandler) markReminder(c *gin.Context, completed bool) {
	logger := utils.GetLogger()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id := c.Param("id")

	var input struct {
		Date *time.Time `json:"date"`
	}
	// Body is optional; an empty body means today.
	_ = c.ShouldBindJSON(&input)
	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	var err error
	if completed {
		err = h.Service.MarkCompleted(userID, id, date)
	} else {
		err = h.Service.MarkMissed(userID, id, date)
	}
	if err != nil {
		logger.Error("Failed to mark reminder", zap.String("id", id), zap.Bool("completed", completed), zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder updated"})
}

// statusForError maps repository errors onto HTTP statuses the way the
// storage layer phrases them.
func statusForError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if strings.Contains(err.Error(), "not found") {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
