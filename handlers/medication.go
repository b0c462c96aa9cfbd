package handlers

import (
	"net/http"
	"strconv"

	"medivault/models"
	"medivault/services/medication"
	"medivault/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MedicationHandler exposes medication CRUD, intake logging and adherence.
type MedicationHandler struct {
	Service medication.MedicationService
}

func NewMedicationHandler(svc medication.MedicationService) *MedicationHandler {
	return &MedicationHandler{Service: svc}
}

// CreateMedicationHandler handles POST /api/medications.
func (h *MedicationHandler) CreateMedicationHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var med models.Medication
	if err := c.ShouldBindJSON(&med); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	med.UserID = userID

	created, err := h.Service.Create(&med)
	if err != nil {
		logger.Error("Failed to create medication", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateMedicationHandler handles PUT /api/medications/:id.
func (h *MedicationHandler) UpdateMedicationHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var med models.Medication
	if err := c.ShouldBindJSON(&med); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	med.ID = c.Param("id")
	med.UserID = userID

	updated, err := h.Service.Update(&med)
	if err != nil {
		logger.Error("Failed to update medication", zap.String("id", med.ID), zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteMedicationHandler handles DELETE /api/medications/:id.
func (h *MedicationHandler) DeleteMedicationHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if err := h.Service.Delete(userID, id); err != nil {
		logger.Error("Failed to delete medication", zap.String("id", id), zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Medication deleted"})
}

// GetMedicationHandler handles GET /api/medications/:id.
func (h *MedicationHandler) GetMedicationHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	med, err := h.Service.GetByID(userID, c.Param("id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, med)
}

// ListMedicationsHandler handles GET /api/medications.
func (h *MedicationHandler) ListMedicationsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	meds, err := h.Service.ListByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meds)
}

// LogIntakeHandler handles POST /api/medications/:id/intake.
func (h *MedicationHandler) LogIntakeHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id := c.Param("id")

	var input struct {
		Taken bool   `json:"taken"`
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	med, err := h.Service.LogIntake(c.Request.Context(), userID, id, input.Taken, input.Notes)
	if err != nil {
		logger.Error("Failed to log intake", zap.String("id", id), zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, med)
}

// GetAdherenceHandler handles GET /api/medications/:id/adherence.
// Optional ?days= selects the lookback window, default 30.
func (h *MedicationHandler) GetAdherenceHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id := c.Param("id")

	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days value"})
			return
		}
		days = parsed
	}

	pct, err := h.Service.GetAdherence(userID, id, days)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"medicationId": id, "days": days, "adherence": pct})
}
