package handlers

import (
	"errors"
	"net/http"

	"medivault/models"
	"medivault/services/emergency"
	"medivault/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EmergencyHandler exposes SOS triggering, resolution and the public
// token-gated critical-profile endpoint.
type EmergencyHandler struct {
	Service emergency.EmergencyService
}

func NewEmergencyHandler(svc emergency.EmergencyService) *EmergencyHandler {
	return &EmergencyHandler{Service: svc}
}

// TriggerEmergencyHandler handles POST /api/emergency/trigger.
func (h *EmergencyHandler) TriggerEmergencyHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		Location *models.EmergencyLocation `json:"location"`
		Notes    string                    `json:"notes"`
	}
	// Location and notes are optional; a bare POST still triggers.
	_ = c.ShouldBindJSON(&input)

	result, err := h.Service.Trigger(c.Request.Context(), userID, input.Location, input.Notes)
	if err != nil {
		logger.Error("Failed to trigger emergency", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, result)
}

// ResolveEmergencyHandler handles POST /api/emergency/:id/resolve.
func (h *EmergencyHandler) ResolveEmergencyHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id := c.Param("id")

	var input struct {
		Notes string `json:"notes"`
	}
	_ = c.ShouldBindJSON(&input)

	event, err := h.Service.Resolve(c.Request.Context(), id, userID, input.Notes)
	if err != nil {
		logger.Error("Failed to resolve emergency", zap.String("id", id), zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, event)
}

// ListEmergenciesHandler handles GET /api/emergency.
func (h *EmergencyHandler) ListEmergenciesHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	events, err := h.Service.ListByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, events)
}

// PublicEmergencyAccessHandler handles GET /api/public/emergency/:username/:token.
// No authentication; the token is the credential. Every denial reads the
// same regardless of cause.
func (h *EmergencyHandler) PublicEmergencyAccessHandler(c *gin.Context) {
	logger := utils.GetLogger()
	username := c.Param("username")
	token := c.Param("token")
	accessorType := c.DefaultQuery("accessorType", "anonymous")
	identifier := c.Query("identifier")
	if identifier == "" {
		identifier = c.ClientIP()
	}

	profile, err := h.Service.ReadCriticalProfile(c.Request.Context(), username, token, accessorType, identifier)
	if err != nil {
		if errors.Is(err, emergency.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		logger.Error("Failed to read critical profile", zap.String("username", username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, profile)
}
