package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// currentUserID pulls the authenticated user ID set by the auth middleware.
// Aborts with 401 if the request somehow reached a handler without it.
func currentUserID(c *gin.Context) (string, bool) {
	id, ok := c.Get("userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return "", false
	}
	idStr, ok := id.(string)
	if !ok || idStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return "", false
	}
	return idStr, true
}
