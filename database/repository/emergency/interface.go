package emergencyRepo

import (
	"time"

	"medivault/models"
)

// EmergencyRepository defines persistence operations for emergency events
// and their embedded contactsNotified/accessedBy sublists.
type EmergencyRepository interface {
	Create(e *models.EmergencyEvent) error
	Update(e *models.EmergencyEvent) error
	GetByID(id string) (*models.EmergencyEvent, error)
	GetByUser(userID string) ([]models.EmergencyEvent, error)
	// GetActiveByUserAndToken fetches the active event carrying the exact
	// token for the user, regardless of expiry; expiry is the caller's check.
	GetActiveByUserAndToken(userID, token string) (*models.EmergencyEvent, error)
	AppendAccess(id string, entry models.AccessEntry) error
	SetContactsNotified(id string, notified []models.ContactNotification) error
	SetResolved(id, resolvedBy, notes string, at time.Time) error
}
