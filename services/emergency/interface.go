package emergency

import (
	"context"
	"time"

	emergencyRepo "medivault/database/repository/emergency"
	medicationRepo "medivault/database/repository/medication"
	userRepo "medivault/database/repository/user"
	"medivault/models"
	"medivault/services/notification"
)

// tokenValidity is how long an emergency access token stays usable.
const tokenValidity = 48 * time.Hour

// TriggerResult is what an SOS trigger reports back to the user.
type TriggerResult struct {
	Event            *models.EmergencyEvent `json:"event"`
	AccessLink       string                 `json:"accessLink"`
	ContactsNotified int                    `json:"contactsNotified"`
	SuccessCount     int                    `json:"successCount"`
	FailureCount     int                    `json:"failureCount"`
}

// CriticalProfile is the reduced view exposed through a valid access token.
// Only the fields the user opted into are populated.
type CriticalProfile struct {
	Name        string     `json:"name"`
	PhotoURL    string     `json:"photoUrl,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`

	BloodType         string                   `json:"bloodType,omitempty"`
	Allergies         []string                 `json:"allergies,omitempty"`
	ChronicConditions []string                 `json:"chronicConditions,omitempty"`
	EmergencyContact  *models.EmergencyContact `json:"emergencyContact,omitempty"`
	Medications       []models.Medication      `json:"medications,omitempty"`
	HealthMetrics     []models.HealthMetric    `json:"healthMetrics,omitempty"`

	Location    *models.EmergencyLocation `json:"location,omitempty"`
	TriggeredAt time.Time                 `json:"triggeredAt"`
}

// EmergencyService coordinates SOS episodes: triggering with contact
// fan-out, resolution, and token-gated critical-profile reads.
type EmergencyService interface {
	Trigger(ctx context.Context, userID string, location *models.EmergencyLocation, notes string) (*TriggerResult, error)
	Resolve(ctx context.Context, eventID, userID, notes string) (*models.EmergencyEvent, error)
	ReadCriticalProfile(ctx context.Context, username, token, accessorType, identifier string) (*CriticalProfile, error)
	ListByUser(userID string) ([]models.EmergencyEvent, error)
}

// DefaultEmergencyService is the production implementation.
type DefaultEmergencyService struct {
	Repo        emergencyRepo.EmergencyRepository
	Users       userRepo.UserRepository
	Medications medicationRepo.MedicationRepository
	Notifier    notification.NotificationService
	SMS         notification.SMSProvider
	Email       notification.EmailProvider

	// PublicBaseURL is the origin embedded in access links.
	PublicBaseURL string

	// Clock is overridable for tests; nil means time.Now.
	Clock func() time.Time
}

func (s *DefaultEmergencyService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
