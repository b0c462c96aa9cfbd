package medication

import (
	"context"
	"time"

	medicationRepo "medivault/database/repository/medication"
	reminderRepo "medivault/database/repository/reminder"
	"medivault/models"
	"medivault/services/notification"
)

// MedicationService owns medication CRUD, intake logging, adherence
// reporting and the 30-minute missed-dose sweep.
type MedicationService interface {
	Create(m *models.Medication) (*models.Medication, error)
	Update(m *models.Medication) (*models.Medication, error)
	Delete(userID, id string) error
	GetByID(userID, id string) (*models.Medication, error)
	ListByUser(userID string) ([]models.Medication, error)
	// LogIntake records whether today's dose was taken. Logging taken=true
	// clears any missed-dose entry already recorded for today.
	LogIntake(ctx context.Context, userID, id string, taken bool, notes string) (*models.Medication, error)
	// GetAdherence returns the percentage of the last N days with a
	// taken dose logged.
	GetAdherence(userID, id string, days int) (float64, error)
	// Sweep detects missed doses across all eligible medications.
	Sweep(ctx context.Context, now time.Time) error
}

// DefaultMedicationService is the production implementation.
type DefaultMedicationService struct {
	Repo      medicationRepo.MedicationRepository
	Reminders reminderRepo.ReminderRepository
	Notifier  notification.NotificationService

	// Clock is overridable for tests; nil means time.Now.
	Clock func() time.Time
}

func (s *DefaultMedicationService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
