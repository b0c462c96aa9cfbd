package medicationRepo

import (
	"time"

	"medivault/models"
)

// MedicationRepository defines persistence operations for medications and
// their embedded adherence/missed-dose sublists.
type MedicationRepository interface {
	Create(m *models.Medication) error
	Update(m *models.Medication) error
	Delete(id string) error
	GetByID(id string) (*models.Medication, error)
	GetByUser(userID string) ([]models.Medication, error)
	// GetActiveWithReminders returns medications eligible for the
	// missed-dose sweep: active, reminders enabled, at least one time set.
	GetActiveWithReminders() ([]models.Medication, error)
	GetActiveByUser(userID string) ([]models.Medication, error)
	// UpsertAdherence replaces any existing entry for the entry's calendar
	// date, keeping at most one authoritative entry per day.
	UpsertAdherence(id string, entry models.AdherenceEntry) error
	AddMissedDose(id string, missed models.MissedDose) error
	RemoveMissedDose(id string, date time.Time) error
}
