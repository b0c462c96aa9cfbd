package reminderRepo

import (
	"time"

	"medivault/models"
)

// ReminderRepository defines persistence operations for reminders.
type ReminderRepository interface {
	Create(r *models.Reminder) error
	Update(r *models.Reminder) error
	Delete(id string) error
	GetByID(id string) (*models.Reminder, error)
	GetByUser(userID string) ([]models.Reminder, error)
	// GetUpcoming returns active reminders for a user with a next trigger
	// inside the window.
	GetUpcoming(userID string, until time.Time) ([]models.Reminder, error)
	// DueReminders returns active reminders whose next trigger falls at or
	// before now plus one polling interval.
	DueReminders(now time.Time) ([]models.Reminder, error)
	GetByAppointment(appointmentID string) ([]models.Reminder, error)
	DeleteByAppointment(appointmentID string) error
	DeleteByMedication(medicationID string) error
	AddCompletedDate(id string, date time.Time) error
	AddMissedDate(id string, date time.Time) error
}
