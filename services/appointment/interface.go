package appointment

import (
	"time"

	appointmentRepo "medivault/database/repository/appointment"
	reminderRepo "medivault/database/repository/reminder"
	"medivault/models"
)

// AppointmentService owns appointment CRUD and the derived reminders that
// live and die with each appointment.
type AppointmentService interface {
	Create(a *models.Appointment) (*models.Appointment, error)
	Update(a *models.Appointment) (*models.Appointment, error)
	Delete(userID, id string) error
	GetByID(userID, id string) (*models.Appointment, error)
	ListByUser(userID string) ([]models.Appointment, error)
	GenerateReminders(a *models.Appointment) ([]models.Reminder, error)
	RegenerateReminders(a *models.Appointment) ([]models.Reminder, error)
	DeleteLinkedReminders(appointmentID string) error
}

// DefaultAppointmentService is the production implementation.
type DefaultAppointmentService struct {
	Repo      appointmentRepo.AppointmentRepository
	Reminders reminderRepo.ReminderRepository

	// Clock is overridable for tests; nil means time.Now.
	Clock func() time.Time
}

func (s *DefaultAppointmentService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
