package appointmentRepo

import "medivault/models"

// AppointmentRepository defines persistence operations for appointments.
type AppointmentRepository interface {
	Create(a *models.Appointment) error
	Update(a *models.Appointment) error
	Delete(id string) error
	GetByID(id string) (*models.Appointment, error)
	GetByUser(userID string) ([]models.Appointment, error)
}
