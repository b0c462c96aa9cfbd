package appointment

import (
	"fmt"

	"medivault/models"
	"medivault/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create persists the appointment, then derives its reminders. Reminder
// generation is a best-effort side effect: a failure is logged and never
// rolls the appointment back.
func (s *DefaultAppointmentService) Create(a *models.Appointment) (*models.Appointment, error) {
	if err := validate(a); err != nil {
		return nil, err
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = models.AppointmentPending
	}

	if err := s.Repo.Create(a); err != nil {
		return nil, err
	}

	if _, err := s.GenerateReminders(a); err != nil {
		utils.GetLogger().Error("failed to generate appointment reminders",
			zap.String("appointmentId", a.ID), zap.Error(err))
	}
	return a, nil
}

// Update persists edits. When the date or time changed, the linked
// reminders are regenerated, again best-effort.
func (s *DefaultAppointmentService) Update(a *models.Appointment) (*models.Appointment, error) {
	if err := validate(a); err != nil {
		return nil, err
	}
	existing, err := s.Repo.GetByID(a.ID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != a.UserID {
		return nil, fmt.Errorf("appointment with id %s not found", a.ID)
	}
	a.CreatedAt = existing.CreatedAt

	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}

	if !existing.Date.Equal(a.Date) || existing.Time != a.Time {
		if _, err := s.RegenerateReminders(a); err != nil {
			utils.GetLogger().Error("failed to regenerate appointment reminders",
				zap.String("appointmentId", a.ID), zap.Error(err))
		}
	}
	return a, nil
}

// Delete removes the appointment, then cascades to its reminders. The
// cascade is best-effort and never rolls the deletion back.
func (s *DefaultAppointmentService) Delete(userID, id string) error {
	a, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if a.UserID != userID {
		return fmt.Errorf("appointment with id %s not found", id)
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}

	if err := s.DeleteLinkedReminders(id); err != nil {
		utils.GetLogger().Error("failed to delete appointment reminders",
			zap.String("appointmentId", id), zap.Error(err))
	}
	return nil
}

// GetByID fetches a user's appointment.
func (s *DefaultAppointmentService) GetByID(userID, id string) (*models.Appointment, error) {
	a, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, fmt.Errorf("appointment with id %s not found", id)
	}
	return a, nil
}

// ListByUser returns all of a user's appointments.
func (s *DefaultAppointmentService) ListByUser(userID string) ([]models.Appointment, error) {
	return s.Repo.GetByUser(userID)
}

func validate(a *models.Appointment) error {
	if a.UserID == "" {
		return fmt.Errorf("appointment requires a user id")
	}
	if a.Title == "" {
		return fmt.Errorf("appointment requires a title")
	}
	if a.Date.IsZero() {
		return fmt.Errorf("appointment requires a date")
	}
	return nil
}
