package medication

import (
	"context"
	"fmt"

	"medivault/models"
	"medivault/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create persists a new medication course.
func (s *DefaultMedicationService) Create(m *models.Medication) (*models.Medication, error) {
	if err := validate(m); err != nil {
		return nil, err
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Status == "" {
		m.Status = models.MedicationActive
	}
	if err := s.Repo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Update persists edits to a medication, preserving its history sublists.
func (s *DefaultMedicationService) Update(m *models.Medication) (*models.Medication, error) {
	if err := validate(m); err != nil {
		return nil, err
	}
	existing, err := s.Repo.GetByID(m.ID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != m.UserID {
		return nil, fmt.Errorf("medication with id %s not found", m.ID)
	}
	m.CreatedAt = existing.CreatedAt
	m.AdherenceLog = existing.AdherenceLog
	m.MissedDoses = existing.MissedDoses

	if err := s.Repo.Update(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes a medication and cascades to any linked reminders. The
// cascade is best-effort and never rolls the deletion back.
func (s *DefaultMedicationService) Delete(userID, id string) error {
	m, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if m.UserID != userID {
		return fmt.Errorf("medication with id %s not found", id)
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}

	if err := s.Reminders.DeleteByMedication(id); err != nil {
		utils.GetLogger().Error("failed to delete medication reminders",
			zap.String("medicationId", id), zap.Error(err))
	}
	return nil
}

// GetByID fetches a user's medication.
func (s *DefaultMedicationService) GetByID(userID, id string) (*models.Medication, error) {
	m, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, fmt.Errorf("medication with id %s not found", id)
	}
	return m, nil
}

// ListByUser returns all of a user's medications.
func (s *DefaultMedicationService) ListByUser(userID string) ([]models.Medication, error) {
	return s.Repo.GetByUser(userID)
}

// LogIntake records today's dose. Re-logging the same date overwrites the
// previous entry, and a taken dose clears today's missed-dose record.
func (s *DefaultMedicationService) LogIntake(ctx context.Context, userID, id string, taken bool, notes string) (*models.Medication, error) {
	if _, err := s.GetByID(userID, id); err != nil {
		return nil, err
	}

	now := s.now()
	entry := models.AdherenceEntry{
		Date:     models.Midnight(now),
		Time:     now.Format("15:04"),
		Taken:    taken,
		Notes:    notes,
		LoggedAt: now,
	}
	if err := s.Repo.UpsertAdherence(id, entry); err != nil {
		return nil, err
	}
	if taken {
		if err := s.Repo.RemoveMissedDose(id, now); err != nil {
			return nil, err
		}
	}
	return s.Repo.GetByID(id)
}

// GetAdherence returns the share of the last N days with a taken dose,
// as a percentage.
func (s *DefaultMedicationService) GetAdherence(userID, id string, days int) (float64, error) {
	if days <= 0 {
		days = 30
	}
	m, err := s.GetByID(userID, id)
	if err != nil {
		return 0, err
	}

	windowStart := models.Midnight(s.now()).AddDate(0, 0, -(days - 1))
	taken := 0
	for _, entry := range m.AdherenceLog {
		if entry.Taken && !models.Midnight(entry.Date).Before(windowStart) {
			taken++
		}
	}
	pct := float64(taken) / float64(days) * 100
	if pct > 100 {
		pct = 100
	}
	return pct, nil
}

func validate(m *models.Medication) error {
	if m.UserID == "" {
		return fmt.Errorf("medication requires a user id")
	}
	if m.Name == "" {
		return fmt.Errorf("medication requires a name")
	}
	return nil
}
