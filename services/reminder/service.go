package reminder

import (
	"fmt"
	"time"

	"medivault/models"

	"github.com/google/uuid"
)

// Create validates the reminder, computes its initial next trigger and
// persists it.
func (s *DefaultReminderService) Create(r *models.Reminder) (*models.Reminder, error) {
	if err := validate(r); err != nil {
		return nil, err
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.IsActive = true

	now := time.Now()
	if next, ok := NextTrigger(r, now); ok {
		r.NextTrigger = &next
	} else {
		// A once reminder scheduled in the past has nothing left to fire.
		r.NextTrigger = nil
		r.IsActive = false
	}

	if err := s.Repo.Create(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Update persists edits and recomputes the next trigger, since any of the
// frequency-relevant fields may have changed.
func (s *DefaultReminderService) Update(r *models.Reminder) (*models.Reminder, error) {
	if err := validate(r); err != nil {
		return nil, err
	}
	existing, err := s.Repo.GetByID(r.ID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != r.UserID {
		return nil, fmt.Errorf("reminder with id %s not found", r.ID)
	}

	r.CreatedAt = existing.CreatedAt
	r.LastTriggered = existing.LastTriggered
	r.CompletedDates = existing.CompletedDates
	r.MissedDates = existing.MissedDates

	if r.IsActive {
		if next, ok := NextTrigger(r, time.Now()); ok {
			r.NextTrigger = &next
		} else {
			r.NextTrigger = nil
			r.IsActive = false
		}
	}

	if err := s.Repo.Update(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Delete removes a user's reminder.
func (s *DefaultReminderService) Delete(userID, id string) error {
	r, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if r.UserID != userID {
		return fmt.Errorf("reminder with id %s not found", id)
	}
	return s.Repo.Delete(id)
}

// GetByID fetches a user's reminder.
func (s *DefaultReminderService) GetByID(userID, id string) (*models.Reminder, error) {
	r, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, fmt.Errorf("reminder with id %s not found", id)
	}
	return r, nil
}

// ListByUser returns all of a user's reminders.
func (s *DefaultReminderService) ListByUser(userID string) ([]models.Reminder, error) {
	return s.Repo.GetByUser(userID)
}

// ListUpcoming returns active reminders due within the window from now.
func (s *DefaultReminderService) ListUpcoming(userID string, window time.Duration) ([]models.Reminder, error) {
	return s.Repo.GetUpcoming(userID, time.Now().Add(window))
}

// MarkCompleted records a completion for the calendar date.
func (s *DefaultReminderService) MarkCompleted(userID, id string, date time.Time) error {
	if _, err := s.GetByID(userID, id); err != nil {
		return err
	}
	return s.Repo.AddCompletedDate(id, date)
}

// MarkMissed records a miss for the calendar date.
func (s *DefaultReminderService) MarkMissed(userID, id string, date time.Time) error {
	if _, err := s.GetByID(userID, id); err != nil {
		return err
	}
	return s.Repo.AddMissedDate(id, date)
}

func validate(r *models.Reminder) error {
	if r.UserID == "" {
		return fmt.Errorf("reminder requires a user id")
	}
	if r.Title == "" {
		return fmt.Errorf("reminder requires a title")
	}
	switch r.Frequency {
	case models.FrequencyOnce:
		if r.ScheduledFor == nil {
			return fmt.Errorf("a once reminder requires scheduledFor")
		}
	case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly:
	case models.FrequencyCustom:
		if len(r.TimeOfDay) == 0 {
			return fmt.Errorf("a custom reminder requires at least one time of day")
		}
	default:
		return fmt.Errorf("unknown reminder frequency %q", r.Frequency)
	}
	return nil
}
