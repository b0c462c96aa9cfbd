package appointment

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"medivault/models"

	"github.com/google/uuid"
)

// defaultHour is assumed when an appointment has no time set.
const defaultHour = 9

// GenerateReminders derives up to two one-shot reminders from the
// appointment: 24 hours and 1 hour before its instant. Candidates already
// in the past are skipped, and a past appointment yields none at all. The
// 1-hour reminder escalates urgency by adding the SMS channel.
func (s *DefaultAppointmentService) GenerateReminders(a *models.Appointment) ([]models.Reminder, error) {
	now := s.now()
	instant := appointmentInstant(a)
	if !instant.After(now) {
		return nil, nil
	}

	candidates := []struct {
		at       time.Time
		lead     string
		channels models.ChannelPreferences
		priority string
	}{
		{
			at:       instant.Add(-24 * time.Hour),
			lead:     "tomorrow",
			channels: models.ChannelPreferences{InApp: true, Email: true, Push: true},
			priority: models.PriorityNormal,
		},
		{
			at:       instant.Add(-time.Hour),
			lead:     "in 1 hour",
			channels: models.ChannelPreferences{InApp: true, Email: true, SMS: true, Push: true},
			priority: models.PriorityHigh,
		},
	}

	var created []models.Reminder
	for _, c := range candidates {
		if !c.at.After(now) {
			continue
		}
		at := c.at
		r := models.Reminder{
			ID:            uuid.NewString(),
			UserID:        a.UserID,
			Type:          models.ReminderTypeAppointment,
			Title:         fmt.Sprintf("Appointment %s: %s", c.lead, a.Title),
			Description:   appointmentSummary(a),
			Frequency:     models.FrequencyOnce,
			ScheduledFor:  &at,
			NextTrigger:   &at,
			IsActive:      true,
			Channels:      c.channels,
			Priority:      c.priority,
			AppointmentID: a.ID,
		}
		if err := s.Reminders.Create(&r); err != nil {
			return created, fmt.Errorf("failed to create reminder for appointment %s: %w", a.ID, err)
		}
		created = append(created, r)
	}
	return created, nil
}

// RegenerateReminders replaces every reminder linked to the appointment
// with a fresh pair for the new schedule.
func (s *DefaultAppointmentService) RegenerateReminders(a *models.Appointment) ([]models.Reminder, error) {
	if err := s.Reminders.DeleteByAppointment(a.ID); err != nil {
		return nil, fmt.Errorf("failed to clear reminders for appointment %s: %w", a.ID, err)
	}
	return s.GenerateReminders(a)
}

// DeleteLinkedReminders cascades an appointment deletion to its reminders.
func (s *DefaultAppointmentService) DeleteLinkedReminders(appointmentID string) error {
	return s.Reminders.DeleteByAppointment(appointmentID)
}

// appointmentInstant combines the appointment's date with its "HH:MM" time,
// falling back to 09:00 when the time is absent or malformed.
func appointmentInstant(a *models.Appointment) time.Time {
	hour, minute := defaultHour, 0
	if parts := strings.SplitN(a.Time, ":", 2); len(parts) == 2 {
		h, errH := strconv.Atoi(parts[0])
		m, errM := strconv.Atoi(parts[1])
		if errH == nil && errM == nil && h >= 0 && h < 24 && m >= 0 && m < 60 {
			hour, minute = h, m
		}
	}
	d := a.Date
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location())
}

func appointmentSummary(a *models.Appointment) string {
	var b strings.Builder
	if a.Provider != "" {
		b.WriteString("With " + a.Provider)
	}
	if a.Location != "" {
		if b.Len() > 0 {
			b.WriteString(" at ")
		} else {
			b.WriteString("At ")
		}
		b.WriteString(a.Location)
	}
	return b.String()
}
