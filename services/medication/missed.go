package medication

import (
	"context"
	"fmt"
	"time"

	"medivault/models"
	"medivault/utils"

	"go.uber.org/zap"
)

// graceMinutes is how long after a scheduled slot a dose may still be
// logged before it counts as missed.
const graceMinutes = 15

// Sweep runs one missed-dose detection pass over every active medication
// with reminders enabled. At most one missed-dose record is created per
// medication per calendar day, however many slots were missed, so the sweep
// is idempotent within a day.
func (s *DefaultMedicationService) Sweep(ctx context.Context, now time.Time) error {
	logger := utils.GetLogger()

	meds, err := s.Repo.GetActiveWithReminders()
	if err != nil {
		return fmt.Errorf("missed-dose sweep: failed to query medications: %w", err)
	}

	detected := 0
	for i := range meds {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if s.checkMedication(ctx, &meds[i], now) {
			detected++
		}
	}
	logger.Debug("missed-dose sweep complete",
		zap.Int("medications", len(meds)), zap.Int("detected", detected))
	return nil
}

// checkMedication reports whether a missed dose was recorded for today.
func (s *DefaultMedicationService) checkMedication(ctx context.Context, m *models.Medication, now time.Time) bool {
	logger := utils.GetLogger()
	nowMinutes := now.Hour()*60 + now.Minute()

	for _, slot := range m.ReminderTimes {
		// The slot only counts once its grace window has fully passed.
		if nowMinutes < slot.MinutesSinceMidnight()+graceMinutes {
			continue
		}

		entry := m.AdherenceFor(now)
		if entry != nil && entry.Taken {
			return false
		}
		if m.HasMissedDoseOn(now) {
			return false
		}

		missed := models.MissedDose{
			Date:          models.Midnight(now),
			ScheduledTime: fmt.Sprintf("%02d:%02d", slot.Hour, slot.Minute),
			Reason:        "no intake logged",
		}
		if err := s.Repo.AddMissedDose(m.ID, missed); err != nil {
			logger.Error("failed to record missed dose",
				zap.String("medicationId", m.ID), zap.Error(err))
			return false
		}
		m.MissedDoses = append(m.MissedDoses, missed)

		s.Notifier.Dispatch(ctx, m.UserID, models.NotificationPayload{
			Type:     "missed-dose",
			Title:    "Missed dose: " + m.Name,
			Message:  fmt.Sprintf("The %s dose of %s was not logged. Tap to log it now.", missed.ScheduledTime, m.Name),
			Priority: models.PriorityHigh,
			Channels: models.ChannelPreferences{InApp: true, Push: true},
			Data:     map[string]string{"medicationId": m.ID},
		})
		return true
	}
	return false
}
