package reminder

import (
	"context"
	"fmt"
	"time"

	"medivault/models"
	"medivault/utils"

	"go.uber.org/zap"
)

// ProcessDue runs one trigger-loop tick. For each due, eligible reminder it
// enqueues the delivery, stamps lastTriggered, recomputes nextTrigger and
// persists. A delivery failure never blocks schedule advancement, so a
// reminder fires at most once per tick.
func (s *DefaultReminderService) ProcessDue(ctx context.Context, now time.Time) error {
	logger := utils.GetLogger()

	due, err := s.Repo.DueReminders(now)
	if err != nil {
		return fmt.Errorf("trigger loop: failed to query due reminders: %w", err)
	}

	for i := range due {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r := &due[i]
		if !r.EligibleOn(now.Weekday()) {
			continue
		}
		s.fire(r, now)
	}
	logger.Debug("trigger loop tick complete", zap.Int("due", len(due)))
	return nil
}

func (s *DefaultReminderService) fire(r *models.Reminder, now time.Time) {
	logger := utils.GetLogger()

	payload := models.ReminderPayload{
		ReminderID: r.ID,
		UserID:     r.UserID,
		Type:       r.Type,
		Title:      r.Title,
		Body:       r.Description,
		Priority:   r.Priority,
		FireDate:   now.Format(time.RFC3339),
		Channels:   r.Channels,
	}
	if payload.Body == "" {
		payload.Body = r.Title
	}
	if err := s.Queue.EnqueueReminder(payload, now); err != nil {
		// Logged, not retried within this tick; the schedule still advances.
		logger.Error("failed to enqueue reminder delivery",
			zap.String("reminderId", r.ID), zap.Error(err))
	}

	fired := now
	r.LastTriggered = &fired
	if next, ok := NextTrigger(r, now); ok {
		r.NextTrigger = &next
	} else {
		r.NextTrigger = nil
		if r.Frequency == models.FrequencyOnce {
			r.IsActive = false
		}
	}

	if err := s.Repo.Update(r); err != nil {
		logger.Error("failed to persist reminder after trigger",
			zap.String("reminderId", r.ID), zap.Error(err))
	}
}
