package emergency

import (
	"context"
	"fmt"
	"time"

	"medivault/models"
	"medivault/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Trigger opens a new SOS episode: it creates the event with a fresh
// 48-hour access token, fans notifications out to every reachable contact
// and records each attempt. The event is created even when every contact
// dispatch fails; unreachability is reported, never fatal.
func (s *DefaultEmergencyService) Trigger(ctx context.Context, userID string, location *models.EmergencyLocation, notes string) (*TriggerResult, error) {
	logger := utils.GetLogger()

	user, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("sos trigger: %w", err)
	}

	token, err := utils.GenerateAccessToken()
	if err != nil {
		return nil, fmt.Errorf("sos trigger: failed to mint access token: %w", err)
	}

	now := s.now()
	event := &models.EmergencyEvent{
		ID:                     uuid.NewString(),
		UserID:                 userID,
		EventType:              models.EmergencySOS,
		Status:                 models.EmergencyActive,
		Location:               location,
		Notes:                  notes,
		TriggeredAt:            now,
		TemporaryAccessToken:   token,
		TemporaryAccessExpires: now.Add(tokenValidity),
	}
	if err := s.Repo.Create(event); err != nil {
		return nil, fmt.Errorf("sos trigger: failed to create event: %w", err)
	}

	accessLink := fmt.Sprintf("%s/emergency/%s/%s", s.PublicBaseURL, user.Username, token)

	result := &TriggerResult{Event: event, AccessLink: accessLink}
	notified := s.notifyContacts(user, event, accessLink)
	var reached []models.ContactNotification
	for _, n := range notified {
		if n.Status == models.NotifyFailed {
			result.FailureCount++
		} else {
			result.SuccessCount++
			reached = append(reached, n)
		}
	}
	result.ContactsNotified = countContacts(notified)

	if len(notified) > 0 {
		if err := s.Repo.SetContactsNotified(event.ID, notified); err != nil {
			logger.Error("failed to store notified contacts",
				zap.String("eventId", event.ID), zap.Error(err))
		}
		event.ContactsNotified = notified
	}

	s.Notifier.Dispatch(ctx, userID, models.NotificationPayload{
		Type:     "emergency",
		Title:    "SOS activated",
		Message:  fmt.Sprintf("%d of %d contacts reached. Help is on the way.", countContacts(reached), result.ContactsNotified),
		Priority: models.PriorityUrgent,
		Channels: models.ChannelPreferences{InApp: true},
		Data:     map[string]string{"eventId": event.ID},
	})

	return result, nil
}

// notifyContacts dispatches one shared SMS to every phone-bearing contact
// and an individual email to every email-bearing one, snapshotting each
// attempt. Channel failures are isolated per attempt.
func (s *DefaultEmergencyService) notifyContacts(user *models.User, event *models.EmergencyEvent, accessLink string) []models.ContactNotification {
	logger := utils.GetLogger()

	contacts := append([]models.EmergencyContact{user.EmergencyContact}, user.AdditionalContacts...)
	message := s.alertMessage(user, event, accessLink)

	var notified []models.ContactNotification
	for _, c := range contacts {
		if !c.Reachable() {
			continue
		}
		if c.Phone != "" {
			attempt := snapshot(c, models.MethodSMS, s.now())
			if err := s.SMS.Send(c.Phone, message); err != nil {
				logger.Warn("sos sms dispatch failed",
					zap.String("eventId", event.ID), zap.Error(err))
				attempt.Status = models.NotifyFailed
			}
			notified = append(notified, attempt)
		}
		if c.Email != "" {
			attempt := snapshot(c, models.MethodEmail, s.now())
			subject := fmt.Sprintf("EMERGENCY: %s needs help", user.Name)
			body := "<html><body><p>" + message + "</p></body></html>"
			if err := s.Email.Send(c.Email, subject, body); err != nil {
				logger.Warn("sos email dispatch failed",
					zap.String("eventId", event.ID), zap.Error(err))
				attempt.Status = models.NotifyFailed
			}
			notified = append(notified, attempt)
		}
	}
	return notified
}

func (s *DefaultEmergencyService) alertMessage(user *models.User, event *models.EmergencyEvent, accessLink string) string {
	where := "Unknown"
	if event.Location != nil {
		if event.Location.Address != "" {
			where = event.Location.Address
		} else {
			where = fmt.Sprintf("%.5f, %.5f", event.Location.Latitude, event.Location.Longitude)
		}
	}
	msg := fmt.Sprintf("EMERGENCY: %s triggered an SOS. Location: %s. Medical info: %s", user.Name, where, accessLink)
	if user.EmergencyMode.HospitalContact != "" {
		msg += fmt.Sprintf(" Hospital contact: %s.", user.EmergencyMode.HospitalContact)
	}
	return msg
}

func snapshot(c models.EmergencyContact, method string, at time.Time) models.ContactNotification {
	return models.ContactNotification{
		Name:         c.Name,
		Phone:        c.Phone,
		Email:        c.Email,
		Relationship: c.Relationship,
		Method:       method,
		NotifiedAt:   at,
		Status:       models.NotifySent,
	}
}

// countContacts counts distinct contacts across the attempt list, since a
// contact with both phone and email produces two attempts.
func countContacts(notified []models.ContactNotification) int {
	seen := make(map[string]bool)
	for _, n := range notified {
		key := n.Name + "|" + n.Phone + "|" + n.Email
		seen[key] = true
	}
	return len(seen)
}

// Resolve closes an SOS episode for its owner. Only active events resolve;
// resolving an already-resolved event is an idempotent update where the
// last writer wins on notes. Events owned by other users read as not found,
// since resolution revokes the responders' access link.
func (s *DefaultEmergencyService) Resolve(ctx context.Context, eventID, userID, notes string) (*models.EmergencyEvent, error) {
	event, err := s.Repo.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if event.UserID != userID {
		return nil, fmt.Errorf("emergency event with id %s not found", eventID)
	}
	if event.Status == models.EmergencyCancelled {
		return nil, fmt.Errorf("emergency event %s is cancelled", eventID)
	}

	if err := s.Repo.SetResolved(eventID, userID, notes, s.now()); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(eventID)
}

// ListByUser returns the user's SOS history.
func (s *DefaultEmergencyService) ListByUser(userID string) ([]models.EmergencyEvent, error) {
	return s.Repo.GetByUser(userID)
}
