package emergency

import (
	"context"

	"medivault/models"
	"medivault/utils"

	"go.uber.org/zap"
)

// ReadCriticalProfile validates the token against an active event for the
// username's user and, on success, appends an audit entry and returns the
// reduced profile. Every validation failure maps to the same unauthorized
// error so the response never reveals which check failed.
func (s *DefaultEmergencyService) ReadCriticalProfile(ctx context.Context, username, token, accessorType, identifier string) (*CriticalProfile, error) {
	logger := utils.GetLogger()

	if username == "" || token == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.Users.GetByUsername(username)
	if err != nil {
		return nil, ErrUnauthorized
	}

	event, err := s.Repo.GetActiveByUserAndToken(user.ID, token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if !event.TokenValid(token, s.now()) {
		return nil, ErrUnauthorized
	}

	entry := models.AccessEntry{
		AccessedAt:   s.now(),
		AccessorType: accessorType,
		Identifier:   identifier,
	}
	if err := s.Repo.AppendAccess(event.ID, entry); err != nil {
		logger.Error("failed to record emergency access",
			zap.String("eventId", event.ID), zap.Error(err))
	}

	return s.buildProfile(user, event), nil
}

// buildProfile assembles the reduced view. A field appears only when it is
// in the user's configured critical-field set, whatever the underlying
// record holds.
func (s *DefaultEmergencyService) buildProfile(user *models.User, event *models.EmergencyEvent) *CriticalProfile {
	profile := &CriticalProfile{
		Name:        user.Name,
		PhotoURL:    user.PhotoURL,
		DateOfBirth: user.DateOfBirth,
		Location:    event.Location,
		TriggeredAt: event.TriggeredAt,
	}

	for _, field := range user.EmergencyMode.CriticalFields {
		switch field {
		case models.CriticalBloodType:
			profile.BloodType = user.BloodType
		case models.CriticalAllergies:
			profile.Allergies = user.Allergies
		case models.CriticalChronicConditions:
			profile.ChronicConditions = user.ChronicConditions
		case models.CriticalEmergencyContact:
			contact := user.EmergencyContact
			profile.EmergencyContact = &contact
		case models.CriticalMedications:
			meds, err := s.Medications.GetActiveByUser(user.ID)
			if err != nil {
				utils.GetLogger().Error("failed to load medications for critical profile",
					zap.String("userId", user.ID), zap.Error(err))
				continue
			}
			profile.Medications = meds
		case models.CriticalHealthMetrics:
			profile.HealthMetrics = user.HealthMetrics
		}
	}
	return profile
}
