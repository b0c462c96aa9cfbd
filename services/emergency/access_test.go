package emergency

import (
	"context"
	"testing"
	"time"

	"medivault/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triggeredEvent(t *testing.T, svc *DefaultEmergencyService) *models.EmergencyEvent {
	t.Helper()
	result, err := svc.Trigger(context.Background(), "u1", nil, "")
	require.NoError(t, err)
	return result.Event
}

func TestReadCriticalProfileFiltersToConfiguredFields(t *testing.T) {
	repo := newMemEmergencyRepo()
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	user := testUser()
	// Chronic conditions exist on the record but are not opted in.
	user.ChronicConditions = []string{"hypertension"}
	svc, _, _, _ := newTestService(repo, user, now)
	event := triggeredEvent(t, svc)

	profile, err := svc.ReadCriticalProfile(context.Background(), "ada", event.TemporaryAccessToken, "paramedic", "unit-7")
	require.NoError(t, err)

	assert.Equal(t, "Ada", profile.Name)
	assert.Equal(t, "O-", profile.BloodType)
	assert.Equal(t, []string{"penicillin"}, profile.Allergies)
	// Everything not in the critical-field set stays empty.
	assert.Empty(t, profile.ChronicConditions)
	assert.Nil(t, profile.EmergencyContact)
	assert.Empty(t, profile.Medications)
}

func TestReadCriticalProfileIncludesActiveMedications(t *testing.T) {
	repo := newMemEmergencyRepo()
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	user := testUser()
	user.EmergencyMode.CriticalFields = []string{models.CriticalMedications}
	svc, _, _, _ := newTestService(repo, user, now)
	svc.Medications = &fakeMedicationRepo{active: []models.Medication{{ID: "m1", Name: "Amlodipine"}}}
	event := triggeredEvent(t, svc)

	profile, err := svc.ReadCriticalProfile(context.Background(), "ada", event.TemporaryAccessToken, "doctor", "dr-ray")
	require.NoError(t, err)
	require.Len(t, profile.Medications, 1)
	assert.Equal(t, "Amlodipine", profile.Medications[0].Name)
	// The untouched fields stay out even though the user record has them.
	assert.Empty(t, profile.BloodType)
}

func TestReadCriticalProfileAppendsAudit(t *testing.T) {
	repo := newMemEmergencyRepo()
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	svc, _, _, _ := newTestService(repo, testUser(), now)
	event := triggeredEvent(t, svc)

	_, err := svc.ReadCriticalProfile(context.Background(), "ada", event.TemporaryAccessToken, "paramedic", "unit-7")
	require.NoError(t, err)
	_, err = svc.ReadCriticalProfile(context.Background(), "ada", event.TemporaryAccessToken, "hospital", "st-marys")
	require.NoError(t, err)

	stored, err := repo.GetByID(event.ID)
	require.NoError(t, err)
	require.Len(t, stored.AccessedBy, 2)
	assert.Equal(t, "paramedic", stored.AccessedBy[0].AccessorType)
	assert.Equal(t, "st-marys", stored.AccessedBy[1].Identifier)
}

func TestReadCriticalProfileUniformUnauthorized(t *testing.T) {
	repo := newMemEmergencyRepo()
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	svc, _, _, _ := newTestService(repo, testUser(), now)
	event := triggeredEvent(t, svc)

	cases := map[string]struct {
		username string
		token    string
	}{
		"empty username": {"", event.TemporaryAccessToken},
		"empty token":    {"ada", ""},
		"unknown user":   {"nobody", event.TemporaryAccessToken},
		"wrong token":    {"ada", "AAAABBBBCCCCDDDDEEEEFFFFGGGGHHHHIIIIJJJJKKKKLLLLMMMM"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ReadCriticalProfile(context.Background(), tc.username, tc.token, "anonymous", "x")
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestReadCriticalProfileRejectsExpiredToken(t *testing.T) {
	repo := newMemEmergencyRepo()
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	svc, _, _, _ := newTestService(repo, testUser(), now)
	event := triggeredEvent(t, svc)

	// Just inside 48 hours the token still works, even though nothing was
	// resolved in between.
	svc.Clock = func() time.Time { return now.Add(48*time.Hour - time.Minute) }
	_, err := svc.ReadCriticalProfile(context.Background(), "ada", event.TemporaryAccessToken, "anonymous", "x")
	require.NoError(t, err)

	// Past 48 hours the same token is refused while the event stays active.
	svc.Clock = func() time.Time { return now.Add(48*time.Hour + time.Minute) }
	_, err = svc.ReadCriticalProfile(context.Background(), "ada", event.TemporaryAccessToken, "anonymous", "x")
	assert.ErrorIs(t, err, ErrUnauthorized)

	stored, err := repo.GetByID(event.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EmergencyActive, stored.Status)
}

func TestReadCriticalProfileRejectsResolvedEvent(t *testing.T) {
	repo := newMemEmergencyRepo()
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	svc, _, _, _ := newTestService(repo, testUser(), now)
	event := triggeredEvent(t, svc)

	_, err := svc.Resolve(context.Background(), event.ID, "u1", "")
	require.NoError(t, err)

	_, err = svc.ReadCriticalProfile(context.Background(), "ada", event.TemporaryAccessToken, "anonymous", "x")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
