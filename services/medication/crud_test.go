package medication

import (
	"context"
	"testing"
	"time"

	"medivault/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogIntakeTakenClearsMissedDose(t *testing.T) {
	repo := newMemMedicationRepo()
	notifier := &fakeNotifier{}
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	med := activeMed("m1", models.TimeSlot{Hour: 8})
	med.MissedDoses = []models.MissedDose{{Date: models.Midnight(now), ScheduledTime: "08:00"}}
	require.NoError(t, repo.Create(med))

	svc := newTestService(repo, notifier, now)
	updated, err := svc.LogIntake(context.Background(), "u1", "m1", true, "late but taken")
	require.NoError(t, err)

	assert.Empty(t, updated.MissedDoses)
	require.Len(t, updated.AdherenceLog, 1)
	assert.True(t, updated.AdherenceLog[0].Taken)
	assert.Equal(t, "09:00", updated.AdherenceLog[0].Time)
}

func TestLogIntakeOverwritesSameDay(t *testing.T) {
	repo := newMemMedicationRepo()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(activeMed("m1", models.TimeSlot{Hour: 8})))

	svc := newTestService(repo, &fakeNotifier{}, now)
	_, err := svc.LogIntake(context.Background(), "u1", "m1", false, "")
	require.NoError(t, err)
	updated, err := svc.LogIntake(context.Background(), "u1", "m1", true, "")
	require.NoError(t, err)

	require.Len(t, updated.AdherenceLog, 1)
	assert.True(t, updated.AdherenceLog[0].Taken)
}

func TestLogIntakeNotTakenKeepsMissedDose(t *testing.T) {
	repo := newMemMedicationRepo()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	med := activeMed("m1", models.TimeSlot{Hour: 8})
	med.MissedDoses = []models.MissedDose{{Date: models.Midnight(now), ScheduledTime: "08:00"}}
	require.NoError(t, repo.Create(med))

	svc := newTestService(repo, &fakeNotifier{}, now)
	updated, err := svc.LogIntake(context.Background(), "u1", "m1", false, "felt nauseous")
	require.NoError(t, err)

	assert.Len(t, updated.MissedDoses, 1)
}

func TestLogIntakeEnforcesOwnership(t *testing.T) {
	repo := newMemMedicationRepo()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(activeMed("m1", models.TimeSlot{Hour: 8})))

	svc := newTestService(repo, &fakeNotifier{}, now)
	_, err := svc.LogIntake(context.Background(), "intruder", "m1", true, "")
	assert.Error(t, err)
}

func TestGetAdherencePercentage(t *testing.T) {
	repo := newMemMedicationRepo()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	med := activeMed("m1", models.TimeSlot{Hour: 8})
	// Taken on 6 of the last 10 days; one skipped entry does not count.
	for i := 0; i < 6; i++ {
		med.AdherenceLog = append(med.AdherenceLog, models.AdherenceEntry{
			Date:  models.Midnight(now).AddDate(0, 0, -i),
			Taken: true,
		})
	}
	med.AdherenceLog = append(med.AdherenceLog, models.AdherenceEntry{
		Date:  models.Midnight(now).AddDate(0, 0, -7),
		Taken: false,
	})
	// An old entry outside the window does not count either.
	med.AdherenceLog = append(med.AdherenceLog, models.AdherenceEntry{
		Date:  models.Midnight(now).AddDate(0, 0, -20),
		Taken: true,
	})
	require.NoError(t, repo.Create(med))

	svc := newTestService(repo, &fakeNotifier{}, now)
	pct, err := svc.GetAdherence("u1", "m1", 10)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, pct, 0.001)
}

func TestUpdatePreservesHistory(t *testing.T) {
	repo := newMemMedicationRepo()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	med := activeMed("m1", models.TimeSlot{Hour: 8})
	med.AdherenceLog = []models.AdherenceEntry{{Date: models.Midnight(now), Taken: true}}
	med.MissedDoses = []models.MissedDose{{Date: models.Midnight(now).AddDate(0, 0, -1)}}
	require.NoError(t, repo.Create(med))

	svc := newTestService(repo, &fakeNotifier{}, now)
	edit := &models.Medication{
		ID: "m1", UserID: "u1", Name: "Amlodipine 10mg",
		Status: models.MedicationActive,
	}
	updated, err := svc.Update(edit)
	require.NoError(t, err)

	assert.Len(t, updated.AdherenceLog, 1)
	assert.Len(t, updated.MissedDoses, 1)
}
