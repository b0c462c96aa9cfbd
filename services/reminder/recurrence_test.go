package reminder

import (
	"testing"
	"time"

	"medivault/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextTriggerDailyAdvancesByFullDay(t *testing.T) {
	r := &models.Reminder{Frequency: models.FrequencyDaily}
	now := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)

	next, ok := NextTrigger(r, now)
	require.True(t, ok)
	assert.Equal(t, now.Add(24*time.Hour), next)

	// Advancing repeatedly from late ticks drifts; that drift is kept.
	late := next.Add(3 * time.Minute)
	next2, ok := NextTrigger(r, late)
	require.True(t, ok)
	assert.Equal(t, late.Add(24*time.Hour), next2)
}

func TestNextTriggerWeekly(t *testing.T) {
	r := &models.Reminder{Frequency: models.FrequencyWeekly}
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	next, ok := NextTrigger(r, now)
	require.True(t, ok)
	assert.Equal(t, now.Add(7*24*time.Hour), next)
}

func TestNextTriggerOnce(t *testing.T) {
	future := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	r := &models.Reminder{Frequency: models.FrequencyOnce, ScheduledFor: &future}
	next, ok := NextTrigger(r, now)
	require.True(t, ok)
	assert.Equal(t, future, next)

	// Once the scheduled instant has passed, the schedule is exhausted.
	_, ok = NextTrigger(r, future.Add(time.Second))
	assert.False(t, ok)

	_, ok = NextTrigger(&models.Reminder{Frequency: models.FrequencyOnce}, now)
	assert.False(t, ok)
}

func TestNextTriggerMonthlyClampsShortMonths(t *testing.T) {
	r := &models.Reminder{Frequency: models.FrequencyMonthly}

	jan31 := time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC)
	next, ok := NextTrigger(r, jan31)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC), next)

	// Leap year keeps the 29th.
	jan31Leap := time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC)
	next, ok = NextTrigger(r, jan31Leap)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC), next)

	mid := time.Date(2025, 4, 15, 9, 0, 0, 0, time.UTC)
	next, ok = NextTrigger(r, mid)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 5, 15, 9, 0, 0, 0, time.UTC), next)
}

func TestNextTriggerCustomSlots(t *testing.T) {
	r := &models.Reminder{
		Frequency: models.FrequencyCustom,
		TimeOfDay: []models.TimeSlot{{Hour: 21}, {Hour: 9}},
	}

	// At 10:00, the next slot is today's 21:00 even though the slots are
	// stored out of order.
	at10 := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	next, ok := NextTrigger(r, at10)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 10, 21, 0, 0, 0, time.UTC), next)

	// At 22:00 every slot has passed; tomorrow's first slot wins.
	at22 := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
	next, ok = NextTrigger(r, at22)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC), next)

	// Exactly on a slot advances past it.
	at9 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	next, ok = NextTrigger(r, at9)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 10, 21, 0, 0, 0, time.UTC), next)
}

func TestNextTriggerCustomWithoutSlotsExhausts(t *testing.T) {
	r := &models.Reminder{Frequency: models.FrequencyCustom}
	_, ok := NextTrigger(r, time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}

func TestNextTriggerUnknownFrequency(t *testing.T) {
	r := &models.Reminder{Frequency: "fortnightly"}
	_, ok := NextTrigger(r, time.Now())
	assert.False(t, ok)
}
