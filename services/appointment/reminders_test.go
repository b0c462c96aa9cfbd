package appointment

import (
	"fmt"
	"testing"
	"time"

	"medivault/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReminderRepo keeps reminders in a slice, ordered by creation.
type fakeReminderRepo struct {
	reminders []models.Reminder
}

func (f *fakeReminderRepo) Create(r *models.Reminder) error {
	f.reminders = append(f.reminders, *r)
	return nil
}

func (f *fakeReminderRepo) Update(r *models.Reminder) error { return nil }

func (f *fakeReminderRepo) Delete(id string) error { return nil }

func (f *fakeReminderRepo) GetByID(id string) (*models.Reminder, error) {
	for i := range f.reminders {
		if f.reminders[i].ID == id {
			return &f.reminders[i], nil
		}
	}
	return nil, fmt.Errorf("reminder with id %s not found", id)
}

func (f *fakeReminderRepo) GetByUser(userID string) ([]models.Reminder, error) { return nil, nil }

func (f *fakeReminderRepo) GetUpcoming(userID string, until time.Time) ([]models.Reminder, error) {
	return nil, nil
}

func (f *fakeReminderRepo) DueReminders(now time.Time) ([]models.Reminder, error) { return nil, nil }

func (f *fakeReminderRepo) GetByAppointment(appointmentID string) ([]models.Reminder, error) {
	var out []models.Reminder
	for _, r := range f.reminders {
		if r.AppointmentID == appointmentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReminderRepo) DeleteByAppointment(appointmentID string) error {
	kept := f.reminders[:0]
	for _, r := range f.reminders {
		if r.AppointmentID != appointmentID {
			kept = append(kept, r)
		}
	}
	f.reminders = kept
	return nil
}

func (f *fakeReminderRepo) DeleteByMedication(medicationID string) error { return nil }

func (f *fakeReminderRepo) AddCompletedDate(id string, date time.Time) error { return nil }

func (f *fakeReminderRepo) AddMissedDate(id string, date time.Time) error { return nil }

// fakeAppointmentRepo keeps appointments in a map.
type fakeAppointmentRepo struct {
	appointments map[string]*models.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[string]*models.Appointment)}
}

func (f *fakeAppointmentRepo) Create(a *models.Appointment) error {
	cp := *a
	f.appointments[a.ID] = &cp
	return nil
}

func (f *fakeAppointmentRepo) Update(a *models.Appointment) error {
	if _, ok := f.appointments[a.ID]; !ok {
		return fmt.Errorf("appointment with id %s not found", a.ID)
	}
	cp := *a
	f.appointments[a.ID] = &cp
	return nil
}

func (f *fakeAppointmentRepo) Delete(id string) error {
	if _, ok := f.appointments[id]; !ok {
		return fmt.Errorf("appointment with id %s not found", id)
	}
	delete(f.appointments, id)
	return nil
}

func (f *fakeAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, fmt.Errorf("appointment with id %s not found", id)
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointmentRepo) GetByUser(userID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGenerateRemindersCreatesPair(t *testing.T) {
	reminders := &fakeReminderRepo{}
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc := &DefaultAppointmentService{
		Repo:      newFakeAppointmentRepo(),
		Reminders: reminders,
		Clock:     fixedClock(now),
	}

	appt := &models.Appointment{
		ID: "a1", UserID: "u1", Title: "Cardiology checkup",
		Provider: "Dr. Okafor", Location: "City Clinic",
		Date: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), Time: "14:30",
	}
	created, err := svc.GenerateReminders(appt)
	require.NoError(t, err)
	require.Len(t, created, 2)

	dayBefore := created[0]
	assert.Equal(t, models.ReminderTypeAppointment, dayBefore.Type)
	assert.Equal(t, "a1", dayBefore.AppointmentID)
	require.NotNil(t, dayBefore.ScheduledFor)
	assert.Equal(t, time.Date(2025, 3, 11, 14, 30, 0, 0, time.UTC), *dayBefore.ScheduledFor)
	assert.False(t, dayBefore.Channels.SMS)
	assert.Equal(t, models.PriorityNormal, dayBefore.Priority)

	hourBefore := created[1]
	require.NotNil(t, hourBefore.ScheduledFor)
	assert.Equal(t, time.Date(2025, 3, 12, 13, 30, 0, 0, time.UTC), *hourBefore.ScheduledFor)
	// The final reminder escalates by adding SMS.
	assert.True(t, hourBefore.Channels.SMS)
	assert.Equal(t, models.PriorityHigh, hourBefore.Priority)
}

func TestGenerateRemindersSkipsPastCandidates(t *testing.T) {
	reminders := &fakeReminderRepo{}
	// 6 hours before the appointment: only the 1-hour reminder is still ahead.
	now := time.Date(2025, 3, 12, 8, 30, 0, 0, time.UTC)
	svc := &DefaultAppointmentService{
		Repo:      newFakeAppointmentRepo(),
		Reminders: reminders,
		Clock:     fixedClock(now),
	}

	appt := &models.Appointment{
		ID: "a1", UserID: "u1", Title: "Dental cleaning",
		Date: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), Time: "14:30",
	}
	created, err := svc.GenerateReminders(appt)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, time.Date(2025, 3, 12, 13, 30, 0, 0, time.UTC), *created[0].ScheduledFor)
}

func TestGenerateRemindersForPastAppointmentYieldsNone(t *testing.T) {
	reminders := &fakeReminderRepo{}
	now := time.Date(2025, 3, 20, 8, 0, 0, 0, time.UTC)
	svc := &DefaultAppointmentService{
		Repo:      newFakeAppointmentRepo(),
		Reminders: reminders,
		Clock:     fixedClock(now),
	}

	appt := &models.Appointment{
		ID: "a1", UserID: "u1", Title: "Old visit",
		Date: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), Time: "14:30",
	}
	created, err := svc.GenerateReminders(appt)
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Empty(t, reminders.reminders)
}

func TestGenerateRemindersDefaultsMissingTime(t *testing.T) {
	reminders := &fakeReminderRepo{}
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc := &DefaultAppointmentService{
		Repo:      newFakeAppointmentRepo(),
		Reminders: reminders,
		Clock:     fixedClock(now),
	}

	appt := &models.Appointment{
		ID: "a1", UserID: "u1", Title: "Vaccination",
		Date: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
	}
	created, err := svc.GenerateReminders(appt)
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC), *created[0].ScheduledFor)
}

func TestRegenerateRemindersReplacesLinkedOnly(t *testing.T) {
	reminders := &fakeReminderRepo{}
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc := &DefaultAppointmentService{
		Repo:      newFakeAppointmentRepo(),
		Reminders: reminders,
		Clock:     fixedClock(now),
	}

	// An unrelated reminder must survive the regenerate.
	require.NoError(t, reminders.Create(&models.Reminder{ID: "other", UserID: "u1", Title: "Vitamins"}))

	appt := &models.Appointment{
		ID: "a1", UserID: "u1", Title: "Checkup",
		Date: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), Time: "10:00",
	}
	_, err := svc.GenerateReminders(appt)
	require.NoError(t, err)

	appt.Time = "16:00"
	regenerated, err := svc.RegenerateReminders(appt)
	require.NoError(t, err)
	require.Len(t, regenerated, 2)

	linked, err := reminders.GetByAppointment("a1")
	require.NoError(t, err)
	assert.Len(t, linked, 2)
	for _, r := range linked {
		assert.Equal(t, 16, r.ScheduledFor.Hour())
	}

	_, err = reminders.GetByID("other")
	assert.NoError(t, err)
}

func TestDeleteCascadesToReminders(t *testing.T) {
	reminders := &fakeReminderRepo{}
	repo := newFakeAppointmentRepo()
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc := &DefaultAppointmentService{Repo: repo, Reminders: reminders, Clock: fixedClock(now)}

	appt, err := svc.Create(&models.Appointment{
		UserID: "u1", Title: "Checkup",
		Date: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), Time: "10:00",
	})
	require.NoError(t, err)

	linked, _ := reminders.GetByAppointment(appt.ID)
	require.Len(t, linked, 2)

	require.NoError(t, svc.Delete("u1", appt.ID))

	linked, _ = reminders.GetByAppointment(appt.ID)
	assert.Empty(t, linked)
	_, err = repo.GetByID(appt.ID)
	assert.Error(t, err)
}

func TestUpdateRegeneratesOnlyWhenScheduleChanges(t *testing.T) {
	reminders := &fakeReminderRepo{}
	repo := newFakeAppointmentRepo()
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc := &DefaultAppointmentService{Repo: repo, Reminders: reminders, Clock: fixedClock(now)}

	appt, err := svc.Create(&models.Appointment{
		UserID: "u1", Title: "Checkup",
		Date: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), Time: "10:00",
	})
	require.NoError(t, err)
	before, _ := reminders.GetByAppointment(appt.ID)
	require.Len(t, before, 2)
	beforeIDs := []string{before[0].ID, before[1].ID}

	// A notes-only edit keeps the reminders as they are.
	appt.Notes = "bring referral letter"
	_, err = svc.Update(appt)
	require.NoError(t, err)
	after, _ := reminders.GetByAppointment(appt.ID)
	require.Len(t, after, 2)
	assert.Equal(t, beforeIDs, []string{after[0].ID, after[1].ID})

	// A time change replaces them.
	appt.Time = "15:00"
	_, err = svc.Update(appt)
	require.NoError(t, err)
	after, _ = reminders.GetByAppointment(appt.ID)
	require.Len(t, after, 2)
	assert.NotEqual(t, beforeIDs, []string{after[0].ID, after[1].ID})
}
