package emergency

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"medivault/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memEmergencyRepo is an in-memory EmergencyRepository.
type memEmergencyRepo struct {
	mu     sync.Mutex
	events map[string]*models.EmergencyEvent
}

func newMemEmergencyRepo() *memEmergencyRepo {
	return &memEmergencyRepo{events: make(map[string]*models.EmergencyEvent)}
}

func (r *memEmergencyRepo) Create(e *models.EmergencyEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.events[e.ID] = &cp
	return nil
}

func (r *memEmergencyRepo) Update(e *models.EmergencyEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[e.ID]; !ok {
		return fmt.Errorf("emergency event with id %s not found", e.ID)
	}
	cp := *e
	r.events[e.ID] = &cp
	return nil
}

func (r *memEmergencyRepo) GetByID(id string) (*models.EmergencyEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return nil, fmt.Errorf("emergency event with id %s not found", id)
	}
	cp := *e
	return &cp, nil
}

func (r *memEmergencyRepo) GetByUser(userID string) ([]models.EmergencyEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.EmergencyEvent
	for _, e := range r.events {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *memEmergencyRepo) GetActiveByUserAndToken(userID, token string) (*models.EmergencyEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.UserID == userID && e.Status == models.EmergencyActive && e.TemporaryAccessToken == token {
			cp := *e
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("emergency event not found")
}

func (r *memEmergencyRepo) AppendAccess(id string, entry models.AccessEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return fmt.Errorf("emergency event with id %s not found", id)
	}
	e.AccessedBy = append(e.AccessedBy, entry)
	return nil
}

func (r *memEmergencyRepo) SetContactsNotified(id string, notified []models.ContactNotification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return fmt.Errorf("emergency event with id %s not found", id)
	}
	e.ContactsNotified = notified
	return nil
}

func (r *memEmergencyRepo) SetResolved(id, resolvedBy, notes string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return fmt.Errorf("emergency event with id %s not found", id)
	}
	e.Status = models.EmergencyResolved
	e.ResolvedAt = &at
	e.ResolvedBy = resolvedBy
	if notes != "" {
		e.Notes = notes
	}
	return nil
}

// fakeUserRepo serves a fixed set of users.
type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user with id %s not found", id)
	}
	return u, nil
}

func (f *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s not found", username)
}

// fakeMedicationRepo only serves GetActiveByUser; the rest is unused here.
type fakeMedicationRepo struct {
	active []models.Medication
}

func (f *fakeMedicationRepo) Create(m *models.Medication) error { return nil }
func (f *fakeMedicationRepo) Update(m *models.Medication) error { return nil }
func (f *fakeMedicationRepo) Delete(id string) error            { return nil }
func (f *fakeMedicationRepo) GetByID(id string) (*models.Medication, error) {
	return nil, fmt.Errorf("not implemented")
}
func (f *fakeMedicationRepo) GetByUser(userID string) ([]models.Medication, error) { return nil, nil }
func (f *fakeMedicationRepo) GetActiveWithReminders() ([]models.Medication, error) { return nil, nil }
func (f *fakeMedicationRepo) GetActiveByUser(userID string) ([]models.Medication, error) {
	return f.active, nil
}
func (f *fakeMedicationRepo) UpsertAdherence(id string, entry models.AdherenceEntry) error {
	return nil
}
func (f *fakeMedicationRepo) AddMissedDose(id string, missed models.MissedDose) error { return nil }
func (f *fakeMedicationRepo) RemoveMissedDose(id string, date time.Time) error        { return nil }

// fakeNotifier records in-app dispatches.
type fakeNotifier struct {
	mu         sync.Mutex
	dispatched []models.NotificationPayload
}

func (f *fakeNotifier) Dispatch(ctx context.Context, userID string, payload models.NotificationPayload) models.DeliveryResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dispatched = append(f.dispatched, payload)
	return models.DeliveryResult{AnySuccess: true, SuccessCount: 1}
}

func (f *fakeNotifier) ListByUser(userID string, limit int64) ([]models.Notification, error) {
	return nil, nil
}
func (f *fakeNotifier) MarkRead(userID, id string) error { return nil }
func (f *fakeNotifier) MarkAllRead(userID string) error  { return nil }

// fakeSMS and fakeEmail record sends and fail on demand.
type fakeSMS struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (f *fakeSMS) Send(to, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("sms gateway unreachable")
	}
	f.sent = append(f.sent, to)
	return nil
}

type fakeEmail struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (f *fakeEmail) Send(to, subject, htmlBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("smtp unreachable")
	}
	f.sent = append(f.sent, to)
	return nil
}

func testUser() *models.User {
	return &models.User{
		ID: "u1", Name: "Ada", Username: "ada",
		BloodType: "O-",
		Allergies: []string{"penicillin"},
		EmergencyContact: models.EmergencyContact{
			Name: "Ben", Phone: "+15550100", Relationship: "brother",
		},
		AdditionalContacts: []models.EmergencyContact{
			{Name: "Cara", Email: "cara@example.com"},
		},
		EmergencyMode: models.EmergencyMode{
			CriticalFields: []string{models.CriticalBloodType, models.CriticalAllergies},
		},
	}
}

func newTestService(repo *memEmergencyRepo, user *models.User, now time.Time) (*DefaultEmergencyService, *fakeSMS, *fakeEmail, *fakeNotifier) {
	sms := &fakeSMS{}
	email := &fakeEmail{}
	notifier := &fakeNotifier{}
	svc := &DefaultEmergencyService{
		Repo:          repo,
		Users:         &fakeUserRepo{users: map[string]*models.User{user.ID: user}},
		Medications:   &fakeMedicationRepo{},
		Notifier:      notifier,
		SMS:           sms,
		Email:         email,
		PublicBaseURL: "https://app.example.com",
		Clock:         func() time.Time { return now },
	}
	return svc, sms, email, notifier
}

func TestTriggerNotifiesEveryReachableContact(t *testing.T) {
	repo := newMemEmergencyRepo()
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	svc, sms, email, notifier := newTestService(repo, testUser(), now)

	result, err := svc.Trigger(context.Background(), "u1",
		&models.EmergencyLocation{Latitude: 6.5244, Longitude: 3.3792}, "chest pain")
	require.NoError(t, err)

	// Ben by SMS, Cara by email.
	assert.Equal(t, []string{"+15550100"}, sms.sent)
	assert.Equal(t, []string{"cara@example.com"}, email.sent)
	assert.Equal(t, 2, result.ContactsNotified)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Zero(t, result.FailureCount)

	require.NotNil(t, result.Event)
	assert.Equal(t, models.EmergencyActive, result.Event.Status)
	assert.NotEmpty(t, result.Event.TemporaryAccessToken)
	assert.Equal(t, now.Add(48*time.Hour), result.Event.TemporaryAccessExpires)
	assert.Contains(t, result.AccessLink, "https://app.example.com/emergency/ada/")

	// The user gets an in-app summary of the fan-out.
	require.Len(t, notifier.dispatched, 1)
	assert.Equal(t, models.PriorityUrgent, notifier.dispatched[0].Priority)

	stored, err := repo.GetByID(result.Event.ID)
	require.NoError(t, err)
	assert.Len(t, stored.ContactsNotified, 2)
}

func TestTriggerSucceedsWhenEveryChannelFails(t *testing.T) {
	repo := newMemEmergencyRepo()
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	svc, sms, email, _ := newTestService(repo, testUser(), now)
	sms.fail = true
	email.fail = true

	result, err := svc.Trigger(context.Background(), "u1", nil, "")
	require.NoError(t, err)

	assert.Zero(t, result.SuccessCount)
	assert.Equal(t, 2, result.FailureCount)
	require.NotNil(t, result.Event)
	assert.Equal(t, models.EmergencyActive, result.Event.Status)

	stored, err := repo.GetByID(result.Event.ID)
	require.NoError(t, err)
	require.Len(t, stored.ContactsNotified, 2)
	for _, n := range stored.ContactsNotified {
		assert.Equal(t, models.NotifyFailed, n.Status)
	}
}

func TestTriggerWithNoContacts(t *testing.T) {
	repo := newMemEmergencyRepo()
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	user := testUser()
	user.EmergencyContact = models.EmergencyContact{}
	user.AdditionalContacts = nil
	svc, _, _, _ := newTestService(repo, user, now)

	result, err := svc.Trigger(context.Background(), "u1", nil, "")
	require.NoError(t, err)
	assert.Zero(t, result.ContactsNotified)
	assert.Zero(t, result.SuccessCount)
	assert.Zero(t, result.FailureCount)
	assert.NotNil(t, result.Event)
}

func TestTriggerMintsDistinctTokens(t *testing.T) {
	repo := newMemEmergencyRepo()
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	svc, _, _, _ := newTestService(repo, testUser(), now)

	first, err := svc.Trigger(context.Background(), "u1", nil, "")
	require.NoError(t, err)
	second, err := svc.Trigger(context.Background(), "u1", nil, "")
	require.NoError(t, err)

	assert.NotEqual(t, first.Event.TemporaryAccessToken, second.Event.TemporaryAccessToken)
	// 256 bits of randomness encode to 52 base32 characters.
	assert.GreaterOrEqual(t, len(first.Event.TemporaryAccessToken), 52)
}

func TestResolveClosesActiveEvent(t *testing.T) {
	repo := newMemEmergencyRepo()
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	svc, _, _, _ := newTestService(repo, testUser(), now)

	result, err := svc.Trigger(context.Background(), "u1", nil, "")
	require.NoError(t, err)

	resolved, err := svc.Resolve(context.Background(), result.Event.ID, "u1", "false alarm")
	require.NoError(t, err)
	assert.Equal(t, models.EmergencyResolved, resolved.Status)
	assert.Equal(t, "u1", resolved.ResolvedBy)
	require.NotNil(t, resolved.ResolvedAt)

	// Resolving again is idempotent; the newer notes win.
	again, err := svc.Resolve(context.Background(), result.Event.ID, "u1", "confirmed safe")
	require.NoError(t, err)
	assert.Equal(t, models.EmergencyResolved, again.Status)
	assert.Equal(t, "confirmed safe", again.Notes)
}

func TestResolveRejectsForeignEvent(t *testing.T) {
	repo := newMemEmergencyRepo()
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	svc, _, _, _ := newTestService(repo, testUser(), now)

	result, err := svc.Trigger(context.Background(), "u1", nil, "")
	require.NoError(t, err)

	// Another authenticated user who learned the event id cannot close it.
	_, err = svc.Resolve(context.Background(), result.Event.ID, "u2", "silenced")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	stored, err := repo.GetByID(result.Event.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EmergencyActive, stored.Status)
	assert.Empty(t, stored.ResolvedBy)
	assert.Nil(t, stored.ResolvedAt)
}

func TestTriggerSummaryCountsContactsNotAttempts(t *testing.T) {
	repo := newMemEmergencyRepo()
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	user := testUser()
	// Ben is reachable on two channels and must still count once.
	user.EmergencyContact.Email = "ben@example.com"
	svc, _, _, notifier := newTestService(repo, user, now)

	result, err := svc.Trigger(context.Background(), "u1", nil, "")
	require.NoError(t, err)

	assert.Equal(t, 3, result.SuccessCount)
	assert.Equal(t, 2, result.ContactsNotified)

	require.Len(t, notifier.dispatched, 1)
	assert.Equal(t, "2 of 2 contacts reached. Help is on the way.", notifier.dispatched[0].Message)
}

func TestResolveRejectsCancelledEvent(t *testing.T) {
	repo := newMemEmergencyRepo()
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	svc, _, _, _ := newTestService(repo, testUser(), now)

	require.NoError(t, repo.Create(&models.EmergencyEvent{
		ID: "e1", UserID: "u1", Status: models.EmergencyCancelled,
	}))

	_, err := svc.Resolve(context.Background(), "e1", "u1", "")
	assert.Error(t, err)
}
