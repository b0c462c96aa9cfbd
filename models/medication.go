package models

import "time"

// Medication status values.
const (
	MedicationActive    = "active"
	MedicationCompleted = "completed"
	MedicationInactive  = "inactive"
	MedicationStopped   = "stopped"
)

// AdherenceEntry records whether a dose was taken on a calendar date.
// A date has at most one authoritative entry; re-logging overwrites it.
type AdherenceEntry struct {
	Date     time.Time `bson:"date" json:"date"`
	Time     string    `bson:"time,omitempty" json:"time,omitempty"`
	Taken    bool      `bson:"taken" json:"taken"`
	Notes    string    `bson:"notes,omitempty" json:"notes,omitempty"`
	LoggedAt time.Time `bson:"loggedAt" json:"loggedAt"`
}

// MissedDose records a detected missed dose, at most one per calendar date.
type MissedDose struct {
	Date          time.Time `bson:"date" json:"date"`
	ScheduledTime string    `bson:"scheduledTime,omitempty" json:"scheduledTime,omitempty"`
	Reason        string    `bson:"reason,omitempty" json:"reason,omitempty"`
}

// Medication is a prescribed course owned by a user.
type Medication struct {
	ID     string `bson:"id" json:"id"`
	UserID string `bson:"userId" json:"userId"`
	Name   string `bson:"name" json:"name"`
	Dosage string `bson:"dosage,omitempty" json:"dosage,omitempty"`
	Form   string `bson:"form,omitempty" json:"form,omitempty"`

	// Dose cadence: once, daily, twice-daily, three-times-daily, weekly,
	// as-needed or other. Distinct from Reminder.Frequency.
	Frequency string     `bson:"frequency,omitempty" json:"frequency,omitempty"`
	StartDate *time.Time `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate   *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Status    string     `bson:"status" json:"status"`
	Notes     string     `bson:"notes,omitempty" json:"notes,omitempty"`

	// ReminderTimes drives the missed-dose sweep independently of any
	// linked Reminder record.
	ReminderEnabled bool       `bson:"reminderEnabled" json:"reminderEnabled"`
	ReminderTimes   []TimeSlot `bson:"reminderTimes,omitempty" json:"reminderTimes,omitempty"`

	AdherenceLog []AdherenceEntry `bson:"adherenceLog,omitempty" json:"adherenceLog,omitempty"`
	MissedDoses  []MissedDose     `bson:"missedDoses,omitempty" json:"missedDoses,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AdherenceFor returns the adherence entry for the given calendar date.
func (m *Medication) AdherenceFor(date time.Time) *AdherenceEntry {
	day := Midnight(date)
	for i := range m.AdherenceLog {
		if Midnight(m.AdherenceLog[i].Date).Equal(day) {
			return &m.AdherenceLog[i]
		}
	}
	return nil
}

// HasMissedDoseOn reports whether a missed dose is already recorded for the date.
func (m *Medication) HasMissedDoseOn(date time.Time) bool {
	day := Midnight(date)
	for i := range m.MissedDoses {
		if Midnight(m.MissedDoses[i].Date).Equal(day) {
			return true
		}
	}
	return false
}

// Midnight normalizes an instant to 00:00 of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
