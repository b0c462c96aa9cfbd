package models

import "time"

// Reminder frequency classes.
const (
	FrequencyOnce    = "once"
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyCustom  = "custom"
)

// Reminder types.
const (
	ReminderTypeMedication  = "medication"
	ReminderTypeHealthCheck = "health-check"
	ReminderTypeAppointment = "appointment"
	ReminderTypeVaccination = "vaccination"
	ReminderTypeLabTest     = "lab-test"
	ReminderTypeCustom      = "custom"
)

// Reminder is a single pending or historical notification intent.
type Reminder struct {
	ID          string `bson:"id" json:"id"`
	UserID      string `bson:"userId" json:"userId"`
	Type        string `bson:"type" json:"type"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`

	// Recurrence fields. ScheduledFor drives "once", DaysOfWeek filters
	// "weekly" (0=Sunday), TimeOfDay drives "custom".
	Frequency    string     `bson:"frequency" json:"frequency"`
	ScheduledFor *time.Time `bson:"scheduledFor,omitempty" json:"scheduledFor,omitempty"`
	DaysOfWeek   []int      `bson:"daysOfWeek,omitempty" json:"daysOfWeek,omitempty"`
	TimeOfDay    []TimeSlot `bson:"timeOfDay,omitempty" json:"timeOfDay,omitempty"`

	// Runtime state advanced by the trigger loop.
	IsActive       bool        `bson:"isActive" json:"isActive"`
	LastTriggered  *time.Time  `bson:"lastTriggered,omitempty" json:"lastTriggered,omitempty"`
	NextTrigger    *time.Time  `bson:"nextTrigger,omitempty" json:"nextTrigger,omitempty"`
	CompletedDates []time.Time `bson:"completedDates,omitempty" json:"completedDates,omitempty"`
	MissedDates    []time.Time `bson:"missedDates,omitempty" json:"missedDates,omitempty"`

	Channels ChannelPreferences `bson:"channels" json:"channels"`
	Priority string             `bson:"priority,omitempty" json:"priority,omitempty"`

	// Optional linkage to the owning parent entity. Deleting the parent
	// cascades to deleting its reminders.
	MedicationID  string `bson:"medicationId,omitempty" json:"medicationId,omitempty"`
	AppointmentID string `bson:"appointmentId,omitempty" json:"appointmentId,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// EligibleOn reports whether the reminder may fire on the given weekday.
// Only weekly reminders filter by day; an empty DaysOfWeek means every day.
func (r *Reminder) EligibleOn(day time.Weekday) bool {
	if r.Frequency != FrequencyWeekly || len(r.DaysOfWeek) == 0 {
		return true
	}
	for _, d := range r.DaysOfWeek {
		if d == int(day) {
			return true
		}
	}
	return false
}

// ReminderPayload is the asynq task body for a scheduled reminder delivery.
type ReminderPayload struct {
	ReminderID string             `json:"reminderId"`
	UserID     string             `json:"userId"`
	Type       string             `json:"type"`
	Title      string             `json:"title"`
	Body       string             `json:"body"`
	Priority   string             `json:"priority"`
	FireDate   string             `json:"fireDate"`
	Channels   ChannelPreferences `json:"channels"`
}
