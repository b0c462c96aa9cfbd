package models

import "time"

// Appointment status values.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment is a scheduling fact owned by a user. It owns zero or more
// Reminder records created and destroyed alongside it.
type Appointment struct {
	ID       string    `bson:"id" json:"id"`
	UserID   string    `bson:"userId" json:"userId"`
	Title    string    `bson:"title" json:"title"`
	Provider string    `bson:"provider,omitempty" json:"provider,omitempty"`
	Date     time.Time `bson:"date" json:"date"`
	Time     string    `bson:"time,omitempty" json:"time,omitempty"` // "HH:MM"
	Type     string    `bson:"type,omitempty" json:"type,omitempty"`
	Location string    `bson:"location,omitempty" json:"location,omitempty"`
	Notes    string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Status   string    `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
