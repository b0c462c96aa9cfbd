package models

import "time"

// Emergency event types.
const (
	EmergencySOS         = "sos"
	EmergencyAutoTrigger = "auto-trigger"
	EmergencyManual      = "manual"
)

// Emergency event statuses. Cancelled is terminal and reachable only by
// explicit action; token expiry never changes the status.
const (
	EmergencyActive    = "active"
	EmergencyResolved  = "resolved"
	EmergencyCancelled = "cancelled"
)

// Notification methods and statuses recorded per contact.
const (
	MethodSMS      = "sms"
	MethodEmail    = "email"
	MethodWhatsApp = "whatsapp"
	MethodPush     = "push"

	NotifySent      = "sent"
	NotifyDelivered = "delivered"
	NotifyFailed    = "failed"
)

// EmergencyLocation is an optional point attached to an event.
type EmergencyLocation struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
	Address   string  `bson:"address,omitempty" json:"address,omitempty"`
	Accuracy  float64 `bson:"accuracy,omitempty" json:"accuracy,omitempty"`
}

// ContactNotification snapshots a contact and one delivery attempt so
// later contact edits never retroactively change history.
type ContactNotification struct {
	Name         string    `bson:"name,omitempty" json:"name,omitempty"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Email        string    `bson:"email,omitempty" json:"email,omitempty"`
	Relationship string    `bson:"relationship,omitempty" json:"relationship,omitempty"`
	Method       string    `bson:"method" json:"method"`
	NotifiedAt   time.Time `bson:"notifiedAt" json:"notifiedAt"`
	Status       string    `bson:"status" json:"status"`
}

// AccessEntry is one audit record of a critical-profile read.
type AccessEntry struct {
	AccessedAt   time.Time `bson:"accessedAt" json:"accessedAt"`
	AccessorType string    `bson:"accessorType,omitempty" json:"accessorType,omitempty"`
	Identifier   string    `bson:"identifier,omitempty" json:"identifier,omitempty"`
}

// EmergencyEvent is one SOS episode.
type EmergencyEvent struct {
	ID        string             `bson:"id" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	EventType string             `bson:"eventType" json:"eventType"`
	Status    string             `bson:"status" json:"status"`
	Location  *EmergencyLocation `bson:"location,omitempty" json:"location,omitempty"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`

	TriggeredAt time.Time  `bson:"triggeredAt" json:"triggeredAt"`
	ResolvedAt  *time.Time `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	ResolvedBy  string     `bson:"resolvedBy,omitempty" json:"resolvedBy,omitempty"`

	ContactsNotified []ContactNotification `bson:"contactsNotified,omitempty" json:"contactsNotified,omitempty"`

	// Minted once per event; 48 hour validity.
	TemporaryAccessToken   string    `bson:"temporaryAccessToken" json:"-"`
	TemporaryAccessExpires time.Time `bson:"temporaryAccessExpires" json:"temporaryAccessExpires"`

	AccessedBy []AccessEntry `bson:"accessedBy,omitempty" json:"accessedBy,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TokenValid reports whether the access token is usable at the given instant.
func (e *EmergencyEvent) TokenValid(token string, now time.Time) bool {
	return e.Status == EmergencyActive &&
		e.TemporaryAccessToken != "" &&
		e.TemporaryAccessToken == token &&
		e.TemporaryAccessExpires.After(now)
}
