package models

// TimeSlot is a clock time without a date, e.g. {8, 30} for 08:30.
type TimeSlot struct {
	Hour   int `bson:"hour" json:"hour"`
	Minute int `bson:"minute" json:"minute"`
}

// MinutesSinceMidnight converts the slot to minutes from 00:00.
func (t TimeSlot) MinutesSinceMidnight() int {
	return t.Hour*60 + t.Minute
}

// ChannelPreferences selects which delivery channels a notification uses.
type ChannelPreferences struct {
	InApp bool `bson:"inApp" json:"inApp"`
	Email bool `bson:"email" json:"email"`
	SMS   bool `bson:"sms" json:"sms"`
	Push  bool `bson:"push" json:"push"`
}

// Priority levels used across reminders and notifications.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)
