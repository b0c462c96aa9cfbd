package models

import "time"

// Notification is the durable in-app record of a delivered message.
type Notification struct {
	ID        string            `bson:"id" json:"id"`
	UserID    string            `bson:"userId" json:"userId"`
	Type      string            `bson:"type" json:"type"`
	Title     string            `bson:"title" json:"title"`
	Message   string            `bson:"message" json:"message"`
	Priority  string            `bson:"priority,omitempty" json:"priority,omitempty"`
	Data      map[string]string `bson:"data,omitempty" json:"data,omitempty"`
	Read      bool              `bson:"read" json:"read"`
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// NotificationPayload carries one logical notification into the dispatcher.
type NotificationPayload struct {
	Type     string             `json:"type"`
	Title    string             `json:"title"`
	Message  string             `json:"message"`
	Priority string             `json:"priority"`
	Channels ChannelPreferences `json:"channels"`
	Data     map[string]string  `json:"data,omitempty"`
}

// DeliveryResult aggregates per-channel outcomes of one dispatch.
type DeliveryResult struct {
	AnySuccess   bool `json:"anySuccess"`
	SuccessCount int  `json:"successCount"`
	FailureCount int  `json:"failureCount"`
}
