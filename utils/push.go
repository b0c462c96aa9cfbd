package utils

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
)

// FCMPush delivers push notifications through Firebase Cloud Messaging.
type FCMPush struct{}

// NewFCMPush builds the push provider. FirebaseInit must have run first for
// deliveries to succeed.
func NewFCMPush() *FCMPush {
	return &FCMPush{}
}

// Send delivers one push message to a device token.
func (p *FCMPush) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	if FCMClient == nil {
		return fmt.Errorf("push channel not configured")
	}
	if token == "" {
		return fmt.Errorf("user has no FCM token")
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}
