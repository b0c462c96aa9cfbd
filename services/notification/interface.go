package notification

import (
	"context"

	"medivault/models"
)

// EmailProvider delivers one email. Implemented by utils.SMTPEmail.
type EmailProvider interface {
	Send(to, subject, htmlBody string) error
}

// SMSProvider delivers one text message. Implemented by utils.GatewaySMS.
type SMSProvider interface {
	Send(to, message string) error
}

// PushProvider delivers one push message. Implemented by utils.FCMPush.
type PushProvider interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// NotificationService fans one logical notification out to its channels and
// owns the durable in-app feed.
type NotificationService interface {
	// Dispatch always writes the in-app record, then attempts each other
	// requested channel independently. Channel failures are isolated and
	// never propagate to the caller.
	Dispatch(ctx context.Context, userID string, payload models.NotificationPayload) models.DeliveryResult
	ListByUser(userID string, limit int64) ([]models.Notification, error)
	MarkRead(userID, id string) error
	MarkAllRead(userID string) error
}
