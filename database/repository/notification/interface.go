package notificationRepo

import "medivault/models"

// NotificationRepository defines persistence for the in-app feed.
type NotificationRepository interface {
	Create(n *models.Notification) error
	GetByUser(userID string, limit int64) ([]models.Notification, error)
	MarkRead(userID, id string) error
	MarkAllRead(userID string) error
}
