package reminder

import (
	"context"
	"time"

	reminderRepo "medivault/database/repository/reminder"
	"medivault/models"
	"medivault/services/tasks"
)

// ReminderService owns reminder CRUD and the minute trigger loop.
type ReminderService interface {
	Create(r *models.Reminder) (*models.Reminder, error)
	Update(r *models.Reminder) (*models.Reminder, error)
	Delete(userID, id string) error
	GetByID(userID, id string) (*models.Reminder, error)
	ListByUser(userID string) ([]models.Reminder, error)
	ListUpcoming(userID string, window time.Duration) ([]models.Reminder, error)
	MarkCompleted(userID, id string, date time.Time) error
	MarkMissed(userID, id string, date time.Time) error
	// ProcessDue runs one trigger-loop tick: dispatch every due reminder,
	// advance its schedule, deactivate exhausted one-shots.
	ProcessDue(ctx context.Context, now time.Time) error
}

// DefaultReminderService is the production implementation.
type DefaultReminderService struct {
	Repo  reminderRepo.ReminderRepository
	Queue tasks.Enqueuer
}
