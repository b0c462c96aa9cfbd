package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"medivault/config"
	"medivault/models"

	"github.com/hibiken/asynq"
)

const TypeReminderSend = "reminder:send"

// NewReminderTask builds the asynq task carrying one reminder delivery.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReminderSend, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// Enqueuer submits reminder deliveries to the queue. The trigger loop
// depends on this interface so tests can capture submissions.
type Enqueuer interface {
	EnqueueReminder(payload models.ReminderPayload, fireAt time.Time) error
}

// AsynqEnqueuer is the production Enqueuer backed by the Redis queue.
type AsynqEnqueuer struct {
	Client *asynq.Client
}

// NewAsynqEnqueuer builds the queue client from the app configuration.
func NewAsynqEnqueuer() *AsynqEnqueuer {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &AsynqEnqueuer{Client: client}
}

// EnqueueReminder submits one delivery scheduled at fireAt.
func (e *AsynqEnqueuer) EnqueueReminder(payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := e.Client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder task: %w", err)
	}
	return nil
}

// Close releases the underlying queue connection.
func (e *AsynqEnqueuer) Close() error {
	return e.Client.Close()
}
