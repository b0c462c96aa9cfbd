package notification

import (
	"context"
	"sync"
	"time"

	notificationRepo "medivault/database/repository/notification"
	userRepo "medivault/database/repository/user"
	"medivault/models"
	"medivault/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// dispatchTimeout bounds the whole fan-out so a stalled provider cannot
// stall the caller's tick.
const dispatchTimeout = 10 * time.Second

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo  notificationRepo.NotificationRepository
	Users userRepo.UserRepository
	Email EmailProvider
	SMS   SMSProvider
	Push  PushProvider
}

// Dispatch fans the payload out to its requested channels. The in-app
// record is written unconditionally; email, SMS and push run concurrently
// and independently, each outcome folded into the aggregate result.
func (s *DefaultNotificationService) Dispatch(ctx context.Context, userID string, payload models.NotificationPayload) models.DeliveryResult {
	logger := utils.GetLogger()
	var result models.DeliveryResult

	record := &models.Notification{
		ID:       uuid.NewString(),
		UserID:   userID,
		Type:     payload.Type,
		Title:    payload.Title,
		Message:  payload.Message,
		Priority: payload.Priority,
		Data:     payload.Data,
	}
	if err := s.Repo.Create(record); err != nil {
		logger.Error("failed to store in-app notification",
			zap.String("userId", userID), zap.Error(err))
		result.FailureCount++
	} else {
		result.SuccessCount++
	}

	wantsExternal := payload.Channels.Email || payload.Channels.SMS || payload.Channels.Push
	if wantsExternal {
		user, err := s.Users.GetByID(userID)
		if err != nil {
			logger.Error("dispatch: could not resolve user for external channels",
				zap.String("userId", userID), zap.Error(err))
			if payload.Channels.Email {
				result.FailureCount++
			}
			if payload.Channels.SMS {
				result.FailureCount++
			}
			if payload.Channels.Push {
				result.FailureCount++
			}
		} else {
			s.fanOut(ctx, user, payload, &result)
		}
	}

	result.AnySuccess = result.SuccessCount > 0
	return result
}

// fanOut attempts each external channel concurrently. All attempts complete
// (or fail) before the aggregate result is returned.
func (s *DefaultNotificationService) fanOut(ctx context.Context, user *models.User, payload models.NotificationPayload, result *models.DeliveryResult) {
	logger := utils.GetLogger()

	ctx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()

	type attempt struct {
		channel string
		run     func() error
	}
	var attempts []attempt

	if payload.Channels.Email {
		attempts = append(attempts, attempt{"email", func() error {
			return s.Email.Send(user.Email, payload.Title, emailBody(payload))
		}})
	}
	if payload.Channels.SMS {
		attempts = append(attempts, attempt{"sms", func() error {
			return s.SMS.Send(user.Phone, payload.Title+": "+payload.Message)
		}})
	}
	if payload.Channels.Push {
		attempts = append(attempts, attempt{"push", func() error {
			return s.Push.Send(ctx, user.FCMToken, payload.Title, payload.Message, payload.Data)
		}})
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, a := range attempts {
		wg.Add(1)
		go func(a attempt) {
			defer wg.Done()
			err := a.run()
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warn("notification channel failed",
					zap.String("channel", a.channel),
					zap.String("userId", user.ID),
					zap.Error(err))
				result.FailureCount++
				return
			}
			result.SuccessCount++
		}(a)
	}
	wg.Wait()
}

func emailBody(payload models.NotificationPayload) string {
	return "<html><body><h2>" + payload.Title + "</h2><p>" + payload.Message + "</p></body></html>"
}

// ListByUser returns the user's in-app feed, newest first.
func (s *DefaultNotificationService) ListByUser(userID string, limit int64) ([]models.Notification, error) {
	return s.Repo.GetByUser(userID, limit)
}

// MarkRead flags one of the user's notifications as read.
func (s *DefaultNotificationService) MarkRead(userID, id string) error {
	return s.Repo.MarkRead(userID, id)
}

// MarkAllRead flags the user's entire feed as read.
func (s *DefaultNotificationService) MarkAllRead(userID string) error {
	return s.Repo.MarkAllRead(userID)
}
