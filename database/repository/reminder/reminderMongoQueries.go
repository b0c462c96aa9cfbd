package reminderRepo

import (
	"fmt"
	"time"

	"medivault/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByID retrieves a reminder by its unique ID.
func (r *MongoReminderRepo) GetByID(id string) (*models.Reminder, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var rem models.Reminder
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&rem)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("reminder with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch reminder with id %s: %w", id, err)
	}
	return &rem, nil
}

// GetByUser retrieves all reminders owned by a user, newest first.
func (r *MongoReminderRepo) GetByUser(userID string) ([]models.Reminder, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reminders for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("failed to decode reminders for user %s: %w", userID, err)
	}
	return reminders, nil
}

// GetUpcoming retrieves a user's active reminders due inside the window.
func (r *MongoReminderRepo) GetUpcoming(userID string, until time.Time) ([]models.Reminder, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"userId":      userID,
		"isActive":    true,
		"nextTrigger": bson.M{"$lte": until},
	}
	opts := options.Find().SetSort(bson.D{{Key: "nextTrigger", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming reminders for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("failed to decode upcoming reminders for user %s: %w", userID, err)
	}
	return reminders, nil
}

// DueReminders retrieves every active reminder whose next trigger falls at
// or before now plus one minute. Inactive reminders are never returned.
func (r *MongoReminderRepo) DueReminders(now time.Time) ([]models.Reminder, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"isActive":    true,
		"nextTrigger": bson.M{"$ne": nil, "$lte": now.Add(time.Minute)},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch due reminders: %w", err)
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("failed to decode due reminders: %w", err)
	}
	return reminders, nil
}

// GetByAppointment retrieves all reminders linked to an appointment.
func (r *MongoReminderRepo) GetByAppointment(appointmentID string) ([]models.Reminder, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"appointmentId": appointmentID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reminders for appointment %s: %w", appointmentID, err)
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("failed to decode reminders for appointment %s: %w", appointmentID, err)
	}
	return reminders, nil
}
