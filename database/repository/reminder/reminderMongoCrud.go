package reminderRepo

import (
	"fmt"
	"time"

	"medivault/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new reminder document.
func (r *MongoReminderRepo) Create(rem *models.Reminder) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	rem.CreatedAt = now
	rem.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, rem)
	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	return nil
}

// Update modifies an existing reminder document.
func (r *MongoReminderRepo) Update(rem *models.Reminder) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	rem.UpdatedAt = time.Now()
	filter := bson.M{"id": rem.ID}
	update := bson.M{"$set": rem}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update reminder with id %s: %w", rem.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("reminder with id %s not found", rem.ID)
	}
	return nil
}

// Delete removes a reminder document by its ID.
func (r *MongoReminderRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete reminder with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("reminder with id %s not found", id)
	}
	return nil
}

// DeleteByAppointment removes all reminders linked to an appointment.
func (r *MongoReminderRepo) DeleteByAppointment(appointmentID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"appointmentId": appointmentID}
	if _, err := r.coll.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete reminders for appointment %s: %w", appointmentID, err)
	}
	return nil
}

// DeleteByMedication removes all reminders linked to a medication.
func (r *MongoReminderRepo) DeleteByMedication(medicationID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"medicationId": medicationID}
	if _, err := r.coll.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete reminders for medication %s: %w", medicationID, err)
	}
	return nil
}

// AddCompletedDate records a completion for the given calendar date,
// deduplicated per day via $addToSet.
func (r *MongoReminderRepo) AddCompletedDate(id string, date time.Time) error {
	return r.addDate(id, "completedDates", date)
}

// AddMissedDate records a miss for the given calendar date.
func (r *MongoReminderRepo) AddMissedDate(id string, date time.Time) error {
	return r.addDate(id, "missedDates", date)
}

func (r *MongoReminderRepo) addDate(id, field string, date time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{
		"$addToSet": bson.M{field: models.Midnight(date)},
		"$set":      bson.M{"updatedAt": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update reminder with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("reminder with id %s not found", id)
	}
	return nil
}
