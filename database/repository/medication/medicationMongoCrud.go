package medicationRepo

import (
	"fmt"
	"time"

	"medivault/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new medication document.
func (r *MongoMedicationRepo) Create(m *models.Medication) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, m)
	if err != nil {
		return fmt.Errorf("failed to create medication: %w", err)
	}
	return nil
}

// Update modifies an existing medication document.
func (r *MongoMedicationRepo) Update(m *models.Medication) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	m.UpdatedAt = time.Now()
	filter := bson.M{"id": m.ID}
	update := bson.M{"$set": m}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update medication with id %s: %w", m.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("medication with id %s not found", m.ID)
	}
	return nil
}

// Delete removes a medication document by its ID.
func (r *MongoMedicationRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete medication with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("medication with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a medication by its unique ID.
func (r *MongoMedicationRepo) GetByID(id string) (*models.Medication, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var m models.Medication
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&m)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("medication with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch medication with id %s: %w", id, err)
	}
	return &m, nil
}

// GetByUser retrieves all medications owned by a user.
func (r *MongoMedicationRepo) GetByUser(userID string) ([]models.Medication, error) {
	return r.find(bson.M{"userId": userID})
}

// GetActiveByUser retrieves a user's active medications.
func (r *MongoMedicationRepo) GetActiveByUser(userID string) ([]models.Medication, error) {
	return r.find(bson.M{"userId": userID, "status": models.MedicationActive})
}

// GetActiveWithReminders retrieves medications eligible for the missed-dose sweep.
func (r *MongoMedicationRepo) GetActiveWithReminders() ([]models.Medication, error) {
	return r.find(bson.M{
		"status":          models.MedicationActive,
		"reminderEnabled": true,
		"reminderTimes":   bson.M{"$exists": true, "$ne": bson.A{}},
	})
}

func (r *MongoMedicationRepo) find(filter bson.M) ([]models.Medication, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch medications: %w", err)
	}
	defer cursor.Close(ctx)

	var meds []models.Medication
	if err := cursor.All(ctx, &meds); err != nil {
		return nil, fmt.Errorf("failed to decode medications: %w", err)
	}
	return meds, nil
}
