package emergencyRepo

import (
	"context"
	"fmt"
	"time"

	"medivault/database"
	"medivault/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoEmergencyRepo implements EmergencyRepository using MongoDB.
type MongoEmergencyRepo struct {
	coll *mongo.Collection
}

// NewMongoEmergencyRepo creates a new instance of EmergencyRepository using MongoDB.
func NewMongoEmergencyRepo() EmergencyRepository {
	coll := database.MongoClient.Database("medivault").Collection("emergency_events")
	repo := &MongoEmergencyRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoEmergencyRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "temporaryAccessToken", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new emergency event document.
func (r *MongoEmergencyRepo) Create(e *models.EmergencyEvent) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, e)
	if err != nil {
		return fmt.Errorf("failed to create emergency event: %w", err)
	}
	return nil
}

// Update modifies an existing emergency event document.
func (r *MongoEmergencyRepo) Update(e *models.EmergencyEvent) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	e.UpdatedAt = time.Now()
	filter := bson.M{"id": e.ID}
	update := bson.M{"$set": e}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update emergency event with id %s: %w", e.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("emergency event with id %s not found", e.ID)
	}
	return nil
}

// GetByID retrieves an emergency event by its unique ID.
func (r *MongoEmergencyRepo) GetByID(id string) (*models.EmergencyEvent, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var e models.EmergencyEvent
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&e)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("emergency event with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch emergency event with id %s: %w", id, err)
	}
	return &e, nil
}

// GetByUser retrieves a user's emergency events, newest first.
func (r *MongoEmergencyRepo) GetByUser(userID string) ([]models.EmergencyEvent, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "triggeredAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch emergency events for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var events []models.EmergencyEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode emergency events for user %s: %w", userID, err)
	}
	return events, nil
}

// GetActiveByUserAndToken fetches the active event holding the exact token.
func (r *MongoEmergencyRepo) GetActiveByUserAndToken(userID, token string) (*models.EmergencyEvent, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"userId":               userID,
		"status":               models.EmergencyActive,
		"temporaryAccessToken": token,
	}
	var e models.EmergencyEvent
	err := r.coll.FindOne(ctx, filter).Decode(&e)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("no active emergency event for token")
		}
		return nil, fmt.Errorf("failed to fetch emergency event by token: %w", err)
	}
	return &e, nil
}

// AppendAccess appends one audit record to the accessedBy list.
func (r *MongoEmergencyRepo) AppendAccess(id string, entry models.AccessEntry) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{
		"$push": bson.M{"accessedBy": entry},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to record access for emergency event %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("emergency event with id %s not found", id)
	}
	return nil
}

// SetContactsNotified stores the fan-out outcome snapshot.
func (r *MongoEmergencyRepo) SetContactsNotified(id string, notified []models.ContactNotification) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{
		"contactsNotified": notified,
		"updatedAt":        time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to store notified contacts for emergency event %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("emergency event with id %s not found", id)
	}
	return nil
}

// SetResolved marks the event resolved. Last writer wins on notes.
func (r *MongoEmergencyRepo) SetResolved(id, resolvedBy, notes string, at time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{
		"status":     models.EmergencyResolved,
		"resolvedAt": at,
		"resolvedBy": resolvedBy,
		"notes":      notes,
		"updatedAt":  time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to resolve emergency event %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("emergency event with id %s not found", id)
	}
	return nil
}
