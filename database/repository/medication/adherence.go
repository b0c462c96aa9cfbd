package medicationRepo

import (
	"fmt"
	"time"

	"medivault/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UpsertAdherence replaces any existing adherence entry for the entry's
// calendar date and appends the new one. The pull-then-push pair keeps a
// single authoritative entry per day.
func (r *MongoMedicationRepo) UpsertAdherence(id string, entry models.AdherenceEntry) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	entry.Date = models.Midnight(entry.Date)
	filter := bson.M{"id": id}

	pull := bson.M{
		"$pull": bson.M{"adherenceLog": bson.M{"date": entry.Date}},
	}
	if _, err := r.coll.UpdateOne(ctx, filter, pull); err != nil {
		return fmt.Errorf("failed to clear adherence entry for medication %s: %w", id, err)
	}

	push := bson.M{
		"$push": bson.M{"adherenceLog": entry},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, filter, push)
	if err != nil {
		return fmt.Errorf("failed to log adherence for medication %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("medication with id %s not found", id)
	}
	return nil
}

// AddMissedDose appends a missed-dose record for the given date.
func (r *MongoMedicationRepo) AddMissedDose(id string, missed models.MissedDose) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	missed.Date = models.Midnight(missed.Date)
	filter := bson.M{"id": id}
	update := bson.M{
		"$push": bson.M{"missedDoses": missed},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to record missed dose for medication %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("medication with id %s not found", id)
	}
	return nil
}

// RemoveMissedDose drops any missed-dose record for the given calendar date.
func (r *MongoMedicationRepo) RemoveMissedDose(id string, date time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{
		"$pull": bson.M{"missedDoses": bson.M{"date": models.Midnight(date)}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to remove missed dose for medication %s: %w", id, err)
	}
	return nil
}
