// internal/repository/mongo/workout_log_repo.go
package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/jestephe2/rootedwellness-workout-app/internal/domain"
	"github.com/jestephe2/rootedwellness-workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	workoutLogCollectionName = "workout_logs"
	counterCollectionName    = "counters"
)

// mongoWorkoutLogRepository implements repository.WorkoutLogRepository
type mongoWorkoutLogRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

// NewMongoWorkoutLogRepository creates a new workout-log repository.
func NewMongoWorkoutLogRepository(db *mongo.Database) repository.WorkoutLogRepository {
	return &mongoWorkoutLogRepository{
		collection: db.Collection(workoutLogCollectionName),
		counters:   db.Collection(counterCollectionName),
	}
}

// nextSeq atomically increments and returns the ledger insertion counter.
// Seq is the tiebreak for entries sharing a timestamp, so it must be
// strictly monotonic across appends.
func (r *mongoWorkoutLogRepository) nextSeq(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": workoutLogCollectionName},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// Append stores a new ledger entry. Entries are never updated afterwards
// except for the synced flag.
func (r *mongoWorkoutLogRepository) Append(ctx context.Context, entry *domain.WorkoutLogEntry) error {
	if entry.LogID == "" || entry.Email == "" || entry.ExerciseName == "" {
		return errors.New("log entry requires logId, email, and exerciseName")
	}
	if entry.Weight < 0 {
		return errors.New("log entry weight cannot be negative")
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	seq, err := r.nextSeq(ctx)
	if err != nil {
		return err
	}
	entry.Seq = seq

	_, err = r.collection.InsertOne(ctx, entry)
	return err
}

// ListByEmail returns a user's entries newest first (by insertion order,
// which matches append order). limit 0 means no cap.
func (r *mongoWorkoutLogRepository) ListByEmail(ctx context.Context, email string, limit int) ([]domain.WorkoutLogEntry, error) {
	filter := bson.M{"email": email}
	findOptions := options.Find().SetSort(bson.D{{Key: "seq", Value: -1}})
	if limit > 0 {
		findOptions = findOptions.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.WorkoutLogEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// MarkSynced flags an entry whose remote write completed.
func (r *mongoWorkoutLogRepository) MarkSynced(ctx context.Context, logID string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"logId": logID},
		bson.M{"$set": bson.M{"synced": true}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWorkoutLogIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "logId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "seq", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "exerciseName", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
