// internal/repository/mongo/cursor_repo.go
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

const cursorCollectionName = "progress_cursors"

// mongoCursorRepository implements repository.CursorRepository
type mongoCursorRepository struct {
	collection *mongo.Collection
}

// NewMongoCursorRepository creates a new progress-cursor repository.
func NewMongoCursorRepository(db *mongo.Database) repository.CursorRepository {
	return &mongoCursorRepository{
		collection: db.Collection(cursorCollectionName),
	}
}

// GetByEmail retrieves the cursor for one user.
func (r *mongoCursorRepository) GetByEmail(ctx context.Context, email string) (*domain.ProgressCursor, error) {
	var cursor domain.ProgressCursor
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&cursor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &cursor, nil
}

// Save upserts the cursor, keyed by email.
func (r *mongoCursorRepository) Save(ctx context.Context, cursor *domain.ProgressCursor) error {
	if cursor.Email == "" {
		return errors.New("cursor requires an email")
	}
	cursor.UpdatedAt = time.Now().UTC()
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"email": cursor.Email}, cursor, opts)
	return err
}

// EnsureCursorIndexes creates necessary indexes. Call during startup.
func EnsureCursorIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
