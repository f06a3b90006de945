// internal/repository/mongo/reflection_repo.go
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

const reflectionCollectionName = "reflections"

type reflectionDocument struct {
	Email      string            `bson:"_id"`
	Reflection domain.Reflection `bson:"reflection"`
}

// mongoReflectionRepository implements repository.ReflectionRepository
type mongoReflectionRepository struct {
	collection *mongo.Collection
}

// NewMongoReflectionRepository creates a new reflection repository.
func NewMongoReflectionRepository(db *mongo.Database) repository.ReflectionRepository {
	return &mongoReflectionRepository{
		collection: db.Collection(reflectionCollectionName),
	}
}

// SaveLatest keeps only the most recent reflection per user; earlier
// ones are overwritten, matching the product's "last reflection" record.
func (r *mongoReflectionRepository) SaveLatest(ctx context.Context, reflection *domain.Reflection) error {
	if reflection.Email == "" {
		return errors.New("reflection requires an email")
	}
	if reflection.Date.IsZero() {
		reflection.Date = time.Now().UTC()
	}
	doc := reflectionDocument{Email: reflection.Email, Reflection: *reflection}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": reflection.Email}, doc, opts)
	return err
}

// GetLatest returns the most recent reflection for a user.
func (r *mongoReflectionRepository) GetLatest(ctx context.Context, email string) (*domain.Reflection, error) {
	var doc reflectionDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &doc.Reflection, nil
}
