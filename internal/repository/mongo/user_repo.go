// internal/repository/mongo/user_repo.go
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

const userCollectionName = "users"

// mongoUserRepository implements repository.UserRepository
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new user-profile repository.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// GetByEmail retrieves a cached member profile.
func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"_id": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Upsert stores or refreshes a member profile. The remote user store is
// the source of truth; this collection is the local cache of it.
func (r *mongoUserRepository) Upsert(ctx context.Context, user *domain.User) error {
	if user.Email == "" {
		return errors.New("user requires an email")
	}
	user.LastActiveAt = time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = user.LastActiveAt
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.Email}, user, opts)
	return err
}
