// internal/repository/mongo/program_repo.go
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

const programCollectionName = "program_library"

// The published override is a single well-known document; publishing
// replaces it wholesale.
const activeLibraryID = "active"

type libraryDocument struct {
	ID          string                `bson:"_id"`
	Library     domain.ProgramLibrary `bson:"library"`
	PublishedAt time.Time             `bson:"publishedAt"`
}

// mongoProgramRepository implements repository.ProgramRepository
type mongoProgramRepository struct {
	collection *mongo.Collection
}

// NewMongoProgramRepository creates a new program-library repository.
func NewMongoProgramRepository(db *mongo.Database) repository.ProgramRepository {
	return &mongoProgramRepository{
		collection: db.Collection(programCollectionName),
	}
}

// LoadOverride returns the published library, or ErrNotFound when none
// has been published (or it was reverted).
func (r *mongoProgramRepository) LoadOverride(ctx context.Context) (*domain.ProgramLibrary, time.Time, error) {
	var doc libraryDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": activeLibraryID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, time.Time{}, repository.ErrNotFound
		}
		return nil, time.Time{}, err
	}
	return &doc.Library, doc.PublishedAt, nil
}

// SaveOverride upserts the active library document.
func (r *mongoProgramRepository) SaveOverride(ctx context.Context, library *domain.ProgramLibrary, publishedAt time.Time) error {
	if library == nil || len(library.Variations) == 0 {
		return errors.New("library requires at least one variation")
	}
	doc := libraryDocument{
		ID:          activeLibraryID,
		Library:     *library,
		PublishedAt: publishedAt.UTC(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": activeLibraryID}, doc, opts)
	return err
}

// DeleteOverride removes the published library. Reverting when nothing
// was published is a no-op.
func (r *mongoProgramRepository) DeleteOverride(ctx context.Context) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": activeLibraryID})
	return err
}
