// repositories/user_interest_repository.go
package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MagicWinnie/MeetingAppBackend/config"
	"github.com/MagicWinnie/MeetingAppBackend/models"
	"github.com/MagicWinnie/MeetingAppBackend/services"
)

// UserInterestRepository stores the selectable interest reference data.
type UserInterestRepository struct {
	collection *mongo.Collection
}

func NewUserInterestRepository(client *mongo.Client) *UserInterestRepository {
	return &UserInterestRepository{
		collection: config.GetCollection(client, "user_interests"),
	}
}

// All returns every interest.
func (r *UserInterestRepository) All(ctx context.Context) ([]models.UserInterest, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, services.ErrTransient("failed to fetch interests", err)
	}
	defer cursor.Close(ctx)

	var interests []models.UserInterest
	if err := cursor.All(ctx, &interests); err != nil {
		return nil, services.ErrTransient("failed to decode interests", err)
	}

	return interests, nil
}

// ByCategory returns the interest names within one category.
func (r *UserInterestRepository) ByCategory(ctx context.Context, category string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"category": category})
	if err != nil {
		return nil, services.ErrTransient("failed to fetch interests", err)
	}
	defer cursor.Close(ctx)

	names := []string{}
	for cursor.Next(ctx) {
		var interest models.UserInterest
		if err := cursor.Decode(&interest); err != nil {
			return nil, services.ErrTransient("failed to decode interest", err)
		}
		names = append(names, interest.Name)
	}
	if err := cursor.Err(); err != nil {
		return nil, services.ErrTransient("failed to iterate interests", err)
	}

	return names, nil
}

// ReplaceAll swaps the whole reference set for a new one (bulk import).
func (r *UserInterestRepository) ReplaceAll(ctx context.Context, interests []models.UserInterest) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return services.ErrTransient("failed to clear interests", err)
	}

	docs := make([]interface{}, len(interests))
	for i, interest := range interests {
		docs[i] = interest
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return services.ErrTransient("failed to insert interests", err)
	}

	return nil
}
