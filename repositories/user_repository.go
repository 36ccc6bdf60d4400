// repositories/user_repository.go
package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MagicWinnie/MeetingAppBackend/config"
	"github.com/MagicWinnie/MeetingAppBackend/models"
	"github.com/MagicWinnie/MeetingAppBackend/services"
	"github.com/MagicWinnie/MeetingAppBackend/utils"
)

const queryTimeout = 10 * time.Second

// UserRepository is the MongoDB-backed user directory.
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(client *mongo.Client) *UserRepository {
	return &UserRepository{
		collection: config.GetCollection(client, "users"),
	}
}

// Create inserts a new user. A duplicate email surfaces as a conflict; the
// unique index makes this hold even for concurrent registrations.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return services.ErrConflict("user with this email already exists")
		}
		return services.ErrTransient("failed to create user", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}

	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, services.ErrNotFound("user not found")
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user models.User
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, services.ErrNotFound("user not found")
		}
		return nil, services.ErrTransient("failed to fetch user", err)
	}

	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, services.ErrNotFound("user not found")
		}
		return nil, services.ErrTransient("failed to fetch user", err)
	}

	return &user, nil
}

// UpdateFields applies a partial $set and always bumps updatedAt.
func (r *UserRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return services.ErrNotFound("user not found")
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return services.ErrConflict("email already exists")
		}
		return services.ErrTransient("failed to update user", err)
	}

	if res.MatchedCount == 0 {
		return services.ErrNotFound("user not found")
	}

	return nil
}

// AppendPhoto pushes one URL onto the profile photo list.
func (r *UserRepository) AppendPhoto(ctx context.Context, id, url string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return services.ErrNotFound("user not found")
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$push": bson.M{"profilePhotos": url},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return services.ErrTransient("failed to update user", err)
	}

	if res.MatchedCount == 0 {
		return services.ErrNotFound("user not found")
	}

	return nil
}

// Search applies the optional filters conjunctively. Age bounds are
// translated into a birth date range as of today. No sort order is imposed.
func (r *UserRepository) Search(ctx context.Context, filter models.UserSearchFilter) ([]models.User, error) {
	query := bson.M{}

	if len(filter.Interests) > 0 {
		query["interests"] = bson.M{"$in": filter.Interests}
	}

	latest, earliest := utils.BirthDateBounds(filter.MinAge, filter.MaxAge, time.Now().UTC())
	birthRange := bson.M{}
	if latest != nil {
		birthRange["$lte"] = *latest
	}
	if earliest != nil {
		birthRange["$gte"] = *earliest
	}
	if len(birthRange) > 0 {
		query["birthDate"] = birthRange
	}

	if filter.Location != nil {
		query["location"] = *filter.Location
	}
	if filter.Gender != nil {
		query["gender"] = *filter.Gender
	}
	if filter.Verified != nil {
		query["verified"] = *filter.Verified
	}

	if filter.ExcludeID != "" {
		if oid, err := primitive.ObjectIDFromHex(filter.ExcludeID); err == nil {
			query["_id"] = bson.M{"$ne": oid}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSkip(filter.Skip).SetLimit(filter.Limit)
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, services.ErrTransient("failed to search users", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, services.ErrTransient("failed to decode users", err)
	}

	return users, nil
}
