package auth

import (
	"context"
	"errors"
	"fmt"

	"relief-coordination-api/internal/apperr"
	"relief-coordination-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository stores login accounts in the "users" collection.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection("users")}
}

func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("user %q", email)
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) CreateAccount(ctx context.Context, user *models.User) error {
	result, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("user %q", user.Email)
		}
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// SetAccountStatus updates every account linked to an organization.
func (r *UserRepository) SetAccountStatus(ctx context.Context, registrationNumber, status string) error {
	_, err := r.coll.UpdateMany(ctx,
		bson.M{"registrationNumber": registrationNumber},
		bson.M{"$set": bson.M{"status": status}},
	)
	return err
}
