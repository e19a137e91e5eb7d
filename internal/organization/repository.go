package organization

import (
	"context"
	"errors"
	"fmt"
	"time"

	"relief-coordination-api/internal/apperr"
	"relief-coordination-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "organizations"

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "registrationNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create organization indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, org *models.Organization) error {
	result, err := r.coll.InsertOne(ctx, org)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("organization %q", org.RegistrationNumber)
		}
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		org.ID = oid
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, registrationNumber string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"registrationNumber": registrationNumber})
	return err
}

func (r *MongoRepository) Get(ctx context.Context, registrationNumber string) (*models.Organization, error) {
	var org models.Organization
	err := r.coll.FindOne(ctx, bson.M{"registrationNumber": registrationNumber}).Decode(&org)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("organization %q", registrationNumber)
		}
		return nil, err
	}
	return &org, nil
}

func (r *MongoRepository) Count(ctx context.Context, registrationNumber string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"registrationNumber": registrationNumber})
}

func (r *MongoRepository) List(ctx context.Context, status string) ([]models.Organization, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orgs []models.Organization
	if err := cursor.All(ctx, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *MongoRepository) update(ctx context.Context, registrationNumber string, set bson.M) (*models.Organization, error) {
	var org models.Organization
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"registrationNumber": registrationNumber},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&org)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("organization %q", registrationNumber)
		}
		return nil, err
	}
	return &org, nil
}

func (r *MongoRepository) UpdateStatus(ctx context.Context, registrationNumber, status, reviewer string, at time.Time) (*models.Organization, error) {
	return r.update(ctx, registrationNumber, bson.M{"status": status, "reviewedBy": reviewer, "updatedAt": at})
}

func (r *MongoRepository) SetCertificate(ctx context.Context, registrationNumber string, cert models.MediaPointer, at time.Time) (*models.Organization, error) {
	return r.update(ctx, registrationNumber, bson.M{"certificate": cert, "updatedAt": at})
}
