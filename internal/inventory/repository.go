package inventory

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

const CollectionName = "inventories"

// MongoRepository stores inventory records keyed by registrationNumber.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the unique key that backs the one-record-per-
// organization invariant.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "registrationNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "totalScore", Value: 1}, {Key: "registrationNumber", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("create inventory indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) Get(ctx context.Context, registrationNumber string) (*models.InventoryRecord, error) {
	var record models.InventoryRecord
	err := r.coll.FindOne(ctx, bson.M{"registrationNumber": registrationNumber}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("inventory %q", registrationNumber)
		}
		return nil, err
	}
	return &record, nil
}

// Replace upserts the whole document in a single atomic operation.
func (r *MongoRepository) Replace(ctx context.Context, record *models.InventoryRecord) error {
	filter := bson.M{"registrationNumber": record.RegistrationNumber}
	res, err := r.coll.ReplaceOne(ctx, filter, record, options.Replace().SetUpsert(true))
	if err != nil {
		return err
	}
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		record.ID = oid
	}
	return nil
}

func (r *MongoRepository) SetMonitoring(ctx context.Context, registrationNumber string, monitoring bool, at time.Time) (*models.InventoryRecord, error) {
	var record models.InventoryRecord
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"registrationNumber": registrationNumber},
		bson.M{"$set": bson.M{"isMonitoringStock": monitoring, "lastUpdated": at}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("inventory %q", registrationNumber)
		}
		return nil, err
	}
	return &record, nil
}

func (r *MongoRepository) ListByScore(ctx context.Context, limit int64) ([]models.InventoryRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "totalScore", Value: 1}, {Key: "registrationNumber", Value: 1}}).
		SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.InventoryRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
