package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogerrors "atelier/internal/catalog/errors"
	"atelier/pkg/config"
	mongotx "atelier/pkg/db/mongo"
	"atelier/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Services"
)

type mongoOfferingRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type OfferingRepository interface {
	Create(ctx context.Context, offering *model.ServiceOffering) error
	FindByID(ctx context.Context, id string) (*model.ServiceOffering, error)
	FindByStudio(ctx context.Context, studioID string, activeOnly bool, limit int, offset int64) ([]*model.ServiceOffering, error)
	Update(ctx context.Context, id string, offering *model.ServiceOffering) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
	CountByStudio(ctx context.Context, studioID string, activeOnly bool) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoOfferingRepository(cfg *config.Config) OfferingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoOfferingRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoOfferingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoOfferingRepository) Create(ctx context.Context, offering *model.ServiceOffering) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	offering.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, offering)
	if err != nil {
		return fmt.Errorf("failed to create service offering: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		offering.ID = oid.Hex()
	}
	return nil
}

func (r *mongoOfferingRepository) FindByID(ctx context.Context, id string) (*model.ServiceOffering, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}

	var offering model.ServiceOffering
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&offering)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", catalogerrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find service offering: %w", err)
	}

	return &offering, nil
}

func (r *mongoOfferingRepository) FindByStudio(ctx context.Context, studioID string, activeOnly bool, limit int, offset int64) ([]*model.ServiceOffering, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"studio_id": studioID}
	if activeOnly {
		filter["active"] = true
	}

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query service offerings: %w", err)
	}
	defer cursor.Close(ctx)

	var offerings []*model.ServiceOffering
	if err = cursor.All(ctx, &offerings); err != nil {
		return nil, fmt.Errorf("failed to decode service offerings: %w", err)
	}
	return offerings, nil
}

func (r *mongoOfferingRepository) Update(ctx context.Context, id string, offering *model.ServiceOffering) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":          offering.Name,
			"duration_min":  offering.DurationMin,
			"price_cents":   offering.PriceCents,
			"deposit_cents": offering.DepositCents,
			"active":        offering.Active,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update service offering: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: %s", catalogerrors.ErrNotFound, id)
	}

	return result, nil
}

func (r *mongoOfferingRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete service offering: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", catalogerrors.ErrNotFound, id)
	}

	return nil
}

func (r *mongoOfferingRepository) CountByStudio(ctx context.Context, studioID string, activeOnly bool) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"studio_id": studioID}
	if activeOnly {
		filter["active"] = true
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count service offerings: %w", err)
	}
	return count, nil
}

func (r *mongoOfferingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
