package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	requesterrors "atelier/internal/requests/errors"
	"atelier/pkg/config"
	mongotx "atelier/pkg/db/mongo"
	"atelier/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "BookingRequests"
)

type mongoRequestRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type RequestRepository interface {
	Create(ctx context.Context, req *model.BookingRequest) error
	FindByID(ctx context.Context, id string) (*model.BookingRequest, error)
	FindByStudio(ctx context.Context, studioID string, status string, limit int, offset int64) ([]*model.BookingRequest, error)
	UpdateStatus(ctx context.Context, id string, status string) (*mongo.UpdateResult, error)
	CountByStudio(ctx context.Context, studioID string, status string) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoRequestRepository(cfg *config.Config) RequestRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRequestRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoRequestRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoRequestRepository) Create(ctx context.Context, req *model.BookingRequest) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	req.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create booking request: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		req.ID = oid.Hex()
	}
	return nil
}

func (r *mongoRequestRepository) FindByID(ctx context.Context, id string) (*model.BookingRequest, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", requesterrors.ErrInvalidID, id)
	}

	var req model.BookingRequest
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", requesterrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find booking request: %w", err)
	}

	return &req, nil
}

func (r *mongoRequestRepository) FindByStudio(ctx context.Context, studioID string, status string, limit int, offset int64) ([]*model.BookingRequest, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"studio_id": studioID}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query booking requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []*model.BookingRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode booking requests: %w", err)
	}
	return requests, nil
}

func (r *mongoRequestRepository) UpdateStatus(ctx context.Context, id string, status string) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", requesterrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{
		"$set": bson.M{"status": status},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update booking request status: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: %s", requesterrors.ErrNotFound, id)
	}

	return result, nil
}

func (r *mongoRequestRepository) CountByStudio(ctx context.Context, studioID string, status string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"studio_id": studioID}
	if status != "" {
		filter["status"] = status
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count booking requests: %w", err)
	}
	return count, nil
}

func (r *mongoRequestRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
