package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"atelier/internal/migrations/mongo/validators"
	"atelier/pkg/logger"
)

var (
	SchedulesIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "studio_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	ServicesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "studio_id", Value: 1}, {Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "studio_id", Value: 1}, {Key: "active", Value: 1}}},
	}

	BookingRequestsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "studio_id", Value: 1},
			{Key: "status", Value: 1},
			{Key: "created_at", Value: -1},
		}},
		{Keys: bson.D{{Key: "client_phone", Value: 1}}},
	}
)

// RunMigration ensures every collection exists with its schema validator
// and indexes. It is safe to run repeatedly.
func RunMigration(ctx context.Context, client *mongo.Client, dbName string, log *logger.Logger) error {
	db := client.Database(dbName)
	log.Info("Running Mongo migrations", "database", dbName)

	collections := map[string]struct {
		Indexes   []mongo.IndexModel
		Validator bson.M
	}{
		"Schedules": {
			Indexes:   SchedulesIndexes,
			Validator: validators.ScheduleValidator,
		},
		"Services": {
			Indexes:   ServicesIndexes,
			Validator: validators.OfferingValidator,
		},
		"BookingRequests": {
			Indexes:   BookingRequestsIndexes,
			Validator: validators.RequestValidator,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	log.Info("All migrations applied")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection exists, refreshing validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		// collMod needs extra privileges on shared clusters; the old
		// validator keeps working, so warn and move on.
		log.Warn("Failed to update collection validator", "collection", name, "error", err)
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name)
	return nil
}
