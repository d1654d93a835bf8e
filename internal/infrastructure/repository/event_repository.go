package repository

import (
	"context"
	"fmt"

	"checkout-experience-layer/internal/domain"
	"checkout-experience-layer/internal/infrastructure/repository/entity"
	"checkout-experience-layer/internal/ports"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoEventRepository implements EventRepository using MongoDB. The
// events collection is append-only.
type MongoEventRepository struct {
	collection *mongo.Collection
}

// NewMongoEventRepository creates a new MongoDB event repository
func NewMongoEventRepository(db *mongo.Database) ports.EventRepository {
	return &MongoEventRepository{collection: db.Collection("events")}
}

// Insert stores a single event
func (r *MongoEventRepository) Insert(ctx context.Context, event *domain.Event) error {
	doc := entity.MongoEventDocFromDomain(event)
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// InsertMany stores a batch of events and returns how many were
// saved. Unordered, so one bad document does not sink the batch.
func (r *MongoEventRepository) InsertMany(ctx context.Context, events []*domain.Event) (int, error) {
	docs := make([]any, 0, len(events))
	for _, event := range events {
		docs = append(docs, entity.MongoEventDocFromDomain(event))
	}

	opts := options.InsertMany().SetOrdered(false)
	result, err := r.collection.InsertMany(ctx, docs, opts)
	if result != nil && err != nil {
		return len(result.InsertedIDs), fmt.Errorf("failed to insert events: %w", err)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert events: %w", err)
	}
	return len(result.InsertedIDs), nil
}
