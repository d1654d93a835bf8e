package repository

import (
	"context"
	"fmt"
	"time"

	"checkout-experience-layer/internal/domain"
	"checkout-experience-layer/internal/infrastructure/repository/entity"
	"checkout-experience-layer/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoShopRepository implements ShopRepository using MongoDB
type MongoShopRepository struct {
	shopsCollection    *mongo.Collection
	countersCollection *mongo.Collection
}

// NewMongoShopRepository creates a new MongoDB shop repository
func NewMongoShopRepository(db *mongo.Database) ports.ShopRepository {
	return &MongoShopRepository{
		shopsCollection:    db.Collection("shops"),
		countersCollection: db.Collection("counters"),
	}
}

// GetByID retrieves a shop by its numeric ID
func (r *MongoShopRepository) GetByID(ctx context.Context, shopID int64) (*domain.Shop, error) {
	var doc entity.MongoShopDoc
	filter := bson.M{"_id": shopID}

	err := r.shopsCollection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}

	return doc.ToDomain(), nil
}

// FindByDomain retrieves every shop with the given platform domain
func (r *MongoShopRepository) FindByDomain(ctx context.Context, platformDomain string) ([]*domain.Shop, error) {
	return r.find(ctx, bson.M{"platform_domain": platformDomain})
}

// FindByIdentifier retrieves every shop with the given platform identifier
func (r *MongoShopRepository) FindByIdentifier(ctx context.Context, identifier string) ([]*domain.Shop, error) {
	return r.find(ctx, bson.M{"platform_identifier": identifier})
}

// FindByIdentifierOrDomain retrieves every shop whose identifier or
// domain matches the given value
func (r *MongoShopRepository) FindByIdentifierOrDomain(ctx context.Context, value string) ([]*domain.Shop, error) {
	return r.find(ctx, bson.M{"$or": bson.A{
		bson.M{"platform_identifier": value},
		bson.M{"platform_domain": value},
	}})
}

func (r *MongoShopRepository) find(ctx context.Context, filter bson.M) ([]*domain.Shop, error) {
	cursor, err := r.shopsCollection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find shops: %w", err)
	}
	defer cursor.Close(ctx)

	var shops []*domain.Shop
	for cursor.Next(ctx) {
		var doc entity.MongoShopDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode shop: %w", err)
		}
		shops = append(shops, doc.ToDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return shops, nil
}

// Upsert creates or updates a shop keyed by its platform domain, type
// and identifier, and returns the stored record
func (r *MongoShopRepository) Upsert(ctx context.Context, params domain.ShopParams) (*domain.Shop, error) {
	filter := bson.M{
		"platform_domain":     params.PlatformDomain,
		"platform_type":       params.PlatformType,
		"platform_identifier": params.PlatformIdentifier,
	}

	var existing entity.MongoShopDoc
	err := r.shopsCollection.FindOne(ctx, filter).Decode(&existing)
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to look up shop: %w", err)
	}

	now := time.Now()
	if err == mongo.ErrNoDocuments {
		id, err := r.nextID(ctx)
		if err != nil {
			return nil, err
		}
		doc := &entity.MongoShopDoc{
			ID:                 id,
			PlatformDomain:     params.PlatformDomain,
			PlatformType:       params.PlatformType,
			PlatformIdentifier: params.PlatformIdentifier,
			ShopName:           params.ShopName,
			SupportEmail:       params.SupportEmail,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if _, err := r.shopsCollection.InsertOne(ctx, doc); err != nil {
			return nil, fmt.Errorf("failed to insert shop: %w", err)
		}
		return doc.ToDomain(), nil
	}

	update := bson.M{"$set": bson.M{
		"shop_name":     params.ShopName,
		"support_email": params.SupportEmail,
		"updated_at":    now,
	}}
	if _, err := r.shopsCollection.UpdateOne(ctx, bson.M{"_id": existing.ID}, update); err != nil {
		return nil, fmt.Errorf("failed to update shop: %w", err)
	}

	existing.ShopName = params.ShopName
	existing.SupportEmail = params.SupportEmail
	existing.UpdatedAt = now
	return existing.ToDomain(), nil
}

// nextID allocates the next shop ID from the counters collection
func (r *MongoShopRepository) nextID(ctx context.Context) (int64, error) {
	filter := bson.M{"_id": "shops"}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	if err := r.countersCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter); err != nil {
		return 0, fmt.Errorf("failed to allocate shop id: %w", err)
	}
	return counter.Seq, nil
}
