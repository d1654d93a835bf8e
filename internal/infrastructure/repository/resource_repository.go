package repository

import (
	"context"
	"fmt"

	"checkout-experience-layer/internal/domain"
	"checkout-experience-layer/internal/infrastructure/repository/entity"
	"checkout-experience-layer/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoShopTokenRepository implements ShopTokenRepository using MongoDB
type MongoShopTokenRepository struct {
	collection *mongo.Collection
}

// NewMongoShopTokenRepository creates a new MongoDB token repository
func NewMongoShopTokenRepository(db *mongo.Database) ports.ShopTokenRepository {
	return &MongoShopTokenRepository{collection: db.Collection("shop_api_tokens")}
}

// GetByShopID retrieves a shop's encrypted API token
func (r *MongoShopTokenRepository) GetByShopID(ctx context.Context, shopID int64) (*domain.ShopAPIToken, error) {
	var doc entity.MongoShopTokenDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": shopID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shop token: %w", err)
	}
	return doc.ToDomain(), nil
}

// Save stores a shop's encrypted API token, replacing any previous one
func (r *MongoShopTokenRepository) Save(ctx context.Context, token *domain.ShopAPIToken) error {
	doc := entity.MongoShopTokenDocFromDomain(token)
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ShopID}, doc, opts); err != nil {
		return fmt.Errorf("failed to save shop token: %w", err)
	}
	return nil
}

// MongoShopURLRepository implements ShopURLRepository using MongoDB
type MongoShopURLRepository struct {
	collection *mongo.Collection
}

// NewMongoShopURLRepository creates a new MongoDB URL repository
func NewMongoShopURLRepository(db *mongo.Database) ports.ShopURLRepository {
	return &MongoShopURLRepository{collection: db.Collection("shop_urls")}
}

// GetByShopID retrieves a shop's URL set
func (r *MongoShopURLRepository) GetByShopID(ctx context.Context, shopID int64) (*domain.ShopURLs, error) {
	var doc entity.MongoShopURLsDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": shopID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shop urls: %w", err)
	}
	return doc.ToDomain(), nil
}

// Save stores a shop's URL set, replacing any previous one
func (r *MongoShopURLRepository) Save(ctx context.Context, urls *domain.ShopURLs) error {
	doc := entity.MongoShopURLsDocFromDomain(urls)
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ShopID}, doc, opts); err != nil {
		return fmt.Errorf("failed to save shop urls: %w", err)
	}
	return nil
}

// MongoAssetRepository implements AssetRepository using MongoDB
type MongoAssetRepository struct {
	assetsCollection     *mongo.Collection
	shopAssetsCollection *mongo.Collection
}

// NewMongoAssetRepository creates a new MongoDB asset repository
func NewMongoAssetRepository(db *mongo.Database) ports.AssetRepository {
	return &MongoAssetRepository{
		assetsCollection:     db.Collection("assets"),
		shopAssetsCollection: db.Collection("shop_assets"),
	}
}

// GetAssetByID retrieves an asset by ID
func (r *MongoAssetRepository) GetAssetByID(ctx context.Context, assetID int64) (*domain.Asset, error) {
	return r.findOne(ctx, bson.M{"_id": assetID})
}

// GetAssetByName retrieves an asset by name
func (r *MongoAssetRepository) GetAssetByName(ctx context.Context, name string) (*domain.Asset, error) {
	return r.findOne(ctx, bson.M{"asset_name": name})
}

func (r *MongoAssetRepository) findOne(ctx context.Context, filter bson.M) (*domain.Asset, error) {
	var doc entity.MongoAssetDoc
	err := r.assetsCollection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return doc.ToDomain(), nil
}

// ListChildren retrieves the child assets of a template, ordered by
// position
func (r *MongoAssetRepository) ListChildren(ctx context.Context, parentID int64) ([]domain.Asset, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.assetsCollection.Find(ctx, bson.M{"parent_id": parentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list child assets: %w", err)
	}
	defer cursor.Close(ctx)

	var assets []domain.Asset
	for cursor.Next(ctx) {
		var doc entity.MongoAssetDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode asset: %w", err)
		}
		assets = append(assets, *doc.ToDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return assets, nil
}

// GetShopAssetLink retrieves the template assignment of a shop
func (r *MongoAssetRepository) GetShopAssetLink(ctx context.Context, shopID int64) (*domain.ShopAssetLink, error) {
	var doc entity.MongoShopAssetDoc
	err := r.shopAssetsCollection.FindOne(ctx, bson.M{"_id": shopID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shop asset link: %w", err)
	}
	return doc.ToDomain(), nil
}

// SaveShopAssetLink stores the template assignment of a shop,
// replacing any previous one
func (r *MongoAssetRepository) SaveShopAssetLink(ctx context.Context, link *domain.ShopAssetLink) error {
	doc := entity.MongoShopAssetDocFromDomain(link)
	opts := options.Replace().SetUpsert(true)
	if _, err := r.shopAssetsCollection.ReplaceOne(ctx, bson.M{"_id": doc.ShopID}, doc, opts); err != nil {
		return fmt.Errorf("failed to save shop asset link: %w", err)
	}
	return nil
}
