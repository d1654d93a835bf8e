package entity

import (
	"checkout-experience-layer/internal/domain"
)

// MongoShopTokenDoc represents a shop API token in MongoDB, keyed by
// shop ID. The token value is ciphertext.
type MongoShopTokenDoc struct {
	ShopID   int64  `bson:"_id"`
	APIToken string `bson:"api_token"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoShopTokenDoc) ToDomain() *domain.ShopAPIToken {
	return &domain.ShopAPIToken{ShopID: d.ShopID, APIToken: d.APIToken}
}

// MongoShopTokenDocFromDomain converts a domain entity to a MongoDB document
func MongoShopTokenDocFromDomain(token *domain.ShopAPIToken) *MongoShopTokenDoc {
	return &MongoShopTokenDoc{ShopID: token.ShopID, APIToken: token.APIToken}
}

// MongoShopURLsDoc represents a shop URL set in MongoDB, keyed by shop
// ID.
type MongoShopURLsDoc struct {
	ShopID         int64  `bson:"_id"`
	BackToCartURL  string `bson:"back_to_cart_url"`
	BackToStoreURL string `bson:"back_to_store_url"`
	LoginURL       string `bson:"login_url"`
	LogoURL        string `bson:"logo_url"`
	FaviconURL     string `bson:"favicon_url"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoShopURLsDoc) ToDomain() *domain.ShopURLs {
	return &domain.ShopURLs{
		ShopID:         d.ShopID,
		BackToCartURL:  d.BackToCartURL,
		BackToStoreURL: d.BackToStoreURL,
		LoginURL:       d.LoginURL,
		LogoURL:        d.LogoURL,
		FaviconURL:     d.FaviconURL,
	}
}

// MongoShopURLsDocFromDomain converts a domain entity to a MongoDB document
func MongoShopURLsDocFromDomain(urls *domain.ShopURLs) *MongoShopURLsDoc {
	return &MongoShopURLsDoc{
		ShopID:         urls.ShopID,
		BackToCartURL:  urls.BackToCartURL,
		BackToStoreURL: urls.BackToStoreURL,
		LoginURL:       urls.LoginURL,
		LogoURL:        urls.LogoURL,
		FaviconURL:     urls.FaviconURL,
	}
}

// MongoAssetDoc represents a template or child asset in MongoDB
type MongoAssetDoc struct {
	ID             int64  `bson:"_id"`
	AssetName      string `bson:"asset_name"`
	AssetURL       string `bson:"asset_url"`
	FlowID         string `bson:"flow_id"`
	Position       int    `bson:"position"`
	AssetType      string `bson:"asset_type"`
	IsAsynchronous bool   `bson:"is_asynchronous"`
	ParentID       int64  `bson:"parent_id,omitempty"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoAssetDoc) ToDomain() *domain.Asset {
	return &domain.Asset{
		ID:             d.ID,
		AssetName:      d.AssetName,
		AssetURL:       d.AssetURL,
		FlowID:         d.FlowID,
		Position:       d.Position,
		AssetType:      d.AssetType,
		IsAsynchronous: d.IsAsynchronous,
		ParentID:       d.ParentID,
	}
}

// MongoShopAssetDoc links a shop to its template asset, keyed by shop
// ID.
type MongoShopAssetDoc struct {
	ShopID  int64 `bson:"_id"`
	AssetID int64 `bson:"asset_id"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoShopAssetDoc) ToDomain() *domain.ShopAssetLink {
	return &domain.ShopAssetLink{ShopID: d.ShopID, AssetID: d.AssetID}
}

// MongoShopAssetDocFromDomain converts a domain entity to a MongoDB document
func MongoShopAssetDocFromDomain(link *domain.ShopAssetLink) *MongoShopAssetDoc {
	return &MongoShopAssetDoc{ShopID: link.ShopID, AssetID: link.AssetID}
}
