package entity

import (
	"time"

	"checkout-experience-layer/internal/domain"
)

// MongoShopDoc represents a shop in MongoDB
type MongoShopDoc struct {
	ID                 int64      `bson:"_id"`
	PlatformDomain     string     `bson:"platform_domain"`
	PlatformType       string     `bson:"platform_type"`
	PlatformIdentifier string     `bson:"platform_identifier"`
	ShopName           string     `bson:"shop_name"`
	SupportEmail       string     `bson:"support_email"`
	DeletedAt          *time.Time `bson:"deleted_at,omitempty"`
	RedactedAt         *time.Time `bson:"redacted_at,omitempty"`
	CreatedAt          time.Time  `bson:"created_at"`
	UpdatedAt          time.Time  `bson:"updated_at"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoShopDoc) ToDomain() *domain.Shop {
	return &domain.Shop{
		ID:                 d.ID,
		PlatformDomain:     d.PlatformDomain,
		PlatformType:       d.PlatformType,
		PlatformIdentifier: d.PlatformIdentifier,
		ShopName:           d.ShopName,
		SupportEmail:       d.SupportEmail,
		DeletedAt:          d.DeletedAt,
		RedactedAt:         d.RedactedAt,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

// MongoShopDocFromDomain converts a domain entity to a MongoDB document
func MongoShopDocFromDomain(shop *domain.Shop) *MongoShopDoc {
	return &MongoShopDoc{
		ID:                 shop.ID,
		PlatformDomain:     shop.PlatformDomain,
		PlatformType:       shop.PlatformType,
		PlatformIdentifier: shop.PlatformIdentifier,
		ShopName:           shop.ShopName,
		SupportEmail:       shop.SupportEmail,
		DeletedAt:          shop.DeletedAt,
		RedactedAt:         shop.RedactedAt,
		CreatedAt:          shop.CreatedAt,
		UpdatedAt:          shop.UpdatedAt,
	}
}
