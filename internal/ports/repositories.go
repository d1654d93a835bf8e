package ports

import (
	"context"

	"checkout-experience-layer/internal/domain"
)

// ShopRepository defines persistence for shop identity records.
// Finders return every matching row; callers enforce the
// exactly-one-match rule.
type ShopRepository interface {
	GetByID(ctx context.Context, shopID int64) (*domain.Shop, error)
	FindByDomain(ctx context.Context, platformDomain string) ([]*domain.Shop, error)
	FindByIdentifier(ctx context.Context, identifier string) ([]*domain.Shop, error)
	FindByIdentifierOrDomain(ctx context.Context, value string) ([]*domain.Shop, error)

	// Upsert creates or updates a shop keyed by (domain, type,
	// identifier) and returns the stored record.
	Upsert(ctx context.Context, params domain.ShopParams) (*domain.Shop, error)
}

// ShopTokenRepository persists the encrypted per-shop API token.
type ShopTokenRepository interface {
	GetByShopID(ctx context.Context, shopID int64) (*domain.ShopAPIToken, error)
	Save(ctx context.Context, token *domain.ShopAPIToken) error
}

// ShopURLRepository persists the per-shop URL set.
type ShopURLRepository interface {
	GetByShopID(ctx context.Context, shopID int64) (*domain.ShopURLs, error)
	Save(ctx context.Context, urls *domain.ShopURLs) error
}

// AssetRepository persists template assets and their shop assignment.
type AssetRepository interface {
	GetAssetByID(ctx context.Context, assetID int64) (*domain.Asset, error)
	GetAssetByName(ctx context.Context, name string) (*domain.Asset, error)
	ListChildren(ctx context.Context, parentID int64) ([]domain.Asset, error)
	GetShopAssetLink(ctx context.Context, shopID int64) (*domain.ShopAssetLink, error)
	SaveShopAssetLink(ctx context.Context, link *domain.ShopAssetLink) error
}

// EventRepository is the append-only telemetry store.
type EventRepository interface {
	Insert(ctx context.Context, event *domain.Event) error
	InsertMany(ctx context.Context, events []*domain.Event) (int, error)
}
