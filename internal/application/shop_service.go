package application

import (
	"context"
	"fmt"
	"strings"

	"checkout-experience-layer/internal/domain"
	"checkout-experience-layer/internal/ports"

	"github.com/rs/zerolog"
)

// ShopService resolves shop identity and assembles the per-request
// FrontendShop aggregate.
type ShopService struct {
	shops      ports.ShopRepository
	tokens     ports.ShopTokenRepository
	urls       ports.ShopURLRepository
	assets     ports.AssetRepository
	encryption ports.EncryptionService
	assetsURL  string
	logger     zerolog.Logger
}

// NewShopService creates a new shop directory service.
func NewShopService(
	shops ports.ShopRepository,
	tokens ports.ShopTokenRepository,
	urls ports.ShopURLRepository,
	assets ports.AssetRepository,
	encryption ports.EncryptionService,
	assetsURL string,
	logger zerolog.Logger,
) *ShopService {
	return &ShopService{
		shops:      shops,
		tokens:     tokens,
		urls:       urls,
		assets:     assets,
		encryption: encryption,
		assetsURL:  assetsURL,
		logger:     logger,
	}
}

// GetShop retrieves a shop by numeric ID.
func (s *ShopService) GetShop(ctx context.Context, shopID int64) (*domain.Shop, error) {
	shop, err := s.shops.GetByID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}
	if shop == nil {
		return nil, &domain.ResolutionError{Resource: "shop", Message: fmt.Sprintf("invalid id %d", shopID)}
	}
	return shop, nil
}

// GetShopByDomain retrieves a shop by platform domain. Zero or
// multiple matches both fail; an ambiguous lookup is never a hit.
func (s *ShopService) GetShopByDomain(ctx context.Context, platformDomain string) (*domain.Shop, error) {
	shops, err := s.shops.FindByDomain(ctx, platformDomain)
	if err != nil {
		return nil, fmt.Errorf("failed to find shop by domain: %w", err)
	}
	return exactlyOne(shops, "domain "+platformDomain)
}

// GetShopByIdentifier retrieves a shop by platform identifier under
// the same exactly-one-match rule.
func (s *ShopService) GetShopByIdentifier(ctx context.Context, identifier string) (*domain.Shop, error) {
	shops, err := s.shops.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to find shop by identifier: %w", err)
	}
	return exactlyOne(shops, "identifier "+identifier)
}

// GetShopByIdentifierOrDomain matches either column, still requiring
// exactly one row.
func (s *ShopService) GetShopByIdentifierOrDomain(ctx context.Context, value string) (*domain.Shop, error) {
	shops, err := s.shops.FindByIdentifierOrDomain(ctx, value)
	if err != nil {
		return nil, fmt.Errorf("failed to find shop: %w", err)
	}
	return exactlyOne(shops, "identifier or domain "+value)
}

func exactlyOne(shops []*domain.Shop, key string) (*domain.Shop, error) {
	if len(shops) != 1 {
		return nil, &domain.ResolutionError{Resource: "shop", Message: "no unique match for " + key}
	}
	return shops[0], nil
}

// CreateOrUpdate validates the install parameters, cross-checks them
// against the remote shop info and upserts the shop keyed by
// (domain, type, identifier).
func (s *ShopService) CreateOrUpdate(ctx context.Context, params domain.ShopParams, info domain.RemoteShopInfo) (*domain.Shop, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if !params.MatchesRemoteInfo(info) {
		return nil, &domain.ValidationError{Message: "shop parameters do not match remote shop info"}
	}

	shop, err := s.shops.Upsert(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert shop: %w", err)
	}
	s.logger.Info().
		Str("platform_domain", shop.PlatformDomain).
		Str("platform_type", shop.PlatformType).
		Msg("Shop saved")
	return shop, nil
}

// LoadAggregate loads the token, URLs and assets of a resolved shop
// into a FrontendShop. Any missing sub-resource fails the whole
// aggregate; no partially populated value is ever returned.
func (s *ShopService) LoadAggregate(ctx context.Context, shop *domain.Shop) (*domain.FrontendShop, error) {
	urls, err := s.loadURLs(ctx, shop.ID)
	if err != nil {
		return nil, s.aggregateFailure(shop, err)
	}
	token, err := s.loadToken(ctx, shop.ID)
	if err != nil {
		return nil, s.aggregateFailure(shop, err)
	}
	assets, err := s.loadAssets(ctx, shop.ID)
	if err != nil {
		return nil, s.aggregateFailure(shop, err)
	}

	return &domain.FrontendShop{
		Shop:   *shop,
		Token:  token,
		URLs:   *urls,
		Assets: *assets,
	}, nil
}

// ResolveAggregate resolves a shop by identifier or domain and loads
// its aggregate in one step.
func (s *ShopService) ResolveAggregate(ctx context.Context, value string) (*domain.FrontendShop, error) {
	shop, err := s.GetShopByIdentifierOrDomain(ctx, value)
	if err != nil {
		return nil, err
	}
	return s.LoadAggregate(ctx, shop)
}

func (s *ShopService) aggregateFailure(shop *domain.Shop, err error) error {
	s.logger.Error().
		Err(err).
		Int64("shop_id", shop.ID).
		Msg("Failed to build shop aggregate")
	return &domain.ResolutionError{Resource: "shop", Message: "incomplete shop configuration"}
}

func (s *ShopService) loadURLs(ctx context.Context, shopID int64) (*domain.ShopURLs, error) {
	urls, err := s.urls.GetByShopID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shop urls: %w", err)
	}
	if urls == nil {
		return nil, fmt.Errorf("no urls defined for shop %d", shopID)
	}
	return urls, nil
}

func (s *ShopService) loadToken(ctx context.Context, shopID int64) (string, error) {
	token, err := s.tokens.GetByShopID(ctx, shopID)
	if err != nil {
		return "", fmt.Errorf("failed to get shop token: %w", err)
	}
	if token == nil {
		return "", fmt.Errorf("no token defined for shop %d", shopID)
	}
	decrypted, err := s.encryption.Decrypt(token.APIToken)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt shop token: %w", err)
	}
	return decrypted, nil
}

func (s *ShopService) loadAssets(ctx context.Context, shopID int64) (*domain.ShopAssets, error) {
	link, err := s.assets.GetShopAssetLink(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shop asset link: %w", err)
	}
	if link == nil {
		return nil, fmt.Errorf("no template assigned to shop %d", shopID)
	}

	template, err := s.assets.GetAssetByID(ctx, link.AssetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get template asset: %w", err)
	}
	if template == nil {
		return nil, fmt.Errorf("template asset %d does not exist", link.AssetID)
	}
	template.AssetURL = strings.ReplaceAll(template.AssetURL, "{{assets_url}}", s.assetsURL)

	children, err := s.assets.ListChildren(ctx, template.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list child assets: %w", err)
	}

	assets := &domain.ShopAssets{Template: *template}
	for _, child := range children {
		switch child.Position {
		case domain.AssetPositionHeader:
			assets.Header = append(assets.Header, child)
		case domain.AssetPositionBody:
			assets.Body = append(assets.Body, child)
		case domain.AssetPositionFooter:
			assets.Footer = append(assets.Footer, child)
		}
	}
	return assets, nil
}

// SaveToken encrypts and stores the shop's API token, replacing any
// previous one.
func (s *ShopService) SaveToken(ctx context.Context, shop *domain.Shop, accessToken string) error {
	if accessToken == "" {
		return &domain.ValidationError{Field: "api_token", Message: "parameter is empty"}
	}
	encrypted, err := s.encryption.Encrypt(accessToken)
	if err != nil {
		return fmt.Errorf("failed to encrypt access token: %w", err)
	}
	return s.tokens.Save(ctx, &domain.ShopAPIToken{ShopID: shop.ID, APIToken: encrypted})
}

// VerifyToken compares a presented token with the shop's stored one.
func (s *ShopService) VerifyToken(ctx context.Context, shop *domain.Shop, presented string) error {
	token, err := s.tokens.GetByShopID(ctx, shop.ID)
	if err != nil {
		return fmt.Errorf("failed to get shop token: %w", err)
	}
	if token == nil || token.APIToken == "" {
		return &domain.AuthorizationError{Message: "invalid shop or token"}
	}
	decrypted, err := s.encryption.Decrypt(token.APIToken)
	if err != nil {
		return &domain.AuthorizationError{Message: "invalid shop or token"}
	}
	if decrypted != presented {
		return &domain.AuthorizationError{Message: "invalid shop or token"}
	}
	return nil
}

// SaveURLs validates and stores the shop URL set. An incomplete set is
// rejected and the existing row, if any, stays untouched.
func (s *ShopService) SaveURLs(ctx context.Context, shop *domain.Shop, urls domain.ShopURLs) error {
	if err := urls.Validate(); err != nil {
		return err
	}
	urls.ShopID = shop.ID
	return s.urls.Save(ctx, &urls)
}

// AssignAssetByID links a template asset to the shop.
func (s *ShopService) AssignAssetByID(ctx context.Context, shop *domain.Shop, assetID int64) (*domain.Asset, error) {
	asset, err := s.assets.GetAssetByID(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return s.assignAsset(ctx, shop, asset)
}

// AssignAssetByName links a template asset to the shop by name.
func (s *ShopService) AssignAssetByName(ctx context.Context, shop *domain.Shop, name string) (*domain.Asset, error) {
	asset, err := s.assets.GetAssetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return s.assignAsset(ctx, shop, asset)
}

func (s *ShopService) assignAsset(ctx context.Context, shop *domain.Shop, asset *domain.Asset) (*domain.Asset, error) {
	if asset == nil {
		return nil, &domain.ValidationError{Field: "asset", Message: "asset does not exist"}
	}
	link := &domain.ShopAssetLink{ShopID: shop.ID, AssetID: asset.ID}
	if err := s.assets.SaveShopAssetLink(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to save shop asset link: %w", err)
	}
	return asset, nil
}

// ReturnToCartURL builds the platform cart URL used during install.
func ReturnToCartURL(shopDomain, platformType string) (string, error) {
	switch platformType {
	case domain.PlatformBigCommerce:
		return fmt.Sprintf("https://%s/cart.php", shopDomain), nil
	case domain.PlatformWooCommerce, domain.PlatformShopify, domain.PlatformCommercetools, domain.PlatformBold:
		return fmt.Sprintf("https://%s/cart", shopDomain), nil
	default:
		return "", &domain.ValidationError{Field: "platform_type", Message: fmt.Sprintf("platform %s is not supported", platformType)}
	}
}
