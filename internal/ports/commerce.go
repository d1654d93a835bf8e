package ports

import (
	"context"

	"checkout-experience-layer/internal/domain"
)

// Address kinds accepted by DeleteAddress.
const (
	AddressShipping = "shipping"
	AddressBilling  = "billing"
)

// CartItem is one line of a Shopify admin-initiated order.
type CartItem struct {
	PlatformID  string `json:"platform_id"`
	Quantity    int    `json:"quantity"`
	LineItemKey string `json:"line_item_key"`
}

// CommerceClient talks to the remote commerce API. Every method makes
// a single attempt; a non-2xx answer surfaces as a
// *domain.RemoteRejectionError tagged with the operation, a network
// failure as a *domain.TransportError.
type CommerceClient interface {
	InitializeOrder(ctx context.Context, shop *domain.FrontendShop, body map[string]any) (*domain.APIResponse, error)
	InitializeShopifyAdminOrder(ctx context.Context, shop *domain.FrontendShop, cartItems []CartItem, resumableLink string) (*domain.APIResponse, error)
	ResumeOrder(ctx context.Context, shop *domain.FrontendShop, publicOrderID string) (*domain.APIResponse, error)

	ShopInfos(ctx context.Context, accessToken string) (*domain.APIResponse, error)
	CustomerInfos(ctx context.Context, shop *domain.FrontendShop, customerID string) (*domain.APIResponse, error)
	AddAuthenticatedCustomer(ctx context.Context, shop *domain.FrontendShop, publicOrderID string, customer map[string]any) (*domain.APIResponse, error)
	DeleteCustomer(ctx context.Context, shop *domain.FrontendShop, publicOrderID string) (*domain.APIResponse, error)
	DeleteAddress(ctx context.Context, shop *domain.FrontendShop, publicOrderID, orderJWT, addressType string) (*domain.APIResponse, error)

	// ExchangeAuthorizationCode trades an install authorization code
	// for an access token.
	ExchangeAuthorizationCode(ctx context.Context, clientID, clientSecret, code string) (*domain.APIResponse, error)
}
