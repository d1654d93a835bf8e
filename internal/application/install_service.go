package application

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"checkout-experience-layer/internal/domain"
	"checkout-experience-layer/internal/ports"

	"github.com/rs/zerolog"
)

// TemplateAssetID is the default template assigned to freshly
// installed shops.
const TemplateAssetID = 2

// OAuthScopes requested from the platform dashboard during install.
var OAuthScopes = []string{
	"read_activity_logs",
	"read_customers",
	"read_discount_codes",
	"read_orders",
	"read_price_order_conditions",
	"read_price_rulesets",
	"read_products",
	"read_shop",
	"read_shop_settings",
	"read_subscription_groups",
	"read_subscriptions",
	"read_webhooks",
	"write_activity_logs",
	"write_customers",
	"write_discount_codes",
	"write_orders",
	"write_payments",
	"write_price_order_conditions",
	"write_price_rulesets",
	"write_products",
	"write_shop_settings",
	"write_subscription_groups",
	"write_subscriptions",
	"write_webhooks",
}

// InstallEnvironment is the developer app configuration required by
// the install flow.
type InstallEnvironment struct {
	AppURL        string
	ClientID      string
	ClientSecret  string
	RedirectURL   string
	DashboardURL  string
	OAuthTokenURL string
}

// Validate rejects an environment with any property missing, naming
// the first empty one.
func (e InstallEnvironment) Validate() error {
	required := []struct {
		name, value string
	}{
		{"APP_URL", e.AppURL},
		{"DEVELOPER_CLIENT_ID", e.ClientID},
		{"DEVELOPER_CLIENT_SECRET", e.ClientSecret},
		{"DEVELOPER_REDIRECT_URL", e.RedirectURL},
		{"API_V2_AUTH_DASH_URL", e.DashboardURL},
		{"API_V2_OAUTH_TOKEN_URL", e.OAuthTokenURL},
	}
	for _, f := range required {
		if f.value == "" {
			return &domain.ValidationError{Field: f.name, Message: "environment property is empty"}
		}
	}
	return nil
}

// InstallOutcome reports how far an install got. Steps lists the
// completed step names in order; on success all of them.
type InstallOutcome struct {
	Shop  *domain.Shop
	URLs  domain.ShopURLs
	Asset *domain.Asset
	Steps []string
}

// InstallService runs the OAuth install handshake: exchanging the
// authorization code, fetching the remote shop info and provisioning
// the shop record with its token, URLs and template.
type InstallService struct {
	commerce ports.CommerceClient
	shops    *ShopService
	env      InstallEnvironment
	logger   zerolog.Logger
}

// NewInstallService creates a new install service.
func NewInstallService(commerce ports.CommerceClient, shops *ShopService, env InstallEnvironment, logger zerolog.Logger) *InstallService {
	return &InstallService{commerce: commerce, shops: shops, env: env, logger: logger}
}

// DashboardRedirectURL builds the platform dashboard authorization URL
// the merchant is sent to at the start of the install.
func (s *InstallService) DashboardRedirectURL() (string, error) {
	if err := s.env.Validate(); err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"%s?client_id=%s&scope=%s&redirect_uri=%s",
		s.env.DashboardURL,
		url.QueryEscape(s.env.ClientID),
		url.QueryEscape(strings.Join(OAuthScopes, ",")),
		url.QueryEscape(s.env.RedirectURL),
	), nil
}

// Install completes the install handshake for an authorization code.
// The returned outcome is always non-nil so a failed install can still
// report which steps succeeded.
func (s *InstallService) Install(ctx context.Context, code string) (*InstallOutcome, error) {
	outcome := &InstallOutcome{}

	if err := s.env.Validate(); err != nil {
		return outcome, err
	}

	authResponse, err := s.commerce.ExchangeAuthorizationCode(ctx, s.env.ClientID, s.env.ClientSecret, code)
	if err != nil {
		return outcome, err
	}
	accessToken := stringOf(authResponse.Content, "access_token")
	if accessToken == "" {
		return outcome, &domain.ValidationError{Field: "access_token", Message: "authorization code exchange returned no token"}
	}

	infoResponse, err := s.commerce.ShopInfos(ctx, accessToken)
	if err != nil {
		return outcome, err
	}
	info := domain.RemoteShopInfo{
		ShopDomain:     stringOf(infoResponse.Content, "shop_domain"),
		CustomDomain:   stringOf(infoResponse.Content, "custom_domain"),
		PlatformSlug:   stringOf(infoResponse.Content, "platform_slug"),
		ShopIdentifier: stringOf(infoResponse.Content, "shop_identifier"),
		StoreName:      stringOf(infoResponse.Content, "store_name"),
		AdminEmail:     stringOf(infoResponse.Content, "admin_email"),
	}

	returnToCart, err := ReturnToCartURL(info.CustomDomain, info.PlatformSlug)
	if err != nil {
		return outcome, err
	}

	params := domain.ShopParams{
		PlatformDomain:     info.ShopDomain,
		PlatformType:       info.PlatformSlug,
		PlatformIdentifier: info.ShopIdentifier,
		ShopName:           info.StoreName,
		SupportEmail:       info.AdminEmail,
	}
	shop, err := s.shops.CreateOrUpdate(ctx, params, info)
	if err != nil {
		return outcome, err
	}
	outcome.Shop = shop
	outcome.Steps = append(outcome.Steps, "shop")

	if err := s.shops.SaveToken(ctx, shop, accessToken); err != nil {
		return outcome, err
	}
	outcome.Steps = append(outcome.Steps, "token")

	urls := domain.ShopURLs{
		BackToCartURL:  returnToCart,
		BackToStoreURL: info.CustomDomain,
		LoginURL:       info.CustomDomain + "/login.php",
		LogoURL:        "https://static.boldcommerce.com/images/logo/bold_logo_red.svg",
		FaviconURL:     "https://static.boldcommerce.com/images/logo/bold.ico",
	}
	if err := s.shops.SaveURLs(ctx, shop, urls); err != nil {
		return outcome, err
	}
	outcome.URLs = urls
	outcome.Steps = append(outcome.Steps, "urls")

	asset, err := s.shops.AssignAssetByID(ctx, shop, TemplateAssetID)
	if err != nil {
		return outcome, err
	}
	outcome.Asset = asset
	outcome.Steps = append(outcome.Steps, "asset")

	s.logger.Info().
		Str("platform_domain", shop.PlatformDomain).
		Str("platform_type", shop.PlatformType).
		Msg("Shop installed")
	return outcome, nil
}
