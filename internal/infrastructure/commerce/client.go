package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"checkout-experience-layer/internal/domain"
	"checkout-experience-layer/internal/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// API paths on the remote commerce platform.
const (
	pathInit          = "init"
	pathResume        = "resume"
	pathCustomer      = "customer"
	pathAuthenticated = "customer/authenticated"
	pathShopInfos     = "shops/v1/info"
	pathOrders        = "orders"
	pathStorefront    = "storefront"
)

var remoteCalls = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "commerce_api_calls_total",
	Help: "Calls made to the remote commerce API by operation and status.",
}, []string{"operation", "status"})

// Client implements CommerceClient against the remote checkout REST
// API. Every call is a single attempt; callers decide what a failure
// means for the request.
type Client struct {
	httpClient    *http.Client
	apiURL        string
	apiPath       string
	checkoutURL   string
	oauthTokenURL string
	logger        zerolog.Logger
}

// NewClient creates a new commerce API client adapter.
func NewClient(apiURL, apiPath, checkoutURL, oauthTokenURL string, logger zerolog.Logger) ports.CommerceClient {
	return &Client{
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		apiURL:        strings.TrimRight(apiURL, "/"),
		apiPath:       strings.Trim(apiPath, "/"),
		checkoutURL:   strings.TrimRight(checkoutURL, "/"),
		oauthTokenURL: oauthTokenURL,
		logger:        logger,
	}
}

// InitializeOrder starts a fresh order from a storefront cart.
func (c *Client) InitializeOrder(ctx context.Context, shop *domain.FrontendShop, body map[string]any) (*domain.APIResponse, error) {
	url := c.ordersURL(shop, "", pathInit)
	return c.send(ctx, "initialize_order", http.MethodPost, url, shop.Token, body)
}

// InitializeShopifyAdminOrder starts an order from a Shopify admin
// draft, carrying the converted variant list.
func (c *Client) InitializeShopifyAdminOrder(ctx context.Context, shop *domain.FrontendShop, cartItems []ports.CartItem, resumableLink string) (*domain.APIResponse, error) {
	body := map[string]any{"cart_items": cartItems}
	if resumableLink != "" {
		body["resumable_link"] = resumableLink
	}
	url := c.ordersURL(shop, "", pathInit)
	return c.send(ctx, "initialize_shopify_admin_order", http.MethodPost, url, shop.Token, body)
}

// ResumeOrder reloads an existing order by public order ID.
func (c *Client) ResumeOrder(ctx context.Context, shop *domain.FrontendShop, publicOrderID string) (*domain.APIResponse, error) {
	body := map[string]any{"public_order_id": publicOrderID}
	url := c.ordersURL(shop, "", pathResume)
	return c.send(ctx, "resume_order", http.MethodPost, url, shop.Token, body)
}

// ShopInfos fetches the remote shop record for an access token.
func (c *Client) ShopInfos(ctx context.Context, accessToken string) (*domain.APIResponse, error) {
	url := c.checkoutURL + "/" + pathShopInfos
	return c.send(ctx, "shop_infos", http.MethodGet, url, accessToken, nil)
}

// CustomerInfos fetches a platform customer's profile and saved
// addresses.
func (c *Client) CustomerInfos(ctx context.Context, shop *domain.FrontendShop, customerID string) (*domain.APIResponse, error) {
	url := fmt.Sprintf("%s/customers/v2/shops/%s/customers/pid/%s", c.apiURL, shop.Shop.PlatformIdentifier, customerID)
	return c.send(ctx, "customer_infos", http.MethodGet, url, shop.Token, nil)
}

// AddAuthenticatedCustomer attaches an authenticated customer to an
// order.
func (c *Client) AddAuthenticatedCustomer(ctx context.Context, shop *domain.FrontendShop, publicOrderID string, customer map[string]any) (*domain.APIResponse, error) {
	url := c.ordersURL(shop, publicOrderID, pathAuthenticated)
	return c.send(ctx, "add_authenticated_customer", http.MethodPost, url, shop.Token, customer)
}

// DeleteCustomer removes the customer currently attached to an order.
func (c *Client) DeleteCustomer(ctx context.Context, shop *domain.FrontendShop, publicOrderID string) (*domain.APIResponse, error) {
	url := c.ordersURL(shop, publicOrderID, pathCustomer)
	return c.send(ctx, "delete_customer", http.MethodDelete, url, shop.Token, nil)
}

// DeleteAddress removes a shipping or billing address from an order.
// The storefront endpoint authenticates with the order JWT, not the
// shop token.
func (c *Client) DeleteAddress(ctx context.Context, shop *domain.FrontendShop, publicOrderID, orderJWT, addressType string) (*domain.APIResponse, error) {
	path := "addresses/shipping"
	if addressType == ports.AddressBilling {
		path = "addresses/billing"
	}
	url := fmt.Sprintf("%s/%s/%s/%s/%s/%s", c.apiURL, c.apiPath, pathStorefront, shop.Shop.PlatformIdentifier, publicOrderID, path)
	return c.send(ctx, "delete_address", http.MethodDelete, url, orderJWT, nil)
}

// ExchangeAuthorizationCode trades an install authorization code for
// an access token. The caller inspects the response body; the OAuth
// endpoint reports failures in it.
func (c *Client) ExchangeAuthorizationCode(ctx context.Context, clientID, clientSecret, code string) (*domain.APIResponse, error) {
	const op = "exchange_authorization_code"

	form := url.Values{}
	form.Set("client_id", clientID)
	form.Set("client_secret", clientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.oauthTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req, op)
}

func (c *Client) ordersURL(shop *domain.FrontendShop, publicOrderID, path string) string {
	base := fmt.Sprintf("%s/%s/%s/%s", c.apiURL, c.apiPath, pathOrders, shop.Shop.PlatformIdentifier)
	if publicOrderID != "" {
		base += "/" + publicOrderID
	}
	return base + "/" + path
}

// send performs a JSON call and insists on a 200. Anything else comes
// back as a RemoteRejectionError carrying the best-effort message from
// the body.
func (c *Client) send(ctx context.Context, op, method, url, token string, body any) (*domain.APIResponse, error) {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	response, err := c.do(req, op)
	if err != nil {
		return nil, err
	}
	if response.Code != http.StatusOK {
		return nil, &domain.RemoteRejectionError{
			Op:      op,
			Status:  response.Code,
			Message: response.ErrorMessage(),
		}
	}
	return response, nil
}

func (c *Client) do(req *http.Request, op string) (*domain.APIResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		remoteCalls.WithLabelValues(op, "transport_error").Inc()
		c.logger.Error().Err(err).Str("operation", op).Msg("Commerce API call failed")
		return nil, &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	remoteCalls.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()

	var content map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&content); err != nil {
		content = map[string]any{}
	}
	return domain.NewAPIResponse(resp.StatusCode, content), nil
}
