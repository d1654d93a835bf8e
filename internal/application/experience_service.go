package application

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"checkout-experience-layer/internal/domain"
	"checkout-experience-layer/internal/ports"

	"github.com/rs/zerolog"
)

// Checkout experience pages served by the resume route.
const (
	PageResume         = "resume"
	PageShipping       = "shipping_lines"
	PagePayment        = "payment"
	PageThankYou       = "thank_you"
	PageOutOfStock     = "out_of_stock"
	PageSessionExpired = "session_expired"
)

// FlagLoadTime enables the load time telemetry event sequence.
const FlagLoadTime = "LOADTIME"

// DefaultFlowID is used when a shop's template carries no flow of its
// own.
const DefaultFlowID = "Bold Flow"

// InitParams are the storefront query parameters accepted by the init
// route.
type InitParams struct {
	PublicOrderID     string
	CartID            string
	CheckoutFromAdmin bool
	Variants          string
	CustomerID        string
	UserAccessToken   string
	ReturnURL         string
	CartParams        string
	CheckoutLoadTime  int64 // epoch milliseconds, 0 when absent
}

// ResumeParams are the parameters accepted by the resume route.
type ResumeParams struct {
	RequestPage       string
	PublicOrderID     string
	CartID            string
	CartParams        string
	ContinuationToken string
}

// ExperienceResult is everything the experience view needs to render.
type ExperienceResult struct {
	Shop          *domain.FrontendShop
	Response      *domain.APIResponse
	PublicOrderID string
	CartID        string
}

/// ExperienceService orchestrates the order lifecycle: initializing and
// resuming orders against the remote commerce API, keeping the browser
// session in step and recording the telemetry timeline.
type ExperienceService struct {
	commerce     ports.CommerceClient
	customers    *CustomerService
	continuation *ContinuationService
	events       *EventsService
	appURL       string
	checkoutURL  string
	flags        []string
	logger       zerolog.Logger
}

// NewExperienceService creates a new order lifecycle orchestrator.
// flags is the comma separated feature flag list from the
// environment.
func NewExperienceService(
	commerce ports.CommerceClient,
	customers *CustomerService,
	continuation *ContinuationService,
	events *EventsService,
	appURL string,
	checkoutURL string,
	flags string,
	logger zerolog.Logger,
) *ExperienceService {
	return &ExperienceService{
		commerce:     commerce,
		customers:    customers,
		continuation: continuation,
		events:       events,
		appURL:       strings.TrimRight(appURL, "/"),
		checkoutURL:  strings.TrimRight(checkoutURL, "/"),
		flags:        strings.Split(flags, ","),
		logger:       logger,
	}
}

// HasFlag reports whether a feature flag is enabled.
func (s *ExperienceService) HasFlag(flag string) bool {
	for _, f := range s.flags {
		if strings.TrimSpace(f) == flag {
			return true
		}
	}
	return false
}

// Flags returns the raw feature flag list for the view payload.
func (s *ExperienceService) Flags() []string {
	return s.flags
}

// Init starts or resumes an order for a storefront checkout request.
// The three entry shapes are handled in order of precedence: an
// explicit public order ID resumes that order, an admin-initiated
// Shopify checkout converts its variant list, anything else
// initializes a fresh order from the cart.
func (s *ExperienceService) Init(ctx context.Context, shop *domain.FrontendShop, sess *ShopSession, p InitParams) (*ExperienceResult, error) {
	start := time.Now()

	if err := sess.Put(ctx, SessionKeyCartID, p.CartID); err != nil {
		return nil, fmt.Errorf("failed to store cart id in session: %w", err)
	}
	if p.ReturnURL != "" {
		if err := sess.Put(ctx, SessionKeyReturnURL, p.ReturnURL); err != nil {
			return nil, fmt.Errorf("failed to store return url in session: %w", err)
		}
	}

	publicOrderID := p.PublicOrderID
	apiCallStart := time.Now()

	var response *domain.APIResponse
	var err error
	switch {
	case publicOrderID != "":
		response, err = s.commerce.ResumeOrder(ctx, shop, publicOrderID)
	case p.CheckoutFromAdmin && shop.Shop.PlatformType == domain.PlatformShopify:
		resumableLink := s.ResumableOrderURL(&shop.Shop)
		response, err = s.commerce.InitializeShopifyAdminOrder(ctx, shop, ConvertVariantList(p.Variants), resumableLink)
	default:
		body := s.initializationOrderData(shop, p.CartID, p.UserAccessToken)
		response, err = s.commerce.InitializeOrder(ctx, shop, body)
		if err == nil {
			publicOrderID = response.PublicOrderID()
		}
	}
	if err != nil {
		s.recordFailure(ctx, shop, true, err, publicOrderID)
		return nil, err
	}
	apiCallResponded := time.Now()

	if err := sess.Put(ctx, SessionKeyPublicOrderID, publicOrderID); err != nil {
		return nil, fmt.Errorf("failed to store public order id in session: %w", err)
	}

	if p.CustomerID != "" {
		state := s.customers.MergeAuthenticatedCustomer(ctx, shop, p.CustomerID, response)
		response.SetApplicationState(state)
	}

	returnToCheckout, err := s.ReturnToCheckoutURL(shop, p.CartID, publicOrderID, p.CartParams)
	if err != nil {
		s.recordFailure(ctx, shop, true, err, publicOrderID)
		return nil, err
	}
	shop.SetReturnToCheckoutAfterLogin(returnToCheckout)

	s.recordTimeline(ctx, shop, timeline{
		isInit:           true,
		start:            start,
		apiCallStart:     apiCallStart,
		apiCallResponded: apiCallResponded,
		checkoutLoadTime: p.CheckoutLoadTime,
		publicOrderID:    publicOrderID,
		cartID:           p.CartID,
	})

	// an admin initialized order keeps an empty session entry, but the
	// rendered view still carries the order the remote created
	displayOrderID := publicOrderID
	if displayOrderID == "" {
		displayOrderID = response.PublicOrderID()
	}

	return &ExperienceResult{
		Shop:          shop,
		Response:      response,
		PublicOrderID: displayOrderID,
		CartID:        p.CartID,
	}, nil
}

// Resume reloads an order for a returning browser. The order reference
// comes from the resume parameters on the resume page and from the
// session everywhere else; which source won decides both the PII
// cleanup and the post-payment session teardown.
func (s *ExperienceService) Resume(ctx context.Context, shop *domain.FrontendShop, sess *ShopSession, p ResumeParams) (*ExperienceResult, error) {
	start := time.Now()

	publicOrderID := ""
	if p.RequestPage == PageResume {
		publicOrderID = p.PublicOrderID
	}
	fromSession := false
	if publicOrderID == "" {
		stored, err := sess.Get(ctx, SessionKeyPublicOrderID)
		if err != nil {
			return nil, fmt.Errorf("failed to read public order id from session: %w", err)
		}
		publicOrderID = stored
		fromSession = true
	}
	if publicOrderID == "" {
		if err := sess.Flush(ctx); err != nil {
			s.logger.Error().Err(err).Msg("Failed to flush session")
		}
		return nil, &domain.ResolutionError{Resource: "order", Message: "no order to resume"}
	}

	apiCallStart := time.Now()
	response, err := s.commerce.ResumeOrder(ctx, shop, publicOrderID)
	if err != nil {
		s.recordFailure(ctx, shop, false, err, publicOrderID)
		return nil, err
	}
	apiCallResponded := time.Now()

	isProcessed := response.IsOrderProcessed()
	shouldClear, err := s.continuation.ShouldClearOrder(ctx, publicOrderID, p.ContinuationToken)
	if err != nil {
		s.recordFailure(ctx, shop, false, err, publicOrderID)
		return nil, err
	}

	if !fromSession && shouldClear {
		if err := s.CleanOrder(ctx, shop, publicOrderID, response); err != nil {
			s.recordFailure(ctx, shop, false, err, publicOrderID)
			return nil, err
		}
		response.CleanPII()
		if err := sess.Put(ctx, SessionKeyPublicOrderID, publicOrderID); err != nil {
			return nil, fmt.Errorf("failed to store public order id in session: %w", err)
		}
	}
	if fromSession && isProcessed {
		response.InvalidateJWT()
		if err := sess.Flush(ctx); err != nil {
			s.logger.Error().Err(err).Msg("Failed to flush session")
		}
	}

	returnToCheckout, err := s.ReturnToCheckoutURL(shop, p.CartID, publicOrderID, p.CartParams)
	if err != nil {
		s.recordFailure(ctx, shop, false, err, publicOrderID)
		return nil, err
	}
	shop.SetReturnToCheckoutAfterLogin(returnToCheckout)

	s.recordTimeline(ctx, shop, timeline{
		isInit:           false,
		start:            start,
		apiCallStart:     apiCallStart,
		apiCallResponded: apiCallResponded,
		publicOrderID:    publicOrderID,
		cartID:           p.CartID,
	})

	return &ExperienceResult{
		Shop:          shop,
		Response:      response,
		PublicOrderID: publicOrderID,
		CartID:        p.CartID,
	}, nil
}

// ResumableOrderURL builds the link the remote API embeds into order
// confirmation emails.
func (s *ExperienceService) ResumableOrderURL(shop *domain.Shop) string {
	return fmt.Sprintf("%s/%s/%s/experience/%s", s.appURL, shop.PlatformType, shop.PlatformDomain, PageResume)
}

func (s *ExperienceService) initializationOrderData(shop *domain.FrontendShop, cartID, userAccessToken string) map[string]any {
	flowID := shop.Assets.Template.FlowID
	if flowID == "" {
		flowID = DefaultFlowID
	}
	body := map[string]any{
		"flow_id":        flowID,
		"resumable_link": s.ResumableOrderURL(&shop.Shop),
	}
	if cartID != "" {
		body["cart_id"] = cartID
	}
	if userAccessToken != "" {
		body["access_token"] = userAccessToken
	}
	return body
}

// ReturnToCheckoutURL builds the URL a customer follows back into the
// checkout after logging in on the platform. Woocommerce handles the
// return itself and gets an empty URL. Cart params are carried through
// only when the storefront supplied them.
func (s *ExperienceService) ReturnToCheckoutURL(shop *domain.FrontendShop, cartID, publicOrderID, cartParams string) (string, error) {
	query := url.Values{}
	query.Set("shop", shop.Shop.PlatformDomain)
	query.Set("cart_id", cartID)
	query.Set("return_url", shop.URLs.BackToCartURL)
	query.Set("platform", shop.Shop.PlatformType)
	query.Set("public_order_id", publicOrderID)
	if cartParams != "" {
		query.Set("cart_params", cartParams)
	}

	switch shop.Shop.PlatformType {
	case domain.PlatformWooCommerce:
		return "", nil
	case domain.PlatformCommercetools, domain.PlatformBold, domain.PlatformBigCommerce:
		return shop.URLs.BackToStoreURL + "/boldplatform/proxy/begin-checkout?" + query.Encode(), nil
	case domain.PlatformShopify:
		return "/apps/checkout/begin-checkout?" + query.Encode(), nil
	default:
		return "", &domain.ValidationError{Field: "platform_type", Message: fmt.Sprintf("platform %s is not supported", shop.Shop.PlatformType)}
	}
}

// StylesheetURL is the per-shop stylesheet served by the checkout
// frontend.
func (s *ExperienceService) StylesheetURL(shop *domain.Shop) string {
	return fmt.Sprintf("%s/shop/%s/%s/styles.css", s.checkoutURL, shop.PlatformType, shop.PlatformDomain)
}

// IsCheckoutExperiencePage reports whether the requested page is one
// the experience can serve.
func IsCheckoutExperiencePage(page string) bool {
	switch page {
	case PageResume, PageShipping, PagePayment, PageThankYou, PageOutOfStock, PageSessionExpired:
		return true
	}
	return false
}

// ConvertVariantList parses the admin variant list "id:qty,id:qty"
// into cart items. Malformed entries default to quantity zero rather
// than failing the order.
func ConvertVariantList(variants string) []ports.CartItem {
	if variants == "" {
		return []ports.CartItem{}
	}
	entries := strings.Split(variants, ",")
	items := make([]ports.CartItem, 0, len(entries))
	for i, entry := range entries {
		platformID, rawQty, _ := strings.Cut(entry, ":")
		qty, _ := strconv.Atoi(rawQty)
		items = append(items, ports.CartItem{
			PlatformID:  platformID,
			Quantity:    qty,
			LineItemKey: "item" + strconv.Itoa(i),
		})
	}
	return items
}

// CleanOrder strips the previously captured customer and addresses
// from an order resumed through an untrusted link.
func (s *ExperienceService) CleanOrder(ctx context.Context, shop *domain.FrontendShop, publicOrderID string, response *domain.APIResponse) error {
	state := response.ApplicationState()
	customer := subMapOf(state, "customer")
	if stringOf(customer, "email_address") != "" {
		if _, err := s.commerce.DeleteCustomer(ctx, shop, publicOrderID); err != nil {
			return err
		}
	}

	orderJWT := response.JWTToken()
	addresses := subMapOf(state, "addresses")
	if hasAddress(addresses, ports.AddressShipping) {
		if _, err := s.commerce.DeleteAddress(ctx, shop, publicOrderID, orderJWT, ports.AddressShipping); err != nil {
			return err
		}
	}
	if hasAddress(addresses, ports.AddressBilling) {
		if _, err := s.commerce.DeleteAddress(ctx, shop, publicOrderID, orderJWT, ports.AddressBilling); err != nil {
			return err
		}
	}
	return nil
}

func hasAddress(addresses map[string]any, kind string) bool {
	return len(subMapOf(addresses, kind)) > 0
}

type timeline struct {
	isInit           bool
	start            time.Time
	apiCallStart     time.Time
	apiCallResponded time.Time
	checkoutLoadTime int64
	publicOrderID    string
	cartID           string
}

// recordTimeline persists the load time event sequence of a completed
// request. Gated behind the LOADTIME flag.
func (s *ExperienceService) recordTimeline(ctx context.Context, shop *domain.FrontendShop, t timeline) {
	if !s.HasFlag(FlagLoadTime) {
		return
	}

	eventContext := map[string]any{"cart_id": t.cartID}
	var events []*domain.Event
	if t.isInit && t.checkoutLoadTime > 0 {
		events = append(events, s.events.NewEvent(
			shop.Shop.ID,
			domain.EventClickCheckoutButton,
			time.UnixMilli(t.checkoutLoadTime),
			eventContext,
			t.publicOrderID,
		))
	}

	names := [4]string{
		domain.EventResumeOrderInitialize,
		domain.EventResumeOrderEndpointCalled,
		domain.EventResumeOrderEndpointResponded,
		domain.EventResumeOrderFinalize,
	}
	if t.isInit {
		names = [4]string{
			domain.EventInitOrderInitialize,
			domain.EventInitOrderEndpointCalled,
			domain.EventInitOrderEndpointResponded,
			domain.EventInitOrderFinalize,
		}
	}
	times := [4]time.Time{t.start, t.apiCallStart, t.apiCallResponded, time.Now()}
	for i, name := range names {
		events = append(events, s.events.NewEvent(shop.Shop.ID, name, times[i], eventContext, t.publicOrderID))
	}
	s.events.Register(ctx, events)
}

// recordFailure persists the error event of a failed request. Gated
// behind the LOADTIME flag like the rest of the timeline.
func (s *ExperienceService) recordFailure(ctx context.Context, shop *domain.FrontendShop, isInit bool, cause error, publicOrderID string) {
	if !s.HasFlag(FlagLoadTime) {
		return
	}
	name := domain.EventResumeOrderError
	if isInit {
		name = domain.EventInitOrderError
	}
	eventContext := map[string]any{
		"error_type":    fmt.Sprintf("%T", cause),
		"error_message": cause.Error(),
	}
	event := s.events.NewEvent(shop.Shop.ID, name, time.Now(), eventContext, publicOrderID)
	s.events.Register(ctx, []*domain.Event{event})
}
