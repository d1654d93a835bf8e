package api

import (
	"net/http"
	"strconv"

	"checkout-experience-layer/internal/application"
	"checkout-experience-layer/internal/domain"
	"checkout-experience-layer/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// EnvironmentIndicators describe the remote API the frontend bundle
// talks to.
type EnvironmentIndicators struct {
	Type string `json:"type"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

// ExperienceHandler serves the checkout experience routes. The shop
// resolution and session cookie middleware run in front of it.
type ExperienceHandler struct {
	experience *application.ExperienceService
	sessions   ports.SessionBackend
	responder  *Responder
	indicators EnvironmentIndicators
	logger     zerolog.Logger
}

// NewExperienceHandler creates a new experience handler.
func NewExperienceHandler(
	experience *application.ExperienceService,
	sessions ports.SessionBackend,
	responder *Responder,
	indicators EnvironmentIndicators,
	logger zerolog.Logger,
) *ExperienceHandler {
	return &ExperienceHandler{
		experience: experience,
		sessions:   sessions,
		responder:  responder,
		indicators: indicators,
		logger:     logger,
	}
}

// Init handles GET /experience/init/{shopDomain}
func (h *ExperienceHandler) Init(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shop := domain.FrontendShopFromContext(ctx)
	sess := application.NewShopSession(h.sessions, domain.SessionIDFromContext(ctx), shop)

	query := r.URL.Query()
	loadTime, _ := strconv.ParseInt(query.Get("checkout_local_time"), 10, 64)
	params := application.InitParams{
		PublicOrderID:     query.Get("public_order_id"),
		CartID:            query.Get("cart_id"),
		CheckoutFromAdmin: query.Get("checkout_from_admin") == "true" || query.Get("checkout_from_admin") == "1",
		Variants:          query.Get("variants"),
		CustomerID:        query.Get("customer_id"),
		UserAccessToken:   query.Get("userAccessToken"),
		ReturnURL:         query.Get("return_url"),
		CartParams:        query.Get("cart_params"),
		CheckoutLoadTime:  loadTime,
	}

	result, err := h.experience.Init(ctx, shop, sess, params)
	if err != nil {
		h.logger.Error().Err(err).Str("shop_domain", shop.Shop.PlatformDomain).Msg("Init order failed")
		h.responder.Error(w, err)
		return
	}

	h.responder.JSON(w, http.StatusOK, h.viewPayload(result))
}

// Resume handles GET /{platformType}/{shopDomain}/experience/{requestPage}
func (h *ExperienceHandler) Resume(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestPage := chi.URLParam(r, "requestPage")
	if !application.IsCheckoutExperiencePage(requestPage) {
		http.NotFound(w, r)
		return
	}

	shop := domain.FrontendShopFromContext(ctx)
	sess := application.NewShopSession(h.sessions, domain.SessionIDFromContext(ctx), shop)

	query := r.URL.Query()
	params := application.ResumeParams{
		RequestPage:       requestPage,
		PublicOrderID:     query.Get("public_order_id"),
		CartID:            query.Get("cart_id"),
		CartParams:        query.Get("cart_params"),
		ContinuationToken: query.Get("token"),
	}

	result, err := h.experience.Resume(ctx, shop, sess, params)
	if err != nil {
		h.logger.Error().Err(err).Str("shop_domain", shop.Shop.PlatformDomain).Msg("Resume order failed")
		h.responder.Error(w, err)
		return
	}

	h.responder.JSON(w, http.StatusOK, h.viewPayload(result))
}

func (h *ExperienceHandler) viewPayload(result *application.ExperienceResult) map[string]any {
	shop := result.Shop
	return map[string]any{
		"shop":       shop.Shop,
		"shopAssets": shop.Assets,
		"shopUrls": map[string]any{
			"shopUrls":            shop.URLs,
			"returnToCheckoutUrl": shop.ReturnToCheckoutAfterLogin(),
			"returnToCart":        shop.ReturnToCartURL(),
		},
		"flags":         h.experience.Flags(),
		"cartID":        result.CartID,
		"publicOrderID": result.PublicOrderID,
		"initResponse":  result.Response.Content,
		"indicators": map[string]any{
			"environment":   h.indicators,
			"enableConsole": false,
			"loadTimes":     []any{},
		},
		"stylesheet": h.experience.StylesheetURL(&shop.Shop),
	}
}
