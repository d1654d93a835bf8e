package middleware

import (
	"net/http"

	"checkout-experience-layer/internal/application"
	"checkout-experience-layer/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ResolveShop loads the FrontendShop aggregate for the {shopDomain}
// route parameter and stores it in the request context. Any resolution
// failure ends the request; no handler behind this middleware ever
// sees a partial shop.
func ResolveShop(shops *application.ShopService, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			shopDomain := chi.URLParam(r, "shopDomain")

			shop, err := shops.ResolveAggregate(r.Context(), shopDomain)
			if err != nil {
				logger.Error().Err(err).Str("shop_domain", shopDomain).Msg("Shop resolution failed")
				http.Error(w, "shop resolution failed", http.StatusInternalServerError)
				return
			}

			ctx := domain.WithFrontendShop(r.Context(), shop)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
