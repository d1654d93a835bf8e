package middleware

import (
	"net/http"

	"checkout-experience-layer/internal/application"

	"github.com/rs/zerolog"
)

// ValidateToken authenticates API callers by the shop token headers.
// Resolution and verification failures both answer 500, leaking
// nothing about which half failed.
func ValidateToken(shops *application.ShopService, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			shopToken := r.Header.Get("X-Bold-Api-Token")
			shopDomain := r.Header.Get("X-Bold-Shop-Domain")

			shop, err := shops.GetShopByIdentifierOrDomain(r.Context(), shopDomain)
			if err != nil {
				logger.Warn().Err(err).Str("shop_domain", shopDomain).Msg("Token validation failed")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			if err := shops.VerifyToken(r.Context(), shop, shopToken); err != nil {
				logger.Warn().Err(err).Str("shop_domain", shopDomain).Msg("Token validation failed")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
