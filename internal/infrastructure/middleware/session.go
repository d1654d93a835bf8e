package middleware

import (
	"net/http"
	"time"

	"checkout-experience-layer/internal/domain"

	"github.com/google/uuid"
)

// SessionCookieName identifies the browser session.
const SessionCookieName = "checkout_session"

// SessionCookie issues the browser session cookie and puts its ID in
// the request context. The cookie is the outer half of every session
// scope; the per-shop namespace is the inner half.
func SessionCookie() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				sessionID = cookie.Value
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    sessionID,
					Path:     "/",
					Expires:  time.Now().Add(2 * time.Hour),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := domain.WithSessionID(r.Context(), sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
