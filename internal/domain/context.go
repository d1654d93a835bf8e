package domain

import "context"

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	frontendShopKey contextKey = "frontend_shop"
	sessionIDKey    contextKey = "session_id"
)

// WithFrontendShop stores the resolved shop aggregate in the context
func WithFrontendShop(ctx context.Context, shop *FrontendShop) context.Context {
	return context.WithValue(ctx, frontendShopKey, shop)
}

// FrontendShopFromContext retrieves the resolved shop aggregate, nil
// when no shop middleware ran
func FrontendShopFromContext(ctx context.Context) *FrontendShop {
	shop, _ := ctx.Value(frontendShopKey).(*FrontendShop)
	return shop
}

// WithSessionID stores the browser session ID in the context
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// SessionIDFromContext retrieves the browser session ID, "" when no
// session middleware ran
func SessionIDFromContext(ctx context.Context) string {
	sessionID, _ := ctx.Value(sessionIDKey).(string)
	return sessionID
}
