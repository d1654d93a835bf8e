package application

import (
	"context"

	"checkout-experience-layer/internal/domain"
	"checkout-experience-layer/internal/ports"
)

// Session keys used by the checkout flow.
const (
	SessionKeyCartID        = "_cart_id"
	SessionKeyPublicOrderID = "_public_order_id"
	SessionKeyReturnURL     = "return_url"
)

// ShopSession is a session backend scoped to one browser session and
// one shop. Keys from different shops under the same browser session
// never collide, and Flush only drops this shop's keys.
type ShopSession struct {
	backend ports.SessionBackend
	scope   string
}

// NewShopSession binds a backend to the scope of the given browser
// session and shop.
func NewShopSession(backend ports.SessionBackend, sessionID string, shop *domain.FrontendShop) *ShopSession {
	return &ShopSession{
		backend: backend,
		scope:   sessionID + "." + shop.SessionNamespace(),
	}
}

func (s *ShopSession) Put(ctx context.Context, key, value string) error {
	return s.backend.Put(ctx, s.scope, key, value)
}

func (s *ShopSession) Get(ctx context.Context, key string) (string, error) {
	return s.backend.Get(ctx, s.scope, key)
}

func (s *ShopSession) Pull(ctx context.Context, key string) (string, error) {
	return s.backend.Pull(ctx, s.scope, key)
}

func (s *ShopSession) Has(ctx context.Context, key string) (bool, error) {
	return s.backend.Has(ctx, s.scope, key)
}

func (s *ShopSession) Forget(ctx context.Context, key string) error {
	return s.backend.Forget(ctx, s.scope, key)
}

func (s *ShopSession) Flush(ctx context.Context) error {
	return s.backend.Flush(ctx, s.scope)
}
