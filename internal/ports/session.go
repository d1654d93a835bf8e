package ports

import "context"

// SessionBackend is a generic scoped key-value session store. A scope
// groups the keys of one browser session for one shop; Flush drops the
// whole scope at once.
type SessionBackend interface {
	Put(ctx context.Context, scope, key, value string) error
	Get(ctx context.Context, scope, key string) (string, error)
	Pull(ctx context.Context, scope, key string) (string, error)
	Has(ctx context.Context, scope, key string) (bool, error)
	Forget(ctx context.Context, scope, key string) error
	Flush(ctx context.Context, scope string) error
}

// MarkerCache holds short-lived continuation markers. Pull consumes
// the entry atomically and returns "" when absent.
type MarkerCache interface {
	Pull(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
}
