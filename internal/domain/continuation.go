package domain

import "time"

// ContinuationClaims is the decoded body of a continuation token: a
// short-lived signed assertion that the holder may resume or clear a
// specific order.
type ContinuationClaims struct {
	AuthType      string
	PublicOrderID string
	ExpiresAt     time.Time
	NotBefore     time.Time
	IssuedAt      time.Time
}

// PendingMarker is the cache sentinel left by a headless checkout
// process that has claimed continuation of an order.
const PendingMarker = "pending"

// PendingMarkerKey builds the cache key guarding continuation of an
// order.
func PendingMarkerKey(publicOrderID string) string {
	return "headless::" + publicOrderID
}
