package application

import (
	"context"

	"checkout-experience-layer/internal/domain"
	"checkout-experience-layer/internal/ports"

	"github.com/rs/zerolog"
)

// ContinuationService decides whether a resumed order must have its
// PII cleared, based on the continuation token presented by a headless
// checkout process.
type ContinuationService struct {
	codec   ports.ContinuationTokenCodec
	markers ports.MarkerCache
	logger  zerolog.Logger
}

// NewContinuationService creates a new continuation token validator.
func NewContinuationService(codec ports.ContinuationTokenCodec, markers ports.MarkerCache, logger zerolog.Logger) *ContinuationService {
	return &ContinuationService{codec: codec, markers: markers, logger: logger}
}

// ShouldClearOrder evaluates the continuation token against the
// resumed order. No token, or a token for a different order, means the
// order came from an untrusted link and must be cleared. A token for
// the same order is only honored while its pending marker is still in
// the cache; the marker is consumed on first use, so a replayed token
// fails with an authorization error.
func (s *ContinuationService) ShouldClearOrder(ctx context.Context, publicOrderID, token string) (bool, error) {
	if token == "" {
		return true, nil
	}

	claims, err := s.codec.Decode(token)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Rejected continuation token")
		return false, err
	}
	if claims.PublicOrderID != publicOrderID {
		return true, nil
	}

	marker, err := s.markers.Pull(ctx, domain.PendingMarkerKey(publicOrderID))
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to pull continuation marker")
		return false, &domain.AuthorizationError{Message: "continuation could not be verified"}
	}
	if marker != domain.PendingMarker {
		return false, &domain.AuthorizationError{Message: "continuation is not pending"}
	}
	return false, nil
}

// MarkPending leaves the marker a headless process sets before handing
// the browser its continuation token.
func (s *ContinuationService) MarkPending(ctx context.Context, publicOrderID string) error {
	return s.markers.Put(ctx, domain.PendingMarkerKey(publicOrderID), domain.PendingMarker)
}
