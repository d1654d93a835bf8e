package application

import (
	"context"
	"errors"
	"testing"

	"checkout-experience-layer/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldClearOrderWithoutToken(t *testing.T) {
	service := NewContinuationService(&stubCodec{}, &stubMarkerCache{}, zerolog.Nop())

	shouldClear, err := service.ShouldClearOrder(context.Background(), "order-123", "")
	require.NoError(t, err)
	assert.True(t, shouldClear)
}

func TestShouldClearOrderRejectsInvalidToken(t *testing.T) {
	codec := &stubCodec{
		decodeFunc: func(string) (*domain.ContinuationClaims, error) {
			return nil, &domain.AuthorizationError{Message: "invalid continuation token"}
		},
	}
	service := NewContinuationService(codec, &stubMarkerCache{}, zerolog.Nop())

	_, err := service.ShouldClearOrder(context.Background(), "order-123", "garbage")
	var authorization *domain.AuthorizationError
	require.ErrorAs(t, err, &authorization)
}

func TestShouldClearOrderForDifferentOrder(t *testing.T) {
	codec := &stubCodec{
		decodeFunc: func(string) (*domain.ContinuationClaims, error) {
			return &domain.ContinuationClaims{PublicOrderID: "order-456"}, nil
		},
	}
	service := NewContinuationService(codec, &stubMarkerCache{}, zerolog.Nop())

	shouldClear, err := service.ShouldClearOrder(context.Background(), "order-123", "token")
	require.NoError(t, err)
	assert.True(t, shouldClear, "a token for another order must not protect this one")
}

func TestShouldClearOrderHonorsPendingMarker(t *testing.T) {
	codec := &stubCodec{
		decodeFunc: func(string) (*domain.ContinuationClaims, error) {
			return &domain.ContinuationClaims{PublicOrderID: "order-123"}, nil
		},
	}
	pulls := 0
	markers := &stubMarkerCache{
		pullFunc: func(_ context.Context, key string) (string, error) {
			pulls++
			assert.Equal(t, "headless::order-123", key)
			if pulls == 1 {
				return domain.PendingMarker, nil
			}
			return "", nil
		},
	}
	service := NewContinuationService(codec, markers, zerolog.Nop())

	shouldClear, err := service.ShouldClearOrder(context.Background(), "order-123", "token")
	require.NoError(t, err)
	assert.False(t, shouldClear)

	// the marker was consumed, so replaying the same token fails
	_, err = service.ShouldClearOrder(context.Background(), "order-123", "token")
	var authorization *domain.AuthorizationError
	require.ErrorAs(t, err, &authorization)
}

func TestShouldClearOrderOnMarkerCacheFailure(t *testing.T) {
	codec := &stubCodec{
		decodeFunc: func(string) (*domain.ContinuationClaims, error) {
			return &domain.ContinuationClaims{PublicOrderID: "order-123"}, nil
		},
	}
	markers := &stubMarkerCache{
		pullFunc: func(context.Context, string) (string, error) {
			return "", errors.New("cache unavailable")
		},
	}
	service := NewContinuationService(codec, markers, zerolog.Nop())

	_, err := service.ShouldClearOrder(context.Background(), "order-123", "token")
	var authorization *domain.AuthorizationError
	require.ErrorAs(t, err, &authorization, "an unverifiable continuation is rejected, not trusted")
}

func TestMarkPending(t *testing.T) {
	var gotKey, gotValue string
	markers := &stubMarkerCache{
		putFunc: func(_ context.Context, key, value string) error {
			gotKey, gotValue = key, value
			return nil
		},
	}
	service := NewContinuationService(&stubCodec{}, markers, zerolog.Nop())

	require.NoError(t, service.MarkPending(context.Background(), "order-123"))
	assert.Equal(t, "headless::order-123", gotKey)
	assert.Equal(t, domain.PendingMarker, gotValue)
}
