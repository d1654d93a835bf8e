package token

import (
	"strings"
	"testing"
	"time"

	"checkout-experience-layer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec := NewJWTCodec("signing-secret")
	now := time.Now().Truncate(time.Second)

	signed, err := codec.Encode(domain.ContinuationClaims{
		AuthType:      "headless",
		PublicOrderID: "order-123",
		IssuedAt:      now,
		ExpiresAt:     now.Add(10 * time.Minute),
	})
	require.NoError(t, err)

	claims, err := codec.Decode(signed)
	require.NoError(t, err)
	assert.Equal(t, "headless", claims.AuthType)
	assert.Equal(t, "order-123", claims.PublicOrderID)
	assert.True(t, claims.ExpiresAt.Equal(now.Add(10*time.Minute)))
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
	signed, err := NewJWTCodec("signing-secret").Encode(domain.ContinuationClaims{PublicOrderID: "order-123"})
	require.NoError(t, err)

	_, err = NewJWTCodec("other-secret").Decode(signed)
	var authorization *domain.AuthorizationError
	require.ErrorAs(t, err, &authorization)
}

func TestDecodeRejectsTamperedToken(t *testing.T) {
	codec := NewJWTCodec("signing-secret")
	signed, err := codec.Encode(domain.ContinuationClaims{PublicOrderID: "order-123"})
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + ".eyJwYXlsb2FkIjp7InB1YmxpY19vcmRlcl9pZCI6Im90aGVyIn19." + parts[2]

	_, err = codec.Decode(tampered)
	var authorization *domain.AuthorizationError
	require.ErrorAs(t, err, &authorization)
}

func TestDecodeRejectsExpiredToken(t *testing.T) {
	codec := NewJWTCodec("signing-secret")
	signed, err := codec.Encode(domain.ContinuationClaims{
		PublicOrderID: "order-123",
		ExpiresAt:     time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	_, err = codec.Decode(signed)
	var authorization *domain.AuthorizationError
	require.ErrorAs(t, err, &authorization)
}

func TestDecodeRejectsNotYetValidToken(t *testing.T) {
	codec := NewJWTCodec("signing-secret")
	signed, err := codec.Encode(domain.ContinuationClaims{
		PublicOrderID: "order-123",
		NotBefore:     time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	_, err = codec.Decode(signed)
	var authorization *domain.AuthorizationError
	require.ErrorAs(t, err, &authorization)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	codec := NewJWTCodec("signing-secret")

	_, err := codec.Decode("not.a.jwt")
	var authorization *domain.AuthorizationError
	require.ErrorAs(t, err, &authorization)
}
