package token

import (
	"fmt"
	"time"

	"checkout-experience-layer/internal/domain"
	"checkout-experience-layer/internal/ports"

	"github.com/golang-jwt/jwt/v5"
)

type continuationPayload struct {
	PublicOrderID string `json:"public_order_id"`
}

type continuationClaims struct {
	AuthType string              `json:"auth_type"`
	Payload  continuationPayload `json:"payload"`
	jwt.RegisteredClaims
}

// JWTCodec signs and verifies continuation tokens with HMAC-SHA256.
type JWTCodec struct {
	secret []byte
}

// NewJWTCodec creates a codec around the shared signing secret.
func NewJWTCodec(secret string) ports.ContinuationTokenCodec {
	return &JWTCodec{secret: []byte(secret)}
}

// Encode signs the claims into a compact token.
func (c *JWTCodec) Encode(claims domain.ContinuationClaims) (string, error) {
	jwtClaims := continuationClaims{
		AuthType: claims.AuthType,
		Payload:  continuationPayload{PublicOrderID: claims.PublicOrderID},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: numericDate(claims.ExpiresAt),
			NotBefore: numericDate(claims.NotBefore),
			IssuedAt:  numericDate(claims.IssuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign continuation token: %w", err)
	}
	return signed, nil
}

// Decode verifies a token and returns its claims. Expired, not yet
// valid, unsigned or otherwise malformed tokens all come back as an
// authorization error.
func (c *JWTCodec) Decode(tokenString string) (*domain.ContinuationClaims, error) {
	var claims continuationClaims
	_, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, &domain.AuthorizationError{Message: "invalid continuation token"}
	}

	decoded := &domain.ContinuationClaims{
		AuthType:      claims.AuthType,
		PublicOrderID: claims.Payload.PublicOrderID,
	}
	if claims.ExpiresAt != nil {
		decoded.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.NotBefore != nil {
		decoded.NotBefore = claims.NotBefore.Time
	}
	if claims.IssuedAt != nil {
		decoded.IssuedAt = claims.IssuedAt.Time
	}
	return decoded, nil
}

func numericDate(t time.Time) *jwt.NumericDate {
	if t.IsZero() {
		return nil
	}
	return jwt.NewNumericDate(t)
}
