package ports

import "checkout-experience-layer/internal/domain"

// EncryptionService encrypts tokens at rest and decrypts them on read.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// ContinuationTokenCodec signs and verifies continuation tokens.
// Decode returns a *domain.AuthorizationError for anything expired,
// not yet valid or otherwise malformed.
type ContinuationTokenCodec interface {
	Encode(claims domain.ContinuationClaims) (string, error)
	Decode(token string) (*domain.ContinuationClaims, error)
}
