package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/atelierhq/backend/internal/errors"
)

// passwordService implements PasswordService using Argon2id for password hashing.
type passwordService struct {
	hasher *pwdhash.PasswordHasher
}

// Hash hashes a plain text password using Argon2id.
func (s *passwordService) Hash(plainPassword string) (string, error) {
	digest, err := s.hasher.Hash([]byte(plainPassword))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return digest, nil
}

// Compare performs a constant-time comparison between a plain password and its digest.
func (s *passwordService) Compare(plainPassword string, digest string) bool {
	ok, err := s.hasher.Verify([]byte(plainPassword), digest)
	if err != nil {
		return false
	}
	return ok
}

// NewPasswordService creates a new PasswordService instance using Argon2id hashing.
// Uses the Moderate policy for a balance between security and performance.
func NewPasswordService() PasswordService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return &passwordService{
		hasher: hasher,
	}
}
