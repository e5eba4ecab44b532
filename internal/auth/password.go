package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrCorruptDigest means a stored hash could not be parsed.
	ErrCorruptDigest = errors.New("corrupt password digest")
	// ErrPasswordTooLong means the plaintext exceeds bcrypt's 72-byte input.
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)

// PasswordHasher hashes passwords with bcrypt at a fixed work factor.
// The digest embeds salt and cost, so verification needs nothing else.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher; out-of-range costs fall back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash hashes a plaintext password with the configured cost.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify compares in constant time. A mismatch is (false, nil); only an
// unreadable digest returns ErrCorruptDigest.
func (h *PasswordHasher) Verify(password, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, errors.Join(ErrCorruptDigest, err)
	}
}
