package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher produces and checks salted one-way password digests.
type Hasher interface {
	// Hash returns a freshly salted digest of plaintext.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches hashed. It returns false for a
	// mismatch or a malformed digest and never panics.
	Verify(plaintext, hashed string) bool
}

// maxPasswordBytes is the longest input bcrypt accepts. Longer passwords are
// cut to this length before hashing and verifying.
const maxPasswordBytes = 72

// BcryptHasher implements Hasher with bcrypt at a fixed cost.
type BcryptHasher struct {
	cost int
}

var _ Hasher = (*BcryptHasher)(nil)

// NewBcryptHasher creates a BcryptHasher. Costs outside bcrypt's range fall
// back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost returns the work factor used for new digests.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash implements Hasher.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(passwordBytes(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashFailed, err)
	}
	return string(hashed), nil
}

// Verify implements Hasher.
func (h *BcryptHasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), passwordBytes(plaintext)) == nil
}

func passwordBytes(plaintext string) []byte {
	b := []byte(plaintext)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
