// Package cryptox wraps the password hashing primitive used for stored
// credentials.
package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/mapboard/internal/common"
)

// Hasher produces and checks bcrypt password hashes. Each hash embeds its
// own random salt and cost, so equal passwords hash differently.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher using the given bcrypt cost.
func NewHasher(cost int) *Hasher {
	return &Hasher{cost: cost}
}

// HashPassword returns the bcrypt hash of raw. Passwords over bcrypt's
// 72-byte input limit are rejected rather than silently truncated.
func (h *Hasher) HashPassword(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password longer than 72 bytes", common.ErrValidation)
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether raw matches hash. The comparison is
// constant-time in the password.
func (h *Hasher) CheckPassword(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
