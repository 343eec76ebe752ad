package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12
	// MaxPasswordLength is the bcrypt input limit in bytes
	MaxPasswordLength = 72
)

var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

var (
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	cost                       = DefaultCost
)

// SetCost overrides the bcrypt cost and returns the previous value. Tests and
// fixture seeding lower it to bcrypt.MinCost.
func SetCost(c int) int {
	prev := cost
	if c < bcrypt.MinCost {
		c = bcrypt.MinCost
	}
	if c > bcrypt.MaxCost {
		c = bcrypt.MaxCost
	}
	cost = c
	return prev
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordLength {
		return "", ErrPasswordTooLong
	}
	bytes, err := bcryptGenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword compares a password with a hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
