package bcrypt

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultCost = 10
)

// HashKey hashes an admin key so it can be stored in ADMIN_KEYS instead of the plain value.
func HashKey(key string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(key), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash key: %v", err)
	}
	return string(hashedBytes), nil
}

// IsHash reports whether stored looks like a bcrypt hash.
func IsHash(stored string) bool {
	return len(stored) == 60 && strings.HasPrefix(stored, "$2")
}

// MatchKey compares a provided key against one configured entry, which is
// either a bcrypt hash or a plain key.
func MatchKey(stored, provided string) bool {
	if IsHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(provided)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(provided)) == 1
}
