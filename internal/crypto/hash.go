package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

// HashCost is the fixed bcrypt cost factor used for all password hashes.
// Callers may not override it per call.
const HashCost = 10

// HashPassword hashes a password using bcrypt with the fixed cost factor.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks whether a password matches the given bcrypt hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
