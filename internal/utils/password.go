package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is fixed at 10 rounds. Hashing happens exactly once per raw
// password mutation; an already-hashed value is never re-hashed.
const bcryptCost = 10

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash.
// Comparison errors (corrupt hash, wrong format) count as non-match.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
