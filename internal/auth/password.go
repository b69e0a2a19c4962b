package auth

import (
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum accepted password length, counted in
// characters rather than bytes so Hebrew passwords are measured fairly.
const MinPasswordLength = 8

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword checks a password against its stored hash. Malformed
// hash input is reported as a mismatch, never an error.
func VerifyPassword(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// ValidatePasswordStrength enforces the minimum length threshold.
func ValidatePasswordStrength(password string) bool {
	return utf8.RuneCountInString(password) >= MinPasswordLength
}
