package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Policy bounds enforced on plaintext passwords
const (
	MinLength = 8
	MaxLength = 16
)

// ErrPolicyViolation indicates the plaintext does not satisfy the length policy
var ErrPolicyViolation = errors.New("password must be between 8 and 16 characters long")

// ValidatePolicy checks the plaintext against the length policy
func ValidatePolicy(plain string) error {
	if len(plain) < MinLength || len(plain) > MaxLength {
		return ErrPolicyViolation
	}
	return nil
}

// Hash returns the bcrypt hash of the plaintext password
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether the plaintext matches the stored hash
func Verify(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
