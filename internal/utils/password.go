package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives the bcrypt hash stored in place of a plaintext password.
// bcrypt caps input at 72 bytes; the signup DTO enforces that limit.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPasswordHash reports whether password matches the stored bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
