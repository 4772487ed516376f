package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vkravets/contacts_api/internal/core/domain"
)

// ScopedClaims is the claim set shared by all three token kinds. The scope claim is
// what keeps an access token from being replayed as a refresh token and vice versa.
type ScopedClaims struct {
	Scope domain.TokenScope `json:"scope"`
	jwt.RegisteredClaims
}

// GenerateScopedJWT signs a new HS256 token for the given subject and scope.
func GenerateScopedJWT(subject string, scope domain.TokenScope, secret string, expiry time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := ScopedClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseScopedJWT parses a token string and validates its signature and expiry.
// Scope enforcement is left to the caller; the claims carry the scope as signed.
func ParseScopedJWT(tokenString string, secret string) (*ScopedClaims, error) {
	claims := &ScopedClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err // Includes expiry and signature errors.
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}
