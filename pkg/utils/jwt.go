package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret   string
	tokenExpiry time.Duration
)

// InitJWT initializes the JWT secret and token lifetime
func InitJWT(secret string, expiry time.Duration) {
	jwtSecret = secret
	tokenExpiry = expiry
}

// GenerateSessionToken signs a session token for the shared pharmacy
// login. There are no per-user claims; possession of a valid token is
// the whole authorization model, as with the original cookie scheme.
func GenerateSessionToken() (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   "pharmacy",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExpiry)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// ValidateSessionToken validates and parses a session token
func ValidateSessionToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})

	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}

// TokenExpiry returns the configured session token lifetime
func TokenExpiry() time.Duration {
	return tokenExpiry
}
